// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package app is the command surface shared by the CLI and any UI shell. It
// owns nothing global: everything it touches is handed to New.
package app

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/picfav/pkg/config"
	"github.com/walteh/picfav/pkg/operation"
	"github.com/walteh/picfav/pkg/scan"
	"github.com/walteh/picfav/pkg/status"
	"github.com/walteh/picfav/pkg/store"
	"gitlab.com/tozd/go/errors"
)

// ErrNoDestination is returned by exports when neither the caller nor the
// configuration names a destination
var ErrNoDestination = errors.Base("no export destination given")

// ⭐ Favourites is the persistent favourites set
type Favourites interface {
	Add(ctx context.Context, path string) error
	Remove(ctx context.Context, path string) error
	List(ctx context.Context) ([]store.Favourite, error)
	Contains(ctx context.Context, path string) (bool, error)
}

// 🔧 Options contains the dependencies of an App
type Options struct {
	Favourites Favourites
	Config     *config.Config
	// Emitter receives export events; nil disables them
	Emitter status.Emitter
}

// 🎯 App exposes the picfav commands
type App struct {
	favourites Favourites
	cfg        *config.Config
	runner     *operation.OperationRunner
	reporter   *status.Reporter
}

// 🏭 New creates an App
func New(opts Options) (*App, error) {
	if opts.Favourites == nil {
		return nil, errors.Errorf("favourites store is required")
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	return &App{
		favourites: opts.Favourites,
		cfg:        cfg,
		runner:     operation.NewRunner(cfg.Async),
		reporter:   status.NewReporter(opts.Emitter, nil),
	}, nil
}

// 🔍 ScanFolder lists the images directly inside path
func (a *App) ScanFolder(ctx context.Context, path string) ([]string, error) {
	return scan.Folder(ctx, path, a.scanOptions())
}

// 👀 WatchFolder lists the images in path and lists them again after every
// change until ctx is done
func (a *App) WatchFolder(ctx context.Context, path string, onChange func([]string)) error {
	return scan.Watch(ctx, path, a.scanOptions(), scan.DefaultDebounce, onChange)
}

func (a *App) scanOptions() scan.Options {
	return scan.Options{IgnorePatterns: a.cfg.IgnorePatterns}
}

// ➕ AddFavourite marks path as a favourite
func (a *App) AddFavourite(ctx context.Context, path string) error {
	if err := a.favourites.Add(ctx, path); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("added favourite")
	return nil
}

// ➖ RemoveFavourite unmarks path
func (a *App) RemoveFavourite(ctx context.Context, path string) error {
	return a.favourites.Remove(ctx, path)
}

// 📋 GetFavourites returns every favourite
func (a *App) GetFavourites(ctx context.Context) ([]store.Favourite, error) {
	return a.favourites.List(ctx)
}

// ⭐ IsFavourite reports whether path is a favourite
func (a *App) IsFavourite(ctx context.Context, path string) (bool, error) {
	return a.favourites.Contains(ctx, path)
}

// 📦 ExportFavourites copies every favourite into destination and returns
// the exported base names. An empty destination falls back to the
// configured one.
func (a *App) ExportFavourites(ctx context.Context, destination string) ([]string, error) {
	destination, err := a.destination(destination)
	if err != nil {
		return nil, err
	}

	op, err := operation.NewExportFavourites(a.exportOptions(), destination)
	if err != nil {
		return nil, errors.Errorf("creating export: %w", err)
	}
	return a.export(ctx, destination, op)
}

// 📦 ExportFiles copies files into destination
func (a *App) ExportFiles(ctx context.Context, destination string, files []string) ([]string, error) {
	destination, err := a.destination(destination)
	if err != nil {
		return nil, err
	}

	return a.export(ctx, destination, operation.NewExportFiles(a.exportOptions(), destination, files))
}

func (a *App) exportOptions() operation.Options {
	return operation.Options{
		Source:   a.favourites,
		Progress: a.reporter.Progress,
	}
}

func (a *App) destination(destination string) (string, error) {
	if destination != "" {
		return destination, nil
	}
	if a.cfg.Destination != "" {
		return a.cfg.Destination, nil
	}
	return "", ErrNoDestination
}

func (a *App) export(ctx context.Context, destination string, op *operation.ExportOperation) ([]string, error) {
	if err := a.runner.Run(ctx, op); err != nil {
		a.reporter.Failed(ctx, err)
		return nil, err
	}

	exported := op.Exported()
	a.reporter.Exported(ctx, destination, exported)
	return exported, nil
}
