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

// Package operation provides the export pipeline and the runner that executes it
package operation

import (
	"context"

	"github.com/walteh/picfav/pkg/store"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a unit of work the runner can execute
type Operation interface {
	Execute(ctx context.Context) error
}

// ⭐ FavouriteSource lists the current favourites
type FavouriteSource interface {
	List(ctx context.Context) ([]store.Favourite, error)
}

// 🔧 Options contains what an export needs besides its destination
type Options struct {
	// Source resolves favourites when no explicit file list is given
	Source FavouriteSource
	// Progress receives one call per copied file
	Progress ProgressFunc
}

// 📦 ExportOperation exports either the favourites or an explicit file list
type ExportOperation struct {
	opts        Options
	destination string
	files       []string
	explicit    bool

	exported []string
}

// 🏭 NewExportFavourites creates an export of the favourites held by opts.Source
func NewExportFavourites(opts Options, destination string) (*ExportOperation, error) {
	if opts.Source == nil {
		return nil, errors.Errorf("favourite source is required")
	}
	return &ExportOperation{opts: opts, destination: destination}, nil
}

// 🏭 NewExportFiles creates an export of an explicit list of files
func NewExportFiles(opts Options, destination string, files []string) *ExportOperation {
	return &ExportOperation{opts: opts, destination: destination, files: files, explicit: true}
}

// 🏃 Execute resolves the input list and runs the export
func (op *ExportOperation) Execute(ctx context.Context) error {
	files := op.files
	if !op.explicit {
		favourites, err := op.opts.Source.List(ctx)
		if err != nil {
			return errors.Errorf("resolving favourites: %w", err)
		}
		files = make([]string, 0, len(favourites))
		for _, f := range favourites {
			files = append(files, f.Path)
		}
	}

	exported, err := Export(ctx, op.destination, files, op.opts.Progress)
	if err != nil {
		return err
	}
	op.exported = exported
	return nil
}

// Exported returns the base names written by the last successful Execute
func (op *ExportOperation) Exported() []string {
	return op.exported
}
