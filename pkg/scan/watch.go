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

package scan

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// ⏱️ DefaultDebounce collapses bursts of filesystem events into one rescan
const DefaultDebounce = 150 * time.Millisecond

// 👀 Watch scans dir once, then rescans it every time its entries change and
// hands each listing to onChange. It blocks until ctx is cancelled or the
// watcher fails.
func Watch(ctx context.Context, dir string, opts Options, debounce time.Duration, onChange func([]string)) error {
	logger := zerolog.Ctx(ctx)

	files, err := Folder(ctx, dir, opts)
	if err != nil {
		return err
	}
	onChange(files)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return errors.Errorf("watching folder %s: %w", dir, err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	changed := make(chan struct{}, 1)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				logger.Debug().Str("event", ev.String()).Msg("folder changed")
				select {
				case changed <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				return errors.Errorf("watching folder %s: %w", dir, err)
			}
		}
	})

	g.Go(func() error {
		timer := time.NewTimer(debounce)
		timer.Stop()
		defer timer.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-changed:
				timer.Reset(debounce)
			case <-timer.C:
				files, err := Folder(gctx, dir, opts)
				if err != nil {
					return err
				}
				onChange(files)
			}
		}
	})

	return g.Wait()
}
