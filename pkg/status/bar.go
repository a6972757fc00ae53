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

package status

import (
	"context"
	"io"
	"sync"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
)

// 📶 BarEmitter renders export progress as a terminal progress bar. The bar
// starts on the first event and stops once the payload reaches the total.
type BarEmitter struct {
	mu     sync.Mutex
	writer io.Writer
	title  string
	bar    *pterm.ProgressbarPrinter
}

// 🏭 NewBarEmitter creates a bar writing to w
func NewBarEmitter(w io.Writer, title string) *BarEmitter {
	return &BarEmitter{writer: w, title: title}
}

func (b *BarEmitter) Emit(ctx context.Context, ev Event) error {
	if ev.Name != EventExportProgress {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bar == nil {
		bar, err := pterm.DefaultProgressbar.
			WithTotal(ev.Total).
			WithTitle(b.title).
			WithWriter(b.writer).
			WithRemoveWhenDone(false).
			Start()
		if err != nil {
			return errors.Errorf("starting progress bar: %w", err)
		}
		b.bar = bar
	}

	if delta := ev.Payload - b.bar.Current; delta > 0 {
		b.bar.Add(delta)
	}

	if ev.Payload >= ev.Total {
		return b.stop()
	}

	return nil
}

// Stop stops the active bar, if any
func (b *BarEmitter) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stop()
}

func (b *BarEmitter) stop() error {
	if b.bar == nil {
		return nil
	}
	bar := b.bar
	b.bar = nil
	if _, err := bar.Stop(); err != nil {
		return errors.Errorf("stopping progress bar: %w", err)
	}
	return nil
}

// Current returns the count shown by the active bar, or 0 when idle
func (b *BarEmitter) Current() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar == nil {
		return 0
	}
	return b.bar.Current
}
