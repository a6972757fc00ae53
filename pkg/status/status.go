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
	"encoding/json"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📣 EventExportProgress is emitted once per copied file during an export
const EventExportProgress = "export-progress"

// 📨 Event is a named notification for the UI shell
type Event struct {
	Name    string `json:"event"`
	Payload int    `json:"payload"`

	// Total is the size of the running export; kept off the wire
	Total int `json:"-"`
}

// 📡 Emitter delivers events to whoever is listening
type Emitter interface {
	Emit(ctx context.Context, ev Event) error
}

// 🛑 Stopper is implemented by emitters holding terminal state that must be
// released when an export ends early
type Stopper interface {
	Stop() error
}

// 🧾 JSONEmitter writes one JSON object per line, e.g.
//
//	{"event":"export-progress","payload":3}
type JSONEmitter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// 🏭 NewJSONEmitter creates an emitter writing to w
func NewJSONEmitter(w io.Writer) *JSONEmitter {
	return &JSONEmitter{enc: json.NewEncoder(w)}
}

func (e *JSONEmitter) Emit(ctx context.Context, ev Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enc.Encode(ev); err != nil {
		return errors.Errorf("encoding %s event: %w", ev.Name, err)
	}
	return nil
}

// 🔀 MultiEmitter sends each event to every emitter, in order
type MultiEmitter []Emitter

func (m MultiEmitter) Emit(ctx context.Context, ev Event) error {
	var errs []error
	for _, e := range m {
		if e == nil {
			continue
		}
		if err := e.Emit(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Stop stops every emitter that is a Stopper
func (m MultiEmitter) Stop() error {
	var errs []error
	for _, e := range m {
		if s, ok := e.(Stopper); ok {
			if err := s.Stop(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// 📊 Reporter adapts an Emitter to the export progress callback and logs
// progress lines through the context logger
type Reporter struct {
	emitter   Emitter
	formatter FileFormatter
}

// 🏭 NewReporter creates a reporter; emitter may be nil
func NewReporter(emitter Emitter, formatter FileFormatter) *Reporter {
	if formatter == nil {
		formatter = NewDefaultFileFormatter()
	}
	return &Reporter{emitter: emitter, formatter: formatter}
}

// Progress is an operation.ProgressFunc. A failed emit is logged and the
// export continues.
func (r *Reporter) Progress(ctx context.Context, completed, total int) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Int("processed", completed).
		Int("total", total).
		Msg(r.formatter.FormatProgress(completed, total))

	if r.emitter == nil {
		return
	}
	ev := Event{Name: EventExportProgress, Payload: completed, Total: total}
	if err := r.emitter.Emit(ctx, ev); err != nil {
		logger.Warn().Err(err).Str("event", ev.Name).Msg("failed to emit progress event")
	}
}

// Exported logs one line per exported file
func (r *Reporter) Exported(ctx context.Context, destination string, names []string) {
	logger := zerolog.Ctx(ctx)
	for _, name := range names {
		logger.Info().Str("file", name).Str("destination", destination).Msg(r.formatter.FormatExported(name))
	}
}

// Failed logs an export failure and stops any emitter left mid-export
func (r *Reporter) Failed(ctx context.Context, err error) {
	logger := zerolog.Ctx(ctx)
	logger.Error().Err(err).Msg(r.formatter.FormatError(err))

	if s, ok := r.emitter.(Stopper); ok {
		if serr := s.Stop(); serr != nil {
			logger.Warn().Err(serr).Msg("failed to stop progress output")
		}
	}
}
