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
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// 🔧 mockEmitter is a mock implementation of Emitter
type mockEmitter struct {
	mock.Mock
}

func (m *mockEmitter) Emit(ctx context.Context, ev Event) error {
	return m.Called(ctx, ev).Error(0)
}

// failingWriter rejects every write
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestJSONEmitter(t *testing.T) {
	var buf bytes.Buffer
	e := NewJSONEmitter(&buf)

	for i := 1; i <= 3; i++ {
		require.NoError(t, e.Emit(context.Background(), Event{Name: EventExportProgress, Payload: i, Total: 3}))
	}

	assert.Equal(t,
		`{"event":"export-progress","payload":1}`+"\n"+
			`{"event":"export-progress","payload":2}`+"\n"+
			`{"event":"export-progress","payload":3}`+"\n",
		buf.String())
}

func TestJSONEmitterWriteError(t *testing.T) {
	err := NewJSONEmitter(failingWriter{}).Emit(context.Background(), Event{Name: EventExportProgress, Payload: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encoding export-progress event")
}

func TestMultiEmitter(t *testing.T) {
	ctx := context.Background()
	ev := Event{Name: EventExportProgress, Payload: 1, Total: 1}

	a := &mockEmitter{}
	b := &mockEmitter{}
	a.On("Emit", ctx, ev).Return(assert.AnError).Once()
	b.On("Emit", ctx, ev).Return(nil).Once()

	err := MultiEmitter{a, nil, b}.Emit(ctx, ev)
	assert.ErrorIs(t, err, assert.AnError)
	a.AssertExpectations(t)
	b.AssertExpectations(t)
}

func TestReporterProgress(t *testing.T) {
	var logs bytes.Buffer
	ctx := zerolog.New(&logs).WithContext(context.Background())

	em := &mockEmitter{}
	for i := 1; i <= 3; i++ {
		em.On("Emit", ctx, Event{Name: EventExportProgress, Payload: i, Total: 3}).Return(nil).Once()
	}

	r := NewReporter(em, nil)
	for i := 1; i <= 3; i++ {
		r.Progress(ctx, i, 3)
	}

	em.AssertExpectations(t)
	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "⏳ Progress: 1/3 (33%)")
	assert.Contains(t, lines[2], "✅ Progress: 3/3 (100%)")
}

func TestReporterEmitFailureIsNotFatal(t *testing.T) {
	var logs bytes.Buffer
	ctx := zerolog.New(&logs).WithContext(context.Background())

	em := &mockEmitter{}
	em.On("Emit", mock.Anything, mock.Anything).Return(assert.AnError)

	NewReporter(em, nil).Progress(ctx, 1, 2)
	assert.Contains(t, logs.String(), "failed to emit progress event")
}

func TestReporterWithoutEmitter(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	r := NewReporter(nil, nil)
	r.Progress(ctx, 1, 1)
	r.Exported(ctx, "/out", []string{"a.png"})
	r.Failed(ctx, assert.AnError)
}

func TestReporterExportedAndFailed(t *testing.T) {
	var logs bytes.Buffer
	ctx := zerolog.New(&logs).WithContext(context.Background())
	r := NewReporter(nil, nil)

	r.Exported(ctx, "/out", []string{"a.png", "b.jpg"})
	r.Failed(ctx, assert.AnError)

	out := logs.String()
	assert.Contains(t, out, "✨ Exported a.png")
	assert.Contains(t, out, "✨ Exported b.jpg")
	assert.Contains(t, out, "❌ Error: "+assert.AnError.Error())
}

func TestBarEmitter(t *testing.T) {
	ctx := context.Background()
	bar := NewBarEmitter(io.Discard, "exporting")

	require.NoError(t, bar.Emit(ctx, Event{Name: "other", Payload: 5, Total: 9}))
	assert.Equal(t, 0, bar.Current())

	require.NoError(t, bar.Emit(ctx, Event{Name: EventExportProgress, Payload: 1, Total: 3}))
	assert.Equal(t, 1, bar.Current())
	require.NoError(t, bar.Emit(ctx, Event{Name: EventExportProgress, Payload: 2, Total: 3}))
	assert.Equal(t, 2, bar.Current())

	// reaching the total stops the bar
	require.NoError(t, bar.Emit(ctx, Event{Name: EventExportProgress, Payload: 3, Total: 3}))
	assert.Equal(t, 0, bar.Current())
}

func TestBarEmitterStop(t *testing.T) {
	ctx := context.Background()
	bar := NewBarEmitter(io.Discard, "exporting")

	require.NoError(t, bar.Stop(), "stopping an idle bar is a no-op")

	require.NoError(t, bar.Emit(ctx, Event{Name: EventExportProgress, Payload: 1, Total: 4}))
	assert.Equal(t, 1, bar.Current())
	require.NoError(t, bar.Stop())
	assert.Equal(t, 0, bar.Current())
}

func TestReporterFailedStopsEmitter(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	bar := NewBarEmitter(io.Discard, "exporting")
	r := NewReporter(MultiEmitter{NewJSONEmitter(io.Discard), bar}, nil)

	r.Progress(ctx, 1, 3)
	assert.Equal(t, 1, bar.Current())

	r.Failed(ctx, assert.AnError)
	assert.Equal(t, 0, bar.Current(), "a failed export should release the bar")
}

func TestFormatProgress(t *testing.T) {
	f := NewDefaultFileFormatter()

	tests := []struct {
		name    string
		current int
		total   int
		want    string
	}{
		{name: "start", current: 0, total: 4, want: "⏳ Progress: 0/4 (0%)"},
		{name: "half", current: 2, total: 4, want: "⏳ Progress: 2/4 (50%)"},
		{name: "done", current: 4, total: 4, want: "✅ Progress: 4/4 (100%)"},
		{name: "empty", current: 0, total: 0, want: "✅ Progress: 0/0 (0%)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.FormatProgress(tt.current, tt.total))
		})
	}
}

func TestFormatError(t *testing.T) {
	f := NewDefaultFileFormatter()
	assert.Equal(t, "", f.FormatError(nil))
	assert.Equal(t, "❌ Error: "+io.ErrClosedPipe.Error(), f.FormatError(io.ErrClosedPipe))
}

func TestFormatEntry(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name      string
		path      string
		favourite bool
		prefix    string
	}{
		{name: "favourite", path: "/pics/a.png", favourite: true, prefix: "    ★ a.png"},
		{name: "plain", path: "/pics/b.jpg", favourite: false, prefix: "    - b.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := FormatEntry(tt.path, tt.favourite)
			assert.True(t, strings.HasPrefix(line, tt.prefix), "got %q", line)
			assert.True(t, strings.HasSuffix(line, tt.path), "got %q", line)
		})
	}
}
