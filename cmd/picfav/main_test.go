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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// 🧪 picfav runs one command line against dataDir
func picfav(t *testing.T, dataDir string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"--data-dir", dataDir}, args...), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeImages(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	out := make([]string, 0, len(names))
	for _, name := range names {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("pixels of "+name), 0644))
		out = append(out, p)
	}
	return out
}

func TestFavouritesWorkflow(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	dataDir := t.TempDir()
	pics := t.TempDir()
	images := writeImages(t, pics, "a.png", "b.jpg", "readme.txt")

	res := picfav(t, dataDir, "scan", "--events", pics)
	require.Equal(t, 0, res.code, res.stderr)
	var scanned []string
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &scanned))
	assert.ElementsMatch(t, images[:2], scanned)

	res = picfav(t, dataDir, "add", images[0], images[1], images[0])
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "★ a.png")

	res = picfav(t, dataDir, "list", "--events")
	require.Equal(t, 0, res.code, res.stderr)
	assert.JSONEq(t, `[{"path":"`+images[0]+`"},{"path":"`+images[1]+`"}]`, res.stdout)

	res = picfav(t, dataDir, "scan", pics)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "★ a.png")
	assert.Contains(t, res.stdout, "2 images")

	dst := t.TempDir()
	res = picfav(t, dataDir, "export", "--events", dst)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t,
		`{"event":"export-progress","payload":1}`+"\n"+
			`{"event":"export-progress","payload":2}`+"\n"+
			`["a.png","b.jpg"]`+"\n",
		res.stdout, "stdout should carry the event stream then the exported names")
	assert.Contains(t, res.stderr, "exported 2 files")
	assert.FileExists(t, filepath.Join(dst, "a.png"))
	assert.FileExists(t, filepath.Join(dst, "b.jpg"))

	res = picfav(t, dataDir, "remove", images[0])
	require.Equal(t, 0, res.code, res.stderr)

	res = picfav(t, dataDir, "list", "--events")
	require.Equal(t, 0, res.code, res.stderr)
	assert.JSONEq(t, `[{"path":"`+images[1]+`"}]`, res.stdout)
}

func TestExportFiles(t *testing.T) {
	dataDir := t.TempDir()
	images := writeImages(t, t.TempDir(), "one.gif", "two.bmp")
	dst := t.TempDir()

	res := picfav(t, dataDir, "export", "--events", "--files", strings.Join(images, ","), dst)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, 2, strings.Count(res.stdout, "export-progress"))
	assert.FileExists(t, filepath.Join(dst, "one.gif"))
	assert.FileExists(t, filepath.Join(dst, "two.bmp"))
}

func TestExportListsNames(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	dataDir := t.TempDir()
	images := writeImages(t, t.TempDir(), "one.gif", "two.bmp")

	res := picfav(t, dataDir, "export", "--files", strings.Join(images, ","), t.TempDir())
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "✅ exported one.gif")
	assert.Contains(t, res.stdout, "✅ exported two.bmp")
	assert.Contains(t, res.stdout, "✅ exported 2 files")
}

func TestExportFailureListsCompleted(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	dir := t.TempDir()
	images := writeImages(t, dir, "first.png", "third.png")
	sources := []string{images[0], filepath.Join(dir, "second.png"), images[1]}
	dst := t.TempDir()

	res := picfav(t, t.TempDir(), "export", "--events", "--files", strings.Join(sources, ","), dst)
	assert.Equal(t, 1, res.code)
	assert.Equal(t,
		`{"event":"export-progress","payload":1}`+"\n"+
			`["first.png"]`+"\n",
		res.stdout, "names copied before the failure should follow the events")
	assert.Contains(t, res.stderr, "exporting "+sources[1])

	res = picfav(t, t.TempDir(), "export", "--files", strings.Join(sources, ","), dst)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, "⚠️  1 file copied before the export stopped")
	assert.Contains(t, res.stdout, "ℹ️  first.png")
}

func TestExportHelpMentionsCursor(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"export", "--help"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "terminal cursor is hidden")
	assert.Contains(t, stdout.String(), "single JSON array")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "exports")
	require.NoError(t, os.Mkdir(dst, 0755))

	cfgPath := filepath.Join(dir, "picfav.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("destination = \"exports\"\nevents = true\n"), 0644))

	images := writeImages(t, t.TempDir(), "c.webp")
	dataDir := t.TempDir()

	res := picfav(t, dataDir, "--config", cfgPath, "add", images[0])
	require.Equal(t, 0, res.code, res.stderr)

	res = picfav(t, dataDir, "--config", cfgPath, "export")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, `{"event":"export-progress","payload":1}`+"\n"+`["c.webp"]`+"\n", res.stdout)
	assert.FileExists(t, filepath.Join(dst, "c.webp"))
}

func TestFailures(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	blocked := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocked, nil, 0644))

	tests := []struct {
		name        string
		dataDir     string
		args        []string
		errContains string
	}{
		{
			name:        "store_cannot_open",
			dataDir:     blocked,
			args:        []string{"list"},
			errContains: "initializing favourites store",
		},
		{
			name:        "missing_config",
			args:        []string{"--config", filepath.Join(t.TempDir(), "nope.yaml"), "list"},
			errContains: "loading config",
		},
		{
			name:        "no_destination",
			args:        []string{"export"},
			errContains: "no export destination given",
		},
		{
			name:        "missing_folder",
			args:        []string{"scan", filepath.Join(t.TempDir(), "gone")},
			errContains: "reading folder",
		},
		{
			name:        "missing_export_source",
			args:        []string{"export", "--events", "--files", "/does/not/exist.png", t.TempDir()},
			errContains: "exporting /does/not/exist.png",
		},
		{
			name:        "bad_args",
			args:        []string{"add"},
			errContains: "requires at least 1 arg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataDir := tt.dataDir
			if dataDir == "" {
				dataDir = t.TempDir()
			}

			res := picfav(t, dataDir, tt.args...)
			assert.Equal(t, 1, res.code)
			assert.Contains(t, res.stderr, "❌ ")
			assert.Contains(t, res.stderr, tt.errContains)
		})
	}
}
