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

package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestDataDir(t *testing.T) {
	home := func() (string, error) { return "/home/u", nil }
	config := func() (string, error) { return "/cfg", nil }

	tests := []struct {
		name   string
		goos   string
		env    map[string]string
		home   func() (string, error)
		want   string
		errStr string
	}{
		{
			name: "linux_default",
			goos: "linux",
			want: filepath.Join("/home/u", ".local", "share", "picfav"),
		},
		{
			name: "linux_xdg",
			goos: "linux",
			env:  map[string]string{"XDG_DATA_HOME": "/xdg"},
			want: filepath.Join("/xdg", "picfav"),
		},
		{
			name: "linux_relative_xdg_ignored",
			goos: "linux",
			env:  map[string]string{"XDG_DATA_HOME": "rel"},
			want: filepath.Join("/home/u", ".local", "share", "picfav"),
		},
		{
			name: "darwin",
			goos: "darwin",
			want: filepath.Join("/cfg", "picfav"),
		},
		{
			name: "windows",
			goos: "windows",
			want: filepath.Join("/cfg", "picfav"),
		},
		{
			name:   "no_home",
			goos:   "linux",
			home:   func() (string, error) { return "", errors.New("no home") },
			errStr: "resolving home dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(k string) string { return tt.env[k] }
			h := home
			if tt.home != nil {
				h = tt.home
			}
			got, err := dataDir(tt.goos, AppName, getenv, h, config)
			if tt.errStr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errStr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDatabaseFile(t *testing.T) {
	assert.Equal(t, filepath.Join("/data", "picfav.db"), DatabaseFile("/data", AppName))
}
