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

// Package paths resolves where picfav keeps its per-user state.
package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ AppName is the directory and database name used under the data root
const AppName = "picfav"

// 📂 DataDir returns the platform's per-application data directory for app.
//
//	linux/bsd: $XDG_DATA_HOME/<app> or ~/.local/share/<app>
//	darwin:    ~/Library/Application Support/<app>
//	windows:   %AppData%/<app>
//
// The directory is not created.
func DataDir(app string) (string, error) {
	return dataDir(runtime.GOOS, app, os.Getenv, os.UserHomeDir, os.UserConfigDir)
}

func dataDir(goos, app string, getenv func(string) string, home, config func() (string, error)) (string, error) {
	switch goos {
	case "darwin", "windows", "ios", "plan9":
		root, err := config()
		if err != nil {
			return "", errors.Errorf("resolving user config dir: %w", err)
		}
		return filepath.Join(root, app), nil
	default:
		if xdg := getenv("XDG_DATA_HOME"); xdg != "" && filepath.IsAbs(xdg) {
			return filepath.Join(xdg, app), nil
		}
		h, err := home()
		if err != nil {
			return "", errors.Errorf("resolving home dir: %w", err)
		}
		return filepath.Join(h, ".local", "share", app), nil
	}
}

// 🗄️ DatabaseFile returns the database path inside dataDir
func DatabaseFile(dataDir, app string) string {
	return filepath.Join(dataDir, app+".db")
}
