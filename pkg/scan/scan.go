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

// Package scan lists the image files directly inside a folder.
package scan

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🖼️ imageExtensions is the fixed set of recognized extensions, lowercase and without the dot
var imageExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"webp": {},
	"bmp":  {},
	"gif":  {},
}

// 🔧 Options tunes a scan
type Options struct {
	// IgnorePatterns are doublestar patterns matched against entry names
	IgnorePatterns []string
}

// 🔍 IsImage reports whether name carries a recognized image extension.
// A leading dot starts a hidden name, not an extension.
func IsImage(name string) bool {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 || idx == len(name)-1 {
		return false
	}
	_, ok := imageExtensions[strings.ToLower(name[idx+1:])]
	return ok
}

// 📂 Folder returns the absolute paths of the image entries directly inside dir.
// Entries that cannot be read are logged and skipped. Failing to open or list
// dir itself is an error.
func Folder(ctx context.Context, dir string, opts Options) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Errorf("reading folder %s: %w", dir, err)
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, errors.Errorf("reading folder %s: %w", dir, err)
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, errors.Errorf("reading folder %s: %w", dir, err)
	}

	result := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !IsImage(name) {
			continue
		}

		// the entry can vanish or become unreadable between listing and lstat
		if _, err := entry.Info(); err != nil {
			logger.Warn().Err(err).Str("dir", abs).Str("entry", name).Msg("error reading entry")
			continue
		}

		if ignored(ctx, opts.IgnorePatterns, name) {
			continue
		}

		result = append(result, filepath.Join(abs, name))
	}

	logger.Debug().Str("dir", abs).Int("images", len(result)).Int("entries", len(entries)).Msg("scanned folder")

	return result, nil
}

// 🙈 ignored checks name against the ignore patterns
func ignored(ctx context.Context, patterns []string, name string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("entry", name).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			zerolog.Ctx(ctx).Debug().Str("entry", name).Str("pattern", pattern).Msg("entry ignored by pattern")
			return true
		}
	}
	return false
}
