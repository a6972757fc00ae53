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

package operation

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrNoBaseName means a source path has no final file name component
	ErrNoBaseName = errors.Base("invalid path (no file name)")
	// ErrNotUTF8 means a source file name cannot be written as a destination name
	ErrNotUTF8 = errors.Base("non-UTF8 file name")
)

// 📈 ProgressFunc is called once per copied file with the 1-based count of
// files finished so far and the size of the export
type ProgressFunc func(ctx context.Context, completed, total int)

// 💥 ExportError reports the file an export stopped at. Files listed in
// Completed were already written to the destination and are left there.
type ExportError struct {
	Path      string
	Completed []string
	Err       error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("exporting %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// 📦 Export copies each source into destination, flat, in order, and returns
// the base names written. The first failure stops the export; nothing already
// copied is rolled back. progress may be nil.
func Export(ctx context.Context, destination string, sources []string, progress ProgressFunc) ([]string, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("destination", destination).Int("files", len(sources)).Msg("starting export")

	exported := make([]string, 0, len(sources))
	var copied int64

	for _, src := range sources {
		name, err := baseName(src)
		if err != nil {
			return nil, &ExportError{Path: src, Completed: exported, Err: err}
		}

		dst := filepath.Join(destination, name)
		n, err := copyFile(src, dst)
		if err != nil {
			return nil, &ExportError{Path: src, Completed: exported, Err: err}
		}
		copied += n

		exported = append(exported, name)
		logger.Debug().Str("source", src).Str("destination", dst).Str("size", humanize.Bytes(uint64(n))).Msg("exported file")

		if progress != nil {
			progress(ctx, len(exported), len(sources))
		}
	}

	logger.Info().
		Str("destination", destination).
		Int("files", len(exported)).
		Str("size", humanize.Bytes(uint64(copied))).
		Msg("export complete")

	return exported, nil
}

// 🏷️ baseName returns the final path component of p as a destination file name
func baseName(p string) (string, error) {
	if p == "" {
		return "", ErrNoBaseName
	}

	name := filepath.Base(filepath.Clean(p))
	switch name {
	case ".", "..", string(filepath.Separator):
		return "", ErrNoBaseName
	}
	if vol := filepath.VolumeName(p); vol != "" && name == vol+string(filepath.Separator) {
		return "", ErrNoBaseName
	}

	if !utf8.ValidString(name) {
		return "", ErrNotUTF8
	}

	return name, nil
}

// 📋 copyFile copies src over dst, keeping src's permission bits
func copyFile(src, dst string) (int64, error) {
	source, err := os.Open(src)
	if err != nil {
		return 0, errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return 0, errors.Errorf("reading source file: %w", err)
	}
	if info.IsDir() {
		return 0, errors.Errorf("opening source file: %s is a directory", src)
	}

	// exporting into the source folder: truncating dst would empty src
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(info, dstInfo) {
		return info.Size(), nil
	}

	destination, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, errors.Errorf("creating destination file: %w", err)
	}

	n, err := io.Copy(destination, source)
	if err != nil {
		destination.Close()
		return n, errors.Errorf("copying file: %w", err)
	}

	if err := destination.Close(); err != nil {
		return n, errors.Errorf("closing destination file: %w", err)
	}

	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return n, errors.Errorf("setting destination permissions: %w", err)
	}

	return n, nil
}
