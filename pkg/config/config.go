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

package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete configuration. Every field is optional.
type Config struct {
	// DataDir overrides the platform data directory holding the database
	DataDir string `json:"data_dir,omitempty" yaml:"data_dir,omitempty" toml:"data_dir" hcl:"data_dir,optional"`
	// Destination is the export destination used when none is given
	Destination string `json:"destination,omitempty" yaml:"destination,omitempty" toml:"destination" hcl:"destination,optional"`
	// IgnorePatterns are glob patterns for image names that scans skip
	IgnorePatterns []string `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty" toml:"ignore_patterns" hcl:"ignore_patterns,optional"`
	// Events streams progress events as JSON lines on stdout
	Events bool `json:"events,omitempty" yaml:"events,omitempty" toml:"events" hcl:"events,optional"`
	// Async runs exports as their own goroutine
	Async bool `json:"async,omitempty" yaml:"async,omitempty" toml:"async" hcl:"async,optional"`

	location string
}

// 🏭 Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{}
}

// 🎯 Load loads the configuration from a file. A missing file yields the
// defaults when allowMissing is set.
func Load(ctx context.Context, path string, allowMissing bool) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		if allowMissing && errors.Is(err, os.ErrNotExist) {
			logger.Debug().Str("path", path).Msg("no config file, using defaults")
			return Default(), nil
		}
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks the configuration and normalizes its paths. Relative
// paths are resolved against the directory of the config file.
func (cfg *Config) Validate() error {
	for _, pattern := range cfg.IgnorePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("ignore_patterns: invalid pattern %q", pattern)
		}
	}

	base := ""
	if cfg.location != "" {
		base = filepath.Dir(cfg.location)
	}

	var err error
	if cfg.DataDir, err = resolve(base, cfg.DataDir); err != nil {
		return errors.Errorf("data_dir: %w", err)
	}
	if cfg.Destination, err = resolve(base, cfg.Destination); err != nil {
		return errors.Errorf("destination: %w", err)
	}

	return nil
}

// 📍 Location returns the file the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "<platform default>"
	}
	return fmt.Sprintf("data_dir=%s destination=%s ignore=%v events=%t async=%t",
		dataDir, cfg.Destination, cfg.IgnorePatterns, cfg.Events, cfg.Async)
}

// resolve expands a leading ~ and makes p absolute relative to base
func resolve(base, p string) (string, error) {
	if p == "" {
		return "", nil
	}

	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Errorf("expanding ~: %w", err)
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}

	if !filepath.IsAbs(p) && base != "" {
		p = filepath.Join(base, p)
	}

	return filepath.Clean(p), nil
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		// an empty document is a valid, empty config
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}
