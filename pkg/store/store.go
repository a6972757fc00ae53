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

package store

import (
	"context"
	"database/sql"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/picfav/pkg/paths"
	"gitlab.com/tozd/go/errors"

	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// ErrClosed is returned by operations on a closed store
var ErrClosed = errors.Base("store is closed")

// 🚦 State is how far Open got through startup
type State int

const (
	StateUninitialized State = iota
	// data directory exists
	StateDirectoryReady
	// database file exists and accepts connections
	StateDatabaseReady
	// migrations applied, commands accepted
	StateOperational
)

// String returns a string representation of State
func (s State) String() string {
	switch s {
	case StateDirectoryReady:
		return "directory-ready"
	case StateDatabaseReady:
		return "database-ready"
	case StateOperational:
		return "operational"
	default:
		return "uninitialized"
	}
}

// ⭐ Favourite is one persisted favourite path
type Favourite struct {
	Path string `json:"path"`
}

// 🗄️ Store is the durable set of favourite paths. One Store (and its
// connection pool) is shared by every command in the process.
type Store struct {
	db   *sql.DB
	path string

	mu    sync.RWMutex
	state State
}

// 🏭 Open walks the startup sequence: ensure dataDir exists, create the
// database file if absent, then apply pending migrations. Any failure is
// returned and the partially opened store is released; callers are expected
// to treat that as fatal.
func Open(ctx context.Context, dataDir string) (*Store, error) {
	logger := zerolog.Ctx(ctx)

	s := &Store{path: paths.DatabaseFile(dataDir, paths.AppName)}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, errors.Errorf("creating data directory %s: %w", dataDir, err)
	}
	s.state = StateDirectoryReady

	if err := createIfAbsent(s.path); err != nil {
		return nil, errors.Errorf("creating database %s: %w", s.path, err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, errors.Errorf("opening database %s: %w", s.path, err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, errors.Errorf("setting %q: %w", pragma, err)
		}
	}
	s.db = db
	s.state = StateDatabaseReady

	migrations, err := Migrations()
	if err != nil {
		db.Close()
		return nil, errors.Errorf("loading migrations: %w", err)
	}

	applied, err := migrate(ctx, db, migrations)
	if err != nil {
		db.Close()
		return nil, errors.Errorf("running migrations: %w", err)
	}
	s.state = StateOperational

	logger.Info().Str("db", s.path).Int("applied_migrations", applied).Msg("favourites store ready")

	return s, nil
}

func createIfAbsent(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	return f.Close()
}

// State returns the startup stage the store reached
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Path returns the database file location
func (s *Store) Path() string {
	return s.path
}

// conn returns the pool if the store is usable
func (s *Store) conn() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateOperational || s.db == nil {
		return nil, ErrClosed
	}
	return s.db, nil
}

// ➕ Add inserts path. Adding a path that is already a favourite succeeds
// without creating a second entry.
func (s *Store) Add(ctx context.Context, path string) error {
	db, err := s.conn()
	if err != nil {
		return errors.Errorf("adding favourite: %w", err)
	}

	res, err := db.ExecContext(ctx, "INSERT INTO favourites (path) VALUES (?) ON CONFLICT (path) DO NOTHING", path)
	if err != nil {
		return errors.Errorf("adding favourite: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("favourite already present")
	}
	return nil
}

// 📋 List returns the distinct favourite paths in insertion order
func (s *Store) List(ctx context.Context) ([]Favourite, error) {
	db, err := s.conn()
	if err != nil {
		return nil, errors.Errorf("getting favourites: %w", err)
	}

	rows, err := db.QueryContext(ctx, "SELECT path FROM favourites GROUP BY path ORDER BY MIN(rowid)")
	if err != nil {
		return nil, errors.Errorf("getting favourites: %w", err)
	}
	defer rows.Close()

	favourites := []Favourite{}
	for rows.Next() {
		var f Favourite
		if err := rows.Scan(&f.Path); err != nil {
			return nil, errors.Errorf("getting favourites: scanning row: %w", err)
		}
		favourites = append(favourites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Errorf("getting favourites: %w", err)
	}

	return favourites, nil
}

// 🔍 Contains reports whether path is a favourite
func (s *Store) Contains(ctx context.Context, path string) (bool, error) {
	db, err := s.conn()
	if err != nil {
		return false, errors.Errorf("checking favourite: %w", err)
	}

	var one int
	err = db.QueryRowContext(ctx, "SELECT 1 FROM favourites WHERE path = ? LIMIT 1", path).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Errorf("checking favourite: %w", err)
	}
	return true, nil
}

// ➖ Remove deletes every entry matching path exactly. Removing a path that
// is not a favourite is not an error.
func (s *Store) Remove(ctx context.Context, path string) error {
	db, err := s.conn()
	if err != nil {
		return errors.Errorf("removing favourite: %w", err)
	}

	res, err := db.ExecContext(ctx, "DELETE FROM favourites WHERE path = ?", path)
	if err != nil {
		return errors.Errorf("removing favourite: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil {
		zerolog.Ctx(ctx).Debug().Str("path", path).Int64("rows", n).Msg("removed favourite")
	}
	return nil
}

// Close releases the connection pool
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	s.state = StateUninitialized
	if err != nil {
		return errors.Errorf("closing database: %w", err)
	}
	return nil
}
