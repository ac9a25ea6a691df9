// Package diskcache persists fetched API data and auth session state between
// CLI invocations. Each key lives in its own JSON file written with a
// write-to-temp-then-rename discipline, so a concurrent reader never observes
// a half-written entry and a crash mid-write leaves the previous entry
// intact. The cache is a performance optimisation only: anything unreadable
// is reported as a miss, never as an error.
package diskcache

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/halide-labs/dehancer-cli/pkg/cachedir"
)

// Store reads and writes cache entries inside a cachedir.Dir.
type Store struct {
	dir cachedir.Dir

	// now is swapped out in tests.
	now func() time.Time
}

// entry is the on-disk JSON structure for one key.
type entry struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Payload   json.RawMessage `json:"payload"`
}

// New creates a Store over the given directory.
func New(dir cachedir.Dir) *Store {
	return &Store{dir: dir, now: time.Now}
}

// Get decodes the payload stored under key into dest and reports whether a
// usable entry was found. Missing, corrupt, or unreadable entries are a miss.
func (s *Store) Get(key string, dest any) bool {
	e, ok := s.read(key)
	if !ok {
		return false
	}

	if err := json.Unmarshal(e.Payload, dest); err != nil {
		slog.Debug("cache entry payload corrupt, treating as miss", "key", key, "error", err)
		return false
	}

	return true
}

// GetString is a convenience for entries whose payload is a single string,
// such as auth tokens.
func (s *Store) GetString(key string) (string, bool) {
	var v string
	if !s.Get(key, &v) {
		return "", false
	}
	return v, true
}

// FetchedAt returns when the entry under key was last written.
func (s *Store) FetchedAt(key string) (time.Time, bool) {
	e, ok := s.read(key)
	if !ok {
		return time.Time{}, false
	}
	return e.FetchedAt, true
}

// Fresh reports whether key exists and was fetched within maxAge. A missing
// or corrupt entry is never fresh.
func (s *Store) Fresh(key string, maxAge time.Duration) bool {
	fetched, ok := s.FetchedAt(key)
	if !ok {
		return false
	}
	return s.now().Sub(fetched) <= maxAge
}

// Put stores value under key, overwriting any previous entry atomically.
func (s *Store) Put(key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}

	data, err := json.Marshal(entry{FetchedAt: s.now(), Payload: payload})
	if err != nil {
		return err
	}

	if err := s.dir.Ensure(); err != nil {
		return err
	}

	path := s.dir.EntryPath(key)

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+key+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	return nil
}

// Delete removes the entry under key. Deleting a missing entry is not an
// error.
func (s *Store) Delete(key string) error {
	err := os.Remove(s.dir.EntryPath(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Clear removes every entry. Clearing an empty or missing cache is not an
// error.
func (s *Store) Clear() error {
	for _, path := range s.dir.EntryFiles() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// read loads and decodes the entry file for key.
func (s *Store) read(key string) (entry, bool) {
	data, err := os.ReadFile(s.dir.EntryPath(key)) //nolint:gosec // path is derived from a fixed key set inside the cache dir
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Debug("cache entry unreadable, treating as miss", "key", key, "error", err)
		}
		return entry{}, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		slog.Debug("cache entry corrupt, treating as miss", "key", key, "error", err)
		return entry{}, false
	}

	return e, true
}
