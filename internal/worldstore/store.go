// Package worldstore persists the entire worldmodel.World as a single JSON
// document, replacing the teacher's internal/persistence SQLite-via-sqlx
// layer: spec.md requires a single world.json file with an atomic
// temp-then-rename write and external-edit detection by mtime, which a
// relational schema cannot express directly (see DESIGN.md for the
// dropped-dependency justification). The save/load/normalize-on-load shape
// — one entry point per lifecycle stage, tolerant of missing fields — is
// kept from the teacher's internal/persistence/db.go.
package worldstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

// Store manages the on-disk world.json file.
type Store struct {
	path       string
	lastModAt  time.Time
	lastModSet bool
}

// New returns a Store targeting path (typically "<dir>/world.json").
func New(path string) *Store {
	return &Store{path: path}
}

// Exists reports whether the world file is already present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads and normalizes the world document, recording its mtime so a
// later ExternallyModified call can detect a concurrent external edit.
func (s *Store) Load() (*worldmodel.World, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("worldstore: read %s: %w", s.path, err)
	}

	var w worldmodel.World
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("worldstore: decode %s: %w", s.path, err)
	}
	w.Normalize()

	if fi, statErr := os.Stat(s.path); statErr == nil {
		s.lastModAt = fi.ModTime()
		s.lastModSet = true
	}

	return &w, nil
}

// ExternallyModified reports whether the file's mtime has advanced since
// the last Load/Save performed by this Store instance — evidence that
// another process touched world.json out of band.
func (s *Store) ExternallyModified() (bool, error) {
	if !s.lastModSet {
		return false, nil
	}
	fi, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("worldstore: stat %s: %w", s.path, err)
	}
	return fi.ModTime().After(s.lastModAt), nil
}

// Save writes w to disk atomically: encode to a temp file in the same
// directory, fsync, then rename over the target. Rename is atomic on the
// same filesystem, so a crash mid-write never leaves world.json truncated.
func (s *Store) Save(w *worldmodel.World) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("worldstore: mkdir: %w", err)
	}

	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return fmt.Errorf("worldstore: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".world-*.tmp")
	if err != nil {
		return fmt.Errorf("worldstore: create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once rename succeeds

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("worldstore: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("worldstore: sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("worldstore: close temp: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("worldstore: rename: %w", err)
	}

	if fi, statErr := os.Stat(s.path); statErr == nil {
		s.lastModAt = fi.ModTime()
		s.lastModSet = true
	}
	return nil
}
