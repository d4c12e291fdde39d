// Package jsonfile persists each collection as one JSON document under a
// data directory. Documents are rewritten whole on every mutation, via a
// temp file and an atomic rename, so a crash never leaves a half-written
// collection behind.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	subscriptionsFile  = "subscriptions.json"
	eventsFile         = "events.json"
	usageChecksFile    = "usage_checks.json"
	paymentMethodsFile = "payment_methods.json"
	settingsFile       = "settings.json"
)

// Store is the shared file access layer for the per-collection
// repositories. One mutex serializes all reads and writes; the tool is
// single-user and collections are small.
type Store struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

// NewStore creates the data directory if needed and returns a store
// rooted there.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// read unmarshals the named document into dst. A missing file leaves dst
// untouched, so callers start from their zero value on first use.
func (s *Store) read(name string, dst any) error {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// write replaces the named document atomically.
func (s *Store) write(name string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
