// Package prefs persists the board's display preferences as a small
// key-value file. The engine never touches it; callers write on change.
package prefs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/h0rv/kanban/internal/domain"
	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
)

// Preference keys.
const (
	KeyGrouping = "grouping"
	KeySorting  = "sorting"
)

// FileName is the default preferences file name.
const FileName = "prefs.json"

// Store is a string key-value store.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// FileStore keeps preferences in a JSON object on disk.
// The file is read on every Get and rewritten atomically on every Set,
// so several processes never observe a half-written file.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by path. The file need not exist.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file backing the store.
func (f *FileStore) Path() string {
	return f.path
}

// Get returns the value stored under key.
func (f *FileStore) Get(key string) (string, bool, error) {
	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

// Set stores value under key, keeping every other key.
func (f *FileStore) Set(key, value string) error {
	values, err := f.read()
	if err != nil {
		return err
	}
	values[key] = value

	data, err := encode(values)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("cannot create preferences directory: %w", err)
	}
	if err := atomic.WriteFile(f.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("cannot write preferences %s: %w", f.path, err)
	}
	return nil
}

// read loads the file. A missing or empty file is an empty store.
// Comments and trailing commas are accepted.
func (f *FileStore) read() (map[string]string, error) {
	values := make(map[string]string)

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read preferences %s: %w", f.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return values, nil
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid preferences %s: %w", f.path, err)
	}
	if err := json.Unmarshal(standardized, &values); err != nil {
		return nil, fmt.Errorf("invalid preferences %s: %w", f.path, err)
	}
	return values, nil
}

// encode renders values as indented JSON. Keys come out sorted.
func encode(values map[string]string) ([]byte, error) {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("cannot encode preferences: %w", err)
	}
	return append(data, '\n'), nil
}

// MemoryStore is a Store that keeps values in memory only.
type MemoryStore struct {
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *MemoryStore) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *MemoryStore) Set(key, value string) error {
	m.values[key] = value
	return nil
}

// Display is the pair of settings the board reads at startup.
type Display struct {
	Grouping domain.GroupingDimension
	Sorting  domain.SortDimension
}

// DefaultDisplay returns the settings used when nothing is stored.
func DefaultDisplay() Display {
	return Display{Grouping: domain.DefaultGrouping, Sorting: domain.DefaultSorting}
}

// Load reads the display settings from store. Missing, unreadable and
// unrecognized values fall back to the defaults; problems are logged, not returned.
func Load(store Store, logger *slog.Logger) Display {
	display := DefaultDisplay()

	if raw, ok, err := store.Get(KeyGrouping); err != nil {
		logger.Warn("cannot read grouping preference", "error", err)
	} else if ok {
		if g, err := domain.ParseGrouping(raw); err != nil {
			logger.Warn("ignoring stored grouping", "value", raw, "error", err)
		} else {
			display.Grouping = g
		}
	}

	if raw, ok, err := store.Get(KeySorting); err != nil {
		logger.Warn("cannot read sorting preference", "error", err)
	} else if ok {
		if s, err := domain.ParseSorting(raw); err != nil {
			logger.Warn("ignoring stored sorting", "value", raw, "error", err)
		} else {
			display.Sorting = s
		}
	}

	return display
}

// SaveGrouping writes the grouping preference.
func SaveGrouping(store Store, grouping domain.GroupingDimension) error {
	return store.Set(KeyGrouping, string(grouping))
}

// SaveSorting writes the sorting preference.
func SaveSorting(store Store, sorting domain.SortDimension) error {
	return store.Set(KeySorting, string(sorting))
}

// Save writes both preferences.
func Save(store Store, display Display) error {
	if err := SaveGrouping(store, display.Grouping); err != nil {
		return err
	}
	return SaveSorting(store, display.Sorting)
}
