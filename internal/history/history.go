// Package history records completed invocations so users can review the
// commands vox generated for them.
package history

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/vox-sh/vox/internal/config"
)

// Entry is one recorded invocation.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Request   string    `json:"request"`
	Command   string    `json:"command"`
	Approved  bool      `json:"approved"`
	ExitCode  int       `json:"exit_code"`
}

// Store persists entries as a JSON array, newest last, capped at maxSize.
type Store struct {
	path    string
	maxSize int
}

// NewStore creates a store at the default per-user path.
func NewStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(home, config.DefaultConfigDir, config.DefaultHistoryFileName)
	return NewStoreAt(path, config.DefaultMaxHistorySize), nil
}

// NewStoreAt creates a store with an explicit path and cap.
func NewStoreAt(path string, maxSize int) *Store {
	if maxSize <= 0 {
		maxSize = config.DefaultMaxHistorySize
	}
	return &Store{path: path, maxSize: maxSize}
}

// NewEntry builds an entry with a fresh ID and the current time.
func NewEntry(request, command string, approved bool, exitCode int) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Request:   request,
		Command:   command,
		Approved:  approved,
		ExitCode:  exitCode,
	}
}

// Append adds an entry, trimming the oldest entries past the cap.
func (s *Store) Append(entry Entry) error {
	entries, err := s.Load()
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	if len(entries) > s.maxSize {
		entries = entries[len(entries)-s.maxSize:]
	}
	return s.save(entries)
}

// Load returns all recorded entries, oldest first. A missing file is an
// empty history, not an error.
func (s *Store) Load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		// A corrupted history file should not block the pipeline; start over.
		return nil, nil
	}
	return entries, nil
}

// Recent returns up to n of the newest entries, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	entries, err := s.Load()
	if err != nil {
		return nil, err
	}
	if len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	// Reverse so the newest entry comes first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Clear removes the history file.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Store) save(entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), config.ConfigDirPermissions); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, config.ConfigFilePermissions)
}
