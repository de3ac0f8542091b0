package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T, maxSize int) *Store {
	t.Helper()
	return NewStoreAt(filepath.Join(t.TempDir(), "history.json"), maxSize)
}

func TestStore_AppendAndLoad(t *testing.T) {
	store := newTestStore(t, 10)

	first := NewEntry("list files", "ls -la", true, 0)
	second := NewEntry("disk usage", "df -h", false, 0)

	if err := store.Append(first); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append(second); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	entries, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Command != "ls -la" || entries[1].Command != "df -h" {
		t.Errorf("Entries out of order: %q, %q", entries[0].Command, entries[1].Command)
	}
	if entries[0].ID == entries[1].ID {
		t.Error("Entries share an ID")
	}
	if !entries[0].Approved || entries[1].Approved {
		t.Error("Approved flags not preserved")
	}
}

func TestStore_CapTrimsOldest(t *testing.T) {
	store := newTestStore(t, 3)

	for i := 0; i < 5; i++ {
		entry := NewEntry(fmt.Sprintf("request %d", i), fmt.Sprintf("cmd%d", i), true, 0)
		if err := store.Append(entry); err != nil {
			t.Fatalf("Append %d failed: %v", i, err)
		}
	}

	entries, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected cap of 3 entries, got %d", len(entries))
	}
	if entries[0].Command != "cmd2" {
		t.Errorf("Expected oldest surviving entry cmd2, got %q", entries[0].Command)
	}
}

func TestStore_RecentNewestFirst(t *testing.T) {
	store := newTestStore(t, 10)
	for i := 0; i < 4; i++ {
		if err := store.Append(NewEntry("r", fmt.Sprintf("cmd%d", i), true, 0)); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	recent, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(recent))
	}
	if recent[0].Command != "cmd3" || recent[1].Command != "cmd2" {
		t.Errorf("Expected newest first, got %q, %q", recent[0].Command, recent[1].Command)
	}
}

func TestStore_MissingFileIsEmpty(t *testing.T) {
	store := newTestStore(t, 10)

	entries, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if entries != nil {
		t.Errorf("Expected nil entries for missing file, got %v", entries)
	}
}

func TestStore_CorruptedFileStartsOver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("not json at all"), 0600); err != nil {
		t.Fatalf("Seed write failed: %v", err)
	}
	store := NewStoreAt(path, 10)

	entries, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty history for corrupted file, got %d entries", len(entries))
	}

	// Appending after corruption replaces the file cleanly.
	if err := store.Append(NewEntry("r", "ls", true, 0)); err != nil {
		t.Fatalf("Append after corruption failed: %v", err)
	}
	entries, _ = store.Load()
	if len(entries) != 1 {
		t.Errorf("Expected 1 entry after recovery, got %d", len(entries))
	}
}

func TestStore_Clear(t *testing.T) {
	store := newTestStore(t, 10)
	if err := store.Append(NewEntry("r", "ls", true, 0)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	entries, _ := store.Load()
	if len(entries) != 0 {
		t.Errorf("Expected empty history after Clear, got %d entries", len(entries))
	}

	// Clearing an already-missing file is not an error.
	if err := store.Clear(); err != nil {
		t.Errorf("Second Clear failed: %v", err)
	}
}
