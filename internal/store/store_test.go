package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	// Verify the database file doesn't exist yet
	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatal("database file should not exist before creating store")
	}

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("database file should exist after creating store")
	}
}

func TestNewStore_RunsMigrations(t *testing.T) {
	s := newTestStore(t)

	tables := []string{"settings", "sessions"}
	for _, table := range tables {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s should exist after migrations: %v", table, err)
		}
	}
}

func TestSettings(t *testing.T) {
	t.Run("missing key returns ErrNotFound", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.Settings().Get(KeyColor)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Get() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("set then get round trips", func(t *testing.T) {
		s := newTestStore(t)

		if err := s.Settings().Set(KeyColor, "Red"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := s.Settings().Get(KeyColor)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != "Red" {
			t.Errorf("Get() = %q, want %q", got, "Red")
		}
	})

	t.Run("set replaces previous value", func(t *testing.T) {
		s := newTestStore(t)

		s.Settings().Set(KeyColor, "Red")
		s.Settings().Set(KeyColor, "Blue")

		got, err := s.Settings().Get(KeyColor)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != "Blue" {
			t.Errorf("Get() = %q, want %q", got, "Blue")
		}
	})

	t.Run("integer helpers", func(t *testing.T) {
		s := newTestStore(t)

		if err := s.Settings().SetInt(KeyThickness, 7); err != nil {
			t.Fatalf("SetInt() error = %v", err)
		}

		got, err := s.Settings().GetInt(KeyThickness)
		if err != nil {
			t.Fatalf("GetInt() error = %v", err)
		}
		if got != 7 {
			t.Errorf("GetInt() = %d, want 7", got)
		}
	})

	t.Run("non-numeric value fails GetInt", func(t *testing.T) {
		s := newTestStore(t)

		s.Settings().Set(KeyThickness, "thick")

		if _, err := s.Settings().GetInt(KeyThickness); err == nil {
			t.Error("GetInt() should fail for a non-numeric value")
		}
	})
}

func TestSessions(t *testing.T) {
	t.Run("begin creates a row", func(t *testing.T) {
		s := newTestStore(t)

		session, err := s.Sessions().Begin()
		if err != nil {
			t.Fatalf("Begin() error = %v", err)
		}
		if session.ID == "" {
			t.Fatal("Begin() returned empty session ID")
		}

		got, err := s.Sessions().GetByID(session.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if got.EndedAt.Valid {
			t.Error("new session should not have an end time")
		}
		if got.Strokes != 0 || got.Clears != 0 || got.ColorChanges != 0 {
			t.Errorf("new session counters = %d/%d/%d, want zeros",
				got.Strokes, got.Clears, got.ColorChanges)
		}
	})

	t.Run("finish records counters and end time", func(t *testing.T) {
		s := newTestStore(t)

		session, err := s.Sessions().Begin()
		if err != nil {
			t.Fatalf("Begin() error = %v", err)
		}

		if err := s.Sessions().Finish(session.ID, 12, 3, 5); err != nil {
			t.Fatalf("Finish() error = %v", err)
		}

		got, err := s.Sessions().GetByID(session.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if !got.EndedAt.Valid {
			t.Error("finished session should have an end time")
		}
		if got.Strokes != 12 || got.Clears != 3 || got.ColorChanges != 5 {
			t.Errorf("counters = %d/%d/%d, want 12/3/5",
				got.Strokes, got.Clears, got.ColorChanges)
		}
	})

	t.Run("finish unknown session returns ErrNotFound", func(t *testing.T) {
		s := newTestStore(t)

		err := s.Sessions().Finish("no-such-session", 0, 0, 0)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Finish() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("get unknown session returns ErrNotFound", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.Sessions().GetByID("no-such-session")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("GetByID() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("list returns all sessions", func(t *testing.T) {
		s := newTestStore(t)

		first, _ := s.Sessions().Begin()
		second, _ := s.Sessions().Begin()

		sessions, err := s.Sessions().List()
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(sessions) != 2 {
			t.Fatalf("List() returned %d sessions, want 2", len(sessions))
		}

		ids := map[string]bool{sessions[0].ID: true, sessions[1].ID: true}
		if !ids[first.ID] || !ids[second.ID] {
			t.Error("List() did not return both sessions")
		}
	})
}
