package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/EmmaAtom00/students-rest-api/internal/config"
	"github.com/EmmaAtom00/students-rest-api/internal/storage"
)

// newTestStore opens a fresh database file under t.TempDir so every
// test starts from an empty schema.
func newTestStore(t *testing.T) *SQLite {
	t.Helper()

	cfg := &config.Config{
		StoragePath: filepath.Join(t.TempDir(), "test.db"),
	}

	store, err := New(cfg)
	if err != nil {
		t.Fatalf("sqlite.New: %v", err)
	}
	t.Cleanup(func() { store.Db.Close() })

	return store
}

func TestStudentCRUD(t *testing.T) {
	store := newTestStore(t)

	t.Run("create stamps defaults", func(t *testing.T) {
		id, err := store.CreateStudent("Alice", 21, "")
		if err != nil {
			t.Fatalf("CreateStudent: %v", err)
		}
		if id == 0 {
			t.Fatal("expected a non-zero id")
		}

		got, err := store.GetStudentByID(id)
		if err != nil {
			t.Fatalf("GetStudentByID: %v", err)
		}
		if got.Name != "Alice" || got.Age != 21 {
			t.Errorf("stored %+v, want Alice/21", got)
		}
		if got.Description != "" {
			t.Errorf("expected empty description default, got %q", got.Description)
		}
		if got.DateEnrolled.IsZero() {
			t.Error("expected date_enrolled to be stamped on create")
		}
	})

	t.Run("get by unknown id", func(t *testing.T) {
		_, err := store.GetStudentByID(9999)
		if !errors.Is(err, storage.ErrStudentNotFound) {
			t.Fatalf("expected ErrStudentNotFound, got %v", err)
		}
	})

	t.Run("list returns every row", func(t *testing.T) {
		if _, err := store.CreateStudent("Priya", 23, ""); err != nil {
			t.Fatalf("CreateStudent: %v", err)
		}

		students, err := store.GetStudents()
		if err != nil {
			t.Fatalf("GetStudents: %v", err)
		}
		if len(students) != 2 {
			t.Fatalf("expected 2 students, got %d", len(students))
		}
	})

	t.Run("update rewrites fields and date_enrolled", func(t *testing.T) {
		id, err := store.CreateStudent("Rohan", 20, "")
		if err != nil {
			t.Fatalf("CreateStudent: %v", err)
		}
		before, err := store.GetStudentByID(id)
		if err != nil {
			t.Fatalf("GetStudentByID: %v", err)
		}

		// date_enrolled is written on every save; give the clock room
		// to advance past the create stamp.
		time.Sleep(20 * time.Millisecond)

		updated, err := store.UpdateStudentByID(id, "Rohan Updated", 21)
		if err != nil {
			t.Fatalf("UpdateStudentByID: %v", err)
		}
		if updated.Name != "Rohan Updated" || updated.Age != 21 {
			t.Errorf("updated to %+v, want Rohan Updated/21", updated)
		}
		if !updated.DateEnrolled.After(before.DateEnrolled) {
			t.Errorf("date_enrolled not refreshed: before=%v after=%v",
				before.DateEnrolled, updated.DateEnrolled)
		}
	})

	t.Run("update of unknown id", func(t *testing.T) {
		_, err := store.UpdateStudentByID(9999, "Nobody", 1)
		if !errors.Is(err, storage.ErrStudentNotFound) {
			t.Fatalf("expected ErrStudentNotFound, got %v", err)
		}
	})

	t.Run("delete removes the row", func(t *testing.T) {
		id, err := store.CreateStudent("Temp", 30, "")
		if err != nil {
			t.Fatalf("CreateStudent: %v", err)
		}

		if err := store.DeleteStudentByID(id); err != nil {
			t.Fatalf("DeleteStudentByID: %v", err)
		}
		if _, err := store.GetStudentByID(id); !errors.Is(err, storage.ErrStudentNotFound) {
			t.Fatalf("expected ErrStudentNotFound after delete, got %v", err)
		}
		if err := store.DeleteStudentByID(id); !errors.Is(err, storage.ErrStudentNotFound) {
			t.Fatalf("expected ErrStudentNotFound on second delete, got %v", err)
		}
	})

	t.Run("empty list is a non-nil slice", func(t *testing.T) {
		fresh := newTestStore(t)

		students, err := fresh.GetStudents()
		if err != nil {
			t.Fatalf("GetStudents: %v", err)
		}
		if students == nil {
			t.Fatal("expected non-nil slice")
		}
		if len(students) != 0 {
			t.Fatalf("expected 0 students, got %d", len(students))
		}
	})
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)

	t.Run("create and fetch by username", func(t *testing.T) {
		id, err := store.CreateUser("admin", "hashed-password")
		if err != nil {
			t.Fatalf("CreateUser: %v", err)
		}

		user, err := store.GetUserByUsername("admin")
		if err != nil {
			t.Fatalf("GetUserByUsername: %v", err)
		}
		if user.ID != id {
			t.Errorf("expected id %d, got %d", id, user.ID)
		}
		if user.PasswordHash != "hashed-password" {
			t.Errorf("expected stored hash, got %q", user.PasswordHash)
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := store.GetUserByUsername("ghost")
		if !errors.Is(err, storage.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("duplicate username fails", func(t *testing.T) {
		if _, err := store.CreateUser("admin", "other-hash"); err == nil {
			t.Fatal("expected unique-constraint error, got nil")
		}
	})
}

func TestTokens(t *testing.T) {
	store := newTestStore(t)

	userID, err := store.CreateUser("admin", "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	t.Run("first call persists the candidate key", func(t *testing.T) {
		key, err := store.GetOrCreateToken(userID, "candidate-key-1")
		if err != nil {
			t.Fatalf("GetOrCreateToken: %v", err)
		}
		if key != "candidate-key-1" {
			t.Errorf("expected candidate key back, got %q", key)
		}
	})

	t.Run("repeat call keeps the original key", func(t *testing.T) {
		key, err := store.GetOrCreateToken(userID, "candidate-key-2")
		if err != nil {
			t.Fatalf("GetOrCreateToken: %v", err)
		}
		if key != "candidate-key-1" {
			t.Errorf("expected the original key, got %q", key)
		}
	})

	t.Run("token resolves to its owner", func(t *testing.T) {
		user, err := store.GetUserByToken("candidate-key-1")
		if err != nil {
			t.Fatalf("GetUserByToken: %v", err)
		}
		if user.ID != userID || user.Username != "admin" {
			t.Errorf("resolved %+v, want the admin user", user)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := store.GetUserByToken("no-such-key")
		if !errors.Is(err, storage.ErrTokenNotFound) {
			t.Fatalf("expected ErrTokenNotFound, got %v", err)
		}
	})
}
