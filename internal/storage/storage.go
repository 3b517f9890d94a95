// Package storage defines the Storage interface — the contract any
// database backend must satisfy to work with this application.
//
// Handlers depend only on this interface, never on a concrete database:
// swapping SQLite for PostgreSQL means implementing these methods and
// changing one line in main, and tests pass a fake instead of a real DB.
package storage

import (
	"errors"

	"github.com/EmmaAtom00/students-rest-api/internal/types"
)

// Sentinel errors returned by implementations so callers can map
// "not found" to the right HTTP status without string matching.
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrTokenNotFound   = errors.New("token not found")
)

// Storage is the database contract. Any concrete type implementing all
// of these methods satisfies it implicitly.
type Storage interface {
	// CreateStudent inserts a new student record, filling description
	// with the given default and stamping date_enrolled, and returns the
	// auto-generated primary-key ID.
	CreateStudent(name string, age int, description string) (int64, error)

	// GetStudentByID fetches a single student by primary key.
	// Returns ErrStudentNotFound if no row matches.
	GetStudentByID(id int64) (types.Student, error)

	// GetStudents returns every student in the database.
	// Returns an empty slice (not nil) when there are none.
	GetStudents() ([]types.Student, error)

	// UpdateStudentByID replaces the serializer-owned fields (name, age)
	// of an existing student and re-stamps date_enrolled. Returns the
	// updated record, or ErrStudentNotFound.
	UpdateStudentByID(id int64, name string, age int) (types.Student, error)

	// DeleteStudentByID removes a student record permanently.
	// Returns ErrStudentNotFound if no row matched.
	DeleteStudentByID(id int64) error

	// CreateUser inserts an account with an already-hashed password and
	// returns its ID. Usernames are unique.
	CreateUser(username, passwordHash string) (int64, error)

	// GetUserByUsername fetches an account for a credential check.
	// Returns ErrUserNotFound if the username is unknown.
	GetUserByUsername(username string) (types.User, error)

	// GetOrCreateToken returns the user's existing token key, or persists
	// the supplied candidate key and returns it. Each user has at most
	// one token, and repeated calls return the same key.
	GetOrCreateToken(userID int64, candidateKey string) (string, error)

	// GetUserByToken resolves a presented token key to its owner.
	// Returns ErrTokenNotFound for unknown keys.
	GetUserByToken(key string) (types.User, error)
}
