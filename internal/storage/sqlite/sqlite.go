// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite stores everything in a single file on disk — no network, no
// separate server process, nothing to install beyond the driver. The
// blank import below registers the sqlite3 driver with database/sql via
// the driver package's init(); we never call it directly.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/EmmaAtom00/students-rest-api/internal/config"
	"github.com/EmmaAtom00/students-rest-api/internal/storage"
	"github.com/EmmaAtom00/students-rest-api/internal/types"

	// Side-effect import: registers the "sqlite3" driver. Without it
	// sql.Open("sqlite3", ...) fails with "unknown driver".
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// The embedded *sql.DB is a connection pool and is safe for concurrent
// use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at cfg.StoragePath, creates the schema
// if it does not already exist, and returns a ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	// sql.Open validates the driver name and DSN but does not connect;
	// the first real connection happens on the first query.
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent — safe on every startup.
	//
	// students.date_enrolled is written by this package on every save,
	// never by the caller. auth_tokens.user_id is UNIQUE: one token per
	// user, so repeated logins hand back the same key.
	schema := []string{
		`CREATE TABLE IF NOT EXISTS students (
			id            INTEGER  PRIMARY KEY AUTOINCREMENT,
			name          TEXT     NOT NULL,
			age           INTEGER  NOT NULL,
			description   TEXT     NOT NULL DEFAULT '',
			date_enrolled DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			username      TEXT    NOT NULL UNIQUE,
			password_hash TEXT    NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS auth_tokens (
			key     TEXT     PRIMARY KEY,
			user_id INTEGER  NOT NULL UNIQUE REFERENCES users(id),
			created DATETIME NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("sqlite.New: create schema: %w", err)
		}
	}

	return &SQLite{Db: db}, nil
}

// CreateStudent inserts a new row into the students table.
//
// Prepared statements keep user input out of the SQL text entirely: the
// driver sends query and values separately, so the values can never be
// interpreted as SQL syntax.
func (s *SQLite) CreateStudent(name string, age int, description string) (int64, error) {
	stmt, err := s.Db.Prepare(
		"INSERT INTO students (name, age, description, date_enrolled) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: prepare: %w", err)
	}
	defer stmt.Close()

	// date_enrolled is stamped here, not supplied by the caller.
	result, err := stmt.Exec(name, age, description, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: last insert id: %w", err)
	}

	return lastID, nil
}

// GetStudentByID fetches exactly one student row matched by primary key.
func (s *SQLite) GetStudentByID(id int64) (types.Student, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, name, age, description, date_enrolled FROM students WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	var student types.Student

	// Scan's argument order must match the SELECT column order.
	err = stmt.QueryRow(id).Scan(
		&student.ID,
		&student.Name,
		&student.Age,
		&student.Description,
		&student.DateEnrolled,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, storage.ErrStudentNotFound
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	return student, nil
}

// GetStudents returns all student rows as a slice.
func (s *SQLite) GetStudents() ([]types.Student, error) {
	stmt, err := s.Db.Prepare(
		// Columns listed explicitly — SELECT * would silently break
		// Scan's ordering the day a column is added.
		"SELECT id, name, age, description, date_enrolled FROM students",
	)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	// Non-nil empty slice: the list endpoint promises [] over null.
	students := make([]types.Student, 0)

	for rows.Next() {
		var student types.Student

		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Age,
			&student.Description,
			&student.DateEnrolled,
		); err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}

		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// UpdateStudentByID replaces the serializer-owned fields of a student
// and re-stamps date_enrolled, mirroring the create path. description
// is deliberately untouched: it is not part of the API field set.
func (s *SQLite) UpdateStudentByID(id int64, name string, age int) (types.Student, error) {
	stmt, err := s.Db.Prepare(
		"UPDATE students SET name = ?, age = ?, date_enrolled = ? WHERE id = ?",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(name, age, time.Now().UTC(), id)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: rows affected: %w", err)
	}
	if affected == 0 {
		return types.Student{}, storage.ErrStudentNotFound
	}

	// Re-fetch so the caller echoes exactly what is stored.
	return s.GetStudentByID(id)
}

// DeleteStudentByID removes a student row by primary key.
func (s *SQLite) DeleteStudentByID(id int64) error {
	stmt, err := s.Db.Prepare("DELETE FROM students WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(id)
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrStudentNotFound
	}

	return nil
}

// CreateUser inserts an account row. The username column is UNIQUE, so
// inserting a duplicate surfaces as a driver error to the caller.
func (s *SQLite) CreateUser(username, passwordHash string) (int64, error) {
	stmt, err := s.Db.Prepare(
		"INSERT INTO users (username, password_hash) VALUES (?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("CreateUser: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(username, passwordHash)
	if err != nil {
		return 0, fmt.Errorf("CreateUser: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateUser: last insert id: %w", err)
	}

	return lastID, nil
}

// GetUserByUsername fetches an account for a credential check.
func (s *SQLite) GetUserByUsername(username string) (types.User, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, username, password_hash FROM users WHERE username = ? LIMIT 1",
	)
	if err != nil {
		return types.User{}, fmt.Errorf("GetUserByUsername: prepare: %w", err)
	}
	defer stmt.Close()

	var user types.User
	err = stmt.QueryRow(username).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, storage.ErrUserNotFound
		}
		return types.User{}, fmt.Errorf("GetUserByUsername: scan: %w", err)
	}

	return user, nil
}

// GetOrCreateToken returns the user's existing token key, creating a row
// from candidateKey only when the user has none yet. auth_tokens.user_id
// is UNIQUE, so a user can never accumulate more than one key.
func (s *SQLite) GetOrCreateToken(userID int64, candidateKey string) (string, error) {
	var key string
	err := s.Db.QueryRow(
		"SELECT key FROM auth_tokens WHERE user_id = ? LIMIT 1", userID,
	).Scan(&key)
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("GetOrCreateToken: lookup: %w", err)
	}

	_, err = s.Db.Exec(
		"INSERT INTO auth_tokens (key, user_id, created) VALUES (?, ?, ?)",
		candidateKey, userID, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("GetOrCreateToken: insert: %w", err)
	}

	return candidateKey, nil
}

// GetUserByToken resolves a presented token key to its owning account.
func (s *SQLite) GetUserByToken(key string) (types.User, error) {
	stmt, err := s.Db.Prepare(`
		SELECT u.id, u.username, u.password_hash
		FROM auth_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.key = ?
		LIMIT 1
	`)
	if err != nil {
		return types.User{}, fmt.Errorf("GetUserByToken: prepare: %w", err)
	}
	defer stmt.Close()

	var user types.User
	err = stmt.QueryRow(key).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, storage.ErrTokenNotFound
		}
		return types.User{}, fmt.Errorf("GetUserByToken: scan: %w", err)
	}

	return user, nil
}
