// Package types holds the shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, and the serializer can all import types without
// depending on each other.
package types

import "time"

// Student is a persisted student record.
//
// The API never exposes this struct directly: the serializer package
// decides which fields cross the HTTP boundary. Description defaults to
// the empty string on create, and DateEnrolled is written by the storage
// layer on every save — create and update alike.
type Student struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	Description  string    `json:"description"`
	DateEnrolled time.Time `json:"date_enrolled"`
}

// User is an account that can obtain an API token.
// PasswordHash is a bcrypt hash; the clear-text password is never stored.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}

// Token is an opaque bearer credential tied to exactly one user.
// Key is the string clients present in the Authorization header.
type Token struct {
	Key     string
	UserID  int64
	Created time.Time
}
