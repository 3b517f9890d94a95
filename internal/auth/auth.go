// Package auth holds the credential primitives: bcrypt password hashing
// and opaque token key generation. It knows nothing about HTTP or
// storage — handlers and main compose it with those layers.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// tokenKeyBytes is the entropy of a token key. 20 random bytes hex-encode
// to a 40-character key.
const tokenKeyBytes = 20

// NewTokenKey returns a fresh opaque token key. The key carries no
// claims or structure — it is only meaningful as a lookup into the
// auth_tokens table.
func NewTokenKey() (string, error) {
	b := make([]byte, tokenKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("auth.NewTokenKey: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashPassword returns the bcrypt hash of a clear-text password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("auth.HashPassword: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
