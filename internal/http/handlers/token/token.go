// Package token contains the token-issuance handler: the only way for a
// client to turn a username/password pair into an API credential.
package token

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/EmmaAtom00/students-rest-api/internal/auth"
	"github.com/EmmaAtom00/students-rest-api/internal/serializer"
	"github.com/EmmaAtom00/students-rest-api/internal/storage"
	"github.com/EmmaAtom00/students-rest-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// errInvalidCredentials is the single rejection message for unknown
// usernames and wrong passwords alike, so the endpoint never reveals
// which half of the pair was wrong.
var errInvalidCredentials = errors.New("unable to log in with provided credentials")

// ─────────────────────────────────────────────────────────────────────────────
// Obtain handles POST /api/token/
// Checks a username/password pair and returns the account's API token.
//
// Request body (JSON):
//
//	{ "username": "admin", "password": "secret" }
//
// Success response (200 OK):
//
//	{ "token": "9944b09199c62bcf9418ad846dd0e4bbdfc6ee4b" }
//
// The token is persistent: logging in again returns the same key.
//
// Error responses:
//
//	400 Bad Request — empty/malformed body, missing fields, or bad
//	                  credentials (indistinguishable on purpose)
//	500 Internal    — database or key-generation error
//
// ─────────────────────────────────────────────────────────────────────────────
func Obtain(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ser, err := serializer.DecodeToken(r.Body)

		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := ser.Validate(); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		user, err := store.GetUserByUsername(ser.Username)
		if err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				slog.Info("token request for unknown user",
					slog.String("username", ser.Username))
				response.WriteJSON(w, http.StatusBadRequest,
					response.GeneralError(errInvalidCredentials))
				return
			}
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		if !auth.CheckPassword(user.PasswordHash, ser.Password) {
			slog.Info("token request with wrong password",
				slog.String("username", ser.Username))
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errInvalidCredentials))
			return
		}

		// A candidate key is generated up front; storage discards it if
		// the user already has one and hands back the existing key.
		candidate, err := auth.NewTokenKey()
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		key, err := store.GetOrCreateToken(user.ID, candidate)
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("token issued", slog.String("username", user.Username))
		response.WriteJSON(w, http.StatusOK, map[string]string{"token": key})
	}
}
