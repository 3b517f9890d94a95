// Package response provides helpers for writing consistent JSON HTTP
// responses. Every handler sends JSON; centralising the header/status/
// encode dance keeps error shapes identical across the whole API.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is the standard envelope for error cases. Success responses
// may be any JSON shape (a serializer object, a list, a token); errors
// always look like:
//
//	{ "status": "error", "error": "field Age is required" }
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// Status constants — a typo in a literal would ship "eroor" silently,
// a typo in a constant fails to compile.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes data JSON-encoded with the given HTTP status code.
//
// Order matters: Content-Type header, then WriteHeader, then body —
// headers are locked once the status line is written.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into the standard envelope. Use it
// for decode failures, storage errors, and auth rejections.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError flattens validator field errors into one readable
// message, one clause per failing field.
//
// Example: { "status": "error", "error": "field Age is required" }
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
	}
}
