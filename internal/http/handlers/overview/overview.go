// Package overview serves the unauthenticated landing route: a fixed
// JSON document, handy as a smoke test that the service is up before
// any data or credentials exist.
package overview

import (
	"net/http"

	"github.com/EmmaAtom00/students-rest-api/internal/utils/response"
)

// Get handles GET / and always returns the same payload:
//
//	{ "username": "admin", "years_active": 10 }
func Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]any{
			"username":     "admin",
			"years_active": 10,
		})
	}
}
