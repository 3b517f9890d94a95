// Package student contains the HTTP handlers for the Student resource.
//
// HANDLER PATTERN — CLOSURE / FACTORY:
// The router expects func(http.ResponseWriter, *http.Request), which
// leaves no room for a database parameter. Each exported function here
// is a factory: it takes the storage dependency once at registration
// time and returns a handler that closes over it.
//
//	router.HandleFunc("POST /api/students", student.New(store))
//	//                         New(store) runs ONCE at startup; the
//	//                         returned closure runs on EVERY request.
//
// All request and response bodies go through the serializer, so only
// the declared fields (name, age) ever cross the HTTP boundary.
package student

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/EmmaAtom00/students-rest-api/internal/serializer"
	"github.com/EmmaAtom00/students-rest-api/internal/storage"
	"github.com/EmmaAtom00/students-rest-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
// Validates and persists a new student from the JSON request body.
//
// Request body (JSON):
//
//	{ "name": "Alice", "age": 21 }
//
// Success response (201 Created) — the echoed validated fields:
//
//	{ "name": "Alice", "age": 21 }
//
// Error responses:
//
//	400 Bad Request — empty body, malformed JSON, or failed validation
//	500 Internal    — database error
//
// description and date_enrolled are filled by the storage layer, not the
// client; they are not part of the serializer's field set.
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		ser, err := serializer.DecodeStudent(r.Body)

		if errors.Is(err, io.EOF) {
			// Completely empty body — nothing to decode.
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}

		if err != nil {
			// Malformed JSON, wrong types, etc.
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := ser.Validate(); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		// Persist through the interface — handlers stay database-agnostic.
		lastID, err := store.CreateStudent(ser.Name, ser.Age, "")
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("student created", slog.Int64("id", lastID))

		// Echo exactly the validated declared fields back to the client.
		response.WriteJSON(w, http.StatusCreated, ser)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/students
// Returns a JSON array with one serializer object per stored student.
//
// Success response (200 OK):
//
//	[ { "name": "Alice", "age": 21 }, { "name": "Priya", "age": 23 } ]
//
// Returns an empty array [] (not null) when there are no students.
// Array ordering is whatever the storage layer yields.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		students, err := store.GetStudents()
		if err != nil {
			slog.Error("error getting students", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, serializer.FromStudents(students))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/students/{id}
//
// Success response (200 OK):
//
//	{ "name": "Alice", "age": 21 }
//
// Error responses:
//
//	400 Bad Request — id is not a valid integer
//	404 Not Found   — no student with that id
//	500 Internal    — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// PathValue extracts the {id} segment (Go 1.22 ServeMux patterns).
		id := r.PathValue("id")
		slog.Info("getting a student", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		student, err := store.GetStudentByID(intID)
		if err != nil {
			if errors.Is(err, storage.ErrStudentNotFound) {
				response.WriteJSON(w, http.StatusNotFound,
					response.GeneralError(err))
				return
			}
			slog.Error("error getting student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, serializer.FromStudent(student))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/{id}
// Replaces the serializer fields of an existing student. The storage
// layer re-stamps date_enrolled, so an update counts as a fresh save.
//
// Request body (JSON):
//
//	{ "name": "Alice Updated", "age": 22 }
//
// Success response (200 OK) — the updated declared fields:
//
//	{ "name": "Alice Updated", "age": 22 }
//
// Error responses:
//
//	400 Bad Request — invalid id, empty body, or validation failure
//	404 Not Found   — no student with that id
//	500 Internal    — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a student", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		ser, err := serializer.DecodeStudent(r.Body)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		// Same rules as creation.
		if err := ser.Validate(); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		updated, err := store.UpdateStudentByID(intID, ser.Name, ser.Age)
		if err != nil {
			if errors.Is(err, storage.ErrStudentNotFound) {
				response.WriteJSON(w, http.StatusNotFound,
					response.GeneralError(err))
				return
			}
			slog.Error("error updating student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("student updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, serializer.FromStudent(updated))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/students/{id}
//
// Success response (200 OK):
//
//	{ "status": "deleted" }
//
// Error responses:
//
//	400 Bad Request — invalid id
//	404 Not Found   — no student with that id
//	500 Internal    — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a student", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		if err := store.DeleteStudentByID(intID); err != nil {
			if errors.Is(err, storage.ErrStudentNotFound) {
				response.WriteJSON(w, http.StatusNotFound,
					response.GeneralError(err))
				return
			}
			slog.Error("error deleting student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("student deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
