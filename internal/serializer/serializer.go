// Package serializer converts between persisted records and their
// JSON-facing representations, validating inbound data before it ever
// reaches storage.
//
// A serializer declares the exact field set the API exposes. Model
// fields it does not declare (id, description, date_enrolled) never
// appear in responses and cannot be set by clients — they are owned by
// the model layer and filled with defaults on save.
package serializer

import (
	"encoding/json"
	"io"

	"github.com/EmmaAtom00/students-rest-api/internal/types"
	"github.com/go-playground/validator/v10"
)

// A single validator instance is enough: it is safe for concurrent use
// and caches struct metadata between calls.
var validate = validator.New()

// StudentSerializer declares the public field set of the Student
// resource: name and age, nothing else.
//
// The validate tags are checked before persistence. "required" rejects
// a missing field and the zero value alike, so an absent age and an
// explicit age of 0 fail the same way.
type StudentSerializer struct {
	Name string `json:"name" validate:"required"`
	Age  int    `json:"age"  validate:"required"`
}

// DecodeStudent reads one JSON object from r into a StudentSerializer.
// The raw decode error is returned unwrapped so callers can detect the
// empty-body case with errors.Is(err, io.EOF).
func DecodeStudent(r io.Reader) (StudentSerializer, error) {
	var s StudentSerializer
	err := json.NewDecoder(r).Decode(&s)
	return s, err
}

// Validate checks the declared-field rules. On failure the returned
// error is a validator.ValidationErrors carrying one entry per bad
// field, ready for response.ValidationError.
func (s StudentSerializer) Validate() error {
	return validate.Struct(s)
}

// Student converts validated inbound data to a model value. Undeclared
// fields stay at their zero values for the storage layer to default.
func (s StudentSerializer) Student() types.Student {
	return types.Student{
		Name: s.Name,
		Age:  s.Age,
	}
}

// FromStudent projects a stored record down to the declared field set.
func FromStudent(st types.Student) StudentSerializer {
	return StudentSerializer{
		Name: st.Name,
		Age:  st.Age,
	}
}

// FromStudents projects a list of records. Always returns a non-nil
// slice so an empty list encodes as [] rather than null.
func FromStudents(list []types.Student) []StudentSerializer {
	out := make([]StudentSerializer, 0, len(list))
	for _, st := range list {
		out = append(out, FromStudent(st))
	}
	return out
}

// TokenSerializer is the request body of the token-issuance endpoint.
type TokenSerializer struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// DecodeToken reads one JSON credentials object from r.
func DecodeToken(r io.Reader) (TokenSerializer, error) {
	var s TokenSerializer
	err := json.NewDecoder(r).Decode(&s)
	return s, err
}

// Validate checks that both credential fields are present.
func (s TokenSerializer) Validate() error {
	return validate.Struct(s)
}
