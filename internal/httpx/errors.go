package httpx

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var (
	ErrUnsupportedMedia = errors.New("Content-Type must be application/json")
	ErrInvalidJSON      = errors.New("invalid request body")
	ErrTrailingData     = errors.New("request body must contain a single JSON object")
	ErrInvalidID        = errors.New("invalid id")
)

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

type ErrorResponse[T any] struct {
	Error   string `json:"error"`
	Details T      `json:"details,omitempty"`
}

// ValidationError wraps validator failures so callers can render per-field details.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string { return "validation failed" }

func ValidationDetails(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Rule: "invalid", Param: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, FieldError{
			Field: e.Field(),
			Rule:  e.Tag(),
			Param: e.Param(),
		})
	}
	return out
}
