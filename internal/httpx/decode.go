package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20 // 1MB

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator. Field names in errors use json tags.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// DecodeJSON runs the checks every JSON endpoint shares: content type, body
// size, a single JSON value, then struct validation.
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var req T
	if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		return req, ErrUnsupportedMedia
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		return req, ErrInvalidJSON
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF { // check if there's any trailing data
		return req, ErrTrailingData
	}

	if err := Validator().Struct(req); err != nil {
		var inv *validator.InvalidValidationError
		if errors.As(err, &inv) {
			// non-struct payloads carry no tags to check
			return req, nil
		}
		return req, &ValidationError{Fields: ValidationDetails(err)}
	}
	return req, nil
}

// WriteDecodeError renders an error returned by DecodeJSON.
func WriteDecodeError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		WriteErrorDetails(w, http.StatusBadRequest, ErrorResponse[[]FieldError]{
			Error:   "Validation error",
			Details: verr.Fields,
		})
	case errors.Is(err, ErrUnsupportedMedia):
		WriteError(w, http.StatusUnsupportedMediaType, err.Error())
	default:
		WriteError(w, http.StatusBadRequest, err.Error())
	}
}
