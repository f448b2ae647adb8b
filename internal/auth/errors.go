package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingBasicAuth   = errors.New("missing or invalid basic auth credentials")
)
