package about

import "errors"

var (
	ErrNotFound      = errors.New("about info not found")
	ErrAlreadyExists = errors.New("about info already exists")
)
