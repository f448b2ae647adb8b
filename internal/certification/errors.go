package certification

import "errors"

var ErrNotFound = errors.New("certification not found")
