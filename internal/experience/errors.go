package experience

import "errors"

var ErrNotFound = errors.New("experience not found")
