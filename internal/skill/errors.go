package skill

import "errors"

var ErrNotFound = errors.New("technical skill not found")
