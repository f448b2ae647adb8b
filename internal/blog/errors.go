package blog

import "errors"

var ErrNotFound = errors.New("blog not found")
