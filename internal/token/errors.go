package token

import "errors"

// ErrInvalidToken is returned for every parse failure: bad signature,
// wrong algorithm, malformed payload or expiry.
var ErrInvalidToken = errors.New("invalid token")
