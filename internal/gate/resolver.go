package gate

import (
	"strings"

	"github.com/mehmetcc/folio/internal/token"
)

const bearerPrefix = "Bearer "

// Resolver turns an Authorization header value into verified claims.
type Resolver struct {
	codec token.Codec
}

func NewResolver(codec token.Codec) *Resolver {
	return &Resolver{codec: codec}
}

// Resolve accepts both "Bearer <token>" and a bare token. It returns nil when
// the header is empty or the token does not verify.
func (r *Resolver) Resolve(header string) *token.Claims {
	if header == "" {
		return nil
	}
	raw := strings.TrimPrefix(header, bearerPrefix)
	claims, err := r.codec.Parse(raw)
	if err != nil {
		return nil
	}
	return claims
}
