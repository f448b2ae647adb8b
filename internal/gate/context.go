package gate

import (
	"context"
	"net/http"
	"strings"

	"github.com/mehmetcc/folio/internal/token"
)

type ctxKey struct{}

func WithClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, claims)
}

// ClaimsFrom returns the claims attached by the gate, or nil.
func ClaimsFrom(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(ctxKey{}).(*token.Claims)
	return claims
}

// IsAdmin reports whether the request context carries admin claims.
func IsAdmin(ctx context.Context) bool {
	claims := ClaimsFrom(ctx)
	return claims != nil && claims.IsAdmin
}

// AdminView reports whether an admin caller asked for the management view with ?admin=true.
func AdminView(r *http.Request) bool {
	return IsAdmin(r.Context()) && strings.EqualFold(r.URL.Query().Get("admin"), "true")
}
