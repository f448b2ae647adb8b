package gate

import (
	"net/http"

	"github.com/mehmetcc/folio/internal/httpx"
	"go.uber.org/zap"
)

const (
	msgUnauthorized  = "Unauthorized"
	msgAdminRequired = "Admin access required"
)

// Gate wraps handlers with the two authorization levels. Resolved claims are
// placed in the request context for the wrapped handler.
type Gate struct {
	resolver *Resolver
	logger   *zap.Logger
}

func New(resolver *Resolver, logger *zap.Logger) *Gate {
	return &Gate{resolver: resolver, logger: logger}
}

func (g *Gate) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := g.resolver.Resolve(r.Header.Get("Authorization"))
		if claims == nil {
			g.logger.Debug("unauthenticated request", zap.String("path", r.URL.Path))
			httpx.WriteError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := g.resolver.Resolve(r.Header.Get("Authorization"))
		if claims == nil {
			g.logger.Debug("unauthenticated request", zap.String("path", r.URL.Path))
			httpx.WriteError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		if !claims.IsAdmin {
			g.logger.Info("admin access denied",
				zap.String("sub", claims.Subject),
				zap.String("path", r.URL.Path),
			)
			httpx.WriteError(w, http.StatusForbidden, msgAdminRequired)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// Optional attaches claims when a valid token is present and never rejects.
func (g *Gate) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims := g.resolver.Resolve(r.Header.Get("Authorization")); claims != nil {
			r = r.WithContext(WithClaims(r.Context(), claims))
		}
		next.ServeHTTP(w, r)
	})
}
