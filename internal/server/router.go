package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/mehmetcc/folio/internal/config"
	"github.com/mehmetcc/folio/internal/web"
	"go.uber.org/zap"
	"moul.io/chizap"
)

// Mountable is implemented by every resource handler.
type Mountable interface {
	Routes() chi.Router
}

// Handlers groups the resource handlers by their mount point under /api.
type Handlers struct {
	Auth            Mountable
	Admin           Mountable
	Projects        Mountable
	Blogs           Mountable
	Certifications  Mountable
	About           Mountable
	TechnicalSkills Mountable
	Experiences     Mountable
	Contact         Mountable
	Web             web.WebHandler
}

func NewRouter(cfg *config.AppConfig, h Handlers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(chizap.New(logger, &chizap.Opts{
		WithReferer:   true,
		WithUserAgent: true,
	}))
	r.Use(middleware.Recoverer)
	if cfg.RateLimitEnabled {
		r.Use(httprate.LimitByIP(cfg.RateLimitPerMin, time.Minute))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{cfg.FrontendOrigin},
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))

		r.Get("/health", h.Web.Health)
		r.Get("/resume", h.Web.Resume)
		r.Mount("/auth", h.Auth.Routes())
		r.Mount("/admin", h.Admin.Routes())
		r.Mount("/projects", h.Projects.Routes())
		r.Mount("/blogs", h.Blogs.Routes())
		r.Mount("/certifications", h.Certifications.Routes())
		r.Mount("/about", h.About.Routes())
		r.Mount("/technical-skills", h.TechnicalSkills.Routes())
		r.Mount("/experiences", h.Experiences.Routes())
		r.Mount("/contact", h.Contact.Routes())
		r.NotFound(h.Web.APINotFound)
	})

	r.NotFound(h.Web.Frontend)
	r.Get("/*", h.Web.Frontend)
	return r
}
