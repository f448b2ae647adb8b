package admin

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mehmetcc/folio/internal/gate"
	"github.com/mehmetcc/folio/internal/httpx"
	"github.com/mehmetcc/folio/internal/person"
	"go.uber.org/zap"
)

type AdminHandler interface {
	Routes() chi.Router
}

type adminHandler struct {
	service AdminService
	gate    *gate.Gate
	logger  *zap.Logger
}

func NewAdminHandler(service AdminService, g *gate.Gate, logger *zap.Logger) AdminHandler {
	return &adminHandler{service: service, gate: g, logger: logger}
}

// Routes mounts everything behind RequireAdmin.
func (h *adminHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.gate.RequireAdmin)
	r.Get("/dashboard", h.dashboard)
	r.Get("/users", h.users)
	r.Put("/users/{id}/toggle-admin", h.toggleAdmin)
	return r
}

func (h *adminHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Dashboard(r.Context())
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, d)
}

func (h *adminHandler) users(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.Users(r.Context())
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to load users")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, users)
}

func (h *adminHandler) toggleAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	p, err := h.service.ToggleAdmin(r.Context(), id)
	if err != nil {
		if errors.Is(err, person.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("failed to toggle admin", zap.Int64("user_id", id), zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to update user admin status")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "User admin status updated",
		"user":    p,
	})
}
