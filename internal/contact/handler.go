package contact

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mehmetcc/folio/internal/gate"
	"github.com/mehmetcc/folio/internal/httpx"
	"go.uber.org/zap"
)

const msgNotFound = "Contact message not found"

type ContactHandler interface {
	Routes() chi.Router
}

type contactHandler struct {
	repo   MessageRepo
	gate   *gate.Gate
	logger *zap.Logger
}

func NewContactHandler(repo MessageRepo, g *gate.Gate, logger *zap.Logger) ContactHandler {
	return &contactHandler{repo: repo, gate: g, logger: logger}
}

func (h *contactHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.submit)
	r.Route("/admin/messages", func(r chi.Router) {
		r.Use(h.gate.RequireAdmin)
		r.Get("/", h.list)
		r.Put("/mark-all-read", h.markAllRead)
		r.Put("/{id}/mark-read", h.markRead)
		r.Delete("/{id}", h.delete)
	})
	return r
}

type submitRequest struct {
	Name                   string `json:"name"                     validate:"required,min=1,max=120"`
	Email                  string `json:"email"                    validate:"required,email,max=120"`
	Subject                string `json:"subject"                  validate:"required,min=1,max=200"`
	Message                string `json:"message"                  validate:"required,min=10"`
	Phone                  string `json:"phone"                    validate:"max=50"`
	PreferredContactMethod string `json:"preferred_contact_method" validate:"max=50"`
}

func (h *contactHandler) submit(w http.ResponseWriter, r *http.Request) {
	req, err := httpx.DecodeJSON[submitRequest](w, r)
	if err != nil {
		httpx.WriteDecodeError(w, err)
		return
	}

	created, err := h.repo.Create(r.Context(), &Message{
		Name:                   httpx.Sanitize(req.Name),
		Email:                  httpx.Sanitize(req.Email),
		Subject:                httpx.Sanitize(req.Subject),
		Message:                httpx.Sanitize(req.Message),
		Phone:                  httpx.Sanitize(req.Phone),
		PreferredContactMethod: httpx.Sanitize(req.PreferredContactMethod),
	})
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to send message")
		return
	}
	h.logger.Info("contact message received", zap.Int64("id", created.ID))
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *contactHandler) list(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.repo.List(r.Context())
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to load messages")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, msgs)
}

func (h *contactHandler) markRead(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err := h.repo.MarkRead(r.Context(), id); err != nil {
		h.writeRepoError(w, err, "Failed to mark message as read")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Contact message marked as read successfully"})
}

func (h *contactHandler) markAllRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.repo.MarkAllRead(r.Context())
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to mark messages as read")
		return
	}
	h.logger.Info("contact messages marked read", zap.Int64("count", n))
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "All contact messages marked as read successfully"})
}

func (h *contactHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.writeRepoError(w, err, "Failed to delete message")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Contact message deleted successfully"})
}

func (h *contactHandler) writeRepoError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, msgNotFound)
		return
	}
	h.logger.Error("contact store error", zap.Error(err))
	httpx.WriteError(w, http.StatusInternalServerError, msg)
}
