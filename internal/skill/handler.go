package skill

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mehmetcc/folio/internal/gate"
	"github.com/mehmetcc/folio/internal/httpx"
	"go.uber.org/zap"
)

type SkillHandler interface {
	Routes() chi.Router
}

type skillHandler struct {
	repo   SkillRepo
	gate   *gate.Gate
	logger *zap.Logger
}

func NewSkillHandler(repo SkillRepo, g *gate.Gate, logger *zap.Logger) SkillHandler {
	return &skillHandler{repo: repo, gate: g, logger: logger}
}

func (h *skillHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.With(h.gate.Optional).Get("/", h.list)
	r.Group(func(r chi.Router) {
		r.Use(h.gate.RequireAdmin)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
	return r
}

func (h *skillHandler) list(w http.ResponseWriter, r *http.Request) {
	skills, err := h.repo.List(r.Context(), gate.AdminView(r))
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to fetch technical skills")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, skills)
}

func (h *skillHandler) create(w http.ResponseWriter, r *http.Request) {
	req, err := httpx.DecodeJSON[skillRequest](w, r)
	if err == nil {
		err = req.requireCreateFields()
	}
	if err != nil {
		httpx.WriteDecodeError(w, err)
		return
	}

	s := &Skill{IsVisible: true}
	req.applyTo(s)
	created, err := h.repo.Create(r.Context(), s)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *skillHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "Technical skill not found")
		return
	}
	req, err := httpx.DecodeJSON[skillRequest](w, r)
	if err != nil {
		httpx.WriteDecodeError(w, err)
		return
	}
	s, err := h.repo.Get(r.Context(), id)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	req.applyTo(s)
	updated, err := h.repo.Update(r.Context(), s)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *skillHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "Technical skill not found")
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.writeRepoError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Technical skill deleted successfully"})
}

func (h *skillHandler) writeRepoError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "Technical skill not found")
		return
	}
	h.logger.Error("technical skill store error", zap.Error(err))
	httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
}

type skillRequest struct {
	Title     *string  `json:"title"      validate:"omitempty,min=1,max=200"`
	Skills    []string `json:"skills"`
	Color     *string  `json:"color"      validate:"omitempty,max=100"`
	Icon      *string  `json:"icon"       validate:"omitempty,max=50"`
	Order     *int     `json:"order"`
	IsVisible *bool    `json:"is_visible"`
}

func (req *skillRequest) requireCreateFields() error {
	if req.Title == nil || *req.Title == "" {
		return &httpx.ValidationError{Fields: []httpx.FieldError{{Field: "title", Rule: "required"}}}
	}
	return nil
}

func (req *skillRequest) applyTo(s *Skill) {
	if req.Title != nil {
		s.Title = httpx.Sanitize(*req.Title)
	}
	if req.Skills != nil {
		s.Skills = httpx.SanitizeAll(req.Skills)
	}
	if s.Skills == nil {
		s.Skills = []string{}
	}
	if req.Color != nil {
		s.Color = httpx.Sanitize(*req.Color)
	}
	if req.Icon != nil {
		s.Icon = httpx.Sanitize(*req.Icon)
	}
	if req.Order != nil {
		s.Order = *req.Order
	}
	if req.IsVisible != nil {
		s.IsVisible = *req.IsVisible
	}
}
