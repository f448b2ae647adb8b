package experience

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mehmetcc/folio/internal/dbx"
	"github.com/mehmetcc/folio/internal/gate"
	"github.com/mehmetcc/folio/internal/httpx"
	"go.uber.org/zap"
)

const msgNotFound = "Experience not found"

type ExperienceHandler interface {
	Routes() chi.Router
}

type experienceHandler struct {
	repo   ExperienceRepo
	gate   *gate.Gate
	logger *zap.Logger
}

func NewExperienceHandler(repo ExperienceRepo, g *gate.Gate, logger *zap.Logger) ExperienceHandler {
	return &experienceHandler{repo: repo, gate: g, logger: logger}
}

func (h *experienceHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.With(h.gate.Optional).Get("/", h.list)
	r.With(h.gate.Optional).Get("/{id}", h.get)
	r.Group(func(r chi.Router) {
		r.Use(h.gate.RequireAdmin)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
	return r
}

func (h *experienceHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.List(r.Context(), gate.AdminView(r))
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to fetch experiences")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

func (h *experienceHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, msgNotFound)
		return
	}
	e, err := h.repo.Get(r.Context(), id)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	if !e.IsVisible && !gate.IsAdmin(r.Context()) {
		httpx.WriteError(w, http.StatusNotFound, msgNotFound)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, e)
}

func (h *experienceHandler) create(w http.ResponseWriter, r *http.Request) {
	req, err := httpx.DecodeJSON[experienceRequest](w, r)
	if err == nil {
		err = req.requireCreateFields()
	}
	if err != nil {
		httpx.WriteDecodeError(w, err)
		return
	}

	e := &Experience{IsVisible: true}
	req.applyTo(e)
	created, err := h.repo.Create(r.Context(), e)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message":    "Experience created successfully",
		"experience": created,
	})
}

func (h *experienceHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, msgNotFound)
		return
	}
	req, err := httpx.DecodeJSON[experienceRequest](w, r)
	if err != nil {
		httpx.WriteDecodeError(w, err)
		return
	}
	e, err := h.repo.Get(r.Context(), id)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	req.applyTo(e)
	updated, err := h.repo.Update(r.Context(), e)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message":    "Experience updated successfully",
		"experience": updated,
	})
}

func (h *experienceHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.writeRepoError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Experience deleted successfully"})
}

func (h *experienceHandler) writeRepoError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, msgNotFound)
		return
	}
	h.logger.Error("experience store error", zap.Error(err))
	httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
}

type experienceRequest struct {
	Title            *string   `json:"title"      validate:"omitempty,min=1,max=200"`
	Company          *string   `json:"company"    validate:"omitempty,min=1,max=200"`
	Location         *string   `json:"location"   validate:"omitempty,max=200"`
	StartDate        *dbx.Date `json:"start_date"`
	EndDate          *dbx.Date `json:"end_date"`
	IsCurrent        *bool     `json:"is_current"`
	Duration         *string   `json:"duration"   validate:"omitempty,max=100"`
	Responsibilities []string  `json:"responsibilities"`
	Achievements     []string  `json:"achievements"`
	Technologies     []string  `json:"technologies"`
	Color            *string   `json:"color"      validate:"omitempty,max=100"`
	Order            *int      `json:"order"`
	IsVisible        *bool     `json:"is_visible"`
}

func (req *experienceRequest) requireCreateFields() error {
	var missing []httpx.FieldError
	if req.Title == nil || *req.Title == "" {
		missing = append(missing, httpx.FieldError{Field: "title", Rule: "required"})
	}
	if req.Company == nil || *req.Company == "" {
		missing = append(missing, httpx.FieldError{Field: "company", Rule: "required"})
	}
	if missing != nil {
		return &httpx.ValidationError{Fields: missing}
	}
	return nil
}

func (req *experienceRequest) applyTo(e *Experience) {
	for _, f := range []struct {
		src *string
		dst *string
	}{
		{req.Title, &e.Title},
		{req.Company, &e.Company},
		{req.Location, &e.Location},
		{req.Duration, &e.Duration},
		{req.Color, &e.Color},
	} {
		if f.src != nil {
			*f.dst = httpx.Sanitize(*f.src)
		}
	}
	if req.StartDate != nil {
		e.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		e.EndDate = *req.EndDate
	}
	if req.IsCurrent != nil {
		e.IsCurrent = *req.IsCurrent
	}
	if req.Responsibilities != nil {
		e.Responsibilities = httpx.SanitizeAll(req.Responsibilities)
	}
	if req.Achievements != nil {
		e.Achievements = httpx.SanitizeAll(req.Achievements)
	}
	if req.Technologies != nil {
		e.Technologies = httpx.SanitizeAll(req.Technologies)
	}
	e.Responsibilities = orEmpty(e.Responsibilities)
	e.Achievements = orEmpty(e.Achievements)
	e.Technologies = orEmpty(e.Technologies)
	if req.Order != nil {
		e.Order = *req.Order
	}
	if req.IsVisible != nil {
		e.IsVisible = *req.IsVisible
	}
}
