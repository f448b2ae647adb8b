package project

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mehmetcc/folio/internal/dbx"
	"github.com/mehmetcc/folio/internal/gate"
	"github.com/mehmetcc/folio/internal/httpx"
	"go.uber.org/zap"
)

type ProjectHandler interface {
	Routes() chi.Router
}

type projectHandler struct {
	repo   ProjectRepo
	gate   *gate.Gate
	logger *zap.Logger
}

func NewProjectHandler(repo ProjectRepo, g *gate.Gate, logger *zap.Logger) ProjectHandler {
	return &projectHandler{repo: repo, gate: g, logger: logger}
}

func (h *projectHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.listVisible)
	r.With(h.gate.Optional).Get("/{id}", h.get)
	r.Group(func(r chi.Router) {
		r.Use(h.gate.RequireAdmin)
		r.Get("/admin", h.listAll)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
	return r
}

func (h *projectHandler) listVisible(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *projectHandler) listAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *projectHandler) list(w http.ResponseWriter, r *http.Request, includeHidden bool) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	projects, err := h.repo.List(ctx, includeHidden)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to load projects")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, projects)
}

func (h *projectHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "Project not found")
		return
	}
	p, err := h.repo.Get(r.Context(), id)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	if !p.IsVisible && !gate.IsAdmin(r.Context()) {
		httpx.WriteError(w, http.StatusNotFound, "Project not found")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *projectHandler) create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	req, err := httpx.DecodeJSON[projectRequest](w, r)
	if err == nil {
		err = req.requireCreateFields()
	}
	if err != nil {
		httpx.WriteDecodeError(w, err)
		return
	}

	p := &Project{IsVisible: true}
	req.applyTo(p)
	created, err := h.repo.Create(ctx, p)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *projectHandler) update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "Project not found")
		return
	}
	req, err := httpx.DecodeJSON[projectRequest](w, r)
	if err != nil {
		httpx.WriteDecodeError(w, err)
		return
	}

	p, err := h.repo.Get(ctx, id)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	req.applyTo(p)
	updated, err := h.repo.Update(ctx, p)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *projectHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "Project not found")
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.writeRepoError(w, err)
		return
	}
	claims := gate.ClaimsFrom(r.Context())
	h.logger.Info("project deleted", zap.Int64("id", id), zap.String("by", claims.Subject))
	httpx.WriteNoContent(w)
}

func (h *projectHandler) writeRepoError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "Project not found")
		return
	}
	h.logger.Error("project store error", zap.Error(err))
	httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
}

// linkList accepts {name,url} objects or bare strings, which become a name with an empty url.
type linkList []Link

func (l *linkList) UnmarshalJSON(b []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	out := make(linkList, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, Link{Name: s})
			continue
		}
		var link Link
		if err := json.Unmarshal(item, &link); err != nil {
			return err
		}
		out = append(out, link)
	}
	*l = out
	return nil
}

type projectRequest struct {
	Title       *string         `json:"title"        validate:"omitempty,min=1,max=200"`
	Description *string         `json:"description"`
	Tech        []string        `json:"tech"`
	TechStack   []string        `json:"tech_stack"`
	Links       *linkList       `json:"links"`
	Image       *string         `json:"image"        validate:"omitempty,max=300"`
	Gallery     []string        `json:"gallery"`
	ProjectType *string         `json:"project_type" validate:"omitempty,max=100"`
	StartDate   *dbx.Date       `json:"start_date"`
	EndDate     *dbx.Date       `json:"end_date"`
	Role        *string         `json:"role"         validate:"omitempty,max=100"`
	TeamSize    *int            `json:"team_size"    validate:"omitempty,min=0"`
	Categories  *httpx.NameList `json:"categories"`
	IsVisible   *bool           `json:"is_visible"`
	Order       *int            `json:"order"`
}

func (req *projectRequest) requireCreateFields() error {
	var missing []httpx.FieldError
	if req.Title == nil || *req.Title == "" {
		missing = append(missing, httpx.FieldError{Field: "title", Rule: "required"})
	}
	if req.Description == nil {
		missing = append(missing, httpx.FieldError{Field: "description", Rule: "required"})
	}
	if missing != nil {
		return &httpx.ValidationError{Fields: missing}
	}
	return nil
}

// applyTo copies every field present in the request onto p.
func (req *projectRequest) applyTo(p *Project) {
	if req.Title != nil {
		p.Title = httpx.Sanitize(*req.Title)
	}
	if req.Description != nil {
		p.Description = httpx.Sanitize(*req.Description)
	}
	if req.TechStack != nil {
		p.Tech = req.TechStack
	}
	if req.Tech != nil {
		p.Tech = req.Tech
	}
	if req.Links != nil {
		p.Links = []Link(*req.Links)
	}
	if req.Image != nil {
		p.Image = httpx.Sanitize(*req.Image)
	}
	if req.Gallery != nil {
		p.Gallery = req.Gallery
	}
	if req.ProjectType != nil {
		p.ProjectType = httpx.Sanitize(*req.ProjectType)
	}
	if req.StartDate != nil {
		p.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		p.EndDate = *req.EndDate
	}
	if req.Role != nil {
		p.Role = httpx.Sanitize(*req.Role)
	}
	if req.TeamSize != nil {
		p.TeamSize = req.TeamSize
	}
	if req.Categories != nil {
		p.Categories = []string(*req.Categories)
	}
	if req.IsVisible != nil {
		p.IsVisible = *req.IsVisible
	}
	if req.Order != nil {
		p.Order = *req.Order
	}
	if p.Tech == nil {
		p.Tech = []string{}
	}
	if p.Links == nil {
		p.Links = []Link{}
	}
	if p.Gallery == nil {
		p.Gallery = []string{}
	}
	if p.Categories == nil {
		p.Categories = []string{}
	}
}
