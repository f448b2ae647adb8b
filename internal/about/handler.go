package about

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mehmetcc/folio/internal/dbx"
	"github.com/mehmetcc/folio/internal/gate"
	"github.com/mehmetcc/folio/internal/httpx"
	"go.uber.org/zap"
)

const (
	msgNotFound      = "About info not found"
	msgAlreadyExists = "About info already exists. Use PUT to update."
)

type AboutHandler interface {
	Routes() chi.Router
}

type aboutHandler struct {
	repo   AboutRepo
	gate   *gate.Gate
	logger *zap.Logger
}

func NewAboutHandler(repo AboutRepo, g *gate.Gate, logger *zap.Logger) AboutHandler {
	return &aboutHandler{repo: repo, gate: g, logger: logger}
}

func (h *aboutHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.get)
	r.Group(func(r chi.Router) {
		r.Use(h.gate.RequireAdmin)
		r.Post("/", h.create)
		r.Put("/", h.update)
		r.Delete("/", h.delete)
	})
	return r
}

func (h *aboutHandler) get(w http.ResponseWriter, r *http.Request) {
	a, err := h.repo.Get(r.Context())
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, a)
}

func (h *aboutHandler) create(w http.ResponseWriter, r *http.Request) {
	req, err := httpx.DecodeJSON[aboutRequest](w, r)
	if err == nil {
		err = req.requireCreateFields()
	}
	if err != nil {
		httpx.WriteDecodeError(w, err)
		return
	}

	a := &About{}
	req.applyTo(a)
	created, err := h.repo.Create(r.Context(), a)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *aboutHandler) update(w http.ResponseWriter, r *http.Request) {
	req, err := httpx.DecodeJSON[aboutRequest](w, r)
	if err != nil {
		httpx.WriteDecodeError(w, err)
		return
	}
	a, err := h.repo.Get(r.Context())
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	req.applyTo(a)
	updated, err := h.repo.Update(r.Context(), a)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

// delete succeeds whether or not a record exists.
func (h *aboutHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context()); err != nil {
		h.writeRepoError(w, err)
		return
	}
	httpx.WriteNoContent(w)
}

func (h *aboutHandler) writeRepoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, ErrAlreadyExists):
		httpx.WriteError(w, http.StatusBadRequest, msgAlreadyExists)
	default:
		h.logger.Error("about store error", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

type aboutRequest struct {
	Name        *string           `json:"name"        validate:"omitempty,min=1,max=100"`
	Headline    *string           `json:"headline"    validate:"omitempty,max=200"`
	Bio         *string           `json:"bio"`
	Photo       *string           `json:"photo"       validate:"omitempty,max=300"`
	CoverImage  *string           `json:"cover_image" validate:"omitempty,max=300"`
	Location    *string           `json:"location"    validate:"omitempty,max=200"`
	Email       *string           `json:"email"       validate:"omitempty,email"`
	Phone       *string           `json:"phone"       validate:"omitempty,max=50"`
	Birthday    *dbx.Date         `json:"birthday"`
	ResumeURL   *string           `json:"resume_url"  validate:"omitempty,max=300"`
	SocialLinks map[string]string `json:"social_links"`
}

func (req *aboutRequest) requireCreateFields() error {
	var missing []httpx.FieldError
	if req.Name == nil || *req.Name == "" {
		missing = append(missing, httpx.FieldError{Field: "name", Rule: "required"})
	}
	if req.Bio == nil {
		missing = append(missing, httpx.FieldError{Field: "bio", Rule: "required"})
	}
	if missing != nil {
		return &httpx.ValidationError{Fields: missing}
	}
	return nil
}

func (req *aboutRequest) applyTo(a *About) {
	for _, f := range []struct {
		src *string
		dst *string
	}{
		{req.Name, &a.Name},
		{req.Headline, &a.Headline},
		{req.Bio, &a.Bio},
		{req.Photo, &a.Photo},
		{req.CoverImage, &a.CoverImage},
		{req.Location, &a.Location},
		{req.Email, &a.Email},
		{req.Phone, &a.Phone},
		{req.ResumeURL, &a.ResumeURL},
	} {
		if f.src != nil {
			*f.dst = httpx.Sanitize(*f.src)
		}
	}
	if req.Birthday != nil {
		a.Birthday = *req.Birthday
	}
	if req.SocialLinks != nil {
		links := make(map[string]string, len(req.SocialLinks))
		for k, v := range req.SocialLinks {
			links[httpx.Sanitize(k)] = httpx.Sanitize(v)
		}
		a.SocialLinks = links
	}
	if a.SocialLinks == nil {
		a.SocialLinks = map[string]string{}
	}
}
