package blog

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mehmetcc/folio/internal/gate"
	"github.com/mehmetcc/folio/internal/httpx"
	"go.uber.org/zap"
)

type BlogHandler interface {
	Routes() chi.Router
}

type blogHandler struct {
	repo   BlogRepo
	gate   *gate.Gate
	logger *zap.Logger
}

func NewBlogHandler(repo BlogRepo, g *gate.Gate, logger *zap.Logger) BlogHandler {
	return &blogHandler{repo: repo, gate: g, logger: logger}
}

func (h *blogHandler) Routes() chi.Router {
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

func (h *blogHandler) listVisible(w http.ResponseWriter, r *http.Request) { h.list(w, r, false) }
func (h *blogHandler) listAll(w http.ResponseWriter, r *http.Request)     { h.list(w, r, true) }

func (h *blogHandler) list(w http.ResponseWriter, r *http.Request, includeHidden bool) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	posts, err := h.repo.List(ctx, includeHidden)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to load blogs")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, posts)
}

func (h *blogHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "Blog not found")
		return
	}
	p, err := h.repo.Get(r.Context(), id)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	if !p.IsVisible && !gate.IsAdmin(r.Context()) {
		httpx.WriteError(w, http.StatusNotFound, "Blog not found")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *blogHandler) create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	req, err := httpx.DecodeJSON[postRequest](w, r)
	if err == nil {
		err = req.requireCreateFields()
	}
	if err != nil {
		httpx.WriteDecodeError(w, err)
		return
	}

	p := &Post{IsVisible: true}
	req.applyTo(p)
	created, err := h.repo.Create(ctx, p)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *blogHandler) update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "Blog not found")
		return
	}
	req, err := httpx.DecodeJSON[postRequest](w, r)
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

func (h *blogHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "Blog not found")
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.writeRepoError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Blog deleted"})
}

func (h *blogHandler) writeRepoError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "Blog not found")
		return
	}
	h.logger.Error("blog store error", zap.Error(err))
	httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
}

type postRequest struct {
	Title       *string         `json:"title"        validate:"omitempty,min=1,max=200"`
	Excerpt     *string         `json:"excerpt"      validate:"omitempty,max=500"`
	Content     *string         `json:"content"`
	CoverImage  *string         `json:"cover_image"  validate:"omitempty,max=300"`
	Date        *time.Time      `json:"date"`
	ReadingTime *int            `json:"reading_time" validate:"omitempty,min=0"`
	Featured    *bool           `json:"featured"`
	IsVisible   *bool           `json:"is_visible"`
	Author      *string         `json:"author"       validate:"omitempty,max=100"`
	AuthorEmail *string         `json:"author_email" validate:"omitempty,email"`
	Tags        *httpx.NameList `json:"tags"`
}

func (req *postRequest) requireCreateFields() error {
	var missing []httpx.FieldError
	if req.Title == nil || *req.Title == "" {
		missing = append(missing, httpx.FieldError{Field: "title", Rule: "required"})
	}
	if req.Content == nil || *req.Content == "" {
		missing = append(missing, httpx.FieldError{Field: "content", Rule: "required"})
	}
	if missing != nil {
		return &httpx.ValidationError{Fields: missing}
	}
	return nil
}

func (req *postRequest) applyTo(p *Post) {
	if req.Title != nil {
		p.Title = httpx.Sanitize(*req.Title)
	}
	if req.Excerpt != nil {
		p.Excerpt = httpx.Sanitize(*req.Excerpt)
	}
	// content is markdown, rendered client-side; stored verbatim
	if req.Content != nil {
		p.Content = *req.Content
	}
	if req.CoverImage != nil {
		p.CoverImage = httpx.Sanitize(*req.CoverImage)
	}
	if req.Date != nil {
		p.Date = *req.Date
	}
	if req.ReadingTime != nil {
		p.ReadingTime = req.ReadingTime
	}
	if req.Featured != nil {
		p.Featured = *req.Featured
	}
	if req.IsVisible != nil {
		p.IsVisible = *req.IsVisible
	}
	if req.Author != nil {
		if *req.Author == "" {
			p.Author = nil
		} else {
			p.Author = &Author{Name: httpx.Sanitize(*req.Author)}
		}
	}
	if req.AuthorEmail != nil && p.Author != nil {
		p.Author.Email = *req.AuthorEmail
	}
	if req.Tags != nil {
		p.Tags = httpx.SanitizeAll(*req.Tags)
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
}
