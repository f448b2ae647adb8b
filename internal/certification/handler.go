package certification

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mehmetcc/folio/internal/dbx"
	"github.com/mehmetcc/folio/internal/gate"
	"github.com/mehmetcc/folio/internal/httpx"
	"go.uber.org/zap"
)

type CertificationHandler interface {
	Routes() chi.Router
}

type certificationHandler struct {
	repo   CertificationRepo
	gate   *gate.Gate
	logger *zap.Logger
}

func NewCertificationHandler(repo CertificationRepo, g *gate.Gate, logger *zap.Logger) CertificationHandler {
	return &certificationHandler{repo: repo, gate: g, logger: logger}
}

func (h *certificationHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Group(func(r chi.Router) {
		r.Use(h.gate.RequireAdmin)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
	return r
}

func (h *certificationHandler) list(w http.ResponseWriter, r *http.Request) {
	certs, err := h.repo.List(r.Context())
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to load certifications")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, certs)
}

func (h *certificationHandler) create(w http.ResponseWriter, r *http.Request) {
	req, err := httpx.DecodeJSON[certificationRequest](w, r)
	if err == nil {
		err = req.requireCreateFields()
	}
	if err != nil {
		httpx.WriteDecodeError(w, err)
		return
	}

	c := &Certification{}
	req.applyTo(c)
	created, err := h.repo.Create(r.Context(), c)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *certificationHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "Certification not found")
		return
	}
	req, err := httpx.DecodeJSON[certificationRequest](w, r)
	if err != nil {
		httpx.WriteDecodeError(w, err)
		return
	}
	c, err := h.repo.Get(r.Context(), id)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	req.applyTo(c)
	updated, err := h.repo.Update(r.Context(), c)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *certificationHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "Certification not found")
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.writeRepoError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Certification deleted"})
}

func (h *certificationHandler) writeRepoError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "Certification not found")
		return
	}
	h.logger.Error("certification store error", zap.Error(err))
	httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
}

type certificationRequest struct {
	Name           *string   `json:"name"            validate:"omitempty,min=1,max=200"`
	Issuer         *string   `json:"issuer"          validate:"omitempty,min=1,max=200"`
	Date           *string   `json:"date"            validate:"omitempty,max=100"`
	CredentialURL  *string   `json:"credential_url"  validate:"omitempty,max=300"`
	Image          *string   `json:"image"           validate:"omitempty,max=300"`
	Description    *string   `json:"description"`
	Skills         []string  `json:"skills"`
	CertificateID  *string   `json:"certificate_id"  validate:"omitempty,max=100"`
	ExpirationDate *dbx.Date `json:"expiration_date"`
}

func (req *certificationRequest) requireCreateFields() error {
	var missing []httpx.FieldError
	if req.Name == nil || *req.Name == "" {
		missing = append(missing, httpx.FieldError{Field: "name", Rule: "required"})
	}
	if req.Issuer == nil || *req.Issuer == "" {
		missing = append(missing, httpx.FieldError{Field: "issuer", Rule: "required"})
	}
	if missing != nil {
		return &httpx.ValidationError{Fields: missing}
	}
	return nil
}

func (req *certificationRequest) applyTo(c *Certification) {
	for _, f := range []struct {
		src *string
		dst *string
	}{
		{req.Name, &c.Name},
		{req.Issuer, &c.Issuer},
		{req.Date, &c.Date},
		{req.CredentialURL, &c.CredentialURL},
		{req.Image, &c.Image},
		{req.Description, &c.Description},
		{req.CertificateID, &c.CertificateID},
	} {
		if f.src != nil {
			*f.dst = httpx.Sanitize(*f.src)
		}
	}
	if req.Skills != nil {
		c.Skills = httpx.SanitizeAll(req.Skills)
	}
	if c.Skills == nil {
		c.Skills = []string{}
	}
	if req.ExpirationDate != nil {
		c.ExpirationDate = *req.ExpirationDate
	}
}
