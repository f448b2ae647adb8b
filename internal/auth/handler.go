package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mehmetcc/folio/internal/gate"
	"github.com/mehmetcc/folio/internal/httpx"
	"github.com/mehmetcc/folio/internal/person"
	"go.uber.org/zap"
)

type AuthenticationHandler interface {
	Token(w http.ResponseWriter, r *http.Request)
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	Routes() chi.Router
}

type authenticationHandler struct {
	logger      *zap.Logger
	authService AuthService
	gate        *gate.Gate
}

func NewAuthenticationHandler(authService AuthService, g *gate.Gate, l *zap.Logger) AuthenticationHandler {
	return &authenticationHandler{
		logger:      l,
		authService: authService,
		gate:        g,
	}
}

func (a *authenticationHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/token", a.Token)
	r.Post("/register", a.Register)
	r.Post("/login", a.Login)
	r.With(a.gate.RequireUser).Get("/me", a.Me)
	return r
}

func (a *authenticationHandler) Token(w http.ResponseWriter, r *http.Request) {
	username, password, _ := r.BasicAuth()
	tok, err := a.authService.IssueAdminToken(username, password)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingBasicAuth):
			httpx.WriteError(w, http.StatusUnauthorized, "Missing or invalid Basic Auth credentials")
		case errors.Is(err, ErrInvalidCredentials):
			httpx.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		default:
			a.logger.Error("failed to issue admin token", zap.Error(err))
			httpx.WriteError(w, http.StatusInternalServerError, "Token issuance failed")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse{AccessToken: tok})
}

func (a *authenticationHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	req, err := httpx.DecodeJSON[registerPersonRequest](w, r)
	if err != nil {
		a.logger.Warn("bad register request", zap.Error(err))
		httpx.WriteDecodeError(w, err)
		return
	}

	p, err := a.authService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, person.ErrDuplicateUsername):
			httpx.WriteError(w, http.StatusBadRequest, "Username already exists")
		case errors.Is(err, person.ErrDuplicateEmail):
			httpx.WriteError(w, http.StatusBadRequest, "Email already exists")
		default:
			a.logger.Error("failed to register user", zap.Error(err))
			httpx.WriteError(w, http.StatusInternalServerError, "Registration failed")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, registerPersonResponse{
		Message: "User registered successfully",
		User:    p,
	})
}

func (a *authenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	req, err := httpx.DecodeJSON[loginRequest](w, r)
	if err != nil {
		httpx.WriteDecodeError(w, err)
		return
	}

	res, err := a.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		a.logger.Error("login failed", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		AccessToken: res.AccessToken,
		User:        res.Person,
		Message:     "Login successful",
	})
}

func (a *authenticationHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, err := a.authService.Me(r.Context(), gate.ClaimsFrom(r.Context()))
	if err != nil {
		if errors.Is(err, person.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		a.logger.Error("failed to load current user", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, meResponse{User: p})
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type registerPersonRequest struct {
	Username string `json:"username" validate:"required,min=3,max=80"`
	Email    string `json:"email"    validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type registerPersonResponse struct {
	Message string         `json:"message"`
	User    *person.Person `json:"user"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string         `json:"access_token"`
	User        *person.Person `json:"user"`
	Message     string         `json:"message"`
}

type meResponse struct {
	User *person.Person `json:"user"`
}
