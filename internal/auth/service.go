package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/mehmetcc/folio/internal/config"
	"github.com/mehmetcc/folio/internal/person"
	"github.com/mehmetcc/folio/internal/token"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*person.Person, error)
	Login(ctx context.Context, login, password string) (*LoginResult, error)
	// IssueAdminToken mints an admin token for the configured bootstrap credentials.
	IssueAdminToken(username, password string) (string, error)
	Me(ctx context.Context, claims *token.Claims) (*person.Person, error)
}

type LoginResult struct {
	AccessToken string
	Person      *person.Person
}

type authService struct {
	personRepo person.PersonRepo
	codec      token.Codec
	jwtCfg     *config.JWTConfig
	adminCfg   *config.AdminConfig
	logger     *zap.Logger
}

func NewAuthenticationService(
	personRepo person.PersonRepo,
	codec token.Codec,
	jwtCfg *config.JWTConfig,
	adminCfg *config.AdminConfig,
	logger *zap.Logger,
) AuthService {
	return &authService{
		personRepo: personRepo,
		codec:      codec,
		jwtCfg:     jwtCfg,
		adminCfg:   adminCfg,
		logger:     logger,
	}
}

func (a *authService) Register(ctx context.Context, username, email, password string) (*person.Person, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		a.logger.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	return a.personRepo.Create(ctx, &person.PersonDTO{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	})
}

func (a *authService) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	p, err := a.personRepo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, person.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		a.logger.Debug("password mismatch", zap.Int64("id", p.ID))
		return nil, ErrInvalidCredentials
	}

	if err := a.personRepo.TouchLastLogin(ctx, p.ID); err != nil {
		return nil, err
	}

	id := p.ID
	tok, err := a.codec.Issue(p.Username, &id, p.IsAdmin, a.jwtCfg.AccessTTL)
	if err != nil {
		return nil, err
	}

	a.logger.Info("user logged in", zap.String("username", p.Username))
	return &LoginResult{AccessToken: tok, Person: p}, nil
}

func (a *authService) IssueAdminToken(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrMissingBasicAuth
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.adminCfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.adminCfg.Password)) == 1
	if !userOK || !passOK {
		a.logger.Warn("admin token request with bad credentials", zap.String("username", username))
		return "", ErrInvalidCredentials
	}
	return a.codec.Issue(username, nil, true, a.jwtCfg.AccessTTL)
}

func (a *authService) Me(ctx context.Context, claims *token.Claims) (*person.Person, error) {
	if claims == nil || claims.UserID == nil {
		return nil, person.ErrNotFound
	}
	return a.personRepo.GetByID(ctx, *claims.UserID)
}
