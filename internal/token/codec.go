package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mehmetcc/folio/internal/config"
	"go.uber.org/zap"
)

type Codec interface {
	Issue(subject string, userID *int64, isAdmin bool, ttl time.Duration) (string, error)
	Parse(tokenString string) (*Claims, error)
}

type codec struct {
	logger     *zap.Logger
	secret     []byte
	signingAlg jwt.SigningMethod
	parser     *jwt.Parser
	now        func() time.Time
}

type Option func(*codec)

// WithClock overrides the time source used for exp on issue and validation.
func WithClock(now func() time.Time) Option {
	return func(c *codec) { c.now = now }
}

// NewCodec copies the secret out of cfg; later changes to cfg are not observed.
func NewCodec(logger *zap.Logger, cfg *config.JWTConfig, opts ...Option) Codec {
	c := &codec{
		logger:     logger,
		secret:     []byte(cfg.Secret),
		signingAlg: jwt.SigningMethodHS256,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{c.signingAlg.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	return c
}

func (c *codec) Issue(subject string, userID *int64, isAdmin bool, ttl time.Duration) (string, error) {
	now := c.now().UTC()
	claims := &Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(c.signingAlg, claims).SignedString(c.secret)
	if err != nil {
		c.logger.Error("failed to sign access token", zap.Error(err))
		return "", err
	}
	return signed, nil
}

func (c *codec) Parse(tokenString string) (*Claims, error) {
	var claims Claims
	tkn, err := c.parser.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			c.logger.Debug("rejected access token", zap.Error(err))
		}
		return nil, ErrInvalidToken
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
