package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mehmetcc/folio/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCodec(secret string, opts ...Option) Codec {
	return NewCodec(zap.NewNop(), &config.JWTConfig{Secret: secret, AccessTTL: time.Hour}, opts...)
}

func TestIssueParse_RoundTrip(t *testing.T) {
	t.Parallel()

	c := newTestCodec("super-secret")
	uid := int64(7)

	for _, tc := range []struct {
		subject string
		userID  *int64
		admin   bool
	}{
		{"admin", nil, true},
		{"alice", &uid, false},
		{"", nil, false},
	} {
		tok, err := c.Issue(tc.subject, tc.userID, tc.admin, time.Hour)
		require.NoError(t, err)
		assert.Len(t, strings.Split(tok, "."), 3)

		claims, err := c.Parse(tok)
		require.NoError(t, err)
		assert.Equal(t, tc.subject, claims.Subject)
		assert.Equal(t, tc.userID, claims.UserID)
		assert.Equal(t, tc.admin, claims.IsAdmin)
		assert.True(t, claims.ExpiresAt.After(time.Now()))
	}
}

func TestParse_ZeroTTLIsExpired(t *testing.T) {
	t.Parallel()

	c := newTestCodec("secret")
	tok, err := c.Issue("alice", nil, false, 0)
	require.NoError(t, err)

	_, err = c.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_NegativeTTL(t *testing.T) {
	t.Parallel()

	c := newTestCodec("secret")
	tok, err := c.Issue("alice", nil, false, -1*time.Minute)
	require.NoError(t, err)

	_, err = c.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_ClockAdvancedPastExp(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := newTestCodec("secret", WithClock(clock))

	tok, err := c.Issue("alice", nil, false, time.Hour)
	require.NoError(t, err)

	_, err = c.Parse(tok)
	require.NoError(t, err)

	now = now.Add(time.Hour)
	_, err = c.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken, "exp must be strictly in the future")
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := newTestCodec("right-secret").Issue("alice", nil, true, time.Hour)
	require.NoError(t, err)

	_, err = newTestCodec("wrong-secret").Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_NoneAlgorithm(t *testing.T) {
	t.Parallel()

	claims := &Claims{
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestCodec("secret").Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_OtherHMACAlgorithm(t *testing.T) {
	t.Parallel()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = newTestCodec("secret").Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_MissingExp(t *testing.T) {
	t.Parallel()

	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = newTestCodec("secret").Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	c := newTestCodec("k")
	for _, raw := range []string{"", "not.a.jwt", "abc", "a.b"} {
		_, err := c.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, raw)
	}
}

func TestIssue_UniqueTokenID(t *testing.T) {
	t.Parallel()

	c := newTestCodec("secret")
	seen := map[string]bool{}
	for range 5 {
		tok, err := c.Issue("admin", nil, true, time.Minute)
		require.NoError(t, err)
		claims, err := c.Parse(tok)
		require.NoError(t, err)
		require.NotEmpty(t, claims.ID)
		assert.False(t, seen[claims.ID])
		seen[claims.ID] = true
		assert.NotNil(t, claims.IssuedAt)
	}
}
