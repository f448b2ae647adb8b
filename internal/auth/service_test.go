package auth

import (
	"context"
	"testing"
	"time"

	"github.com/mehmetcc/folio/internal/config"
	"github.com/mehmetcc/folio/internal/person"
	"github.com/mehmetcc/folio/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (AuthService, *fakePersonRepo, token.Codec) {
	t.Helper()
	jwtCfg := &config.JWTConfig{Secret: "test-secret", AccessTTL: time.Hour}
	codec := token.NewCodec(zap.NewNop(), jwtCfg)
	repo := newFakePersonRepo()
	svc := NewAuthenticationService(repo, codec, jwtCfg,
		&config.AdminConfig{Username: "admin", Password: "root"}, zap.NewNop())
	return svc, repo, codec
}

func TestRegisterThenLogin(t *testing.T) {
	svc, repo, codec := newTestService(t)
	ctx := context.Background()

	p, err := svc.Register(ctx, "alice", "Alice@Example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", p.PasswordHash)

	for _, login := range []string{"alice", "alice@example.com"} {
		res, err := svc.Login(ctx, login, "hunter22")
		require.NoError(t, err, login)

		claims, err := codec.Parse(res.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Subject)
		require.NotNil(t, claims.UserID)
		assert.Equal(t, p.ID, *claims.UserID)
		assert.False(t, claims.IsAdmin)
	}
	assert.Equal(t, []int64{p.ID, p.ID}, repo.touched)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_Duplicate(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other@example.com", "hunter22")
	assert.ErrorIs(t, err, person.ErrDuplicateUsername)
}

func TestIssueAdminToken(t *testing.T) {
	svc, _, codec := newTestService(t)

	tok, err := svc.IssueAdminToken("admin", "root")
	require.NoError(t, err)
	claims, err := codec.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.True(t, claims.IsAdmin)
	assert.Nil(t, claims.UserID)

	_, err = svc.IssueAdminToken("admin", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.IssueAdminToken("", "")
	assert.ErrorIs(t, err, ErrMissingBasicAuth)
}

func TestMe(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	p, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	id := p.ID
	got, err := svc.Me(ctx, &token.Claims{UserID: &id})
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = svc.Me(ctx, &token.Claims{})
	assert.ErrorIs(t, err, person.ErrNotFound)
}
