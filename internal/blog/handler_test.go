package blog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mehmetcc/folio/internal/config"
	"github.com/mehmetcc/folio/internal/gate"
	"github.com/mehmetcc/folio/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRepo struct {
	posts   map[int64]*Post
	created *Post
}

func (s *stubRepo) List(context.Context, bool) ([]Post, error) { return []Post{}, nil }

func (s *stubRepo) Get(_ context.Context, id int64) (*Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubRepo) Create(_ context.Context, p *Post) (*Post, error) {
	p.ID = 10
	s.created = p
	return p, nil
}

func (s *stubRepo) Update(_ context.Context, p *Post) (*Post, error) {
	s.posts[p.ID] = p
	return p, nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	if _, ok := s.posts[id]; !ok {
		return ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *stubRepo) Count(context.Context) (int64, error) { return int64(len(s.posts)), nil }

func setup(t *testing.T) (http.Handler, *stubRepo, string) {
	t.Helper()
	codec := token.NewCodec(zap.NewNop(), &config.JWTConfig{Secret: "s"})
	admin, err := codec.Issue("admin", nil, true, time.Hour)
	require.NoError(t, err)
	repo := &stubRepo{posts: map[int64]*Post{
		1: {ID: 1, Title: "draft", IsVisible: false},
	}}
	g := gate.New(gate.NewResolver(codec), zap.NewNop())
	return NewBlogHandler(repo, g, zap.NewNop()).Routes(), repo, admin
}

func TestBlog_HiddenPostNeedsAdmin(t *testing.T) {
	h, _, admin := setup(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	r := httptest.NewRequest(http.MethodGet, "/1", nil)
	r.Header.Set("Authorization", admin)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBlog_Create(t *testing.T) {
	h, repo, admin := setup(t)

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(
		`{"title":"Hello","content":"# hi <b>","author":"Aman","author_email":"a@example.com","tags":["go",{"name":"<x>"}]}`))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Authorization", "Bearer "+admin)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, repo.created.Author)
	assert.Equal(t, "a@example.com", repo.created.Author.Email)
	assert.Equal(t, []string{"go", "&lt;x&gt;"}, repo.created.Tags)
	assert.Equal(t, "# hi <b>", repo.created.Content)
}

func TestBlog_DeleteRequiresAdmin(t *testing.T) {
	h, repo, admin := setup(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/1", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	r := httptest.NewRequest(http.MethodDelete, "/1", nil)
	r.Header.Set("Authorization", "Bearer "+admin)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.posts)
}
