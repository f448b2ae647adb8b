package blog

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var blogCols = []string{"id", "title", "excerpt", "content", "cover_image", "published_at", "reading_time",
	"featured", "is_visible", "author_name", "author_email", "tags"}

func newRepoWithMock(t *testing.T) (BlogRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewBlogRepo(db, zap.NewNop()), mock
}

func TestRepo_ListMapsAuthorAndTags(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)FROM\s+blogs\s+WHERE\s+is_visible\s+OR\s+\$1\s+ORDER\s+BY\s+published_at\s+DESC`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(blogCols).
			AddRow(2, "Second", "", "body", "", now, 4, true, false, "Aman", "a@example.com", []byte(`["go"]`)).
			AddRow(1, "First", "", "body", "", now, nil, false, true, "", "", nil))

	posts, err := repo.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	require.NotNil(t, posts[0].Author)
	assert.Equal(t, "Aman", posts[0].Author.Name)
	assert.Equal(t, []string{"go"}, posts[0].Tags)
	require.NotNil(t, posts[0].ReadingTime)
	assert.Equal(t, 4, *posts[0].ReadingTime)

	assert.Nil(t, posts[1].Author)
	assert.Equal(t, []string{}, posts[1].Tags)
}

func TestRepo_CreateDefaultsDate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+blogs.*COALESCE\(\$5,\s*now\(\)\)`).
		WithArgs("T", "", "C", "", nil, nil, false, true, "", "", `[]`).
		WillReturnRows(sqlmock.NewRows(blogCols).
			AddRow(1, "T", "", "C", "", time.Now(), nil, false, true, "", "", `[]`))

	got, err := repo.Create(context.Background(), &Post{Title: "T", Content: "C", IsVisible: true, Tags: []string{}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
}
