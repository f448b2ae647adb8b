package project

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var projectCols = []string{"id", "title", "description", "tech", "links", "image", "gallery", "project_type",
	"start_date", "end_date", "role", "team_size", "categories", "is_visible", "sort_order", "created_at"}

func newRepoWithMock(t *testing.T) (ProjectRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewProjectRepo(db, zap.NewNop()), mock
}

func TestRepo_ListDecodesJSONColumns(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)FROM\s+projects\s+WHERE\s+is_visible\s+OR\s+\$1\s+ORDER\s+BY\s+sort_order\s+ASC`).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows(projectCols).AddRow(
			1, "Folio", "site", []byte(`["go","sql"]`), []byte(`[{"name":"gh","url":"u"}]`), "", []byte(`[]`), "web",
			start, nil, "dev", nil, []byte(`["web"]`), true, 0, time.Now(),
		))

	got, err := repo.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"go", "sql"}, got[0].Tech)
	assert.Equal(t, []Link{{Name: "gh", URL: "u"}}, got[0].Links)
	assert.Equal(t, 15, got[0].StartDate.Day())
	assert.True(t, got[0].EndDate.IsZero())
	assert.Nil(t, got[0].TeamSize)
}

func TestRepo_DeleteMissing(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`DELETE\s+FROM\s+projects`).WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 4), ErrNotFound)
}

func TestRepo_Create(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+projects`).
		WithArgs("Folio", "site", `["go"]`, `[]`, "", `[]`, "", nil, nil, "", nil, `[]`, true, 0).
		WillReturnRows(sqlmock.NewRows(projectCols).AddRow(
			7, "Folio", "site", `["go"]`, `[]`, "", `[]`, "", nil, nil, "", nil, `[]`, true, 0, time.Now(),
		))

	got, err := repo.Create(context.Background(), &Project{
		Title: "Folio", Description: "site", Tech: []string{"go"}, Links: []Link{}, Gallery: []string{},
		Categories: []string{}, IsVisible: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
