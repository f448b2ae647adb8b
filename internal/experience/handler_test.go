package experience

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mehmetcc/folio/internal/config"
	"github.com/mehmetcc/folio/internal/gate"
	"github.com/mehmetcc/folio/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var expCols = []string{"id", "title", "company", "location", "start_date", "end_date", "is_current", "duration",
	"responsibilities", "achievements", "technologies", "color", "sort_order", "is_visible", "created_at"}

func expRow(rows *sqlmock.Rows, id int64, visible bool) *sqlmock.Rows {
	return rows.AddRow(id, "Engineer", "Acme", "", time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC), nil, true, "",
		[]byte(`["ship"]`), nil, `["Go"]`, "", 0, visible, time.Now())
}

func setup(t *testing.T) (http.Handler, sqlmock.Sqlmock, string) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	codec := token.NewCodec(zap.NewNop(), &config.JWTConfig{Secret: "s"})
	admin, err := codec.Issue("admin", nil, true, time.Hour)
	require.NoError(t, err)

	g := gate.New(gate.NewResolver(codec), zap.NewNop())
	return NewExperienceHandler(NewExperienceRepo(db, zap.NewNop()), g, zap.NewNop()).Routes(), mock, admin
}

func TestList_OrderAndPeriod(t *testing.T) {
	h, mock, _ := setup(t)
	mock.ExpectQuery(`ORDER\s+BY\s+sort_order\s+DESC,\s+start_date\s+DESC`).
		WithArgs(false).
		WillReturnRows(expRow(sqlmock.NewRows(expCols), 1, true))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?admin=true", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"period":"05/2021 - Present"`)
	assert.Contains(t, body, `"achievements":[]`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_AdminView(t *testing.T) {
	h, mock, admin := setup(t)
	mock.ExpectQuery(`FROM\s+experiences`).WithArgs(true).
		WillReturnRows(expRow(sqlmock.NewRows(expCols), 1, false))

	r := httptest.NewRequest(http.MethodGet, "/?admin=true", nil)
	r.Header.Set("Authorization", "Bearer "+admin)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_visible":false`)
}

func TestGet_HiddenIsNotFoundForPublic(t *testing.T) {
	h, mock, _ := setup(t)
	mock.ExpectQuery(`FROM\s+experiences\s+WHERE\s+id`).WithArgs(int64(2)).
		WillReturnRows(expRow(sqlmock.NewRows(expCols), 2, false))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/2", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Experience not found"}`, w.Body.String())
}

func TestCreate(t *testing.T) {
	h, mock, admin := setup(t)
	mock.ExpectQuery(`INSERT\s+INTO\s+experiences`).
		WithArgs("Engineer", "Acme", "", time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC), nil, true, "",
			`["ship"]`, `[]`, `["Go"]`, "", 0, true).
		WillReturnRows(expRow(sqlmock.NewRows(expCols), 3, true))

	body := `{"title":"Engineer","company":"Acme","start_date":"2021-05-01","is_current":true,
		"responsibilities":["ship"],"technologies":["Go"]}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Authorization", "Bearer "+admin)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"message":"Experience created successfully"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_MissingCompany(t *testing.T) {
	h, _, admin := setup(t)

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Engineer"}`))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Authorization", "Bearer "+admin)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"company"`)
}
