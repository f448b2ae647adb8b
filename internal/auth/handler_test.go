package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mehmetcc/folio/internal/gate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	svc, _, codec := newTestService(t)
	g := gate.New(gate.NewResolver(codec), zap.NewNop())
	return NewAuthenticationHandler(svc, g, zap.NewNop()).Routes()
}

func postJSON(h http.Handler, path, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestHandler_RegisterLoginMe(t *testing.T) {
	h := newTestRouter(t)

	w := postJSON(h, "/register", `{"username":"alice","email":"alice@example.com","password":"hunter22"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")

	w = postJSON(h, "/register", `{"username":"alice","email":"x@example.com","password":"hunter22"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Username already exists"}`, w.Body.String())

	w = postJSON(h, "/login", `{"username":"alice","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		AccessToken string `json:"access_token"`
		Message     string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.Equal(t, "Login successful", login.Message)

	r := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.Header.Set("Authorization", "Bearer "+login.AccessToken)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
}

func TestHandler_RegisterValidation(t *testing.T) {
	h := newTestRouter(t)

	w := postJSON(h, "/register", `{"username":"al","email":"nope","password":"1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"Validation error"`)
}

func TestHandler_LoginBadCredentials(t *testing.T) {
	h := newTestRouter(t)

	w := postJSON(h, "/login", `{"username":"ghost","password":"whatever"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, w.Body.String())
}

func TestHandler_Token(t *testing.T) {
	h := newTestRouter(t)

	r := httptest.NewRequest(http.MethodPost, "/token", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Missing or invalid Basic Auth credentials"}`, w.Body.String())

	r = httptest.NewRequest(http.MethodPost, "/token", nil)
	r.SetBasicAuth("admin", "wrong")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, w.Body.String())

	r = httptest.NewRequest(http.MethodPost, "/token", nil)
	r.SetBasicAuth("admin", "root")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access_token")
}

func TestHandler_MeRequiresToken(t *testing.T) {
	h := newTestRouter(t)

	r := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
}
