package mockapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/apikit/log"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestCRUD(t *testing.T) {
	s := New(WithLogger(log.Nop()))

	w := do(t, s, http.MethodPost, "/api/users", `{"id":99,"name":"Ada"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Ada"}`, w.Body.String())

	w = do(t, s, http.MethodGet, "/api/users/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Ada"}`, w.Body.String())

	w = do(t, s, http.MethodPut, "/api/users/1", `{"name":"Grace"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Grace"}`, w.Body.String())

	w = do(t, s, http.MethodGet, "/api/users", "")
	assert.JSONEq(t, `[{"id":1,"name":"Grace"}]`, w.Body.String())

	w = do(t, s, http.MethodDelete, "/api/users/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, s.Len("users"))

	w = do(t, s, http.MethodDelete, "/api/users/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"code":404,"message":"not found"}`, w.Body.String())
}

func TestErrors(t *testing.T) {
	s := New(WithLogger(log.Nop()))

	tests := []struct {
		name, method, path, body string
		code                     int
		message                  string
	}{
		{"unknown resource", http.MethodGet, "/api/comments", "", 404, "resource not found"},
		{"bad id", http.MethodGet, "/api/users/abc", "", 400, "invalid id"},
		{"bad json", http.MethodPost, "/api/posts", `{"title":`, 400, "invalid JSON body"},
		{"update missing", http.MethodPut, "/api/posts/5", `{"title":"x"}`, 404, "not found"},
		{"no route", http.MethodGet, "/elsewhere", "", 404, "route not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.code, w.Code)
			assert.Contains(t, w.Body.String(), `"message":"`+tt.message+`"`)
		})
	}
}

func TestSeedAndResources(t *testing.T) {
	s := New(WithLogger(log.Nop()), WithResources("todos"), WithPrefix("/v1"))

	require.NoError(t, s.Seed("todos", map[string]any{"id": 3, "title": "c"}, map[string]any{"title": "d"}))
	assert.Error(t, s.Seed("users"))

	w := do(t, s, http.MethodGet, "/v1/todos", "")
	assert.JSONEq(t, `[{"id":3,"title":"c"},{"id":4,"title":"d"}]`, w.Body.String())

	w = do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewServer(t *testing.T) {
	s := New(WithLogger(log.Nop()))
	srv := s.NewServer("127.0.0.1:3000")
	assert.Equal(t, "127.0.0.1:3000", srv.Addr())
}

func TestSeedCopiesItems(t *testing.T) {
	item := map[string]any{"name": "Ada"}
	a := New(WithLogger(log.Nop()))
	b := New(WithLogger(log.Nop()))
	require.NoError(t, a.Seed("users", item))
	require.NoError(t, b.Seed("users", item))
	assert.NotContains(t, item, "id")

	w := do(t, a, http.MethodPut, "/api/users/1", `{"name":"changed"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, b, http.MethodGet, "/api/users/1", "")
	assert.JSONEq(t, `{"id":1,"name":"Ada"}`, w.Body.String())

	a.collections["users"].items[1]["name"] = "mutated"
	w = do(t, b, http.MethodGet, "/api/users/1", "")
	assert.JSONEq(t, `{"id":1,"name":"Ada"}`, w.Body.String())
}
