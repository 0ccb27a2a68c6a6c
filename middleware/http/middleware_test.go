package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/kochabx/apikit/log"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRecovery(t *testing.T) {
	var logs bytes.Buffer
	logger := log.NewWriter(&logs)

	r := gin.New()
	r.Use(Recovery(RecoveryConfig{Logger: logger}))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":500,"message":"Internal Server Error"}`, w.Body.String())
	assert.Contains(t, logs.String(), "kaboom")
	assert.NotContains(t, logs.String(), `"stack"`)
}

func TestLogger(t *testing.T) {
	var logs bytes.Buffer
	logger := log.NewWriter(&logs)

	r := gin.New()
	r.Use(Logger(LoggerConfig{Logger: logger, SkipPaths: []string{"/healthz"}}))
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/users/:id", func(c *gin.Context) { c.JSON(http.StatusNotFound, gin.H{"message": "not found"}) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Zero(t, logs.Len())

	req := httptest.NewRequest(http.MethodGet, "/users/9?expand=posts", nil)
	req.Header.Set("X-Request-Id", "req-9")
	r.ServeHTTP(httptest.NewRecorder(), req)

	out := logs.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"status":404`)
	assert.Contains(t, out, `"path":"/users/9"`)
	assert.Contains(t, out, `"query":"expand=posts"`)
	assert.Contains(t, out, `"request_id":"req-9"`)
}
