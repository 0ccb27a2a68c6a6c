package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/apikit/log"
	"github.com/kochabx/apikit/metrics"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestServerEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	prom := metrics.New()
	prom.EventObserver().ObserveEmit("user.created", 1)

	s := NewServer(":0", engine,
		WithLogger(log.Nop()),
		WithMetricsOptions(prom, MetricsOption{Enabled: true, EnabledBuildInfoCollector: true}),
		WithHealthOptions(HealthOption{Enabled: true}),
	)
	require.NotNil(t, s)

	w := get(t, engine, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = get(t, engine, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `apikit_events_emitted_total{event="user.created"} 1`)
	assert.Contains(t, w.Body.String(), "go_build_info")
}

func TestServerDisabledEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewServer(":0", engine, WithLogger(log.Nop()), WithMetricsOptions(metrics.New(), MetricsOption{Path: "/m"}))

	assert.Equal(t, http.StatusNotFound, get(t, engine, "/m").Code)
	assert.Equal(t, http.StatusNotFound, get(t, engine, "/health").Code)
}
