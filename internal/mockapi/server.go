// Package mockapi is an in-memory JSON backend speaking the REST contract
// the request client expects. It backs the api tests and `apikit mock`.
package mockapi

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/apikit/errors"
	"github.com/kochabx/apikit/log"
	middleware "github.com/kochabx/apikit/middleware/http"
	thttp "github.com/kochabx/apikit/transport/http"
)

// DefaultResources are served when New is called without WithResources.
var DefaultResources = []string{"users", "posts"}

// Server holds one collection of JSON objects per resource.
type Server struct {
	mu          sync.RWMutex
	collections map[string]*collection
	prefix      string
	logger      *log.Logger
	engine      *gin.Engine
}

// Option configures the Server
type Option func(*Server)

// WithResources replaces the served resource names.
func WithResources(names ...string) Option {
	return func(s *Server) {
		s.collections = make(map[string]*collection, len(names))
		for _, n := range names {
			s.collections[n] = newCollection()
		}
	}
}

// WithPrefix mounts the routes under prefix ("/api" by default).
func WithPrefix(prefix string) Option {
	return func(s *Server) {
		s.prefix = prefix
	}
}

// WithLogger sets the access and panic logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New builds the server and its gin engine.
func New(opts ...Option) *Server {
	s := &Server{prefix: "/api"}
	WithResources(DefaultResources...)(s)

	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.G.Component("mockapi")
	}

	engine := gin.New()
	engine.Use(
		middleware.Logger(middleware.LoggerConfig{Logger: s.logger, SkipPaths: []string{"/healthz"}}),
		middleware.Recovery(middleware.RecoveryConfig{Logger: s.logger, StackTrace: true}),
	)
	engine.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	engine.NoRoute(func(c *gin.Context) { abort(c, http.StatusNotFound, "route not found") })

	g := engine.Group(s.prefix)
	g.GET("/:resource", s.list)
	g.POST("/:resource", s.create)
	g.GET("/:resource/:id", s.get)
	g.PUT("/:resource/:id", s.update)
	g.DELETE("/:resource/:id", s.remove)

	s.engine = engine
	return s
}

// Handler returns the http.Handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Seed inserts items into resource, assigning ids where missing.
func (s *Server) Seed(resource string, items ...map[string]any) error {
	col, ok := s.collection(resource)
	if !ok {
		return errors.New(http.StatusNotFound, "unknown resource %s", resource)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		col.insert(item)
	}
	return nil
}

// Len returns the number of stored items in resource.
func (s *Server) Len(resource string) int {
	col, ok := s.collection(resource)
	if !ok {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(col.items)
}

// NewServer wraps the engine in a transport server listening on addr.
// opts can mount extra endpoints such as /metrics on the same engine.
func (s *Server) NewServer(addr string, opts ...thttp.Option) *thttp.Server {
	return thttp.NewServer(addr, s.engine, append([]thttp.Option{
		thttp.WithMeta(thttp.Meta{Name: "mock api"}),
		thttp.WithLogger(s.logger),
	}, opts...)...)
}

func (s *Server) collection(name string) (*collection, bool) {
	col, ok := s.collections[name]
	return col, ok
}
