package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/apikit/log"
	"github.com/kochabx/apikit/metrics"
	"github.com/kochabx/apikit/transport"
)

var _ transport.Server = (*Server)(nil)

const (
	defaultName = "http"
	defaultAddr = ":8080"
)

// Meta is the metadata of the server.
type Meta struct {
	Name string
}

type Server struct {
	meta    Meta
	options Options
	prom    *metrics.Prometheus
	logger  *log.Logger
	server  *http.Server
}

type Option func(*Server)

func WithMeta(meta Meta) Option {
	return func(s *Server) {
		s.meta = meta
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsOptions mounts p's registry on the gin handler.
func WithMetricsOptions(p *metrics.Prometheus, opt MetricsOption) Option {
	return func(s *Server) {
		opt.init()
		s.prom = p
		s.options.Metrics = opt
	}
}

func WithHealthOptions(opt HealthOption) Option {
	return func(s *Server) {
		opt.init()
		s.options.Health = opt
	}
}

// NewServer wraps handler. Metrics and health endpoints are only mounted
// when handler is a *gin.Engine.
func NewServer(addr string, handler http.Handler, opts ...Option) *Server {
	s := &Server{
		logger: log.G,
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	additionalHandlers(s)

	return s
}

// Addr returns the listen address after defaulting.
func (s *Server) Addr() string {
	return s.server.Addr
}

func (s *Server) Run() error {
	if s.meta.Name == "" {
		s.meta.Name = defaultName
	}

	if ok := transport.ValidateAddress(s.server.Addr); !ok {
		s.logger.Warn().Msgf("invalid address %s, using default address: %s", s.server.Addr, defaultAddr)
		s.server.Addr = defaultAddr
	}
	s.logger.Info().Msgf("%s server listening on %s", s.meta.Name, s.server.Addr)

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func additionalHandlers(s *Server) {
	if r, ok := s.server.Handler.(*gin.Engine); ok {
		handleMetrics(s, r)
		handleHealth(s, r)
	}
}

func handleMetrics(s *Server, r *gin.Engine) {
	if s.options.Metrics.Enabled && s.prom != nil {
		if s.options.Metrics.EnabledGoCollector {
			s.prom.WithGoCollectorRuntimeMetrics()
		}
		if s.options.Metrics.EnabledBuildInfoCollector {
			s.prom.WithBuildInfoCollector()
		}

		r.GET(s.options.Metrics.Path, gin.WrapH(s.prom.Handler()))
	}
}

func handleHealth(s *Server, r *gin.Engine) {
	if s.options.Health.Enabled {
		r.GET(s.options.Health.Path, func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}
}
