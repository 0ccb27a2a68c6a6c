// Package metrics exports client and event bus activity to prometheus.
package metrics

import (
	"net/http"
	"regexp"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "apikit"

type Metrics interface {
	Registry() *prometheus.Registry
}

// Prometheus owns a registry and the apikit collectors registered on it.
type Prometheus struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	emitted         *prometheus.CounterVec
	failures        *prometheus.CounterVec
}

var _ Metrics = (*Prometheus)(nil)

func New() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Outbound API requests by method, resource and status code.",
		}, []string{"method", "resource", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Outbound API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "resource"}),
		emitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "emitted_total",
			Help:      "Events emitted on the bus.",
		}, []string{"event"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "event_listener",
			Name:      "failures_total",
			Help:      "Listener errors and panics by event.",
		}, []string{"event"}),
	}

	p.registry.MustRegister(p.requests, p.requestDuration, p.emitted, p.failures)
	return p
}

func (p *Prometheus) WithGoCollectorRuntimeMetrics() {
	p.registry.MustRegister(collectors.NewGoCollector(
		collectors.WithGoCollectorRuntimeMetrics(collectors.GoRuntimeMetricsRule{Matcher: regexp.MustCompile("/.*")}),
	))
}

func (p *Prometheus) WithBuildInfoCollector() {
	p.registry.MustRegister(collectors.NewBuildInfoCollector())
}

func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
