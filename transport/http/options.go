package http

// Options groups the optional endpoints mounted next to the main handler.
type Options struct {
	Metrics MetricsOption
	Health  HealthOption
}

type MetricsOption struct {
	Enabled                   bool
	Path                      string
	EnabledGoCollector        bool
	EnabledBuildInfoCollector bool
}

func (m *MetricsOption) init() {
	if m.Path == "" {
		m.Path = "/metrics"
	}
}

type HealthOption struct {
	Enabled bool
	Path    string
}

func (h *HealthOption) init() {
	if h.Path == "" {
		h.Path = "/health"
	}
}
