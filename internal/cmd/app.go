package cmd

import (
	"context"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/kochabx/apikit/api"
	"github.com/kochabx/apikit/config"
	"github.com/kochabx/apikit/errors"
	"github.com/kochabx/apikit/eventbus"
	"github.com/kochabx/apikit/httpclient"
	"github.com/kochabx/apikit/log"
	"github.com/kochabx/apikit/log/writer"
	"github.com/kochabx/apikit/metrics"
	thttp "github.com/kochabx/apikit/transport/http"
)

type globalFlags struct {
	config    string
	baseURL   string
	logLevel  string
	logFormat string
}

// overrides maps set flags onto config keys so they go through validation.
func (f *globalFlags) overrides() map[string]any {
	o := make(map[string]any)
	if f.baseURL != "" {
		o["client.base_url"] = f.baseURL
	}
	if f.logLevel != "" {
		o["log.level"] = f.logLevel
	}
	if f.logFormat != "" {
		o["log.format"] = f.logFormat
	}
	return o
}

// app is the wiring shared by every subcommand.
type app struct {
	settings *config.Settings
	logger   *log.Logger
	prom     *metrics.Prometheus
	client   *httpclient.Client
	api      *api.API
	bus      *eventbus.Bus
	out      io.Writer
}

func newApp(cmd *cobra.Command, flags *globalFlags) (*app, error) {
	s, _, err := config.LoadSettings(flags.config, config.WithOverrides(flags.overrides()))
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(s.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	log.SetGlobalLogger(logger)

	a := &app{
		settings: s,
		logger:   logger,
		prom:     metrics.New(),
		out:      cmd.OutOrStdout(),
	}
	if s.Metrics.GoCollector {
		a.prom.WithGoCollectorRuntimeMetrics()
	}

	a.client = httpclient.New(s.Client.BaseURL,
		httpclient.WithTimeout(s.Client.Timeout),
		httpclient.WithDefaultHeader(s.Client.Headers),
		httpclient.WithLogger(logger.Component("httpclient")),
		httpclient.WithObserver(a.prom.RequestObserver()),
	)
	a.api = api.New(a.client)

	a.bus = eventbus.New(
		eventbus.WithLogger(logger.Component("eventbus")),
		eventbus.WithObserver(a.prom.EventObserver()),
	)
	subscribeLogging(a.bus, logger.Component("events"))

	return a, nil
}

// newLogger writes to errOut in console or JSON form, plus the rotating
// file when enabled.
func newLogger(s config.LogSettings, errOut io.Writer) (*log.Logger, error) {
	var opts []log.Option
	if s.Level != "" {
		level, err := log.ParseLevel(s.Level)
		if err != nil {
			return nil, errors.Newk(errors.KindInvalid, 400, "invalid log level: %s", s.Level).WithCause(err)
		}
		opts = append(opts, log.WithLevel(level))
	}
	if !s.File.Enabled {
		if s.Format == "json" {
			return log.NewWriter(errOut, opts...), nil
		}
		return log.NewWriter(writer.ConsoleTo(errOut), opts...), nil
	}
	fc, err := s.File.FileConfig()
	if err != nil {
		return nil, errors.Newk(errors.KindInvalid, 400, "invalid log file config").WithCause(err)
	}
	return log.NewMulti(fc, opts...)
}

// metricsServer returns a dedicated listener for the registry, or nil
// when metrics are disabled.
func (a *app) metricsServer() *thttp.Server {
	m := a.settings.Metrics
	if !m.Enabled {
		return nil
	}
	return thttp.NewServer(m.Addr, gin.New(),
		thttp.WithMeta(thttp.Meta{Name: "metrics"}),
		thttp.WithLogger(a.logger),
		thttp.WithMetricsOptions(a.prom, thttp.MetricsOption{Enabled: true, Path: m.Path}),
	)
}

func (a *app) close() {
	_ = a.logger.Close()
}

// emit publishes on the CLI bus. Listener failures are already logged by the bus.
func (a *app) emit(event string, payload any) {
	_ = a.bus.Emit(event, payload)
}

// failed reports a failed call on the bus and returns err unchanged.
func (a *app) failed(op string, err error) error {
	a.emit(EventRequestFailed, map[string]any{
		"op":    op,
		"code":  errors.CodeOf(err),
		"kind":  errors.KindOf(err).String(),
		"error": err.Error(),
	})
	return err
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// run loads the app, runs fn and releases everything afterwards.
func run(cmd *cobra.Command, flags *globalFlags, fn func(ctx context.Context, a *app) error) error {
	a, err := newApp(cmd, flags)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, a)
}
