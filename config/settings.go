package config

import (
	"time"

	"github.com/kochabx/apikit/log"
	"github.com/kochabx/apikit/log/writer"
)

// DefaultBaseURL is the backend the client talks to when nothing overrides it.
const DefaultBaseURL = "https://your-backend-api.com/api"

// Settings is the apikit configuration tree.
type Settings struct {
	Client  ClientSettings  `mapstructure:"client"`
	Log     LogSettings     `mapstructure:"log"`
	Metrics MetricsSettings `mapstructure:"metrics"`
}

// ClientSettings configures the request client.
type ClientSettings struct {
	BaseURL string            `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration     `mapstructure:"timeout" validate:"gte=0"`
	Headers map[string]string `mapstructure:"headers"`
}

// LogSettings configures the kit logger.
type LogSettings struct {
	Level  string          `mapstructure:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Format string          `mapstructure:"format" validate:"omitempty,oneof=console json"`
	File   LogFileSettings `mapstructure:"file"`
}

// LogFileSettings enables rotating file output next to the console.
type LogFileSettings struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`
	Name       string `mapstructure:"name"`
	Rotate     string `mapstructure:"rotate" validate:"omitempty,oneof=size time"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"`
}

// MetricsSettings exposes prometheus metrics over HTTP.
type MetricsSettings struct {
	Enabled     bool   `mapstructure:"enabled"`
	Addr        string `mapstructure:"addr" validate:"required_if=Enabled true"`
	Path        string `mapstructure:"path" validate:"omitempty,startswith=/"`
	GoCollector bool   `mapstructure:"go_collector"`
}

// FileConfig converts the file section for log.NewMulti.
func (l LogFileSettings) FileConfig() (log.FileConfig, error) {
	mode, err := writer.ParseRotateMode(l.Rotate)
	if err != nil {
		return log.FileConfig{}, err
	}
	return log.FileConfig{
		Filepath:   l.Path,
		Filename:   l.Name,
		RotateMode: mode,
		RotatelogsConfig: log.RotatelogsConfig{
			MaxAge: l.MaxAgeDays * 24,
		},
		LumberjackConfig: log.LumberjackConfig{
			MaxSize:    l.MaxSizeMB,
			MaxBackups: l.MaxBackups,
			MaxAge:     l.MaxAgeDays,
			Compress:   l.Compress,
		},
	}, nil
}

// Defaults returns the viper defaults for Settings.
func Defaults() map[string]any {
	return map[string]any{
		"client.base_url":       DefaultBaseURL,
		"client.timeout":        "0s",
		"client.headers":        map[string]string{},
		"log.level":             "info",
		"log.format":            "console",
		"log.file.enabled":      false,
		"log.file.path":         "log",
		"log.file.name":         "apikit",
		"log.file.rotate":       "size",
		"log.file.max_size_mb":  100,
		"log.file.max_backups":  5,
		"log.file.max_age_days": 30,
		"log.file.compress":     false,
		"metrics.enabled":       false,
		"metrics.addr":          ":9090",
		"metrics.path":          "/metrics",
		"metrics.go_collector":  false,
	}
}

// LoadSettings loads Settings from file (optional when path is empty),
// APIKIT_* environment variables and Defaults.
func LoadSettings(path string, opts ...Option) (*Settings, *Config, error) {
	s := new(Settings)

	all := []Option{WithDefaults(Defaults())}
	if path != "" {
		all = append(all, WithFile(path))
	}
	all = append(all, opts...)

	c := New(s, all...)
	if err := c.Load(); err != nil {
		return nil, nil, err
	}
	return s, c, nil
}
