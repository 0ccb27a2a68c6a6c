package config

import (
	"sync"

	"github.com/spf13/viper"

	"github.com/kochabx/apikit/core/validator"
	"github.com/kochabx/apikit/log"
)

const (
	// DefaultFileName is searched for when no explicit file is given.
	DefaultFileName = "apikit.yaml"
	// DefaultEnvPrefix prefixes environment overrides, e.g. APIKIT_CLIENT_BASE_URL.
	DefaultEnvPrefix = "APIKIT"
)

// Config manages application configuration
type Config struct {
	mu        sync.RWMutex // protects concurrent access to target
	viper     *viper.Viper
	validate  validator.Validator
	target    any
	loader    Loader
	file      string
	envPrefix string
	defaults  map[string]any
	overrides map[string]any
	onChange  func()
}

// New creates a Config that unmarshals into target.
// Without WithLoader or WithFile it searches "." and "$HOME/.config/apikit"
// for apikit.yaml and tolerates its absence.
func New(target any, opts ...Option) *Config {
	c := &Config{
		viper:     viper.New(),
		validate:  validator.Validate,
		target:    target,
		envPrefix: DefaultEnvPrefix,
		defaults:  make(map[string]any),
		overrides: make(map[string]any),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.viper.SetEnvPrefix(c.envPrefix)
	for k, v := range c.defaults {
		c.viper.SetDefault(k, v)
	}
	for k, v := range c.overrides {
		c.viper.Set(k, v)
	}

	if c.loader == nil {
		if c.file != "" {
			c.loader = NewPathLoader(c.file, c.viper, c.validate)
		} else {
			c.loader = NewFileLoader(DefaultFileName, []string{".", "$HOME/.config/apikit"}, c.viper, c.validate).Optional()
		}
	}

	return c
}

// Load reads the configuration using the configured loader
func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loader.Load(c.target)
}

// Reload reloads the configuration from the loader
func (c *Config) Reload() error {
	return c.Load()
}

// View runs fn while holding the read lock on target.
func (c *Config) View(fn func()) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn()
}

// Watch reloads the target whenever the backing file changes.
func (c *Config) Watch() error {
	return c.loader.Watch(func() {
		log.Info().Msg("config change detected")
		if err := c.Reload(); err != nil {
			log.Error().Err(err).Msg("failed to reload config after change")
			return
		}
		log.Info().Msg("config reloaded successfully")
		if c.onChange != nil {
			c.onChange()
		}
	})
}

// GetViper returns the underlying viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.viper
}
