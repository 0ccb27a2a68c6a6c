package config

import (
	"github.com/spf13/viper"

	"github.com/kochabx/apikit/core/validator"
)

// Option is a function that configures a Config
type Option func(*Config)

// WithViper sets a custom viper instance
func WithViper(v *viper.Viper) Option {
	return func(c *Config) {
		c.viper = v
	}
}

// WithValidator sets a custom validator
func WithValidator(v validator.Validator) Option {
	return func(c *Config) {
		c.validate = v
	}
}

// WithLoader sets the configuration loader
func WithLoader(loader Loader) Option {
	return func(c *Config) {
		c.loader = loader
	}
}

// WithFile reads exactly this file instead of searching for the default name.
func WithFile(path string) Option {
	return func(c *Config) {
		c.file = path
	}
}

// WithEnvPrefix sets the environment variable prefix (APIKIT by default).
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithDefaults registers viper defaults. Keys use dotted paths.
func WithDefaults(defaults map[string]any) Option {
	return func(c *Config) {
		for k, v := range defaults {
			c.defaults[k] = v
		}
	}
}

// WithOverrides sets values that beat file, environment and defaults,
// e.g. command line flags. They are validated like any other source.
func WithOverrides(overrides map[string]any) Option {
	return func(c *Config) {
		for k, v := range overrides {
			c.overrides[k] = v
		}
	}
}

// WithOnChange is called after a watched file change has been reloaded.
func WithOnChange(fn func()) Option {
	return func(c *Config) {
		c.onChange = fn
	}
}
