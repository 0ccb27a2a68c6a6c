package config

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/kochabx/apikit/core/validator"
	"github.com/kochabx/apikit/errors"
)

// FileLoader loads configuration from a file, environment and defaults.
type FileLoader struct {
	viper    *viper.Viper
	validate validator.Validator
	optional bool
}

// NewFileLoader searches paths for a file called name (extension selects the format).
func NewFileLoader(name string, paths []string, v *viper.Viper, validate validator.Validator) *FileLoader {
	ext := filepath.Ext(name)
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName(strings.TrimSuffix(name, ext))
	v.SetConfigType(strings.TrimPrefix(ext, "."))

	return newFileLoader(v, validate)
}

// NewPathLoader reads exactly the file at path.
func NewPathLoader(path string, v *viper.Viper, validate validator.Validator) *FileLoader {
	v.SetConfigFile(path)
	return newFileLoader(v, validate)
}

func newFileLoader(v *viper.Viper, validate validator.Validator) *FileLoader {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &FileLoader{
		viper:    v,
		validate: validate,
	}
}

// Optional lets Load succeed from defaults and environment when no file exists.
func (l *FileLoader) Optional() *FileLoader {
	l.optional = true
	return l
}

// Load implements Loader interface
func (l *FileLoader) Load(target any) error {
	if err := l.viper.ReadInConfig(); err != nil {
		switch {
		case !isNotFound(err):
			return errors.Newk(errors.KindInvalid, 400, "config read error: %v", err).WithCause(err)
		case !l.optional:
			return errors.Newk(errors.KindInvalid, 404, "config file not found: %v", err).WithCause(err)
		}
	}

	if err := l.viper.Unmarshal(target); err != nil {
		return errors.Newk(errors.KindInvalid, 500, "config parse error: %v", err).WithCause(err)
	}

	if l.validate != nil {
		if err := l.validate.Struct(target); err != nil {
			return errors.Newk(errors.KindInvalid, 400, "config validation failed: %v", err).WithCause(err)
		}
	}

	return nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// Watch implements Loader interface
func (l *FileLoader) Watch(callback func()) error {
	l.viper.OnConfigChange(func(e fsnotify.Event) {
		if callback != nil {
			callback()
		}
	})
	l.viper.WatchConfig()
	return nil
}
