package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/apikit/errors"
	"github.com/kochabx/apikit/log/writer"
)

func TestLoadSettingsFromFile(t *testing.T) {
	s, _, err := LoadSettings(filepath.Join("testdata", "apikit.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", s.Client.BaseURL)
	assert.Equal(t, 5*time.Second, s.Client.Timeout)
	assert.Equal(t, "apikit-test", s.Client.Headers["x-client"])
	assert.Equal(t, "debug", s.Log.Level)
	assert.True(t, s.Log.File.Enabled)
	assert.Equal(t, "time", s.Log.File.Rotate)
	// untouched keys keep their defaults
	assert.Equal(t, "apikit", s.Log.File.Name)
	assert.Equal(t, 100, s.Log.File.MaxSizeMB)
	assert.True(t, s.Metrics.Enabled)
	assert.Equal(t, ":9100", s.Metrics.Addr)
}

func TestLoadSettingsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	s, _, err := LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, s.Client.BaseURL)
	assert.Zero(t, s.Client.Timeout)
	assert.Equal(t, "info", s.Log.Level)
	assert.False(t, s.Metrics.Enabled)
}

func TestEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APIKIT_CLIENT_BASE_URL", "https://api.example.com/v2")
	t.Setenv("APIKIT_LOG_LEVEL", "warn")

	s, _, err := LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/v2", s.Client.BaseURL)
	assert.Equal(t, "warn", s.Log.Level)
}

func TestLoadSettingsValidation(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APIKIT_CLIENT_BASE_URL", "not a url")

	_, _, err := LoadSettings("")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindInvalid))
	assert.Equal(t, 400, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "base_url")
}

func TestLoadSettingsMissingExplicitFile(t *testing.T) {
	_, _, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, 404, errors.CodeOf(err))
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apikit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("client:\n  base_url: http://one.example.com\n"), 0o600))

	var reloads atomic.Int32
	s, c, err := LoadSettings(path, WithOnChange(func() { reloads.Add(1) }))
	require.NoError(t, err)
	assert.Equal(t, "http://one.example.com", s.Client.BaseURL)

	require.NoError(t, c.Watch())

	// replace atomically so the watcher never sees a half-written file
	tmp := filepath.Join(dir, "apikit.yaml.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("client:\n  base_url: http://two.example.com\n"), 0o600))
	require.NoError(t, os.Rename(tmp, path))

	require.Eventually(t, func() bool {
		var got string
		c.View(func() { got = s.Client.BaseURL })
		return got == "http://two.example.com" && reloads.Load() > 0
	}, 5*time.Second, 20*time.Millisecond)
}

func TestLogFileConfig(t *testing.T) {
	s, _, err := LoadSettings(filepath.Join("testdata", "apikit.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/metrics", s.Metrics.Path)

	fc, err := s.Log.File.FileConfig()
	require.NoError(t, err)
	assert.Equal(t, writer.RotateModeTime, fc.RotateMode)
	assert.Equal(t, "log", fc.Filepath)
	assert.Equal(t, "apikit", fc.Filename)
	assert.Equal(t, 30*24, fc.RotatelogsConfig.MaxAge)
	assert.Equal(t, 100, fc.LumberjackConfig.MaxSize)

	_, err = LogFileSettings{Rotate: "weekly"}.FileConfig()
	assert.Error(t, err)
}

func TestLoadSettingsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	require.NoError(t, os.WriteFile("apikit.yaml", []byte("client: [base_url\n"), 0o600))

	for name, path := range map[string]string{"searched": "", "explicit": "apikit.yaml"} {
		t.Run(name, func(t *testing.T) {
			_, _, err := LoadSettings(path)
			require.Error(t, err)
			assert.Equal(t, 400, errors.CodeOf(err))
			assert.True(t, errors.IsKind(err, errors.KindInvalid))
			assert.NotContains(t, err.Error(), "not found")
		})
	}
}

func TestLoadSettingsOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APIKIT_CLIENT_BASE_URL", "http://env.example.com")

	s, _, err := LoadSettings("", WithOverrides(map[string]any{"client.base_url": "http://flag.example.com"}))
	require.NoError(t, err)
	assert.Equal(t, "http://flag.example.com", s.Client.BaseURL)

	_, _, err = LoadSettings("", WithOverrides(map[string]any{"client.base_url": "notaurl"}))
	require.Error(t, err)
	assert.Equal(t, 400, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "base_url")
}
