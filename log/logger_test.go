package log

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/apikit/errors"
	"github.com/kochabx/apikit/log/writer"
)

func TestWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, WithFields(map[string]any{"service": "apikit"}))

	logger.Error().Err(errors.New(404, "not found")).Str("endpoint", "users/1").Msg("request failed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "not found", entry["error"])
	assert.Equal(t, "users/1", entry["endpoint"])
	assert.Equal(t, "apikit", entry["service"])
	assert.Equal(t, "request failed", entry["message"])
}

func TestWithLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, WithLevel(zerolog.WarnLevel))

	logger.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	logger.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf).Component("eventbus")
	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), `"component":"eventbus"`)
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, level)

	level, err = ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestGlobalLog(t *testing.T) {
	prev := G
	defer SetGlobalLogger(prev)

	var buf bytes.Buffer
	SetGlobalLogger(NewWriter(&buf))
	SetGlobalLogger(nil)

	Info().Msg("global info")
	Errorf("global %s", "error")
	assert.Contains(t, buf.String(), "global info")
	assert.Contains(t, buf.String(), "global error")
}

func TestFileLog(t *testing.T) {
	config := FileConfig{
		RotateMode: writer.RotateModeSize,
		Filepath:   t.TempDir(),
		Filename:   "test",
		LumberjackConfig: LumberjackConfig{
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
		},
	}

	logger, err := NewFile(config)
	require.NoError(t, err)
	defer logger.Close()

	logger.Info().Msg("test file log")
	assert.FileExists(t, filepath.Join(config.Filepath, "test.log"))
}

func TestParseRotateMode(t *testing.T) {
	mode, err := writer.ParseRotateMode("time")
	require.NoError(t, err)
	assert.Equal(t, writer.RotateModeTime, mode)

	mode, err = writer.ParseRotateMode("")
	require.NoError(t, err)
	assert.Equal(t, writer.RotateModeSize, mode)

	_, err = writer.ParseRotateMode("weekly")
	assert.Error(t, err)
}
