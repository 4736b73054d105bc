package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rakaarfi/roster-system-be/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWriter_JSONConsole(t *testing.T) {
	var buf bytes.Buffer
	closer, w := buildWriter(&config.Config{LogLevel: "debug", LogFormat: "json"}, &buf)
	assert.Nil(t, closer)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	l := zerolog.New(w)
	l.Info().Str("staff_id", "emp1").Msg("hello")
	assert.Contains(t, buf.String(), `"staff_id":"emp1"`)
}

func TestBuildWriter_InvalidLevelFallsBack(t *testing.T) {
	_, _ = buildWriter(&config.Config{LogLevel: "loud"}, &bytes.Buffer{})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestBuildWriter_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	closer, w := buildWriter(&config.Config{LogLevel: "info", LogFormat: "json", LogFileEnabled: true, LogFilePath: path}, &bytes.Buffer{})
	require.NotNil(t, closer)

	l := zerolog.New(w)
	l.Info().Msg("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}
