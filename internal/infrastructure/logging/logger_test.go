package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/planner-go/internal/infrastructure/config"
	"github.com/andrescamacho/planner-go/internal/infrastructure/logging"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, logging.ParseLevel(in))
		})
	}
}

func TestPlanLogger_JSONOutput(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := logging.NewPlanLogger(logging.NewLoggerTo(&buf, config.LoggingConfig{Level: "debug", Format: "json"}))

	// Act
	logger.Log("WARN", "Record rejected", map[string]interface{}{"record": "material \"D\"", "value": -1.0})

	// Assert
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "Record rejected", entry["msg"])
	assert.Equal(t, "material \"D\"", entry["record"])
	assert.Equal(t, -1.0, entry["value"])
}

func TestPlanLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewPlanLogger(logging.NewLoggerTo(&buf, config.LoggingConfig{Level: "warn", Format: "text"}))

	logger.Log("INFO", "quiet", nil)
	logger.Log("ERROR", "loud", map[string]interface{}{"cycle": 2})

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "msg=loud cycle=2")
}

func TestNewLogger_FileOutput(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "planner.log")

	// Act
	logger, closer, err := logging.NewLogger(config.LoggingConfig{Level: "info", Format: "text", Output: "file", FilePath: path})
	require.NoError(t, err)
	logger.Info("cycle completed", "cycle", 1)
	require.NoError(t, closer.Close())

	// Assert
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cycle completed")
}

func TestNewLogger_UnknownOutput(t *testing.T) {
	_, _, err := logging.NewLogger(config.LoggingConfig{Output: "syslog"})

	assert.Error(t, err)
}
