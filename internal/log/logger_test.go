package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/helixml/molsync/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	cfg := config.NewAppConfigWithOptions(
		config.WithLogLevel("DEBUG"),
		config.WithLogFormat(config.LogFormatJSON),
	)
	logger := NewLogger(cfg)

	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestLogger_JSONLines(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "DEBUG")

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		var data map[string]any
		assert.NoError(t, json.Unmarshal([]byte(line), &data))
	}
}

func TestLogger_ContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO").With("component", "colouring")

	ctx := WithViewer(WithPassID(context.Background(), "pass-1"), "chimera-1")
	logger.InfoContext(ctx, "commands generated")

	var data map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	assert.Equal(t, "pass-1", data["pass_id"])
	assert.Equal(t, "chimera-1", data["viewer"])
	assert.Equal(t, "colouring", data["component"])
}

func TestLogger_NoContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	logger.InfoContext(context.Background(), "plain")

	var data map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	assert.NotContains(t, data, "pass_id")
	assert.NotContains(t, data, "viewer")
}

func TestLogger_TerminalFormatWithPassID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatPretty, "INFO")

	logger.InfoContext(WithPassID(context.Background(), "abc"), "pass done")

	assert.Contains(t, buf.String(), "pass done")
	assert.Contains(t, buf.String(), "pass_id=")
	assert.Contains(t, buf.String(), "abc")
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "warn")

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"ERROR":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestPassID(t *testing.T) {
	a, b := NewPassID(), NewPassID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)

	assert.Empty(t, PassID(context.Background()))
	assert.Equal(t, a, PassID(WithPassID(context.Background(), a)))
	assert.Empty(t, Viewer(context.Background()))
}
