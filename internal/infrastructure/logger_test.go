package infrastructure

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amfcli/internal/config"
	"amfcli/internal/shared/testutil"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.in))
		})
	}
}

func TestTraceHandler_InjectsTraceID(t *testing.T) {
	capture := testutil.NewCaptureHandler()
	logger := slog.New(&traceHandler{Handler: capture})

	ctx := WithTraceID(context.Background(), "run-1234")
	logger.InfoContext(ctx, "processing started")

	records := capture.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "run-1234", records[0].Attrs["trace_id"])
}

func TestTraceHandler_NoTraceID(t *testing.T) {
	capture := testutil.NewCaptureHandler()
	logger := slog.New(&traceHandler{Handler: capture})

	logger.InfoContext(context.Background(), "no trace")

	records := capture.Records()
	require.Len(t, records, 1)
	_, present := records[0].Attrs["trace_id"]
	assert.False(t, present)
}

func TestGetTraceID(t *testing.T) {
	assert.Equal(t, "", GetTraceID(context.Background()))

	ctx := WithTraceID(context.Background(), "abc")
	assert.Equal(t, "abc", GetTraceID(ctx))
}

func TestLoggerFromContext(t *testing.T) {
	ResetLoggerForTesting()
	t.Cleanup(ResetLoggerForTesting)

	// Without a trace id the global logger comes back as-is.
	base := GetLogger()
	assert.Same(t, base, LoggerFromContext(context.Background()))

	// A trace id yields a child logger carrying the attribute.
	ctx := WithTraceID(context.Background(), "run-5678")
	traced := LoggerFromContext(ctx)
	assert.NotSame(t, base, traced)
}

func TestInitializeLogger_FileOutput(t *testing.T) {
	ResetLoggerForTesting()
	t.Cleanup(ResetLoggerForTesting)

	logPath := filepath.Join(t.TempDir(), "logs", "processor.log")
	logger, err := InitializeLogger(config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logPath,
	})
	require.NoError(t, err)

	logger.Info("hello from test", slog.String("component", "logger_test"))
	require.NoError(t, CloseLogFile())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello from test")
	assert.Contains(t, string(content), `"component":"logger_test"`)
}

func TestCreateLogger_TextFormat(t *testing.T) {
	ResetLoggerForTesting()
	t.Cleanup(ResetLoggerForTesting)

	logPath := filepath.Join(t.TempDir(), "text.log")
	logger, err := createLogger(config.LoggingConfig{
		Level:    "debug",
		Format:   "text",
		Output:   "file",
		FilePath: logPath,
	})
	require.NoError(t, err)

	logger.Debug("text format line")
	require.NoError(t, CloseLogFile())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), "msg=") ||
		strings.Contains(string(content), "text format line"))
}
