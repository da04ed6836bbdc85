package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredLogger(t *testing.T) {
	t.Run("emits JSON records", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		logger.Info("holiday calendar built",
			slog.String("component", "holidays"),
			slog.Int("years", 11))

		output := buf.String()
		assert.Contains(t, output, `"level":"INFO"`)
		assert.Contains(t, output, `"msg":"holiday calendar built"`)
		assert.Contains(t, output, `"component":"holidays"`)
		assert.Contains(t, output, `"years":11`)
		assert.Contains(t, output, `"time":`)
	})

	t.Run("respects the minimum level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelWarn)

		logger.Debug("resolved timetable view")
		logger.Info("resolved timetable view")
		logger.Warn("period table is empty")

		output := buf.String()
		assert.NotContains(t, output, "resolved timetable view")
		assert.Contains(t, output, "period table is empty")
	})
}

func TestLoggerHelpers(t *testing.T) {
	t.Run("LogError carries the error and extra attributes", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		LogError(logger, "failed to load GTFS feed", assert.AnError,
			slog.String("source", "city-bus.zip"),
			slog.String("component", "bus_import"))

		output := buf.String()
		assert.Contains(t, output, `"level":"ERROR"`)
		assert.Contains(t, output, `"msg":"failed to load GTFS feed"`)
		assert.Contains(t, output, `"error":"assert.AnError general error for testing"`)
		assert.Contains(t, output, `"source":"city-bus.zip"`)
		assert.Contains(t, output, `"component":"bus_import"`)
	})

	t.Run("LogOperation drops zero durations", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		LogOperation(logger, "bus_gtfs_import_finished",
			slog.String("source", "city-bus.zip"),
			slog.Int("routes", 12),
			slog.Duration("duration", 0))

		output := buf.String()
		assert.Contains(t, output, `"level":"INFO"`)
		assert.Contains(t, output, `"msg":"bus_gtfs_import_finished"`)
		assert.Contains(t, output, `"routes":12`)
		assert.NotContains(t, output, `"duration"`)
	})

	t.Run("nil logger is a no-op", func(t *testing.T) {
		LogError(nil, "ignored", assert.AnError)
		LogOperation(nil, "ignored")
	})

	t.Run("LogHTTPRequest logs the standard request fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		LogHTTPRequest(logger, "GET", "/api/shuttle/timetable-view", 200, 1.5,
			slog.String("user_agent", "test-client"))

		output := buf.String()
		assert.Contains(t, output, `"msg":"http_request"`)
		assert.Contains(t, output, `"method":"GET"`)
		assert.Contains(t, output, `"path":"/api/shuttle/timetable-view"`)
		assert.Contains(t, output, `"status":200`)
		assert.Contains(t, output, `"duration_ms":1.5`)
		assert.Contains(t, output, `"user_agent":"test-client"`)
	})
}

func TestContextLogger(t *testing.T) {
	t.Run("round-trips through the context", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		ctx := WithLogger(context.Background(), logger)

		retrieved := FromContext(ctx)
		require.NotNil(t, retrieved)
		retrieved.Info("resolved from context")

		assert.Contains(t, buf.String(), "resolved from context")
	})

	t.Run("falls back to the default logger", func(t *testing.T) {
		logger := FromContext(context.Background())
		require.NotNil(t, logger)
	})
}
