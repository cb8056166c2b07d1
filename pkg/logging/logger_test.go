package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{NoticeLevel, "NOTICE"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.String())
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", DebugLevel},
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"NOTICE", NoticeLevel},
		{"notice", NoticeLevel},
		{"WARN", WarnLevel},
		{"WARNING", WarnLevel},
		{"ERROR", ErrorLevel},
		{"invalid", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestFieldConstructors(t *testing.T) {
	assert.Equal(t, Field{"key", "value"}, String("key", "value"))
	assert.Equal(t, Field{"count", 42}, Int("count", 42))
	assert.Equal(t, Field{"id", uint64(9876543210)}, Uint64("id", 9876543210))
	assert.Equal(t, Field{"ratio", 3.14}, Float64("ratio", 3.14))
	assert.Equal(t, Field{"enabled", true}, Bool("enabled", true))
	assert.Equal(t, Field{"timeout", "5s"}, Duration("timeout", 5*time.Second))
	assert.Equal(t, Field{"node_id", 7}, NodeID(7))
	assert.Equal(t, "3/15", Attempt(3, 15).Value)

	f := Error(errors.New("boom"))
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "boom", f.Value)

	assert.Equal(t, Field{"error", nil}, Error(nil))
}

func TestJSONLogger_BasicLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel, "local0")

	logger.Info("test message", String("key", "value"))

	var entry LogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "test message", entry.Message)
	assert.Equal(t, "local0", entry.Facility)
	assert.Equal(t, "value", entry.Fields["key"])
	assert.NotEmpty(t, entry.Time)
}

func TestJSONLogger_AllLevelsEmitExpectedTag(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func(Logger)
		expected string
	}{
		{"Debug", func(l Logger) { l.Debug("m") }, "DEBUG"},
		{"Info", func(l Logger) { l.Info("m") }, "INFO"},
		{"Notice", func(l Logger) { l.Notice("m") }, "NOTICE"},
		{"Warn", func(l Logger) { l.Warn("m") }, "WARN"},
		{"Error", func(l Logger) { l.Error("m") }, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewJSONLogger(&buf, DebugLevel, "")
			tt.logFunc(logger)

			var entry LogEntry
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.expected, entry.Level)
		})
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel, "")

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Notice("notice message")
	logger.Warn("warn message")
	logger.Error("error message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var warnEntry, errorEntry LogEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &warnEntry))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &errorEntry))
	assert.Equal(t, "WARN", warnEntry.Level)
	assert.Equal(t, "ERROR", errorEntry.Level)
}

func TestJSONLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel, "")

	child := logger.With(ClusterName("prod"), NodeID(3))
	child.Info("test message", String("action", "reconnect"))

	var entry LogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "prod", entry.Fields["cluster_name"])
	assert.Equal(t, float64(3), entry.Fields["node_id"])
	assert.Equal(t, "reconnect", entry.Fields["action"])
}

func TestJSONLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel, "")
	assert.Equal(t, InfoLevel, logger.GetLevel())

	logger.SetLevel(ErrorLevel)
	assert.Equal(t, ErrorLevel, logger.GetLevel())

	logger.Debug("debug")
	logger.Info("info")
	assert.Zero(t, buf.Len())

	logger.Error("error")
	assert.NotZero(t, buf.Len())
}

func TestJSONLogger_NoFieldsOmitted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel, "")
	logger.Info("message without fields")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, exists := entry["fields"]
	assert.False(t, exists)
}

func TestDefaultLogger(t *testing.T) {
	logger := DefaultLogger()
	require.NotNil(t, logger)
	logger.Info("test message")
}

func TestNopLogger(t *testing.T) {
	nop := NewNopLogger()
	nop.Debug("x")
	nop.Info("x")
	nop.Notice("x")
	nop.Warn("x")
	nop.Error("x")
	assert.Equal(t, InfoLevel, nop.GetLevel())
	assert.IsType(t, NopLogger{}, nop.With(String("a", "b")))
}
