package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLogging(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	InitLoggerWithWriter(Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "test-service",
		Version:     "1.0.0",
		Environment: "test",
	}, &buf)

	Info("round started", "event", "arena", "participants", 4)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "test-service", entry["service"])
	assert.Equal(t, "1.0.0", entry["version"])
	assert.Equal(t, "test", entry["environment"])
	assert.Equal(t, "round started", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "arena", entry["event"])
	assert.Equal(t, float64(4), entry["participants"])
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	InitLoggerWithWriter(DefaultConfig(), &buf)

	Debug("noisy")
	assert.Empty(t, buf.String())
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "test-req-123")
	assert.Equal(t, "test-req-123", GetRequestID(ctx))

	_, ok := RequestIDFromContext(context.Background())
	assert.False(t, ok)
	assert.NotNil(t, FromContext(ctx))
}

func TestConfigLevels(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Config{Level: "DEBUG"}.LogLevel())
	assert.Equal(t, slog.LevelWarn, Config{Level: "warning"}.LogLevel())
	assert.Equal(t, slog.LevelError, Config{Level: "error"}.LogLevel())
	assert.Equal(t, slog.LevelInfo, Config{Level: "bogus"}.LogLevel())
}

func TestNewConfigDefaults(t *testing.T) {
	prod := NewConfig("", "", "PROD", "2.3.0", "shard-eu-1")
	assert.True(t, prod.IsJSON())
	assert.Equal(t, EnvironmentProduction, prod.Environment)
	assert.False(t, prod.AddSource)
	assert.Equal(t, slog.LevelInfo, prod.LogLevel())

	dev := DefaultConfig()
	assert.False(t, dev.IsJSON())
	assert.True(t, dev.AddSource)
	assert.Equal(t, DefaultVersion, dev.Version)

	explicit := NewConfig("debug", "json", "dev", "", "")
	assert.True(t, explicit.IsJSON(), "an explicit format wins")
}

func TestBaseAttributesIncludeNode(t *testing.T) {
	keys := func(attrs []slog.Attr) []string {
		var out []string
		for _, a := range attrs {
			out = append(out, a.Key)
		}
		return out
	}
	assert.NotContains(t, keys(DefaultConfig().BaseAttributes()), AttrKeyNode)
	assert.Contains(t, keys(NewConfig("", "", "", "", "shard-eu-1").BaseAttributes()), AttrKeyNode)
}

func TestInitLoggerInstallsConfiguredLevel(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	InitLogger(NewConfig("debug", "text", "dev", "", ""))
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))

	InitLogger(NewConfig("warn", "text", "dev", "", ""))
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelInfo))
}
