package logger

import (
	"log/slog"
	"strings"
)

// Config represents logger configuration
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Format      string // "json", "text"
	ServiceName string
	Version     string
	Environment string // "dev", "staging", "prod"
	// Node distinguishes instances that relay events to each other
	Node      string
	AddSource bool
}

// NewConfig fills unset fields from the environment: production runs get
// JSON output, dev runs get source locations.
func NewConfig(level, format, environment, version, node string) Config {
	cfg := Config{
		Level:       level,
		Format:      format,
		ServiceName: DefaultServiceName,
		Version:     version,
		Environment: strings.ToLower(environment),
		Node:        node,
	}
	if cfg.Environment == "" {
		cfg.Environment = EnvironmentDev
	}
	if cfg.Level == "" {
		cfg.Level = LogLevelInfo
	}
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	if cfg.Format == "" {
		cfg.Format = LogFormatText
		if cfg.Environment == EnvironmentProduction {
			cfg.Format = LogFormatJSON
		}
	}
	cfg.AddSource = cfg.Environment == EnvironmentDev || cfg.Environment == EnvironmentDevelopment
	return cfg
}

// DefaultConfig returns defaults used when nothing was configured
func DefaultConfig() Config {
	return NewConfig("", "", "", "", "")
}

// LogLevel converts string level to slog.Level
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn, LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsJSON returns true if format is JSON
func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

// BaseAttributes returns common attributes to add to all logs
func (c Config) BaseAttributes() []slog.Attr {
	attrs := []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
	if c.Node != "" {
		attrs = append(attrs, slog.String(AttrKeyNode, c.Node))
	}
	return attrs
}
