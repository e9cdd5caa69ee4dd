// Package logger builds the zerolog loggers used by the server and CLI.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iho/simplebank/internal/infrastructure/config"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

const serviceName = "simplebank"

// Config selects level, encoding and destination of a logger.
type Config struct {
	Level  string
	Format string
	// Component tags every line, e.g. "server" or "cli".
	Component string
	// Output defaults to stdout.
	Output io.Writer
}

// FromConfig derives logger settings from the application config.
func FromConfig(cfg *config.Config, component string) Config {
	return Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		Component: component,
	}
}

// New creates a logger. Caller information is only attached at debug
// level and below.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	if cfg.Format == FormatConsole {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}

	level := ParseLevel(cfg.Level)

	fields := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", serviceName)

	if cfg.Component != "" {
		fields = fields.Str("component", cfg.Component)
	}

	if level <= zerolog.DebugLevel {
		fields = fields.Caller()
	}

	return fields.Logger()
}

// ParseLevel maps a configured level name onto zerolog. Unknown or empty
// names fall back to info.
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Install makes l the global logger and the fallback for contexts that
// carry none, so zerolog.Ctx never yields a disabled logger.
func Install(l zerolog.Logger) {
	log.Logger = l
	zerolog.DefaultContextLogger = &l
}
