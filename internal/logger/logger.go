package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	Level  string // debug, info, warn, error
	Format string // json or console
	Output string // stdout, stderr, or file path
}

// New builds a zerolog.Logger from cfg. An empty level means info.
func New(cfg Config) (zerolog.Logger, error) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level: %w", err)
	}

	var output io.Writer
	switch cfg.Output {
	case "", "stderr":
		output = os.Stderr
	case "stdout":
		output = os.Stdout
	default:
		file, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("could not open log file: %w", err)
		}
		output = file
	}

	return build(output, cfg.Format, level), nil
}

func build(output io.Writer, format string, level zerolog.Level) zerolog.Logger {
	if format == "console" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.DateTime}
	}
	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}
