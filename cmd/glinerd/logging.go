package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// newLogger builds the process logger. format is "console" or "json"; level
// "off" disables output.
func newLogger(level, format string, out io.Writer) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	switch l := strings.ToLower(strings.TrimSpace(level)); l {
	case "":
	case "off":
		lvl = zerolog.Disabled
	default:
		parsed, err := zerolog.ParseLevel(l)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("log level: %w", err)
		}
		lvl = parsed
	}
	switch strings.ToLower(format) {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("unsupported log format: %s", format)
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
