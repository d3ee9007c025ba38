// Package logger builds the tool's slog.Logger from user options.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options selects the level, destination and format of log output.
type Options struct {
	Level  string // debug, info, warn or error; empty means warn
	File   string // append to this file; empty or "-" means stderr
	Format string // text or json; empty means text
}

// level maps a level option to a slog level. An empty option selects warn so
// the conversation on stdout is not interleaved with routine log lines.
func level(option string) (slog.Leveler, bool) {
	switch strings.ToLower(option) {
	case "", "warn":
		return slog.LevelWarn, true
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "error":
		return slog.LevelError, true
	default:
		return nil, false
	}
}

// New returns a logger for options. Options that cannot be honoured fall
// back to their defaults and the fallback is logged as a warning.
func New(options *Options) *slog.Logger {
	return newWithStderr(options, os.Stderr)
}

func newWithStderr(options *Options, stderr io.Writer) *slog.Logger {
	level, ok := level(options.Level)
	if !ok {
		bad := options.Level
		options.Level = ""
		logger := newWithStderr(options, stderr)
		logger.Warn("could not parse logger level", "level", bad)
		return logger
	}
	opts := slog.HandlerOptions{Level: level}

	var output io.Writer
	switch options.File {
	case "", "-":
		output = stderr
	case os.DevNull:
		return slog.New(slog.DiscardHandler)
	default:
		f, err := os.OpenFile(options.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			options.File = ""
			logger := newWithStderr(options, stderr)
			logger.Warn("could not open logger file", "err", err)
			return logger
		}
		output = f
	}

	switch strings.ToLower(options.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(output, &opts))
	case "json":
		return slog.New(slog.NewJSONHandler(output, &opts))
	default:
		bad := options.Format
		options.Format = "text"
		logger := newWithStderr(options, stderr)
		logger.Warn("could not parse logger format", "format", bad)
		return logger
	}
}
