// Package logging configures the file logger. A TUI owns the terminal, so
// nothing is ever written to stdout or stderr; without a log file every
// record is discarded.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// EnvLevel overrides the level when none is given on the command line.
const EnvLevel = "SCMPANEL_LOG_LEVEL"

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// ParseLevel accepts debug, info, warn(ing), error and fatal. An empty
// string falls back to $SCMPANEL_LOG_LEVEL, then info.
func ParseLevel(s string) (log.Level, error) {
	if s == "" {
		s = os.Getenv(EnvLevel)
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return log.InfoLevel, nil
	case "warning":
		return log.WarnLevel, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("parsing log level %q: %w", s, err)
	}
	return lvl, nil
}

// Init opens path for appending (mode 0600) and returns a logger writing to
// it with the given level. The returned closer releases the file. An empty
// path yields a discarding logger and a no-op closer.
func Init(path, level string) (*log.Logger, func() error, error) {
	if path == "" {
		return Discard(), func() error { return nil }, nil
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		Level:           lvl,
		Prefix:          "scmpanel",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	return logger, f.Close, nil
}

// Op starts timing an operation. Call the returned function when it
// completes:
//
//	done := logging.Op(logger, "git status", "root", root)
//	defer func() { done(err) }()
func Op(logger *log.Logger, op string, keyvals ...any) func(error) {
	if logger == nil {
		return func(error) {}
	}
	start := time.Now()
	return func(err error) {
		args := make([]any, 0, len(keyvals)+6)
		args = append(args, "op", op, "duration", time.Since(start).String())
		args = append(args, keyvals...)
		if err != nil {
			args = append(args, "error", err.Error())
			logger.Error("operation failed", args...)
			return
		}
		logger.Debug("operation complete", args...)
	}
}
