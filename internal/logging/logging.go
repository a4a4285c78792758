// Package logging builds the console logger shared by the CLI and TUI.
package logging

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrInvalidLevel indicates an unrecognized level name.
var ErrInvalidLevel = errors.New("invalid log level")

// ParseLevel parses debug, info, warn or error. Empty means warn.
func ParseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.WarnLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return zapcore.WarnLevel, fmt.Errorf("%q: %w", s, ErrInvalidLevel)
	}
	switch l {
	case zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel:
		return l, nil
	default:
		return zapcore.WarnLevel, fmt.Errorf("%q: %w", s, ErrInvalidLevel)
	}
}

// New returns a console-encoded logger writing to w at level.
// Timestamps are omitted; the output is meant for a terminal's stderr.
func New(level zapcore.Level, w io.Writer) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	enc.CallerKey = ""
	enc.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core)
}

// Discard returns a no-op logger.
func Discard() *zap.Logger {
	return zap.NewNop()
}
