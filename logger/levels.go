package logger

import (
	"fmt"
	"log/slog"
	"strings"
)

type Level int

const (
	InfoLevel Level = iota
	DebugLevel
	WarnLevel
	ErrorLevel
	DefaultLevel Level = InfoLevel
)

var levels = map[Level]slog.Level{
	DebugLevel: slog.LevelDebug,
	InfoLevel:  slog.LevelInfo,
	WarnLevel:  slog.LevelWarn,
	ErrorLevel: slog.LevelError,
}

var ErrUnknownLevel = fmt.Errorf("logger: unknown level")

// ParseLevel maps a level name such as "debug" or "WARN" to a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return DebugLevel, nil
	case "", "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return DefaultLevel, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}
}

// Output format of the underlying slog handler.
type Type int

const (
	TypeText Type = iota
	TypeJSON
)
