package logger

import (
	"io"
	"log/slog"
	"os"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type Options struct {
	Buffer io.Writer
	Level  Level
	Type   Type
}

var DefaultLogger = New(Options{os.Stdout, DefaultLevel, TypeText})

// Discard drops every record. Useful for tests and for the interactive
// front end, which owns stdout.
var Discard = New(Options{io.Discard, ErrorLevel, TypeText})

type logger struct {
	*slog.Logger
}

func New(opts Options) Logger {
	if opts.Buffer == nil {
		opts.Buffer = os.Stdout
	}
	var handler slog.Handler
	switch opts.Type {
	case TypeJSON:
		handler = slog.NewJSONHandler(opts.Buffer, &slog.HandlerOptions{
			Level: levels[opts.Level],
		})
	case TypeText:
		fallthrough
	default:
		handler = slog.NewTextHandler(opts.Buffer, &slog.HandlerOptions{
			Level: levels[opts.Level],
		})
	}
	return &logger{
		Logger: slog.New(handler),
	}
}

// Or returns l, or DefaultLogger when l is nil.
func Or(l Logger) Logger {
	if l == nil {
		return DefaultLogger
	}
	return l
}
