package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config selects where and how log events are written.
type Config struct {
	Level  string // debug, info, warn, error (default info)
	Format string // console or json (default console)
	File   string // optional file receiving JSON events in addition to Out
}

// New builds a logger writing to out and, when cfg.File is set, to that file.
// The returned close function releases the file. The logger also becomes the
// global zerolog/log logger.
func New(cfg Config, out io.Writer) (zerolog.Logger, func() error, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
		}
		level = l
	}

	var console io.Writer = out
	switch strings.ToLower(cfg.Format) {
	case "", "console":
		console = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	case "json":
	default:
		return zerolog.Nop(), nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	writers := []io.Writer{console}
	closeFn := func() error { return nil }
	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o664)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("open log file %q: %w", cfg.File, err)
		}
		writers = append(writers, file)
		closeFn = file.Close
	}

	l := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().
		Logger()
	log.Logger = l
	return l, closeFn, nil
}

// WithContext returns a context carrying l with the given fields attached.
func WithContext(ctx context.Context, l zerolog.Logger, fields map[string]any) context.Context {
	if len(fields) > 0 {
		l = l.With().Fields(fields).Logger()
	}
	return l.WithContext(ctx)
}

// FromContext extracts the logger from ctx, falling back to the global logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return &log.Logger
	}
	return l
}
