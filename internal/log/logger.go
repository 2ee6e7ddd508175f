// Package log provides structured logging with pass and viewer IDs.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/helixml/molsync/internal/config"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for logging.
const (
	PassIDKey ContextKey = "pass_id"
	ViewerKey ContextKey = "viewer"
)

// NewLogger creates a logger writing to stderr as configured.
func NewLogger(cfg config.AppConfig) *slog.Logger {
	return NewLoggerWithWriter(os.Stderr, cfg.LogFormat(), cfg.LogLevel())
}

// NewLoggerWithWriter creates a logger writing to w. Records logged with a
// context carrying a pass ID or viewer get them as attributes.
func NewLoggerWithWriter(w io.Writer, format config.LogFormat, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	switch format {
	case config.LogFormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = newTerminalHandler(w, opts)
	}
	return slog.New(contextHandler{next: handler})
}

// ParseLevel parses a level name, defaulting to INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Configure builds the configured logger and installs it as the slog default.
func Configure(cfg config.AppConfig) *slog.Logger {
	l := NewLogger(cfg)
	slog.SetDefault(l)
	return l
}

// NewPassID returns a fresh identifier for one colouring pass.
func NewPassID() string {
	return uuid.NewString()
}

// WithPassID adds a pass ID to the context.
func WithPassID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, PassIDKey, id)
}

// PassID extracts the pass ID from context.
func PassID(ctx context.Context) string {
	id, _ := ctx.Value(PassIDKey).(string)
	return id
}

// WithViewer adds a viewer session ID to the context.
func WithViewer(ctx context.Context, viewer string) context.Context {
	return context.WithValue(ctx, ViewerKey, viewer)
}

// Viewer extracts the viewer session ID from context.
func Viewer(ctx context.Context) string {
	v, _ := ctx.Value(ViewerKey).(string)
	return v
}

// contextHandler adds the pass ID and viewer found in the record's context.
type contextHandler struct {
	next slog.Handler
}

func (h contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := PassID(ctx); id != "" {
		r.AddAttrs(slog.String(string(PassIDKey), id))
	}
	if v := Viewer(ctx); v != "" {
		r.AddAttrs(slog.String(string(ViewerKey), v))
	}
	return h.next.Handle(ctx, r)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{next: h.next.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{next: h.next.WithGroup(name)}
}
