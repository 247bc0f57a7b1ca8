// Package logging builds the slog logger used by the newsdesk commands and
// provides a handler that redacts credentials before records are written.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Redacted replaces the value of sensitive attributes.
const Redacted = "[REDACTED]"

// sensitiveKeys are attribute keys whose values never reach the output.
// Matching is case-insensitive.
var sensitiveKeys = []string{"token", "password", "authorization", "bearer_token", "secret"}

// ParseLevel maps debug, info, warn and error to a slog.Level. Anything
// else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger writing to w at the given level. Format "json"
// selects the JSON handler; anything else the text handler. Sensitive
// attributes are redacted.
func New(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var inner slog.Handler
	if strings.EqualFold(format, "json") {
		inner = slog.NewJSONHandler(w, opts)
	} else {
		inner = slog.NewTextHandler(w, opts)
	}
	return slog.New(NewRedactHandler(inner))
}

// RedactHandler is a slog.Handler that wraps another handler and masks the
// values of sensitive attributes, including ones nested in groups.
type RedactHandler struct {
	inner slog.Handler
}

// NewRedactHandler creates a RedactHandler that wraps the given handler.
func NewRedactHandler(inner slog.Handler) *RedactHandler {
	return &RedactHandler{inner: inner}
}

// Enabled implements slog.Handler.
func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *RedactHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(redact(a))
		return true
	})
	return h.inner.Handle(ctx, out)
}

// WithAttrs implements slog.Handler.
func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clean[i] = redact(a)
	}
	return &RedactHandler{inner: h.inner.WithAttrs(clean)}
}

// WithGroup implements slog.Handler.
func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{inner: h.inner.WithGroup(name)}
}

func redact(a slog.Attr) slog.Attr {
	if isSensitive(a.Key) {
		return slog.String(a.Key, Redacted)
	}
	v := a.Value.Resolve()
	if v.Kind() != slog.KindGroup {
		return slog.Attr{Key: a.Key, Value: v}
	}
	group := v.Group()
	clean := make([]any, len(group))
	for i, g := range group {
		clean[i] = redact(g)
	}
	return slog.Group(a.Key, clean...)
}

func isSensitive(key string) bool {
	for _, k := range sensitiveKeys {
		if strings.EqualFold(key, k) {
			return true
		}
	}
	return false
}
