package pxrem

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LoggerOptions configures NewLogger
type LoggerOptions struct {
	Verbose   bool // Enable debug records
	JSON      bool // Emit JSON records instead of styled lines
	UseColors bool
}

// NewLogger creates the slog logger used by the cache, key resolver and CLI.
// A nil writer logs to stderr.
func NewLogger(w io.Writer, opts LoggerOptions) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	if opts.JSON {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(NewPrettyHandler(w, handlerOpts, opts.UseColors))
}

// discardLogger is used when a component is built without a logger
func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// PrettyHandler is a slog.Handler producing short, styled, human-readable lines.
type PrettyHandler struct {
	mu        *sync.Mutex
	w         io.Writer
	level     slog.Leveler
	useColors bool
	attrs     []slog.Attr
	group     string
}

// NewPrettyHandler creates a PrettyHandler writing to w
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions, useColors bool) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level.Level()
	}

	levelVar := &slog.LevelVar{}
	levelVar.Set(level)

	return &PrettyHandler{
		mu:        &sync.Mutex{},
		w:         w,
		level:     levelVar,
		useColors: useColors,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var msg string

	switch {
	case r.Level >= slog.LevelError:
		msg = RenderStyle(StyleRed, "error: "+r.Message, h.useColors)
	case r.Level >= slog.LevelWarn:
		msg = RenderStyle(StyleYellow, "warning: "+r.Message, h.useColors)
	case r.Level < slog.LevelInfo:
		msg = RenderStyle(StyleGray, r.Message, h.useColors)
	default:
		msg = r.Message
	}

	attrParts := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, attr := range h.attrs {
		attrParts = append(attrParts, formatAttr(h.group, attr))
	}
	r.Attrs(func(attr slog.Attr) bool {
		attrParts = append(attrParts, formatAttr(h.group, attr))
		return true
	})

	if len(attrParts) > 0 {
		msg += " " + RenderStyle(StyleGray, strings.Join(attrParts, " "), h.useColors)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, msg+"\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)

	clone := *h
	clone.attrs = newAttrs
	return &clone
}

// WithGroup returns a new Handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.group = name
	return &clone
}

// formatAttr formats a single attribute for output.
// If a group is set, the key is prefixed with the group name.
func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	return key + "=" + attr.Value.String()
}
