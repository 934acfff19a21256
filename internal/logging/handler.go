package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var (
	dimColor   = color.New(color.FgHiBlack)
	debugColor = color.New(color.FgMagenta)
	infoColor  = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed, color.Bold)
	keyColor   = color.New(color.FgCyan)
)

// Handler is a slog.Handler that renders compact single-line text,
// colorized when the writer supports it. Group names become dotted key
// prefixes.
type Handler struct {
	opts   slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	prefix string
	color  bool
}

// NewHandler creates a text handler writing to out. A nil opts uses the
// info level.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &Handler{
		opts:  *opts,
		out:   out,
		mu:    &sync.Mutex{},
		color: SupportsColor(out),
	}
}

// Enabled reports whether records at level are emitted.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle renders the record as one line: time, level, message, then
// key=value attributes.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	if !r.Time.IsZero() {
		b.WriteString(h.paint(dimColor, r.Time.Format("15:04:05")))
		b.WriteByte(' ')
	}
	b.WriteString(h.paint(levelColor(r.Level), fmt.Sprintf("%-5s", levelName(r.Level))))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		h.writeAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&b, h.prefix, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *Handler) writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	b.WriteByte(' ')
	b.WriteString(h.paint(keyColor, prefix+a.Key))
	b.WriteByte('=')
	val := a.Value.String()
	if strings.ContainsAny(val, " \t") {
		val = strconv.Quote(val)
	}
	b.WriteString(val)
}

func (h *Handler) paint(c *color.Color, s string) string {
	if !h.color {
		return s
	}
	return c.Sprint(s)
}

func levelColor(level slog.Level) *color.Color {
	switch {
	case level >= slog.LevelError:
		return errorColor
	case level >= slog.LevelWarn:
		return warnColor
	case level >= slog.LevelInfo:
		return infoColor
	}
	return debugColor
}

// WithAttrs returns a handler that prepends attrs, with the current group
// prefix baked into their keys.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := *h
	next.attrs = slices.Clip(h.attrs)
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		next.attrs = append(next.attrs, a)
	}
	return &next
}

// WithGroup returns a handler that prefixes subsequent keys with name and
// a dot.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}
