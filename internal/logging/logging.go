package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
)

// Format selects the rendering of log output.
type Format string

const (
	// FormatText renders human-readable lines, colorized on terminals.
	FormatText Format = "text"
	// FormatJSON renders one JSON object per line.
	FormatJSON Format = "json"
)

// Config configures a logger.
type Config struct {
	// Level is the minimum level to emit. Records below it are dropped.
	Level slog.Level
	// Format selects text or JSON rendering.
	Format Format
	// Output receives log lines. Defaults to os.Stderr.
	Output io.Writer
}

// New builds a logger from cfg. Unrecognized formats fall back to text.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.Format == FormatJSON {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(NewHandler(out, opts))
}

// NewDiscard returns a logger that drops everything. Use it for quiet
// mode and as the fallback when no logger is configured.
func NewDiscard() *slog.Logger {
	return slog.New(discardHandler{})
}

// discardHandler matches slog.DiscardHandler, which requires Go 1.24;
// this module builds with Go 1.21.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

// testWriter routes handler output through t.Log so it is attached to the
// test that produced it.
type testWriter struct {
	t *testing.T
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// ForTest returns a debug-level logger that writes through t.Log.
func ForTest(t *testing.T) *slog.Logger {
	t.Helper()
	return New(Config{Level: slog.LevelDebug, Output: &testWriter{t: t}})
}
