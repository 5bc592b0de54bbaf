// Package logging configures the structured logger used across the simulator.
//
// It wraps log/slog with an environment-selected level, a text or JSON
// handler, and a run identifier carried in the context so every line logged
// during a flight can be attributed to it.
package logging

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelEnv names the environment variable that selects the log level.
const LevelEnv = "LANDER_LOG_LEVEL"

// Format selects the handler encoding.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
)

// New returns a logger writing to w. The level comes from LANDER_LOG_LEVEL
// (DEBUG, INFO, WARN, ERROR; INFO by default).
func New(w io.Writer, format Format) *slog.Logger {
	opts := &slog.HandlerOptions{Level: LevelFromEnv()}

	var h slog.Handler
	if format == JSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(runHandler{h})
}

// Default is New on stderr in text form.
func Default() *slog.Logger {
	return New(os.Stderr, Text)
}

// Discard drops everything. Tests and library callers that did not opt in to
// logging get this one.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func LevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(LevelEnv))
}

func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
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

type runIDKey struct{}

// WithRunID tags ctx with a run identifier; an empty id generates one.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = NewRunID()
	}
	return context.WithValue(ctx, runIDKey{}, id)
}

func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey{}).(string); ok {
		return id
	}
	return ""
}

func NewRunID() string {
	b := make([]byte, 6)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// runHandler adds run_id to records logged with a tagged context.
type runHandler struct {
	slog.Handler
}

func (h runHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RunID(ctx); id != "" {
		r.AddAttrs(slog.String("run_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h runHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return runHandler{h.Handler.WithAttrs(attrs)}
}

func (h runHandler) WithGroup(name string) slog.Handler {
	return runHandler{h.Handler.WithGroup(name)}
}

// WrapError adds context to err, keeping it matchable with errors.Is.
func WrapError(err error, context string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		context = fmt.Sprintf(context, args...)
	}
	return fmt.Errorf("%s: %w", context, err)
}
