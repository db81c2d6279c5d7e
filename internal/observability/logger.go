package observability

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LoggerOption configures NewLogger.
type LoggerOption func(*loggerOptions)

type loggerOptions struct {
	level  slog.Level
	json   bool
	output io.Writer
	attrs  []slog.Attr
}

// WithLevel sets the minimum level.
func WithLevel(level slog.Level) LoggerOption {
	return func(o *loggerOptions) { o.level = level }
}

// WithJSONFormatter switches output to JSON records.
func WithJSONFormatter() LoggerOption {
	return func(o *loggerOptions) { o.json = true }
}

// WithOutput sets the destination. Defaults to stderr.
func WithOutput(w io.Writer) LoggerOption {
	return func(o *loggerOptions) { o.output = w }
}

// WithAttr attaches attributes to every record.
func WithAttr(attrs ...slog.Attr) LoggerOption {
	return func(o *loggerOptions) { o.attrs = append(o.attrs, attrs...) }
}

// NewLogger builds a text logger at info level unless options say otherwise.
func NewLogger(opts ...LoggerOption) *slog.Logger {
	o := loggerOptions{level: slog.LevelInfo, output: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	ho := &slog.HandlerOptions{Level: o.level}
	var h slog.Handler
	if o.json {
		h = slog.NewJSONHandler(o.output, ho)
	} else {
		h = slog.NewTextHandler(o.output, ho)
	}
	if len(o.attrs) > 0 {
		h = h.WithAttrs(o.attrs)
	}
	return slog.New(h)
}

// ParseLevel maps debug/info/warn/error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse log level %q: %w", s, err)
	}
	return l, nil
}

// Attribute helpers return an empty Attr for empty input so callers can pass
// them unconditionally.

// Op creates an attribute for the cache operation name.
func Op(op string) slog.Attr {
	if op == "" {
		return slog.Attr{}
	}
	return slog.String("op", op)
}

// Key creates an attribute for a cache key.
func Key(key any) slog.Attr {
	if key == nil {
		return slog.Attr{}
	}
	return slog.Any("key", key)
}

// Value creates an attribute for a cached value.
func Value(v any) slog.Attr {
	if v == nil {
		return slog.Attr{}
	}
	return slog.Any("value", v)
}

// Policy creates an attribute for the eviction policy tag.
func Policy(kind string) slog.Attr {
	if kind == "" {
		return slog.Attr{}
	}
	return slog.String("policy", kind)
}

// Error creates an attribute for a single error under the key "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RunID creates an attribute identifying one process run.
func RunID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("run_id", id)
}
