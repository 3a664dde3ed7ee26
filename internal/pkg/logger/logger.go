// Package logger builds the ledger's slog loggers.
//
// Every record written through a logger from New carries the IDs found in
// its context: the HTTP correlation and request IDs, the ID of the protocol
// command being executed, and the OpenTelemetry trace and span IDs.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

type contextKey string

// Context keys, also used as the attribute names in log records.
const (
	CorrelationIDKey contextKey = "correlation_id"
	RequestIDKey     contextKey = "request_id"
	CommandIDKey     contextKey = "command_id"
)

// contextIDs are copied from the context into every record, in this order.
var contextIDs = []contextKey{CorrelationIDKey, RequestIDKey, CommandIDKey}

// Config holds logger configuration
type Config struct {
	Level     string // debug, info, warn, error
	Format    string // json, text
	Output    io.Writer
	AddSource bool
}

// DefaultConfig logs JSON at info to stderr; stdout belongs to the command protocol.
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: "json",
		Output: os.Stderr,
	}
}

// New creates a logger from cfg. A nil cfg means DefaultConfig.
func New(cfg *Config) *slog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(output, opts)
	} else {
		handler = slog.NewJSONHandler(output, opts)
	}

	return slog.New(&ContextHandler{handler: handler})
}

// Setup builds a logger and installs it as the slog default.
func Setup(cfg *Config) *slog.Logger {
	logger := New(cfg)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// ============================================
// Context Handler
// ============================================

// ContextHandler adds the context IDs to each record before delegating.
type ContextHandler struct {
	handler slog.Handler
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, key := range contextIDs {
		if id := stringValue(ctx, key); id != "" {
			r.AddAttrs(slog.String(string(key), id))
		}
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}

	return h.handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{handler: h.handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{handler: h.handler.WithGroup(name)}
}

// ============================================
// Context IDs
// ============================================

// WithRequest stores the IDs of one HTTP request. The correlation ID spans
// every request of one client flow; empty values are skipped.
func WithRequest(ctx context.Context, correlationID, requestID string) context.Context {
	if correlationID != "" {
		ctx = context.WithValue(ctx, CorrelationIDKey, correlationID)
	}
	if requestID != "" {
		ctx = context.WithValue(ctx, RequestIDKey, requestID)
	}
	return ctx
}

// WithCommandID stores the ID of one protocol command.
func WithCommandID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CommandIDKey, id)
}

func GetCorrelationID(ctx context.Context) string { return stringValue(ctx, CorrelationIDKey) }

func GetRequestID(ctx context.Context) string { return stringValue(ctx, RequestIDKey) }

func GetCommandID(ctx context.Context) string { return stringValue(ctx, CommandIDKey) }

func stringValue(ctx context.Context, key contextKey) string {
	id, _ := ctx.Value(key).(string)
	return id
}
