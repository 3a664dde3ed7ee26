package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// LoggingConfig - конфигурация для logging middleware.
type LoggingConfig struct {
	Logger         *slog.Logger
	SkipPaths      []string // Пути без логирования (probes, /metrics)
	LogRequestBody bool     // Логировать тело запроса (команды ledger)
	MaxBodySize    int      // Максимальный размер тела в логе
}

// DefaultLoggingConfig - конфигурация по умолчанию.
func DefaultLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Logger:         slog.Default(),
		SkipPaths:      []string{"/health", "/live", "/ready", "/metrics"},
		LogRequestBody: false,
		MaxBodySize:    1024,
	}
}

// Logging middleware пишет одну запись на HTTP запрос.
//
// Request ID и trace_id в запись добавляет logger.ContextHandler
// из context.Context запроса, поэтому RequestID должен стоять раньше.
// Уровень: 5xx - error, 4xx - warn, остальное - info.
func Logging(config *LoggingConfig) gin.HandlerFunc {
	if config == nil {
		config = DefaultLoggingConfig()
	}
	log := config.Logger
	if log == nil {
		log = slog.Default()
	}

	skip := lo.SliceToMap(config.SkipPaths, func(p string) (string, struct{}) {
		return p, struct{}{}
	})

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()

		var requestBody string
		if config.LogRequestBody && c.Request.Body != nil {
			bodyBytes, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
			requestBody = truncateString(string(bodyBytes), config.MaxBodySize)
		}

		ctx := c.Request.Context()
		c.Next()

		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("route", c.FullPath()),
			slog.String("query", c.Request.URL.RawQuery),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
			slog.Int("response_size", c.Writer.Size()),
		}
		if requestBody != "" {
			attrs = append(attrs, slog.String("request_body", requestBody))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		log.LogAttrs(ctx, level, "http request", attrs...)
	}
}

// truncateString обрезает строку до максимальной длины.
func truncateString(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "...[truncated]"
}
