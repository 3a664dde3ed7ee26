package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/Haleralex/branchledger/internal/adapters/http/common"
)

// RecoveryConfig - конфигурация для recovery middleware.
type RecoveryConfig struct {
	Logger           *slog.Logger
	EnableStackTrace bool // Включать stack trace в лог
}

// DefaultRecoveryConfig - конфигурация по умолчанию.
func DefaultRecoveryConfig() *RecoveryConfig {
	return &RecoveryConfig{
		Logger:           slog.Default(),
		EnableStackTrace: true,
	}
}

// Recovery перехватывает панику в handler'е, пишет её в лог
// и отвечает 500 в стандартном формате. Состояние хранилища
// не откатывается: Unit of Work освобождает блокировку через defer.
func Recovery(config *RecoveryConfig) gin.HandlerFunc {
	if config == nil {
		config = DefaultRecoveryConfig()
	}
	log := config.Logger
	if log == nil {
		log = slog.Default()
	}

	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			attrs := []slog.Attr{
				slog.String("error", fmt.Sprint(rec)),
				slog.String("path", c.Request.URL.Path),
				slog.String("method", c.Request.Method),
				slog.String("client_ip", c.ClientIP()),
			}
			if config.EnableStackTrace {
				attrs = append(attrs, slog.String("stack", string(debug.Stack())))
			}
			log.LogAttrs(c.Request.Context(), slog.LevelError, "panic recovered", attrs...)

			common.Abort(c, http.StatusInternalServerError, &common.APIError{
				Code:    common.ErrCodeInternal,
				Message: "An unexpected error occurred",
			})
		}()

		c.Next()
	}
}
