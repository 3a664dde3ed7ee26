// Package middleware содержит HTTP middleware для обработки запросов.
//
// Middleware в Gin - это функции, которые выполняются до/после handlers.
// Они используются для cross-cutting concerns: логирование, метрики,
// ограничение частоты, восстановление после паники.
//
// Pattern: Chain of Responsibility
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Haleralex/branchledger/internal/adapters/http/common"
	"github.com/Haleralex/branchledger/internal/pkg/logger"
)

// RequestIDHeader - имя заголовка для Request ID.
const RequestIDHeader = common.RequestIDHeader

// CorrelationIDHeader - ID цепочки запросов между сервисами.
const CorrelationIDHeader = "X-Correlation-ID"

// maxRequestIDLength - длиннее клиентский ID не принимается.
const maxRequestIDLength = 64

// RequestID middleware добавляет уникальный ID к каждому запросу.
//
// Если клиент передаёт корректный X-Request-ID - используем его,
// иначе генерируем новый UUID. ID попадает:
// - в gin.Context (common.GetRequestID)
// - в context.Context запроса, откуда его берёт logger.ContextHandler
// - в заголовок ответа
//
// Correlation ID берётся из X-Correlation-ID, а без него совпадает с Request ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if !validRequestID(requestID) {
			requestID = uuid.NewString()
		}
		correlationID := c.GetHeader(CorrelationIDHeader)
		if !validRequestID(correlationID) {
			correlationID = requestID
		}

		common.SetRequestID(c, requestID)
		c.Header(CorrelationIDHeader, correlationID)
		c.Request = c.Request.WithContext(
			logger.WithRequest(c.Request.Context(), correlationID, requestID))

		c.Next()
	}
}

// GetRequestID извлекает Request ID из контекста Gin.
func GetRequestID(c *gin.Context) string {
	return common.GetRequestID(c)
}

// validRequestID принимает только короткие печатные ASCII строки,
// чтобы клиент не мог протащить в логи переводы строк.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
