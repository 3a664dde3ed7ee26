// Package common содержит общие типы для HTTP слоя.
//
// Вынесен в отдельный пакет чтобы избежать циклических импортов
// между handlers, middleware и основным http пакетом.
package common

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/Haleralex/branchledger/internal/domain/errors"
)

// ============================================
// Standard API Response Format
// ============================================

// APIResponse - стандартный формат ответа API.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	RequestID string      `json:"request_id"`
	Timestamp time.Time   `json:"timestamp"`
}

// APIError - структура ошибки API.
type APIError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Fields     []FieldError           `json:"fields,omitempty"`
	RetryAfter int                    `json:"retry_after,omitempty"`
}

// FieldError - ошибка конкретного поля.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ============================================
// Error Codes
// ============================================

// Коды транспортного уровня. Ошибки домена отдаются со своим кодом
// (ACCOUNT_NOT_FOUND, INSUFFICIENT_FUNDS, ...).
const (
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS"
	ErrCodeBusinessRule    = "BUSINESS_RULE_VIOLATION"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeTimeout         = "TIMEOUT"
)

// ============================================
// Request ID
// ============================================

const (
	// RequestIDHeader - заголовок с Request ID
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey - ключ Request ID в gin.Context
	RequestIDKey = "request_id"
)

// GetRequestID возвращает Request ID из контекста.
func GetRequestID(c *gin.Context) string {
	if id, ok := c.Get(RequestIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

// SetRequestID сохраняет Request ID в контекст и заголовок ответа.
func SetRequestID(c *gin.Context, id string) {
	c.Set(RequestIDKey, id)
	c.Header(RequestIDHeader, id)
}

// ============================================
// Response Helpers
// ============================================

// Success отправляет успешный ответ.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success:   true,
		Data:      data,
		RequestID: GetRequestID(c),
		Timestamp: time.Now().UTC(),
	})
}

// Error отправляет ответ с ошибкой.
func Error(c *gin.Context, statusCode int, apiError *APIError) {
	c.JSON(statusCode, APIResponse{
		Success:   false,
		Error:     apiError,
		RequestID: GetRequestID(c),
		Timestamp: time.Now().UTC(),
	})
}

// Abort отправляет ошибку и прерывает цепочку middleware.
func Abort(c *gin.Context, statusCode int, apiError *APIError) {
	Error(c, statusCode, apiError)
	c.Abort()
}

// ============================================
// Error Response Helpers
// ============================================

// ValidationErrorResponse создаёт ответ для ошибок валидации.
func ValidationErrorResponse(c *gin.Context, fields []FieldError) {
	Error(c, http.StatusBadRequest, &APIError{
		Code:    ErrCodeValidation,
		Message: "Request validation failed",
		Fields:  fields,
	})
}

// NotFoundResponse создаёт ответ для 404.
func NotFoundResponse(c *gin.Context, resource string) {
	Error(c, http.StatusNotFound, &APIError{
		Code:    ErrCodeNotFound,
		Message: resource + " not found",
		Details: map[string]interface{}{
			"resource": resource,
		},
	})
}

// BadRequestResponse создаёт ответ для некорректного запроса.
func BadRequestResponse(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, &APIError{
		Code:    ErrCodeBadRequest,
		Message: message,
	})
}

// InternalErrorResponse создаёт ответ для внутренней ошибки.
func InternalErrorResponse(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, &APIError{
		Code:    ErrCodeInternal,
		Message: message,
	})
}

// ============================================
// Domain Error to HTTP Error Mapper
// ============================================

// StatusForCode возвращает HTTP статус для кода DomainError.
//
// - 404: счёт или владелец не найден
// - 409: у владельца уже есть счёт этого типа
// - 422: недостаточно средств
// - 400: всё остальное (разбор токенов команды)
func StatusForCode(code string) int {
	switch code {
	case domainerrors.CodeAccountNotFound, domainerrors.CodeNoHolderAccounts:
		return http.StatusNotFound
	case domainerrors.CodeDuplicateHolderType:
		return http.StatusConflict
	case domainerrors.CodeInsufficientFunds:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// HandleDomainError преобразует domain error в HTTP response.
func HandleDomainError(c *gin.Context, err error) {
	// 1. DomainError несёт код и сообщение протокола
	if domainErr, ok := domainerrors.AsDomainError(err); ok {
		Error(c, StatusForCode(domainErr.Code), &APIError{
			Code:    domainErr.Code,
			Message: domainErr.Message,
		})
		return
	}

	// 2. ValidationError
	var valErr domainerrors.ValidationError
	if errors.As(err, &valErr) {
		ValidationErrorResponse(c, []FieldError{
			{Field: valErr.Field, Message: valErr.Message, Code: "invalid"},
		})
		return
	}

	// 3. BusinessRuleViolation
	var brv *domainerrors.BusinessRuleViolation
	if errors.As(err, &brv) {
		Error(c, http.StatusUnprocessableEntity, &APIError{
			Code:    ErrCodeBusinessRule,
			Message: brv.Message,
			Details: map[string]interface{}{
				"rule":    brv.Rule,
				"context": brv.Context,
			},
		})
		return
	}

	// 4. Голый sentinel из хранилища
	if domainerrors.IsNotFound(err) {
		NotFoundResponse(c, "Account")
		return
	}

	// 5. Контекст запроса истёк
	if errors.Is(err, context.DeadlineExceeded) {
		Error(c, http.StatusGatewayTimeout, &APIError{
			Code:    ErrCodeTimeout,
			Message: "Request timed out",
		})
		return
	}

	// 6. Default: Internal Server Error
	InternalErrorResponse(c, "An unexpected error occurred")
}
