package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/Haleralex/branchledger/internal/domain/errors"
)

func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(RequestIDKey, "test-request-123")
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var response APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

// ============================================
// Request ID
// ============================================

func TestGetRequestID(t *testing.T) {
	t.Run("ReturnsRequestID", func(t *testing.T) {
		c, _ := setupTestContext()
		assert.Equal(t, "test-request-123", GetRequestID(c))
	})

	t.Run("ReturnsEmptyWhenNotSet", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		assert.Empty(t, GetRequestID(c))
	})

	t.Run("IgnoresNonStringValue", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(RequestIDKey, 42)
		assert.Empty(t, GetRequestID(c))
	})
}

func TestSetRequestID(t *testing.T) {
	c, w := setupTestContext()
	SetRequestID(c, "new-id-456")

	assert.Equal(t, "new-id-456", GetRequestID(c))
	assert.Equal(t, "new-id-456", w.Header().Get(RequestIDHeader))
}

// ============================================
// Envelope
// ============================================

func TestSuccess(t *testing.T) {
	c, w := setupTestContext()

	Success(c, http.StatusCreated, map[string]string{"identifier": "100011234"})

	assert.Equal(t, http.StatusCreated, w.Code)
	response := decodeResponse(t, w)
	assert.True(t, response.Success)
	assert.Nil(t, response.Error)
	assert.Equal(t, "test-request-123", response.RequestID)
	assert.False(t, response.Timestamp.IsZero())
}

func TestAbort(t *testing.T) {
	c, w := setupTestContext()

	Abort(c, http.StatusTooManyRequests, &APIError{Code: ErrCodeTooManyRequests, Message: "slow down", RetryAfter: 3})

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	response := decodeResponse(t, w)
	assert.False(t, response.Success)
	assert.Equal(t, 3, response.Error.RetryAfter)
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name       string
		respond    func(c *gin.Context)
		wantStatus int
		wantCode   string
	}{
		{"validation", func(c *gin.Context) {
			ValidationErrorResponse(c, []FieldError{{Field: "amount", Message: "bad", Code: "money_amount"}})
		}, http.StatusBadRequest, ErrCodeValidation},
		{"not found", func(c *gin.Context) { NotFoundResponse(c, "Route") }, http.StatusNotFound, ErrCodeNotFound},
		{"bad request", func(c *gin.Context) { BadRequestResponse(c, "bad") }, http.StatusBadRequest, ErrCodeBadRequest},
		{"internal", func(c *gin.Context) { InternalErrorResponse(c, "boom") }, http.StatusInternalServerError, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := setupTestContext()
			tt.respond(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			response := decodeResponse(t, w)
			require.NotNil(t, response.Error)
			assert.Equal(t, tt.wantCode, response.Error.Code)
		})
	}
}

// ============================================
// Domain error mapping
// ============================================

func TestStatusForCode(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{domainerrors.CodeAccountNotFound, http.StatusNotFound},
		{domainerrors.CodeNoHolderAccounts, http.StatusNotFound},
		{domainerrors.CodeDuplicateHolderType, http.StatusConflict},
		{domainerrors.CodeInsufficientFunds, http.StatusUnprocessableEntity},
		{domainerrors.CodeMalformedIdentifier, http.StatusBadRequest},
		{domainerrors.CodeUnknownBranch, http.StatusBadRequest},
		{domainerrors.CodeInvalidDate, http.StatusBadRequest},
		{domainerrors.CodeNonNumericAmount, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForCode(tt.code))
		})
	}
}

func TestHandleDomainError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name: "insufficient funds keeps the operator message",
			err: fmt.Errorf("withdraw: %w", domainerrors.NewDomainError(
				domainerrors.CodeInsufficientFunds, "Insufficient funds", domainerrors.ErrInsufficientFunds)),
			wantStatus:  http.StatusUnprocessableEntity,
			wantCode:    domainerrors.CodeInsufficientFunds,
			wantMessage: "Insufficient funds",
		},
		{
			name: "duplicate holder type",
			err: domainerrors.NewDomainError(domainerrors.CodeDuplicateHolderType,
				"John Doe already has a checking account.", domainerrors.ErrDuplicateHolderType),
			wantStatus:  http.StatusConflict,
			wantCode:    domainerrors.CodeDuplicateHolderType,
			wantMessage: "John Doe already has a checking account.",
		},
		{
			name:       "validation error",
			err:        domainerrors.ValidationError{Field: "amount", Message: "must be positive"},
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeValidation,
		},
		{
			name:        "business rule violation",
			err:         domainerrors.NewBusinessRuleViolation("ONE_ACCOUNT_PER_TYPE", "one per type", nil),
			wantStatus:  http.StatusUnprocessableEntity,
			wantCode:    ErrCodeBusinessRule,
			wantMessage: "one per type",
		},
		{
			name:       "bare not found sentinel",
			err:        fmt.Errorf("find: %w", domainerrors.ErrAccountNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   ErrCodeNotFound,
		},
		{
			name:       "deadline exceeded",
			err:        fmt.Errorf("execute: %w", context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   ErrCodeTimeout,
		},
		{
			name:        "unexpected error hides details",
			err:         errors.New("disk on fire"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    ErrCodeInternal,
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := setupTestContext()
			HandleDomainError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			response := decodeResponse(t, w)
			require.NotNil(t, response.Error)
			assert.Equal(t, tt.wantCode, response.Error.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, response.Error.Message)
			}
		})
	}
}
