package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================
// Test Setup
// ============================================

type fixedCounter struct {
	n   int
	err error
}

func (f fixedCounter) Count(context.Context) (int, error) { return f.n, f.err }

func setupHealthTestRouter(handler *HealthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.RegisterRoutes(router)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

// ============================================
// Tests
// ============================================

func TestNewHealthHandler(t *testing.T) {
	// Arrange & Act
	handler := NewHealthHandler("1.2.3", "2025-02-15T10:30:00Z", nil, nil)

	// Assert
	assert.Equal(t, "1.2.3", handler.version)
	assert.Equal(t, "2025-02-15T10:30:00Z", handler.buildTime)
	assert.False(t, handler.startTime.IsZero())
	assert.Empty(t, handler.checks)
}

func TestHealthHandler_Health(t *testing.T) {
	// Arrange
	router := setupHealthTestRouter(NewHealthHandler("1.0.0", "2025-01-01", nil, nil))

	// Act
	w := get(router, "/health")

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response.Status)
	assert.Equal(t, "1.0.0", response.Version)
	assert.NotEmpty(t, response.Uptime)
	assert.Nil(t, response.Checks)
}

func TestHealthHandler_Live(t *testing.T) {
	router := setupHealthTestRouter(NewHealthHandler("1.0.0", "", nil, nil))

	w := get(router, "/live")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"alive"}`, w.Body.String())
}

func TestHealthHandler_Ready(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]ReadinessCheck
		wantStatus int
		wantReady  bool
		wantChecks map[string]string
	}{
		{
			name:       "no checks",
			wantStatus: http.StatusOK,
			wantReady:  true,
			wantChecks: map[string]string{},
		},
		{
			name: "all healthy",
			checks: map[string]ReadinessCheck{
				"store": func(context.Context) error { return nil },
				"nats":  func(context.Context) error { return nil },
			},
			wantStatus: http.StatusOK,
			wantReady:  true,
			wantChecks: map[string]string{"store": "healthy", "nats": "healthy"},
		},
		{
			name: "nats down",
			checks: map[string]ReadinessCheck{
				"store": func(context.Context) error { return nil },
				"nats":  func(context.Context) error { return errors.New("connection closed") },
			},
			wantStatus: http.StatusServiceUnavailable,
			wantReady:  false,
			wantChecks: map[string]string{"store": "healthy", "nats": "unhealthy: connection closed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			handler := NewHealthHandler("1.0.0", "", nil, nil)
			for name, check := range tt.checks {
				handler.WithCheck(name, check)
			}
			router := setupHealthTestRouter(handler)

			// Act
			w := get(router, "/ready")

			// Assert
			assert.Equal(t, tt.wantStatus, w.Code)
			var response ReadinessResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.wantReady, response.Ready)
			assert.Equal(t, tt.wantChecks, response.Checks)
		})
	}
}

func TestHealthHandler_ChecksReceiveDeadline(t *testing.T) {
	var hasDeadline bool
	handler := NewHealthHandler("1.0.0", "", nil, nil).WithCheck("store", func(ctx context.Context) error {
		_, hasDeadline = ctx.Deadline()
		return nil
	})

	get(setupHealthTestRouter(handler), "/ready")

	assert.True(t, hasDeadline)
}

func TestHealthHandler_DetailedHealth(t *testing.T) {
	t.Run("IncludesLedgerCounters", func(t *testing.T) {
		handler := NewHealthHandler("1.0.0", "", fixedCounter{n: 3}, fixedCounter{n: 5})

		w := get(setupHealthTestRouter(handler), "/health/detailed")

		assert.Equal(t, http.StatusOK, w.Code)
		var response HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "3", response.Checks["open_accounts"])
		assert.Equal(t, "5", response.Checks["archived_accounts"])
	})

	t.Run("UnhealthyCheckAndFailingCounter", func(t *testing.T) {
		handler := NewHealthHandler("1.0.0", "", fixedCounter{err: context.Canceled}, nil).
			WithCheck("nats", func(context.Context) error { return errors.New("down") })

		w := get(setupHealthTestRouter(handler), "/health/detailed")

		var response HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "unhealthy", response.Status)
		assert.NotContains(t, response.Checks, "open_accounts")
		assert.NotContains(t, response.Checks, "archived_accounts")
	})
}
