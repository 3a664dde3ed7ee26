package handlers

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// ============================================
// Health Check Handler
// ============================================

// ReadinessCheck проверяет одну зависимость; nil - здорова.
type ReadinessCheck func(ctx context.Context) error

// Counter - хранилище или архив, умеющие сообщить свой размер.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// HealthHandler обрабатывает health check запросы.
//
// - Liveness (/live): процесс отвечает
// - Readiness (/ready): все зарегистрированные проверки проходят
type HealthHandler struct {
	version   string
	buildTime string
	startTime time.Time
	checks    map[string]ReadinessCheck
	store     Counter
	archive   Counter
	timeout   time.Duration
}

// NewHealthHandler создаёт новый HealthHandler.
// store и archive могут быть nil.
func NewHealthHandler(version, buildTime string, store, archive Counter) *HealthHandler {
	return &HealthHandler{
		version:   version,
		buildTime: buildTime,
		startTime: time.Now(),
		checks:    make(map[string]ReadinessCheck),
		store:     store,
		archive:   archive,
		timeout:   2 * time.Second,
	}
}

// WithCheck добавляет именованную проверку готовности (например, "nats").
func (h *HealthHandler) WithCheck(name string, check ReadinessCheck) *HealthHandler {
	h.checks[name] = check
	return h
}

// ============================================
// Response Types
// ============================================

// HealthResponse - ответ health check.
type HealthResponse struct {
	Status    string            `json:"status"` // "healthy", "unhealthy"
	Version   string            `json:"version"`
	BuildTime string            `json:"build_time"`
	Uptime    string            `json:"uptime"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ReadinessResponse - ответ readiness check.
type ReadinessResponse struct {
	Ready     bool              `json:"ready"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

// ============================================
// HTTP Handlers
// ============================================

// Health возвращает базовый health статус.
//
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		BuildTime: h.buildTime,
		Uptime:    h.uptime(),
		Timestamp: time.Now().UTC(),
	})
}

// Ready выполняет все проверки готовности.
//
// @Summary Readiness check
// @Tags Health
// @Produce json
// @Success 200 {object} ReadinessResponse
// @Failure 503 {object} ReadinessResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	checks, ready := h.runChecks(c.Request.Context())

	statusCode := http.StatusOK
	if !ready {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, ReadinessResponse{
		Ready:     ready,
		Checks:    checks,
		Timestamp: time.Now().UTC(),
	})
}

// Live возвращает статус "живости" приложения.
//
// @Summary Liveness check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// DetailedHealth добавляет к проверкам размер хранилища и архива.
//
// @Summary Detailed health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health/detailed [get]
func (h *HealthHandler) DetailedHealth(c *gin.Context) {
	ctx := c.Request.Context()
	checks, ready := h.runChecks(ctx)

	for name, counter := range map[string]Counter{"open_accounts": h.store, "archived_accounts": h.archive} {
		if counter == nil {
			continue
		}
		if n, err := counter.Count(ctx); err == nil {
			checks[name] = strconv.Itoa(n)
		}
	}

	status := "healthy"
	if !ready {
		status = "unhealthy"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Version:   h.version,
		BuildTime: h.buildTime,
		Uptime:    h.uptime(),
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	})
}

// RegisterRoutes регистрирует health check маршруты.
//
// Routes:
// - GET /health          - Basic health check
// - GET /health/detailed - Checks plus ledger counters
// - GET /ready           - Readiness probe
// - GET /live            - Liveness probe
func (h *HealthHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)
	router.GET("/health/detailed", h.DetailedHealth)
	router.GET("/ready", h.Ready)
	router.GET("/live", h.Live)
}

// runChecks выполняет проверки в порядке имён с общим таймаутом.
func (h *HealthHandler) runChecks(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]string, len(names))
	ready := true
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			results[name] = "unhealthy: " + err.Error()
			ready = false
			continue
		}
		results[name] = "healthy"
	}
	return results, ready
}

func (h *HealthHandler) uptime() string {
	return time.Since(h.startTime).Round(time.Second).String()
}
