// Package http - HTTP adapter ledger'а: router, server и их конфигурация.
//
// Router собирает все handlers и middleware в единую точку входа.
//
// Pattern: Composition Root
// - Все зависимости собираются здесь
// - Handlers получают только нужные им use cases
// - Middleware применяется ко всем routes в одном порядке
//
// Формат ответов (APIResponse, APIError) и маппинг доменных ошибок
// на HTTP статусы живут в пакете common.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Haleralex/branchledger/internal/adapters/http/common"
	"github.com/Haleralex/branchledger/internal/adapters/http/handlers"
	"github.com/Haleralex/branchledger/internal/adapters/http/middleware"
)

// ============================================
// Router Configuration
// ============================================

// RouterConfig - конфигурация роутера.
type RouterConfig struct {
	// Logger для middleware
	Logger *slog.Logger
	// Version приложения
	Version string
	// BuildTime время сборки
	BuildTime string
	// Environment (development, staging, production)
	Environment string
	// ServiceName - имя сервиса в spans
	ServiceName string
	// AllowedOrigins для CORS; пусто или "*" - любой origin
	AllowedOrigins []string
	// RateLimit - лимит запросов; nil отключает лимитирование
	RateLimit *middleware.RateLimitConfig
	// Registerer/Gatherer для HTTP метрик и /metrics
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// DefaultRouterConfig - конфигурация по умолчанию для development.
// Каждый вызов получает собственный registry.
func DefaultRouterConfig() *RouterConfig {
	registry := prometheus.NewRegistry()
	return &RouterConfig{
		Logger:         slog.Default(),
		Version:        "dev",
		BuildTime:      "unknown",
		Environment:    "development",
		ServiceName:    "branchledger",
		AllowedOrigins: []string{"*"},
		RateLimit:      middleware.DefaultRateLimitConfig(),
		Registerer:     registry,
		Gatherer:       registry,
	}
}

// ============================================
// Router Builder
// ============================================

// RouterBuilder - builder для создания роутера.
//
// Pattern: Builder
// - Позволяет пошагово настроить роутер
// - Проще тестировать
type RouterBuilder struct {
	config   *RouterConfig
	accounts *handlers.AccountUseCases
	executor handlers.CommandExecutor
	health   *handlers.HealthHandler
	limiter  *middleware.RateLimiter
}

// NewRouterBuilder создаёт новый builder.
func NewRouterBuilder(config *RouterConfig) *RouterBuilder {
	if config == nil {
		config = DefaultRouterConfig()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Registerer == nil || config.Gatherer == nil {
		registry := prometheus.NewRegistry()
		config.Registerer, config.Gatherer = registry, registry
	}
	if config.ServiceName == "" {
		config.ServiceName = "branchledger"
	}
	return &RouterBuilder{config: config}
}

// WithAccountUseCases добавляет REST маршруты счетов.
func (b *RouterBuilder) WithAccountUseCases(useCases *handlers.AccountUseCases) *RouterBuilder {
	b.accounts = useCases
	return b
}

// WithCommandExecutor добавляет POST /api/v1/commands.
func (b *RouterBuilder) WithCommandExecutor(executor handlers.CommandExecutor) *RouterBuilder {
	b.executor = executor
	return b
}

// WithHealthHandler заменяет health handler по умолчанию
// (например, на handler со счётчиками и проверкой NATS).
func (b *RouterBuilder) WithHealthHandler(handler *handlers.HealthHandler) *RouterBuilder {
	b.health = handler
	return b
}

// Build создаёт сконфигурированный Gin Engine.
func (b *RouterBuilder) Build() *gin.Engine {
	if b.config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	handlers.SetupValidator()

	metrics := middleware.NewHTTPMetrics(b.config.Registerer)

	// ============================================
	// Global Middleware
	// ============================================

	// 1. Recovery - должен быть первым
	router.Use(middleware.Recovery(&middleware.RecoveryConfig{
		Logger:           b.config.Logger,
		EnableStackTrace: b.config.Environment != "production",
	}))

	// 2. Request ID - до логирования и трейсинга
	router.Use(middleware.RequestID())

	// 3. Tracing
	router.Use(otelgin.Middleware(b.config.ServiceName))

	// 4. CORS
	router.Use(middleware.CORS(middleware.NewCORSConfig(b.config.AllowedOrigins)))

	// 5. Logging
	logging := middleware.DefaultLoggingConfig()
	logging.Logger = b.config.Logger
	router.Use(middleware.Logging(logging))

	// 6. Rate Limiting
	if b.config.RateLimit != nil {
		limitConfig := *b.config.RateLimit
		limitConfig.OnLimitReached = metrics.RecordRateLimited
		b.limiter = middleware.NewRateLimiter(&limitConfig)
		router.Use(b.limiter.Middleware())
	}

	// 7. Metrics
	router.Use(metrics.Middleware())

	// ============================================
	// Metrics & Health
	// ============================================

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(b.config.Gatherer, promhttp.HandlerOpts{})))

	health := b.health
	if health == nil {
		health = handlers.NewHealthHandler(b.config.Version, b.config.BuildTime, nil, nil)
	}
	health.RegisterRoutes(router)

	// ============================================
	// API v1 Routes
	// ============================================

	v1 := router.Group("/api/v1")

	if b.accounts != nil {
		handlers.NewAccountHandler(*b.accounts).RegisterRoutes(v1)
	}
	if b.executor != nil {
		handlers.NewCommandHandler(b.executor).RegisterRoutes(v1)
	}

	// ============================================
	// 404 Handler
	// ============================================

	router.NoRoute(func(c *gin.Context) {
		common.Error(c, http.StatusNotFound, &common.APIError{
			Code:    common.ErrCodeNotFound,
			Message: "Endpoint not found",
			Details: map[string]interface{}{
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			},
		})
	})

	return router
}

// Close останавливает фоновую очистку rate limiter'а.
func (b *RouterBuilder) Close() {
	if b.limiter != nil {
		b.limiter.Close()
	}
}
