// Package container - Dependency Injection container for the application.
//
// Container управляет жизненным циклом всех зависимостей:
// - Создание (Initialize / Builder)
// - Доступ (getters)
// - Закрытие (Shutdown)
//
// Pattern: Composition Root
// - Все зависимости собираются в одном месте
// - Обе точки входа (cmd/ledger и cmd/api) используют один контейнер
// - Легко заменять реализации в тестах
package container

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Haleralex/branchledger/internal/adapters/cli"
	"github.com/Haleralex/branchledger/internal/adapters/http"
	"github.com/Haleralex/branchledger/internal/adapters/http/handlers"
	"github.com/Haleralex/branchledger/internal/adapters/http/middleware"
	"github.com/Haleralex/branchledger/internal/application/ports"
	"github.com/Haleralex/branchledger/internal/application/usecases/account"
	"github.com/Haleralex/branchledger/internal/config"
	"github.com/Haleralex/branchledger/internal/domain/valueobjects"
	"github.com/Haleralex/branchledger/internal/infrastructure/messaging"
	"github.com/Haleralex/branchledger/internal/infrastructure/persistence/memory"
	"github.com/Haleralex/branchledger/internal/infrastructure/telemetry"
	"github.com/Haleralex/branchledger/internal/pkg/logger"
)

// ============================================
// Container
// ============================================

// Container - DI контейнер приложения.
type Container struct {
	config *config.Config
	logger *slog.Logger

	// Observability
	registry        *prometheus.Registry
	tracingShutdown telemetry.ShutdownFunc

	// Ledger state
	store   *memory.AccountStore
	archive *memory.Archive
	uow     ports.UnitOfWork
	serials valueobjects.SerialSource
	clock   account.Clock

	// Events
	natsConn       *nats.Conn
	eventPublisher ports.EventPublisher

	// Use Cases
	openUC        *account.OpenAccountUseCase
	closeUC       *account.CloseAccountUseCase
	closeHolderUC *account.CloseHolderUseCase
	depositUC     *account.DepositUseCase
	withdrawUC    *account.WithdrawUseCase
	listUC        *account.ListAccountsUseCase
	listArchiveUC *account.ListArchiveUseCase
	summaryUC     *account.SummaryUseCase

	// Adapters
	interpreter   *cli.Interpreter
	routerBuilder *http.RouterBuilder
	httpServer    *http.Server
}

// New создаёт новый контейнер с заданной конфигурацией.
func New(cfg *config.Config) *Container {
	return &Container{
		config: cfg,
	}
}

// ============================================
// Initialization
// ============================================

// Initialize инициализирует все зависимости.
func (c *Container) Initialize(ctx context.Context) error {
	c.logger = c.initLogger(os.Stderr)
	return c.initialize(ctx)
}

func (c *Container) initialize(ctx context.Context) error {
	c.logger.Info("Initializing application container...")

	// 1. Tracing
	if err := c.initTracing(ctx); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	// 2. Ledger state
	c.initLedger()
	c.logger.Info("Ledger initialized", slog.Int64("serial_seed", c.config.Ledger.SerialSeed))

	// 3. Events
	if err := c.initEvents(); err != nil {
		return fmt.Errorf("failed to initialize events: %w", err)
	}
	c.logger.Info("Event publishers initialized", slog.String("backend", c.config.Events.Backend))

	// 4. Use Cases
	c.initUseCases()

	// 5. Adapters
	c.initInterpreter()
	c.initHTTPServer()

	c.logger.Info("Container initialization complete")
	return nil
}

// initLogger инициализирует логгер. Логи всегда идут мимо stdout:
// stdout CLI - это поток протокола.
func (c *Container) initLogger(output io.Writer) *slog.Logger {
	return logger.Setup(&logger.Config{
		Level:     c.config.Log.Level,
		Format:    c.config.Log.Format,
		Output:    output,
		AddSource: c.config.Log.AddSource,
	})
}

// initTracing настраивает OpenTelemetry.
func (c *Container) initTracing(ctx context.Context) error {
	if c.tracingShutdown != nil {
		return nil
	}

	shutdown, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:        c.config.Tracing.Enabled,
		ServiceName:    c.config.App.Name,
		ServiceVersion: c.config.App.Version,
		Environment:    c.config.App.Environment,
		Endpoint:       c.config.Tracing.Endpoint,
		Insecure:       c.config.Tracing.Insecure,
		SampleRatio:    c.config.Tracing.SampleRatio,
	}, c.logger)
	if err != nil {
		return err
	}
	c.tracingShutdown = shutdown
	return nil
}

// initLedger создаёт хранилище, архив и unit of work.
func (c *Container) initLedger() {
	c.archive = memory.NewArchive()
	c.store = memory.NewAccountStore(c.archive)
	c.uow = memory.NewUnitOfWork()

	if c.serials == nil {
		c.serials = valueobjects.NewSerialGenerator(c.config.Ledger.SerialSeed)
	}
	if c.clock == nil {
		c.clock = time.Now
	}
}

// initEvents собирает publishers: метрики всегда, плюс выбранный backend.
func (c *Container) initEvents() error {
	if c.registry == nil {
		c.registry = prometheus.NewRegistry()
		c.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	if c.eventPublisher != nil {
		return nil
	}

	publishers := []ports.EventPublisher{messaging.NewMetricsPublisher(c.registry)}

	switch c.config.Events.Backend {
	case config.EventsBackendLog:
		publishers = append(publishers, messaging.NewLogPublisher(c.logger))
	case config.EventsBackendNATS:
		conn, err := messaging.ConnectNATS(c.config.Events.NATSURL, c.config.Events.ClientName, c.logger)
		if err != nil {
			return err
		}
		c.natsConn = conn
		publishers = append(publishers, messaging.NewNATSPublisher(conn, c.config.Events.SubjectPrefix, c.logger))
	case config.EventsBackendNone:
	default:
		return fmt.Errorf("unknown events backend: %q", c.config.Events.Backend)
	}

	c.eventPublisher = messaging.NewFanoutPublisher(publishers...)
	return nil
}

// initUseCases инициализирует use cases.
func (c *Container) initUseCases() {
	c.openUC = account.NewOpenAccountUseCase(c.store, c.serials, c.eventPublisher, c.uow, c.clock, c.logger)
	c.closeUC = account.NewCloseAccountUseCase(c.store, c.eventPublisher, c.uow, c.logger)
	c.closeHolderUC = account.NewCloseHolderUseCase(c.store, c.eventPublisher, c.uow, c.clock, c.logger)
	c.depositUC = account.NewDepositUseCase(c.store, c.eventPublisher, c.uow, c.logger)
	c.withdrawUC = account.NewWithdrawUseCase(c.store, c.eventPublisher, c.uow, c.logger)
	c.listUC = account.NewListAccountsUseCase(c.store, c.uow, c.logger)
	c.listArchiveUC = account.NewListArchiveUseCase(c.archive, c.uow)
	c.summaryUC = account.NewSummaryUseCase(c.store, c.archive, c.uow)
}

// initInterpreter собирает интерпретатор командного протокола.
func (c *Container) initInterpreter() {
	c.interpreter = cli.NewInterpreter(cli.UseCases{
		Open:        c.openUC,
		Close:       c.closeUC,
		CloseHolder: c.closeHolderUC,
		Deposit:     c.depositUC,
		Withdraw:    c.withdrawUC,
		List:        c.listUC,
		ListArchive: c.listArchiveUC,
	}, c.logger)
}

// initHTTPServer инициализирует HTTP сервер.
func (c *Container) initHTTPServer() {
	health := handlers.NewHealthHandler(c.config.App.Version, c.config.App.BuildTime, c.store, c.archive)
	if c.natsConn != nil {
		conn := c.natsConn
		health.WithCheck("nats", func(context.Context) error {
			if !conn.IsConnected() {
				return fmt.Errorf("status %s", conn.Status())
			}
			return nil
		})
	}

	var rateLimit *middleware.RateLimitConfig
	if c.config.RateLimit.Enabled {
		rateLimit = middleware.DefaultRateLimitConfig()
		rateLimit.Limit = c.config.RateLimit.Limit
		rateLimit.Window = c.config.RateLimit.Window
	}

	c.routerBuilder = http.NewRouterBuilder(&http.RouterConfig{
		Logger:         c.logger,
		Version:        c.config.App.Version,
		BuildTime:      c.config.App.BuildTime,
		Environment:    c.config.App.Environment,
		ServiceName:    c.config.App.Name,
		AllowedOrigins: c.config.CORS.AllowedOrigins,
		RateLimit:      rateLimit,
		Registerer:     c.registry,
		Gatherer:       c.registry,
	}).
		WithAccountUseCases(&handlers.AccountUseCases{
			Open:        c.openUC,
			Close:       c.closeUC,
			CloseHolder: c.closeHolderUC,
			Deposit:     c.depositUC,
			Withdraw:    c.withdrawUC,
			List:        c.listUC,
			ListArchive: c.listArchiveUC,
			Summary:     c.summaryUC,
		}).
		WithCommandExecutor(c.interpreter).
		WithHealthHandler(health)

	c.httpServer = http.NewServer(&http.ServerConfig{
		Host:            c.config.Server.Host,
		Port:            c.config.Server.Port,
		ReadTimeout:     c.config.Server.ReadTimeout,
		WriteTimeout:    c.config.Server.WriteTimeout,
		IdleTimeout:     c.config.Server.IdleTimeout,
		ShutdownTimeout: c.config.Server.ShutdownTimeout,
		Logger:          c.logger,
	}, c.routerBuilder.Build())
}

// ============================================
// Getters
// ============================================

// Config возвращает конфигурацию.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger возвращает логгер.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}

// Registry возвращает prometheus registry метрик.
func (c *Container) Registry() *prometheus.Registry {
	return c.registry
}

// Store возвращает хранилище открытых счетов.
func (c *Container) Store() *memory.AccountStore {
	return c.store
}

// Archive возвращает архив закрытых счетов.
func (c *Container) Archive() *memory.Archive {
	return c.archive
}

// Interpreter возвращает интерпретатор протокола.
func (c *Container) Interpreter() *cli.Interpreter {
	return c.interpreter
}

// HTTPServer возвращает HTTP сервер.
func (c *Container) HTTPServer() *http.Server {
	return c.httpServer
}

// ============================================
// Run
// ============================================

// RunCLI выполняет протокол над in/out до Q, конца ввода или отмены ctx.
func (c *Container) RunCLI(ctx context.Context, in io.Reader, out io.Writer) error {
	c.logger.Info("Starting command interpreter",
		slog.String("version", c.config.App.Version),
	)
	return c.interpreter.Run(ctx, in, out)
}

// RunHTTP обслуживает HTTP API до отмены ctx.
func (c *Container) RunHTTP(ctx context.Context) error {
	c.logger.Info("Starting branchledger API server",
		slog.String("version", c.config.App.Version),
		slog.String("environment", c.config.App.Environment),
		slog.String("address", c.config.Server.Address()),
	)
	return c.httpServer.Run(ctx)
}

// ============================================
// Shutdown
// ============================================

// Shutdown освобождает фоновые ресурсы: rate limiter, NATS, tracing.
// HTTP сервер останавливается сам при отмене контекста RunHTTP.
func (c *Container) Shutdown(ctx context.Context) error {
	if c.logger != nil {
		c.logger.Info("Shutting down container...")
	}

	var errs []error

	// 1. Router background jobs
	if c.routerBuilder != nil {
		c.routerBuilder.Close()
	}

	// 2. NATS: дожидаемся отправки буфера
	if c.natsConn != nil {
		if err := c.natsConn.Drain(); err != nil {
			errs = append(errs, fmt.Errorf("nats drain: %w", err))
		}
	}

	// 3. Tracing: сбрасываем последние spans
	if c.tracingShutdown != nil {
		if err := c.tracingShutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracing shutdown: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("shutdown errors: %w", err)
	}

	if c.logger != nil {
		c.logger.Info("Container shutdown complete")
	}
	return nil
}

// ============================================
// Builder Pattern (Alternative)
// ============================================

// ContainerBuilder - builder для создания контейнера с кастомными компонентами.
type ContainerBuilder struct {
	cfg            *config.Config
	logger         *slog.Logger
	eventPublisher ports.EventPublisher
	serials        valueobjects.SerialSource
	clock          account.Clock
	registry       *prometheus.Registry
}

// NewBuilder создаёт новый builder.
func NewBuilder(cfg *config.Config) *ContainerBuilder {
	return &ContainerBuilder{
		cfg: cfg,
	}
}

// WithLogger устанавливает кастомный логгер.
func (b *ContainerBuilder) WithLogger(logger *slog.Logger) *ContainerBuilder {
	b.logger = logger
	return b
}

// WithEventPublisher заменяет всю цепочку publishers (включая метрики).
func (b *ContainerBuilder) WithEventPublisher(ep ports.EventPublisher) *ContainerBuilder {
	b.eventPublisher = ep
	return b
}

// WithSerials устанавливает источник серийных номеров.
func (b *ContainerBuilder) WithSerials(serials valueobjects.SerialSource) *ContainerBuilder {
	b.serials = serials
	return b
}

// WithClock устанавливает часы для проверки даты рождения.
func (b *ContainerBuilder) WithClock(clock account.Clock) *ContainerBuilder {
	b.clock = clock
	return b
}

// WithRegistry устанавливает prometheus registry.
func (b *ContainerBuilder) WithRegistry(registry *prometheus.Registry) *ContainerBuilder {
	b.registry = registry
	return b
}

// Build создаёт и инициализирует контейнер.
func (b *ContainerBuilder) Build(ctx context.Context) (*Container, error) {
	c := New(b.cfg)

	if b.logger != nil {
		c.logger = b.logger
	} else {
		c.logger = c.initLogger(os.Stderr)
	}

	c.eventPublisher = b.eventPublisher
	c.serials = b.serials
	c.clock = b.clock
	c.registry = b.registry

	if err := c.initialize(ctx); err != nil {
		_ = c.Shutdown(ctx)
		return nil, err
	}
	return c, nil
}
