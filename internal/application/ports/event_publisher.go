// Package ports - EventPublisher для публикации domain events.
//
// SOLID Principles:
// - DIP: Application не знает о NATS деталях
// - OCP: Можно заменить NATS на другую систему без изменения use cases
// - ISP: Простой интерфейс
//
// Pattern: Publisher/Subscriber (Observer на уровне инфраструктуры)
package ports

import (
	"context"

	"github.com/Haleralex/branchledger/internal/domain/events"
)

// EventPublisher определяет контракт для публикации domain events.
//
// Реализации:
// - LogPublisher (slog)
// - MetricsPublisher (Prometheus)
// - NATSPublisher (шина сообщений)
// - FanoutPublisher (все сразу)
type EventPublisher interface {
	// Publish публикует одно событие.
	//
	// Example:
	//   event := events.NewFundsDeposited(account, "100.00")
	//   err := publisher.Publish(ctx, event)
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch публикует несколько событий за один вызов,
	// например все AccountClosed после закрытия счетов владельца.
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}
