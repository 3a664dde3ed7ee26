// Package messaging - реализации ports.EventPublisher.
//
// Publishers:
// - LogPublisher: пишет события в структурированный лог
// - MetricsPublisher: обновляет бизнес-метрики Prometheus
// - NATSPublisher: отправляет события в NATS как JSON
// - FanoutPublisher: рассылает событие всем перечисленным
package messaging

import (
	"context"
	"log/slog"

	"github.com/Haleralex/branchledger/internal/application/ports"
	"github.com/Haleralex/branchledger/internal/domain/events"
)

// Compile-time check
var _ ports.EventPublisher = (*LogPublisher)(nil)

// LogPublisher логирует каждое событие на уровне Info.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher создаёт LogPublisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish пишет событие в лог. Никогда не возвращает ошибку.
func (p *LogPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	p.logger.InfoContext(ctx, "domain event",
		slog.String("event_type", event.EventType()),
		slog.String("event_id", event.EventID().String()),
		slog.String("aggregate_id", event.AggregateID()),
	)
	return nil
}

// PublishBatch логирует события по порядку.
func (p *LogPublisher) PublishBatch(ctx context.Context, evts []events.DomainEvent) error {
	for _, event := range evts {
		if err := p.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
