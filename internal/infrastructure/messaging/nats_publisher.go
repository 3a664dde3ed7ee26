package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/Haleralex/branchledger/internal/application/ports"
	"github.com/Haleralex/branchledger/internal/domain/events"
)

// Compile-time check
var _ ports.EventPublisher = (*NATSPublisher)(nil)

// MsgPublisher - часть *nats.Conn, нужная publisher'у. Позволяет подменить соединение в тестах.
type MsgPublisher interface {
	PublishMsg(msg *nats.Msg) error
}

// envelope - формат сообщения в шине.
type envelope struct {
	EventID     string             `json:"event_id"`
	EventType   string             `json:"event_type"`
	OccurredAt  time.Time          `json:"occurred_at"`
	AggregateID string             `json:"aggregate_id"`
	Data        events.DomainEvent `json:"data"`
}

// NATSPublisher публикует события в subject "<prefix>.<event type>",
// например "branchledger.account.opened".
//
// Trace context передаётся в заголовках сообщения (W3C traceparent).
type NATSPublisher struct {
	conn   MsgPublisher
	prefix string
	logger *slog.Logger
}

// NewNATSPublisher создаёт publisher поверх готового соединения.
func NewNATSPublisher(conn MsgPublisher, subjectPrefix string, logger *slog.Logger) *NATSPublisher {
	return &NATSPublisher{conn: conn, prefix: subjectPrefix, logger: logger}
}

// ConnectNATS открывает соединение с бесконечным переподключением.
func ConnectNATS(url, clientName string, logger *slog.Logger) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name(clientName),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", slog.String("error", err.Error()))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", slog.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	return conn, nil
}

// Subject возвращает subject для типа события.
func (p *NATSPublisher) Subject(eventType string) string {
	return p.prefix + "." + eventType
}

// Publish сериализует событие в JSON и отправляет его.
func (p *NATSPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	data, err := json.Marshal(envelope{
		EventID:     event.EventID().String(),
		EventType:   event.EventType(),
		OccurredAt:  event.OccurredAt(),
		AggregateID: event.AggregateID(),
		Data:        event,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.EventType(), err)
	}

	msg := nats.NewMsg(p.Subject(event.EventType()))
	msg.Data = data
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(http.Header(msg.Header)))

	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", msg.Subject, err)
	}

	p.logger.DebugContext(ctx, "event published to nats", slog.String("subject", msg.Subject))
	return nil
}

// PublishBatch публикует события по порядку и останавливается на первой ошибке.
func (p *NATSPublisher) PublishBatch(ctx context.Context, evts []events.DomainEvent) error {
	for _, event := range evts {
		if err := p.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
