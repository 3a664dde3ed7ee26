// Package account содержит use cases для работы со счетами.
//
// Каждая команда протокола (O, C, D, W, P*) - отдельный use case.
// Общий сценарий:
// 1. Разобрать сырые токены команды в value objects
// 2. Внутри UnitOfWork проверить бизнес-правила и изменить хранилище
// 3. Опубликовать domain events (ошибка публикации только логируется)
// 4. Вернуть DTO с сообщением протокола
//
// Любой отказ возвращается как *errors.DomainError, у которого Message -
// готовый текст для оператора. До первой записи в хранилище проверяется всё,
// поэтому откат никогда не нужен.
package account

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Haleralex/branchledger/internal/application/ports"
	"github.com/Haleralex/branchledger/internal/domain/errors"
	"github.com/Haleralex/branchledger/internal/domain/events"
	"github.com/Haleralex/branchledger/internal/domain/valueobjects"
)

// TracerName - имя tracer'а use cases.
const TracerName = "github.com/Haleralex/branchledger/internal/application/usecases/account"

// Clock возвращает текущее время. Нужен для проверки даты рождения.
type Clock func() time.Time

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// endSpan закрывает span, отмечая отказ команды как ошибку.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, errors.CodeOf(err))
	}
	span.End()
}

// publish отправляет события. Хранилище уже изменено, поэтому ошибка
// не возвращается вызывающему, а только логируется.
func publish(ctx context.Context, publisher ports.EventPublisher, logger *slog.Logger, evts ...events.DomainEvent) {
	if len(evts) == 0 {
		return
	}
	if err := publisher.PublishBatch(ctx, evts); err != nil {
		logger.WarnContext(ctx, "failed to publish domain events",
			slog.Int("count", len(evts)),
			slog.String("error", err.Error()),
		)
	}
}

// logRejected пишет отказ команды. Ожидаемые отказы - warn, остальное - error.
func logRejected(ctx context.Context, logger *slog.Logger, command string, err error) {
	if de, ok := errors.AsDomainError(err); ok {
		logger.WarnContext(ctx, "command rejected",
			slog.String("command", command),
			slog.String("code", de.Code),
			slog.String("reason", de.Message),
		)
		return
	}
	logger.ErrorContext(ctx, "command failed",
		slog.String("command", command),
		slog.String("error", err.Error()),
	)
}

// parseAmount разбирает сумму команды.
// nonPositive - сообщение протокола для суммы <= 0, оно своё у каждой команды.
func parseAmount(raw, nonPositive string) (valueobjects.Money, error) {
	amount, err := valueobjects.ParseAmount(raw)
	switch {
	case err == nil:
		return amount, nil
	case stdErrors.Is(err, valueobjects.ErrNonPositiveAmount):
		return valueobjects.Money{}, errors.NewDomainError(errors.CodeNonPositiveAmount, nonPositive, err)
	default:
		return valueobjects.Money{}, errors.NewDomainError(
			errors.CodeNonNumericAmount,
			fmt.Sprintf("For input string: \"%s\" - not a valid amount.", raw),
			err,
		)
	}
}

// parseBirthDate разбирает и проверяет дату рождения относительно today.
func parseBirthDate(raw string, today time.Time) (valueobjects.Date, error) {
	dob, err := valueobjects.ParseBirthDate(raw, today)
	if err != nil {
		return valueobjects.Date{}, errors.NewDomainError(errors.CodeInvalidDate, err.Error(), err)
	}
	return dob, nil
}

// notFound превращает ErrAccountNotFound хранилища в отказ с сообщением,
// остальные ошибки оборачивает как внутренние.
func notFound(err error, message, op string) error {
	if errors.IsNotFound(err) {
		return errors.NewDomainError(errors.CodeAccountNotFound, message, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
