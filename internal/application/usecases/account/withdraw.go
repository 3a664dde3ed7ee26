package account

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Haleralex/branchledger/internal/application/dtos"
	"github.com/Haleralex/branchledger/internal/application/ports"
	"github.com/Haleralex/branchledger/internal/domain/errors"
	"github.com/Haleralex/branchledger/internal/domain/events"
	"github.com/Haleralex/branchledger/internal/domain/valueobjects"
)

// WithdrawUseCase - списание с открытого счёта.
//
// Бизнес-правила:
// - Баланс не может стать отрицательным: нехватка средств - отказ без изменений
// - MONEY_MARKET с балансом ниже минимума после списания становится SAVINGS;
//   отделение и серийный номер идентификатора сохраняются
type WithdrawUseCase struct {
	repo      ports.AccountRepository
	publisher ports.EventPublisher
	uow       ports.UnitOfWork
	logger    *slog.Logger
}

// NewWithdrawUseCase создаёт новый use case.
func NewWithdrawUseCase(
	repo ports.AccountRepository,
	publisher ports.EventPublisher,
	uow ports.UnitOfWork,
	logger *slog.Logger,
) *WithdrawUseCase {
	return &WithdrawUseCase{
		repo:      repo,
		publisher: publisher,
		uow:       uow,
		logger:    logger,
	}
}

// Execute списывает сумму и при необходимости понижает тип счёта.
func (uc *WithdrawUseCase) Execute(ctx context.Context, cmd dtos.WithdrawCommand) (result *dtos.AccountOperationDTO, err error) {
	ctx, span := startSpan(ctx, "account.withdraw", attribute.String("account.identifier", cmd.Identifier))
	defer func() { endSpan(span, err) }()

	err = uc.uow.Execute(ctx, func(txCtx context.Context) error {
		id, err := valueobjects.ParseIdentifier(cmd.Identifier)
		if err != nil {
			return errors.NewDomainError(errors.CodeMalformedIdentifier, "Invalid account number", err)
		}

		amount, err := parseAmount(cmd.Amount,
			fmt.Sprintf("%s withdrawal amount cannot be 0 or negative.", cmd.Amount))
		if err != nil {
			return err
		}

		account, ok, err := uc.repo.Withdraw(txCtx, id, amount)
		if err != nil {
			return notFound(err, "Account not found", "withdraw")
		}
		if !ok {
			violation := errors.NewBusinessRuleViolation("NO_NEGATIVE_BALANCE", "Insufficient funds", map[string]interface{}{
				"identifier": cmd.Identifier,
				"amount":     amount.String(),
			}).Because(errors.ErrInsufficientFunds)
			return errors.NewDomainError(errors.CodeInsufficientFunds, "Insufficient funds", violation)
		}

		evts := []events.DomainEvent{events.NewFundsWithdrawn(account, amount.String())}

		// Понижение MONEY_MARKET -> SAVINGS
		previous := account.ID()
		downgraded := account.DowngradeIfBelowMinimum()
		status := ""
		if downgraded {
			if err := uc.repo.Replace(txCtx, previous, account); err != nil {
				return fmt.Errorf("failed to store downgraded account: %w", err)
			}
			evts = append(evts, events.NewAccountDowngraded(previous.String(), account))
			status = " Account downgraded to Savings"
			span.SetAttributes(attribute.Bool("account.downgraded", true))
		}

		publish(txCtx, uc.publisher, uc.logger, evts...)

		result = &dtos.AccountOperationDTO{
			Account:    dtos.ToAccountDTO(account),
			Message:    fmt.Sprintf("Withdrawal successful. New balance: $%s.%s", account.Balance(), status),
			Downgraded: downgraded,
		}
		if downgraded {
			result.PreviousIdentifier = previous.String()
		}
		return nil
	})

	if err != nil {
		logRejected(ctx, uc.logger, "withdraw", err)
		return nil, err
	}

	uc.logger.InfoContext(ctx, "withdrawal accepted",
		slog.String("identifier", result.Account.Identifier),
		slog.String("balance", result.Account.Balance),
		slog.Bool("downgraded", result.Downgraded),
	)
	return result, nil
}
