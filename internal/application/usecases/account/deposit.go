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

// DepositUseCase - зачисление на открытый счёт.
type DepositUseCase struct {
	repo      ports.AccountRepository
	publisher ports.EventPublisher
	uow       ports.UnitOfWork
	logger    *slog.Logger
}

// NewDepositUseCase создаёт новый use case.
func NewDepositUseCase(
	repo ports.AccountRepository,
	publisher ports.EventPublisher,
	uow ports.UnitOfWork,
	logger *slog.Logger,
) *DepositUseCase {
	return &DepositUseCase{
		repo:      repo,
		publisher: publisher,
		uow:       uow,
		logger:    logger,
	}
}

// Execute зачисляет сумму.
func (uc *DepositUseCase) Execute(ctx context.Context, cmd dtos.DepositCommand) (result *dtos.AccountOperationDTO, err error) {
	ctx, span := startSpan(ctx, "account.deposit", attribute.String("account.identifier", cmd.Identifier))
	defer func() { endSpan(span, err) }()

	err = uc.uow.Execute(ctx, func(txCtx context.Context) error {
		id, err := valueobjects.ParseIdentifier(cmd.Identifier)
		if err != nil {
			return errors.NewDomainError(errors.CodeMalformedIdentifier, "Invalid account number", err)
		}

		amount, err := parseAmount(cmd.Amount,
			fmt.Sprintf("%s - deposit amount cannot be 0 or negative.", cmd.Amount))
		if err != nil {
			return err
		}

		account, err := uc.repo.Deposit(txCtx, id, amount)
		if err != nil {
			return notFound(err, "Account not found", "deposit")
		}

		publish(txCtx, uc.publisher, uc.logger, events.NewFundsDeposited(account, amount.String()))

		result = &dtos.AccountOperationDTO{
			Account: dtos.ToAccountDTO(account),
			Message: fmt.Sprintf("Deposit successful. New balance: $%s", account.Balance()),
		}
		return nil
	})

	if err != nil {
		logRejected(ctx, uc.logger, "deposit", err)
		return nil, err
	}

	uc.logger.InfoContext(ctx, "deposit accepted",
		slog.String("identifier", result.Account.Identifier),
		slog.String("balance", result.Account.Balance),
	)
	return result, nil
}
