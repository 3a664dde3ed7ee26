package account

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Haleralex/branchledger/internal/application/dtos"
	"github.com/Haleralex/branchledger/internal/application/ports"
	"github.com/Haleralex/branchledger/internal/domain/errors"
	"github.com/Haleralex/branchledger/internal/domain/events"
	"github.com/Haleralex/branchledger/internal/domain/valueobjects"
)

// CloseAccountUseCase - закрытие одного счёта по идентификатору.
// Счёт удаляется из хранилища, его снимок уходит в архив.
type CloseAccountUseCase struct {
	repo      ports.AccountRepository
	publisher ports.EventPublisher
	uow       ports.UnitOfWork
	logger    *slog.Logger
}

// NewCloseAccountUseCase создаёт новый use case.
func NewCloseAccountUseCase(
	repo ports.AccountRepository,
	publisher ports.EventPublisher,
	uow ports.UnitOfWork,
	logger *slog.Logger,
) *CloseAccountUseCase {
	return &CloseAccountUseCase{
		repo:      repo,
		publisher: publisher,
		uow:       uow,
		logger:    logger,
	}
}

// Execute закрывает счёт.
func (uc *CloseAccountUseCase) Execute(ctx context.Context, cmd dtos.CloseAccountCommand) (result *dtos.CloseResultDTO, err error) {
	ctx, span := startSpan(ctx, "account.close", attribute.String("account.identifier", cmd.Identifier))
	defer func() { endSpan(span, err) }()

	err = uc.uow.Execute(ctx, func(txCtx context.Context) error {
		id, err := valueobjects.ParseIdentifier(cmd.Identifier)
		if err != nil {
			return errors.NewDomainError(errors.CodeMalformedIdentifier,
				fmt.Sprintf("%s - invalid account number.", cmd.Identifier), err)
		}

		closed, err := uc.repo.Remove(txCtx, id)
		if err != nil {
			return notFound(err, fmt.Sprintf("%s account does not exist.", cmd.Identifier), "remove account")
		}

		publish(txCtx, uc.publisher, uc.logger, events.NewAccountClosed(closed, events.ClosedByIdentifier))

		result = &dtos.CloseResultDTO{
			Closed:  []dtos.AccountDTO{dtos.ToAccountDTO(closed)},
			Message: fmt.Sprintf("%s is closed and moved to archive; balance set to 0.", cmd.Identifier),
		}
		return nil
	})

	if err != nil {
		logRejected(ctx, uc.logger, "close", err)
		return nil, err
	}

	uc.logger.InfoContext(ctx, "account closed", slog.String("identifier", cmd.Identifier))
	return result, nil
}

// CloseHolderUseCase - закрытие всех счетов владельца (всех типов).
type CloseHolderUseCase struct {
	repo      ports.AccountRepository
	publisher ports.EventPublisher
	uow       ports.UnitOfWork
	clock     Clock
	logger    *slog.Logger
}

// NewCloseHolderUseCase создаёт новый use case.
func NewCloseHolderUseCase(
	repo ports.AccountRepository,
	publisher ports.EventPublisher,
	uow ports.UnitOfWork,
	clock Clock,
	logger *slog.Logger,
) *CloseHolderUseCase {
	return &CloseHolderUseCase{
		repo:      repo,
		publisher: publisher,
		uow:       uow,
		clock:     clock,
		logger:    logger,
	}
}

// Execute закрывает все счета владельца.
// Счета архивируются с конца хранилища, AccountClosed публикуется на каждый.
func (uc *CloseHolderUseCase) Execute(ctx context.Context, cmd dtos.CloseHolderCommand) (result *dtos.CloseResultDTO, err error) {
	ctx, span := startSpan(ctx, "account.close_holder")
	defer func() { endSpan(span, err) }()

	err = uc.uow.Execute(ctx, func(txCtx context.Context) error {
		dob, err := parseBirthDate(cmd.DateOfBirth, uc.clock())
		if err != nil {
			return err
		}
		holder := valueobjects.NewProfile(cmd.FirstName, cmd.LastName, dob)
		noAccounts := fmt.Sprintf("%s %s %s does not have any accounts in the database.",
			cmd.FirstName, cmd.LastName, cmd.DateOfBirth)

		exists, err := uc.repo.ExistsByHolder(txCtx, holder)
		if err != nil {
			return fmt.Errorf("failed to check holder accounts: %w", err)
		}
		if !exists {
			return errors.NewDomainError(errors.CodeNoHolderAccounts, noAccounts, errors.ErrNoHolderAccounts)
		}

		closed, err := uc.repo.RemoveByHolder(txCtx, holder)
		if err != nil {
			if stdErrors.Is(err, errors.ErrNoHolderAccounts) {
				return errors.NewDomainError(errors.CodeNoHolderAccounts, noAccounts, err)
			}
			return fmt.Errorf("failed to remove holder accounts: %w", err)
		}

		evts := make([]events.DomainEvent, len(closed))
		for i, acc := range closed {
			evts[i] = events.NewAccountClosed(acc, events.ClosedByHolder)
		}
		publish(txCtx, uc.publisher, uc.logger, evts...)

		message := fmt.Sprintf("All accounts for %s %s %s are closed and moved to archive; balance set to 0.",
			cmd.FirstName, cmd.LastName, cmd.DateOfBirth)
		result = &dtos.CloseResultDTO{
			Closed:  dtos.ToAccountDTOList(closed),
			Message: message,
		}
		return nil
	})

	if err != nil {
		logRejected(ctx, uc.logger, "close_holder", err)
		return nil, err
	}

	uc.logger.InfoContext(ctx, "holder accounts closed", slog.Int("count", len(result.Closed)))
	return result, nil
}
