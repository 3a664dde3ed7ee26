package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Haleralex/branchledger/internal/application/dtos"
	"github.com/Haleralex/branchledger/internal/application/ports"
	"github.com/Haleralex/branchledger/internal/domain/entities"
	"github.com/Haleralex/branchledger/internal/domain/errors"
	"github.com/Haleralex/branchledger/internal/domain/events"
	"github.com/Haleralex/branchledger/internal/domain/valueobjects"
)

// OpenAccountUseCase - use case открытия счёта.
//
// Сценарий:
// 1. Проверить тип, отделение, дату рождения и сумму (в этом порядке)
// 2. Проверить, что у владельца нет счёта этого типа
// 3. Сгенерировать идентификатор и добавить счёт
// 4. Опубликовать AccountOpened
//
// Бизнес-правила:
// - У владельца не больше одного счёта каждого типа
// - Уникальность идентификатора не проверяется: серийный номер считается свежим
type OpenAccountUseCase struct {
	repo      ports.AccountRepository
	serials   valueobjects.SerialSource
	publisher ports.EventPublisher
	uow       ports.UnitOfWork
	clock     Clock
	logger    *slog.Logger
}

// NewOpenAccountUseCase создаёт новый use case.
func NewOpenAccountUseCase(
	repo ports.AccountRepository,
	serials valueobjects.SerialSource,
	publisher ports.EventPublisher,
	uow ports.UnitOfWork,
	clock Clock,
	logger *slog.Logger,
) *OpenAccountUseCase {
	return &OpenAccountUseCase{
		repo:      repo,
		serials:   serials,
		publisher: publisher,
		uow:       uow,
		clock:     clock,
		logger:    logger,
	}
}

// Execute открывает счёт.
func (uc *OpenAccountUseCase) Execute(ctx context.Context, cmd dtos.OpenAccountCommand) (result *dtos.AccountOperationDTO, err error) {
	ctx, span := startSpan(ctx, "account.open",
		attribute.String("account.type", cmd.AccountType),
		attribute.String("account.branch", cmd.Branch),
	)
	defer func() { endSpan(span, err) }()

	err = uc.uow.Execute(ctx, func(txCtx context.Context) error {
		// 1. Разбираем входные параметры
		accountType, err := valueobjects.ParseAccountType(cmd.AccountType)
		if err != nil {
			return errors.NewDomainError(errors.CodeUnknownAccountType,
				fmt.Sprintf("%s - invalid account type.", cmd.AccountType), err)
		}

		branch, err := valueobjects.ParseBranch(cmd.Branch)
		if err != nil {
			return errors.NewDomainError(errors.CodeUnknownBranch,
				fmt.Sprintf("%s - invalid branch.", cmd.Branch), err)
		}

		dob, err := parseBirthDate(cmd.DateOfBirth, uc.clock())
		if err != nil {
			return err
		}

		deposit, err := parseAmount(cmd.InitialDeposit, "Initial deposit cannot be 0 or negative.")
		if err != nil {
			return err
		}

		// 2. Один счёт каждого типа на владельца
		holder := valueobjects.NewProfile(cmd.FirstName, cmd.LastName, dob)
		exists, err := uc.repo.ExistsByHolderAndType(txCtx, holder, accountType)
		if err != nil {
			return fmt.Errorf("failed to check holder accounts: %w", err)
		}
		if exists {
			message := fmt.Sprintf("%s %s already has a %s account.",
				cmd.FirstName, cmd.LastName, strings.ToLower(cmd.AccountType))
			violation := errors.NewBusinessRuleViolation("ONE_ACCOUNT_PER_TYPE", message, map[string]interface{}{
				"holder":       holder.String(),
				"account_type": accountType.String(),
			}).Because(errors.ErrDuplicateHolderType)
			return errors.NewDomainError(errors.CodeDuplicateHolderType, message, violation)
		}

		// 3. Создаём счёт
		id := valueobjects.NewIdentifier(branch, accountType, uc.serials)
		account, err := entities.NewAccount(id, holder, deposit)
		if err != nil {
			return fmt.Errorf("failed to create account entity: %w", err)
		}

		if err := uc.repo.Insert(txCtx, account); err != nil {
			return fmt.Errorf("failed to insert account: %w", err)
		}

		// 4. Публикуем событие
		publish(txCtx, uc.publisher, uc.logger, events.NewAccountOpened(account))

		result = &dtos.AccountOperationDTO{
			Account: dtos.ToAccountDTO(account),
			Message: fmt.Sprintf("%s account %s has been opened.", accountType, id),
		}
		return nil
	})

	if err != nil {
		logRejected(ctx, uc.logger, "open", err)
		return nil, err
	}

	uc.logger.InfoContext(ctx, "account opened",
		slog.String("identifier", result.Account.Identifier),
		slog.String("account_type", result.Account.AccountType),
	)
	return result, nil
}
