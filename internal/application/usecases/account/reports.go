package account

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Haleralex/branchledger/internal/application/dtos"
	"github.com/Haleralex/branchledger/internal/application/ports"
	"github.com/Haleralex/branchledger/internal/domain/entities"
	"github.com/Haleralex/branchledger/internal/domain/errors"
)

// ============================================
// List Accounts (P, PB, PH, PT)
// ============================================

// ListAccountsUseCase - список открытых счетов в заданном порядке.
// Выполняется под UnitOfWork: сортировка идёт на месте в хранилище.
type ListAccountsUseCase struct {
	repo   ports.AccountRepository
	uow    ports.UnitOfWork
	logger *slog.Logger
}

// NewListAccountsUseCase создаёт новый use case.
func NewListAccountsUseCase(repo ports.AccountRepository, uow ports.UnitOfWork, logger *slog.Logger) *ListAccountsUseCase {
	return &ListAccountsUseCase{repo: repo, uow: uow, logger: logger}
}

// Execute возвращает отсортированный список.
func (uc *ListAccountsUseCase) Execute(ctx context.Context, query dtos.ListAccountsQuery) (result *dtos.AccountListDTO, err error) {
	ctx, span := startSpan(ctx, "account.list", attribute.String("account.order", query.Order))
	defer func() { endSpan(span, err) }()

	order, err := entities.ParseAccountOrder(query.Order)
	if err != nil {
		return nil, errors.NewDomainError(errors.CodeInvalidCommand,
			fmt.Sprintf("%s - invalid order.", query.Order), err)
	}

	err = uc.uow.Execute(ctx, func(txCtx context.Context) error {
		accounts, err := uc.repo.List(txCtx, order)
		if err != nil {
			return fmt.Errorf("failed to list accounts: %w", err)
		}
		result = &dtos.AccountListDTO{
			Accounts:   dtos.ToAccountDTOList(accounts),
			Order:      string(order),
			TotalCount: len(accounts),
		}
		return nil
	})
	if err != nil {
		logRejected(ctx, uc.logger, "list", err)
		return nil, err
	}
	return result, nil
}

// ============================================
// List Archive (PA)
// ============================================

// ListArchiveUseCase - закрытые счета, последний закрытый первым.
type ListArchiveUseCase struct {
	archive ports.ArchiveRepository
	uow     ports.UnitOfWork
}

// NewListArchiveUseCase создаёт новый use case.
func NewListArchiveUseCase(archive ports.ArchiveRepository, uow ports.UnitOfWork) *ListArchiveUseCase {
	return &ListArchiveUseCase{archive: archive, uow: uow}
}

// Execute возвращает архив.
func (uc *ListArchiveUseCase) Execute(ctx context.Context) (result *dtos.AccountListDTO, err error) {
	ctx, span := startSpan(ctx, "account.list_archive")
	defer func() { endSpan(span, err) }()

	err = uc.uow.Execute(ctx, func(txCtx context.Context) error {
		accounts, err := uc.archive.List(txCtx)
		if err != nil {
			return fmt.Errorf("failed to list archive: %w", err)
		}
		result = &dtos.AccountListDTO{
			Accounts:   dtos.ToAccountDTOList(accounts),
			TotalCount: len(accounts),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ============================================
// Summary
// ============================================

// SummaryUseCase - агрегированный отчёт: количество и сумма балансов по типам.
type SummaryUseCase struct {
	repo    ports.AccountRepository
	archive ports.ArchiveRepository
	uow     ports.UnitOfWork
}

// NewSummaryUseCase создаёт новый use case.
func NewSummaryUseCase(repo ports.AccountRepository, archive ports.ArchiveRepository, uow ports.UnitOfWork) *SummaryUseCase {
	return &SummaryUseCase{repo: repo, archive: archive, uow: uow}
}

// Execute строит отчёт.
func (uc *SummaryUseCase) Execute(ctx context.Context) (result *dtos.SummaryDTO, err error) {
	ctx, span := startSpan(ctx, "account.summary")
	defer func() { endSpan(span, err) }()

	err = uc.uow.Execute(ctx, func(txCtx context.Context) error {
		summary, err := uc.repo.Summary(txCtx)
		if err != nil {
			return fmt.Errorf("failed to summarize accounts: %w", err)
		}
		archived, err := uc.archive.Count(txCtx)
		if err != nil {
			return fmt.Errorf("failed to count archive: %w", err)
		}
		dto := dtos.ToSummaryDTO(summary, archived)
		result = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
