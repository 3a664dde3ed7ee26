// Package ports определяет интерфейсы (порты) для внешних зависимостей.
// Эти интерфейсы реализуются в Infrastructure Layer.
//
// SOLID Principles:
// - DIP: Application зависит от абстракций, не от конкретных реализаций
// - ISP: Каждый интерфейс фокусируется на одной сущности
// - SRP: Repository отвечает только за хранение
//
// Pattern: Repository Pattern + Ports & Adapters (Hexagonal Architecture)
package ports

import (
	"context"

	"github.com/Haleralex/branchledger/internal/domain/entities"
	"github.com/Haleralex/branchledger/internal/domain/valueobjects"
)

// AccountRepository определяет контракт для хранилища открытых счетов.
// Infrastructure Layer предоставляет реализацию (in-memory store).
//
// Важно: Repository НЕ проверяет уникальность идентификатора при вставке.
// Уникальность (holder, type) проверяет use case через ExistsByHolderAndType
// внутри одного UnitOfWork.
type AccountRepository interface {
	// Insert добавляет счёт в хранилище.
	Insert(ctx context.Context, account *entities.Account) error

	// FindByIdentifier находит счёт по идентификатору.
	// Возвращает errors.ErrAccountNotFound если счёта нет.
	FindByIdentifier(ctx context.Context, id valueobjects.Identifier) (*entities.Account, error)

	// ExistsByHolderAndType проверяет, есть ли у владельца счёт данного типа.
	ExistsByHolderAndType(ctx context.Context, holder valueobjects.Profile, accountType valueobjects.AccountType) (bool, error)

	// ExistsByHolder проверяет, есть ли у владельца хотя бы один счёт.
	ExistsByHolder(ctx context.Context, holder valueobjects.Profile) (bool, error)

	// Remove удаляет счёт и переносит его снимок в архив.
	// Возвращает errors.ErrAccountNotFound если счёта нет.
	Remove(ctx context.Context, id valueobjects.Identifier) (*entities.Account, error)

	// RemoveByHolder удаляет и архивирует все счета владельца.
	// Возвращает удалённые счета в порядке архивации.
	RemoveByHolder(ctx context.Context, holder valueobjects.Profile) ([]*entities.Account, error)

	// Deposit зачисляет сумму на счёт и возвращает обновлённый счёт.
	Deposit(ctx context.Context, id valueobjects.Identifier, amount valueobjects.Money) (*entities.Account, error)

	// Withdraw списывает сумму, если баланса достаточно.
	// ok == false означает нехватку средств, баланс не меняется.
	Withdraw(ctx context.Context, id valueobjects.Identifier, amount valueobjects.Money) (account *entities.Account, ok bool, err error)

	// Replace заменяет счёт, хранящийся под id, на account.
	// Используется при понижении типа: идентификатор account может отличаться от id.
	Replace(ctx context.Context, id valueobjects.Identifier, account *entities.Account) error

	// List возвращает снимки открытых счетов в заданном порядке.
	List(ctx context.Context, order entities.AccountOrder) ([]*entities.Account, error)

	// Summary возвращает агрегаты по типам счетов.
	Summary(ctx context.Context) (entities.Summary, error)

	// Count возвращает количество открытых счетов.
	Count(ctx context.Context) (int, error)
}

// ArchiveRepository определяет контракт для архива закрытых счетов.
// Архив только пополняется, удаления нет.
type ArchiveRepository interface {
	// List возвращает закрытые счета, последний закрытый первым.
	List(ctx context.Context) ([]*entities.Account, error)

	// Count возвращает количество записей в архиве.
	Count(ctx context.Context) (int, error)
}
