package memory

import (
	"context"
	"sync"

	"github.com/Haleralex/branchledger/internal/application/ports"
	"github.com/Haleralex/branchledger/internal/domain/entities"
	domainErrors "github.com/Haleralex/branchledger/internal/domain/errors"
	"github.com/Haleralex/branchledger/internal/domain/valueobjects"
)

// Compile-time check
var _ ports.AccountRepository = (*AccountStore)(nil)

// GrowthIncrement - на сколько слотов растёт хранилище, когда оно заполнено.
const GrowthIncrement = 4

// AccountStore реализует ports.AccountRepository в памяти процесса.
//
// Особенности:
// - Массив фиксированной ёмкости, растёт на GrowthIncrement слотов
// - Поиск линейный, первое совпадение
// - Удаление через swap с последним: порядок после удаления не сохраняется
// - Уникальность идентификаторов НЕ проверяется (это делает вызывающий)
// - Наружу отдаются только снимки (Snapshot), живые записи не утекают
type AccountStore struct {
	mu       sync.RWMutex
	accounts []*entities.Account // len(accounts) - текущая ёмкость
	size     int
	archive  *Archive
}

// NewAccountStore создаёт пустое хранилище, закрытые счета уходят в archive.
func NewAccountStore(archive *Archive) *AccountStore {
	return &AccountStore{
		accounts: make([]*entities.Account, GrowthIncrement),
		archive:  archive,
	}
}

// Capacity возвращает текущую ёмкость массива.
func (s *AccountStore) Capacity() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// Insert добавляет счёт в конец, при необходимости увеличивая ёмкость.
func (s *AccountStore) Insert(ctx context.Context, account *entities.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.size == len(s.accounts) {
		s.grow()
	}
	s.accounts[s.size] = account.Snapshot()
	s.size++
	return nil
}

func (s *AccountStore) grow() {
	grown := make([]*entities.Account, len(s.accounts)+GrowthIncrement)
	copy(grown, s.accounts[:s.size])
	s.accounts = grown
}

// indexOf возвращает позицию счёта или -1. Вызывать под блокировкой.
func (s *AccountStore) indexOf(id valueobjects.Identifier) int {
	for i := 0; i < s.size; i++ {
		if s.accounts[i].ID().Equals(id) {
			return i
		}
	}
	return -1
}

// removeAt удаляет запись через swap с последней. Вызывать под блокировкой.
func (s *AccountStore) removeAt(i int) *entities.Account {
	removed := s.accounts[i]
	last := s.size - 1
	s.accounts[i] = s.accounts[last]
	s.accounts[last] = nil
	s.size--
	return removed
}

// FindByIdentifier находит счёт по идентификатору.
func (s *AccountStore) FindByIdentifier(ctx context.Context, id valueobjects.Identifier) (*entities.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, domainErrors.ErrAccountNotFound
	}
	return s.accounts[i].Snapshot(), nil
}

// ExistsByHolderAndType проверяет пару (владелец, тип).
// Владельцы сравниваются без учёта регистра имён.
func (s *AccountStore) ExistsByHolderAndType(ctx context.Context, holder valueobjects.Profile, accountType valueobjects.AccountType) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := 0; i < s.size; i++ {
		acc := s.accounts[i]
		if acc.Holder().Equals(holder) && acc.AccountType() == accountType {
			return true, nil
		}
	}
	return false, nil
}

// ExistsByHolder проверяет, есть ли у владельца хоть один открытый счёт.
func (s *AccountStore) ExistsByHolder(ctx context.Context, holder valueobjects.Profile) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(entities.HolderAccounts(s.accounts[:s.size], holder)) > 0, nil
}

// Remove удаляет счёт и записывает его снимок в архив.
func (s *AccountStore) Remove(ctx context.Context, id valueobjects.Identifier) (*entities.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, domainErrors.ErrAccountNotFound
	}
	removed := s.removeAt(i)
	s.archive.Record(removed)
	return removed.Snapshot(), nil
}

// RemoveByHolder удаляет и архивирует все счета владельца.
//
// Проход идёт с конца: swap с последним не пропускает записи.
// Если счетов нет, возвращает errors.ErrNoHolderAccounts.
func (s *AccountStore) RemoveByHolder(ctx context.Context, holder valueobjects.Profile) ([]*entities.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []*entities.Account
	for i := s.size - 1; i >= 0; i-- {
		if !s.accounts[i].Holder().Equals(holder) {
			continue
		}
		acc := s.removeAt(i)
		s.archive.Record(acc)
		removed = append(removed, acc.Snapshot())
	}
	if len(removed) == 0 {
		return nil, domainErrors.ErrNoHolderAccounts
	}
	return removed, nil
}

// Deposit зачисляет сумму на счёт.
func (s *AccountStore) Deposit(ctx context.Context, id valueobjects.Identifier, amount valueobjects.Money) (*entities.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, domainErrors.ErrAccountNotFound
	}
	s.accounts[i].Deposit(amount)
	return s.accounts[i].Snapshot(), nil
}

// Withdraw списывает сумму, только если баланса достаточно.
func (s *AccountStore) Withdraw(ctx context.Context, id valueobjects.Identifier, amount valueobjects.Money) (*entities.Account, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, false, domainErrors.ErrAccountNotFound
	}
	acc := s.accounts[i]
	if !acc.CanWithdraw(amount) {
		return acc.Snapshot(), false, nil
	}
	acc.Withdraw(amount)
	return acc.Snapshot(), true, nil
}

// Replace заменяет запись на месте, позиция в массиве не меняется.
func (s *AccountStore) Replace(ctx context.Context, id valueobjects.Identifier, account *entities.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domainErrors.ErrAccountNotFound
	}
	s.accounts[i] = account.Snapshot()
	return nil
}

// List сортирует хранилище на месте выбором (selection sort) и возвращает снимки.
// Для OrderNone порядок хранилища не меняется.
func (s *AccountStore) List(ctx context.Context, order entities.AccountOrder) ([]*entities.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if order != entities.OrderNone {
		s.selectionSort(order)
	}

	out := make([]*entities.Account, s.size)
	for i := 0; i < s.size; i++ {
		out[i] = s.accounts[i].Snapshot()
	}
	return out, nil
}

// selectionSort - O(n^2). Все порядки заканчиваются идентификатором,
// поэтому результат однозначен.
func (s *AccountStore) selectionSort(order entities.AccountOrder) {
	for i := 0; i < s.size-1; i++ {
		minIdx := i
		for j := i + 1; j < s.size; j++ {
			if order.Compare(s.accounts[j], s.accounts[minIdx]) < 0 {
				minIdx = j
			}
		}
		s.accounts[i], s.accounts[minIdx] = s.accounts[minIdx], s.accounts[i]
	}
}

// Summary считает количество и сумму балансов по типам счетов.
func (s *AccountStore) Summary(ctx context.Context) (entities.Summary, error) {
	if err := ctx.Err(); err != nil {
		return entities.Summary{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return entities.Summarize(s.accounts[:s.size]), nil
}

// Count возвращает количество открытых счетов.
func (s *AccountStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size, nil
}
