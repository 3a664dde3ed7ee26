package memory

import (
	"context"
	"sync"

	"github.com/Haleralex/branchledger/internal/application/ports"
	"github.com/Haleralex/branchledger/internal/domain/entities"
)

// Compile-time check
var _ ports.ArchiveRepository = (*Archive)(nil)

// archiveNode - звено цепочки архива.
type archiveNode struct {
	account *entities.Account
	next    *archiveNode
}

// Archive хранит снимки закрытых счетов в односвязной цепочке.
//
// Особенности:
// - Новые записи добавляются в начало: O(1)
// - Удаления и дедупликации нет
// - Размер не ограничен
type Archive struct {
	mu   sync.RWMutex
	head *archiveNode
	size int
}

// NewArchive создаёт пустой архив.
func NewArchive() *Archive {
	return &Archive{}
}

// Record добавляет снимок счёта в начало цепочки.
func (a *Archive) Record(account *entities.Account) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.head = &archiveNode{account: account.Snapshot(), next: a.head}
	a.size++
}

// List возвращает записи от последней закрытой к самой старой.
func (a *Archive) List(ctx context.Context) ([]*entities.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]*entities.Account, 0, a.size)
	for n := a.head; n != nil; n = n.next {
		out = append(out, n.account.Snapshot())
	}
	return out, nil
}

// Count возвращает количество записей в архиве.
func (a *Archive) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.size, nil
}
