// Package memory - in-memory хранилище счетов и архива.
//
// Unit of Work Pattern:
// - Одна команда выполняется целиком, прежде чем начнётся следующая
// - Проверка уникальности и вставка не перемешиваются между клиентами
// - Отката нет: use cases проверяют всё до первой записи
//
// Usage:
//
//	err := uow.Execute(ctx, func(ctx context.Context) error {
//	    exists, _ := store.ExistsByHolderAndType(ctx, holder, accountType)
//	    if exists {
//	        return errors.ErrDuplicateHolderType
//	    }
//	    return store.Insert(ctx, account)
//	})
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Haleralex/branchledger/internal/application/ports"
)

// Compile-time check
var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork реализует ports.UnitOfWork одним мьютексом на процесс.
type UnitOfWork struct {
	mu sync.Mutex
}

// NewUnitOfWork создаёт новый UnitOfWork.
func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{}
}

// Execute выполняет fn под эксклюзивной блокировкой.
//
// Поведение:
// - Если context уже отменён, fn не вызывается
// - Если fn паникует, блокировка снимается и паника пробрасывается дальше
// - Вложенный вызов Execute из fn приведёт к deadlock
func (u *UnitOfWork) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("unit of work: %w", err)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	return fn(ctx)
}
