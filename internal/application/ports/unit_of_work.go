// Package ports - UnitOfWork паттерн для управления границами команд.
//
// SOLID Principles:
// - SRP: UnitOfWork отвечает только за границы команды
// - DIP: Application не знает о деталях блокировок
//
// Pattern: Unit of Work
// - Проверка и изменение хранилища выполняются атомарно
// - Один UnitOfWork = одна команда
package ports

import "context"

// UnitOfWork определяет контракт для атомарного выполнения команды.
//
// Паттерн решает проблему:
// "Как гарантировать, что проверка уникальности и вставка не перемешаются
// с другой командой?"
//
// Пример использования:
//
//	err := uow.Execute(ctx, func(ctx context.Context) error {
//	    exists, _ := accounts.ExistsByHolderAndType(ctx, holder, accountType)
//	    if exists {
//	        return errors.ErrDuplicateHolderType
//	    }
//	    return accounts.Insert(ctx, account)
//	})
type UnitOfWork interface {
	// Execute выполняет fn, пока ни одна другая команда не выполняется.
	//
	// Отката нет: команды проверяют всё до первой записи,
	// поэтому ошибка fn всегда означает, что хранилище не изменилось.
	Execute(ctx context.Context, fn func(context.Context) error) error
}
