package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haleralex/branchledger/internal/domain/entities"
	domainErrors "github.com/Haleralex/branchledger/internal/domain/errors"
	"github.com/Haleralex/branchledger/internal/domain/valueobjects"
)

func TestUnitOfWork_ReturnsFnError(t *testing.T) {
	uow := NewUnitOfWork()
	want := errors.New("boom")

	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		return want
	})

	assert.ErrorIs(t, err, want)
}

func TestUnitOfWork_SkipsFnOnCancelledContext(t *testing.T) {
	uow := NewUnitOfWork()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := uow.Execute(ctx, func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestUnitOfWork_ReleasesLockOnPanic(t *testing.T) {
	uow := NewUnitOfWork()

	assert.Panics(t, func() {
		_ = uow.Execute(context.Background(), func(ctx context.Context) error {
			panic("boom")
		})
	})

	err := uow.Execute(context.Background(), func(ctx context.Context) error { return nil })
	assert.NoError(t, err)
}

// TestUnitOfWork_CheckThenInsertIsAtomic opens the same holder/type from many
// goroutines; exactly one insert may win.
func TestUnitOfWork_CheckThenInsertIsAtomic(t *testing.T) {
	ctx := context.Background()
	uow := NewUnitOfWork()
	store, _ := newTestStore()
	john := holder("John", "Doe")

	candidates := make([]*entities.Account, 20)
	for i := range candidates {
		candidates[i] = account(t, fmt.Sprintf("10001%04d", 1000+i), john, "100")
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	inserted := 0

	for i := range candidates {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := uow.Execute(ctx, func(ctx context.Context) error {
				exists, err := store.ExistsByHolderAndType(ctx, john, valueobjects.Checking)
				if err != nil {
					return err
				}
				if exists {
					return domainErrors.ErrDuplicateHolderType
				}
				return store.Insert(ctx, candidates[i])
			})
			if err == nil {
				mu.Lock()
				inserted++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.Equal(t, 1, count)
}
