package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roozbehm/ledger-service/internal/domain/entity"
	errs "github.com/roozbehm/ledger-service/internal/domain/error"
	"github.com/roozbehm/ledger-service/internal/infrastructure/adapter/logger"
	timeadapter "github.com/roozbehm/ledger-service/internal/infrastructure/adapter/time"
)

// Concurrent withdrawals through the real repository must never overdraw: the
// conditional balance update inside Apply makes the losing attempt match zero
// rows and roll back without writing a ledger entry.
func TestTransactionRepositoryApplyConcurrent(t *testing.T) {
	const (
		workers         = 20
		amountCents     = 1000 // 10.00 per withdrawal
		fundedWithdraws = workers - 1
	)

	tp := timeadapter.NewRealTimeProvider()
	db := newTestDB(t)
	users := NewUserRepository(db, tp, logger.NewNoopLogger())
	transactions := NewTransactionRepository(db, tp, logger.NewNoopLogger())

	seedUser(t, users, tp, "u-alice", "alice@example.com",
		entity.AmountInCentsToString(int64(fundedWithdraws*amountCents)))

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			txn, err := entity.NewTransaction(
				fmt.Sprintf("tx-%d", i), "u-alice", "WITHDRAWAL", "10.00", tp,
			)
			if err != nil {
				results <- err
				return
			}
			_, err = transactions.Apply(context.Background(), txn)
			results <- err
		}(i)
	}

	wg.Wait()
	close(results)

	var succeeded, insufficient int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, errs.ErrInsufficientBalance):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, fundedWithdraws, succeeded)
	assert.Equal(t, 1, insufficient)

	owner, err := users.GetByPublicID(context.Background(), "u-alice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), owner.Balance())

	// One ledger row per successful withdrawal, none for the rejected one
	txns, err := transactions.ListByOwner(context.Background(), "u-alice")
	require.NoError(t, err)
	assert.Len(t, txns, fundedWithdraws)
}
