package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roozbehm/ledger-service/internal/domain/entity"
	errs "github.com/roozbehm/ledger-service/internal/domain/error"
	coreport "github.com/roozbehm/ledger-service/internal/domain/port/core"
	"github.com/roozbehm/ledger-service/internal/infrastructure/adapter/logger"
	timeadapter "github.com/roozbehm/ledger-service/internal/infrastructure/adapter/time"
)

// memoryLedgerStore is a mutex-guarded fake backing both repository ports.
// Apply mirrors the database implementation's semantics: insert and balance
// mutation happen under one lock, driven by the entity's own mutation methods,
// and an overdrawing withdrawal writes nothing.
type memoryLedgerStore struct {
	mu           sync.Mutex
	timeProvider coreport.TimeProvider
	users        map[string]*entity.User
	txns         []*entity.Transaction
}

func newMemoryLedgerStore(timeProvider coreport.TimeProvider) *memoryLedgerStore {
	return &memoryLedgerStore{
		timeProvider: timeProvider,
		users:        make(map[string]*entity.User),
	}
}

func (s *memoryLedgerStore) addUser(user *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.PublicID] = user
}

func (s *memoryLedgerStore) balance(publicID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[publicID].Balance()
}

func (s *memoryLedgerStore) transactionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.txns)
}

func (s *memoryLedgerStore) Create(_ context.Context, user *entity.User) error {
	s.addUser(user)
	return nil
}

func (s *memoryLedgerStore) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errs.ErrUserNotFound
}

func (s *memoryLedgerStore) GetByPublicID(_ context.Context, publicID string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[publicID]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return u, nil
}

func (s *memoryLedgerStore) Apply(_ context.Context, txn *entity.Transaction) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.users[txn.OwnerID]
	if !ok {
		return 0, errs.ErrUserNotFound
	}

	if txn.IsCredit() {
		owner.ApplyDeposit(txn.AmountInCents, s.timeProvider)
	} else if err := owner.ApplyWithdrawal(txn.AmountInCents, s.timeProvider); err != nil {
		return 0, err
	}

	s.txns = append(s.txns, txn)
	return owner.Balance(), nil
}

func (s *memoryLedgerStore) GetByTransactionID(_ context.Context, transactionID string) (*entity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, txn := range s.txns {
		if txn.TransactionID == transactionID {
			return txn, nil
		}
	}
	return nil, errs.ErrTransactionNotFound
}

func (s *memoryLedgerStore) ListByOwner(_ context.Context, ownerID string) ([]*entity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Transaction
	for _, txn := range s.txns {
		if txn.OwnerID == ownerID {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (s *memoryLedgerStore) UpdateStatus(_ context.Context, transactionID string, status entity.TransactionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, txn := range s.txns {
		if txn.TransactionID == transactionID {
			txn.Status = status
			return nil
		}
	}
	return errs.ErrTransactionNotFound
}

// Concurrent withdrawals against one account must never overdraw: with a
// balance covering exactly N-1 withdrawals, N concurrent attempts must yield
// exactly one insufficient-balance failure and a final balance of zero.
func TestConcurrentWithdrawalsNeverOverdraw(t *testing.T) {
	const (
		workers         = 50
		amountCents     = 1000 // 10.00 per withdrawal
		fundedWithdraws = workers - 1
	)

	tp := timeadapter.NewRealTimeProvider()
	store := newMemoryLedgerStore(tp)

	owner, err := entity.NewUser(
		"u-alice", "alice", "alice@example.com", "h",
		entity.AmountInCentsToString(int64(fundedWithdraws*amountCents)), tp,
	)
	require.NoError(t, err)
	store.addUser(owner)

	svc := NewService(store, store, tp, logger.NewNoopLogger())

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateTransaction(context.Background(), CreateTransactionRequest{
				OwnerID: "u-alice",
				Type:    string(entity.TypeWithdrawal),
				Amount:  "10.00",
			})
			results <- err
		}()
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
	assert.Equal(t, int64(0), store.balance("u-alice"))
	// The failed withdrawal must not have written a ledger entry
	assert.Equal(t, fundedWithdraws, store.transactionCount())
}
