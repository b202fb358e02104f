package persistence

import (
	"context"

	"github.com/roozbehm/ledger-service/internal/domain/entity"
)

// TransactionRepository defines data access operations for ledger transactions
type TransactionRepository interface {
	// Apply atomically inserts the transaction and moves the owner's balance
	// in a single database transaction. The balance update is conditional so
	// concurrent withdrawals cannot overdraw the account. Returns the owner's
	// balance in cents after the mutation. Returns ErrUserNotFound when the
	// owner does not exist and ErrInsufficientBalance when a withdrawal would
	// overdraw; in both cases no transaction record is written.
	Apply(ctx context.Context, txn *entity.Transaction) (int64, error)

	// GetByTransactionID retrieves a transaction by its public identifier.
	// Returns ErrTransactionNotFound when no transaction matches.
	GetByTransactionID(ctx context.Context, transactionID string) (*entity.Transaction, error)

	// ListByOwner returns all transactions owned by the given user, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Transaction, error)

	// UpdateStatus overwrites the status of the given transaction. Returns
	// ErrTransactionNotFound when no transaction matches.
	UpdateStatus(ctx context.Context, transactionID string, status entity.TransactionStatus) error
}
