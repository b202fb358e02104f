package entity

import (
	"fmt"
	"time"

	errs "github.com/roozbehm/ledger-service/internal/domain/error"
	coreport "github.com/roozbehm/ledger-service/internal/domain/port/core"
)

// TransactionType represents the direction of a transaction
type TransactionType string

// Transaction types
const (
	TypeDeposit    TransactionType = "DEPOSIT"
	TypeWithdrawal TransactionType = "WITHDRAWAL"
)

// TransactionStatus defines possible status values for a transaction
type TransactionStatus string

// Transaction statuses
const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
)

// ParseTransactionType validates a caller-supplied type string
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TypeDeposit, TypeWithdrawal:
		return TransactionType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidTransactionType, s)
	}
}

// ParseTransactionStatus validates a caller-supplied status string
func ParseTransactionStatus(s string) (TransactionStatus, error) {
	switch TransactionStatus(s) {
	case StatusPending, StatusCompleted, StatusFailed:
		return TransactionStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidTransactionStatus, s)
	}
}

// Transaction represents a ledger entry that affects a user's balance.
// Amount, type, owner and timestamp are immutable after creation; only the
// status may be updated later.
type Transaction struct {
	ID            uint64            // Internal primary key
	TransactionID string            // Externally visible unique identifier
	OwnerID       string            // Public ID of the user this transaction belongs to
	Type          TransactionType   // DEPOSIT or WITHDRAWAL
	Status        TransactionStatus // Current processing status
	Amount        string            // Amount as a string with 2 decimal places
	AmountInCents int64             // Amount in cents for precise calculations
	Timestamp     time.Time         // When the transaction was created
}

// NewTransaction creates a new pending transaction with basic validation
func NewTransaction(
	transactionID string,
	ownerID string,
	txType string,
	amount string,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if transactionID == "" {
		return nil, fmt.Errorf("%w: transaction ID cannot be empty", errs.ErrValidation)
	}
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner cannot be empty", errs.ErrValidation)
	}

	parsedType, err := ParseTransactionType(txType)
	if err != nil {
		return nil, err
	}

	amountInCents, err := ValidatePositiveAmount(amount)
	if err != nil {
		return nil, err
	}

	return &Transaction{
		TransactionID: transactionID,
		OwnerID:       ownerID,
		Type:          parsedType,
		Status:        StatusPending,
		Amount:        AmountInCentsToString(amountInCents),
		AmountInCents: amountInCents,
		Timestamp:     timeProvider.Now(),
	}, nil
}

// IsCredit returns true if this transaction increases the owner's balance
func (t *Transaction) IsCredit() bool {
	return t.Type == TypeDeposit
}

// IsDebit returns true if this transaction decreases the owner's balance
func (t *Transaction) IsDebit() bool {
	return t.Type == TypeWithdrawal
}

// BalanceDelta returns the signed balance change in cents this transaction applies
func (t *Transaction) BalanceDelta() int64 {
	if t.IsDebit() {
		return -t.AmountInCents
	}
	return t.AmountInCents
}
