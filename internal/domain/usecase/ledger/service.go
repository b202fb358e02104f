package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/roozbehm/ledger-service/internal/domain/entity"
	errs "github.com/roozbehm/ledger-service/internal/domain/error"
	coreport "github.com/roozbehm/ledger-service/internal/domain/port/core"
	"github.com/roozbehm/ledger-service/internal/domain/port/persistence"
)

// Service implements the ledger business logic: creating transactions with
// atomic balance mutation, and reading or updating existing transactions.
type Service struct {
	transactions persistence.TransactionRepository
	users        persistence.UserRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a new ledger service instance
func NewService(
	transactions persistence.TransactionRepository,
	users persistence.UserRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		transactions: transactions,
		users:        users,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// CreateTransactionRequest carries the input for CreateTransaction
type CreateTransactionRequest struct {
	OwnerID string
	Type    string
	Amount  string
}

// CreateTransactionResult carries the outcome of a successful CreateTransaction
type CreateTransactionResult struct {
	TransactionID string
	OwnerID       string
	Type          entity.TransactionType
	Status        entity.TransactionStatus
	Amount        string
	ResultBalance string
}

// CreateTransaction records a new pending transaction and moves the owner's
// balance. Insert and balance update happen in one repository-level database
// transaction; a withdrawal that would overdraw fails with
// ErrInsufficientBalance and writes nothing.
func (s *Service) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*CreateTransactionResult, error) {
	txn, err := entity.NewTransaction(uuid.NewString(), req.OwnerID, req.Type, req.Amount, s.timeProvider)
	if err != nil {
		return nil, err
	}

	// Resolve the owner up front so a missing user surfaces as not-found
	// rather than a failed balance update.
	owner, err := s.users.GetByPublicID(ctx, req.OwnerID)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			s.logger.Warn("Transaction for non-existent user", map[string]any{
				"userId": req.OwnerID,
			})
		}
		return nil, err
	}

	newBalance, err := s.transactions.Apply(ctx, txn)
	if err != nil {
		if errors.Is(err, errs.ErrInsufficientBalance) {
			return nil, errs.NewInsufficientBalanceError(owner.PublicID, txn.Amount, owner.GetBalance())
		}
		s.logger.Error("Failed to apply transaction", map[string]any{
			"transactionId": txn.TransactionID,
			"userId":        txn.OwnerID,
			"error":         err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Transaction created", map[string]any{
		"transactionId": txn.TransactionID,
		"userId":        txn.OwnerID,
		"type":          string(txn.Type),
		"amount":        txn.Amount,
		"newBalance":    entity.AmountInCentsToString(newBalance),
	})

	return &CreateTransactionResult{
		TransactionID: txn.TransactionID,
		OwnerID:       txn.OwnerID,
		Type:          txn.Type,
		Status:        txn.Status,
		Amount:        txn.Amount,
		ResultBalance: entity.AmountInCentsToString(newBalance),
	}, nil
}

// ListByOwner returns all transactions owned by the given user. An empty
// history fails with ErrNotFound, matching the service's published contract.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Transaction, error) {
	txns, err := s.transactions.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, errs.ErrNotFound
	}
	return txns, nil
}

// GetTransaction returns a transaction by identifier. Only the owner may read it.
func (s *Service) GetTransaction(ctx context.Context, transactionID, callerID string) (*entity.Transaction, error) {
	txn, err := s.transactions.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if txn.OwnerID != callerID {
		s.logger.Warn("Caller is not the transaction owner", map[string]any{
			"transactionId": transactionID,
			"callerId":      callerID,
		})
		return nil, errs.ErrUnauthorized
	}

	return txn, nil
}

// UpdateStatus overwrites a transaction's status with a validated value.
// Only the owner may update it.
func (s *Service) UpdateStatus(ctx context.Context, transactionID, status, callerID string) error {
	parsedStatus, err := entity.ParseTransactionStatus(status)
	if err != nil {
		return err
	}

	txn, err := s.transactions.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return err
	}

	if txn.OwnerID != callerID {
		s.logger.Warn("Caller is not the transaction owner", map[string]any{
			"transactionId": transactionID,
			"callerId":      callerID,
		})
		return errs.ErrUnauthorized
	}

	if err := s.transactions.UpdateStatus(ctx, transactionID, parsedStatus); err != nil {
		return err
	}

	s.logger.Info("Transaction status updated", map[string]any{
		"transactionId": transactionID,
		"status":        string(parsedStatus),
	})
	return nil
}
