package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/roozbehm/ledger-service/internal/domain/entity"
	errs "github.com/roozbehm/ledger-service/internal/domain/error"
	coreport "github.com/roozbehm/ledger-service/internal/domain/port/core"
	"github.com/roozbehm/ledger-service/internal/infrastructure/adapter/database"
	"github.com/roozbehm/ledger-service/internal/infrastructure/adapter/model"
)

// TransactionRepository implements the persistence.TransactionRepository interface using GORM
type TransactionRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	errorMapper  *database.ErrorMapper
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
		errorMapper:  database.NewErrorMapper(),
	}
}

// transactionModelToEntity converts a transaction model to an entity
func transactionModelToEntity(txnModel *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:            txnModel.ID,
		TransactionID: txnModel.TransactionID,
		OwnerID:       txnModel.OwnerID,
		Type:          entity.TransactionType(txnModel.Type),
		Status:        entity.TransactionStatus(txnModel.Status),
		Amount:        txnModel.Amount,
		AmountInCents: txnModel.AmountInCents,
		Timestamp:     txnModel.CreatedAt,
	}
}

// Apply inserts the transaction and moves the owner's balance in one database
// transaction. The balance change is a conditional in-place update, so two
// concurrent withdrawals cannot both pass the sufficiency check: the losing
// update matches zero rows and the whole transaction rolls back, leaving no
// orphaned ledger entry.
func (r *TransactionRepository) Apply(ctx context.Context, txn *entity.Transaction) (int64, error) {
	r.logger.Debug("Applying transaction", map[string]any{
		"transaction_id": txn.TransactionID,
		"user_id":        txn.OwnerID,
		"type":           string(txn.Type),
		"amount":         txn.Amount,
	})

	var newBalance int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := r.timeProvider.Now()

		update := tx.Model(&model.User{}).Where("public_id = ?", txn.OwnerID)
		if txn.IsDebit() {
			update = update.Where("balance >= ?", txn.AmountInCents)
		}

		result := update.Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", txn.BalanceDelta()),
			"updated_at": now,
		})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			// Distinguish a missing owner from insufficient funds
			var count int64
			if err := tx.Model(&model.User{}).Where("public_id = ?", txn.OwnerID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return errs.ErrUserNotFound
			}
			return errs.ErrInsufficientBalance
		}

		txnModel := model.Transaction{
			TransactionID: txn.TransactionID,
			OwnerID:       txn.OwnerID,
			Type:          string(txn.Type),
			Status:        string(txn.Status),
			Amount:        txn.Amount,
			AmountInCents: txn.AmountInCents,
			CreatedAt:     txn.Timestamp,
		}
		if err := tx.Create(&txnModel).Error; err != nil {
			if r.errorMapper.IsDuplicateKeyError(err) {
				return errs.ErrDuplicateTransaction
			}
			return err
		}
		txn.ID = txnModel.ID

		var owner model.User
		if err := tx.Where("public_id = ?", txn.OwnerID).First(&owner).Error; err != nil {
			return err
		}
		newBalance = owner.Balance

		return nil
	})

	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) || errors.Is(err, errs.ErrInsufficientBalance) {
			r.logger.Warn("Transaction rejected", map[string]any{
				"transaction_id": txn.TransactionID,
				"user_id":        txn.OwnerID,
				"reason":         err.Error(),
			})
			return 0, err
		}
		if errors.Is(err, errs.ErrDuplicateTransaction) {
			return 0, err
		}
		r.logger.Error("Database error during transaction apply", map[string]any{
			"transaction_id": txn.TransactionID,
			"user_id":        txn.OwnerID,
			"error":          err.Error(),
		})
		return 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	r.logger.Info("Transaction applied", map[string]any{
		"transaction_id": txn.TransactionID,
		"user_id":        txn.OwnerID,
		"type":           string(txn.Type),
		"amount":         txn.Amount,
		"new_balance":    entity.AmountInCentsToString(newBalance),
	})

	return newBalance, nil
}

// GetByTransactionID retrieves a transaction by its public identifier
func (r *TransactionRepository) GetByTransactionID(ctx context.Context, transactionID string) (*entity.Transaction, error) {
	var txnModel model.Transaction
	result := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&txnModel)

	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			r.logger.Error("Database error when getting transaction", map[string]any{
				"transaction_id": transactionID,
				"error":          result.Error.Error(),
			})
		}
		return nil, r.errorMapper.MapEntityNotFoundError(result.Error, database.EntityTypeTransaction)
	}

	return transactionModelToEntity(&txnModel), nil
}

// ListByOwner returns all transactions owned by the given user, newest first
func (r *TransactionRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Transaction, error) {
	var txnModels []model.Transaction
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&txnModels)

	if result.Error != nil {
		r.logger.Error("Database error when listing transactions", map[string]any{
			"user_id": ownerID,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	txns := make([]*entity.Transaction, 0, len(txnModels))
	for i := range txnModels {
		txns = append(txns, transactionModelToEntity(&txnModels[i]))
	}

	return txns, nil
}

// UpdateStatus overwrites the status of the given transaction
func (r *TransactionRepository) UpdateStatus(ctx context.Context, transactionID string, status entity.TransactionStatus) error {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("transaction_id = ?", transactionID).
		Update("status", string(status))

	if result.Error != nil {
		r.logger.Error("Failed to update transaction status", map[string]any{
			"transaction_id": transactionID,
			"error":          result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}

	r.logger.Debug("Transaction status updated", map[string]any{
		"transaction_id": transactionID,
		"status":         string(status),
	})
	return nil
}
