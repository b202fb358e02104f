package entity

import (
	"testing"
	"time"

	errs "github.com/roozbehm/ledger-service/internal/domain/error"
	coremocks "github.com/roozbehm/ledger-service/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionType(t *testing.T) {
	t.Run("Valid types", func(t *testing.T) {
		for _, s := range []string{"DEPOSIT", "WITHDRAWAL"} {
			parsed, err := ParseTransactionType(s)
			assert.NoError(t, err)
			assert.Equal(t, TransactionType(s), parsed)
		}
	})

	t.Run("Invalid types", func(t *testing.T) {
		for _, s := range []string{"", "deposit", "TRANSFER", "withdrawal "} {
			_, err := ParseTransactionType(s)
			assert.ErrorIs(t, err, errs.ErrInvalidTransactionType)
		}
	})
}

func TestParseTransactionStatus(t *testing.T) {
	t.Run("Valid statuses", func(t *testing.T) {
		for _, s := range []string{"PENDING", "COMPLETED", "FAILED"} {
			parsed, err := ParseTransactionStatus(s)
			assert.NoError(t, err)
			assert.Equal(t, TransactionStatus(s), parsed)
		}
	})

	t.Run("Invalid statuses", func(t *testing.T) {
		for _, s := range []string{"", "pending", "DONE", "CANCELLED"} {
			_, err := ParseTransactionStatus(s)
			assert.ErrorIs(t, err, errs.ErrInvalidTransactionStatus)
		}
	})
}

func TestNewTransaction(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.On("Now").Return(fixedTime).Maybe()

	t.Run("Valid transaction creation", func(t *testing.T) {
		tx, err := NewTransaction(
			"tx123",
			"u-1",
			string(TypeDeposit),
			"100.00",
			mockTime,
		)

		require.NoError(t, err)
		assert.Equal(t, "tx123", tx.TransactionID)
		assert.Equal(t, "u-1", tx.OwnerID)
		assert.Equal(t, TypeDeposit, tx.Type)
		assert.Equal(t, StatusPending, tx.Status)
		assert.Equal(t, "100.00", tx.Amount)
		assert.Equal(t, int64(10000), tx.AmountInCents)
		assert.Equal(t, fixedTime, tx.Timestamp)
	})

	t.Run("Amount is normalized to two decimal places", func(t *testing.T) {
		tx, err := NewTransaction("tx123", "u-1", string(TypeDeposit), "30", mockTime)

		require.NoError(t, err)
		assert.Equal(t, "30.00", tx.Amount)
		assert.Equal(t, int64(3000), tx.AmountInCents)
	})

	t.Run("Empty transactionID", func(t *testing.T) {
		tx, err := NewTransaction("", "u-1", string(TypeDeposit), "100.00", mockTime)

		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.Nil(t, tx)
	})

	t.Run("Empty owner", func(t *testing.T) {
		tx, err := NewTransaction("tx123", "", string(TypeDeposit), "100.00", mockTime)

		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.Nil(t, tx)
	})

	t.Run("Invalid type", func(t *testing.T) {
		tx, err := NewTransaction("tx123", "u-1", "TRANSFER", "100.00", mockTime)

		assert.ErrorIs(t, err, errs.ErrInvalidTransactionType)
		assert.Nil(t, tx)
	})

	t.Run("Zero amount", func(t *testing.T) {
		tx, err := NewTransaction("tx123", "u-1", string(TypeDeposit), "0.00", mockTime)

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		assert.Nil(t, tx)
	})

	t.Run("Negative amount", func(t *testing.T) {
		tx, err := NewTransaction("tx123", "u-1", string(TypeWithdrawal), "-5.00", mockTime)

		assert.ErrorIs(t, err, errs.ErrNegativeAmount)
		assert.Nil(t, tx)
	})
}

func TestTransactionBalanceDelta(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.On("Now").Return(fixedTime).Maybe()

	deposit, err := NewTransaction("tx1", "u-1", string(TypeDeposit), "25.00", mockTime)
	require.NoError(t, err)
	withdrawal, err := NewTransaction("tx2", "u-1", string(TypeWithdrawal), "25.00", mockTime)
	require.NoError(t, err)

	assert.True(t, deposit.IsCredit())
	assert.False(t, deposit.IsDebit())
	assert.Equal(t, int64(2500), deposit.BalanceDelta())

	assert.True(t, withdrawal.IsDebit())
	assert.False(t, withdrawal.IsCredit())
	assert.Equal(t, int64(-2500), withdrawal.BalanceDelta())
}
