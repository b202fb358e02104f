package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/roozbehm/ledger-service/internal/domain/entity"
	errs "github.com/roozbehm/ledger-service/internal/domain/error"
	coreport "github.com/roozbehm/ledger-service/internal/domain/port/core"
	"github.com/roozbehm/ledger-service/internal/infrastructure/adapter/database"
	"github.com/roozbehm/ledger-service/internal/infrastructure/adapter/logger"
	timeadapter "github.com/roozbehm/ledger-service/internal/infrastructure/adapter/time"
)

// newTestDB opens a private in-memory sqlite database. The pool is capped at
// one connection so every query sees the same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db, logger.NewNoopLogger()))
	return db
}

func seedUser(t *testing.T, repo *UserRepository, tp coreport.TimeProvider, publicID, email, balance string) *entity.User {
	t.Helper()

	user, err := entity.NewUser(publicID, "alice", email, "stored-hash", balance, tp)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func newTransaction(t *testing.T, tp coreport.TimeProvider, transactionID, owner, txType, amount string) *entity.Transaction {
	t.Helper()

	txn, err := entity.NewTransaction(transactionID, owner, txType, amount, tp)
	require.NoError(t, err)
	return txn
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	tp := timeadapter.NewRealTimeProvider()

	t.Run("Create and fetch by email", func(t *testing.T) {
		repo := NewUserRepository(newTestDB(t), tp, logger.NewNoopLogger())

		created := seedUser(t, repo, tp, "u-alice", "alice@example.com", "100.00")
		assert.NotZero(t, created.ID)

		fetched, err := repo.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u-alice", fetched.PublicID)
		assert.Equal(t, "alice", fetched.Username)
		assert.Equal(t, "stored-hash", fetched.PasswordHash)
		assert.Equal(t, int64(10000), fetched.Balance())
	})

	t.Run("Fetch by public ID", func(t *testing.T) {
		repo := NewUserRepository(newTestDB(t), tp, logger.NewNoopLogger())
		seedUser(t, repo, tp, "u-alice", "alice@example.com", "100.00")

		fetched, err := repo.GetByPublicID(ctx, "u-alice")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", fetched.Email)
	})

	t.Run("Unknown email", func(t *testing.T) {
		repo := NewUserRepository(newTestDB(t), tp, logger.NewNoopLogger())

		_, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("Unknown public ID", func(t *testing.T) {
		repo := NewUserRepository(newTestDB(t), tp, logger.NewNoopLogger())

		_, err := repo.GetByPublicID(ctx, "u-ghost")
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("Duplicate email is rejected", func(t *testing.T) {
		repo := NewUserRepository(newTestDB(t), tp, logger.NewNoopLogger())
		seedUser(t, repo, tp, "u-alice", "alice@example.com", "100.00")

		dup, err := entity.NewUser("u-other", "alice2", "alice@example.com", "h", "0", tp)
		require.NoError(t, err)

		err = repo.Create(ctx, dup)
		assert.ErrorIs(t, err, errs.ErrDuplicateUser)
	})
}

func TestTransactionRepositoryApply(t *testing.T) {
	ctx := context.Background()
	tp := timeadapter.NewRealTimeProvider()

	t.Run("Deposit moves balance and writes a row", func(t *testing.T) {
		db := newTestDB(t)
		users := NewUserRepository(db, tp, logger.NewNoopLogger())
		transactions := NewTransactionRepository(db, tp, logger.NewNoopLogger())
		seedUser(t, users, tp, "u-alice", "alice@example.com", "100.00")

		txn := newTransaction(t, tp, "tx-1", "u-alice", "DEPOSIT", "30.00")
		newBalance, err := transactions.Apply(ctx, txn)

		require.NoError(t, err)
		assert.Equal(t, int64(13000), newBalance)
		assert.NotZero(t, txn.ID)

		owner, err := users.GetByPublicID(ctx, "u-alice")
		require.NoError(t, err)
		assert.Equal(t, int64(13000), owner.Balance())

		stored, err := transactions.GetByTransactionID(ctx, "tx-1")
		require.NoError(t, err)
		assert.Equal(t, entity.TypeDeposit, stored.Type)
		assert.Equal(t, entity.StatusPending, stored.Status)
		assert.Equal(t, "30.00", stored.Amount)
	})

	t.Run("Withdrawal moves balance down", func(t *testing.T) {
		db := newTestDB(t)
		users := NewUserRepository(db, tp, logger.NewNoopLogger())
		transactions := NewTransactionRepository(db, tp, logger.NewNoopLogger())
		seedUser(t, users, tp, "u-alice", "alice@example.com", "100.00")

		txn := newTransaction(t, tp, "tx-1", "u-alice", "WITHDRAWAL", "30.00")
		newBalance, err := transactions.Apply(ctx, txn)

		require.NoError(t, err)
		assert.Equal(t, int64(7000), newBalance)
	})

	t.Run("Overdrawing withdrawal writes nothing", func(t *testing.T) {
		db := newTestDB(t)
		users := NewUserRepository(db, tp, logger.NewNoopLogger())
		transactions := NewTransactionRepository(db, tp, logger.NewNoopLogger())
		seedUser(t, users, tp, "u-alice", "alice@example.com", "70.00")

		txn := newTransaction(t, tp, "tx-1", "u-alice", "WITHDRAWAL", "100.00")
		_, err := transactions.Apply(ctx, txn)

		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)

		// Balance untouched, no ledger row written
		owner, err := users.GetByPublicID(ctx, "u-alice")
		require.NoError(t, err)
		assert.Equal(t, int64(7000), owner.Balance())

		_, err = transactions.GetByTransactionID(ctx, "tx-1")
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})

	t.Run("Withdrawal of exact balance succeeds", func(t *testing.T) {
		db := newTestDB(t)
		users := NewUserRepository(db, tp, logger.NewNoopLogger())
		transactions := NewTransactionRepository(db, tp, logger.NewNoopLogger())
		seedUser(t, users, tp, "u-alice", "alice@example.com", "100.00")

		txn := newTransaction(t, tp, "tx-1", "u-alice", "WITHDRAWAL", "100.00")
		newBalance, err := transactions.Apply(ctx, txn)

		require.NoError(t, err)
		assert.Equal(t, int64(0), newBalance)
	})

	t.Run("Unknown owner", func(t *testing.T) {
		db := newTestDB(t)
		transactions := NewTransactionRepository(db, tp, logger.NewNoopLogger())

		txn := newTransaction(t, tp, "tx-1", "u-ghost", "DEPOSIT", "30.00")
		_, err := transactions.Apply(ctx, txn)

		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("Duplicate transaction ID rolls everything back", func(t *testing.T) {
		db := newTestDB(t)
		users := NewUserRepository(db, tp, logger.NewNoopLogger())
		transactions := NewTransactionRepository(db, tp, logger.NewNoopLogger())
		seedUser(t, users, tp, "u-alice", "alice@example.com", "100.00")

		first := newTransaction(t, tp, "tx-1", "u-alice", "DEPOSIT", "10.00")
		_, err := transactions.Apply(ctx, first)
		require.NoError(t, err)

		second := newTransaction(t, tp, "tx-1", "u-alice", "DEPOSIT", "10.00")
		_, err = transactions.Apply(ctx, second)
		assert.ErrorIs(t, err, errs.ErrDuplicateTransaction)

		// The rejected duplicate must not have moved the balance
		owner, err := users.GetByPublicID(ctx, "u-alice")
		require.NoError(t, err)
		assert.Equal(t, int64(11000), owner.Balance())
	})
}

func TestTransactionRepositoryQueries(t *testing.T) {
	ctx := context.Background()
	tp := timeadapter.NewRealTimeProvider()

	t.Run("ListByOwner returns newest first", func(t *testing.T) {
		db := newTestDB(t)
		users := NewUserRepository(db, tp, logger.NewNoopLogger())
		transactions := NewTransactionRepository(db, tp, logger.NewNoopLogger())
		seedUser(t, users, tp, "u-alice", "alice@example.com", "100.00")
		seedUser(t, users, tp, "u-bob", "bob@example.com", "100.00")

		base := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
		for i, id := range []string{"tx-old", "tx-mid", "tx-new"} {
			txn := newTransaction(t, tp, id, "u-alice", "DEPOSIT", "1.00")
			txn.Timestamp = base.Add(time.Duration(i) * time.Minute)
			_, err := transactions.Apply(ctx, txn)
			require.NoError(t, err)
		}
		other := newTransaction(t, tp, "tx-bob", "u-bob", "DEPOSIT", "1.00")
		_, err := transactions.Apply(ctx, other)
		require.NoError(t, err)

		txns, err := transactions.ListByOwner(ctx, "u-alice")
		require.NoError(t, err)
		require.Len(t, txns, 3)
		assert.Equal(t, "tx-new", txns[0].TransactionID)
		assert.Equal(t, "tx-mid", txns[1].TransactionID)
		assert.Equal(t, "tx-old", txns[2].TransactionID)
	})

	t.Run("ListByOwner with no history is empty", func(t *testing.T) {
		db := newTestDB(t)
		transactions := NewTransactionRepository(db, tp, logger.NewNoopLogger())

		txns, err := transactions.ListByOwner(ctx, "u-nobody")
		require.NoError(t, err)
		assert.Empty(t, txns)
	})

	t.Run("GetByTransactionID unknown", func(t *testing.T) {
		db := newTestDB(t)
		transactions := NewTransactionRepository(db, tp, logger.NewNoopLogger())

		_, err := transactions.GetByTransactionID(ctx, "tx-ghost")
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})

	t.Run("UpdateStatus overwrites the status", func(t *testing.T) {
		db := newTestDB(t)
		users := NewUserRepository(db, tp, logger.NewNoopLogger())
		transactions := NewTransactionRepository(db, tp, logger.NewNoopLogger())
		seedUser(t, users, tp, "u-alice", "alice@example.com", "100.00")

		txn := newTransaction(t, tp, "tx-1", "u-alice", "DEPOSIT", "10.00")
		_, err := transactions.Apply(ctx, txn)
		require.NoError(t, err)

		require.NoError(t, transactions.UpdateStatus(ctx, "tx-1", entity.StatusCompleted))

		stored, err := transactions.GetByTransactionID(ctx, "tx-1")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusCompleted, stored.Status)
	})

	t.Run("UpdateStatus unknown transaction", func(t *testing.T) {
		db := newTestDB(t)
		transactions := NewTransactionRepository(db, tp, logger.NewNoopLogger())

		err := transactions.UpdateStatus(ctx, "tx-ghost", entity.StatusFailed)
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})
}
