package entity

import (
	"strings"
	"time"

	errs "github.com/roozbehm/ledger-service/internal/domain/error"
	coreport "github.com/roozbehm/ledger-service/internal/domain/port/core"
)

// User represents a registered account holder with a balance.
// ID is the database primary key and never leaves the persistence layer;
// PublicID is the externally visible identifier used in the API and in tokens.
type User struct {
	ID           uint64    // Internal primary key
	PublicID     string    // Externally visible unique identifier
	Username     string    // Display name
	Email        string    // Unique login email
	PasswordHash string    // One-way hash of the password
	balance      int64     // Balance stored in cents to avoid floating point precision issues (private)
	CreatedAt    time.Time // When the user was created
	UpdatedAt    time.Time // When the user was last updated
}

// NewUser creates a new user with the given public identifier and initial balance
func NewUser(publicID, username, email, passwordHash, initialBalance string, timeProvider coreport.TimeProvider) (*User, error) {
	if publicID == "" {
		return nil, errs.ErrValidation
	}
	if strings.TrimSpace(username) == "" {
		return nil, errs.ErrValidation
	}
	if strings.TrimSpace(email) == "" {
		return nil, errs.ErrValidation
	}
	if passwordHash == "" {
		return nil, errs.ErrValidation
	}

	balanceInCents, err := ValidateAndConvertAmount(initialBalance)
	if err != nil {
		return nil, err
	}

	now := timeProvider.Now()
	return &User{
		PublicID:     publicID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		balance:      balanceInCents,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Balance returns the current balance in cents (for internal use)
func (u *User) Balance() int64 {
	return u.balance
}

// GetBalance returns the balance as a string with 2 decimal places
func (u *User) GetBalance() string {
	return AmountInCentsToString(u.balance)
}

// SetBalance updates the balance directly (for internal use, like repositories)
func (u *User) SetBalance(balanceInCents int64, timeProvider coreport.TimeProvider) {
	u.balance = balanceInCents
	u.UpdatedAt = timeProvider.Now()
}

// CanWithdraw checks if the user has enough balance for a withdrawal
func (u *User) CanWithdraw(amountInCents int64) bool {
	return u.balance >= amountInCents
}

// ApplyDeposit adds the amount to the balance
func (u *User) ApplyDeposit(amountInCents int64, timeProvider coreport.TimeProvider) {
	u.balance += amountInCents
	u.UpdatedAt = timeProvider.Now()
}

// ApplyWithdrawal subtracts the amount from the balance if sufficient funds exist.
// Returns ErrInsufficientBalance otherwise.
func (u *User) ApplyWithdrawal(amountInCents int64, timeProvider coreport.TimeProvider) error {
	if !u.CanWithdraw(amountInCents) {
		return errs.ErrInsufficientBalance
	}

	u.balance -= amountInCents
	u.UpdatedAt = timeProvider.Now()
	return nil
}
