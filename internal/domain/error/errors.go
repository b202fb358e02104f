package error

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation          = 4000
	CodeInsufficientBalance = 4001
	CodeInvalidAmount       = 4002
	CodeDuplicateUser       = 4003
	CodeBadCredentials      = 4004
	CodeMissingToken        = 4010
	CodeInvalidToken        = 4011
	CodeUnauthorized        = 4030
	CodeUserNotFound        = 4040
	CodeTransactionNotFound = 4041
	CodeNotFound            = 4042
	CodeConstraintViolation = 4050

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrValidation is returned when the request carries bad or missing input
	ErrValidation = errors.New("invalid request")

	// ErrInvalidAmount is returned when the amount format is invalid
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when the amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidTransactionType is returned when the transaction type is not DEPOSIT or WITHDRAWAL
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionStatus is returned when the status is not a recognized value
	ErrInvalidTransactionStatus = errors.New("invalid transaction status")

	// ErrInsufficientBalance is returned when a user has insufficient funds for a withdrawal
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrDuplicateUser is returned when registering an email that already exists
	ErrDuplicateUser = errors.New("user already exists")

	// ErrBadCredentials is returned when the supplied password does not verify
	ErrBadCredentials = errors.New("incorrect password")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrMissingToken is returned when the Authorization header is absent or malformed
	ErrMissingToken = errors.New("missing bearer token")

	// ErrInvalidToken is returned when token verification fails
	ErrInvalidToken = errors.New("invalid bearer token")

	// ErrUnauthorized is returned when the caller is not allowed to act on a resource
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDuplicateTransaction is returned when a transaction with the same ID already exists
	ErrDuplicateTransaction = errors.New("transaction with this ID already exists")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidTransactionType),
		errors.Is(err, ErrInvalidTransactionStatus):
		return CodeValidation
	case errors.Is(err, ErrDuplicateUser):
		return CodeDuplicateUser
	case errors.Is(err, ErrBadCredentials):
		return CodeBadCredentials
	case errors.Is(err, ErrMissingToken):
		return CodeMissingToken
	case errors.Is(err, ErrInvalidToken):
		return CodeInvalidToken
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrConstraintViolation),
		errors.Is(err, ErrDuplicateTransaction):
		return CodeConstraintViolation
	default:
		return CodeInternalServer
	}
}

// HTTPStatus maps domain errors to HTTP status codes.
// Authentication and credential failures surface as 401 and insufficient
// balance as 422, keeping the service's published status contract.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrNegativeAmount),
		errors.Is(err, ErrInvalidTransactionType),
		errors.Is(err, ErrInvalidTransactionStatus):
		return http.StatusBadRequest
	case errors.Is(err, ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrDuplicateUser),
		errors.Is(err, ErrBadCredentials),
		errors.Is(err, ErrMissingToken),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrTransactionNotFound),
		errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConstraintViolation),
		errors.Is(err, ErrDuplicateTransaction):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// BalanceError represents an error related to balance operations
type BalanceError struct {
	UserID         string
	Amount         string
	CurrentBalance string
	Err            error
}

// NewInsufficientBalanceError builds a BalanceError wrapping ErrInsufficientBalance
func NewInsufficientBalanceError(userID, amount, currentBalance string) *BalanceError {
	return &BalanceError{
		UserID:         userID,
		Amount:         amount,
		CurrentBalance: currentBalance,
		Err:            ErrInsufficientBalance,
	}
}

// Error implements the error interface for BalanceError
func (e *BalanceError) Error() string {
	return fmt.Sprintf("balance operation failed for user %s (current balance: %s, amount: %s): %v",
		e.UserID, e.CurrentBalance, e.Amount, e.Err)
}

// Unwrap returns the underlying error
func (e *BalanceError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *BalanceError) LogFields() map[string]interface{} {
	return map[string]interface{}{
		"error_type":      "balance_error",
		"user_id":         e.UserID,
		"amount":          e.Amount,
		"current_balance": e.CurrentBalance,
		"error":           e.Err.Error(),
		"error_code":      ErrorCode(e.Err),
	}
}
