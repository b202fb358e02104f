package persistence

import (
	"context"

	"github.com/roozbehm/ledger-service/internal/domain/entity"
)

// UserRepository defines data access operations for users
type UserRepository interface {
	// Create persists a new user. Returns ErrDuplicateUser when the email
	// is already registered.
	Create(ctx context.Context, user *entity.User) error

	// GetByEmail retrieves a user by email. Returns ErrUserNotFound when no
	// user matches.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// GetByPublicID retrieves a user by public identifier. Returns
	// ErrUserNotFound when no user matches.
	GetByPublicID(ctx context.Context, publicID string) (*entity.User, error)
}
