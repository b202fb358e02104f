package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/roozbehm/ledger-service/internal/domain/entity"
	errs "github.com/roozbehm/ledger-service/internal/domain/error"
	coreport "github.com/roozbehm/ledger-service/internal/domain/port/core"
	"github.com/roozbehm/ledger-service/internal/domain/port/persistence"
	"github.com/roozbehm/ledger-service/internal/domain/port/security"
)

// UseCase implements registration, login and account lookup
type UseCase struct {
	users        persistence.UserRepository
	hasher       security.PasswordHasher
	tokens       security.TokenService
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUseCase creates a new account use case instance
func NewUseCase(
	users persistence.UserRepository,
	hasher security.PasswordHasher,
	tokens security.TokenService,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UseCase {
	return &UseCase{
		users:        users,
		hasher:       hasher,
		tokens:       tokens,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// RegisterRequest carries the input for Register
type RegisterRequest struct {
	Username       string
	Email          string
	Password       string
	InitialBalance string
}

// Register creates a new user with a freshly generated public identifier.
// No token is issued; the caller must log in separately.
func (u *UseCase) Register(ctx context.Context, req RegisterRequest) (*entity.User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, fmt.Errorf("%w: username is required", errs.ErrValidation)
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", errs.ErrValidation)
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password is required", errs.ErrValidation)
	}

	// Check if the email is already registered
	_, err := u.users.GetByEmail(ctx, req.Email)
	if err == nil {
		u.logger.Warn("Registration attempt with existing email", map[string]any{
			"email": req.Email,
		})
		return nil, errs.ErrDuplicateUser
	}
	if !errors.Is(err, errs.ErrUserNotFound) {
		return nil, err
	}

	passwordHash, err := u.hasher.Hash(req.Password)
	if err != nil {
		u.logger.Error("Failed to hash password", map[string]any{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
	}

	user, err := entity.NewUser(uuid.NewString(), req.Username, req.Email, passwordHash, req.InitialBalance, u.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := u.users.Create(ctx, user); err != nil {
		u.logger.Error("Failed to create user", map[string]any{
			"email": req.Email,
			"error": err.Error(),
		})
		return nil, err
	}

	u.logger.Info("User registered", map[string]any{
		"userId":         user.PublicID,
		"username":       user.Username,
		"initialBalance": user.GetBalance(),
	})

	return user, nil
}

// LoginResult carries the outcome of a successful login
type LoginResult struct {
	Token  string
	UserID string
}

// Login verifies the credentials and issues a signed token embedding the
// user's public identifier.
func (u *UseCase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			u.logger.Warn("Login attempt for unknown email", map[string]any{
				"email": email,
			})
		}
		return nil, err
	}

	if !u.hasher.Verify(user.PasswordHash, password) {
		u.logger.Warn("Login attempt with wrong password", map[string]any{
			"userId": user.PublicID,
		})
		return nil, errs.ErrBadCredentials
	}

	token, err := u.tokens.Generate(user.PublicID)
	if err != nil {
		u.logger.Error("Failed to issue token", map[string]any{
			"userId": user.PublicID,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
	}

	u.logger.Info("User logged in", map[string]any{
		"userId": user.PublicID,
	})

	return &LoginResult{
		Token:  token,
		UserID: user.PublicID,
	}, nil
}

// GetAccount returns the authenticated caller's user record
func (u *UseCase) GetAccount(ctx context.Context, publicID string) (*entity.User, error) {
	user, err := u.users.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	return user, nil
}
