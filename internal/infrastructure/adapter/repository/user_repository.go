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

// UserRepository implements the persistence.UserRepository interface using GORM
type UserRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	errorMapper  *database.ErrorMapper
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
		errorMapper:  database.NewErrorMapper(),
	}
}

// userModelToEntity converts a user model to an entity
func userModelToEntity(userModel *model.User, timeProvider coreport.TimeProvider) (*entity.User, error) {
	user, err := entity.NewUser(
		userModel.PublicID,
		userModel.Username,
		userModel.Email,
		userModel.PasswordHash,
		entity.AmountInCentsToString(userModel.Balance),
		timeProvider,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build user entity: %s", errs.ErrInternalServer, err.Error())
	}

	user.ID = userModel.ID
	user.CreatedAt = userModel.CreatedAt
	user.UpdatedAt = userModel.UpdatedAt

	return user, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.logger.Debug("Creating new user", map[string]any{
		"user_id": user.PublicID,
		"email":   user.Email,
	})

	userModel := model.User{
		PublicID:     user.PublicID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Balance:      user.Balance(),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&userModel)

	if result.Error != nil {
		if r.errorMapper.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Duplicate user", map[string]any{
				"email": user.Email,
			})
			return errs.ErrDuplicateUser
		}

		r.logger.Error("Failed to create user", map[string]any{
			"user_id": user.PublicID,
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	user.ID = userModel.ID

	r.logger.Info("User created", map[string]any{
		"user_id": user.PublicID,
	})
	return nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&userModel)

	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			r.logger.Error("Database error when getting user by email", map[string]any{
				"error": result.Error.Error(),
			})
		}
		return nil, r.errorMapper.MapEntityNotFoundError(result.Error, database.EntityTypeUser)
	}

	return userModelToEntity(&userModel, r.timeProvider)
}

// GetByPublicID retrieves a user by public identifier
func (r *UserRepository) GetByPublicID(ctx context.Context, publicID string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&userModel)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			r.logger.Warn("User not found", map[string]any{
				"user_id": publicID,
			})
		} else {
			r.logger.Error("Database error when getting user", map[string]any{
				"user_id": publicID,
				"error":   result.Error.Error(),
			})
		}
		return nil, r.errorMapper.MapEntityNotFoundError(result.Error, database.EntityTypeUser)
	}

	return userModelToEntity(&userModel, r.timeProvider)
}
