package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roozbehm/ledger-service/internal/domain/entity"
	domainerr "github.com/roozbehm/ledger-service/internal/domain/error"
	coreport "github.com/roozbehm/ledger-service/internal/domain/port/core"
	"github.com/roozbehm/ledger-service/internal/domain/usecase/account"
	"github.com/roozbehm/ledger-service/internal/infrastructure/adapter/api/dto"
	"github.com/roozbehm/ledger-service/internal/infrastructure/adapter/api/middleware"
)

// AccountHandler handles registration, login and account lookup requests
type AccountHandler struct {
	accounts *account.UseCase
	logger   coreport.Logger
}

// NewAccountHandler creates a new account handler instance
func NewAccountHandler(accounts *account.UseCase, logger coreport.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		logger:   logger,
	}
}

// registerStatus maps register/login failures to HTTP statuses. Client-side
// failures on these routes surface as 401, keeping the published contract.
func registerStatus(err error) int {
	switch {
	case errors.Is(err, domainerr.ErrValidation),
		errors.Is(err, domainerr.ErrInvalidAmount),
		errors.Is(err, domainerr.ErrNegativeAmount),
		errors.Is(err, domainerr.ErrDuplicateUser),
		errors.Is(err, domainerr.ErrUserNotFound),
		errors.Is(err, domainerr.ErrBadCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Register handles the POST /register endpoint
func (h *AccountHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Please enter valid user details",
		})
		return
	}

	balance := req.Balance.String()
	if balance == "" {
		balance = "0"
	}

	user, err := h.accounts.Register(c.Request.Context(), account.RegisterRequest{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		InitialBalance: balance,
	})
	if err != nil {
		c.JSON(registerStatus(err), dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: "User successfully registered",
		UserID:  user.PublicID,
	})
}

// Login handles the POST /login endpoint
func (h *AccountHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Please enter valid credentials",
		})
		return
	}

	result, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(registerStatus(err), dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, dto.LoginResponse{
		Token:  result.Token,
		UserID: result.UserID,
	})
}

// GetAccount handles the GET /user/account endpoint
func (h *AccountHandler) GetAccount(c *gin.Context) {
	callerID := middleware.CallerID(c)

	user, err := h.accounts.GetAccount(c.Request.Context(), callerID)
	if err != nil {
		c.JSON(domainerr.HTTPStatus(err), dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, accountToResponse(user))
}

// accountToResponse maps a user entity to its API shape, omitting the password hash
func accountToResponse(user *entity.User) dto.AccountResponse {
	return dto.AccountResponse{
		UserID:   user.PublicID,
		Username: user.Username,
		Email:    user.Email,
		Balance:  user.GetBalance(),
	}
}
