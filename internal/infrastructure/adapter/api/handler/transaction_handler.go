package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roozbehm/ledger-service/internal/domain/entity"
	domainerr "github.com/roozbehm/ledger-service/internal/domain/error"
	coreport "github.com/roozbehm/ledger-service/internal/domain/port/core"
	"github.com/roozbehm/ledger-service/internal/domain/usecase/ledger"
	"github.com/roozbehm/ledger-service/internal/infrastructure/adapter/api/dto"
	"github.com/roozbehm/ledger-service/internal/infrastructure/adapter/api/middleware"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	ledgerService *ledger.Service
	logger        coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(ledgerService *ledger.Service, logger coreport.Logger) *TransactionHandler {
	return &TransactionHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// CreateTransaction handles the POST /api/transactions endpoint
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid transaction request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	result, err := h.ledgerService.CreateTransaction(c.Request.Context(), ledger.CreateTransactionRequest{
		OwnerID: req.User,
		Type:    req.TransactionType,
		Amount:  req.Amount.String(),
	})
	if err != nil {
		c.JSON(domainerr.HTTPStatus(err), dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, dto.CreateTransactionResponse{
		Message:       "Transaction successfully done",
		TransactionID: result.TransactionID,
		ResultBalance: result.ResultBalance,
	})
}

// ListTransactions handles the GET /api/transactions/:id endpoint,
// where :id is the owning user's identifier.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	ownerID := c.Param("id")

	txns, err := h.ledgerService.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(domainerr.HTTPStatus(err), dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.TransactionListResponse{
		Transactions: transactionsToResponse(txns),
	})
}

// GetTransaction handles the GET /api/transaction/:id endpoint,
// where :id is the transaction identifier.
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	transactionID := c.Param("id")
	callerID := middleware.CallerID(c)

	txn, err := h.ledgerService.GetTransaction(c.Request.Context(), transactionID, callerID)
	if err != nil {
		c.JSON(domainerr.HTTPStatus(err), dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, transactionsToResponse([]*entity.Transaction{txn}))
}

// UpdateStatus handles the PUT /api/transactions/:id endpoint,
// where :id is the transaction identifier.
func (h *TransactionHandler) UpdateStatus(c *gin.Context) {
	transactionID := c.Param("id")
	callerID := middleware.CallerID(c)

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	if err := h.ledgerService.UpdateStatus(c.Request.Context(), transactionID, req.Status, callerID); err != nil {
		c.JSON(domainerr.HTTPStatus(err), dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully status updated"})
}

// transactionsToResponse maps transaction entities to their API shape
func transactionsToResponse(txns []*entity.Transaction) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		out = append(out, dto.TransactionResponse{
			TransactionID: txn.TransactionID,
			Amount:        txn.Amount,
			Type:          string(txn.Type),
			Status:        string(txn.Status),
			User:          txn.OwnerID,
			Timestamp:     txn.Timestamp,
		})
	}
	return out
}
