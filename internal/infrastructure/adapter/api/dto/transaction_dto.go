package dto

import (
	"encoding/json"
	"time"
)

// CreateTransactionRequest represents the API request for creating a transaction
type CreateTransactionRequest struct {
	Amount          json.Number `json:"amount" binding:"required"`
	TransactionType string      `json:"transaction_type" binding:"required"`
	User            string      `json:"user" binding:"required"`
}

// CreateTransactionResponse represents the API response for a created transaction
type CreateTransactionResponse struct {
	Message       string `json:"message"`
	TransactionID string `json:"transactionId"`
	ResultBalance string `json:"resultBalance"`
}

// UpdateStatusRequest represents the API request for updating a transaction's status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// TransactionResponse represents a single transaction record in API responses
type TransactionResponse struct {
	TransactionID string    `json:"transaction_id"`
	Amount        string    `json:"amount"`
	Type          string    `json:"transaction_type"`
	Status        string    `json:"status"`
	User          string    `json:"user"`
	Timestamp     time.Time `json:"timestamp"`
}

// TransactionListResponse wraps a list of transactions
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
