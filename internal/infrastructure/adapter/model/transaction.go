package model

import (
	"time"
)

// Transaction represents the database model for ledger transactions
type Transaction struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	TransactionID string    `gorm:"uniqueIndex;not null;size:64"`
	OwnerID       string    `gorm:"not null;index;size:64"` // public ID of the owning user
	Type          string    `gorm:"not null;size:50"`
	Status        string    `gorm:"not null;size:50"`
	Amount        string    `gorm:"not null;size:50"`
	AmountInCents int64     `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
