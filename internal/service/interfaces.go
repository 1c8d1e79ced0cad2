// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/amitksingh0880/spend-wise-sub000/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Type      model.TransactionType // empty means all types
	Category  string
	Limit     int
}

// Storage defines the contract for the persistence layer.
type Storage interface {
	// Migrate brings the schema up to the expected version.
	Migrate(ctx context.Context) error

	// Transaction operations.
	CreateTransaction(ctx context.Context, txn *model.Transaction) (*model.Transaction, error)
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)

	// Category operations.
	GetCategories(ctx context.Context) ([]model.Category, error)

	Close() error
}
