package domain

import (
	"context"
)

// AssetRepository defines the interface for asset persistence operations
type AssetRepository interface {
	// List retrieves all assets in entry order
	List(ctx context.Context) ([]Asset, error)

	// Create creates a new asset
	Create(ctx context.Context, asset *Asset) error
}

// TransactionRepository defines the interface for transaction persistence operations
type TransactionRepository interface {
	// List retrieves all transactions in entry order
	List(ctx context.Context) ([]Transaction, error)

	// Create creates a new transaction
	// budgets holds the budgets whose spent changed because of tx; their new
	// spent values are stored in the same database transaction
	Create(ctx context.Context, tx *Transaction, budgets []Budget) error
}

// BudgetRepository defines the interface for budget persistence operations
type BudgetRepository interface {
	// List retrieves all budgets in entry order
	List(ctx context.Context) ([]Budget, error)

	// Create creates a new budget
	Create(ctx context.Context, budget *Budget) error
}
