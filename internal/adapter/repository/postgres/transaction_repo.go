package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/simaogato/finpulse-backend/internal/domain"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

// List retrieves all transactions in entry order
func (r *transactionRepository) List(ctx context.Context) ([]domain.Transaction, error) {
	query := `
		SELECT id, description, amount, date, type, category
		FROM transactions
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		var tx domain.Transaction
		var description, txType, category sql.NullString
		var amount decimal.NullDecimal
		var date sql.NullTime

		if err := rows.Scan(&tx.ID, &description, &amount, &date, &txType, &category); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		tx.Description = stringOrEmpty(description)
		tx.Amount = decimalOrZero(amount)
		if date.Valid {
			tx.Date = domain.DateOf(date.Time)
		}
		tx.Type = domain.TransactionType(stringOrEmpty(txType))
		tx.Category = stringOrEmpty(category)

		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// Create creates a new transaction and stores the new spent of the budgets it
// touched, all in one database transaction
func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction, budgets []domain.Budget) error {
	// Start a database transaction
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	insertTxQuery := `
		INSERT INTO transactions (id, description, amount, date, type, category)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = dbTx.ExecContext(ctx, insertTxQuery,
		tx.ID,
		tx.Description,
		tx.Amount.String(),
		tx.Date,
		string(tx.Type),
		tx.Category,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	updateSpentQuery := `
		UPDATE budgets SET spent = $2 WHERE id = $1
	`

	for _, budget := range budgets {
		_, err = dbTx.ExecContext(ctx, updateSpentQuery, budget.ID, budget.Spent.String())
		if err != nil {
			return fmt.Errorf("failed to update budget spent: %w", err)
		}
	}

	// Commit the transaction
	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
