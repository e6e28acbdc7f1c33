package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/simaogato/finpulse-backend/internal/domain"
)

// budgetRepository implements domain.BudgetRepository
type budgetRepository struct {
	db *DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *DB) domain.BudgetRepository {
	return &budgetRepository{db: db}
}

// List retrieves all budgets in entry order
func (r *budgetRepository) List(ctx context.Context) ([]domain.Budget, error) {
	query := `
		SELECT id, category, limit_amount, spent, month
		FROM budgets
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	budgets := make([]domain.Budget, 0)
	for rows.Next() {
		var budget domain.Budget
		var category, month sql.NullString
		var limit, spent decimal.NullDecimal

		if err := rows.Scan(&budget.ID, &category, &limit, &spent, &month); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}

		budget.Category = stringOrEmpty(category)
		budget.Limit = decimalOrZero(limit)
		budget.Spent = decimalOrZero(spent)
		budget.Month = stringOrEmpty(month)

		budgets = append(budgets, budget)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}

	return budgets, nil
}

// Create creates a new budget
func (r *budgetRepository) Create(ctx context.Context, budget *domain.Budget) error {
	query := `
		INSERT INTO budgets (id, category, limit_amount, spent, month)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		budget.ID,
		budget.Category,
		budget.Limit.String(),
		budget.Spent.String(),
		budget.Month,
	)
	if err != nil {
		return fmt.Errorf("failed to insert budget: %w", err)
	}

	return nil
}
