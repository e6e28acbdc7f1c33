package domain

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget represents a spending ceiling for one category
// Spent is a running total, incremented when a matching expense is recorded
type Budget struct {
	ID       uuid.UUID
	Category string
	Limit    decimal.Decimal
	Spent    decimal.Decimal
	Month    string // Informational label (YYYY-MM), not used for matching
}

// EntityID returns the budget identifier
func (b Budget) EntityID() uuid.UUID { return b.ID }

// NewBudgetInput represents a budget as submitted by the user, before it has an ID
type NewBudgetInput struct {
	Category string
	Limit    decimal.Decimal
	Month    string
}

// Validate ensures the input can be handed to the aggregator
func (in NewBudgetInput) Validate() error {
	if strings.TrimSpace(in.Category) == "" {
		return invalid("budget category cannot be empty")
	}
	if in.Limit.LessThanOrEqual(decimal.Zero) {
		return invalid("budget limit must be positive")
	}
	if exceedsMoneyScale(in.Limit) {
		return invalid("budget limit cannot have more than %d decimal places", MoneyScale)
	}
	return nil
}

// Normalize trims the text fields, so the category matches trimmed
// transaction categories exactly
func (in NewBudgetInput) Normalize() NewBudgetInput {
	in.Category = strings.TrimSpace(in.Category)
	in.Month = strings.TrimSpace(in.Month)
	return in
}
