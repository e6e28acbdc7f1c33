package aggregator

import (
	"github.com/shopspring/decimal"
	"github.com/simaogato/finpulse-backend/internal/domain"
)

// BudgetStatus is the progress of a budget towards its limit
// ProgressPercent is the raw value and decides IsOverBudget.
// DisplayPercent is ProgressPercent clamped to 100 for progress bars only.
type BudgetStatus struct {
	ProgressPercent decimal.Decimal
	DisplayPercent  decimal.Decimal
	IsOverBudget    bool
	Remaining       decimal.Decimal
}

// ComputeBudgetStatus calculates how much of a budget has been consumed
// A budget with a zero limit reports 0% and is never over budget.
func ComputeBudgetStatus(budget domain.Budget) BudgetStatus {
	progress := percentOf(budget.Spent, budget.Limit)

	display := progress
	if display.GreaterThan(hundred) {
		display = hundred
	}

	remaining := budget.Limit.Sub(budget.Spent)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return BudgetStatus{
		ProgressPercent: progress,
		DisplayPercent:  display,
		IsOverBudget:    progress.GreaterThan(hundred),
		Remaining:       remaining,
	}
}
