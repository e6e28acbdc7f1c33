package aggregator

import (
	"github.com/shopspring/decimal"
	"github.com/simaogato/finpulse-backend/internal/domain"
)

// RecordTransaction appends a new transaction and applies it to the budgets
// Logic:
//  1. Assign a fresh identifier and append (append-only, entry order is kept)
//  2. If the transaction is an expense with a category, add its amount to the
//     Spent of every budget with the same category
//  3. Budgets with another category are returned unchanged; an expense that
//     matches no budget is recorded but tracked nowhere
//
// The input slices are never modified. The returned budget slice shares no
// backing array with the input when at least one budget changed.
// Input must already be validated and normalized by the caller.
func RecordTransaction(
	transactions []domain.Transaction,
	budgets []domain.Budget,
	input domain.NewTransactionInput,
	newID IDGenerator,
) ([]domain.Transaction, []domain.Budget, domain.Transaction) {
	tx := domain.Transaction{
		ID:          newID(),
		Description: input.Description,
		Amount:      input.Amount,
		Date:        input.Date,
		Type:        input.Type,
		Category:    input.Category,
	}

	nextTransactions := appendCopy(transactions, tx)

	if !tx.IsExpense() || tx.Category == "" {
		return nextTransactions, budgets, tx
	}

	var nextBudgets []domain.Budget
	for i, budget := range budgets {
		if budget.Category != tx.Category {
			continue
		}
		if nextBudgets == nil {
			nextBudgets = make([]domain.Budget, len(budgets))
			copy(nextBudgets, budgets)
		}
		nextBudgets[i].Spent = budget.Spent.Add(tx.Amount)
	}
	if nextBudgets == nil {
		return nextTransactions, budgets, tx
	}

	return nextTransactions, nextBudgets, tx
}

// ChangedBudgets returns the budgets of next whose Spent differs from prev
// Both slices must come from the same RecordTransaction call.
func ChangedBudgets(prev, next []domain.Budget) []domain.Budget {
	changed := make([]domain.Budget, 0)
	for i := range next {
		if i >= len(prev) || !next[i].Spent.Equal(prev[i].Spent) {
			changed = append(changed, next[i])
		}
	}
	return changed
}

// AddAsset appends a new asset with a generated identifier
// An empty icon defaults to the first letter of the name.
func AddAsset(assets []domain.Asset, input domain.NewAssetInput, newID IDGenerator) ([]domain.Asset, domain.Asset) {
	icon := input.Icon
	if icon == "" {
		icon = domain.DefaultIcon(input.Name)
	}

	asset := domain.Asset{
		ID:     newID(),
		Name:   input.Name,
		Ticker: input.Ticker,
		Amount: input.Amount,
		Value:  input.Value,
		Change: input.Change,
		Icon:   icon,
	}

	return appendCopy(assets, asset), asset
}

// AddBudget appends a new budget with a generated identifier and nothing spent
// Transactions recorded before the budget existed are not applied to it.
func AddBudget(budgets []domain.Budget, input domain.NewBudgetInput, newID IDGenerator) ([]domain.Budget, domain.Budget) {
	budget := domain.Budget{
		ID:       newID(),
		Category: input.Category,
		Limit:    input.Limit,
		Spent:    decimal.Zero,
		Month:    input.Month,
	}

	return appendCopy(budgets, budget), budget
}

// appendCopy returns a new slice holding items followed by item
func appendCopy[T any](items []T, item T) []T {
	next := make([]T, len(items), len(items)+1)
	copy(next, items)
	return append(next, item)
}
