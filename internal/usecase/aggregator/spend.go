package aggregator

import (
	"github.com/shopspring/decimal"
	"github.com/simaogato/finpulse-backend/internal/domain"
)

// CategoryAmount is the expense total of one category
type CategoryAmount struct {
	Category         string
	Amount           decimal.Decimal
	PercentOfExpense decimal.Decimal
}

// CategorySpend is the expense breakdown by category
// Entries keep the order in which each category first appeared
type CategorySpend struct {
	Entries      []CategoryAmount
	TotalExpense decimal.Decimal
}

// ComputeCategorySpend groups expense transactions by category and sums their amounts
// Income is ignored and categories without any expense are absent from the result.
func ComputeCategorySpend(transactions []domain.Transaction) CategorySpend {
	index := make(map[string]int)
	entries := make([]CategoryAmount, 0)
	total := decimal.Zero

	for _, tx := range transactions {
		if !tx.IsExpense() {
			continue
		}
		total = total.Add(tx.Amount)

		i, ok := index[tx.Category]
		if !ok {
			i = len(entries)
			index[tx.Category] = i
			entries = append(entries, CategoryAmount{Category: tx.Category, Amount: decimal.Zero})
		}
		entries[i].Amount = entries[i].Amount.Add(tx.Amount)
	}

	for i := range entries {
		entries[i].PercentOfExpense = percentOf(entries[i].Amount, total)
	}

	return CategorySpend{Entries: entries, TotalExpense: total}
}

// Map returns the breakdown as category -> total
func (s CategorySpend) Map() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(s.Entries))
	for _, e := range s.Entries {
		m[e.Category] = e.Amount
	}
	return m
}
