package aggregator

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/finpulse-backend/internal/domain"
)

// AllocationSlice is the share of one asset in the total asset value
type AllocationSlice struct {
	AssetID uuid.UUID
	Ticker  string
	Value   decimal.Decimal
	Percent decimal.Decimal
}

// AssetAllocation returns one slice per asset, in snapshot order
// Percent is relative to the total asset value and is zero when that total is zero.
func AssetAllocation(assets []domain.Asset) []AllocationSlice {
	total := decimal.Zero
	for _, asset := range assets {
		total = total.Add(asset.Value)
	}

	slices := make([]AllocationSlice, 0, len(assets))
	for _, asset := range assets {
		slices = append(slices, AllocationSlice{
			AssetID: asset.ID,
			Ticker:  asset.Ticker,
			Value:   asset.Value,
			Percent: percentOf(asset.Value, total),
		})
	}
	return slices
}

// RecentTransactions returns up to n transactions, most recent date first
// Transactions sharing a date are ordered by entry, later entries first.
func RecentTransactions(transactions []domain.Transaction, n int) []domain.Transaction {
	if n <= 0 {
		return []domain.Transaction{}
	}

	// Reverse entry order first so the stable sort keeps later entries ahead on ties
	sorted := make([]domain.Transaction, len(transactions))
	for i, tx := range transactions {
		sorted[len(transactions)-1-i] = tx
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
