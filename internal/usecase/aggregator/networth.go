package aggregator

import (
	"github.com/shopspring/decimal"
	"github.com/simaogato/finpulse-backend/internal/domain"
)

// NetWorth represents the calculated net worth
type NetWorth struct {
	Total           decimal.Decimal
	TotalAssetValue decimal.Decimal
	CashBalance     decimal.Decimal
}

// ComputeNetWorth calculates the total net worth
// Logic:
//   - TotalAssetValue: Sum of asset.Value (Value is the total holding value, never multiplied by Amount)
//   - CashBalance: Sum of income amounts minus sum of expense amounts
//   - Total: TotalAssetValue + CashBalance
//
// Empty collections yield zero.
func ComputeNetWorth(assets []domain.Asset, transactions []domain.Transaction) NetWorth {
	totalAssetValue := decimal.Zero
	for _, asset := range assets {
		totalAssetValue = totalAssetValue.Add(asset.Value)
	}

	cashBalance := decimal.Zero
	for _, tx := range transactions {
		cashBalance = cashBalance.Add(tx.SignedAmount())
	}

	return NetWorth{
		Total:           totalAssetValue.Add(cashBalance),
		TotalAssetValue: totalAssetValue,
		CashBalance:     cashBalance,
	}
}
