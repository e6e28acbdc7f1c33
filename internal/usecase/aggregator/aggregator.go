// Package aggregator turns snapshots of assets, transactions and budgets into
// the derived figures shown to the user: net worth, category spend and budget
// status. Every function is pure: inputs are never mutated and results are
// recomputed on each call.
package aggregator

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IDGenerator produces identifiers for newly created entities
// It must never return the same value twice within the process lifetime
type IDGenerator func() uuid.UUID

// NewID is the default IDGenerator (random UUID v4)
var NewID IDGenerator = uuid.New

var hundred = decimal.NewFromInt(100)

// percentOf returns part/whole*100, or zero when whole is not positive
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
