package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Asset represents a holding owned by the user
// Value is the TOTAL holding value, it is never multiplied by Amount
type Asset struct {
	ID     uuid.UUID
	Name   string
	Ticker string
	Amount decimal.Decimal // Quantity held
	Value  decimal.Decimal // Total holding value
	Change decimal.Decimal // Percent change
	Icon   string
}

// EntityID returns the asset identifier
func (a Asset) EntityID() uuid.UUID { return a.ID }

// NewAssetInput represents an asset as submitted by the user, before it has an ID
type NewAssetInput struct {
	Name   string
	Ticker string
	Amount decimal.Decimal
	Value  decimal.Decimal
	Change decimal.Decimal
	Icon   string
}

// Validate ensures the input can be handed to the aggregator
func (in NewAssetInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("asset name cannot be empty")
	}
	if strings.TrimSpace(in.Ticker) == "" {
		return invalid("asset ticker cannot be empty")
	}
	if in.Amount.IsNegative() {
		return invalid("asset amount must not be negative")
	}
	if in.Value.IsNegative() {
		return invalid("asset value must not be negative")
	}
	if exceedsMoneyScale(in.Value) {
		return invalid("asset value cannot have more than %d decimal places", MoneyScale)
	}
	return nil
}

// DefaultIcon returns the upper-cased first letter of name, or "" for an empty name
func DefaultIcon(name string) string {
	name = strings.TrimSpace(name)
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 || r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}
