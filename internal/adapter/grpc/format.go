package grpc

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Formatter renders decimal amounts as display strings in one currency
type Formatter struct {
	currency money.Currency
}

// NewFormatter returns a Formatter for the ISO 4217 code
// Unknown codes fall back to USD.
func NewFormatter(code string) Formatter {
	cur := money.GetCurrency(code)
	if cur == nil {
		cur = money.GetCurrency("USD")
	}
	return Formatter{currency: *cur}
}

// Code returns the ISO 4217 code of the formatter's currency
func (f Formatter) Code() string {
	return f.currency.Code
}

// Format renders amount with the currency symbol, grouping and fraction digits,
// rounding to the currency's minor unit
func (f Formatter) Format(amount decimal.Decimal) string {
	minor := amount.Shift(int32(f.currency.Fraction)).Round(0)
	if minor.GreaterThan(maxMinor) || minor.LessThan(minMinor) {
		return f.formatWide(amount)
	}
	return f.currency.Formatter().Format(minor.IntPart())
}

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// formatWide renders amounts whose minor units overflow int64, without
// thousands grouping
func (f Formatter) formatWide(amount decimal.Decimal) string {
	digits := amount.Abs().StringFixed(int32(f.currency.Fraction))
	if f.currency.Decimal != "" {
		digits = strings.Replace(digits, ".", f.currency.Decimal, 1)
	}
	out := strings.Replace(f.currency.Template, "1", digits, 1)
	out = strings.Replace(out, "$", f.currency.Grapheme, 1)
	if amount.IsNegative() {
		out = "-" + out
	}
	return out
}

// Percent renders a percentage with two decimals
func Percent(p decimal.Decimal) string {
	return p.StringFixed(2)
}
