package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrValidation is wrapped by every input validation failure
	ErrValidation = errors.New("invalid input")

	// ErrNotFound is wrapped when a requested entity does not exist
	ErrNotFound = errors.New("not found")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// MoneyScale is the number of fraction digits money values may carry
const MoneyScale = 2

func exceedsMoneyScale(d decimal.Decimal) bool {
	return !d.Equal(d.Round(MoneyScale))
}
