package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// DefaultIncomeCategory labels income recorded without a category
const DefaultIncomeCategory = "Income"

// Transaction represents a single income or expense entry
// Transactions are immutable once recorded
type Transaction struct {
	ID          uuid.UUID
	Description string
	Amount      decimal.Decimal // ABSOLUTE VALUE (Never negative)
	Date        time.Time       // Calendar date (UTC midnight)
	Type        TransactionType // 'income' or 'expense'
	Category    string
}

// EntityID returns the transaction identifier
func (t Transaction) EntityID() uuid.UUID { return t.ID }

// IsExpense reports whether the transaction moves money out
func (t Transaction) IsExpense() bool { return t.Type == TransactionTypeExpense }

// SignedAmount returns the amount with the direction applied:
// positive for income, negative for expense
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}

// NewTransactionInput represents a transaction as submitted by the user, before it has an ID
type NewTransactionInput struct {
	Description string
	Amount      decimal.Decimal
	Date        time.Time // Zero means "today"
	Type        TransactionType
	Category    string
}

// Validate ensures the input can be handed to the aggregator
func (in NewTransactionInput) Validate() error {
	if strings.TrimSpace(in.Description) == "" {
		return invalid("transaction description cannot be empty")
	}
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return invalid("transaction amount must be positive")
	}
	if exceedsMoneyScale(in.Amount) {
		return invalid("transaction amount cannot have more than %d decimal places", MoneyScale)
	}
	switch in.Type {
	case TransactionTypeIncome:
	case TransactionTypeExpense:
		if strings.TrimSpace(in.Category) == "" {
			return invalid("expense category cannot be empty")
		}
	default:
		return invalid("transaction type must be income or expense, got %q", in.Type)
	}
	return nil
}

// Normalize trims text fields and fills the defaults the forms apply:
// income without a category is labelled "Income" and a missing date becomes today
func (in NewTransactionInput) Normalize(now time.Time) NewTransactionInput {
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	if in.Type == TransactionTypeIncome && in.Category == "" {
		in.Category = DefaultIncomeCategory
	}
	if in.Date.IsZero() {
		in.Date = now
	}
	in.Date = DateOf(in.Date)
	return in
}
