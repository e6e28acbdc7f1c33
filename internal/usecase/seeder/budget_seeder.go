package seeder

import (
	"context"
	"fmt"
	"strings"

	"github.com/simaogato/finpulse-backend/internal/domain"
)

// BudgetStore is the part of the tracker the seeder needs
type BudgetStore interface {
	Snapshot() domain.Snapshot
	AddBudget(ctx context.Context, input domain.NewBudgetInput) (*domain.Budget, error)
}

// BudgetSeeder creates the configured default budgets
type BudgetSeeder struct {
	store    BudgetStore
	defaults []domain.NewBudgetInput
}

// NewBudgetSeeder creates a new BudgetSeeder instance
func NewBudgetSeeder(store BudgetStore, defaults []domain.NewBudgetInput) *BudgetSeeder {
	return &BudgetSeeder{
		store:    store,
		defaults: defaults,
	}
}

// Seed ensures every default budget category exists
// A category that already has a budget is left alone, so Seed can run on every start.
// It returns the number of budgets created.
func (s *BudgetSeeder) Seed(ctx context.Context) (int, error) {
	existing := make(map[string]bool)
	for _, budget := range s.store.Snapshot().Budgets {
		existing[budget.Category] = true
	}

	created := 0
	for _, input := range s.defaults {
		input.Category = strings.TrimSpace(input.Category)
		if existing[input.Category] {
			continue
		}

		if _, err := s.store.AddBudget(ctx, input); err != nil {
			return created, fmt.Errorf("failed to seed budget %q: %w", input.Category, err)
		}
		existing[input.Category] = true
		created++
	}

	return created, nil
}
