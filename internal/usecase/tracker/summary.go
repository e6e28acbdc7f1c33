package tracker

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/simaogato/finpulse-backend/internal/domain"
	"github.com/simaogato/finpulse-backend/internal/usecase/aggregator"
)

// BudgetView is a budget together with its computed status
type BudgetView struct {
	Budget domain.Budget
	Status aggregator.BudgetStatus
}

// Summary is the derived view model of a snapshot
type Summary struct {
	NetWorth           aggregator.NetWorth
	CategorySpend      aggregator.CategorySpend
	Budgets            []BudgetView
	Allocation         []aggregator.AllocationSlice
	RecentTransactions []domain.Transaction
}

// Summary recomputes every derived figure from the current snapshot
func (s *TrackerService) Summary() Summary {
	return Summarize(s.Snapshot(), s.RecentLimit)
}

// Summarize computes the derived view model of a snapshot
func Summarize(snapshot domain.Snapshot, recentLimit int) Summary {
	budgets := make([]BudgetView, 0, len(snapshot.Budgets))
	for _, budget := range snapshot.Budgets {
		budgets = append(budgets, BudgetView{
			Budget: budget,
			Status: aggregator.ComputeBudgetStatus(budget),
		})
	}

	return Summary{
		NetWorth:           aggregator.ComputeNetWorth(snapshot.Assets, snapshot.Transactions),
		CategorySpend:      aggregator.ComputeCategorySpend(snapshot.Transactions),
		Budgets:            budgets,
		Allocation:         aggregator.AssetAllocation(snapshot.Assets),
		RecentTransactions: aggregator.RecentTransactions(snapshot.Transactions, recentLimit),
	}
}

// BudgetStatus returns one budget of the current snapshot with its status
func (s *TrackerService) BudgetStatus(id uuid.UUID) (BudgetView, error) {
	for _, budget := range s.Snapshot().Budgets {
		if budget.ID == id {
			return BudgetView{Budget: budget, Status: aggregator.ComputeBudgetStatus(budget)}, nil
		}
	}
	return BudgetView{}, fmt.Errorf("budget %s: %w", id, domain.ErrNotFound)
}
