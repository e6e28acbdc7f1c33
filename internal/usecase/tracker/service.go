package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/simaogato/finpulse-backend/internal/domain"
	"github.com/simaogato/finpulse-backend/internal/usecase/aggregator"
)

// DefaultRecentLimit is how many transactions a Summary lists by default
const DefaultRecentLimit = 5

// TrackerService owns the current snapshot
// Every mutation builds a new snapshot through the aggregator, persists it and
// then swaps it in. Readers always see a complete snapshot.
type TrackerService struct {
	AssetRepo       domain.AssetRepository
	TransactionRepo domain.TransactionRepository
	BudgetRepo      domain.BudgetRepository

	NewID       aggregator.IDGenerator
	Now         func() time.Time
	RecentLimit int

	logger zerolog.Logger

	mu       sync.RWMutex
	snapshot domain.Snapshot
}

// NewTrackerService creates a new TrackerService instance with an empty snapshot
func NewTrackerService(
	assetRepo domain.AssetRepository,
	transactionRepo domain.TransactionRepository,
	budgetRepo domain.BudgetRepository,
	logger zerolog.Logger,
) *TrackerService {
	return &TrackerService{
		AssetRepo:       assetRepo,
		TransactionRepo: transactionRepo,
		BudgetRepo:      budgetRepo,
		NewID:           aggregator.NewID,
		Now:             time.Now,
		RecentLimit:     DefaultRecentLimit,
		logger:          logger.With().Str("component", "tracker").Logger(),
		snapshot: domain.Snapshot{
			Assets:       []domain.Asset{},
			Transactions: []domain.Transaction{},
			Budgets:      []domain.Budget{},
		},
	}
}

// Load replaces the snapshot with the one currently held by the remote store
func (s *TrackerService) Load(ctx context.Context) error {
	assets, err := s.AssetRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load assets: %w", err)
	}

	transactions, err := s.TransactionRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	budgets, err := s.BudgetRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load budgets: %w", err)
	}

	s.mu.Lock()
	s.snapshot = domain.Snapshot{Assets: assets, Transactions: transactions, Budgets: budgets}
	s.mu.Unlock()

	s.logger.Info().
		Int("assets", len(assets)).
		Int("transactions", len(transactions)).
		Int("budgets", len(budgets)).
		Msg("snapshot loaded")

	return nil
}

// Snapshot returns the current snapshot
// Callers must treat the returned slices as read-only.
func (s *TrackerService) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// AddAsset validates the input, appends the asset and persists it
func (s *TrackerService) AddAsset(ctx context.Context, input domain.NewAssetInput) (*domain.Asset, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	assets, asset := aggregator.AddAsset(s.snapshot.Assets, input, s.NewID)

	if err := s.AssetRepo.Create(ctx, &asset); err != nil {
		return nil, err
	}

	s.snapshot.Assets = assets
	s.logger.Info().Str("asset_id", asset.ID.String()).Str("ticker", asset.Ticker).Msg("asset added")

	return &asset, nil
}

// RecordTransaction validates the input, appends the transaction, updates the
// matching budgets and persists both in one go
func (s *TrackerService) RecordTransaction(ctx context.Context, input domain.NewTransactionInput) (*domain.Transaction, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	input = input.Normalize(s.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	prevBudgets := s.snapshot.Budgets
	transactions, budgets, tx := aggregator.RecordTransaction(s.snapshot.Transactions, prevBudgets, input, s.NewID)
	changed := aggregator.ChangedBudgets(prevBudgets, budgets)

	if err := s.TransactionRepo.Create(ctx, &tx, changed); err != nil {
		return nil, err
	}

	s.snapshot.Transactions = transactions
	s.snapshot.Budgets = budgets

	event := s.logger.Info().
		Str("transaction_id", tx.ID.String()).
		Str("type", string(tx.Type)).
		Str("category", tx.Category).
		Int("budgets_updated", len(changed))
	if tx.IsExpense() && len(changed) == 0 {
		event = event.Bool("untracked", true)
	}
	event.Msg("transaction recorded")

	return &tx, nil
}

// AddBudget validates the input, appends the budget and persists it
func (s *TrackerService) AddBudget(ctx context.Context, input domain.NewBudgetInput) (*domain.Budget, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	input = input.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	budgets, budget := aggregator.AddBudget(s.snapshot.Budgets, input, s.NewID)

	if err := s.BudgetRepo.Create(ctx, &budget); err != nil {
		return nil, err
	}

	s.snapshot.Budgets = budgets
	s.logger.Info().Str("budget_id", budget.ID.String()).Str("category", budget.Category).Msg("budget added")

	return &budget, nil
}

// ApplyChange applies a remote change notification to the snapshot
// Remote transaction inserts do not touch budgets: the writer that recorded
// the transaction also publishes the budget updates.
func (s *TrackerService) ApplyChange(event domain.ChangeEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changed bool
	switch event.Table {
	case domain.TableAssets:
		s.snapshot.Assets, changed = aggregator.ApplyChange(s.snapshot.Assets, event)
	case domain.TableTransactions:
		s.snapshot.Transactions, changed = aggregator.ApplyChange(s.snapshot.Transactions, event)
	case domain.TableBudgets:
		s.snapshot.Budgets, changed = aggregator.ApplyChange(s.snapshot.Budgets, event)
	}

	return changed
}
