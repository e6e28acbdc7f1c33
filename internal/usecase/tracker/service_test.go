package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/simaogato/finpulse-backend/internal/adapter/realtime"
	"github.com/simaogato/finpulse-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAssetRepository is a mock implementation of AssetRepository for testing
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) List(ctx context.Context) ([]domain.Asset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of TransactionRepository for testing
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) List(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *domain.Transaction, budgets []domain.Budget) error {
	args := m.Called(ctx, tx, budgets)
	return args.Error(0)
}

// MockBudgetRepository is a mock implementation of BudgetRepository for testing
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) List(ctx context.Context) ([]domain.Budget, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) Create(ctx context.Context, budget *domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

type fixture struct {
	service    *TrackerService
	assetRepo  *MockAssetRepository
	txRepo     *MockTransactionRepository
	budgetRepo *MockBudgetRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		assetRepo:  new(MockAssetRepository),
		txRepo:     new(MockTransactionRepository),
		budgetRepo: new(MockBudgetRepository),
	}
	f.service = NewTrackerService(f.assetRepo, f.txRepo, f.budgetRepo, zerolog.Nop())
	f.service.Now = func() time.Time { return time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC) }
	return f
}

func (f fixture) load(t *testing.T, assets []domain.Asset, txs []domain.Transaction, budgets []domain.Budget) {
	t.Helper()
	ctx := context.Background()
	f.assetRepo.On("List", ctx).Return(assets, nil).Once()
	f.txRepo.On("List", ctx).Return(txs, nil).Once()
	f.budgetRepo.On("List", ctx).Return(budgets, nil).Once()
	require.NoError(t, f.service.Load(ctx))
}

func TestLoad_ReplacesSnapshot(t *testing.T) {
	f := newFixture(t)
	asset := domain.Asset{ID: uuid.New(), Ticker: "BTC", Value: decimal.NewFromInt(45000)}

	f.load(t, []domain.Asset{asset}, []domain.Transaction{}, []domain.Budget{})

	snap := f.service.Snapshot()
	assert.Len(t, snap.Assets, 1)
	assert.Empty(t, snap.Transactions)
	f.assetRepo.AssertExpectations(t)
	f.txRepo.AssertExpectations(t)
	f.budgetRepo.AssertExpectations(t)
}

func TestLoad_ErrorKeepsSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.assetRepo.On("List", ctx).Return([]domain.Asset{{ID: uuid.New()}}, nil)
	f.txRepo.On("List", ctx).Return(nil, errors.New("connection refused"))

	err := f.service.Load(ctx)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load transactions")
	assert.Empty(t, f.service.Snapshot().Assets)
}

func TestRecordTransaction_OverBudget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	food := domain.Budget{ID: uuid.New(), Category: "Food", Limit: decimal.NewFromInt(500), Spent: decimal.NewFromInt(250)}
	rent := domain.Budget{ID: uuid.New(), Category: "Rent", Limit: decimal.NewFromInt(1000), Spent: decimal.Zero}
	f.load(t, nil, []domain.Transaction{}, []domain.Budget{food, rent})

	f.txRepo.On("Create", ctx,
		mock.MatchedBy(func(tx *domain.Transaction) bool {
			return tx.Category == "Food" && tx.Amount.Equal(decimal.NewFromInt(300)) &&
				tx.Date.Equal(time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC))
		}),
		mock.MatchedBy(func(budgets []domain.Budget) bool {
			return len(budgets) == 1 && budgets[0].ID == food.ID && budgets[0].Spent.Equal(decimal.NewFromInt(550))
		}),
	).Return(nil)

	tx, err := f.service.RecordTransaction(ctx, domain.NewTransactionInput{
		Description: "Dinner party",
		Amount:      decimal.NewFromInt(300),
		Type:        domain.TransactionTypeExpense,
		Category:    "Food",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, tx.ID)

	summary := f.service.Summary()
	require.Len(t, summary.Budgets, 2)
	assert.True(t, summary.Budgets[0].Budget.Spent.Equal(decimal.NewFromInt(550)))
	assert.True(t, summary.Budgets[0].Status.ProgressPercent.Equal(decimal.NewFromInt(110)))
	assert.True(t, summary.Budgets[0].Status.IsOverBudget)
	assert.True(t, summary.Budgets[0].Status.DisplayPercent.Equal(decimal.NewFromInt(100)))
	assert.False(t, summary.Budgets[1].Status.IsOverBudget)

	f.txRepo.AssertExpectations(t)
}

func TestRecordTransaction_ValidationFailsBeforeAggregation(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.RecordTransaction(context.Background(), domain.NewTransactionInput{
		Description: "Lunch",
		Amount:      decimal.NewFromInt(12),
		Type:        domain.TransactionTypeExpense,
	})

	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Empty(t, f.service.Snapshot().Transactions)
	f.txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordTransaction_PersistFailureKeepsSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	food := domain.Budget{ID: uuid.New(), Category: "Food", Limit: decimal.NewFromInt(500), Spent: decimal.NewFromInt(250)}
	f.load(t, nil, []domain.Transaction{}, []domain.Budget{food})

	f.txRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	_, err := f.service.RecordTransaction(ctx, domain.NewTransactionInput{
		Description: "Groceries", Amount: decimal.NewFromInt(50), Type: domain.TransactionTypeExpense, Category: "Food",
	})

	assert.Error(t, err)
	snap := f.service.Snapshot()
	assert.Empty(t, snap.Transactions)
	assert.True(t, snap.Budgets[0].Spent.Equal(decimal.NewFromInt(250)))
}

func TestRecordTransaction_IncomeGetsDefaultCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.txRepo.On("Create", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
		return tx.Category == domain.DefaultIncomeCategory
	}), []domain.Budget{}).Return(nil)

	tx, err := f.service.RecordTransaction(ctx, domain.NewTransactionInput{
		Description: "Salary", Amount: decimal.NewFromInt(5000), Type: domain.TransactionTypeIncome,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultIncomeCategory, tx.Category)
	assert.True(t, f.service.Summary().NetWorth.Total.Equal(decimal.NewFromInt(5000)))
}

func TestAddAsset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.assetRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.Asset) bool {
		return a.Ticker == "BTC" && a.Icon == "B"
	})).Return(nil)

	asset, err := f.service.AddAsset(ctx, domain.NewAssetInput{
		Name: "bitcoin", Ticker: "BTC", Amount: decimal.RequireFromString("0.75"), Value: decimal.NewFromInt(45000),
	})

	require.NoError(t, err)
	assert.Equal(t, "B", asset.Icon)
	assert.True(t, f.service.Summary().NetWorth.TotalAssetValue.Equal(decimal.NewFromInt(45000)))
	f.assetRepo.AssertExpectations(t)
}

func TestAddAsset_Invalid(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.AddAsset(context.Background(), domain.NewAssetInput{Ticker: "BTC"})

	assert.True(t, errors.Is(err, domain.ErrValidation))
	f.assetRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddBudget_NotRetroactive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	earlier := domain.Transaction{ID: uuid.New(), Amount: decimal.NewFromInt(80), Type: domain.TransactionTypeExpense, Category: "Food"}
	f.load(t, nil, []domain.Transaction{earlier}, []domain.Budget{})

	f.budgetRepo.On("Create", ctx, mock.AnythingOfType("*domain.Budget")).Return(nil)

	budget, err := f.service.AddBudget(ctx, domain.NewBudgetInput{Category: "Food", Limit: decimal.NewFromInt(500)})

	require.NoError(t, err)
	assert.True(t, budget.Spent.IsZero())
	assert.True(t, f.service.Summary().Budgets[0].Status.ProgressPercent.IsZero())
}

func TestApplyChange_RoutesByTable(t *testing.T) {
	f := newFixture(t)
	asset := domain.Asset{ID: uuid.New(), Ticker: "ETH", Value: decimal.NewFromInt(3000)}
	tx := domain.Transaction{ID: uuid.New(), Amount: decimal.NewFromInt(100), Type: domain.TransactionTypeIncome}
	budget := domain.Budget{ID: uuid.New(), Category: "Fun", Limit: decimal.NewFromInt(50)}

	assert.True(t, f.service.ApplyChange(domain.ChangeEvent{Table: domain.TableAssets, Type: domain.ChangeTypeInsert, New: asset}))
	assert.True(t, f.service.ApplyChange(domain.ChangeEvent{Table: domain.TableTransactions, Type: domain.ChangeTypeInsert, New: tx}))
	assert.True(t, f.service.ApplyChange(domain.ChangeEvent{Table: domain.TableBudgets, Type: domain.ChangeTypeInsert, New: budget}))

	// Duplicate delivery
	assert.False(t, f.service.ApplyChange(domain.ChangeEvent{Table: domain.TableTransactions, Type: domain.ChangeTypeInsert, New: tx}))
	// Unknown table
	assert.False(t, f.service.ApplyChange(domain.ChangeEvent{Table: domain.Table("users"), Type: domain.ChangeTypeInsert, New: asset}))

	snap := f.service.Snapshot()
	assert.Len(t, snap.Assets, 1)
	assert.Len(t, snap.Transactions, 1)
	assert.Len(t, snap.Budgets, 1)
	assert.True(t, f.service.Summary().NetWorth.Total.Equal(decimal.NewFromInt(3100)))

	assert.True(t, f.service.ApplyChange(domain.ChangeEvent{Table: domain.TableAssets, Type: domain.ChangeTypeDelete, Old: asset}))
	assert.False(t, f.service.ApplyChange(domain.ChangeEvent{Table: domain.TableAssets, Type: domain.ChangeTypeDelete, Old: asset}))
}

func TestRecordTransaction_EchoedInsertIsDeduplicated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.txRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(nil)

	tx, err := f.service.RecordTransaction(ctx, domain.NewTransactionInput{
		Description: "Coffee", Amount: decimal.NewFromInt(4), Type: domain.TransactionTypeExpense, Category: "Food",
	})
	require.NoError(t, err)

	changed := f.service.ApplyChange(domain.ChangeEvent{Table: domain.TableTransactions, Type: domain.ChangeTypeInsert, New: *tx})

	assert.False(t, changed)
	assert.Len(t, f.service.Snapshot().Transactions, 1)
}

func TestTrackerService_ConcurrentMutations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	food := domain.Budget{ID: uuid.New(), Category: "Food", Limit: decimal.NewFromInt(1000)}
	f.load(t, nil, []domain.Transaction{}, []domain.Budget{food})
	f.txRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.service.RecordTransaction(ctx, domain.NewTransactionInput{
				Description: fmt.Sprintf("snack %d", i), Amount: decimal.NewFromInt(5), Type: domain.TransactionTypeExpense, Category: "Food",
			})
			assert.NoError(t, err)
			_ = f.service.Summary()
		}(i)
	}
	wg.Wait()

	snap := f.service.Snapshot()
	assert.Len(t, snap.Transactions, 20)
	assert.True(t, snap.Budgets[0].Spent.Equal(decimal.NewFromInt(100)))
}

func TestBudgetStatus(t *testing.T) {
	f := newFixture(t)
	food := domain.Budget{ID: uuid.New(), Category: "Food", Limit: decimal.NewFromInt(400), Spent: decimal.NewFromInt(100)}
	f.load(t, nil, nil, []domain.Budget{food})

	view, err := f.service.BudgetStatus(food.ID)
	require.NoError(t, err)
	assert.Equal(t, "Food", view.Budget.Category)
	assert.True(t, view.Status.ProgressPercent.Equal(decimal.NewFromInt(25)))
	assert.True(t, view.Status.Remaining.Equal(decimal.NewFromInt(300)))

	_, err = f.service.BudgetStatus(uuid.New())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRecordTransaction_SubCentAmountIsRejected(t *testing.T) {
	f := newFixture(t)
	food := domain.Budget{ID: uuid.New(), Category: "Food", Limit: decimal.NewFromInt(500), Spent: decimal.Zero}
	f.load(t, nil, nil, []domain.Budget{food})

	_, err := f.service.RecordTransaction(context.Background(), domain.NewTransactionInput{
		Description: "Coffee", Amount: decimal.RequireFromString("10.005"), Type: domain.TransactionTypeExpense, Category: "Food",
	})

	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "more than 2 decimal places")
	assert.True(t, f.service.Snapshot().Budgets[0].Spent.IsZero())
	f.txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordTransaction_EchoedBudgetUpdateKeepsSpentInvariant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.budgetRepo.On("Create", ctx, mock.AnythingOfType("*domain.Budget")).Return(nil)
	f.txRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(nil)

	budget, err := f.service.AddBudget(ctx, domain.NewBudgetInput{Category: "Food", Limit: decimal.NewFromInt(500)})
	require.NoError(t, err)
	tx, err := f.service.RecordTransaction(ctx, domain.NewTransactionInput{
		Description: "Coffee", Amount: decimal.RequireFromString("10.01"), Type: domain.TransactionTypeExpense, Category: "Food",
	})
	require.NoError(t, err)

	// The row as the database publishes it after the write
	payload := `{"table":"budgets","type":"UPDATE","record":{"id":"` + budget.ID.String() +
		`","category":"Food","limit_amount":500,"spent":10.01,"month":null}}`
	event, err := realtime.Decode([]byte(payload))
	require.NoError(t, err)
	f.service.ApplyChange(event)
	f.service.ApplyChange(domain.ChangeEvent{Table: domain.TableTransactions, Type: domain.ChangeTypeInsert, New: *tx})

	snap := f.service.Snapshot()
	require.Len(t, snap.Transactions, 1)
	assert.True(t, snap.Budgets[0].Spent.Equal(snap.Transactions[0].Amount),
		"spent %s must equal the recorded expense %s", snap.Budgets[0].Spent, snap.Transactions[0].Amount)
}

func TestLoad_SameDateTransactionsKeepEntryOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	date := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	first := domain.Transaction{ID: uuid.New(), Description: "Breakfast", Amount: decimal.NewFromInt(8), Date: date, Type: domain.TransactionTypeExpense, Category: "Food"}
	second := domain.Transaction{ID: uuid.New(), Description: "Lunch", Amount: decimal.NewFromInt(15), Date: date, Type: domain.TransactionTypeExpense, Category: "Food"}
	f.load(t, nil, []domain.Transaction{first, second}, nil)

	f.txRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(nil)
	third, err := f.service.RecordTransaction(ctx, domain.NewTransactionInput{
		Description: "Dinner", Amount: decimal.NewFromInt(30), Type: domain.TransactionTypeExpense, Category: "Food",
	})
	require.NoError(t, err)

	snap := f.service.Snapshot()
	require.Len(t, snap.Transactions, 3)
	assert.Equal(t, []uuid.UUID{first.ID, second.ID, third.ID},
		[]uuid.UUID{snap.Transactions[0].ID, snap.Transactions[1].ID, snap.Transactions[2].ID})

	recent := f.service.Summary().RecentTransactions
	require.Len(t, recent, 3)
	assert.Equal(t, []string{"Dinner", "Lunch", "Breakfast"},
		[]string{recent[0].Description, recent[1].Description, recent[2].Description})
}

func TestAddBudget_TrimsCategoryForMatching(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.budgetRepo.On("Create", ctx, mock.MatchedBy(func(b *domain.Budget) bool {
		return b.Category == "Food"
	})).Return(nil)
	f.txRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(budgets []domain.Budget) bool {
		return len(budgets) == 1 && budgets[0].Spent.Equal(decimal.NewFromInt(20))
	})).Return(nil)

	budget, err := f.service.AddBudget(ctx, domain.NewBudgetInput{Category: "Food ", Limit: decimal.NewFromInt(100)})
	require.NoError(t, err)
	assert.Equal(t, "Food", budget.Category)

	_, err = f.service.RecordTransaction(ctx, domain.NewTransactionInput{
		Description: "Snacks", Amount: decimal.NewFromInt(20), Type: domain.TransactionTypeExpense, Category: "Food",
	})
	require.NoError(t, err)

	assert.True(t, f.service.Snapshot().Budgets[0].Spent.Equal(decimal.NewFromInt(20)))
	f.txRepo.AssertExpectations(t)
}
