package domain

// Snapshot is the complete state the aggregator works on
// A snapshot is never mutated in place: every mutation produces a new one
type Snapshot struct {
	Assets       []Asset
	Transactions []Transaction
	Budgets      []Budget
}
