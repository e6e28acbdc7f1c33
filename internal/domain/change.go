package domain

import "github.com/google/uuid"

// ChangeType represents the kind of remote row change
type ChangeType string

const (
	ChangeTypeInsert ChangeType = "INSERT"
	ChangeTypeUpdate ChangeType = "UPDATE"
	ChangeTypeDelete ChangeType = "DELETE"
)

// Table names the remote collection a change belongs to
type Table string

const (
	TableAssets       Table = "assets"
	TableTransactions Table = "transactions"
	TableBudgets      Table = "budgets"
)

// Entity is anything stored in a snapshot collection
type Entity interface {
	EntityID() uuid.UUID
}

// ChangeEvent is a remote change notification with its before/after row images
// New is nil for DELETE, Old may be nil for INSERT and UPDATE
// For a given table New and Old hold that table's entity type (Asset, Transaction or Budget)
type ChangeEvent struct {
	Table Table
	Type  ChangeType
	New   Entity
	Old   Entity
}

// ID returns the identifier the change is about, preferring the new row image
func (e ChangeEvent) ID() (uuid.UUID, bool) {
	if e.New != nil {
		return e.New.EntityID(), true
	}
	if e.Old != nil {
		return e.Old.EntityID(), true
	}
	return uuid.Nil, false
}
