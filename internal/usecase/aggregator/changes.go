package aggregator

import (
	"github.com/google/uuid"
	"github.com/simaogato/finpulse-backend/internal/domain"
)

// ApplyChange applies a remote change notification to one snapshot collection
// Notifications may arrive out of order or more than once, so:
//   - INSERT of an identifier already present is a no-op (no duplicates)
//   - UPDATE of an identifier not present is ignored
//   - DELETE of an identifier not present is a no-op
//
// Row images that are not of type T are ignored. The input slice is never
// modified; it is returned as-is when nothing changes. The boolean reports
// whether the collection changed.
func ApplyChange[T domain.Entity](items []T, event domain.ChangeEvent) ([]T, bool) {
	switch event.Type {
	case domain.ChangeTypeInsert:
		row, ok := event.New.(T)
		if !ok || indexOf(items, row.EntityID()) >= 0 {
			return items, false
		}
		return appendCopy(items, row), true

	case domain.ChangeTypeUpdate:
		row, ok := event.New.(T)
		if !ok {
			return items, false
		}
		i := indexOf(items, row.EntityID())
		if i < 0 {
			return items, false
		}
		next := make([]T, len(items))
		copy(next, items)
		next[i] = row
		return next, true

	case domain.ChangeTypeDelete:
		id, ok := event.ID()
		if !ok {
			return items, false
		}
		i := indexOf(items, id)
		if i < 0 {
			return items, false
		}
		next := make([]T, 0, len(items)-1)
		next = append(next, items[:i]...)
		return append(next, items[i+1:]...), true
	}

	return items, false
}

func indexOf[T domain.Entity](items []T, id uuid.UUID) int {
	for i, item := range items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}
