package realtime

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/finpulse-backend/internal/domain"
)

var errNoIdentifier = errors.New("row has no valid id")

// payload is the JSON document published for every row change.
// Both the trigger shape (type/record/old_record) and the hosted realtime
// shape (eventType/new/old) are accepted.
type payload struct {
	Table     string         `json:"table"`
	Type      string         `json:"type"`
	EventType string         `json:"eventType"`
	Record    map[string]any `json:"record"`
	New       map[string]any `json:"new"`
	OldRecord map[string]any `json:"old_record"`
	Old       map[string]any `json:"old"`
}

// Decode turns a change notification payload into a domain.ChangeEvent
// Missing or malformed fields fall back to typed defaults (0, "", zero date);
// only an unknown table, an unknown change type or a row without a parsable
// id make the payload unusable.
func Decode(data []byte) (domain.ChangeEvent, error) {
	var p payload
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&p); err != nil {
		return domain.ChangeEvent{}, fmt.Errorf("failed to decode change payload: %w", err)
	}

	changeType := domain.ChangeType(strings.ToUpper(firstNonEmpty(p.Type, p.EventType)))
	switch changeType {
	case domain.ChangeTypeInsert, domain.ChangeTypeUpdate, domain.ChangeTypeDelete:
	default:
		return domain.ChangeEvent{}, fmt.Errorf("unknown change type %q", changeType)
	}

	var rowFn func(map[string]any) (domain.Entity, error)
	table := domain.Table(p.Table)
	switch table {
	case domain.TableAssets:
		rowFn = assetFromRecord
	case domain.TableTransactions:
		rowFn = transactionFromRecord
	case domain.TableBudgets:
		rowFn = budgetFromRecord
	default:
		return domain.ChangeEvent{}, fmt.Errorf("unknown table %q", p.Table)
	}

	event := domain.ChangeEvent{Table: table, Type: changeType}

	newRecord := firstRecord(p.Record, p.New)
	oldRecord := firstRecord(p.OldRecord, p.Old)

	if changeType != domain.ChangeTypeDelete {
		row, err := rowFn(newRecord)
		if err != nil {
			return domain.ChangeEvent{}, fmt.Errorf("invalid %s row: %w", table, err)
		}
		event.New = row
	}

	if oldRecord != nil {
		row, err := rowFn(oldRecord)
		if err == nil {
			event.Old = row
		} else if changeType == domain.ChangeTypeDelete {
			return domain.ChangeEvent{}, fmt.Errorf("invalid %s row: %w", table, err)
		}
	} else if changeType == domain.ChangeTypeDelete {
		return domain.ChangeEvent{}, fmt.Errorf("invalid %s row: %w", table, errNoIdentifier)
	}

	return event, nil
}

func assetFromRecord(rec map[string]any) (domain.Entity, error) {
	id, err := idField(rec)
	if err != nil {
		return nil, err
	}
	return domain.Asset{
		ID:     id,
		Name:   stringField(rec, "name"),
		Ticker: stringField(rec, "ticker"),
		Amount: numberField(rec, "amount"),
		Value:  numberField(rec, "value"),
		Change: numberField(rec, "change"),
		Icon:   stringField(rec, "icon"),
	}, nil
}

func transactionFromRecord(rec map[string]any) (domain.Entity, error) {
	id, err := idField(rec)
	if err != nil {
		return nil, err
	}
	tx := domain.Transaction{
		ID:          id,
		Description: stringField(rec, "description"),
		Amount:      numberField(rec, "amount"),
		Type:        domain.TransactionType(stringField(rec, "type")),
		Category:    stringField(rec, "category"),
	}
	if date, err := domain.ParseDate(stringField(rec, "date")); err == nil {
		tx.Date = date
	}
	return tx, nil
}

func budgetFromRecord(rec map[string]any) (domain.Entity, error) {
	id, err := idField(rec)
	if err != nil {
		return nil, err
	}
	return domain.Budget{
		ID:       id,
		Category: stringField(rec, "category"),
		Limit:    numberField(rec, "limit_amount"),
		Spent:    numberField(rec, "spent"),
		Month:    stringField(rec, "month"),
	}, nil
}

func idField(rec map[string]any) (uuid.UUID, error) {
	s, ok := rec["id"].(string)
	if !ok {
		return uuid.Nil, errNoIdentifier
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", errNoIdentifier, err)
	}
	return id, nil
}

// stringField returns rec[key] as a string, "" when missing or null
func stringField(rec map[string]any, key string) string {
	switch v := rec[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// numberField returns rec[key] as a decimal, zero when missing, null or not numeric
func numberField(rec map[string]any, key string) decimal.Decimal {
	switch v := rec[key].(type) {
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero
		}
		return d
	case float64:
		return decimal.NewFromFloat(v)
	default:
		return decimal.Zero
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstRecord(records ...map[string]any) map[string]any {
	for _, r := range records {
		if len(r) > 0 {
			return r
		}
	}
	return nil
}
