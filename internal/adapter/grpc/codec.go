package grpc

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/simaogato/finpulse-backend/internal/domain"
	"github.com/simaogato/finpulse-backend/internal/usecase/aggregator"
	"github.com/simaogato/finpulse-backend/internal/usecase/tracker"
	"google.golang.org/protobuf/types/known/structpb"
)

// Request decoding

func stringField(req *structpb.Struct, key string) (string, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return "", nil
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return "", nil
	case *structpb.Value_StringValue:
		return strings.TrimSpace(kind.StringValue), nil
	default:
		return "", fmt.Errorf("%s must be a string", key)
	}
}

// decimalField accepts a JSON number or a decimal string; missing or null is zero
func decimalField(req *structpb.Struct, key string) (decimal.Decimal, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return decimal.Zero, nil
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return decimal.Zero, nil
	case *structpb.Value_NumberValue:
		return decimal.NewFromFloat(kind.NumberValue), nil
	case *structpb.Value_StringValue:
		s := strings.TrimSpace(kind.StringValue)
		if s == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid %s format: %v", key, err)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("%s must be a number or a decimal string", key)
	}
}

func decodeAssetInput(req *structpb.Struct) (domain.NewAssetInput, error) {
	var in domain.NewAssetInput
	var err error

	if in.Name, err = stringField(req, "name"); err != nil {
		return in, err
	}
	if in.Ticker, err = stringField(req, "ticker"); err != nil {
		return in, err
	}
	if in.Icon, err = stringField(req, "icon"); err != nil {
		return in, err
	}
	if in.Amount, err = decimalField(req, "amount"); err != nil {
		return in, err
	}
	if in.Value, err = decimalField(req, "value"); err != nil {
		return in, err
	}
	if in.Change, err = decimalField(req, "change"); err != nil {
		return in, err
	}
	return in, nil
}

func decodeTransactionInput(req *structpb.Struct) (domain.NewTransactionInput, error) {
	var in domain.NewTransactionInput
	var err error

	if in.Description, err = stringField(req, "description"); err != nil {
		return in, err
	}
	if in.Category, err = stringField(req, "category"); err != nil {
		return in, err
	}
	if in.Amount, err = decimalField(req, "amount"); err != nil {
		return in, err
	}

	txType, err := stringField(req, "type")
	if err != nil {
		return in, err
	}
	in.Type = domain.TransactionType(strings.ToLower(txType))

	date, err := stringField(req, "date")
	if err != nil {
		return in, err
	}
	if date != "" {
		if in.Date, err = domain.ParseDate(date); err != nil {
			return in, fmt.Errorf("invalid date format: %v", err)
		}
	}
	return in, nil
}

func decodeBudgetInput(req *structpb.Struct) (domain.NewBudgetInput, error) {
	var in domain.NewBudgetInput
	var err error

	if in.Category, err = stringField(req, "category"); err != nil {
		return in, err
	}
	if in.Month, err = stringField(req, "month"); err != nil {
		return in, err
	}
	if in.Limit, err = decimalField(req, "limit"); err != nil {
		return in, err
	}
	return in, nil
}

// Response encoding
// Values must be of the types accepted by structpb.NewValue.

func (s *Server) assetValue(a domain.Asset) map[string]interface{} {
	return map[string]interface{}{
		"id":            a.ID.String(),
		"name":          a.Name,
		"ticker":        a.Ticker,
		"amount":        a.Amount.String(),
		"value":         a.Value.String(),
		"value_display": s.Money.Format(a.Value),
		"change":        a.Change.String(),
		"icon":          a.Icon,
	}
}

func (s *Server) transactionValue(tx domain.Transaction) map[string]interface{} {
	return map[string]interface{}{
		"id":             tx.ID.String(),
		"description":    tx.Description,
		"amount":         tx.Amount.String(),
		"amount_display": s.Money.Format(tx.SignedAmount()),
		"date":           domain.FormatDate(tx.Date),
		"type":           string(tx.Type),
		"category":       tx.Category,
	}
}

func (s *Server) budgetValue(view tracker.BudgetView) map[string]interface{} {
	b := view.Budget
	return map[string]interface{}{
		"id":               b.ID.String(),
		"category":         b.Category,
		"limit":            b.Limit.String(),
		"spent":            b.Spent.String(),
		"month":            b.Month,
		"limit_display":    s.Money.Format(b.Limit),
		"spent_display":    s.Money.Format(b.Spent),
		"progress_percent": Percent(view.Status.ProgressPercent),
		"display_percent":  Percent(view.Status.DisplayPercent),
		"is_over_budget":   view.Status.IsOverBudget,
		"remaining":        view.Status.Remaining.String(),
	}
}

func (s *Server) netWorthValue(nw aggregator.NetWorth) map[string]interface{} {
	return map[string]interface{}{
		"total":                     nw.Total.String(),
		"total_asset_value":         nw.TotalAssetValue.String(),
		"cash_balance":              nw.CashBalance.String(),
		"total_display":             s.Money.Format(nw.Total),
		"total_asset_value_display": s.Money.Format(nw.TotalAssetValue),
		"cash_balance_display":      s.Money.Format(nw.CashBalance),
	}
}

func (s *Server) categorySpendValue(spend aggregator.CategorySpend) map[string]interface{} {
	entries := make([]interface{}, 0, len(spend.Entries))
	for _, e := range spend.Entries {
		entries = append(entries, map[string]interface{}{
			"category":           e.Category,
			"amount":             e.Amount.String(),
			"amount_display":     s.Money.Format(e.Amount),
			"percent_of_expense": Percent(e.PercentOfExpense),
		})
	}
	return map[string]interface{}{
		"entries":       entries,
		"total_expense": spend.TotalExpense.String(),
	}
}

func (s *Server) allocationValue(slices []aggregator.AllocationSlice) []interface{} {
	out := make([]interface{}, 0, len(slices))
	for _, sl := range slices {
		out = append(out, map[string]interface{}{
			"asset_id":      sl.AssetID.String(),
			"ticker":        sl.Ticker,
			"value":         sl.Value.String(),
			"value_display": s.Money.Format(sl.Value),
			"percent":       Percent(sl.Percent),
		})
	}
	return out
}

func (s *Server) assetList(assets []domain.Asset) []interface{} {
	out := make([]interface{}, 0, len(assets))
	for _, a := range assets {
		out = append(out, s.assetValue(a))
	}
	return out
}

func (s *Server) transactionList(txs []domain.Transaction) []interface{} {
	out := make([]interface{}, 0, len(txs))
	for _, tx := range txs {
		out = append(out, s.transactionValue(tx))
	}
	return out
}

func (s *Server) budgetList(views []tracker.BudgetView) []interface{} {
	out := make([]interface{}, 0, len(views))
	for _, v := range views {
		out = append(out, s.budgetValue(v))
	}
	return out
}
