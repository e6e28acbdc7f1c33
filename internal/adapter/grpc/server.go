package grpc

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/finpulse-backend/internal/domain"
	"github.com/simaogato/finpulse-backend/internal/usecase/aggregator"
	"github.com/simaogato/finpulse-backend/internal/usecase/tracker"
)

// Tracker is the part of tracker.TrackerService the transport needs
type Tracker interface {
	Snapshot() domain.Snapshot
	Summary() tracker.Summary
	BudgetStatus(id uuid.UUID) (tracker.BudgetView, error)
	AddAsset(ctx context.Context, input domain.NewAssetInput) (*domain.Asset, error)
	RecordTransaction(ctx context.Context, input domain.NewTransactionInput) (*domain.Transaction, error)
	AddBudget(ctx context.Context, input domain.NewBudgetInput) (*domain.Budget, error)
}

// Server implements the PortfolioService gRPC server
type Server struct {
	Tracker Tracker
	Money   Formatter
}

var _ PortfolioServiceServer = (*Server)(nil)

// NewServer creates a new gRPC server instance
func NewServer(svc Tracker, currency string) *Server {
	return &Server{
		Tracker: svc,
		Money:   NewFormatter(currency),
	}
}

// GetSummary handles the GetSummary RPC
func (s *Server) GetSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	summary := s.Tracker.Summary()

	return s.respond(map[string]interface{}{
		"currency":            s.Money.Code(),
		"net_worth":           s.netWorthValue(summary.NetWorth),
		"category_spend":      s.categorySpendValue(summary.CategorySpend),
		"budgets":             s.budgetList(summary.Budgets),
		"allocation":          s.allocationValue(summary.Allocation),
		"recent_transactions": s.transactionList(summary.RecentTransactions),
	})
}

// ListAssets handles the ListAssets RPC
func (s *Server) ListAssets(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	snapshot := s.Tracker.Snapshot()
	return s.respond(map[string]interface{}{
		"assets": s.assetList(snapshot.Assets),
	})
}

// ListTransactions handles the ListTransactions RPC
func (s *Server) ListTransactions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	snapshot := s.Tracker.Snapshot()
	return s.respond(map[string]interface{}{
		"transactions": s.transactionList(snapshot.Transactions),
	})
}

// ListBudgets handles the ListBudgets RPC
func (s *Server) ListBudgets(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.respond(map[string]interface{}{
		"budgets": s.budgetList(s.Tracker.Summary().Budgets),
	})
}

// GetBudgetStatus handles the GetBudgetStatus RPC
func (s *Server) GetBudgetStatus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raw, err := stringField(req, "budget_id")
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid budget_id format: %v", err)
	}

	view, err := s.Tracker.BudgetStatus(id)
	if err != nil {
		return nil, mapError(err)
	}

	return s.respond(map[string]interface{}{
		"budget": s.budgetValue(view),
	})
}

// AddAsset handles the AddAsset RPC
func (s *Server) AddAsset(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input, err := decodeAssetInput(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	asset, err := s.Tracker.AddAsset(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	return s.respond(map[string]interface{}{
		"asset": s.assetValue(*asset),
	})
}

// RecordTransaction handles the RecordTransaction RPC
func (s *Server) RecordTransaction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input, err := decodeTransactionInput(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	tx, err := s.Tracker.RecordTransaction(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	return s.respond(map[string]interface{}{
		"transaction": s.transactionValue(*tx),
	})
}

// AddBudget handles the AddBudget RPC
func (s *Server) AddBudget(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input, err := decodeBudgetInput(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	budget, err := s.Tracker.AddBudget(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	return s.respond(map[string]interface{}{
		"budget": s.budgetValue(tracker.BudgetView{Budget: *budget, Status: aggregator.ComputeBudgetStatus(*budget)}),
	})
}

func (s *Server) respond(fields map[string]interface{}) (*structpb.Struct, error) {
	resp, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return resp, nil
}

// mapError maps domain errors to gRPC status codes
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return status.Errorf(codes.InvalidArgument, "%s", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Errorf(codes.NotFound, "%s", err.Error())
	default:
		return status.Errorf(codes.Internal, "%s", err.Error())
	}
}
