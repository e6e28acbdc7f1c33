package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "finpulse.v1.PortfolioService"

// PortfolioServiceServer is the server API for the PortfolioService
// Requests and responses are google.protobuf.Struct messages.
type PortfolioServiceServer interface {
	GetSummary(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListAssets(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListTransactions(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListBudgets(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetBudgetStatus(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddAsset(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RecordTransaction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddBudget(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(PortfolioServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// FullMethod returns the method path used on the wire, e.g. /finpulse.v1.PortfolioService/GetSummary
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

func unaryHandler(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PortfolioServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(name),
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(PortfolioServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// PortfolioServiceDesc describes the PortfolioService for grpc.Server.RegisterService
var PortfolioServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PortfolioServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("GetSummary", PortfolioServiceServer.GetSummary),
		unaryHandler("ListAssets", PortfolioServiceServer.ListAssets),
		unaryHandler("ListTransactions", PortfolioServiceServer.ListTransactions),
		unaryHandler("ListBudgets", PortfolioServiceServer.ListBudgets),
		unaryHandler("GetBudgetStatus", PortfolioServiceServer.GetBudgetStatus),
		unaryHandler("AddAsset", PortfolioServiceServer.AddAsset),
		unaryHandler("RecordTransaction", PortfolioServiceServer.RecordTransaction),
		unaryHandler("AddBudget", PortfolioServiceServer.AddBudget),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "finpulse/v1/portfolio.proto",
}

// RegisterPortfolioServiceServer registers srv on s
func RegisterPortfolioServiceServer(s grpc.ServiceRegistrar, srv PortfolioServiceServer) {
	s.RegisterService(&PortfolioServiceDesc, srv)
}
