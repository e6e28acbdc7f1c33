package grpcserver

import (
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Server wraps a grpc.Server with the health service and reflection registered
type Server struct {
	addr   string
	lis    net.Listener
	Server *grpc.Server
	Health *health.Server
}

// New creates a server for addr; opts carry the interceptors
func New(addr string, opts ...grpc.ServerOption) *Server {
	s := grpc.NewServer(opts...)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	reflection.Register(s)
	return &Server{
		addr:   addr,
		Server: s,
		Health: hs,
	}
}

// Listen binds the address without serving yet
func (s *Server) Listen() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.lis = lis
	return nil
}

// Addr returns the bound address, or the configured one before Listen
func (s *Server) Addr() string {
	if s.lis != nil {
		return s.lis.Addr().String()
	}
	return s.addr
}

// Start serves until Stop is called, binding first if Listen was not called
func (s *Server) Start() error {
	if s.lis == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	return s.Server.Serve(s.lis)
}

// Stop reports NOT_SERVING, then drains in-flight calls
func (s *Server) Stop() {
	s.Health.Shutdown()
	s.Server.GracefulStop()
	if s.lis != nil {
		_ = s.lis.Close()
	}
}
