// Package server runs a gRPC server on a listener from a security layer.
package server

import (
	"context"
	"fmt"

	"google.golang.org/grpc"

	"github.com/dtroode/ecorewards-server/internal/model"
)

var _ model.Server = (*GRPCServer)(nil)

// GRPCServer binds a *grpc.Server to an address.
type GRPCServer struct {
	server *grpc.Server
	addr   string
}

func NewGRPCServer(server *grpc.Server, addr string) *GRPCServer {
	return &GRPCServer{server: server, addr: addr}
}

// Start listens through securityLayer and serves until Stop is called.
func (s *GRPCServer) Start(securityLayer model.SecurityLayer) error {
	listener, err := securityLayer.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	if err := s.server.Serve(listener); err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

// Stop drains in-flight calls. If ctx ends first the remaining connections
// are closed and ctx's error is returned.
func (s *GRPCServer) Stop(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.server.Stop()
		<-done
		return ctx.Err()
	}
}

func (s *GRPCServer) Address() string {
	return s.addr
}
