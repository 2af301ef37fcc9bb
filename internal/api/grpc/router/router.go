// Package router assembles the gRPC server: interceptors, services and health.
package router

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/ecorewards-server/internal/api/grpc/handler"
	"github.com/dtroode/ecorewards-server/internal/api/grpc/middleware"
	"github.com/dtroode/ecorewards-server/internal/api/grpc/rpc"
	"github.com/dtroode/ecorewards-server/internal/logger"
	"github.com/dtroode/ecorewards-server/internal/model"
)

// maxMessageSize fits a base64 encoded avatar of the largest accepted size.
const maxMessageSize = 8 << 20

// Services are the domain services exposed over gRPC.
type Services struct {
	Auth        handler.AuthService
	Accounts    handler.AccountService
	Redemptions handler.RedemptionService
	Pickups     handler.PickupService
}

// Router wires handlers and interceptors into a gRPC server.
type Router struct {
	services       Services
	tokens         middleware.TokenParser
	contextManager model.ContextManager
	health         *health.Server
	logger         *logger.Logger
}

func New(
	services Services,
	tokens middleware.TokenParser,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		services:       services,
		tokens:         tokens,
		contextManager: contextManager,
		health:         health.NewServer(),
		logger:         logger,
	}
}

// requiresAuth selects the methods guarded by the bearer token check.
func requiresAuth(_ context.Context, c interceptors.CallMeta) bool {
	return strings.HasPrefix(c.FullMethod(), "/"+rpc.RewardsServiceName+"/")
}

// Register builds the server with logging, panic recovery and authentication
// interceptors and registers every service on it.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokens, r.contextManager, r.logger)

	opts = append([]grpc.ServerOption{
		grpc.MaxRecvMsgSize(maxMessageSize),
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandlerContext(logging.Recover)),
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recovery.WithRecoveryHandlerContext(logging.Recover)),
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
	}, opts...)

	s := grpc.NewServer(opts...)

	rpc.RegisterAuthServer(s, handler.NewAuth(r.services.Auth, r.logger))
	rpc.RegisterRewardsServer(s, handler.NewRewards(
		r.services.Accounts,
		r.services.Redemptions,
		r.services.Pickups,
		r.contextManager,
		r.logger,
	))
	healthpb.RegisterHealthServer(s, r.health)

	for _, name := range []string{rpc.AuthServiceName, rpc.RewardsServiceName} {
		r.health.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}

	return s
}

// Shutdown marks every service as not serving so health probes fail while
// in-flight calls drain.
func (r *Router) Shutdown() {
	r.health.Shutdown()
}
