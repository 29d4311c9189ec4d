package transport

import (
	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported for the node.
const ServiceName = "marabu.Node"

// NewGRPCServer builds a gRPC server with the standard interceptor chain and a health service.
// The node service starts NOT_SERVING; flip it with the returned health server once the node is initialized.
func NewGRPCServer(logger *zap.Logger) (*grpc.Server, *health.Server) {
	unary := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	stream := []grpc.StreamServerInterceptor{
		grpcRecovery.StreamServerInterceptor(),
		grpcCtxTags.StreamServerInterceptor(),
		grpcPrometheus.StreamServerInterceptor,
		grpcZap.StreamServerInterceptor(logger),
	}
	server := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(unary...)),
		grpc.StreamInterceptor(grpcMiddleware.ChainStreamServer(stream...)),
	)

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(server, hs)

	grpcPrometheus.EnableHandlingTimeHistogram()
	grpcPrometheus.Register(server)
	return server, hs
}
