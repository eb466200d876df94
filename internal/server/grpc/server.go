// Package grpc runs the admin gRPC listener: the standard health service,
// open to probes, and server reflection, which requires a session token.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/passgate/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// SessionVerifier checks an "authorization" metadata value ("Bearer <token>").
type SessionVerifier interface {
	VerifyBearer(header string) (string, error)
}

type AdminServer struct {
	address  string
	logger   logging.Logger
	verifier SessionVerifier
	health   *health.Server
}

func NewAdminServer(a string, l logging.Logger, v SessionVerifier) *AdminServer {
	return &AdminServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		verifier: v,
		health:   health.NewServer(),
	}
}

// newServer builds the grpc.Server with both services registered.
func (s *AdminServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.sessionUnaryInterceptor),
		grpc.ChainStreamInterceptor(s.sessionStreamInterceptor),
	)

	healthpb.RegisterHealthServer(srv, s.health)
	reflection.Register(srv)

	return srv
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *AdminServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	return srv.Serve(lis)
}

func (s *AdminServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}
