package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/passgate/internal/common"
	"github.com/dmitrijs2005/passgate/internal/server/metrics"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

// SubjectKey holds the verified token subject in handler contexts.
const SubjectKey ctxKey = "subject"

// publicPrefixes lists the services reachable without a session.
var publicPrefixes = []string{"/grpc.health.v1.Health/"}

func isPublic(fullMethod string) bool {
	for _, p := range publicPrefixes {
		if strings.HasPrefix(fullMethod, p) {
			return true
		}
	}
	return false
}

// authorize runs the same bearer check the HTTP routes use and returns a
// context carrying the subject.
func (s *AdminServer) authorize(ctx context.Context) (context.Context, error) {
	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(strings.ToLower(common.AuthorizationHeaderName)); len(values) > 0 {
			header = values[0]
		}
	}

	subject, err := s.verifier.VerifyBearer(header)
	if err != nil {
		if errors.Is(err, common.ErrorForbidden) {
			metrics.RecordSessionCheck("grpc", "forbidden")
			return nil, status.Error(codes.PermissionDenied, "token is required")
		}
		metrics.RecordSessionCheck("grpc", "unauthorized")
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	metrics.RecordSessionCheck("grpc", "valid")
	return context.WithValue(ctx, SubjectKey, subject), nil
}

func (s *AdminServer) sessionUnaryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if isPublic(info.FullMethod) {
		return handler(ctx, req)
	}

	ctx, err := s.authorize(ctx)
	if err != nil {
		return nil, err
	}
	return handler(ctx, req)
}

type wrappedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedStream) Context() context.Context { return w.ctx }

func (s *AdminServer) sessionStreamInterceptor(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	if isPublic(info.FullMethod) {
		return handler(srv, ss)
	}

	ctx, err := s.authorize(ss.Context())
	if err != nil {
		return err
	}
	return handler(srv, &wrappedStream{ServerStream: ss, ctx: ctx})
}
