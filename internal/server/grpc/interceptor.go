package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/taskkeeper/internal/api"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// Guard rejection reasons.
const (
	reasonMissingToken = "missing_token"
	reasonRevoked      = "revoked"
	reasonExpired      = "expired"
	reasonInvalid      = "invalid"
	reasonStorage      = "storage"
)

var publicMethods = map[string]bool{
	api.FullMethod(api.MethodPing):         true,
	api.FullMethod(api.MethodRegisterUser): true,
	api.FullMethod(api.MethodLogin):        true,
	api.FullMethod(api.MethodRefreshToken): true,
}

// UserIDFromContext returns the user id the access guard resolved for the
// current request.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func withUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// tokenFromContext reads the access token from the authorization metadata.
func tokenFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(common.AuthorizationHeaderName)
	if len(values) == 0 {
		return ""
	}
	return common.ExtractToken(values[0])
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	accessToken := tokenFromContext(ctx)
	if accessToken == "" {
		s.metrics.GuardRejection(reasonMissingToken)
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	userID, err := s.sessions.Resolve(ctx, accessToken)
	if err != nil {
		reason := rejectionReason(err)
		s.metrics.GuardRejection(reason)
		if reason == reasonStorage {
			s.logger.Error(ctx, "token check failed", "method", info.FullMethod, "error", err)
			return nil, status.Error(codes.Internal, "internal error")
		}
		s.logger.Debug(ctx, "request rejected", "method", info.FullMethod, "reason", reason)
		return nil, status.Error(codes.Unauthenticated, "unauthenticated")
	}

	return handler(withUserID(ctx, userID), req)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, common.ErrorStorage):
		return reasonStorage
	case errors.Is(err, common.ErrMissingToken):
		return reasonMissingToken
	case errors.Is(err, common.ErrTokenRevoked):
		return reasonRevoked
	case errors.Is(err, common.ErrTokenExpired):
		return reasonExpired
	default:
		return reasonInvalid
	}
}
