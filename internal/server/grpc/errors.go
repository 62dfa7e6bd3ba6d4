package grpc

import (
	"errors"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps a service error kind to a gRPC status. Internal failures
// carry no detail.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrorUnauthenticated):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, common.ErrorConflict):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrorBadRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
