package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/ecorewards-server/internal/model"
	"github.com/dtroode/ecorewards-server/internal/service"
)

// handleError maps domain errors onto gRPC status codes. Anything it does not
// recognise is reported as Internal without leaking the cause.
func handleError(err error) error {
	var validationErr *model.ValidationError

	switch {
	case errors.As(err, &validationErr):
		return status.Error(codes.InvalidArgument, validationErr.Error())
	case errors.Is(err, model.ErrDuplicateAccount):
		return status.Error(codes.AlreadyExists, model.ErrDuplicateAccount.Error())
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, model.ErrConflict):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, model.ErrTransactionFailed):
		return status.Error(codes.Aborted, "transaction failed, please retry")
	case errors.Is(err, model.ErrChallenge):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, service.ErrAvatarsDisabled):
		return status.Error(codes.Unimplemented, err.Error())
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}

func invalidArgument(field string) error {
	return status.Errorf(codes.InvalidArgument, "%s: invalid fields: %s", model.ErrValidation, field)
}
