package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/gradebook-server/internal/model"
)

func handleError(err error) error {
	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, "authorization token is missing")
	case errors.Is(err, model.ErrForbidden):
		return status.Error(codes.PermissionDenied, "authorization token is invalid or expired")
	case errors.Is(err, model.ErrAccountNotFound):
		return status.Error(codes.NotFound, "user not found")
	case errors.Is(err, model.ErrStudentNotFound):
		return status.Error(codes.NotFound, "student not found")
	case errors.Is(err, model.ErrDuplicateUsername):
		return status.Error(codes.AlreadyExists, "username already exists")
	case errors.Is(err, model.ErrInvalidCredentials):
		return status.Error(codes.InvalidArgument, "invalid username or password")
	case errors.Is(err, model.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
