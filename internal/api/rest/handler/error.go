package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/dtroode/gradebook-server/internal/logger"
	"github.com/dtroode/gradebook-server/internal/model"
)

// MessageResponse is the body of every error and of plain acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

// statusFor maps a domain error to its HTTP status and client-facing message.
func statusFor(err error) (int, string) {
	var (
		httpErr       *echo.HTTPError
		validationErr validator.ValidationErrors
	)

	switch {
	case errors.Is(err, model.ErrDuplicateUsername):
		return http.StatusBadRequest, "username already exists"
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusBadRequest, "invalid username or password"
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, model.ErrUnauthenticated):
		return http.StatusUnauthorized, "missing authorization token"
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden, "invalid or expired token"
	case errors.Is(err, model.ErrAccountNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, model.ErrStudentNotFound):
		return http.StatusNotFound, "student not found"
	case errors.As(err, &validationErr):
		fields := make([]string, 0, len(validationErr))
		for _, fe := range validationErr {
			fields = append(fields, fmt.Sprintf("%s is %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
		return http.StatusBadRequest, strings.Join(fields, ", ")
	case errors.As(err, &httpErr):
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// NewErrorHandler returns an echo.HTTPErrorHandler that renders errors as
// {"message": "..."} and logs server faults with their cause.
func NewErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		code, message := statusFor(err)
		if code >= http.StatusInternalServerError {
			logger.Error("HTTP handler: request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"error", err.Error())
		}

		if c.Response().Committed {
			return
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, MessageResponse{Message: message})
		}
		if err != nil {
			logger.Error("HTTP handler: failed to write error response",
				"error", err.Error())
		}
	}
}
