package middleware

import (
	"context"
	"errors"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/gradebook-server/internal/logger"
	"github.com/dtroode/gradebook-server/internal/model"
)

// Authenticator resolves a bearer token to a username.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// Authenticate validates bearer tokens and injects the username into context.
type Authenticate struct {
	authenticator  Authenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authenticator Authenticator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{authenticator: authenticator, contextManager: contextManager, logger: logger}
}

// AuthFunc reads the "authorization: Bearer <token>" metadata. A missing token
// is Unauthenticated, a rejected one PermissionDenied.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	// a missing header or a non-bearer scheme leaves the token empty
	token, _ := auth.AuthFromMD(ctx, "bearer")

	username, err := m.authenticator.Authenticate(ctx, token)
	if err != nil {
		m.logger.Debug("Authenticate middleware: call rejected",
			"error", err.Error())
		if errors.Is(err, model.ErrUnauthenticated) {
			return nil, status.Error(codes.Unauthenticated, "authorization token is missing")
		}
		return nil, status.Error(codes.PermissionDenied, "authorization token is invalid or expired")
	}

	return m.contextManager.SetUsernameToContext(ctx, username), nil
}
