package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/gradebook-server/internal/logger"
	"github.com/dtroode/gradebook-server/internal/model"
)

// Authenticator resolves a bearer token to a username.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// Authenticate validates bearer tokens and puts the username into the request
// context. A missing token yields model.ErrUnauthenticated and a rejected one
// model.ErrForbidden; the error handler turns them into 401 and 403.
type Authenticate struct {
	authenticator  Authenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthenticate(authenticator Authenticator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		authenticator:  authenticator,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handle is the echo middleware.
func (m *Authenticate) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		token := BearerToken(req.Header.Get(echo.HeaderAuthorization))

		username, err := m.authenticator.Authenticate(req.Context(), token)
		if err != nil {
			m.logger.Debug("Authenticate middleware: request rejected",
				"path", c.Path(),
				"error", err.Error())
			return err
		}

		c.SetRequest(req.WithContext(m.contextManager.SetUsernameToContext(req.Context(), username)))
		return next(c)
	}
}

// BearerToken extracts the credential from an "Authorization: Bearer <token>"
// header value. Anything without a credential part yields "".
func BearerToken(header string) string {
	_, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}
