package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	restctx "github.com/dtroode/gradebook-server/internal/api/rest/context"
	"github.com/dtroode/gradebook-server/internal/mocks"
	"github.com/dtroode/gradebook-server/internal/model"
	"github.com/dtroode/gradebook-server/internal/testutil"
)

func TestBearerToken(t *testing.T) {
	tests := map[string]string{
		"":              "",
		"Bearer":        "",
		"Bearer abc":    "abc",
		"Bearer  abc ":  "abc",
		"  Bearer abc":  "abc",
		"Token abc.def": "abc.def",
	}
	for header, want := range tests {
		assert.Equal(t, want, BearerToken(header), "header %q", header)
	}
}

func TestAuthenticate_Handle(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		token     string
		authUser  string
		authErr   error
		wantErrIs error
	}{
		{
			name:      "missing header",
			header:    "",
			token:     "",
			authErr:   model.ErrUnauthenticated,
			wantErrIs: model.ErrUnauthenticated,
		},
		{
			name:      "rejected token",
			header:    "Bearer bad",
			token:     "bad",
			authErr:   fmt.Errorf("%w: signature", model.ErrForbidden),
			wantErrIs: model.ErrForbidden,
		},
		{
			name:     "valid token",
			header:   "Bearer good",
			token:    "good",
			authUser: "alice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authenticator := mocks.NewAuthenticator(t)
			authenticator.On("Authenticate", mock.Anything, tt.token).Return(tt.authUser, tt.authErr).Once()
			ctxManager := restctx.NewManager()
			m := NewAuthenticate(authenticator, ctxManager, testutil.MakeNoopLogger())

			req := httptest.NewRequest(http.MethodGet, "/api/users/students", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			c := echo.New().NewContext(req, httptest.NewRecorder())

			var (
				called  bool
				gotUser string
			)
			next := func(c echo.Context) error {
				called = true
				gotUser, _ = ctxManager.GetUsernameFromContext(c.Request().Context())
				return nil
			}

			err := m.Handle(next)(c)

			if tt.wantErrIs != nil {
				require.ErrorIs(t, err, tt.wantErrIs)
				assert.False(t, called)
				return
			}
			require.NoError(t, err)
			assert.True(t, called)
			assert.Equal(t, tt.authUser, gotUser)
		})
	}
}
