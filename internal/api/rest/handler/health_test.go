package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/gradebook-server/internal/mocks"
	"github.com/dtroode/gradebook-server/internal/testutil"
)

func TestHealth_Check(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		p := mocks.NewPinger(t)
		p.On("Ping", mock.Anything).Return(nil).Once()

		rec := serve(newEcho(), NewHealth(p, testutil.MakeNoopLogger()).Check, http.MethodGet, "/healthz", "", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unavailable", func(t *testing.T) {
		p := mocks.NewPinger(t)
		p.On("Ping", mock.Anything).Return(errors.New("connection refused")).Once()

		rec := serve(newEcho(), NewHealth(p, testutil.MakeNoopLogger()).Check, http.MethodGet, "/healthz", "", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}
