package service

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/gradebook-server/internal/password"
	"github.com/dtroode/gradebook-server/internal/repository"
	"github.com/dtroode/gradebook-server/internal/repository/memory"
	"github.com/dtroode/gradebook-server/internal/testutil"
	"github.com/dtroode/gradebook-server/internal/token"
)

func newTestStore(t *testing.T) (*repository.Store, *memory.Store) {
	t.Helper()
	backend := memory.NewStore()
	return repository.NewStore(backend, testutil.MakeNoopLogger()), backend
}

func newTestAuth(t *testing.T, store *repository.Store) *Auth {
	t.Helper()
	return NewAuth(store, password.NewBcrypt(bcrypt.MinCost), token.NewJWT("test-secret"), testutil.MakeNoopLogger())
}

func ptr(v float64) *float64 { return &v }
