package model

import "errors"

var (
	// ErrNotFound is returned by storage adapters when an object is absent.
	ErrNotFound = errors.New("not found")

	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("authorization token is missing")
	ErrForbidden          = errors.New("authorization token is invalid or expired")
	ErrAccountNotFound    = errors.New("account not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrInvalidScoreKey    = errors.New("unknown score key")
)

// ErrInvalidInput marks requests rejected before touching storage.
var ErrInvalidInput = errors.New("invalid input")
