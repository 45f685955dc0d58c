package model

import "time"

// AccessTokenTTL is the lifetime of an issued bearer token.
const AccessTokenTTL = time.Hour

// TokenManager generates and validates bearer tokens bound to a username.
type TokenManager interface {
	GenerateAccessToken(username string) (string, error)
	ParseAccessToken(token string) (string, error)
}

// PasswordHasher derives and checks one-way password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// Session is the result of a successful login.
type Session struct {
	Token    string
	Username string
}
