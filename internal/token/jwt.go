package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/gradebook-server/internal/model"
)

// Claims represents JWT claims binding a token to a username.
// The payload is signed, not encrypted, so it never carries password material.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// Option customizes a JWT token manager.
type Option func(*JWT)

// WithTTL overrides the access token lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(j *JWT) { j.ttl = ttl }
}

// WithClock overrides the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(j *JWT) { j.now = now }
}

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string, opts ...Option) *JWT {
	j := &JWT{
		secretKey: []byte(secretKey),
		ttl:       model.AccessTokenTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

var _ model.TokenManager = (*JWT)(nil)

// GenerateAccessToken creates a signed token asserting username.
func (j *JWT) GenerateAccessToken(username string) (string, error) {
	if username == "" {
		return "", errors.New("username is required")
	}

	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		Username: username,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// ParseAccessToken validates signature and expiry and returns the username.
// Every failure wraps model.ErrForbidden.
func (j *JWT) ParseAccessToken(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse access token: %w", model.ErrForbidden, err)
	}
	if !token.Valid {
		return "", fmt.Errorf("%w: access token is invalid", model.ErrForbidden)
	}
	if claims.Username == "" {
		return "", fmt.Errorf("%w: access token has no username", model.ErrForbidden)
	}
	return claims.Username, nil
}
