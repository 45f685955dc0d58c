package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dtroode/gradebook-server/internal/logger"
	"github.com/dtroode/gradebook-server/internal/model"
)

type Auth struct {
	store        model.DatasetRepository
	hasher       model.PasswordHasher
	tokenManager model.TokenManager
	logger       *logger.Logger
}

func NewAuth(
	store model.DatasetRepository,
	hasher model.PasswordHasher,
	tokenManager model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		store:        store,
		hasher:       hasher,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// Register creates an account with an empty student collection.
func (a *Auth) Register(ctx context.Context, username, password string) error {
	a.logger.Debug("Auth service: starting user registration",
		"username", username)

	if err := validateCredentials(username, password); err != nil {
		return err
	}

	// reject known duplicates before paying for the hash
	err := a.store.View(ctx, func(d model.Dataset) error {
		if _, ok := d.Account(username); ok {
			return model.ErrDuplicateUsername
		}
		return nil
	})
	if errors.Is(err, model.ErrDuplicateUsername) {
		a.logger.Info("Auth service: username already taken",
			"username", username)
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := a.hasher.Hash(password)
	if errors.Is(err, model.ErrInvalidInput) {
		a.logger.Info("Auth service: password rejected",
			"username", username,
			"reason", err.Error())
		return err
	}
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"username", username,
			"error", err.Error())
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = a.store.Update(ctx, func(d *model.Dataset) error {
		// a concurrent registration may have won since the check above
		if _, ok := d.Account(username); ok {
			return model.ErrDuplicateUsername
		}
		d.Users[username] = model.NewAccount(hash)
		return nil
	})
	if errors.Is(err, model.ErrDuplicateUsername) {
		a.logger.Info("Auth service: username already taken",
			"username", username)
		return err
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create account",
			"username", username,
			"error", err.Error())
		return fmt.Errorf("failed to create account: %w", err)
	}

	a.logger.Info("Auth service: user registration completed successfully",
		"username", username)

	return nil
}

// Login verifies the password and issues a bearer token. An unknown user and a
// wrong password produce the same error.
func (a *Auth) Login(ctx context.Context, username, password string) (model.Session, error) {
	a.logger.Debug("Auth service: starting user login",
		"username", username)

	var (
		hash  string
		found bool
	)
	err := a.store.View(ctx, func(d model.Dataset) error {
		account, ok := d.Account(username)
		if ok {
			hash, found = account.PasswordHash, true
		}
		return nil
	})
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to look up account: %w", err)
	}

	if !found {
		a.logger.Info("Auth service: login failed",
			"username", username,
			"reason", "unknown user")
		return model.Session{}, model.ErrInvalidCredentials
	}

	if err := a.hasher.Compare(hash, password); err != nil {
		a.logger.Info("Auth service: login failed",
			"username", username,
			"reason", err.Error())
		return model.Session{}, model.ErrInvalidCredentials
	}

	token, err := a.tokenManager.GenerateAccessToken(username)
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"username", username,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login completed successfully",
		"username", username)

	return model.Session{Token: token, Username: username}, nil
}

// Authenticate resolves a bearer token to the username it was issued for.
// The account is not looked up here; a vanished account surfaces later as
// model.ErrAccountNotFound.
func (a *Auth) Authenticate(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", model.ErrUnauthenticated
	}

	username, err := a.tokenManager.ParseAccessToken(token)
	if err != nil {
		a.logger.Debug("Auth service: token rejected",
			"error", err.Error())
		if errors.Is(err, model.ErrForbidden) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", model.ErrForbidden, err)
	}

	return username, nil
}

func validateCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username is required", model.ErrInvalidInput)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", model.ErrInvalidInput)
	}
	return nil
}
