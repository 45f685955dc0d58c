package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/gradebook-server/internal/model"
)

// DefaultCost is the bcrypt work factor used for new hashes.
const DefaultCost = 10

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// Bcrypt hashes passwords with a salted bcrypt digest.
type Bcrypt struct {
	cost int
}

var _ model.PasswordHasher = (*Bcrypt)(nil)

// NewBcrypt creates a hasher with the given cost.
func NewBcrypt(cost int) *Bcrypt {
	return &Bcrypt{cost: cost}
}

// Hash returns the bcrypt digest of password. Passwords longer than bcrypt's
// 72 byte input limit are rejected as model.ErrInvalidInput.
func (b *Bcrypt) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password must be at most %d bytes", model.ErrInvalidInput, MaxPasswordBytes)
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare checks password against hash. A mismatch or a hash that cannot be
// parsed both yield model.ErrInvalidCredentials.
func (b *Bcrypt) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) ||
		errors.Is(err, bcrypt.ErrHashTooShort) {
		return model.ErrInvalidCredentials
	}
	return fmt.Errorf("%w: %w", model.ErrInvalidCredentials, err)
}
