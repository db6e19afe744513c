package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/thinkartha/smileybox/internal/domain/user"
)

var _ user.PasswordHasher = (*BcryptPasswordHasher)(nil)

// BcryptPasswordHasher turns the optional password given at user creation
// into a bcrypt hash; plaintext is never stored.
type BcryptPasswordHasher struct {
	cost int
}

func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to generate password hash: %w", err)
	}
	return string(hash), nil
}

// Verify returns a generic error for both mismatch and malformed hash.
func (h *BcryptPasswordHasher) Verify(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("password verification failed")
	}
	return nil
}

// IsHash reports whether s already is a bcrypt hash, so seed files may
// carry either form.
func (h *BcryptPasswordHasher) IsHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}
