// Package password provides one-way credential encoding and verification.
// The user store holds only encoded forms; verification delegates to the
// algorithm that produced the hash.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch is returned by Verify when the password does not match the hash.
var ErrMismatch = errors.New("password: mismatch")

// Hasher is the credential-encoding capability: encode a plaintext secret,
// or compare a plaintext against a previously encoded form.
type Hasher interface {
	// Hash returns a one-way encoded representation of the password.
	Hash(password string) (string, error)

	// Verify returns nil if password matches the encoded hash, ErrMismatch
	// otherwise.
	Verify(password, hash string) error
}

// BcryptHasher implements Hasher using bcrypt, matching the encoder the
// original account records were created with.
type BcryptHasher struct {
	cost      int
	minLength int
}

// NewBcryptHasher creates a bcrypt-based password hasher.
func NewBcryptHasher(cost, minLength int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost, minLength: minLength}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if len(password) < h.minLength {
		return "", fmt.Errorf("password: minimum length is %d characters", h.minLength)
	}
	if len(password) > 72 {
		return "", errors.New("password: maximum length is 72 characters (bcrypt limit)")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrMismatch
	}
	return nil
}
