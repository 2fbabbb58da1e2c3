// Package user defines account records and the store they live in. The Store
// interface is the seam to persistence: the authentication core only ever
// looks accounts up by identifier or role and saves new ones.
package user

import (
	"context"
	"errors"
	"time"
)

// Role is an account's access level. Exactly one per account, immutable after
// creation.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Account is a stored user record. Email doubles as the unique identifier and
// the token subject. PasswordHash is the one-way encoded secret — plaintext
// never reaches the store.
type Account struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// ErrNotFound is returned by lookups that match no account. Any other store
// error means the store itself failed and must not be treated as a miss.
var ErrNotFound = errors.New("user: not found")

// Store is the external user-store collaborator.
type Store interface {
	// FindByEmail returns the account with the given email, or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*Account, error)

	// FindByRole returns any account with the given role, or ErrNotFound.
	// Used once at bootstrap to check for a seeded admin.
	FindByRole(ctx context.Context, role Role) (*Account, error)

	// Save persists the account, assigning an ID if absent, and returns the
	// stored record.
	Save(ctx context.Context, acct *Account) (*Account, error)
}
