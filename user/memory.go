package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is a mutex-guarded in-memory Store. It backs the service in
// tests and single-node deployments; a database-backed Store slots in behind
// the same interface.
type MemoryStore struct {
	mu      sync.RWMutex
	byEmail map[string]*Account
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byEmail: make(map[string]*Account)}
}

// FindByEmail implements Store.
func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *acct
	return &cp, nil
}

// FindByRole implements Store.
func (s *MemoryStore) FindByRole(_ context.Context, role Role) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, acct := range s.byEmail {
		if acct.Role == role {
			cp := *acct
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// Save implements Store. Saving an existing email overwrites the record.
func (s *MemoryStore) Save(_ context.Context, acct *Account) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *acct
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	s.byEmail[cp.Email] = &cp

	out := cp
	return &out, nil
}
