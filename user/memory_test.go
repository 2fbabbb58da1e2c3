package user

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStore_SaveAndFind(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	saved, err := store.Save(ctx, &Account{
		Email: "alice@example.com", FirstName: "Alice", Role: RoleUser, PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID == "" {
		t.Error("expected Save to assign an ID")
	}
	if saved.CreatedAt.IsZero() {
		t.Error("expected Save to set CreatedAt")
	}

	found, err := store.FindByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found.ID != saved.ID {
		t.Errorf("expected ID %s, got %s", saved.ID, found.ID)
	}
}

func TestMemoryStore_FindByEmail_Miss(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.FindByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_FindByRole(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.FindByRole(ctx, RoleAdmin); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before seeding, got %v", err)
	}

	if _, err := store.Save(ctx, &Account{Email: "admin@example.com", Role: RoleAdmin}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	admin, err := store.FindByRole(ctx, RoleAdmin)
	if err != nil {
		t.Fatalf("FindByRole: %v", err)
	}
	if admin.Email != "admin@example.com" {
		t.Errorf("unexpected admin account: %s", admin.Email)
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.Save(ctx, &Account{Email: "alice@example.com", Role: RoleUser}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	first, _ := store.FindByEmail(ctx, "alice@example.com")
	first.Role = RoleAdmin // mutating the returned copy must not touch the store

	second, _ := store.FindByEmail(ctx, "alice@example.com")
	if second.Role != RoleUser {
		t.Error("store record was mutated through a returned copy")
	}
}
