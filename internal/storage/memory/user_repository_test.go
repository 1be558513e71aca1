package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestUserRepository_CreateAndGetByEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	user := domain.User{
		ID:           "u1",
		Email:        "Shopper@Example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	// E-mail сравнивается без учёта регистра.
	got, err := repo.GetByEmail(ctx, "shopper@example.com")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.ID != "u1" {
		t.Fatalf("expected user u1, got %s", got.ID)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	first := domain.User{ID: "u1", Email: "shopper@example.com", PasswordHash: "hash"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create user: %v", err)
	}

	second := domain.User{ID: "u2", Email: "SHOPPER@example.com", PasswordHash: "hash"}
	if err := repo.Create(ctx, second); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserRepository_GetMissing(t *testing.T) {
	repo := NewUserRepository()

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_RejectsInvalidUser(t *testing.T) {
	repo := NewUserRepository()

	err := repo.Create(context.Background(), domain.User{ID: "u1", Email: "", PasswordHash: "hash"})
	if !errors.Is(err, domain.ErrEmailRequired) {
		t.Fatalf("expected ErrEmailRequired, got %v", err)
	}
}
