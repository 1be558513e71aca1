package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	mgr := NewTokenManager("test-secret")

	token, err := mgr.Issue("user-1", "user@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	identity, err := mgr.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if identity.UserID != "user-1" {
		t.Fatalf("expected user-1, got %q", identity.UserID)
	}
	if identity.Email != "user@example.com" {
		t.Fatalf("expected email claim, got %q", identity.Email)
	}
}

func TestTokenVerify_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a").Issue("user-1", "a@b.c")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := NewTokenManager("secret-b").Verify(token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestTokenVerify_Expired(t *testing.T) {
	mgr := NewTokenManager("test-secret")

	// Выпускаем токен в прошлом, чтобы он истёк к моменту проверки.
	past := time.Now().Add(-TokenTTL - time.Hour)
	mgr.now = func() time.Time { return past }
	token, err := mgr.Issue("user-1", "a@b.c")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	mgr.now = time.Now
	if _, err := mgr.Verify(token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for expired token, got %v", err)
	}
}

func TestTokenVerify_Garbage(t *testing.T) {
	mgr := NewTokenManager("test-secret")
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := mgr.Verify(raw); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated for %q, got %v", raw, err)
		}
	}
}
