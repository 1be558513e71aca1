package payment

import (
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestSign_SortsKeysAlphabetically(t *testing.T) {
	key := "secret"
	a := Sign(key, map[string]string{"b": "2", "a": "1", "c": "3"})
	b := Sign(key, map[string]string{"c": "3", "a": "1", "b": "2"})

	if a != b {
		t.Fatalf("signature must not depend on map order: %s != %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected hex sha256 digest, got %q", a)
	}
}

func TestSignatureVerifier_RoundTrip(t *testing.T) {
	n := domain.PaymentNotification{
		OrderCode:   123,
		Code:        "00",
		Amount:      500,
		Description: "order payment",
	}
	n.Signature = Sign("key", NotificationFields(n))

	if !NewSignatureVerifier("key").Verify(n) {
		t.Fatal("expected valid signature to verify")
	}
}

func TestSignatureVerifier_FailClosed(t *testing.T) {
	n := domain.PaymentNotification{OrderCode: 123, Code: "00", Amount: 500}
	n.Signature = Sign("key", NotificationFields(n))

	cases := []struct {
		name     string
		key      string
		mutate   func(*domain.PaymentNotification)
		expected bool
	}{
		{name: "wrong key", key: "other-key", mutate: func(*domain.PaymentNotification) {}},
		{name: "empty key", key: "", mutate: func(*domain.PaymentNotification) {}},
		{name: "empty signature", key: "key", mutate: func(n *domain.PaymentNotification) { n.Signature = "" }},
		{name: "tampered amount", key: "key", mutate: func(n *domain.PaymentNotification) { n.Amount = 501 }},
		{name: "tampered code", key: "key", mutate: func(n *domain.PaymentNotification) { n.Code = "01" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cand := n
			tc.mutate(&cand)
			if NewSignatureVerifier(tc.key).Verify(cand) {
				t.Fatal("expected verification to fail")
			}
		})
	}
}
