package domain_test

import (
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// helper для строки корзины с дефолтными полями.
func makeItem(productID string, price float64, qty int) domain.CartItem {
	return domain.CartItem{
		ID:        productID + "-1",
		ProductID: productID,
		Name:      "Test Product",
		Price:     price,
		Quantity:  qty,
	}
}

func TestCartAdd_NewLine(t *testing.T) {
	cart := domain.NewCart()

	sum, err := cart.Add(makeItem("p1", 100000, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sum.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(sum.Items))
	}
	if sum.Total != 100000 {
		t.Fatalf("expected total 100000, got %v", sum.Total)
	}
	if sum.ItemCount != 1 {
		t.Fatalf("expected item count 1, got %d", sum.ItemCount)
	}
}

func TestCartAdd_MergesQuantities(t *testing.T) {
	cart := domain.NewCart()
	if _, err := cart.Add(makeItem("p1", 50, 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum, err := cart.Add(makeItem("p1", 50, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sum.Items) != 1 {
		t.Fatalf("expected merged line, got %d lines", len(sum.Items))
	}
	if sum.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", sum.Items[0].Quantity)
	}
	if sum.Total != 250 {
		t.Fatalf("expected total 250, got %v", sum.Total)
	}
}

func TestCartAdd_Invalid(t *testing.T) {
	cases := []struct {
		name string
		item domain.CartItem
		want error
	}{
		{name: "no product id", item: makeItem("", 10, 1), want: domain.ErrProductIDRequired},
		{name: "zero quantity", item: makeItem("p1", 10, 0), want: domain.ErrQuantityInvalid},
		{name: "negative price", item: makeItem("p1", -1, 1), want: domain.ErrPriceInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cart := domain.NewCart()
			if _, err := cart.Add(tc.item); err != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCartUpdate_BelowOneRemoves(t *testing.T) {
	cart := domain.NewCart()
	if _, err := cart.Add(makeItem("p1", 10, 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum, err := cart.Update("p1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sum.Items) != 0 {
		t.Fatalf("expected empty cart after update to 0, got %d lines", len(sum.Items))
	}
}

func TestCartUpdate_UnknownLine(t *testing.T) {
	cart := domain.NewCart()
	if _, err := cart.Update("missing", 2); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCartTotal_RecomputedFresh(t *testing.T) {
	cart := domain.NewCart()
	if _, err := cart.Add(makeItem("p1", 10, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cart.Add(makeItem("p2", 20, 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum, err := cart.Update("p2", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Total != 30 {
		t.Fatalf("expected total 30 after update, got %v", sum.Total)
	}
	if sum.ItemCount != 2 {
		t.Fatalf("expected item count 2, got %d", sum.ItemCount)
	}

	sum = cart.Clear()
	if sum.Total != 0 || sum.ItemCount != 0 || len(sum.Items) != 0 {
		t.Fatalf("expected empty summary after clear, got %+v", sum)
	}
}

func TestCartSummary_ReturnsCopy(t *testing.T) {
	cart := domain.NewCart()
	if _, err := cart.Add(makeItem("p1", 10, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum := cart.Summary()
	sum.Items[0].Quantity = 99

	if fresh := cart.Summary(); fresh.Items[0].Quantity != 1 {
		t.Fatalf("mutating a summary must not affect the cart, got quantity %d", fresh.Items[0].Quantity)
	}
}

func TestCartSnapshot(t *testing.T) {
	cart := domain.NewCart()
	if _, err := cart.Add(makeItem("p1", 100000, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := cart.Snapshot()
	if snap.DeclaredTotal != 100000 {
		t.Fatalf("expected declared total 100000, got %v", snap.DeclaredTotal)
	}
	if errs := snap.Validate(); len(errs) != 0 {
		t.Fatalf("expected valid snapshot, got %v", errs)
	}
}
