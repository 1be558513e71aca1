package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/postgres"
)

const defaultTimeout = 30 * time.Second

type seedProduct struct {
	name        string
	description string
	price       float64
	image       string
}

var sampleProducts = []seedProduct{
	{
		name:        "Classic White T-Shirt",
		description: "A comfortable and versatile white cotton t-shirt perfect for everyday wear. Made from 100% organic cotton.",
		price:       24.99,
		image:       "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=500&h=500&fit=crop",
	},
	{
		name:        "Denim Blue Jeans",
		description: "Classic blue denim jeans with a modern fit. Perfect for casual outings and everyday wear.",
		price:       79.99,
		image:       "https://images.unsplash.com/photo-1542272604-787c3835535d?w=500&h=500&fit=crop",
	},
	{
		name:        "Black Leather Jacket",
		description: "Premium black leather jacket with a timeless design. Made from genuine leather with a comfortable fit.",
		price:       199.99,
		image:       "https://images.unsplash.com/photo-1551028719-00167b16eac5?w=500&h=500&fit=crop",
	},
	{
		name:        "Red Summer Dress",
		description: "Elegant red summer dress perfect for warm weather. Lightweight and breathable fabric.",
		price:       89.99,
		image:       "https://images.unsplash.com/photo-1595777457583-95e059d581b8?w=500&h=500&fit=crop",
	},
	{
		name:        "White Sneakers",
		description: "Comfortable white sneakers with modern design. Perfect for both casual and athletic wear.",
		price:       129.99,
		image:       "https://images.unsplash.com/photo-1549298916-b41d501d3772?w=500&h=500&fit=crop",
	},
	{
		name:        "Gray Hoodie",
		description: "Soft and cozy gray hoodie with a relaxed fit. Perfect for lounging or casual outings.",
		price:       59.99,
		image:       "https://images.unsplash.com/photo-1556821840-3a63f95609a7?w=500&h=500&fit=crop",
	},
}

func main() {
	dsn := strings.TrimSpace(os.Getenv("STOREFRONT_POSTGRES_DSN"))
	if dsn == "" {
		fail("STOREFRONT_POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		fail("open postgres store: %v", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		fail("ensure schema: %v", err)
	}

	products := postgres.NewProductRepository(store)
	now := time.Now().UTC()
	for _, sample := range sampleProducts {
		product := domain.Product{
			ID:          uuid.NewString(),
			Name:        sample.name,
			Description: sample.description,
			Price:       sample.price,
			Image:       sample.image,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := products.Create(ctx, product); err != nil {
			fail("create product %q: %v", sample.name, err)
		}
	}

	fmt.Printf("seeded %d sample products\n", len(sampleProducts))
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
