// Package source loads the product catalog from its externally owned home.
// The catalog schema (id, name, price, category, gender, sizes, color,
// description, material) is dictated by the data owner, not by this service.
package source

import (
	"context"

	"apparel-store-service/internal/domain"
)

// ProductLoader fetches the full product catalog. Implementations are
// fallible; a failed load must leave the caller's current catalog untouched.
type ProductLoader interface {
	LoadProducts(ctx context.Context) ([]domain.Product, error)
}
