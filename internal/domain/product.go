package domain

import (
	"github.com/shopspring/decimal"
)

// ColorOption is one color a product is offered in. Name is the value users
// filter and select by; Hex is display-only.
type ColorOption struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Product represents a single item in the apparel catalog.
// The json tags match the externally dictated catalog schema
// (id, name, price, category, gender, sizes, color, description, material).
// Products are immutable after load: the catalog hands out shared slices, so
// nothing downstream may mutate a Product in place.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"` // exact decimal, see internal/pricing
	Category    string          `json:"category"`
	Gender      string          `json:"gender"`
	Sizes       []string        `json:"sizes"`
	Colors      []ColorOption   `json:"color"` // the schema names this field "color"
	Description string          `json:"description,omitempty"`
	Material    string          `json:"material,omitempty"`
}

// HasSize reports whether the product is offered in the given size.
func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// HasColor reports whether the product is offered in the given color name.
func (p Product) HasColor(name string) bool {
	for _, c := range p.Colors {
		if c.Name == name {
			return true
		}
	}
	return false
}
