// Package pricing derives order totals from cart lines and a shipping
// selection. All arithmetic uses exact decimals; rounding to two places is a
// presentation concern and happens only at the API boundary (Totals.Rounded).
package pricing

import (
	"github.com/shopspring/decimal"

	"apparel-store-service/internal/cart"
)

// Method is the shipping speed chosen at checkout.
type Method string

// Location is the shipping destination region.
type Location string

const (
	MethodStandard Method = "standard"
	MethodExpress  Method = "express"
	MethodPriority Method = "priority"

	LocationCanada        Location = "canada"
	LocationUnitedStates  Location = "united_states"
	LocationInternational Location = "international"
)

// Selection is the shipping choice supplied by the caller.
type Selection struct {
	Method   Method
	Location Location
}

// Totals is the derived order summary. It is recomputed from scratch on every
// cart or shipping change, never stored.
type Totals struct {
	Merchandise decimal.Decimal
	Shipping    decimal.Decimal
	Tax         decimal.Decimal
	Order       decimal.Decimal
}

// Orders over this merchandise total ship free. The boundary is exclusive:
// exactly 500 still pays shipping.
var freeShippingThreshold = decimal.NewFromInt(500)

// Merchandise shipped to Canada is taxed at 5%. Shipping cost is not taxed.
var canadaTaxRate = decimal.RequireFromString("0.05")

// rateTable holds the flat shipping cost per method and destination.
var rateTable = map[Method]map[Location]decimal.Decimal{
	MethodStandard: {
		LocationCanada:        decimal.NewFromInt(10),
		LocationUnitedStates:  decimal.NewFromInt(15),
		LocationInternational: decimal.NewFromInt(20),
	},
	MethodExpress: {
		LocationCanada:        decimal.NewFromInt(25),
		LocationUnitedStates:  decimal.NewFromInt(25),
		LocationInternational: decimal.NewFromInt(30),
	},
	MethodPriority: {
		LocationCanada:        decimal.NewFromInt(35),
		LocationUnitedStates:  decimal.NewFromInt(50),
		LocationInternational: decimal.NewFromInt(50),
	},
}

// ParseMethod maps a raw string to a shipping Method.
func ParseMethod(raw string) (Method, bool) {
	switch Method(raw) {
	case MethodStandard, MethodExpress, MethodPriority:
		return Method(raw), true
	}
	return "", false
}

// ParseLocation maps a raw string to a shipping Location.
func ParseLocation(raw string) (Location, bool) {
	switch Location(raw) {
	case LocationCanada, LocationUnitedStates, LocationInternational:
		return Location(raw), true
	}
	return "", false
}

// Compute derives the order totals for the given cart lines and shipping
// selection. An empty cart costs nothing to ship. A method/location pair
// missing from the rate table contributes zero shipping rather than failing;
// callers are expected to validate the selection at the edge.
func Compute(lines []cart.Line, sel Selection) Totals {
	merchandise := decimal.Zero
	for _, l := range lines {
		merchandise = merchandise.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	shipping := decimal.Zero
	if merchandise.GreaterThan(decimal.Zero) && !merchandise.GreaterThan(freeShippingThreshold) {
		shipping = rateTable[sel.Method][sel.Location]
	}

	tax := decimal.Zero
	if sel.Location == LocationCanada {
		tax = merchandise.Mul(canadaTaxRate)
	}

	return Totals{
		Merchandise: merchandise,
		Shipping:    shipping,
		Tax:         tax,
		Order:       merchandise.Add(shipping).Add(tax),
	}
}

// Rounded returns the totals rounded to two decimal places for presentation.
func (t Totals) Rounded() Totals {
	return Totals{
		Merchandise: t.Merchandise.Round(2),
		Shipping:    t.Shipping.Round(2),
		Tax:         t.Tax.Round(2),
		Order:       t.Order.Round(2),
	}
}
