package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"apparel-store-service/internal/cart"
)

func line(price string, quantity int) cart.Line {
	return cart.Line{
		ProductID: 1,
		Name:      "Test Item",
		Price:     decimal.RequireFromString(price),
		Size:      "M",
		Color:     "Black",
		Quantity:  quantity,
	}
}

func assertDecimalEq(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual),
		"expected %s, got %s", expected, actual)
}

func TestCompute_StandardToUnitedStates(t *testing.T) {
	totals := Compute([]cart.Line{line("100", 1)}, Selection{
		Method:   MethodStandard,
		Location: LocationUnitedStates,
	})

	assertDecimalEq(t, "100", totals.Merchandise)
	assertDecimalEq(t, "15", totals.Shipping)
	assertDecimalEq(t, "0", totals.Tax)
	assertDecimalEq(t, "115", totals.Order)
}

func TestCompute_ExpressToCanadaWithTax(t *testing.T) {
	totals := Compute([]cart.Line{line("50", 1)}, Selection{
		Method:   MethodExpress,
		Location: LocationCanada,
	})

	assertDecimalEq(t, "50", totals.Merchandise)
	assertDecimalEq(t, "25", totals.Shipping)
	assertDecimalEq(t, "2.50", totals.Tax)
	assertDecimalEq(t, "77.50", totals.Order)
}

func TestCompute_FreeShippingAboveThreshold(t *testing.T) {
	for _, sel := range []Selection{
		{MethodStandard, LocationCanada},
		{MethodExpress, LocationInternational},
		{MethodPriority, LocationUnitedStates},
	} {
		totals := Compute([]cart.Line{line("600", 1)}, sel)
		assertDecimalEq(t, "0", totals.Shipping)
	}
}

func TestCompute_ExactlyThresholdStillPaysShipping(t *testing.T) {
	// The boundary is exclusive: a 500 merchandise total is not free.
	totals := Compute([]cart.Line{line("500", 1)}, Selection{
		Method:   MethodStandard,
		Location: LocationUnitedStates,
	})
	assertDecimalEq(t, "15", totals.Shipping)
	assertDecimalEq(t, "515", totals.Order)
}

func TestCompute_EmptyCartShipsForNothing(t *testing.T) {
	totals := Compute(nil, Selection{Method: MethodPriority, Location: LocationInternational})
	assertDecimalEq(t, "0", totals.Merchandise)
	assertDecimalEq(t, "0", totals.Shipping)
	assertDecimalEq(t, "0", totals.Tax)
	assertDecimalEq(t, "0", totals.Order)
}

func TestCompute_QuantityMultipliesAndAccumulatesExactly(t *testing.T) {
	// 3 x 19.99 + 2 x 24.99 = 59.97 + 49.98 = 109.95
	totals := Compute([]cart.Line{line("19.99", 3), line("24.99", 2)}, Selection{
		Method:   MethodStandard,
		Location: LocationCanada,
	})

	assertDecimalEq(t, "109.95", totals.Merchandise)
	assertDecimalEq(t, "10", totals.Shipping)
	// 109.95 * 0.05 = 5.4975, kept unrounded internally.
	assertDecimalEq(t, "5.4975", totals.Tax)
	assertDecimalEq(t, "125.4475", totals.Order)

	rounded := totals.Rounded()
	assertDecimalEq(t, "5.50", rounded.Tax)
	assertDecimalEq(t, "125.45", rounded.Order)
}

func TestCompute_ShippingIsNotTaxed(t *testing.T) {
	totals := Compute([]cart.Line{line("100", 1)}, Selection{
		Method:   MethodPriority,
		Location: LocationCanada,
	})
	// Tax on merchandise only: 100 * 0.05, not (100 + 35) * 0.05.
	assertDecimalEq(t, "5", totals.Tax)
	assertDecimalEq(t, "140", totals.Order)
}

func TestRateTableCoverage(t *testing.T) {
	expected := map[Method]map[Location]string{
		MethodStandard: {LocationCanada: "10", LocationUnitedStates: "15", LocationInternational: "20"},
		MethodExpress:  {LocationCanada: "25", LocationUnitedStates: "25", LocationInternational: "30"},
		MethodPriority: {LocationCanada: "35", LocationUnitedStates: "50", LocationInternational: "50"},
	}
	for method, byLocation := range expected {
		for location, rate := range byLocation {
			totals := Compute([]cart.Line{line("100", 1)}, Selection{Method: method, Location: location})
			assertDecimalEq(t, rate, totals.Shipping)
		}
	}
}

func TestParseMethodAndLocation(t *testing.T) {
	m, ok := ParseMethod("express")
	assert.True(t, ok)
	assert.Equal(t, MethodExpress, m)

	_, ok = ParseMethod("teleport")
	assert.False(t, ok)

	l, ok := ParseLocation("united_states")
	assert.True(t, ok)
	assert.Equal(t, LocationUnitedStates, l)

	_, ok = ParseLocation("moon")
	assert.False(t, ok)
}
