package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apparel-store-service/internal/domain"
)

func TestParseSortKey(t *testing.T) {
	key, ok := ParseSortKey("")
	require.True(t, ok)
	assert.Equal(t, SortNameAsc, key, "empty input falls back to the baseline order")

	key, ok = ParseSortKey("price_desc")
	require.True(t, ok)
	assert.Equal(t, SortPriceDesc, key)

	_, ok = ParseSortKey("by_vibes")
	assert.False(t, ok)
}

func TestSortProducts_ByName(t *testing.T) {
	products := sampleProducts()

	asc := SortProducts(products, SortNameAsc)
	assert.Equal(t, "Classic Crewneck Tee", asc[0].Name)
	assert.Equal(t, "Stretch Chino Pants", asc[2].Name)

	desc := SortProducts(products, SortNameDesc)
	assert.Equal(t, "Stretch Chino Pants", desc[0].Name)
	assert.Equal(t, "Classic Crewneck Tee", desc[2].Name)
}

func TestSortProducts_ByPrice(t *testing.T) {
	products := sampleProducts()

	asc := SortProducts(products, SortPriceAsc)
	assert.Equal(t, int64(1), asc[0].ID) // 24.99
	assert.Equal(t, int64(3), asc[2].ID) // 68

	desc := SortProducts(products, SortPriceDesc)
	assert.Equal(t, int64(3), desc[0].ID)
	assert.Equal(t, int64(1), desc[2].ID)
}

func TestSortProducts_StableOnEqualKeys(t *testing.T) {
	price := decimal.NewFromInt(30)
	products := []domain.Product{
		{ID: 10, Name: "Alpha", Price: price, Category: "Shirts"},
		{ID: 11, Name: "Bravo", Price: price, Category: "Shirts"},
		{ID: 12, Name: "Charlie", Price: price, Category: "Shirts"},
	}

	// All prices equal: input order must be preserved, no secondary key.
	sorted := SortProducts(products, SortPriceAsc)
	require.Len(t, sorted, 3)
	assert.Equal(t, int64(10), sorted[0].ID)
	assert.Equal(t, int64(11), sorted[1].ID)
	assert.Equal(t, int64(12), sorted[2].ID)

	// Same for category ties.
	byCategory := SortProducts(products, SortCategoryAsc)
	assert.Equal(t, int64(10), byCategory[0].ID)
	assert.Equal(t, int64(12), byCategory[2].ID)
}

func TestSortProducts_Idempotent(t *testing.T) {
	products := sampleProducts()

	once := SortProducts(products, SortPriceAsc)
	twice := SortProducts(once, SortPriceAsc)
	assert.Equal(t, once, twice)
}

func TestSortProducts_DoesNotMutateInput(t *testing.T) {
	products := sampleProducts()
	firstID := products[0].ID

	_ = SortProducts(products, SortNameAsc)
	assert.Equal(t, firstID, products[0].ID)
}
