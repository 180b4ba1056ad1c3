package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apparel-store-service/internal/domain"
)

func TestApplyFilter_EmptySelectionIsIdentity(t *testing.T) {
	products := sampleProducts()
	result := ApplyFilter(products, FilterSelection{})

	// Identity: the very same slice comes back, untouched.
	assert.Equal(t, products, result)
	assert.Len(t, result, len(products))
}

func TestApplyFilter_CategoryMembership(t *testing.T) {
	products := sampleProducts()

	// Filtering by a product's own category always retains that product.
	for _, p := range products {
		result := ApplyFilter(products, FilterSelection{Categories: []string{p.Category}})
		found := false
		for _, r := range result {
			if r.ID == p.ID {
				found = true
			}
		}
		assert.True(t, found, "product %d should survive a filter on its own category %q", p.ID, p.Category)
	}
}

func TestApplyFilter_FacetsCombineWithAND(t *testing.T) {
	products := sampleProducts()

	result := ApplyFilter(products, FilterSelection{
		Genders:    []string{"men"},
		Categories: []string{"Shirts"},
	})
	require.Len(t, result, 1)
	assert.Equal(t, int64(1), result[0].ID)
}

func TestApplyFilter_ValuesWithinFacetCombineWithOR(t *testing.T) {
	products := sampleProducts()

	result := ApplyFilter(products, FilterSelection{
		Categories: []string{"Shirts", "Hoodies"},
	})
	require.Len(t, result, 2)
}

func TestApplyFilter_SizeAndColorIntersect(t *testing.T) {
	products := sampleProducts()

	bySize := ApplyFilter(products, FilterSelection{Sizes: []string{"XL"}})
	require.Len(t, bySize, 1)
	assert.Equal(t, int64(2), bySize[0].ID)

	byColor := ApplyFilter(products, FilterSelection{Colors: []string{"Black"}})
	require.Len(t, byColor, 2)
}

func TestApplyFilter_UnknownValueYieldsEmptyNotError(t *testing.T) {
	result := ApplyFilter(sampleProducts(), FilterSelection{Categories: []string{"Spacesuits"}})
	assert.Empty(t, result)
}

func TestApplyFilter_PreservesInputOrder(t *testing.T) {
	products := sampleProducts() // order: Pants, Shirts, Hoodies by construction

	result := ApplyFilter(products, FilterSelection{Genders: []string{"men"}})
	require.Len(t, result, 2)
	assert.Equal(t, int64(3), result[0].ID)
	assert.Equal(t, int64(1), result[1].ID)
}

func TestApplyFilter_DoesNotMutateInput(t *testing.T) {
	products := sampleProducts()
	before := make([]domain.Product, len(products))
	copy(before, products)

	_ = ApplyFilter(products, FilterSelection{Genders: []string{"men"}})
	assert.Equal(t, before, products)
}

func TestApplyFilter_Idempotent(t *testing.T) {
	products := sampleProducts()
	sel := FilterSelection{Categories: []string{"Shirts", "Hoodies"}}

	once := ApplyFilter(products, sel)
	twice := ApplyFilter(once, sel)
	assert.Equal(t, once, twice)
}
