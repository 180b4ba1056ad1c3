package catalog

import (
	"sort"

	"apparel-store-service/internal/domain"
)

// SortKey selects the comparator for SortProducts. The zero value is not
// valid; callers should fall back to SortNameAsc, the baseline browse order.
type SortKey string

const (
	SortNameAsc     SortKey = "name_asc"
	SortNameDesc    SortKey = "name_desc"
	SortPriceDesc   SortKey = "price_desc"
	SortPriceAsc    SortKey = "price_asc"
	SortCategoryAsc SortKey = "category_asc"
)

// ParseSortKey maps a raw query value to a SortKey. Empty input means the
// baseline name-ascending order.
func ParseSortKey(raw string) (SortKey, bool) {
	switch SortKey(raw) {
	case SortNameAsc, SortNameDesc, SortPriceDesc, SortPriceAsc, SortCategoryAsc:
		return SortKey(raw), true
	case "":
		return SortNameAsc, true
	}
	return "", false
}

// SortProducts returns a new slice ordered by the given key. The sort is
// stable: products comparing equal keep their relative input order, so there
// is no secondary tie-break key. Name and category comparisons are
// case-sensitive lexicographic. The input is never mutated.
func SortProducts(products []domain.Product, key SortKey) []domain.Product {
	sorted := make([]domain.Product, len(products))
	copy(sorted, products)

	var less func(i, j int) bool
	switch key {
	case SortNameDesc:
		less = func(i, j int) bool { return sorted[i].Name > sorted[j].Name }
	case SortPriceDesc:
		less = func(i, j int) bool { return sorted[i].Price.GreaterThan(sorted[j].Price) }
	case SortPriceAsc:
		less = func(i, j int) bool { return sorted[i].Price.LessThan(sorted[j].Price) }
	case SortCategoryAsc:
		less = func(i, j int) bool { return sorted[i].Category < sorted[j].Category }
	default: // SortNameAsc
		less = func(i, j int) bool { return sorted[i].Name < sorted[j].Name }
	}

	sort.SliceStable(sorted, less)
	return sorted
}
