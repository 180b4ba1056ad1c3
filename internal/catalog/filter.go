package catalog

import (
	"apparel-store-service/internal/domain"
)

// FilterSelection holds the active filter values per facet. An empty facet
// imposes no constraint. Facets combine with AND; values within a facet with OR.
type FilterSelection struct {
	Genders    []string
	Categories []string
	Sizes      []string
	Colors     []string
}

// IsEmpty reports whether no facet has any active value.
func (fs FilterSelection) IsEmpty() bool {
	return len(fs.Genders) == 0 && len(fs.Categories) == 0 &&
		len(fs.Sizes) == 0 && len(fs.Colors) == 0
}

// ApplyFilter returns the products matching the selection, preserving input
// order. It never mutates the input. An empty selection returns the input
// slice unchanged. Unknown facet values are not an error; they simply match
// nothing.
func ApplyFilter(products []domain.Product, sel FilterSelection) []domain.Product {
	if sel.IsEmpty() {
		return products
	}

	genders := toSet(sel.Genders)
	categories := toSet(sel.Categories)
	sizes := toSet(sel.Sizes)
	colors := toSet(sel.Colors)

	matched := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if len(genders) > 0 && !genders[p.Gender] {
			continue
		}
		if len(categories) > 0 && !categories[p.Category] {
			continue
		}
		if len(sizes) > 0 && !anySizeIn(p, sizes) {
			continue
		}
		if len(colors) > 0 && !anyColorIn(p, colors) {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func anySizeIn(p domain.Product, sizes map[string]bool) bool {
	for _, s := range p.Sizes {
		if sizes[s] {
			return true
		}
	}
	return false
}

func anyColorIn(p domain.Product, colors map[string]bool) bool {
	for _, c := range p.Colors {
		if colors[c.Name] {
			return true
		}
	}
	return false
}
