package catalog

import (
	"sort"
)

// FacetSummary lists the distinct values available per filter facet, used by
// clients to build the filter panel. Categories, colors and genders are
// sorted; sizes keep first-encounter order since size labels (S, M, L, ...)
// do not sort lexicographically.
type FacetSummary struct {
	Genders    []string `json:"genders"`
	Categories []string `json:"categories"`
	Sizes      []string `json:"sizes"`
	Colors     []string `json:"colors"`
}

// Facets derives the facet summary from the loaded catalog.
func (s *Store) Facets() FacetSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var summary FacetSummary
	seenGender := make(map[string]bool)
	seenCategory := make(map[string]bool)
	seenSize := make(map[string]bool)
	seenColor := make(map[string]bool)

	for _, p := range s.products {
		if p.Gender != "" && !seenGender[p.Gender] {
			seenGender[p.Gender] = true
			summary.Genders = append(summary.Genders, p.Gender)
		}
		if p.Category != "" && !seenCategory[p.Category] {
			seenCategory[p.Category] = true
			summary.Categories = append(summary.Categories, p.Category)
		}
		for _, size := range p.Sizes {
			if !seenSize[size] {
				seenSize[size] = true
				summary.Sizes = append(summary.Sizes, size)
			}
		}
		for _, c := range p.Colors {
			if !seenColor[c.Name] {
				seenColor[c.Name] = true
				summary.Colors = append(summary.Colors, c.Name)
			}
		}
	}

	sort.Strings(summary.Genders)
	sort.Strings(summary.Categories)
	sort.Strings(summary.Colors)
	return summary
}
