// Package projector derives read-only views from catalog and cart
// state. Everything here is a pure function recomputed on demand; the
// package owns no mutable state.
package projector

import "boltstore/internal/domain"

// FilteredProducts returns the catalog entries matching the selected
// category. The empty string selects everything. Matching is exact and
// case-sensitive, and input order is preserved.
func FilteredProducts(catalog []domain.Product, selectedCategory string) []domain.Product {
	if selectedCategory == "" {
		out := make([]domain.Product, len(catalog))
		copy(out, catalog)
		return out
	}
	out := make([]domain.Product, 0)
	for _, p := range catalog {
		if p.Category == selectedCategory {
			out = append(out, p)
		}
	}
	return out
}

// AvailableCategories returns the distinct non-empty category values
// present in the catalog, in first-seen order.
func AvailableCategories(catalog []domain.Product) []string {
	seen := make(map[string]struct{}, len(catalog))
	out := make([]string, 0)
	for _, p := range catalog {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
