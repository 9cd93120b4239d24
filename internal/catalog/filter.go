package catalog

import (
	"strings"

	"github.com/Sushanthnayak-eng/FashionCart/internal/domain"
)

// FilterAll is the selector value that disables a criterion.
const FilterAll = "All"

// Filter narrows a product list. Zero-valued (or "All") criteria are
// no-ops; set criteria combine with AND.
type Filter struct {
	SearchTerm string
	Category   string
	AgeGroup   string
}

func (f Filter) filtersCategory() bool {
	return f.Category != "" && f.Category != FilterAll
}

func (f Filter) filtersAgeGroup() bool {
	return f.AgeGroup != "" && f.AgeGroup != FilterAll
}

// Apply returns the products matching every set criterion. The search term
// matches case-insensitively as a substring of name, description or
// category; one hit is enough. Category and age group are strict equality
// filters, so a value outside the fixed enums matches nothing rather than
// erroring.
func Apply(products []domain.Product, f Filter) []domain.Product {
	term := strings.ToLower(strings.TrimSpace(f.SearchTerm))

	var out []domain.Product
	for _, p := range products {
		if term != "" && !matchesTerm(p, term) {
			continue
		}
		if f.filtersCategory() && string(p.Category) != f.Category {
			continue
		}
		if f.filtersAgeGroup() && string(p.AgeGroup) != f.AgeGroup {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesTerm(p domain.Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(string(p.Category)), term)
}
