package catalog

import (
	"math"
	"slices"
	"strings"

	"github.com/vitrinelabs/vitrine/internal/domain"
)

// Query functions are pure: they never mutate their input, never fail, and
// depend only on their arguments. Malformed predicate values widen the
// result set instead of erroring, keeping the pipeline total.

// MinSuggestTermLen is the minimum trimmed search term length for the
// suggestion path. The full catalog-page search accepts any non-empty term.
const MinSuggestTermLen = 2

// Search returns the products whose name, description, or brand contains
// term, case-insensitively. An empty or whitespace-only term returns the
// input unchanged. Matches keep original catalog order.
func Search(products []domain.Product, term string) []domain.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return products
	}

	var out []domain.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) ||
			(p.Brand != "" && strings.Contains(strings.ToLower(p.Brand), term)) {
			out = append(out, p)
		}
	}
	return out
}

// Suggest returns up to limit search matches for the suggestion dropdown.
// Terms shorter than MinSuggestTermLen after trimming yield nothing.
func Suggest(products []domain.Product, term string, limit int) []domain.Product {
	trimmed := strings.TrimSpace(term)
	if len([]rune(trimmed)) < MinSuggestTermLen {
		return nil
	}

	matches := Search(products, trimmed)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Filter applies each present predicate of f as a conjunction. The Search
// field is ignored here; FilterAndSort runs it as a separate stage.
func Filter(products []domain.Product, f domain.ProductFilter) []domain.Product {
	priceMin := f.PriceMin
	priceMax := f.PriceMax
	ratingMin := f.RatingMin
	if ratingMin != nil && (math.IsNaN(*ratingMin) || math.IsInf(*ratingMin, 0)) {
		ratingMin = nil
	}

	var out []domain.Product
	for _, p := range products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Brand != "" && p.Brand != f.Brand {
			continue
		}
		if priceMin != nil && p.Price.LessThan(*priceMin) {
			continue
		}
		if priceMax != nil && p.Price.GreaterThan(*priceMax) {
			continue
		}
		if ratingMin != nil && p.Rating < *ratingMin {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Sort returns a copy of products ordered by mode. Sorting is stable, so
// ties preserve the relative input order. Relevance and unknown modes
// return the input as-is.
func Sort(products []domain.Product, mode domain.SortMode) []domain.Product {
	cmp := comparator(mode)
	if cmp == nil {
		return products
	}

	out := slices.Clone(products)
	slices.SortStableFunc(out, cmp)
	return out
}

func comparator(mode domain.SortMode) func(a, b domain.Product) int {
	switch mode {
	case domain.SortPriceAsc:
		return func(a, b domain.Product) int { return a.Price.Cmp(b.Price) }
	case domain.SortPriceDesc:
		return func(a, b domain.Product) int { return b.Price.Cmp(a.Price) }
	case domain.SortRatingDesc:
		return func(a, b domain.Product) int { return cmpFloat(b.Rating, a.Rating) }
	case domain.SortSoldDesc:
		return func(a, b domain.Product) int { return cmpInt(b.Sold, a.Sold) }
	case domain.SortNewest:
		// Zero CreatedAt compares as the earliest possible time, so
		// undated products always sink to the end.
		return func(a, b domain.Product) int { return b.CreatedAt.Compare(a.CreatedAt) }
	default:
		return nil
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// FilterAndSort runs the full query pipeline: search, then the remaining
// filter predicates, then sort. Search and filter always precede sort so
// tie-break order is defined against the filtered subset.
func FilterAndSort(products []domain.Product, f domain.ProductFilter, mode domain.SortMode) []domain.Product {
	out := Search(products, f.Search)
	out = Filter(out, f)
	return Sort(out, mode)
}
