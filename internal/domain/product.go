package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PRODUCT DOMAIN TYPES
// =============================================================================

// Product represents a single catalog entry. Products are read-only for the
// lifetime of a browsing session; the catalog store owns them.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`

	// OldPrice is the struck-through reference price. When present it must
	// be >= Price; loaders drop values that violate this.
	OldPrice *decimal.Decimal `json:"old_price,omitempty"`

	Category string `json:"category,omitempty"`
	Brand    string `json:"brand,omitempty"`

	// Rating is in [0.0, 5.0]. Zero means unrated; sorting and rating
	// filters treat an absent rating as 0.
	Rating     float64 `json:"rating,omitempty"`
	NumReviews int     `json:"num_reviews,omitempty"`
	Sold       int     `json:"sold,omitempty"`

	// CreatedAt is the catalog publication time. The zero value sorts as
	// the oldest possible entry under the "newest" sort mode.
	CreatedAt time.Time `json:"created_at,omitzero"`

	// Image is the cover image URL. Images holds the gallery in display
	// order; when empty the cover image stands in for the gallery.
	Image  string   `json:"image,omitempty"`
	Images []string `json:"images,omitempty"`

	// Sizes lists available variant labels (shoe sizes, garment sizes).
	// Empty means the product has no variant dimension.
	Sizes []string `json:"sizes,omitempty"`
}

// Gallery returns the product's images in display order, falling back to
// the cover image when no gallery is set.
func (p Product) Gallery() []string {
	if len(p.Images) > 0 {
		return p.Images
	}
	if p.Image != "" {
		return []string{p.Image}
	}
	return nil
}

// HasVariants reports whether the product requires a size selection.
func (p Product) HasVariants() bool {
	return len(p.Sizes) > 0
}

// PriceRange is the min/max price across a catalog, used to seed the
// storefront's price slider.
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// =============================================================================
// QUERY TYPES
// =============================================================================

// SortMode selects the ordering strategy for an already-filtered list.
// Exactly one mode is active at a time.
type SortMode string

const (
	SortRelevance  SortMode = "relevance"
	SortPriceAsc   SortMode = "price-asc"
	SortPriceDesc  SortMode = "price-desc"
	SortRatingDesc SortMode = "rating-desc"
	SortSoldDesc   SortMode = "sold-desc"
	SortNewest     SortMode = "newest"
)

// ParseSortMode maps a raw string to a SortMode. Unknown or empty values
// fall back to relevance so the query pipeline stays total.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortPriceAsc, SortPriceDesc, SortRatingDesc, SortSoldDesc, SortNewest:
		return SortMode(s)
	default:
		return SortRelevance
	}
}

// ProductFilter contains the optional predicates applied to a catalog.
// Nil fields mean "no constraint from this dimension"; all present
// predicates are combined as a conjunction.
type ProductFilter struct {
	Search    string
	Category  string
	Brand     string
	PriceMin  *decimal.Decimal
	PriceMax  *decimal.Decimal
	RatingMin *float64
}

// IsZero reports whether the filter constrains nothing.
func (f ProductFilter) IsZero() bool {
	return f.Search == "" && f.Category == "" && f.Brand == "" &&
		f.PriceMin == nil && f.PriceMax == nil && f.RatingMin == nil
}
