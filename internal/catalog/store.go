package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vitrinelabs/vitrine/internal/domain"
)

// Store holds the full product collection for a browsing session. The
// collection is immutable after construction, so the store is safe for
// concurrent read-only use without synchronization.
type Store struct {
	products []domain.Product
	byID     map[string]int
}

// NewStore builds a store from an already-normalized product slice.
// Products with duplicate ids are rejected.
func NewStore(products []domain.Product) (*Store, error) {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		if p.ID == "" {
			return nil, domain.Invalid("catalog.new", fmt.Sprintf("product at index %d has no id", i))
		}
		if _, ok := byID[p.ID]; ok {
			return nil, &domain.Error{
				Code:    domain.ECONFLICT,
				Message: fmt.Sprintf("duplicate product id %q", p.ID),
				Op:      "catalog.new",
			}
		}
		byID[p.ID] = i
	}

	return &Store{
		products: slices.Clone(products),
		byID:     byID,
	}, nil
}

// productRecord shadows the timestamp field so a malformed created_at
// degrades to the zero time (sorts oldest) instead of failing the load.
type productRecord struct {
	domain.Product
	CreatedAt string `json:"created_at"`
}

// LoadStore reads a JSON catalog file and builds a store from it.
func LoadStore(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.Internal(err, "catalog.load", "failed to read catalog file")
	}

	var records []productRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, domain.Internal(err, "catalog.load", "failed to parse catalog file")
	}

	products := make([]domain.Product, len(records))
	for i, rec := range records {
		p := rec.Product
		if ts, err := time.Parse(time.RFC3339, rec.CreatedAt); err == nil {
			p.CreatedAt = ts
		}
		normalize(&p)
		products[i] = p
	}

	return NewStore(products)
}

// normalize clamps out-of-range optional fields to their documented
// defaults so queries never see malformed values.
func normalize(p *domain.Product) {
	if p.Price.IsNegative() {
		p.Price = decimal.Zero
	}
	if p.OldPrice != nil && p.OldPrice.LessThan(p.Price) {
		p.OldPrice = nil
	}
	if p.Rating < 0 {
		p.Rating = 0
	}
	if p.Rating > 5 {
		p.Rating = 5
	}
	if p.NumReviews < 0 {
		p.NumReviews = 0
	}
	if p.Sold < 0 {
		p.Sold = 0
	}
}

// Products returns the full catalog in original order. Callers must not
// mutate the returned slice.
func (s *Store) Products() []domain.Product {
	return s.products
}

// Len returns the number of products in the catalog.
func (s *Store) Len() int {
	return len(s.products)
}

// ProductByID looks up a product by its id.
func (s *Store) ProductByID(id string) (domain.Product, bool) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return s.products[i], true
}

// Brands returns the distinct non-empty brands in the catalog, sorted.
func (s *Store) Brands() []string {
	return s.distinct(func(p domain.Product) string { return p.Brand })
}

// Categories returns the distinct non-empty category slugs, sorted.
func (s *Store) Categories() []string {
	return s.distinct(func(p domain.Product) string { return p.Category })
}

func (s *Store) distinct(field func(domain.Product) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range s.products {
		v := field(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// PriceRange returns the lowest and highest price in the catalog.
// An empty catalog yields a zero range.
func (s *Store) PriceRange() domain.PriceRange {
	if len(s.products) == 0 {
		return domain.PriceRange{}
	}

	r := domain.PriceRange{Min: s.products[0].Price, Max: s.products[0].Price}
	for _, p := range s.products[1:] {
		if p.Price.LessThan(r.Min) {
			r.Min = p.Price
		}
		if p.Price.GreaterThan(r.Max) {
			r.Max = p.Price
		}
	}
	return r
}
