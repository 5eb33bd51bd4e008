// Package cart implements the storefront cart aggregate: an ordered set of
// lines keyed by (product id, variant) with clamped quantities and derived
// totals.
package cart

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/vitrinelabs/vitrine/internal/domain"
)

type lineKey struct {
	productID string
	variant   string
}

// Cart is the mutable line-item collection for one session. All mutators
// are total: missing lines are a no-op, out-of-range quantities clamp, and
// no operation can leave a line with a quantity outside [1, 99].
//
// A Cart assumes a single logical owner and is not safe for concurrent
// mutation; Manager provides the locking wrapper for HTTP use.
type Cart struct {
	lines map[lineKey]*domain.CartLine
	order []lineKey
	subs  []func()
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{lines: make(map[lineKey]*domain.CartLine)}
}

// Restore creates a cart pre-populated from persisted lines, preserving
// their order. Quantities are clamped defensively and lines that collide
// on (product id, variant) are merged into the first occurrence.
func Restore(lines []domain.CartLine) *Cart {
	c := New()
	for _, l := range lines {
		k := lineKey{l.ProductID, l.Variant}
		if existing, ok := c.lines[k]; ok {
			existing.Quantity = domain.ClampQuantity(existing.Quantity + l.Quantity)
			continue
		}
		l.Quantity = domain.ClampQuantity(l.Quantity)
		c.lines[k] = &l
		c.order = append(c.order, k)
	}
	return c
}

// Subscribe registers fn to run after every successful mutation. Used by
// the rendering layer to refresh without framework-specific triggers.
func (c *Cart) Subscribe(fn func()) {
	if fn != nil {
		c.subs = append(c.subs, fn)
	}
}

func (c *Cart) notify() {
	for _, fn := range c.subs {
		fn()
	}
}

// Add puts one unit of product (with the given variant) in the cart. An
// existing line increments by one, clamped at the maximum; incrementing a
// full line is a no-op on the quantity, not an error. A new line captures
// the product's current price as its unit price snapshot.
func (c *Cart) Add(product domain.Product, variant string) {
	k := lineKey{product.ID, variant}

	if line, ok := c.lines[k]; ok {
		line.Quantity = domain.ClampQuantity(line.Quantity + 1)
		c.notify()
		return
	}

	c.lines[k] = &domain.CartLine{
		ProductID: product.ID,
		Variant:   variant,
		Quantity:  domain.MinLineQuantity,
		UnitPrice: product.Price,
		Name:      product.Name,
		Image:     product.Image,
	}
	c.order = append(c.order, k)
	c.notify()
}

// UpdateQuantity sets the matching line's quantity to quantity clamped
// into [1, 99]. It never removes a line, even for zero or negative input;
// removal is a distinct operation. Missing lines are a no-op.
func (c *Cart) UpdateQuantity(productID, variant string, quantity int) {
	line, ok := c.lines[lineKey{productID, variant}]
	if !ok {
		return
	}
	line.Quantity = domain.ClampQuantity(quantity)
	c.notify()
}

// Remove deletes the matching line if present, no-op otherwise.
func (c *Cart) Remove(productID, variant string) {
	k := lineKey{productID, variant}
	if _, ok := c.lines[k]; !ok {
		return
	}
	delete(c.lines, k)
	c.order = slices.DeleteFunc(c.order, func(o lineKey) bool { return o == k })
	c.notify()
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.lines = make(map[lineKey]*domain.CartLine)
	c.order = nil
	c.notify()
}

// Contains reports whether a line exists for (productID, variant).
func (c *Cart) Contains(productID, variant string) bool {
	_, ok := c.lines[lineKey{productID, variant}]
	return ok
}

// Line returns a copy of the matching line, if present.
func (c *Cart) Line(productID, variant string) (domain.CartLine, bool) {
	line, ok := c.lines[lineKey{productID, variant}]
	if !ok {
		return domain.CartLine{}, false
	}
	return *line, true
}

// Lines returns copies of all lines in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, *c.lines[k])
	}
	return out
}

// TotalItems returns the summed quantity across all lines, not the number
// of distinct lines.
func (c *Cart) TotalItems() int {
	var n int
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

// TotalPrice returns the sum of unit price times quantity over all lines.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, k := range c.order {
		total = total.Add(c.lines[k].Subtotal())
	}
	return total
}
