package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CART DOMAIN TYPES
// =============================================================================

// Quantity bounds enforced on every cart line. A line outside these bounds
// is never observable; mutations clamp at the boundary.
const (
	MinLineQuantity = 1
	MaxLineQuantity = 99
)

// CartLine is one row in the cart, uniquely keyed by product id plus
// optional variant. Two lines with the same product but different variants
// are distinct purchasable units.
type CartLine struct {
	ProductID string `json:"product_id"`

	// Variant is the selected size label, empty for products without a
	// variant dimension.
	Variant string `json:"variant,omitempty"`

	// Quantity is always in [MinLineQuantity, MaxLineQuantity] while the
	// line exists.
	Quantity int `json:"quantity"`

	// UnitPrice is the product price captured when the line was first
	// added. Later catalog price changes never retroactively alter a line.
	UnitPrice decimal.Decimal `json:"unit_price"`

	// Display snapshot, carried so rendering and persistence do not need
	// a catalog lookup per line.
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
}

// Subtotal returns UnitPrice * Quantity for this line.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ClampQuantity forces q into the allowed per-line range.
func ClampQuantity(q int) int {
	if q < MinLineQuantity {
		return MinLineQuantity
	}
	if q > MaxLineQuantity {
		return MaxLineQuantity
	}
	return q
}

// CartRepository persists a session's cart lines. Implementations must
// round-trip lines faithfully (product id, variant, quantity, unit price)
// and preserve insertion order.
type CartRepository interface {
	Save(ctx context.Context, sessionID string, lines []CartLine) error
	Load(ctx context.Context, sessionID string) ([]CartLine, error)
	Delete(ctx context.Context, sessionID string) error
}

// Cart-related domain errors.
var (
	ErrCartEmpty       = &Error{Code: EINVALID, Message: "Cart is empty"}
	ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Product not found"}
	ErrVariantRequired = &Error{Code: EINVALID, Message: "This product requires a size selection"}
	ErrUnknownVariant  = &Error{Code: EINVALID, Message: "Unknown size for this product"}
)
