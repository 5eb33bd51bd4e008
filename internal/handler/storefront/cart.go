package storefront

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"

	"github.com/google/uuid"

	"github.com/vitrinelabs/vitrine/internal/cart"
	"github.com/vitrinelabs/vitrine/internal/catalog"
	"github.com/vitrinelabs/vitrine/internal/domain"
	"github.com/vitrinelabs/vitrine/internal/telemetry"
)

// CartHandler handles all cart-related storefront routes
type CartHandler struct {
	carts   *cart.Manager
	store   *catalog.Store
	metrics *telemetry.Metrics
	logger  *slog.Logger
	secure  bool
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *cart.Manager, store *catalog.Store, metrics *telemetry.Metrics, logger *slog.Logger, secure bool) *CartHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartHandler{
		carts:   carts,
		store:   store,
		metrics: metrics,
		logger:  logger,
		secure:  secure,
	}
}

// session returns the request's session ID, minting one (and setting the
// cookie) when absent.
func (h *CartHandler) session(w http.ResponseWriter, r *http.Request) (string, error) {
	if sessionID := GetSessionIDFromCookie(r); sessionID != "" {
		return sessionID, nil
	}

	sessionID, err := cart.GenerateSessionID()
	if err != nil {
		return "", domain.Internal(err, "cart.session", "failed to create session")
	}
	SetSessionCookie(w, sessionID, h.secure)
	return sessionID, nil
}

// View handles GET /api/cart
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	sessionID := GetSessionIDFromCookie(r)
	if sessionID == "" {
		// No session yet means an empty cart; don't mint a session for a read.
		respondJSON(w, http.StatusOK, cart.Summary{
			Lines:      []domain.CartLine{},
			TotalPrice: "0.00",
		})
		return
	}

	summary := h.carts.Snapshot(r.Context(), sessionID)
	if summary.Lines == nil {
		summary.Lines = []domain.CartLine{}
	}
	respondJSON(w, http.StatusOK, summary)
}

type cartItemRequest struct {
	ProductID string `json:"product_id"`
	Variant   string `json:"variant"`
	Quantity  int    `json:"quantity"`
}

// Add handles POST /api/cart/items: puts one unit of a product in the cart.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.Invalid("cart.add", "Invalid request body"))
		return
	}

	product, ok := h.store.ProductByID(req.ProductID)
	if !ok {
		respondError(w, domain.ErrProductNotFound)
		return
	}

	if product.HasVariants() {
		if req.Variant == "" {
			respondError(w, domain.ErrVariantRequired)
			return
		}
		if !slices.Contains(product.Sizes, req.Variant) {
			respondError(w, domain.ErrUnknownVariant)
			return
		}
	} else {
		req.Variant = ""
	}

	sessionID, err := h.session(w, r)
	if err != nil {
		respondError(w, err)
		return
	}

	h.carts.Add(r.Context(), sessionID, product, req.Variant)
	if h.metrics != nil {
		h.metrics.CartItemsAdd.Inc()
	}

	respondJSON(w, http.StatusOK, h.carts.Snapshot(r.Context(), sessionID))
}

// Update handles PUT /api/cart/items: sets a line's quantity, clamped into
// [1, 99]. Updating a line that does not exist is a no-op, matching the
// idempotent behavior the UI expects for repeated clicks.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.Invalid("cart.update", "Invalid request body"))
		return
	}

	sessionID, err := h.session(w, r)
	if err != nil {
		respondError(w, err)
		return
	}

	h.carts.UpdateQuantity(r.Context(), sessionID, req.ProductID, req.Variant, req.Quantity)
	if h.metrics != nil {
		h.metrics.CartUpdated.Inc()
	}

	respondJSON(w, http.StatusOK, h.carts.Snapshot(r.Context(), sessionID))
}

// Remove handles DELETE /api/cart/items?product_id=...&variant=...
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("product_id")
	if productID == "" {
		respondError(w, domain.Invalid("cart.remove", "product_id is required"))
		return
	}

	sessionID, err := h.session(w, r)
	if err != nil {
		respondError(w, err)
		return
	}

	h.carts.Remove(r.Context(), sessionID, productID, r.URL.Query().Get("variant"))
	if h.metrics != nil {
		h.metrics.CartUpdated.Inc()
	}

	respondJSON(w, http.StatusOK, h.carts.Snapshot(r.Context(), sessionID))
}

// Clear handles DELETE /api/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.session(w, r)
	if err != nil {
		respondError(w, err)
		return
	}

	h.carts.Clear(r.Context(), sessionID)
	if h.metrics != nil {
		h.metrics.CartCleared.Inc()
	}

	respondJSON(w, http.StatusOK, cart.Summary{
		Lines:      []domain.CartLine{},
		TotalPrice: "0.00",
	})
}

// checkoutResponse is the JSON body for a completed mock checkout.
type checkoutResponse struct {
	OrderID    string            `json:"order_id"`
	Lines      []domain.CartLine `json:"lines"`
	TotalItems int               `json:"total_items"`
	TotalPrice string            `json:"total_price"`
}

// Checkout handles POST /api/checkout: snapshots the cart into a mock
// order and clears it. Payment processing is intentionally absent.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID := GetSessionIDFromCookie(r)
	if sessionID == "" {
		respondError(w, domain.ErrCartEmpty)
		return
	}

	summary := h.carts.Snapshot(r.Context(), sessionID)
	if len(summary.Lines) == 0 {
		respondError(w, domain.ErrCartEmpty)
		return
	}

	h.carts.Clear(r.Context(), sessionID)

	orderID := uuid.New().String()
	if h.metrics != nil {
		h.metrics.CheckoutCompleted.Inc()
		if total, err := decimalValue(summary.TotalPrice); err == nil {
			h.metrics.CartValue.Observe(total)
			h.metrics.OrderValue.Observe(total)
		}
	}
	h.logger.Info("checkout completed",
		"order_id", orderID,
		"items", summary.TotalItems,
		"total", summary.TotalPrice,
	)

	respondJSON(w, http.StatusOK, checkoutResponse{
		OrderID:    orderID,
		Lines:      summary.Lines,
		TotalItems: summary.TotalItems,
		TotalPrice: summary.TotalPrice,
	})
}
