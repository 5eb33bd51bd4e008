package cart

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vitrinelabs/vitrine/internal/domain"
)

// Manager owns one cart per storefront session and is the synchronization
// wrapper the aggregate itself deliberately lacks: every operation takes
// the manager lock, so carts may be driven from concurrent HTTP handlers.
//
// When a repository is configured, carts are hydrated from it on first
// touch and written back after each mutation. Persistence failures are
// logged and do not fail the user-facing operation.
type Manager struct {
	mu     sync.Mutex
	carts  map[string]*Cart
	repo   domain.CartRepository
	logger *slog.Logger
}

// NewManager creates a manager. repo may be nil for in-memory-only carts.
func NewManager(repo domain.CartRepository, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		carts:  make(map[string]*Cart),
		repo:   repo,
		logger: logger,
	}
}

// GenerateSessionID generates a cryptographically secure session ID.
// Uses 32 bytes of random data encoded as base64 URL-safe string.
func GenerateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return base64.URLEncoding.EncodeToString(b), nil
}

// cart returns the session's cart, hydrating from the repository on first
// touch. Caller must hold mu.
func (m *Manager) cart(ctx context.Context, sessionID string) *Cart {
	if c, ok := m.carts[sessionID]; ok {
		return c
	}

	c := New()
	if m.repo != nil {
		lines, err := m.repo.Load(ctx, sessionID)
		if err != nil {
			m.logger.Error("failed to load persisted cart", "error", err)
		} else if len(lines) > 0 {
			c = Restore(lines)
		}
	}
	m.carts[sessionID] = c
	return c
}

// persist writes the session's current lines back to the repository.
// Caller must hold mu.
func (m *Manager) persist(ctx context.Context, sessionID string, c *Cart) {
	if m.repo == nil {
		return
	}
	if err := m.repo.Save(ctx, sessionID, c.Lines()); err != nil {
		m.logger.Error("failed to persist cart", "error", err)
	}
}

// Add adds one unit of product to the session's cart.
func (m *Manager) Add(ctx context.Context, sessionID string, product domain.Product, variant string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.cart(ctx, sessionID)
	c.Add(product, variant)
	m.persist(ctx, sessionID, c)
}

// UpdateQuantity sets a line's quantity, clamped into the allowed range.
func (m *Manager) UpdateQuantity(ctx context.Context, sessionID, productID, variant string, quantity int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.cart(ctx, sessionID)
	c.UpdateQuantity(productID, variant, quantity)
	m.persist(ctx, sessionID, c)
}

// Remove deletes a line from the session's cart.
func (m *Manager) Remove(ctx context.Context, sessionID, productID, variant string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.cart(ctx, sessionID)
	c.Remove(productID, variant)
	m.persist(ctx, sessionID, c)
}

// Clear empties the session's cart and drops any persisted copy.
func (m *Manager) Clear(ctx context.Context, sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.cart(ctx, sessionID)
	c.Clear()
	if m.repo != nil {
		if err := m.repo.Delete(ctx, sessionID); err != nil {
			m.logger.Error("failed to delete persisted cart", "error", err)
		}
	}
}

// Summary is a consistent snapshot of a session's cart, taken under the
// manager lock so lines and totals always agree.
type Summary struct {
	Lines      []domain.CartLine `json:"lines"`
	TotalItems int               `json:"total_items"`
	TotalPrice string            `json:"total_price"`
}

// Snapshot returns the session's lines and totals as one consistent view.
func (m *Manager) Snapshot(ctx context.Context, sessionID string) Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.cart(ctx, sessionID)
	return Summary{
		Lines:      c.Lines(),
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice().StringFixed(2),
	}
}
