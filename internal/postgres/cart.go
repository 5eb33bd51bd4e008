// Package postgres provides the PostgreSQL-backed cart repository. Carts
// are fully rewritten on every save: a session's line set is small (at most
// a few dozen rows) and delete-plus-insert inside one transaction keeps the
// stored order authoritative.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/vitrinelabs/vitrine/internal/domain"
)

// CartStore implements domain.CartRepository on a pgx connection pool.
type CartStore struct {
	pool *pgxpool.Pool
}

// Compile-time check that CartStore implements domain.CartRepository.
var _ domain.CartRepository = (*CartStore)(nil)

// NewCartStore creates a new PostgreSQL-backed cart repository.
func NewCartStore(pool *pgxpool.Pool) *CartStore {
	return &CartStore{pool: pool}
}

// Save replaces the persisted lines for a session with the given set,
// preserving slice order via the position column.
func (s *CartStore) Save(ctx context.Context, sessionID string, lines []domain.CartLine) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to clear cart lines: %w", err)
	}

	for i, line := range lines {
		_, err := tx.Exec(ctx, `
			INSERT INTO cart_lines
				(session_id, product_id, variant, quantity, unit_price, product_name, product_image, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			sessionID, line.ProductID, line.Variant, line.Quantity,
			line.UnitPrice, line.Name, line.Image, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert cart line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit cart save: %w", err)
	}
	return nil
}

// Load returns a session's lines in their stored order. A session with no
// persisted cart yields an empty slice, not an error.
func (s *CartStore) Load(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT product_id, variant, quantity, unit_price, product_name, product_image
		FROM cart_lines
		WHERE session_id = $1
		ORDER BY position`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var (
			line  domain.CartLine
			price decimal.Decimal
		)
		if err := rows.Scan(&line.ProductID, &line.Variant, &line.Quantity, &price, &line.Name, &line.Image); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		line.UnitPrice = price
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cart lines: %w", err)
	}

	return lines, nil
}

// Delete drops all persisted lines for a session.
func (s *CartStore) Delete(ctx context.Context, sessionID string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM cart_lines WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to delete cart lines: %w", err)
	}
	return nil
}
