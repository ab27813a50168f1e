// Package plans reads the subscription plans table. The assistant's broker
// branch answers plan questions from it; plans are managed out of band.
package plans

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Plan struct {
	ID           uuid.UUID
	Name         string
	PriceCents   int64
	MaxListings  int
	Highlighted  bool
	Description  string
	DisplayOrder int
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListActive returns the sellable plans in display order.
func (r *Repository) ListActive(ctx context.Context) ([]Plan, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, price_cents, max_listings, highlighted, description, display_order
		FROM planos
		WHERE active = true
		ORDER BY display_order ASC, price_cents ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Plan, 0)
	for rows.Next() {
		var p Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.PriceCents, &p.MaxListings, &p.Highlighted, &p.Description, &p.DisplayOrder); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return items, nil
}
