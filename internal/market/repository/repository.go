// Package repository reads the listing rows the market aggregator consumes.
package repository

import (
	"context"

	"broker_portal_backend/internal/market/aggregate"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ActiveRows returns the market slice of every active listing, optionally
// narrowed to one city.
func (r *Repository) ActiveRows(ctx context.Context, city string) ([]aggregate.Row, error) {
	query := `
		SELECT a.estado, a.cidade, a.bairro, t.tipo,
			a.valor_venda, COALESCE(a.valor_mensal, a.valor_locacao), a.area_privativa
		FROM anuncios a
		JOIN tipos_imovel t ON t.id = a.tipo_imovel_id
		WHERE a.status = 'active'`
	args := []any{}
	if city != "" {
		query += " AND LOWER(a.cidade) = LOWER($1)"
		args = append(args, city)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]aggregate.Row, 0)
	for rows.Next() {
		var row aggregate.Row
		if err := rows.Scan(
			&row.State, &row.City, &row.Neighborhood, &row.PropertyType,
			&row.SalePriceCents, &row.MonthlyRentCents, &row.AreaM2,
		); err != nil {
			return nil, err
		}
		items = append(items, row)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return items, nil
}
