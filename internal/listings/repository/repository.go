// Package repository provides data access for listings over the anuncios
// table and its operacoes/tipos_imovel lookup tables. Rows are normalized at
// this boundary: photos come back as a slice and operation/type as enums.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"broker_portal_backend/internal/listings/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("listing not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const listingColumns = `
	a.id, a.codigo, a.broker_id, a.titulo, a.descricao,
	a.estado, a.cidade, a.bairro,
	o.tipo, t.tipo,
	a.valor_venda, a.valor_locacao, a.valor_diaria, a.valor_mensal,
	a.area_privativa, a.quartos, a.suites, a.banheiros, a.vagas,
	a.fotos, a.caracteristicas, a.status, a.created_at, a.updated_at`

const listingJoins = `
	FROM anuncios a
	JOIN operacoes o ON o.id = a.operacao_id
	JOIN tipos_imovel t ON t.id = a.tipo_imovel_id`

func scanListing(row pgx.Row) (domain.Listing, error) {
	var (
		l        domain.Listing
		fotos    *string
		features []string
	)
	err := row.Scan(
		&l.ID, &l.Codigo, &l.BrokerID, &l.Title, &l.Description,
		&l.State, &l.City, &l.Neighborhood,
		&l.Operation, &l.PropertyType,
		&l.SalePriceCents, &l.RentalPriceCents, &l.DailyPriceCents, &l.MonthlyPriceCents,
		&l.AreaM2, &l.Bedrooms, &l.Suites, &l.Bathrooms, &l.ParkingSpots,
		&fotos, &features, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return domain.Listing{}, err
	}
	if fotos != nil {
		l.Photos = domain.SplitPhotos(*fotos)
	}
	l.Features = features
	return l, nil
}

type CreateParams struct {
	BrokerID     uuid.UUID
	Title        string
	Description  string
	State        string
	City         string
	Neighborhood string
	Operation    domain.Operation
	PropertyType domain.PropertyType

	SalePriceCents    *int64
	RentalPriceCents  *int64
	DailyPriceCents   *int64
	MonthlyPriceCents *int64

	AreaM2       float64
	Bedrooms     int
	Suites       int
	Bathrooms    int
	ParkingSpots int

	Photos   []string
	Features []string
	Status   domain.Status
}

func (r *Repository) Create(ctx context.Context, params CreateParams) (domain.Listing, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO anuncios (
			broker_id, titulo, descricao, estado, cidade, bairro,
			operacao_id, tipo_imovel_id,
			valor_venda, valor_locacao, valor_diaria, valor_mensal,
			area_privativa, quartos, suites, banheiros, vagas,
			fotos, caracteristicas, status
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			(SELECT id FROM operacoes WHERE tipo = $7),
			(SELECT id FROM tipos_imovel WHERE tipo = $8),
			$9, $10, $11, $12,
			$13, $14, $15, $16, $17,
			$18, $19, $20
		)
		RETURNING id
	`,
		params.BrokerID, params.Title, params.Description, params.State, params.City, params.Neighborhood,
		params.Operation, params.PropertyType,
		params.SalePriceCents, params.RentalPriceCents, params.DailyPriceCents, params.MonthlyPriceCents,
		params.AreaM2, params.Bedrooms, params.Suites, params.Bathrooms, params.ParkingSpots,
		strings.Join(params.Photos, ","), params.Features, params.Status,
	).Scan(&id)
	if err != nil {
		return domain.Listing{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (domain.Listing, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+listingColumns+listingJoins+` WHERE a.id = $1`, id)
	l, err := scanListing(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Listing{}, ErrNotFound
	}
	return l, err
}

func (r *Repository) GetByCodigo(ctx context.Context, codigo int64) (domain.Listing, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+listingColumns+listingJoins+` WHERE a.codigo = $1`, codigo)
	l, err := scanListing(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Listing{}, ErrNotFound
	}
	return l, err
}

type UpdateParams struct {
	Title        *string
	Description  *string
	State        *string
	City         *string
	Neighborhood *string
	Operation    *domain.Operation
	PropertyType *domain.PropertyType

	SalePriceCents    *int64
	RentalPriceCents  *int64
	DailyPriceCents   *int64
	MonthlyPriceCents *int64

	AreaM2       *float64
	Bedrooms     *int
	Suites       *int
	Bathrooms    *int
	ParkingSpots *int

	Photos   []string
	Features []string
	Status   *domain.Status
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, brokerID uuid.UUID, params UpdateParams) (domain.Listing, error) {
	sets := make([]string, 0, 18)
	args := make([]any, 0, 20)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.Title != nil {
		add("titulo", *params.Title)
	}
	if params.Description != nil {
		add("descricao", *params.Description)
	}
	if params.State != nil {
		add("estado", *params.State)
	}
	if params.City != nil {
		add("cidade", *params.City)
	}
	if params.Neighborhood != nil {
		add("bairro", *params.Neighborhood)
	}
	if params.Operation != nil {
		args = append(args, *params.Operation)
		sets = append(sets, fmt.Sprintf("operacao_id = (SELECT id FROM operacoes WHERE tipo = $%d)", len(args)))
	}
	if params.PropertyType != nil {
		args = append(args, *params.PropertyType)
		sets = append(sets, fmt.Sprintf("tipo_imovel_id = (SELECT id FROM tipos_imovel WHERE tipo = $%d)", len(args)))
	}
	if params.SalePriceCents != nil {
		add("valor_venda", *params.SalePriceCents)
	}
	if params.RentalPriceCents != nil {
		add("valor_locacao", *params.RentalPriceCents)
	}
	if params.DailyPriceCents != nil {
		add("valor_diaria", *params.DailyPriceCents)
	}
	if params.MonthlyPriceCents != nil {
		add("valor_mensal", *params.MonthlyPriceCents)
	}
	if params.AreaM2 != nil {
		add("area_privativa", *params.AreaM2)
	}
	if params.Bedrooms != nil {
		add("quartos", *params.Bedrooms)
	}
	if params.Suites != nil {
		add("suites", *params.Suites)
	}
	if params.Bathrooms != nil {
		add("banheiros", *params.Bathrooms)
	}
	if params.ParkingSpots != nil {
		add("vagas", *params.ParkingSpots)
	}
	if params.Photos != nil {
		add("fotos", strings.Join(params.Photos, ","))
	}
	if params.Features != nil {
		add("caracteristicas", params.Features)
	}
	if params.Status != nil {
		add("status", *params.Status)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, id, brokerID)
	query := fmt.Sprintf(
		"UPDATE anuncios SET %s WHERE id = $%d AND broker_id = $%d RETURNING id",
		strings.Join(sets, ", "), len(args)-1, len(args),
	)
	var updated uuid.UUID
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Listing{}, ErrNotFound
		}
		return domain.Listing{}, err
	}
	return r.GetByID(ctx, updated)
}

// Deactivate soft-deletes a listing by moving it to inactive. Rows are never
// physically removed so market history stays intact.
func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID, brokerID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE anuncios SET status = $1, updated_at = now()
		WHERE id = $2 AND broker_id = $3
	`, domain.StatusInactive, id, brokerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) ListByBroker(ctx context.Context, brokerID uuid.UUID, status *domain.Status, limit, offset int) ([]domain.Listing, error) {
	args := []any{brokerID}
	query := `SELECT` + listingColumns + listingJoins + ` WHERE a.broker_id = $1`
	if status != nil {
		args = append(args, *status)
		query += fmt.Sprintf(" AND a.status = $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectListings(rows)
}

// SearchParams narrows the active listing set. Operation venda/locacao also
// matches venda_locacao rows, and the price range applies to the column that
// corresponds to the requested operation.
type SearchParams struct {
	Operation     domain.Operation
	PropertyType  domain.PropertyType
	City          string
	Neighborhoods []string
	MinPriceCents *int64
	MaxPriceCents *int64
	MinBedrooms   int
	ExcludeIDs    []uuid.UUID
	BrokerIDs     []uuid.UUID
	Limit         int
}

// operationFilter builds the SQL clause for listings offering the operation,
// mirroring domain.OffersOperation: venda and locacao are also served by
// venda_locacao rows and vice versa, while temporada matches only itself.
func operationFilter(op domain.Operation, placeholder string) string {
	switch op {
	case domain.OperationSale, domain.OperationRental:
		return "(o.tipo = " + placeholder + " OR o.tipo = 'venda_locacao')"
	case domain.OperationSaleOrRental:
		return "o.tipo IN (" + placeholder + ", 'venda', 'locacao')"
	}
	return "o.tipo = " + placeholder
}

func priceColumn(op domain.Operation) string {
	switch op {
	case domain.OperationRental:
		return "COALESCE(a.valor_locacao, a.valor_mensal)"
	case domain.OperationSeasonal:
		return "a.valor_diaria"
	default:
		return "a.valor_venda"
	}
}

func (r *Repository) Search(ctx context.Context, params SearchParams) ([]domain.Listing, error) {
	conds := []string{"a.status = 'active'"}
	args := make([]any, 0, 8)

	if params.Operation != "" {
		args = append(args, params.Operation)
		conds = append(conds, operationFilter(params.Operation, fmt.Sprintf("$%d", len(args))))
	}
	if params.PropertyType != "" {
		args = append(args, params.PropertyType)
		conds = append(conds, fmt.Sprintf("t.tipo = $%d", len(args)))
	}
	if params.City != "" {
		args = append(args, params.City)
		conds = append(conds, fmt.Sprintf("LOWER(a.cidade) = LOWER($%d)", len(args)))
	}
	if len(params.Neighborhoods) > 0 {
		lowered := make([]string, len(params.Neighborhoods))
		for i, n := range params.Neighborhoods {
			lowered[i] = strings.ToLower(n)
		}
		args = append(args, lowered)
		conds = append(conds, fmt.Sprintf("LOWER(a.bairro) = ANY($%d)", len(args)))
	}
	price := priceColumn(params.Operation)
	if params.MinPriceCents != nil {
		args = append(args, *params.MinPriceCents)
		conds = append(conds, fmt.Sprintf("%s >= $%d", price, len(args)))
	}
	if params.MaxPriceCents != nil {
		args = append(args, *params.MaxPriceCents)
		conds = append(conds, fmt.Sprintf("%s <= $%d", price, len(args)))
	}
	if params.MinBedrooms > 0 {
		args = append(args, params.MinBedrooms)
		conds = append(conds, fmt.Sprintf("a.quartos >= $%d", len(args)))
	}
	if len(params.ExcludeIDs) > 0 {
		args = append(args, params.ExcludeIDs)
		conds = append(conds, fmt.Sprintf("NOT (a.id = ANY($%d))", len(args)))
	}
	if len(params.BrokerIDs) > 0 {
		args = append(args, params.BrokerIDs)
		conds = append(conds, fmt.Sprintf("a.broker_id = ANY($%d)", len(args)))
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit)
	query := `SELECT` + listingColumns + listingJoins +
		" WHERE " + strings.Join(conds, " AND ") +
		fmt.Sprintf(" ORDER BY a.created_at DESC LIMIT $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectListings(rows)
}

func collectListings(rows pgx.Rows) ([]domain.Listing, error) {
	items := make([]domain.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return items, nil
}

// LabelCount pairs a grouped label with how many active listings carry it.
type LabelCount struct {
	Label string
	Count int
}

// TypeCountsForOperation feeds the assistant's quick actions: property types
// that actually have active inventory for the operation, most stocked first.
func (r *Repository) TypeCountsForOperation(ctx context.Context, op domain.Operation) ([]LabelCount, error) {
	return r.labelCounts(ctx, `
		SELECT t.tipo, COUNT(*)`+listingJoins+`
		WHERE a.status = 'active' AND `+operationFilter(op, "$1")+`
		GROUP BY t.tipo
		ORDER BY COUNT(*) DESC, t.tipo ASC
	`, op)
}

func (r *Repository) CityCounts(ctx context.Context, op domain.Operation, propertyType domain.PropertyType) ([]LabelCount, error) {
	return r.labelCounts(ctx, `
		SELECT a.cidade, COUNT(*)`+listingJoins+`
		WHERE a.status = 'active' AND `+operationFilter(op, "$1")+` AND t.tipo = $2
		GROUP BY a.cidade
		ORDER BY COUNT(*) DESC, a.cidade ASC
	`, op, propertyType)
}

func (r *Repository) NeighborhoodCounts(ctx context.Context, op domain.Operation, propertyType domain.PropertyType, city string) ([]LabelCount, error) {
	return r.labelCounts(ctx, `
		SELECT a.bairro, COUNT(*)`+listingJoins+`
		WHERE a.status = 'active' AND `+operationFilter(op, "$1")+`
			AND t.tipo = $2 AND LOWER(a.cidade) = LOWER($3) AND a.bairro <> ''
		GROUP BY a.bairro
		ORDER BY COUNT(*) DESC, a.bairro ASC
	`, op, propertyType, city)
}

func (r *Repository) labelCounts(ctx context.Context, query string, args ...any) ([]LabelCount, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]LabelCount, 0)
	for rows.Next() {
		var lc LabelCount
		if err := rows.Scan(&lc.Label, &lc.Count); err != nil {
			return nil, err
		}
		items = append(items, lc)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return items, nil
}
