// Package repository provides data access for broker profiles and
// partnerships over the perfis and parcerias tables.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyLinked = errors.New("partnership already exists")
)

// Partnership statuses.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
	StatusEnded    = "ended"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Profile struct {
	ID               uuid.UUID
	Name             string
	CRECI            *string
	Phone            string
	Email            string
	City             string
	Slug             string
	PartnershipOptIn bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

const profileColumns = `
	id, name, creci, phone, email, city, slug, partnership_opt_in, created_at, updated_at`

func scanProfile(row pgx.Row) (Profile, error) {
	var p Profile
	err := row.Scan(
		&p.ID, &p.Name, &p.CRECI, &p.Phone, &p.Email, &p.City, &p.Slug,
		&p.PartnershipOptIn, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *Repository) GetProfile(ctx context.Context, id uuid.UUID) (Profile, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+profileColumns+` FROM perfis WHERE id = $1`, id)
	p, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return p, err
}

// ListOptedIn returns profiles open to partnerships, excluding the caller,
// optionally narrowed to a city.
func (r *Repository) ListOptedIn(ctx context.Context, exclude uuid.UUID, city string) ([]Profile, error) {
	query := `SELECT` + profileColumns + ` FROM perfis WHERE partnership_opt_in = true AND id <> $1`
	args := []any{exclude}
	if city != "" {
		query += " AND LOWER(city) = LOWER($2)"
		args = append(args, city)
	}
	query += " ORDER BY name ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return items, nil
}

type Partnership struct {
	ID          uuid.UUID
	RequesterID uuid.UUID
	PartnerID   uuid.UUID
	Status      string
	Message     *string
	CreatedAt   time.Time
	RespondedAt *time.Time
}

const partnershipColumns = `
	id, requester_id, partner_id, status, message, created_at, responded_at`

func scanPartnership(row pgx.Row) (Partnership, error) {
	var p Partnership
	err := row.Scan(&p.ID, &p.RequesterID, &p.PartnerID, &p.Status, &p.Message, &p.CreatedAt, &p.RespondedAt)
	return p, err
}

// CreatePartnership inserts a pending proposal. A live link between the same
// pair, in either direction, maps to ErrAlreadyLinked.
func (r *Repository) CreatePartnership(ctx context.Context, requesterID, partnerID uuid.UUID, message *string) (Partnership, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM parcerias
			WHERE status IN ($3, $4)
				AND ((requester_id = $1 AND partner_id = $2) OR (requester_id = $2 AND partner_id = $1))
		)
	`, requesterID, partnerID, StatusPending, StatusAccepted).Scan(&exists)
	if err != nil {
		return Partnership{}, err
	}
	if exists {
		return Partnership{}, ErrAlreadyLinked
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO parcerias (requester_id, partner_id, status, message)
		VALUES ($1, $2, $3, $4)
		RETURNING`+partnershipColumns+`
	`, requesterID, partnerID, StatusPending, message)
	return scanPartnership(row)
}

// SetStatus updates a partnership's status, enforcing that only the
// counterparty responds to a pending proposal and either side can end an
// accepted one.
func (r *Repository) SetStatus(ctx context.Context, id, actorID uuid.UUID, status string) (Partnership, error) {
	var query string
	switch status {
	case StatusAccepted, StatusRejected:
		query = `
			UPDATE parcerias SET status = $1, responded_at = now()
			WHERE id = $2 AND partner_id = $3 AND status = 'pending'
			RETURNING` + partnershipColumns
	case StatusEnded:
		query = `
			UPDATE parcerias SET status = $1, responded_at = now()
			WHERE id = $2 AND (partner_id = $3 OR requester_id = $3) AND status = 'accepted'
			RETURNING` + partnershipColumns
	default:
		return Partnership{}, errors.New("invalid partnership status")
	}

	p, err := scanPartnership(r.pool.QueryRow(ctx, query, status, id, actorID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Partnership{}, ErrNotFound
	}
	return p, err
}

// ListForBroker returns every partnership the broker is part of.
func (r *Repository) ListForBroker(ctx context.Context, brokerID uuid.UUID) ([]Partnership, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+partnershipColumns+` FROM parcerias
		WHERE requester_id = $1 OR partner_id = $1
		ORDER BY created_at DESC
	`, brokerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Partnership, 0)
	for rows.Next() {
		p, err := scanPartnership(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return items, nil
}

// AcceptedPartnerIDs returns the ids of brokers with a live partnership with
// the caller.
func (r *Repository) AcceptedPartnerIDs(ctx context.Context, brokerID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT CASE WHEN requester_id = $1 THEN partner_id ELSE requester_id END
		FROM parcerias
		WHERE (requester_id = $1 OR partner_id = $1) AND status = 'accepted'
	`, brokerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return ids, nil
}
