// Package repository provides data access for the lead pipeline.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("lead not found")

// Pipeline stages, the Kanban columns.
const (
	StageNew         = "new"
	StageContacted   = "contacted"
	StageNegotiating = "negotiating"
	StageClosed      = "closed"
	StageLost        = "lost"
)

// Stages lists the valid pipeline stages in board order.
var Stages = []string{StageNew, StageContacted, StageNegotiating, StageClosed, StageLost}

func ValidStage(stage string) bool {
	for _, s := range Stages {
		if s == stage {
			return true
		}
	}
	return false
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Lead struct {
	ID           uuid.UUID
	BrokerID     uuid.UUID
	ContactName  string
	ContactPhone string
	ContactEmail *string

	Operation     *string
	PropertyType  *string
	City          *string
	Neighborhoods []string

	MinBudgetCents *int64
	MaxBudgetCents *int64
	Bedrooms       *int

	Stage       string
	Temperature *string
	Score       *int
	Source      string
	Notes       *string

	ConversationID *uuid.UUID
	Archived       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const leadColumns = `
	id, broker_id, contact_name, contact_phone, contact_email,
	operacao, tipo_imovel, cidade, bairros,
	min_budget_cents, max_budget_cents, quartos,
	stage, temperature, score, source, notes,
	conversation_id, archived, created_at, updated_at`

func scanLead(row pgx.Row) (Lead, error) {
	var l Lead
	err := row.Scan(
		&l.ID, &l.BrokerID, &l.ContactName, &l.ContactPhone, &l.ContactEmail,
		&l.Operation, &l.PropertyType, &l.City, &l.Neighborhoods,
		&l.MinBudgetCents, &l.MaxBudgetCents, &l.Bedrooms,
		&l.Stage, &l.Temperature, &l.Score, &l.Source, &l.Notes,
		&l.ConversationID, &l.Archived, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

type CreateLeadParams struct {
	BrokerID     uuid.UUID
	ContactName  string
	ContactPhone string
	ContactEmail *string

	Operation     *string
	PropertyType  *string
	City          *string
	Neighborhoods []string

	MinBudgetCents *int64
	MaxBudgetCents *int64
	Bedrooms       *int

	Temperature *string
	Score       *int
	Source      string
	Notes       *string

	ConversationID *uuid.UUID
}

func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO leads (
			broker_id, contact_name, contact_phone, contact_email,
			operacao, tipo_imovel, cidade, bairros,
			min_budget_cents, max_budget_cents, quartos,
			stage, temperature, score, source, notes, conversation_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING`+leadColumns+`
	`,
		params.BrokerID, params.ContactName, params.ContactPhone, params.ContactEmail,
		params.Operation, params.PropertyType, params.City, params.Neighborhoods,
		params.MinBudgetCents, params.MaxBudgetCents, params.Bedrooms,
		StageNew, params.Temperature, params.Score, params.Source, params.Notes, params.ConversationID,
	)
	return scanLead(row)
}

func (r *Repository) GetByID(ctx context.Context, id, brokerID uuid.UUID) (Lead, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT`+leadColumns+` FROM leads WHERE id = $1 AND broker_id = $2`, id, brokerID)
	l, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return l, err
}

type ListParams struct {
	BrokerID        uuid.UUID
	Stage           *string
	IncludeArchived bool
	Limit           int
	Offset          int
}

func (r *Repository) List(ctx context.Context, params ListParams) ([]Lead, error) {
	conds := []string{"broker_id = $1"}
	args := []any{params.BrokerID}
	if params.Stage != nil {
		args = append(args, *params.Stage)
		conds = append(conds, fmt.Sprintf("stage = $%d", len(args)))
	}
	if !params.IncludeArchived {
		conds = append(conds, "archived = false")
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit, params.Offset)
	query := `SELECT` + leadColumns + ` FROM leads WHERE ` + strings.Join(conds, " AND ") +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Lead, 0)
	for rows.Next() {
		l, err := scanLead(rows)
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

type UpdateLeadParams struct {
	ContactName  *string
	ContactPhone *string
	ContactEmail *string

	Operation     *string
	PropertyType  *string
	City          *string
	Neighborhoods []string

	MinBudgetCents *int64
	MaxBudgetCents *int64
	Bedrooms       *int

	Temperature *string
	Score       *int
	Notes       *string
}

func (r *Repository) Update(ctx context.Context, id, brokerID uuid.UUID, params UpdateLeadParams) (Lead, error) {
	sets := make([]string, 0, 14)
	args := make([]any, 0, 16)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.ContactName != nil {
		add("contact_name", *params.ContactName)
	}
	if params.ContactPhone != nil {
		add("contact_phone", *params.ContactPhone)
	}
	if params.ContactEmail != nil {
		add("contact_email", *params.ContactEmail)
	}
	if params.Operation != nil {
		add("operacao", *params.Operation)
	}
	if params.PropertyType != nil {
		add("tipo_imovel", *params.PropertyType)
	}
	if params.City != nil {
		add("cidade", *params.City)
	}
	if params.Neighborhoods != nil {
		add("bairros", params.Neighborhoods)
	}
	if params.MinBudgetCents != nil {
		add("min_budget_cents", *params.MinBudgetCents)
	}
	if params.MaxBudgetCents != nil {
		add("max_budget_cents", *params.MaxBudgetCents)
	}
	if params.Bedrooms != nil {
		add("quartos", *params.Bedrooms)
	}
	if params.Temperature != nil {
		add("temperature", *params.Temperature)
	}
	if params.Score != nil {
		add("score", *params.Score)
	}
	if params.Notes != nil {
		add("notes", *params.Notes)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id, brokerID)
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, id, brokerID)
	query := fmt.Sprintf(
		"UPDATE leads SET %s WHERE id = $%d AND broker_id = $%d RETURNING%s",
		strings.Join(sets, ", "), len(args)-1, len(args), leadColumns,
	)
	l, err := scanLead(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return l, err
}

// SetStage moves the lead to another pipeline column and returns the
// previous stage.
func (r *Repository) SetStage(ctx context.Context, id, brokerID uuid.UUID, stage string) (Lead, string, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE leads l SET stage = $1, updated_at = now()
		FROM (SELECT id, stage AS old_stage FROM leads WHERE id = $2 AND broker_id = $3) prev
		WHERE l.id = prev.id
		RETURNING`+qualifyLeadColumns("l")+`, prev.old_stage
	`, stage, id, brokerID)

	var (
		l        Lead
		oldStage string
	)
	err := row.Scan(
		&l.ID, &l.BrokerID, &l.ContactName, &l.ContactPhone, &l.ContactEmail,
		&l.Operation, &l.PropertyType, &l.City, &l.Neighborhoods,
		&l.MinBudgetCents, &l.MaxBudgetCents, &l.Bedrooms,
		&l.Stage, &l.Temperature, &l.Score, &l.Source, &l.Notes,
		&l.ConversationID, &l.Archived, &l.CreatedAt, &l.UpdatedAt,
		&oldStage,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, "", ErrNotFound
	}
	return l, oldStage, err
}

// SetArchived flips the archive flag. Leads are never deleted; losing the
// history would break pipeline reporting.
func (r *Repository) SetArchived(ctx context.Context, id, brokerID uuid.UUID, archived bool) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE leads SET archived = $1, updated_at = now()
		WHERE id = $2 AND broker_id = $3
	`, archived, id, brokerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a lead permanently. Archiving is the default path; this
// backs the explicit delete action only.
func (r *Repository) Delete(ctx context.Context, id, brokerID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1 AND broker_id = $2`, id, brokerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// StageCount is one Kanban column with its lead count.
type StageCount struct {
	Stage string
	Count int
}

func (r *Repository) CountByStage(ctx context.Context, brokerID uuid.UUID) ([]StageCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT stage, COUNT(*) FROM leads
		WHERE broker_id = $1 AND archived = false
		GROUP BY stage
	`, brokerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byStage := make(map[string]int)
	for rows.Next() {
		var sc StageCount
		if err := rows.Scan(&sc.Stage, &sc.Count); err != nil {
			return nil, err
		}
		byStage[sc.Stage] = sc.Count
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	counts := make([]StageCount, 0, len(Stages))
	for _, stage := range Stages {
		counts = append(counts, StageCount{Stage: stage, Count: byStage[stage]})
	}
	return counts, nil
}

func qualifyLeadColumns(alias string) string {
	cols := strings.Split(leadColumns, ",")
	for i, c := range cols {
		cols[i] = " " + alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ",")
}
