// Package repository persists assistant conversations and their message log.
package repository

import (
	"context"
	"errors"
	"time"

	"broker_portal_backend/internal/assistant/domain"
	listingdomain "broker_portal_backend/internal/listings/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("conversation not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const conversationColumns = `
	id, session_id, broker_id, client_type, operacao, tipo_imovel, cidade,
	bairros, min_budget_cents, max_budget_cents, quartos, contact_phone,
	answered_tags, shown_listing_ids, urgency, lead_score, lead_status,
	created_at, updated_at`

func scanConversation(row pgx.Row) (domain.Conversation, error) {
	var (
		c        domain.Conversation
		op, tipo string
		shownRaw []uuid.UUID
	)
	err := row.Scan(
		&c.ID, &c.SessionID, &c.BrokerID, &c.ClientType, &op, &tipo, &c.City,
		&c.Neighborhoods, &c.MinBudgetCents, &c.MaxBudgetCents, &c.Bedrooms, &c.ContactPhone,
		&c.AnsweredTags, &shownRaw, &c.UrgencyDetected, &c.LeadScore, &c.LeadStatus,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.Conversation{}, err
	}
	c.Operation = listingdomain.Operation(op)
	c.PropertyType = listingdomain.PropertyType(tipo)
	c.ShownListingIDs = shownRaw
	return c, nil
}

// GetBySession loads the state for a chat session.
func (r *Repository) GetBySession(ctx context.Context, sessionID string) (domain.Conversation, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT`+conversationColumns+` FROM iza_conversations WHERE session_id = $1`, sessionID)
	c, err := scanConversation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Conversation{}, ErrNotFound
	}
	return c, err
}

// Create starts an empty conversation for a session.
func (r *Repository) Create(ctx context.Context, sessionID string, brokerID *uuid.UUID) (domain.Conversation, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO iza_conversations (session_id, broker_id, client_type, lead_status)
		VALUES ($1, $2, $3, $4)
		RETURNING`+conversationColumns+`
	`, sessionID, brokerID, domain.ClientUnknown, domain.TemperatureCold)
	return scanConversation(row)
}

// Save writes the merged state back after a turn.
func (r *Repository) Save(ctx context.Context, c domain.Conversation) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE iza_conversations SET
			client_type = $2, operacao = $3, tipo_imovel = $4, cidade = $5,
			bairros = $6, min_budget_cents = $7, max_budget_cents = $8, quartos = $9,
			contact_phone = $10, answered_tags = $11, shown_listing_ids = $12,
			urgency = $13, lead_score = $14, lead_status = $15, updated_at = now()
		WHERE id = $1
	`,
		c.ID,
		c.ClientType, c.Operation, c.PropertyType, c.City,
		c.Neighborhoods, c.MinBudgetCents, c.MaxBudgetCents, c.Bedrooms,
		c.ContactPhone, c.AnsweredTags, c.ShownListingIDs,
		c.UrgencyDetected, c.LeadScore, c.LeadStatus,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Message roles in the conversation log.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	ID             uuid.UUID
	ConversationID uuid.UUID
	Role           string
	Content        string
	CreatedAt      time.Time
}

func (r *Repository) AppendMessage(ctx context.Context, conversationID uuid.UUID, role, content string) (Message, error) {
	var m Message
	err := r.pool.QueryRow(ctx, `
		INSERT INTO iza_messages (conversation_id, role, content)
		VALUES ($1, $2, $3)
		RETURNING id, conversation_id, role, content, created_at
	`, conversationID, role, content).Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.CreatedAt)
	return m, err
}

// ListMessages returns the full log in chronological order.
func (r *Repository) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, conversation_id, role, content, created_at
		FROM iza_messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Message, 0)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return items, nil
}

// ListStale returns conversations untouched since the cutoff, for the
// background rescoring job.
func (r *Repository) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]domain.Conversation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT`+conversationColumns+` FROM iza_conversations WHERE updated_at < $1 ORDER BY updated_at ASC LIMIT $2`,
		cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Conversation, 0)
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return items, nil
}
