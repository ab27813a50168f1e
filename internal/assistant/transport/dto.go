// Package transport defines the HTTP shapes for the assistant chat.
package transport

import (
	"time"

	"broker_portal_backend/internal/assistant/domain"

	"github.com/google/uuid"
)

type ChatRequest struct {
	SessionID string  `json:"sessionId" validate:"required,min=8,max=128"`
	Message   string  `json:"message" validate:"required,min=1,max=2000"`
	BrokerID  *string `json:"brokerId" validate:"omitempty,uuid"`
}

type StateResponse struct {
	ID            uuid.UUID  `json:"id"`
	SessionID     string     `json:"sessionId"`
	BrokerID      *uuid.UUID `json:"brokerId,omitempty"`
	ClientType    string     `json:"clientType"`
	Operation     string     `json:"operation,omitempty"`
	PropertyType  string     `json:"propertyType,omitempty"`
	City          string     `json:"city,omitempty"`
	Neighborhoods []string   `json:"neighborhoods,omitempty"`

	MinBudgetCents *int64 `json:"minBudgetCents,omitempty"`
	MaxBudgetCents *int64 `json:"maxBudgetCents,omitempty"`
	Bedrooms       *int   `json:"bedrooms,omitempty"`

	LeadScore  int       `json:"leadScore"`
	LeadStatus string    `json:"leadStatus"`
	Phase      string    `json:"phase"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func ToStateResponse(c domain.Conversation) StateResponse {
	return StateResponse{
		ID:             c.ID,
		SessionID:      c.SessionID,
		BrokerID:       c.BrokerID,
		ClientType:     string(c.ClientType),
		Operation:      string(c.Operation),
		PropertyType:   string(c.PropertyType),
		City:           c.City,
		Neighborhoods:  c.Neighborhoods,
		MinBudgetCents: c.MinBudgetCents,
		MaxBudgetCents: c.MaxBudgetCents,
		Bedrooms:       c.Bedrooms,
		LeadScore:      c.LeadScore,
		LeadStatus:     c.LeadStatus,
		Phase:          string(c.Phase()),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
