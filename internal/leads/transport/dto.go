// Package transport defines the HTTP request/response shapes for leads.
package transport

import (
	"time"

	"broker_portal_backend/internal/leads/matching"
	"broker_portal_backend/internal/leads/repository"
	listingtransport "broker_portal_backend/internal/listings/transport"

	"github.com/google/uuid"
)

type CreateLeadRequest struct {
	ContactName  string  `json:"contactName" validate:"required,min=2,max=120"`
	ContactPhone string  `json:"contactPhone" validate:"required,min=8,max=20"`
	ContactEmail *string `json:"contactEmail" validate:"omitempty,email"`

	Operation     *string  `json:"operation" validate:"omitempty,oneof=venda locacao temporada venda_locacao"`
	PropertyType  *string  `json:"propertyType" validate:"omitempty,oneof=apartamento casa terreno comercial rural cobertura flat"`
	City          *string  `json:"city" validate:"omitempty,max=100"`
	Neighborhoods []string `json:"neighborhoods" validate:"omitempty,max=3,dive,min=1,max=100"`

	MinBudgetCents *int64 `json:"minBudgetCents" validate:"omitempty,gt=0"`
	MaxBudgetCents *int64 `json:"maxBudgetCents" validate:"omitempty,gt=0,gtefield=MinBudgetCents"`
	Bedrooms       *int   `json:"bedrooms" validate:"omitempty,min=0,max=50"`

	Notes *string `json:"notes" validate:"omitempty,max=5000"`
}

type UpdateLeadRequest struct {
	ContactName  *string `json:"contactName" validate:"omitempty,min=2,max=120"`
	ContactPhone *string `json:"contactPhone" validate:"omitempty,min=8,max=20"`
	ContactEmail *string `json:"contactEmail" validate:"omitempty,email"`

	Operation     *string  `json:"operation" validate:"omitempty,oneof=venda locacao temporada venda_locacao"`
	PropertyType  *string  `json:"propertyType" validate:"omitempty,oneof=apartamento casa terreno comercial rural cobertura flat"`
	City          *string  `json:"city" validate:"omitempty,max=100"`
	Neighborhoods []string `json:"neighborhoods" validate:"omitempty,max=3,dive,min=1,max=100"`

	MinBudgetCents *int64 `json:"minBudgetCents" validate:"omitempty,gt=0"`
	MaxBudgetCents *int64 `json:"maxBudgetCents" validate:"omitempty,gt=0"`
	Bedrooms       *int   `json:"bedrooms" validate:"omitempty,min=0,max=50"`

	Temperature *string `json:"temperature" validate:"omitempty,oneof=hot warm cold"`
	Score       *int    `json:"score" validate:"omitempty,min=0,max=100"`
	Notes       *string `json:"notes" validate:"omitempty,max=5000"`
}

type MoveStageRequest struct {
	Stage string `json:"stage" validate:"required,oneof=new contacted negotiating closed lost"`
}

type LeadResponse struct {
	ID           uuid.UUID `json:"id"`
	BrokerID     uuid.UUID `json:"brokerId"`
	ContactName  string    `json:"contactName"`
	ContactPhone string    `json:"contactPhone"`
	ContactEmail *string   `json:"contactEmail,omitempty"`

	Operation     *string  `json:"operation,omitempty"`
	PropertyType  *string  `json:"propertyType,omitempty"`
	City          *string  `json:"city,omitempty"`
	Neighborhoods []string `json:"neighborhoods,omitempty"`

	MinBudgetCents *int64 `json:"minBudgetCents,omitempty"`
	MaxBudgetCents *int64 `json:"maxBudgetCents,omitempty"`
	Bedrooms       *int   `json:"bedrooms,omitempty"`

	Stage       string     `json:"stage"`
	Temperature *string    `json:"temperature,omitempty"`
	Score       *int       `json:"score,omitempty"`
	Source      string     `json:"source"`
	Notes       *string    `json:"notes,omitempty"`

	ConversationID *uuid.UUID `json:"conversationId,omitempty"`
	Archived       bool       `json:"archived"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func ToLeadResponse(l repository.Lead) LeadResponse {
	return LeadResponse{
		ID:           l.ID,
		BrokerID:     l.BrokerID,
		ContactName:  l.ContactName,
		ContactPhone: l.ContactPhone,
		ContactEmail: l.ContactEmail,

		Operation:     l.Operation,
		PropertyType:  l.PropertyType,
		City:          l.City,
		Neighborhoods: l.Neighborhoods,

		MinBudgetCents: l.MinBudgetCents,
		MaxBudgetCents: l.MaxBudgetCents,
		Bedrooms:       l.Bedrooms,

		Stage:       l.Stage,
		Temperature: l.Temperature,
		Score:       l.Score,
		Source:      l.Source,
		Notes:       l.Notes,

		ConversationID: l.ConversationID,
		Archived:       l.Archived,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

func ToLeadResponses(items []repository.Lead) []LeadResponse {
	out := make([]LeadResponse, len(items))
	for i, l := range items {
		out[i] = ToLeadResponse(l)
	}
	return out
}

type StageCountResponse struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

type BoardResponse struct {
	Counts []StageCountResponse `json:"counts"`
	Leads  []LeadResponse       `json:"leads"`
}

type MatchResponse struct {
	Score   int                               `json:"score"`
	Listing listingtransport.ListingResponse `json:"listing"`
}

func ToMatchResponses(matches []matching.Match) []MatchResponse {
	out := make([]MatchResponse, len(matches))
	for i, m := range matches {
		out[i] = MatchResponse{
			Score:   m.Score,
			Listing: listingtransport.ToListingResponse(m.Listing),
		}
	}
	return out
}
