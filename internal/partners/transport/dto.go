// Package transport defines the HTTP request/response shapes for
// partnerships.
package transport

import (
	"time"

	"broker_portal_backend/internal/partners/repository"

	"github.com/google/uuid"
)

type ProposeRequest struct {
	PartnerID string  `json:"partnerId" validate:"required,uuid4"`
	Message   *string `json:"message" validate:"omitempty,max=1000"`
}

type RespondRequest struct {
	Action string `json:"action" validate:"required,oneof=accept reject"`
}

type ProfileResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	CRECI            *string   `json:"creci,omitempty"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	City             string    `json:"city"`
	Slug             string    `json:"slug"`
	PartnershipOptIn bool      `json:"partnershipOptIn"`
}

func ToProfileResponses(items []repository.Profile) []ProfileResponse {
	out := make([]ProfileResponse, len(items))
	for i, p := range items {
		out[i] = ProfileResponse{
			ID:               p.ID,
			Name:             p.Name,
			CRECI:            p.CRECI,
			Phone:            p.Phone,
			Email:            p.Email,
			City:             p.City,
			Slug:             p.Slug,
			PartnershipOptIn: p.PartnershipOptIn,
		}
	}
	return out
}

type PartnershipResponse struct {
	ID          uuid.UUID  `json:"id"`
	RequesterID uuid.UUID  `json:"requesterId"`
	PartnerID   uuid.UUID  `json:"partnerId"`
	Status      string     `json:"status"`
	Message     *string    `json:"message,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	RespondedAt *time.Time `json:"respondedAt,omitempty"`
}

func ToPartnershipResponse(p repository.Partnership) PartnershipResponse {
	return PartnershipResponse{
		ID:          p.ID,
		RequesterID: p.RequesterID,
		PartnerID:   p.PartnerID,
		Status:      p.Status,
		Message:     p.Message,
		CreatedAt:   p.CreatedAt,
		RespondedAt: p.RespondedAt,
	}
}

func ToPartnershipResponses(items []repository.Partnership) []PartnershipResponse {
	out := make([]PartnershipResponse, len(items))
	for i, p := range items {
		out[i] = ToPartnershipResponse(p)
	}
	return out
}
