// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	platformevents "broker_portal_backend/platform/events"
	"broker_portal_backend/platform/logger"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = platformevents.Event
	Bus         = platformevents.Bus
	Handler     = platformevents.Handler
	HandlerFunc = platformevents.HandlerFunc
	BaseEvent   = platformevents.BaseEvent
	InMemoryBus = platformevents.InMemoryBus
)

// Re-export platform functions
var NewBaseEvent = platformevents.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
// This is a convenience re-export from platform/events.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}

// =============================================================================
// Listings Domain Events
// =============================================================================

// ListingPublished is published when a listing becomes active.
type ListingPublished struct {
	BaseEvent
	ListingID uuid.UUID `json:"listingId"`
	BrokerID  uuid.UUID `json:"brokerId"`
	Codigo    int64     `json:"codigo"`
	City      string    `json:"city"`
	Operation string    `json:"operation"`
}

func (e ListingPublished) EventName() string { return "listings.listing.published" }

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a new lead is created, manually or from a
// conversation.
type LeadCreated struct {
	BaseEvent
	LeadID       uuid.UUID `json:"leadId"`
	BrokerID     uuid.UUID `json:"brokerId"`
	ContactName  string    `json:"contactName"`
	ContactPhone string    `json:"contactPhone"`
	Source       string    `json:"source"` // "manual" or "assistant"
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadStageChanged is published when a lead moves between pipeline columns.
type LeadStageChanged struct {
	BaseEvent
	LeadID   uuid.UUID `json:"leadId"`
	BrokerID uuid.UUID `json:"brokerId"`
	OldStage string    `json:"oldStage"`
	NewStage string    `json:"newStage"`
}

func (e LeadStageChanged) EventName() string { return "leads.stage.changed" }

// =============================================================================
// Assistant Domain Events
// =============================================================================

// ConversationTurnRecorded is published after each processed assistant turn.
type ConversationTurnRecorded struct {
	BaseEvent
	ConversationID uuid.UUID `json:"conversationId"`
	SessionID      string    `json:"sessionId"`
	State          string    `json:"state"`
	LeadScore      int       `json:"leadScore"`
	LeadStatus     string    `json:"leadStatus"`
}

func (e ConversationTurnRecorded) EventName() string { return "assistant.turn.recorded" }

// HotLeadDetected is published when a conversation's temperature crosses into
// "hot". Subscribers notify the broker; the publisher never waits on them.
type HotLeadDetected struct {
	BaseEvent
	ConversationID uuid.UUID  `json:"conversationId"`
	SessionID      string     `json:"sessionId"`
	BrokerID       *uuid.UUID `json:"brokerId,omitempty"`
	LeadScore      int        `json:"leadScore"`
	ContactPhone   string     `json:"contactPhone,omitempty"`
	City           string     `json:"city,omitempty"`
	Operation      string     `json:"operation,omitempty"`
	PropertyType   string     `json:"propertyType,omitempty"`
}

func (e HotLeadDetected) EventName() string { return "assistant.lead.hot" }

// =============================================================================
// Partners Domain Events
// =============================================================================

// PartnershipProposed is published when a broker proposes a partnership.
type PartnershipProposed struct {
	BaseEvent
	PartnershipID uuid.UUID `json:"partnershipId"`
	RequesterID   uuid.UUID `json:"requesterId"`
	PartnerID     uuid.UUID `json:"partnerId"`
}

func (e PartnershipProposed) EventName() string { return "partners.partnership.proposed" }

// PartnershipAccepted is published when the counterparty accepts.
type PartnershipAccepted struct {
	BaseEvent
	PartnershipID uuid.UUID `json:"partnershipId"`
	RequesterID   uuid.UUID `json:"requesterId"`
	PartnerID     uuid.UUID `json:"partnerId"`
}

func (e PartnershipAccepted) EventName() string { return "partners.partnership.accepted" }
