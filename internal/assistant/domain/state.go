// Package domain holds the assistant's conversation state, keyword
// extraction, funnel decision table and lead-temperature scoring. Everything
// here is pure; persistence and inventory queries stay in the service.
package domain

import (
	"time"

	listingdomain "broker_portal_backend/internal/listings/domain"
	ptext "broker_portal_backend/platform/text"

	"github.com/google/uuid"
)

// Phase is the funnel position inferred from which state fields are filled.
type Phase string

const (
	PhaseStart                Phase = "start"
	PhaseAwaitingType         Phase = "awaiting_type"
	PhaseAwaitingCity         Phase = "awaiting_city"
	PhaseAwaitingNeighborhood Phase = "awaiting_neighborhood"
	PhaseResults              Phase = "results"
	PhaseClosing              Phase = "closing"
	PhaseBroker               Phase = "broker"
)

// ClientType classifies who is on the other side of the chat.
type ClientType string

const (
	ClientUnknown ClientType = "unknown"
	ClientBuyer   ClientType = "buyer"
	ClientBroker  ClientType = "broker"
)

// MaxNeighborhoods caps how many neighborhoods a session can accumulate.
const MaxNeighborhoods = 3

// Conversation is the disclosed state of one chat session.
type Conversation struct {
	ID        uuid.UUID
	SessionID string
	BrokerID  *uuid.UUID

	ClientType    ClientType
	Operation     listingdomain.Operation
	PropertyType  listingdomain.PropertyType
	City          string
	Neighborhoods []string

	MinBudgetCents *int64
	MaxBudgetCents *int64
	Bedrooms       *int
	ContactPhone   string

	AnsweredTags    []string
	ShownListingIDs []uuid.UUID

	UrgencyDetected bool
	LeadScore       int
	LeadStatus      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasTag reports whether a question tag was already answered this session.
func (c Conversation) HasTag(tag string) bool {
	for _, t := range c.AnsweredTags {
		if t == tag {
			return true
		}
	}
	return false
}

// WasShown reports whether a listing was already surfaced this session.
func (c Conversation) WasShown(id uuid.UUID) bool {
	for _, shown := range c.ShownListingIDs {
		if shown == id {
			return true
		}
	}
	return false
}

// Phase derives the funnel position from the filled fields. The closing
// short-circuit is the caller's: it depends on the latest message, not on
// accumulated state.
func (c Conversation) Phase() Phase {
	switch {
	case c.ClientType == ClientBroker:
		return PhaseBroker
	case c.Operation == "":
		return PhaseStart
	case c.PropertyType == "":
		return PhaseAwaitingType
	case c.City == "":
		return PhaseAwaitingCity
	default:
		return PhaseResults
	}
}

// Merge folds an extraction into the state. Fields fill monotonically: an
// already-set field is never overwritten, and nothing is ever cleared except
// the neighborhood list on an explicit expand-search intent.
func Merge(c Conversation, e Extraction) Conversation {
	if e.ExpandSearch {
		c.Neighborhoods = nil
	}
	if e.BrokerIntent && c.ClientType == ClientUnknown {
		c.ClientType = ClientBroker
	} else if c.ClientType == ClientUnknown && (e.Operation != "" || e.PropertyType != "") {
		c.ClientType = ClientBuyer
	}
	if c.Operation == "" && e.Operation != "" {
		c.Operation = e.Operation
	}
	if c.PropertyType == "" && e.PropertyType != "" {
		c.PropertyType = e.PropertyType
	}
	if c.City == "" && e.City != "" {
		c.City = e.City
	}
	for _, n := range e.Neighborhoods {
		if len(c.Neighborhoods) >= MaxNeighborhoods {
			break
		}
		if !containsFolded(c.Neighborhoods, n) {
			c.Neighborhoods = append(c.Neighborhoods, n)
		}
	}
	if c.MinBudgetCents == nil && e.MinBudgetCents != nil {
		c.MinBudgetCents = e.MinBudgetCents
	}
	if c.MaxBudgetCents == nil && e.MaxBudgetCents != nil {
		c.MaxBudgetCents = e.MaxBudgetCents
	}
	if c.Bedrooms == nil && e.Bedrooms != nil {
		c.Bedrooms = e.Bedrooms
	}
	if c.ContactPhone == "" && e.ContactPhone != "" {
		c.ContactPhone = e.ContactPhone
	}
	if e.Urgency {
		c.UrgencyDetected = true
	}
	return c
}

func containsFolded(list []string, s string) bool {
	folded := ptext.FoldLower(s)
	for _, item := range list {
		if ptext.FoldLower(item) == folded {
			return true
		}
	}
	return false
}
