// Package service orchestrates assistant turns: extraction, state merge,
// funnel decision, inventory search, temperature scoring and reply assembly.
package service

import (
	"context"
	"errors"
	"time"

	"broker_portal_backend/internal/assistant/domain"
	"broker_portal_backend/internal/assistant/repository"
	"broker_portal_backend/internal/events"
	leadrepo "broker_portal_backend/internal/leads/repository"
	listingdomain "broker_portal_backend/internal/listings/domain"
	listingrepo "broker_portal_backend/internal/listings/repository"
	"broker_portal_backend/internal/plans"
	"broker_portal_backend/internal/share"
	"broker_portal_backend/platform/ai"
	"broker_portal_backend/platform/apperr"
	"broker_portal_backend/platform/logger"

	"github.com/google/uuid"
)

// Inventory is the slice of the listings repository the funnel consumes.
type Inventory interface {
	Search(ctx context.Context, params listingrepo.SearchParams) ([]listingdomain.Listing, error)
	TypeCountsForOperation(ctx context.Context, op listingdomain.Operation) ([]listingrepo.LabelCount, error)
	CityCounts(ctx context.Context, op listingdomain.Operation, pt listingdomain.PropertyType) ([]listingrepo.LabelCount, error)
	NeighborhoodCounts(ctx context.Context, op listingdomain.Operation, pt listingdomain.PropertyType, city string) ([]listingrepo.LabelCount, error)
}

// LeadRecorder creates a CRM lead from a qualified conversation.
type LeadRecorder interface {
	Create(ctx context.Context, params leadrepo.CreateLeadParams) (leadrepo.Lead, error)
}

// PlanReader lists the plans the broker branch talks about.
type PlanReader interface {
	ListActive(ctx context.Context) ([]plans.Plan, error)
}

type Service struct {
	repo      *repository.Repository
	inventory Inventory
	leads     LeadRecorder
	plans     PlanReader
	ai        *ai.Client
	bus       events.Bus
	log       *logger.Logger
	baseURL   string
}

func New(
	repo *repository.Repository,
	inventory Inventory,
	leads LeadRecorder,
	planReader PlanReader,
	aiClient *ai.Client,
	bus events.Bus,
	log *logger.Logger,
	baseURL string,
) *Service {
	return &Service{
		repo:      repo,
		inventory: inventory,
		leads:     leads,
		plans:     planReader,
		ai:        aiClient,
		bus:       bus,
		log:       log,
		baseURL:   baseURL,
	}
}

// QuickAction is one tappable option in the chat.
type QuickAction struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Count int    `json:"count,omitempty"`
}

// ListingCard is a surfaced property.
type ListingCard struct {
	Codigo       int64  `json:"codigo"`
	Title        string `json:"title"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city"`
	PriceLabel   string `json:"priceLabel,omitempty"`
	URL          string `json:"url"`
}

// Reply is the assistant's answer for one turn.
type Reply struct {
	Text         string        `json:"text"`
	Phase        string        `json:"phase"`
	QuickActions []QuickAction `json:"quickActions,omitempty"`
	Listings     []ListingCard `json:"listings,omitempty"`
	LeadScore    int           `json:"leadScore"`
	LeadStatus   string        `json:"leadStatus"`
}

// ProcessTurn runs one user message through the funnel and returns the reply.
// Store failures degrade: the turn still completes on in-memory state.
func (s *Service) ProcessTurn(ctx context.Context, sessionID string, brokerID *uuid.UUID, message string) (Reply, error) {
	const op = "assistant.ProcessTurn"
	if sessionID == "" || message == "" {
		return Reply{}, apperr.Validation("sessionId and message are required").WithOp(op)
	}

	conv, persisted := s.loadOrCreate(ctx, sessionID, brokerID)
	if persisted {
		if _, err := s.repo.AppendMessage(ctx, conv.ID, repository.RoleUser, message); err != nil {
			s.log.DatabaseError(op, err)
		}
	}

	extraction := domain.Extract(message, s.vocabulary(ctx, conv))
	conv = domain.Merge(conv, extraction)

	history := s.history(ctx, conv, persisted)
	previousStatus := conv.LeadStatus
	conv.LeadScore, conv.LeadStatus = s.score(conv, history, message)

	reply := s.respond(ctx, &conv, extraction)
	reply.LeadScore = conv.LeadScore
	reply.LeadStatus = conv.LeadStatus

	if conv.LeadStatus == domain.TemperatureHot && previousStatus != domain.TemperatureHot {
		s.bus.Publish(ctx, events.HotLeadDetected{
			BaseEvent:      events.NewBaseEvent(),
			ConversationID: conv.ID,
			SessionID:      conv.SessionID,
			BrokerID:       conv.BrokerID,
			LeadScore:      conv.LeadScore,
			ContactPhone:   conv.ContactPhone,
			City:           conv.City,
			Operation:      string(conv.Operation),
			PropertyType:   string(conv.PropertyType),
		})
	}

	s.maybeCreateLead(ctx, &conv, extraction)

	if persisted {
		if err := s.repo.Save(ctx, conv); err != nil {
			s.log.DatabaseError(op, err)
		}
		if _, err := s.repo.AppendMessage(ctx, conv.ID, repository.RoleAssistant, reply.Text); err != nil {
			s.log.DatabaseError(op, err)
		}
	}

	s.bus.Publish(ctx, events.ConversationTurnRecorded{
		BaseEvent:      events.NewBaseEvent(),
		ConversationID: conv.ID,
		SessionID:      conv.SessionID,
		State:          reply.Phase,
		LeadScore:      conv.LeadScore,
		LeadStatus:     conv.LeadStatus,
	})
	s.log.AssistantTurn(conv.SessionID, reply.Phase, conv.LeadScore, len(reply.Listings))

	return reply, nil
}

func (s *Service) loadOrCreate(ctx context.Context, sessionID string, brokerID *uuid.UUID) (domain.Conversation, bool) {
	conv, err := s.repo.GetBySession(ctx, sessionID)
	if err == nil {
		return conv, true
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.log.DatabaseError("assistant.loadOrCreate", err)
	}

	conv, err = s.repo.Create(ctx, sessionID, brokerID)
	if err != nil {
		s.log.DatabaseError("assistant.loadOrCreate", err)
		// Degrade to in-memory state; the session just loses continuity.
		return domain.Conversation{
			SessionID:  sessionID,
			BrokerID:   brokerID,
			ClientType: domain.ClientUnknown,
			LeadStatus: domain.TemperatureCold,
		}, false
	}
	return conv, true
}

// vocabulary feeds extraction with geography that actually exists in the
// inventory for the disclosed operation and type.
func (s *Service) vocabulary(ctx context.Context, c domain.Conversation) domain.Vocabulary {
	var vocab domain.Vocabulary
	if c.Operation == "" || c.PropertyType == "" {
		return vocab
	}

	if cities, err := s.inventory.CityCounts(ctx, c.Operation, c.PropertyType); err == nil {
		for _, lc := range cities {
			vocab.Cities = append(vocab.Cities, lc.Label)
		}
	} else {
		s.log.DatabaseError("assistant.vocabulary", err)
	}
	if c.City != "" {
		if hoods, err := s.inventory.NeighborhoodCounts(ctx, c.Operation, c.PropertyType, c.City); err == nil {
			for _, lc := range hoods {
				vocab.Neighborhoods = append(vocab.Neighborhoods, lc.Label)
			}
		} else {
			s.log.DatabaseError("assistant.vocabulary", err)
		}
	}
	return vocab
}

func (s *Service) history(ctx context.Context, c domain.Conversation, persisted bool) []repository.Message {
	if !persisted {
		return nil
	}
	history, err := s.repo.ListMessages(ctx, c.ID)
	if err != nil {
		s.log.DatabaseError("assistant.history", err)
		return nil
	}
	return history
}

// score computes the lead temperature from state plus message-log signals.
func (s *Service) score(c domain.Conversation, history []repository.Message, currentMessage string) (int, string) {
	in := domain.TemperatureInputFrom(c)

	if len([]rune(currentMessage)) > 50 {
		in.AnyLongMessage = true
	}
	var (
		lastAssistant time.Time
		totalLatency  time.Duration
		pairs         int
	)
	for _, m := range history {
		switch m.Role {
		case repository.RoleAssistant:
			lastAssistant = m.CreatedAt
		case repository.RoleUser:
			if len([]rune(m.Content)) > 50 {
				in.AnyLongMessage = true
			}
			if !lastAssistant.IsZero() {
				totalLatency += m.CreatedAt.Sub(lastAssistant)
				pairs++
				lastAssistant = time.Time{}
			}
		}
	}
	if pairs > 0 {
		in.LatencyKnown = true
		in.AvgResponseLatency = totalLatency / time.Duration(pairs)
	}

	score := domain.TemperatureScore(in)
	return score, domain.ClassifyTemperature(score)
}

// respond builds the reply for the conversation's phase. The closing intent
// short-circuits every other phase.
func (s *Service) respond(ctx context.Context, conv *domain.Conversation, extraction domain.Extraction) Reply {
	var reply Reply
	switch {
	case extraction.ClosingIntent:
		reply = s.closingReply(*conv)
	case conv.Phase() == domain.PhaseBroker:
		reply = s.brokerReply(ctx)
	case conv.Phase() == domain.PhaseStart:
		reply = startReply()
	case conv.Phase() == domain.PhaseAwaitingType:
		reply = s.typeReply(ctx, *conv)
	case conv.Phase() == domain.PhaseAwaitingCity:
		reply = s.cityReply(ctx, *conv)
	default:
		reply = s.resultsReply(ctx, conv)
	}

	reply.Text = s.completeText(ctx, *conv, reply)
	return reply
}

func startReply() Reply {
	return Reply{
		Phase: string(domain.PhaseStart),
		QuickActions: []QuickAction{
			{Label: "Quero comprar", Value: "comprar"},
			{Label: "Quero alugar", Value: "alugar"},
			{Label: "Temporada", Value: "temporada"},
			{Label: "Sou corretor", Value: "sou corretor"},
		},
	}
}

func (s *Service) typeReply(ctx context.Context, c domain.Conversation) Reply {
	reply := Reply{Phase: string(domain.PhaseAwaitingType)}
	counts, err := s.inventory.TypeCountsForOperation(ctx, c.Operation)
	if err != nil {
		s.log.DatabaseError("assistant.typeReply", err)
		return reply
	}
	for _, lc := range counts {
		reply.QuickActions = append(reply.QuickActions, QuickAction{Label: lc.Label, Value: lc.Label, Count: lc.Count})
	}
	return reply
}

func (s *Service) cityReply(ctx context.Context, c domain.Conversation) Reply {
	reply := Reply{Phase: string(domain.PhaseAwaitingCity)}
	counts, err := s.inventory.CityCounts(ctx, c.Operation, c.PropertyType)
	if err != nil {
		s.log.DatabaseError("assistant.cityReply", err)
		return reply
	}
	for _, lc := range counts {
		reply.QuickActions = append(reply.QuickActions, QuickAction{Label: lc.Label, Value: lc.Label, Count: lc.Count})
	}
	return reply
}

func (s *Service) resultsReply(ctx context.Context, conv *domain.Conversation) Reply {
	found, tier := s.searchInventory(ctx, *conv)
	// With no neighborhood disclosed, every tier searches the whole city.
	cityWide := tier == tierCityWide || len(conv.Neighborhoods) == 0
	decision := domain.DecideResults(*conv, found, cityWide)

	switch decision.Kind {
	case domain.ResultsDeferNeighborhoods:
		reply := Reply{Phase: string(domain.PhaseAwaitingNeighborhood)}
		for _, n := range decision.Neighborhoods {
			reply.QuickActions = append(reply.QuickActions, QuickAction{Label: n, Value: n})
		}
		return reply

	case domain.ResultsRefinePrice:
		reply := Reply{Phase: string(domain.PhaseResults)}
		for _, band := range decision.PriceBands {
			reply.QuickActions = append(reply.QuickActions, QuickAction{
				Label: formatBand(band),
				Value: formatBand(band),
				Count: band.Count,
			})
		}
		return reply

	case domain.ResultsEmpty:
		return Reply{
			Phase: string(domain.PhaseResults),
			QuickActions: []QuickAction{
				{Label: "Ampliar busca", Value: "ampliar busca"},
				{Label: "Encomendar imóvel", Value: "encomendar imóvel"},
			},
		}
	}

	reply := Reply{Phase: string(domain.PhaseResults)}
	for _, l := range decision.Listings {
		reply.Listings = append(reply.Listings, s.card(l))
		if !conv.WasShown(l.ID) {
			conv.ShownListingIDs = append(conv.ShownListingIDs, l.ID)
		}
	}
	return reply
}

func (s *Service) card(l listingdomain.Listing) ListingCard {
	card := ListingCard{
		Codigo:       l.Codigo,
		Title:        l.Title,
		Neighborhood: l.Neighborhood,
		City:         l.City,
		URL:          share.ListingURL(s.baseURL, "", l),
	}
	if p := l.PriceCentsFor(l.Operation); p != nil {
		card.PriceLabel = FormatReais(*p)
	}
	return card
}

func (s *Service) closingReply(c domain.Conversation) Reply {
	return Reply{
		Phase: string(domain.PhaseClosing),
		QuickActions: []QuickAction{
			{Label: "Falar no WhatsApp", Value: "whatsapp"},
			{Label: "Agendar visita", Value: "agendar visita"},
			{Label: "Recomeçar", Value: "recomeçar"},
		},
	}
}

func (s *Service) brokerReply(ctx context.Context) Reply {
	reply := Reply{
		Phase: string(domain.PhaseBroker),
		QuickActions: []QuickAction{
			{Label: "Planos e preços", Value: "planos"},
			{Label: "Como anunciar", Value: "anunciar"},
			{Label: "Parcerias", Value: "parcerias"},
		},
	}
	if s.plans == nil {
		return reply
	}
	active, err := s.plans.ListActive(ctx)
	if err != nil {
		s.log.DatabaseError("assistant.brokerReply", err)
		return reply
	}
	for _, p := range active {
		reply.QuickActions = append(reply.QuickActions, QuickAction{
			Label: p.Name + " - " + FormatReais(p.PriceCents),
			Value: p.Name,
		})
	}
	return reply
}

// completeText asks the completion collaborator to phrase the reply, feeding
// it the options and listings as hard context. Any failure falls back to the
// canned phrase for the phase, so the chat never stalls.
func (s *Service) completeText(ctx context.Context, conv domain.Conversation, reply Reply) string {
	fallback := cannedReply(domain.Phase(reply.Phase))
	if reply.Phase == string(domain.PhaseResults) && len(reply.Listings) == 0 {
		if len(reply.QuickActions) > 0 && reply.QuickActions[0].Value == "ampliar busca" {
			fallback = cannedEmptyResults
		} else if len(reply.QuickActions) > 0 {
			fallback = cannedRefinePrice
		}
	}
	if s.ai == nil {
		return fallback
	}

	var turnContext string
	switch {
	case len(reply.Listings) > 0:
		turnContext = "Imóveis a apresentar:"
		for _, card := range reply.Listings {
			turnContext += "\n- " + card.Title + " (" + card.Neighborhood + ", " + card.City + ") " + card.PriceLabel
		}
	case len(reply.QuickActions) > 0:
		turnContext = "Opções a oferecer:"
		for _, qa := range reply.QuickActions {
			turnContext += "\n- " + qa.Label
		}
	}

	history := s.history(ctx, conv, conv.ID != uuid.Nil)
	text, err := s.ai.Complete(ctx, buildPrompt(conv, history, turnContext))
	if err != nil || text == "" {
		if err != nil {
			s.log.Error("assistant completion failed", "error", err, "sessionId", conv.SessionID)
		}
		return fallback
	}
	return text
}

// maybeCreateLead records a CRM lead once per session when the visitor closes
// the funnel having left a phone number.
func (s *Service) maybeCreateLead(ctx context.Context, conv *domain.Conversation, extraction domain.Extraction) {
	const leadTag = "lead_created"
	if s.leads == nil || conv.BrokerID == nil || conv.ContactPhone == "" || conv.HasTag(leadTag) {
		return
	}
	if !extraction.ClosingIntent && conv.LeadStatus != domain.TemperatureHot {
		return
	}

	params := leadrepo.CreateLeadParams{
		BrokerID:       *conv.BrokerID,
		ContactName:    "Visitante do chat",
		ContactPhone:   conv.ContactPhone,
		MinBudgetCents: conv.MinBudgetCents,
		MaxBudgetCents: conv.MaxBudgetCents,
		Bedrooms:       conv.Bedrooms,
		Source:         "assistant",
		ConversationID: &conv.ID,
	}
	if conv.Operation != "" {
		op := string(conv.Operation)
		params.Operation = &op
	}
	if conv.PropertyType != "" {
		pt := string(conv.PropertyType)
		params.PropertyType = &pt
	}
	if conv.City != "" {
		city := conv.City
		params.City = &city
	}
	params.Neighborhoods = conv.Neighborhoods
	temp := conv.LeadStatus
	score := conv.LeadScore
	params.Temperature = &temp
	params.Score = &score

	if _, err := s.leads.Create(ctx, params); err != nil {
		s.log.Error("assistant lead creation failed", "error", err, "sessionId", conv.SessionID)
		return
	}
	conv.AnsweredTags = append(conv.AnsweredTags, leadTag)
}

// Rescore recomputes temperature for stale conversations; the background
// worker calls this so scores keep up with latency-based decay rules.
func (s *Service) Rescore(ctx context.Context, staleAfter time.Duration, limit int) (int, error) {
	const op = "assistant.Rescore"
	stale, err := s.repo.ListStale(ctx, time.Now().Add(-staleAfter), limit)
	if err != nil {
		s.log.DatabaseError(op, err)
		return 0, apperr.Wrap(apperr.KindInternal, "could not list conversations", err).WithOp(op)
	}

	updated := 0
	for _, conv := range stale {
		history, err := s.repo.ListMessages(ctx, conv.ID)
		if err != nil {
			s.log.DatabaseError(op, err)
			continue
		}
		score, status := s.score(conv, history, "")
		if score == conv.LeadScore && status == conv.LeadStatus {
			continue
		}
		conv.LeadScore = score
		conv.LeadStatus = status
		if err := s.repo.Save(ctx, conv); err != nil {
			s.log.DatabaseError(op, err)
			continue
		}
		updated++
	}
	return updated, nil
}

// GetState returns the persisted conversation for a session.
func (s *Service) GetState(ctx context.Context, sessionID string) (domain.Conversation, error) {
	const op = "assistant.GetState"
	conv, err := s.repo.GetBySession(ctx, sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Conversation{}, apperr.NotFound("conversation not found").WithOp(op)
	}
	if err != nil {
		s.log.DatabaseError(op, err)
		return domain.Conversation{}, apperr.Wrap(apperr.KindInternal, "could not load conversation", err).WithOp(op)
	}
	return conv, nil
}
