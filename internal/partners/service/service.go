// Package service implements broker partnership use cases: discovery,
// proposals, and matching a lead against partner inventory.
package service

import (
	"context"
	"errors"

	"broker_portal_backend/internal/events"
	"broker_portal_backend/internal/leads/matching"
	leadrepo "broker_portal_backend/internal/leads/repository"
	listingdomain "broker_portal_backend/internal/listings/domain"
	listingrepo "broker_portal_backend/internal/listings/repository"
	"broker_portal_backend/internal/partners/repository"
	"broker_portal_backend/platform/apperr"
	"broker_portal_backend/platform/logger"

	"github.com/google/uuid"
)

// ListingSearcher is the slice of the listings repository partner matching
// needs.
type ListingSearcher interface {
	Search(ctx context.Context, params listingrepo.SearchParams) ([]listingdomain.Listing, error)
}

// LeadReader loads a broker's lead so its preferences can be matched against
// partner inventory.
type LeadReader interface {
	Get(ctx context.Context, id, brokerID uuid.UUID) (leadrepo.Lead, error)
}

type Service struct {
	repo     *repository.Repository
	listings ListingSearcher
	leads    LeadReader
	bus      events.Bus
	log      *logger.Logger
}

func New(repo *repository.Repository, listings ListingSearcher, leads LeadReader, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, listings: listings, leads: leads, bus: bus, log: log}
}

// Discover lists brokers open to partnerships, optionally filtered to a city.
func (s *Service) Discover(ctx context.Context, brokerID uuid.UUID, city string) ([]repository.Profile, error) {
	const op = "partners.Discover"
	profiles, err := s.repo.ListOptedIn(ctx, brokerID, city)
	if err != nil {
		s.log.DatabaseError(op, err)
		return nil, apperr.Wrap(apperr.KindInternal, "could not list broker profiles", err).WithOp(op)
	}
	return profiles, nil
}

// Propose creates a pending partnership from requester to partner.
func (s *Service) Propose(ctx context.Context, requesterID, partnerID uuid.UUID, message *string) (repository.Partnership, error) {
	const op = "partners.Propose"
	if requesterID == partnerID {
		return repository.Partnership{}, apperr.Validation("cannot partner with yourself").WithOp(op)
	}

	partner, err := s.repo.GetProfile(ctx, partnerID)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Partnership{}, apperr.NotFound("broker not found").WithOp(op)
	}
	if err != nil {
		s.log.DatabaseError(op, err)
		return repository.Partnership{}, apperr.Wrap(apperr.KindInternal, "could not load broker profile", err).WithOp(op)
	}
	if !partner.PartnershipOptIn {
		return repository.Partnership{}, apperr.Validation("broker is not open to partnerships").WithOp(op)
	}

	p, err := s.repo.CreatePartnership(ctx, requesterID, partnerID, message)
	if errors.Is(err, repository.ErrAlreadyLinked) {
		return repository.Partnership{}, apperr.Conflict("partnership already exists").WithOp(op)
	}
	if err != nil {
		s.log.DatabaseError(op, err)
		return repository.Partnership{}, apperr.Wrap(apperr.KindInternal, "could not create partnership", err).WithOp(op)
	}

	s.bus.Publish(ctx, events.PartnershipProposed{
		BaseEvent:     events.NewBaseEvent(),
		PartnershipID: p.ID,
		RequesterID:   p.RequesterID,
		PartnerID:     p.PartnerID,
	})
	return p, nil
}

// Respond accepts or rejects a pending proposal. Only the broker the
// proposal was sent to can respond.
func (s *Service) Respond(ctx context.Context, id, brokerID uuid.UUID, accept bool) (repository.Partnership, error) {
	const op = "partners.Respond"
	status := repository.StatusRejected
	if accept {
		status = repository.StatusAccepted
	}

	p, err := s.repo.SetStatus(ctx, id, brokerID, status)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Partnership{}, apperr.NotFound("pending partnership not found").WithOp(op)
	}
	if err != nil {
		s.log.DatabaseError(op, err)
		return repository.Partnership{}, apperr.Wrap(apperr.KindInternal, "could not respond to partnership", err).WithOp(op)
	}

	if accept {
		s.bus.Publish(ctx, events.PartnershipAccepted{
			BaseEvent:     events.NewBaseEvent(),
			PartnershipID: p.ID,
			RequesterID:   p.RequesterID,
			PartnerID:     p.PartnerID,
		})
	}
	return p, nil
}

// End closes an accepted partnership. Either side can end it.
func (s *Service) End(ctx context.Context, id, brokerID uuid.UUID) (repository.Partnership, error) {
	const op = "partners.End"
	p, err := s.repo.SetStatus(ctx, id, brokerID, repository.StatusEnded)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Partnership{}, apperr.NotFound("accepted partnership not found").WithOp(op)
	}
	if err != nil {
		s.log.DatabaseError(op, err)
		return repository.Partnership{}, apperr.Wrap(apperr.KindInternal, "could not end partnership", err).WithOp(op)
	}
	return p, nil
}

// List returns every partnership the broker is part of.
func (s *Service) List(ctx context.Context, brokerID uuid.UUID) ([]repository.Partnership, error) {
	const op = "partners.List"
	items, err := s.repo.ListForBroker(ctx, brokerID)
	if err != nil {
		s.log.DatabaseError(op, err)
		return nil, apperr.Wrap(apperr.KindInternal, "could not list partnerships", err).WithOp(op)
	}
	return items, nil
}

// MatchForLead ranks accepted partners' active listings against a lead's
// preferences. The broker's own inventory is excluded; this surfaces what a
// partner could close together with them.
func (s *Service) MatchForLead(ctx context.Context, leadID, brokerID uuid.UUID) ([]matching.Match, error) {
	const op = "partners.MatchForLead"
	lead, err := s.leads.Get(ctx, leadID, brokerID)
	if err != nil {
		return nil, err
	}

	partnerIDs, err := s.repo.AcceptedPartnerIDs(ctx, brokerID)
	if err != nil {
		s.log.DatabaseError(op, err)
		return nil, apperr.Wrap(apperr.KindInternal, "could not load partners", err).WithOp(op)
	}
	if len(partnerIDs) == 0 {
		return []matching.Match{}, nil
	}

	prefs := preferencesOf(lead)
	searchParams := listingrepo.SearchParams{BrokerIDs: partnerIDs, Limit: 200}
	if prefs.Operation != "" {
		searchParams.Operation = prefs.Operation
	}
	if prefs.City != "" {
		searchParams.City = prefs.City
	}

	candidates, err := s.listings.Search(ctx, searchParams)
	if err != nil {
		s.log.DatabaseError(op, err)
		return nil, apperr.Wrap(apperr.KindInternal, "could not search partner listings", err).WithOp(op)
	}
	return matching.Rank(prefs, candidates), nil
}

func preferencesOf(lead leadrepo.Lead) matching.Preferences {
	prefs := matching.Preferences{
		MinBudgetCents: lead.MinBudgetCents,
		MaxBudgetCents: lead.MaxBudgetCents,
	}
	if lead.Operation != nil {
		prefs.Operation = listingdomain.Operation(*lead.Operation)
	}
	if lead.PropertyType != nil {
		prefs.PropertyType = listingdomain.PropertyType(*lead.PropertyType)
	}
	if lead.City != nil {
		prefs.City = *lead.City
	}
	prefs.Neighborhoods = lead.Neighborhoods
	return prefs
}
