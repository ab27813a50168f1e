// Package service implements the lead pipeline use cases: Kanban board
// management and listing matching.
package service

import (
	"context"
	"errors"

	"broker_portal_backend/internal/events"
	"broker_portal_backend/internal/leads/matching"
	"broker_portal_backend/internal/leads/repository"
	listingdomain "broker_portal_backend/internal/listings/domain"
	listingrepo "broker_portal_backend/internal/listings/repository"
	"broker_portal_backend/platform/apperr"
	"broker_portal_backend/platform/logger"

	"github.com/google/uuid"
)

// ListingSearcher is the slice of the listings repository the matcher needs.
type ListingSearcher interface {
	Search(ctx context.Context, params listingrepo.SearchParams) ([]listingdomain.Listing, error)
}

type Service struct {
	repo     *repository.Repository
	listings ListingSearcher
	bus      events.Bus
	log      *logger.Logger
}

func New(repo *repository.Repository, listings ListingSearcher, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, listings: listings, bus: bus, log: log}
}

func (s *Service) Create(ctx context.Context, params repository.CreateLeadParams) (repository.Lead, error) {
	const op = "leads.Create"
	lead, err := s.repo.Create(ctx, params)
	if err != nil {
		s.log.DatabaseError(op, err)
		return repository.Lead{}, apperr.Wrap(apperr.KindInternal, "could not create lead", err).WithOp(op)
	}

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent:    events.NewBaseEvent(),
		LeadID:       lead.ID,
		BrokerID:     lead.BrokerID,
		ContactName:  lead.ContactName,
		ContactPhone: lead.ContactPhone,
		Source:       lead.Source,
	})
	return lead, nil
}

func (s *Service) Get(ctx context.Context, id, brokerID uuid.UUID) (repository.Lead, error) {
	const op = "leads.Get"
	lead, err := s.repo.GetByID(ctx, id, brokerID)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Lead{}, apperr.NotFound("lead not found").WithOp(op)
	}
	if err != nil {
		s.log.DatabaseError(op, err)
		return repository.Lead{}, apperr.Wrap(apperr.KindInternal, "could not load lead", err).WithOp(op)
	}
	return lead, nil
}

func (s *Service) List(ctx context.Context, params repository.ListParams) ([]repository.Lead, error) {
	const op = "leads.List"
	if params.Stage != nil && !repository.ValidStage(*params.Stage) {
		return nil, apperr.Validation("unknown pipeline stage").WithOp(op)
	}
	items, err := s.repo.List(ctx, params)
	if err != nil {
		s.log.DatabaseError(op, err)
		return nil, apperr.Wrap(apperr.KindInternal, "could not list leads", err).WithOp(op)
	}
	return items, nil
}

func (s *Service) Update(ctx context.Context, id, brokerID uuid.UUID, params repository.UpdateLeadParams) (repository.Lead, error) {
	const op = "leads.Update"
	lead, err := s.repo.Update(ctx, id, brokerID, params)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Lead{}, apperr.NotFound("lead not found").WithOp(op)
	}
	if err != nil {
		s.log.DatabaseError(op, err)
		return repository.Lead{}, apperr.Wrap(apperr.KindInternal, "could not update lead", err).WithOp(op)
	}
	return lead, nil
}

// MoveStage moves a lead to another Kanban column. Any column can move to
// any other; brokers reorder their pipeline freely.
func (s *Service) MoveStage(ctx context.Context, id, brokerID uuid.UUID, stage string) (repository.Lead, error) {
	const op = "leads.MoveStage"
	if !repository.ValidStage(stage) {
		return repository.Lead{}, apperr.Validation("unknown pipeline stage").WithOp(op)
	}

	lead, oldStage, err := s.repo.SetStage(ctx, id, brokerID, stage)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Lead{}, apperr.NotFound("lead not found").WithOp(op)
	}
	if err != nil {
		s.log.DatabaseError(op, err)
		return repository.Lead{}, apperr.Wrap(apperr.KindInternal, "could not move lead", err).WithOp(op)
	}

	if oldStage != lead.Stage {
		s.bus.Publish(ctx, events.LeadStageChanged{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    lead.ID,
			BrokerID:  lead.BrokerID,
			OldStage:  oldStage,
			NewStage:  lead.Stage,
		})
	}
	return lead, nil
}

func (s *Service) SetArchived(ctx context.Context, id, brokerID uuid.UUID, archived bool) error {
	const op = "leads.SetArchived"
	err := s.repo.SetArchived(ctx, id, brokerID, archived)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("lead not found").WithOp(op)
	}
	if err != nil {
		s.log.DatabaseError(op, err)
		return apperr.Wrap(apperr.KindInternal, "could not archive lead", err).WithOp(op)
	}
	return nil
}

// Delete removes a lead permanently. Brokers normally archive; this backs
// the explicit delete action in the pipeline UI.
func (s *Service) Delete(ctx context.Context, id, brokerID uuid.UUID) error {
	const op = "leads.Delete"
	err := s.repo.Delete(ctx, id, brokerID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("lead not found").WithOp(op)
	}
	if err != nil {
		s.log.DatabaseError(op, err)
		return apperr.Wrap(apperr.KindInternal, "could not delete lead", err).WithOp(op)
	}
	return nil
}

// Board is the Kanban view: column counts plus the unarchived leads.
type Board struct {
	Counts []repository.StageCount
	Leads  []repository.Lead
}

func (s *Service) Board(ctx context.Context, brokerID uuid.UUID) (Board, error) {
	const op = "leads.Board"
	counts, err := s.repo.CountByStage(ctx, brokerID)
	if err != nil {
		s.log.DatabaseError(op, err)
		return Board{}, apperr.Wrap(apperr.KindInternal, "could not load board", err).WithOp(op)
	}
	leads, err := s.repo.List(ctx, repository.ListParams{BrokerID: brokerID, Limit: 500})
	if err != nil {
		s.log.DatabaseError(op, err)
		return Board{}, apperr.Wrap(apperr.KindInternal, "could not load board", err).WithOp(op)
	}
	return Board{Counts: counts, Leads: leads}, nil
}

// Matches ranks the active inventory against the lead's preferences and
// returns listings scoring at least the surface threshold. The candidate
// query narrows only by operation and city; the scorer does the rest so a
// near miss on neighborhood or budget still shows up ranked lower.
func (s *Service) Matches(ctx context.Context, id, brokerID uuid.UUID) ([]matching.Match, error) {
	const op = "leads.Matches"
	lead, err := s.Get(ctx, id, brokerID)
	if err != nil {
		return nil, err
	}

	prefs := preferencesOf(lead)
	searchParams := listingrepo.SearchParams{Limit: 200}
	if prefs.Operation != "" {
		searchParams.Operation = prefs.Operation
	}
	if prefs.City != "" {
		searchParams.City = prefs.City
	}

	candidates, err := s.listings.Search(ctx, searchParams)
	if err != nil {
		s.log.DatabaseError(op, err)
		return nil, apperr.Wrap(apperr.KindInternal, "could not search listings", err).WithOp(op)
	}
	return matching.Rank(prefs, candidates), nil
}

func preferencesOf(lead repository.Lead) matching.Preferences {
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
