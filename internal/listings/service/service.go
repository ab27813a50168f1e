// Package service implements the listings use cases on top of the repository.
package service

import (
	"context"
	"errors"
	"fmt"

	"broker_portal_backend/internal/events"
	"broker_portal_backend/internal/listings/domain"
	"broker_portal_backend/internal/listings/repository"
	"broker_portal_backend/platform/apperr"
	"broker_portal_backend/platform/logger"

	"github.com/google/uuid"
)

type Service struct {
	repo *repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

func New(repo *repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

type CreateInput struct {
	BrokerID uuid.UUID
	Listing  domain.Listing
	Publish  bool
}

func (s *Service) Create(ctx context.Context, input CreateInput) (domain.Listing, error) {
	const op = "listings.Create"

	l := domain.Normalize(input.Listing)
	status := domain.StatusPending
	if input.Publish {
		if !l.HasMeaningfulPrice() {
			return domain.Listing{}, apperr.Validation("listing needs at least one price to be published").WithOp(op)
		}
		status = domain.StatusActive
	}

	created, err := s.repo.Create(ctx, repository.CreateParams{
		BrokerID:          input.BrokerID,
		Title:             l.Title,
		Description:       l.Description,
		State:             l.State,
		City:              l.City,
		Neighborhood:      l.Neighborhood,
		Operation:         l.Operation,
		PropertyType:      l.PropertyType,
		SalePriceCents:    l.SalePriceCents,
		RentalPriceCents:  l.RentalPriceCents,
		DailyPriceCents:   l.DailyPriceCents,
		MonthlyPriceCents: l.MonthlyPriceCents,
		AreaM2:            l.AreaM2,
		Bedrooms:          l.Bedrooms,
		Suites:            l.Suites,
		Bathrooms:         l.Bathrooms,
		ParkingSpots:      l.ParkingSpots,
		Photos:            l.Photos,
		Features:          l.Features,
		Status:            status,
	})
	if err != nil {
		s.log.DatabaseError(op, err)
		return domain.Listing{}, apperr.Wrap(apperr.KindInternal, "could not create listing", err).WithOp(op)
	}

	if created.Status == domain.StatusActive {
		s.publishListingPublished(ctx, created)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Listing, error) {
	const op = "listings.Get"
	l, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Listing{}, apperr.NotFound("listing not found").WithOp(op)
	}
	if err != nil {
		s.log.DatabaseError(op, err)
		return domain.Listing{}, apperr.Wrap(apperr.KindInternal, "could not load listing", err).WithOp(op)
	}
	return l, nil
}

// ResolveSlug loads a listing from a public SEO slug. Only the trailing
// codigo is authoritative; the returned canonical slug lets the caller issue
// a redirect when the rest of the path is stale.
func (s *Service) ResolveSlug(ctx context.Context, slug string) (domain.Listing, string, error) {
	const op = "listings.ResolveSlug"
	codigo, ok := domain.ParseSlugCodigo(slug)
	if !ok {
		return domain.Listing{}, "", apperr.BadRequest("invalid listing slug").WithOp(op)
	}
	l, err := s.repo.GetByCodigo(ctx, codigo)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Listing{}, "", apperr.NotFound("listing not found").WithOp(op)
	}
	if err != nil {
		s.log.DatabaseError(op, err)
		return domain.Listing{}, "", apperr.Wrap(apperr.KindInternal, "could not load listing", err).WithOp(op)
	}
	return l, domain.Slug(l), nil
}

func (s *Service) Update(ctx context.Context, id, brokerID uuid.UUID, params repository.UpdateParams) (domain.Listing, error) {
	const op = "listings.Update"

	var wasActive bool
	if params.Status != nil && *params.Status == domain.StatusActive {
		current, err := s.repo.GetByID(ctx, id)
		if err == nil {
			wasActive = current.Status == domain.StatusActive
		}
	}

	updated, err := s.repo.Update(ctx, id, brokerID, params)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Listing{}, apperr.NotFound("listing not found").WithOp(op)
	}
	if err != nil {
		s.log.DatabaseError(op, err)
		return domain.Listing{}, apperr.Wrap(apperr.KindInternal, "could not update listing", err).WithOp(op)
	}

	if !wasActive && params.Status != nil && updated.Status == domain.StatusActive {
		s.publishListingPublished(ctx, updated)
	}
	return updated, nil
}

func (s *Service) Deactivate(ctx context.Context, id, brokerID uuid.UUID) error {
	const op = "listings.Deactivate"
	err := s.repo.Deactivate(ctx, id, brokerID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("listing not found").WithOp(op)
	}
	if err != nil {
		s.log.DatabaseError(op, err)
		return apperr.Wrap(apperr.KindInternal, "could not deactivate listing", err).WithOp(op)
	}
	return nil
}

func (s *Service) ListByBroker(ctx context.Context, brokerID uuid.UUID, status *domain.Status, limit, offset int) ([]domain.Listing, error) {
	const op = "listings.ListByBroker"
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	items, err := s.repo.ListByBroker(ctx, brokerID, status, limit, offset)
	if err != nil {
		s.log.DatabaseError(op, err)
		return nil, apperr.Wrap(apperr.KindInternal, "could not list listings", err).WithOp(op)
	}
	return items, nil
}

func (s *Service) Search(ctx context.Context, params repository.SearchParams) ([]domain.Listing, error) {
	const op = "listings.Search"
	items, err := s.repo.Search(ctx, params)
	if err != nil {
		s.log.DatabaseError(op, err)
		return nil, apperr.Wrap(apperr.KindInternal, "search failed", err).WithOp(op)
	}
	return items, nil
}

// ImportResult reports the outcome of a bulk import.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []string
}

// Import normalizes and stores raw rows from an external export. Rows with
// unrecognized operation or type labels, or without a city, are skipped and
// reported rather than failing the whole batch.
func (s *Service) Import(ctx context.Context, brokerID uuid.UUID, raws []domain.RawListing) (ImportResult, error) {
	const op = "listings.Import"
	var result ImportResult
	for i, raw := range raws {
		l := domain.FromRaw(raw)
		switch {
		case l.Operation == "":
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: unrecognized operation %q", i, raw.Operacao.Value))
			continue
		case l.PropertyType == "":
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: unrecognized property type %q", i, raw.TipoImovel.Value))
			continue
		case l.City == "":
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing city", i))
			continue
		}

		created, err := s.repo.Create(ctx, repository.CreateParams{
			BrokerID:          brokerID,
			Title:             l.Title,
			Description:       l.Description,
			State:             l.State,
			City:              l.City,
			Neighborhood:      l.Neighborhood,
			Operation:         l.Operation,
			PropertyType:      l.PropertyType,
			SalePriceCents:    l.SalePriceCents,
			RentalPriceCents:  l.RentalPriceCents,
			DailyPriceCents:   l.DailyPriceCents,
			MonthlyPriceCents: l.MonthlyPriceCents,
			AreaM2:            l.AreaM2,
			Bedrooms:          l.Bedrooms,
			Suites:            l.Suites,
			Bathrooms:         l.Bathrooms,
			ParkingSpots:      l.ParkingSpots,
			Photos:            l.Photos,
			Features:          l.Features,
			Status:            l.Status,
		})
		if err != nil {
			s.log.DatabaseError(op, err)
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i, err))
			continue
		}
		result.Imported++
		if created.Status == domain.StatusActive {
			s.publishListingPublished(ctx, created)
		}
	}
	return result, nil
}

func (s *Service) publishListingPublished(ctx context.Context, l domain.Listing) {
	s.bus.Publish(ctx, events.ListingPublished{
		BaseEvent: events.NewBaseEvent(),
		ListingID: l.ID,
		BrokerID:  l.BrokerID,
		Codigo:    l.Codigo,
		City:      l.City,
		Operation: string(l.Operation),
	})
}
