package service

import (
	"context"

	"broker_portal_backend/internal/assistant/domain"
	listingdomain "broker_portal_backend/internal/listings/domain"
	listingrepo "broker_portal_backend/internal/listings/repository"
)

// searchLimit bounds each tier's candidate set before post-filtering.
const searchLimit = 30

// tierCityWide is the number of the last search tier, the one that drops the
// neighborhood filter. Results from it must not be shown while they span
// several neighborhoods.
const tierCityWide = 3

// searchInventory runs the three-tier fallback: exact, budget relaxed by
// ×1.2, then city-wide. It stops at the first tier with results. Already
// shown listings are always excluded, and every tier's rows pass the strict
// operation/type post-filter. Store errors degrade to an empty tier.
func (s *Service) searchInventory(ctx context.Context, c domain.Conversation) ([]listingdomain.Listing, int) {
	base := listingrepo.SearchParams{
		Operation:     c.Operation,
		PropertyType:  c.PropertyType,
		City:          c.City,
		Neighborhoods: c.Neighborhoods,
		MinPriceCents: c.MinBudgetCents,
		MaxPriceCents: c.MaxBudgetCents,
		ExcludeIDs:    c.ShownListingIDs,
		Limit:         searchLimit,
	}
	if c.Bedrooms != nil {
		base.MinBedrooms = *c.Bedrooms
	}

	relaxed := base
	relaxed.MaxPriceCents = domain.RelaxedMax(base.MaxPriceCents)

	cityWide := relaxed
	cityWide.Neighborhoods = nil

	tiers := []listingrepo.SearchParams{base, relaxed, cityWide}
	for i, params := range tiers {
		found, err := s.inventory.Search(ctx, params)
		if err != nil {
			s.log.DatabaseError("assistant.searchInventory", err)
			continue
		}
		found = domain.StrictFilter(found, c.Operation, c.PropertyType)
		if len(found) > 0 {
			return found, i + 1
		}
	}
	return nil, len(tiers)
}
