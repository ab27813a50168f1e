package service

import (
	"context"
	"testing"

	"broker_portal_backend/internal/assistant/domain"
	listingdomain "broker_portal_backend/internal/listings/domain"
	listingrepo "broker_portal_backend/internal/listings/repository"
	"broker_portal_backend/platform/logger"
)

type fakeInventory struct {
	typeCounts []listingrepo.LabelCount
	typeCallOp listingdomain.Operation
	cityCounts []listingrepo.LabelCount
	hoodCounts []listingrepo.LabelCount
	search     func(listingrepo.SearchParams) []listingdomain.Listing
}

func (f *fakeInventory) Search(ctx context.Context, params listingrepo.SearchParams) ([]listingdomain.Listing, error) {
	if f.search == nil {
		return nil, nil
	}
	return f.search(params), nil
}

func (f *fakeInventory) TypeCountsForOperation(ctx context.Context, op listingdomain.Operation) ([]listingrepo.LabelCount, error) {
	f.typeCallOp = op
	return f.typeCounts, nil
}

func (f *fakeInventory) CityCounts(ctx context.Context, op listingdomain.Operation, pt listingdomain.PropertyType) ([]listingrepo.LabelCount, error) {
	return f.cityCounts, nil
}

func (f *fakeInventory) NeighborhoodCounts(ctx context.Context, op listingdomain.Operation, pt listingdomain.PropertyType, city string) ([]listingrepo.LabelCount, error) {
	return f.hoodCounts, nil
}

func TestTypeQuickActionsComeFromOperationInventory(t *testing.T) {
	inv := &fakeInventory{
		typeCounts: []listingrepo.LabelCount{
			{Label: "apartamento", Count: 12},
			{Label: "casa", Count: 4},
		},
	}
	svc := &Service{inventory: inv, log: logger.New("test")}

	conv := domain.Conversation{Operation: listingdomain.OperationRental}
	reply := svc.typeReply(context.Background(), conv)

	if inv.typeCallOp != listingdomain.OperationRental {
		t.Fatalf("counted types for %q, want locacao", inv.typeCallOp)
	}
	if len(reply.QuickActions) != 2 {
		t.Fatalf("got %d quick actions, want 2", len(reply.QuickActions))
	}
	for _, qa := range reply.QuickActions {
		if qa.Label == "terreno" {
			t.Fatal("offered a type the inventory has no rentals for")
		}
		if qa.Count == 0 {
			t.Fatalf("quick action %q has no count", qa.Label)
		}
	}
}

func TestCityQuickActionsCarryCounts(t *testing.T) {
	inv := &fakeInventory{
		cityCounts: []listingrepo.LabelCount{
			{Label: "Natal", Count: 30},
			{Label: "Parnamirim", Count: 7},
		},
	}
	svc := &Service{inventory: inv, log: logger.New("test")}

	conv := domain.Conversation{
		Operation:    listingdomain.OperationSale,
		PropertyType: listingdomain.PropertyApartment,
	}
	reply := svc.cityReply(context.Background(), conv)

	if len(reply.QuickActions) != 2 {
		t.Fatalf("got %d quick actions, want 2", len(reply.QuickActions))
	}
	if reply.QuickActions[0].Label != "Natal" || reply.QuickActions[0].Count != 30 {
		t.Fatalf("got %+v, want Natal with 30", reply.QuickActions[0])
	}
}

func saleApartmentIn(neighborhood string) listingdomain.Listing {
	price := int64(40000000)
	return listingdomain.Listing{
		Operation:      listingdomain.OperationSale,
		PropertyType:   listingdomain.PropertyApartment,
		City:           "Natal",
		Neighborhood:   neighborhood,
		SalePriceCents: &price,
	}
}

func TestResultsWithheldWhenCityWideTierSpansNeighborhoods(t *testing.T) {
	// The asked-for neighborhood has no inventory; only the city-wide tier
	// finds anything, spread over three other neighborhoods.
	inv := &fakeInventory{
		search: func(p listingrepo.SearchParams) []listingdomain.Listing {
			if len(p.Neighborhoods) > 0 {
				return nil
			}
			return []listingdomain.Listing{
				saleApartmentIn("Tirol"),
				saleApartmentIn("Petropolis"),
				saleApartmentIn("Lagoa Nova"),
			}
		},
	}
	svc := &Service{inventory: inv, log: logger.New("test")}
	conv := domain.Conversation{
		Operation:     listingdomain.OperationSale,
		PropertyType:  listingdomain.PropertyApartment,
		City:          "Natal",
		Neighborhoods: []string{"Ponta Negra"},
	}

	reply := svc.resultsReply(context.Background(), &conv)
	if reply.Phase != string(domain.PhaseAwaitingNeighborhood) {
		t.Fatalf("Phase = %q, want awaiting_neighborhood", reply.Phase)
	}
	if len(reply.Listings) != 0 {
		t.Fatal("listings revealed from a multi-neighborhood city-wide search")
	}
	if len(reply.QuickActions) != 3 {
		t.Fatalf("got %d quick actions, want the 3 discovered neighborhoods", len(reply.QuickActions))
	}
}
