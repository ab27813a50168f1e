package domain

import (
	"testing"

	listingdomain "broker_portal_backend/internal/listings/domain"
)

func TestPhaseProgression(t *testing.T) {
	c := Conversation{ClientType: ClientUnknown}
	if got := c.Phase(); got != PhaseStart {
		t.Fatalf("empty state: Phase() = %q, want start", got)
	}

	c.Operation = listingdomain.OperationSale
	if got := c.Phase(); got != PhaseAwaitingType {
		t.Fatalf("operation only: Phase() = %q, want awaiting_type", got)
	}

	c.PropertyType = listingdomain.PropertyApartment
	if got := c.Phase(); got != PhaseAwaitingCity {
		t.Fatalf("operation+type: Phase() = %q, want awaiting_city", got)
	}

	c.City = "Natal"
	if got := c.Phase(); got != PhaseResults {
		t.Fatalf("operation+type+city: Phase() = %q, want results", got)
	}
}

func TestPhaseBrokerBranchWins(t *testing.T) {
	c := Conversation{ClientType: ClientBroker, Operation: listingdomain.OperationSale}
	if got := c.Phase(); got != PhaseBroker {
		t.Fatalf("Phase() = %q, want broker", got)
	}
}

func TestMergeNeverOverwrites(t *testing.T) {
	c := Conversation{
		ClientType:   ClientBuyer,
		Operation:    listingdomain.OperationSale,
		PropertyType: listingdomain.PropertyApartment,
		City:         "Natal",
	}
	merged := Merge(c, Extraction{
		Operation:    listingdomain.OperationRental,
		PropertyType: listingdomain.PropertyHouse,
		City:         "Recife",
	})
	if merged.Operation != listingdomain.OperationSale {
		t.Fatalf("Operation overwritten to %q", merged.Operation)
	}
	if merged.PropertyType != listingdomain.PropertyApartment {
		t.Fatalf("PropertyType overwritten to %q", merged.PropertyType)
	}
	if merged.City != "Natal" {
		t.Fatalf("City overwritten to %q", merged.City)
	}
}

func TestMergeFillsEmptyFields(t *testing.T) {
	max := int64(30000000)
	bedrooms := 3
	merged := Merge(Conversation{ClientType: ClientUnknown}, Extraction{
		Operation:      listingdomain.OperationRental,
		City:           "Natal",
		MaxBudgetCents: &max,
		Bedrooms:       &bedrooms,
	})
	if merged.Operation != listingdomain.OperationRental || merged.City != "Natal" {
		t.Fatalf("fields not filled: %+v", merged)
	}
	if merged.MaxBudgetCents == nil || *merged.MaxBudgetCents != max {
		t.Fatalf("MaxBudgetCents = %v", merged.MaxBudgetCents)
	}
	if merged.Bedrooms == nil || *merged.Bedrooms != 3 {
		t.Fatalf("Bedrooms = %v", merged.Bedrooms)
	}
	if merged.ClientType != ClientBuyer {
		t.Fatalf("ClientType = %q, want buyer once intent appears", merged.ClientType)
	}
}

func TestMergeExpandSearchClearsOnlyNeighborhoods(t *testing.T) {
	max := int64(50000000)
	c := Conversation{
		ClientType:     ClientBuyer,
		Operation:      listingdomain.OperationSale,
		PropertyType:   listingdomain.PropertyApartment,
		City:           "Natal",
		Neighborhoods:  []string{"Ponta Negra", "Tirol"},
		MaxBudgetCents: &max,
	}
	merged := Merge(c, Extraction{ExpandSearch: true})
	if len(merged.Neighborhoods) != 0 {
		t.Fatalf("Neighborhoods = %v, want cleared", merged.Neighborhoods)
	}
	if merged.City != "Natal" || merged.Operation != listingdomain.OperationSale {
		t.Fatal("expand search cleared more than neighborhoods")
	}
	if merged.MaxBudgetCents == nil {
		t.Fatal("expand search cleared the budget")
	}
}

func TestMergeCapsNeighborhoodsAtThree(t *testing.T) {
	c := Conversation{Neighborhoods: []string{"A", "B"}}
	merged := Merge(c, Extraction{Neighborhoods: []string{"C", "D"}})
	if len(merged.Neighborhoods) != MaxNeighborhoods {
		t.Fatalf("len(Neighborhoods) = %d, want %d", len(merged.Neighborhoods), MaxNeighborhoods)
	}
}

func TestMergeDeduplicatesNeighborhoodsFolded(t *testing.T) {
	c := Conversation{Neighborhoods: []string{"Jardim Botânico"}}
	merged := Merge(c, Extraction{Neighborhoods: []string{"jardim botanico"}})
	if len(merged.Neighborhoods) != 1 {
		t.Fatalf("Neighborhoods = %v, want deduplicated", merged.Neighborhoods)
	}
}

func TestMergeUrgencyIsSticky(t *testing.T) {
	merged := Merge(Conversation{UrgencyDetected: true}, Extraction{})
	if !merged.UrgencyDetected {
		t.Fatal("urgency flag lost on merge")
	}
}
