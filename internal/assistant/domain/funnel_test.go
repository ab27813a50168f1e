package domain

import (
	"testing"

	listingdomain "broker_portal_backend/internal/listings/domain"
)

func saleApartment(neighborhood string, priceReais int64) listingdomain.Listing {
	price := priceReais * 100
	return listingdomain.Listing{
		Operation:      listingdomain.OperationSale,
		PropertyType:   listingdomain.PropertyApartment,
		City:           "Natal",
		Neighborhood:   neighborhood,
		SalePriceCents: &price,
	}
}

func TestDecideResultsDefersOnMultipleNeighborhoods(t *testing.T) {
	c := Conversation{
		Operation:    listingdomain.OperationSale,
		PropertyType: listingdomain.PropertyApartment,
		City:         "Natal",
	}
	found := []listingdomain.Listing{
		saleApartment("Ponta Negra", 400000),
		saleApartment("Tirol", 350000),
		saleApartment("Lagoa Nova", 300000),
	}

	d := DecideResults(c, found, true)
	if d.Kind != ResultsDeferNeighborhoods {
		t.Fatalf("Kind = %q, want defer_neighborhoods", d.Kind)
	}
	if len(d.Neighborhoods) != 3 {
		t.Fatalf("Neighborhoods = %v, want 3 options", d.Neighborhoods)
	}
	if len(d.Listings) != 0 {
		t.Fatal("listings revealed before the user narrowed down")
	}
}

func TestDecideResultsCityWideDefersDespiteChosenNeighborhood(t *testing.T) {
	c := Conversation{
		Operation:     listingdomain.OperationSale,
		PropertyType:  listingdomain.PropertyApartment,
		City:          "Natal",
		Neighborhoods: []string{"Ponta Negra"},
	}
	found := []listingdomain.Listing{
		saleApartment("Tirol", 400000),
		saleApartment("Petropolis", 350000),
		saleApartment("Lagoa Nova", 300000),
	}

	d := DecideResults(c, found, true)
	if d.Kind != ResultsDeferNeighborhoods {
		t.Fatalf("Kind = %q, want defer_neighborhoods for a city-wide fallback", d.Kind)
	}
	if len(d.Listings) != 0 {
		t.Fatal("city-wide listings revealed across several neighborhoods")
	}
	if len(d.Neighborhoods) != 3 {
		t.Fatalf("Neighborhoods = %v, want the 3 discovered options", d.Neighborhoods)
	}
}

func TestDecideResultsShowsWhenNeighborhoodChosen(t *testing.T) {
	c := Conversation{
		Operation:     listingdomain.OperationSale,
		PropertyType:  listingdomain.PropertyApartment,
		City:          "Natal",
		Neighborhoods: []string{"Ponta Negra"},
	}
	found := []listingdomain.Listing{
		saleApartment("Ponta Negra", 400000),
		saleApartment("Ponta Negra", 350000),
	}

	d := DecideResults(c, found, false)
	if d.Kind != ResultsShow {
		t.Fatalf("Kind = %q, want show", d.Kind)
	}
	if len(d.Listings) != 2 {
		t.Fatalf("len(Listings) = %d, want 2", len(d.Listings))
	}
}

func TestDecideResultsSingleNeighborhoodShowsDirectly(t *testing.T) {
	c := Conversation{City: "Natal"}
	found := []listingdomain.Listing{
		saleApartment("Tirol", 400000),
		saleApartment("Tirol", 350000),
	}
	if d := DecideResults(c, found, true); d.Kind != ResultsShow {
		t.Fatalf("Kind = %q, want show for single-neighborhood set", d.Kind)
	}
}

func TestDecideResultsEmpty(t *testing.T) {
	d := DecideResults(Conversation{City: "Natal"}, nil, true)
	if d.Kind != ResultsEmpty {
		t.Fatalf("Kind = %q, want empty", d.Kind)
	}
}

func TestDecideResultsRefinesLargeSets(t *testing.T) {
	c := Conversation{
		Operation:     listingdomain.OperationSale,
		City:          "Natal",
		Neighborhoods: []string{"Ponta Negra"},
	}
	found := make([]listingdomain.Listing, 0, 9)
	for i := int64(1); i <= 9; i++ {
		found = append(found, saleApartment("Ponta Negra", i*100000))
	}

	d := DecideResults(c, found, false)
	if d.Kind != ResultsRefinePrice {
		t.Fatalf("Kind = %q, want refine_price", d.Kind)
	}
	if len(d.PriceBands) != 3 {
		t.Fatalf("len(PriceBands) = %d, want 3", len(d.PriceBands))
	}
	total := 0
	for _, b := range d.PriceBands {
		if b.MinCents > b.MaxCents {
			t.Fatalf("band %+v inverted", b)
		}
		total += b.Count
	}
	if total != 9 {
		t.Fatalf("band counts sum to %d, want 9", total)
	}
}

func TestStrictFilterDropsMismatchedRows(t *testing.T) {
	rental := listingdomain.Listing{Operation: listingdomain.OperationRental, PropertyType: listingdomain.PropertyApartment}
	sale := listingdomain.Listing{Operation: listingdomain.OperationSale, PropertyType: listingdomain.PropertyApartment}
	combined := listingdomain.Listing{Operation: listingdomain.OperationSaleOrRental, PropertyType: listingdomain.PropertyApartment}
	house := listingdomain.Listing{Operation: listingdomain.OperationSale, PropertyType: listingdomain.PropertyHouse}

	got := StrictFilter(
		[]listingdomain.Listing{rental, sale, combined, house},
		listingdomain.OperationSale,
		listingdomain.PropertyApartment,
	)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (sale and combined apartments)", len(got))
	}
	for _, l := range got {
		if l.PropertyType != listingdomain.PropertyApartment {
			t.Fatalf("non-apartment survived: %q", l.PropertyType)
		}
	}
}

func TestRelaxedMax(t *testing.T) {
	max := int64(300000)
	relaxed := RelaxedMax(&max)
	if relaxed == nil || *relaxed != 360000 {
		t.Fatalf("RelaxedMax = %v, want 360000", relaxed)
	}
	if RelaxedMax(nil) != nil {
		t.Fatal("RelaxedMax(nil) should stay nil")
	}
}
