package matching

import (
	"testing"

	"broker_portal_backend/internal/listings/domain"
)

func cents(reais int64) *int64 {
	v := reais * 100
	return &v
}

func fullPrefs() Preferences {
	return Preferences{
		Operation:      domain.OperationSale,
		PropertyType:   domain.PropertyApartment,
		City:           "Florianópolis",
		Neighborhoods:  []string{"Centro"},
		MinBudgetCents: cents(200000),
		MaxBudgetCents: cents(500000),
	}
}

func matchingListing() domain.Listing {
	return domain.Listing{
		Operation:      domain.OperationSale,
		PropertyType:   domain.PropertyApartment,
		City:           "Florianopolis",
		Neighborhood:   "centro",
		SalePriceCents: cents(350000),
	}
}

func TestScorePerfectMatch(t *testing.T) {
	if got := Score(fullPrefs(), matchingListing()); got != 100 {
		t.Fatalf("Score() = %d, want 100", got)
	}
}

func TestScoreMovesInTwentyPointSteps(t *testing.T) {
	valid := map[int]bool{0: true, 20: true, 40: true, 60: true, 80: true, 100: true}

	listings := []domain.Listing{
		matchingListing(),
		{Operation: domain.OperationRental, PropertyType: domain.PropertyHouse},
		{Operation: domain.OperationSale, City: "Curitiba", SalePriceCents: cents(100000)},
		{PropertyType: domain.PropertyApartment, Neighborhood: "Centro", City: "Florianópolis"},
		{},
	}
	for _, l := range listings {
		if got := Score(fullPrefs(), l); !valid[got] {
			t.Fatalf("Score() = %d, not a multiple of 20 in [0,100]", got)
		}
	}
}

func TestScoreBudgetBoundaryIsStrict(t *testing.T) {
	prefs := Preferences{
		Operation:      domain.OperationRental,
		MaxBudgetCents: cents(3000),
	}

	atLimit := domain.Listing{Operation: domain.OperationRental, RentalPriceCents: cents(3000)}
	overByOne := domain.Listing{Operation: domain.OperationRental, RentalPriceCents: cents(3001)}

	if got := Score(prefs, atLimit); got != 40 {
		t.Fatalf("price at limit: Score() = %d, want 40", got)
	}
	// One real over budget loses the entire budget criterion.
	if got := Score(prefs, overByOne); got != 20 {
		t.Fatalf("price one over limit: Score() = %d, want 20", got)
	}
}

func TestScoreBudgetInclusiveOnBothEnds(t *testing.T) {
	prefs := fullPrefs()

	atMin := matchingListing()
	atMin.SalePriceCents = cents(200000)
	atMax := matchingListing()
	atMax.SalePriceCents = cents(500000)
	belowMin := matchingListing()
	belowMin.SalePriceCents = cents(199999)

	if got := Score(prefs, atMin); got != 100 {
		t.Fatalf("price at min: Score() = %d, want 100", got)
	}
	if got := Score(prefs, atMax); got != 100 {
		t.Fatalf("price at max: Score() = %d, want 100", got)
	}
	if got := Score(prefs, belowMin); got != 80 {
		t.Fatalf("price below min: Score() = %d, want 80", got)
	}
}

func TestScoreNoBudgetMeansNoConstraint(t *testing.T) {
	prefs := fullPrefs()
	prefs.MinBudgetCents = nil
	prefs.MaxBudgetCents = nil

	unpriced := matchingListing()
	unpriced.SalePriceCents = nil
	if got := Score(prefs, unpriced); got != 100 {
		t.Fatalf("Score() = %d, want 100 when lead has no budget", got)
	}
}

func TestScoreMissingPriceFailsBudget(t *testing.T) {
	prefs := fullPrefs()
	unpriced := matchingListing()
	unpriced.SalePriceCents = nil
	if got := Score(prefs, unpriced); got != 80 {
		t.Fatalf("Score() = %d, want 80 when listing has no price", got)
	}
}

func TestScoreAnyOfThreeNeighborhoodsCounts(t *testing.T) {
	prefs := fullPrefs()
	prefs.Neighborhoods = []string{"Trindade", "Itacorubi", "Centro"}

	if got := Score(prefs, matchingListing()); got != 100 {
		t.Fatalf("Score() = %d, want 100 when any listed neighborhood matches", got)
	}

	prefs.Neighborhoods = []string{"Trindade", "Itacorubi"}
	if got := Score(prefs, matchingListing()); got != 80 {
		t.Fatalf("Score() = %d, want 80 when no listed neighborhood matches", got)
	}
}

func TestScoreCombinedOperationCounts(t *testing.T) {
	prefs := Preferences{Operation: domain.OperationRental}
	combined := domain.Listing{Operation: domain.OperationSaleOrRental}
	if got := Score(prefs, combined); got < 20 {
		t.Fatalf("Score() = %d, venda_locacao should satisfy a rental lead", got)
	}
}

func TestRankFiltersBelowThresholdAndSorts(t *testing.T) {
	prefs := fullPrefs()

	perfect := matchingListing()
	wrongNeighborhood := matchingListing()
	wrongNeighborhood.Neighborhood = "Trindade"
	wrongCityAndType := domain.Listing{Operation: domain.OperationSale, SalePriceCents: cents(300000)}

	matches := Rank(prefs, []domain.Listing{wrongNeighborhood, perfect, wrongCityAndType})
	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2", len(matches))
	}
	if matches[0].Score != 100 || matches[1].Score != 80 {
		t.Fatalf("scores = [%d, %d], want [100, 80]", matches[0].Score, matches[1].Score)
	}
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	prefs := fullPrefs()

	first := matchingListing()
	first.Title = "first"
	second := matchingListing()
	second.Title = "second"

	matches := Rank(prefs, []domain.Listing{first, second})
	if len(matches) != 2 || matches[0].Listing.Title != "first" || matches[1].Listing.Title != "second" {
		t.Fatalf("tie order changed: %+v", matches)
	}
}
