package aggregate

import (
	"math"
	"testing"
)

func cents(reais int64) *int64 {
	v := reais * 100
	return &v
}

func TestAggregateComputesPerM2(t *testing.T) {
	rows := []Row{
		{City: "Natal", SalePriceCents: cents(500000), AreaM2: 100},
		{City: "Natal", SalePriceCents: cents(300000), AreaM2: 100},
	}
	groups := Aggregate(rows, ByCity)
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(groups))
	}
	g := groups[0]
	if g.Key != "Natal" || g.Count != 2 {
		t.Fatalf("group = %+v", g)
	}
	if g.SalePerM2.Mean == nil || *g.SalePerM2.Mean != 4000 {
		t.Fatalf("Mean = %v, want 4000", g.SalePerM2.Mean)
	}
	if *g.SalePerM2.Min != 3000 || *g.SalePerM2.Max != 5000 {
		t.Fatalf("Min/Max = %v/%v", *g.SalePerM2.Min, *g.SalePerM2.Max)
	}
}

func TestAggregateNilNotNaN(t *testing.T) {
	rows := []Row{
		{City: "Natal", AreaM2: 0},
		{City: "Natal", SalePriceCents: cents(500000), AreaM2: 0},
		{City: "Natal", MonthlyRentCents: nil, AreaM2: 80},
	}
	groups := Aggregate(rows, ByCity)
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(groups))
	}
	g := groups[0]
	if g.SalePerM2.Mean != nil || g.SalePerM2.Min != nil || g.SalePerM2.Max != nil {
		t.Fatalf("SalePerM2 = %+v, want all nil", g.SalePerM2)
	}
	if g.RentPerM2.Mean != nil {
		t.Fatalf("RentPerM2.Mean = %v, want nil", g.RentPerM2.Mean)
	}
	if g.AnnualYield != nil {
		t.Fatalf("AnnualYield = %v, want nil", g.AnnualYield)
	}
}

func TestAggregateYield(t *testing.T) {
	rows := []Row{
		// 2500 × 12 / 500000 × 100 = 6%
		{City: "Natal", SalePriceCents: cents(500000), MonthlyRentCents: cents(2500), AreaM2: 100},
	}
	groups := Aggregate(rows, ByCity)
	if groups[0].AnnualYield == nil || math.Abs(*groups[0].AnnualYield-6.0) > 1e-9 {
		t.Fatalf("AnnualYield = %v, want 6.0", groups[0].AnnualYield)
	}
}

func TestAggregateYieldTwoDecimals(t *testing.T) {
	rows := []Row{
		// 1000 × 12 / 350000 × 100 = 3.428571... → 3.43
		{City: "Natal", SalePriceCents: cents(350000), MonthlyRentCents: cents(1000), AreaM2: 100},
	}
	groups := Aggregate(rows, ByCity)
	if groups[0].AnnualYield == nil || *groups[0].AnnualYield != 3.43 {
		t.Fatalf("AnnualYield = %v, want 3.43", groups[0].AnnualYield)
	}
}

func TestAggregateSortsByCountDesc(t *testing.T) {
	rows := []Row{
		{City: "Parnamirim", SalePriceCents: cents(200000), AreaM2: 80},
		{City: "Natal", SalePriceCents: cents(500000), AreaM2: 100},
		{City: "Natal", SalePriceCents: cents(300000), AreaM2: 90},
	}
	groups := Aggregate(rows, ByCity)
	if len(groups) != 2 || groups[0].Key != "Natal" || groups[1].Key != "Parnamirim" {
		t.Fatalf("groups = %+v, want Natal first", groups)
	}
}

func TestAggregateGroupsByFoldedKey(t *testing.T) {
	rows := []Row{
		{Neighborhood: "Petrópolis", SalePriceCents: cents(400000), AreaM2: 100},
		{Neighborhood: "petropolis", SalePriceCents: cents(600000), AreaM2: 100},
	}
	groups := Aggregate(rows, ByNeighborhood)
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1 (accent-insensitive grouping)", len(groups))
	}
	if groups[0].Key != "Petrópolis" {
		t.Fatalf("Key = %q, want first-seen label", groups[0].Key)
	}
}

func TestAggregateSkipsEmptyKeys(t *testing.T) {
	rows := []Row{
		{Neighborhood: "", SalePriceCents: cents(400000), AreaM2: 100},
		{Neighborhood: "Tirol", SalePriceCents: cents(400000), AreaM2: 100},
	}
	groups := Aggregate(rows, ByNeighborhood)
	if len(groups) != 1 || groups[0].Key != "Tirol" {
		t.Fatalf("groups = %+v", groups)
	}
}
