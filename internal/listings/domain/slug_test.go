package domain

import "testing"

func sampleListing() Listing {
	sale := int64(85000000)
	return Listing{
		Codigo:         1234,
		City:           "Florianópolis",
		Neighborhood:   "Centro",
		Operation:      OperationSale,
		PropertyType:   PropertyApartment,
		SalePriceCents: &sale,
		AreaM2:         120,
		Bedrooms:       3,
		ParkingSpots:   2,
	}
}

func TestSlugFullListing(t *testing.T) {
	got := Slug(sampleListing())
	want := "apartamento-3-quartos-centro-florianopolis-2-vagas-120-m2-venda-850000-cod1234"
	if got != want {
		t.Fatalf("Slug() = %q, want %q", got, want)
	}
}

func TestSlugOmitsZeroFields(t *testing.T) {
	l := sampleListing()
	l.Bedrooms = 0
	l.ParkingSpots = 0
	l.AreaM2 = 0
	got := Slug(l)
	want := "apartamento-centro-florianopolis-venda-850000-cod1234"
	if got != want {
		t.Fatalf("Slug() = %q, want %q", got, want)
	}
}

func TestSlugAlwaysEndsWithCodigo(t *testing.T) {
	l := Listing{Codigo: 77}
	if got := Slug(l); got != "cod77" {
		t.Fatalf("Slug() = %q, want %q", got, "cod77")
	}
}

func TestSlugDeterministic(t *testing.T) {
	l := sampleListing()
	first := Slug(l)
	for i := 0; i < 5; i++ {
		if again := Slug(l); again != first {
			t.Fatalf("Slug() not deterministic: %q vs %q", first, again)
		}
	}
}

func TestSlugUsesRentalPriceForRentals(t *testing.T) {
	l := sampleListing()
	l.Operation = OperationRental
	l.SalePriceCents = nil
	rent := int64(250000)
	l.RentalPriceCents = &rent
	got := Slug(l)
	want := "apartamento-3-quartos-centro-florianopolis-2-vagas-120-m2-locacao-2500-cod1234"
	if got != want {
		t.Fatalf("Slug() = %q, want %q", got, want)
	}
}

func TestParseSlugCodigo(t *testing.T) {
	cases := []struct {
		slug string
		want int64
		ok   bool
	}{
		{"apartamento-3-quartos-centro-florianopolis-venda-850000-cod1234", 1234, true},
		{"cod77", 77, true},
		{"casa-sem-codigo", 0, false},
		{"casa-cod", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseSlugCodigo(tc.slug)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseSlugCodigo(%q) = (%d, %v), want (%d, %v)", tc.slug, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSlugifyFoldsAndCollapses(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"São José", "sao-jose"},
		{"  Jardim   Botânico!! ", "jardim-botanico"},
		{"Água Verde / Batel", "agua-verde-batel"},
		{"CENTRO", "centro"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
