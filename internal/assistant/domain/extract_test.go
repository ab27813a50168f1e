package domain

import (
	"testing"

	listingdomain "broker_portal_backend/internal/listings/domain"
)

var testVocab = Vocabulary{
	Cities:        []string{"Natal", "Parnamirim", "São Gonçalo do Amarante"},
	Neighborhoods: []string{"Ponta Negra", "Tirol", "Petrópolis", "Lagoa Nova"},
}

func TestExtractOperationAndType(t *testing.T) {
	e := Extract("Quero comprar um apartamento", testVocab)
	if e.Operation != listingdomain.OperationSale {
		t.Fatalf("Operation = %q, want venda", e.Operation)
	}
	if e.PropertyType != listingdomain.PropertyApartment {
		t.Fatalf("PropertyType = %q, want apartamento", e.PropertyType)
	}
}

func TestExtractRentalKeywords(t *testing.T) {
	e := Extract("procuro casa para alugar", testVocab)
	if e.Operation != listingdomain.OperationRental {
		t.Fatalf("Operation = %q, want locacao", e.Operation)
	}
	if e.PropertyType != listingdomain.PropertyHouse {
		t.Fatalf("PropertyType = %q, want casa", e.PropertyType)
	}
}

func TestExtractCityAndNeighborhoodAgainstVocabulary(t *testing.T) {
	e := Extract("em Natal, de preferência em Ponta Negra", testVocab)
	if e.City != "Natal" {
		t.Fatalf("City = %q, want Natal", e.City)
	}
	if len(e.Neighborhoods) != 1 || e.Neighborhoods[0] != "Ponta Negra" {
		t.Fatalf("Neighborhoods = %v", e.Neighborhoods)
	}
}

func TestExtractNeighborhoodDiacriticsInsensitive(t *testing.T) {
	e := Extract("pode ser em petropolis", testVocab)
	if len(e.Neighborhoods) != 1 || e.Neighborhoods[0] != "Petrópolis" {
		t.Fatalf("Neighborhoods = %v, want Petrópolis", e.Neighborhoods)
	}
}

func TestExtractBudgetPatterns(t *testing.T) {
	cases := []struct {
		message  string
		wantMin  int64 // reais, 0 means nil
		wantMax  int64
	}{
		{"meu orçamento é R$ 350.000", 0, 350000},
		{"posso pagar até 500 mil", 0, 500000},
		{"algo de 1,5 milhão", 0, 1500000},
		{"entre 200 mil e 300 mil", 200000, 300000},
		{"aluguel até R$ 3.000", 0, 3000},
	}
	for _, tc := range cases {
		e := Extract(tc.message, testVocab)
		if tc.wantMin == 0 && e.MinBudgetCents != nil {
			t.Fatalf("%q: MinBudgetCents = %d, want nil", tc.message, *e.MinBudgetCents)
		}
		if tc.wantMin != 0 && (e.MinBudgetCents == nil || *e.MinBudgetCents != tc.wantMin*100) {
			t.Fatalf("%q: MinBudgetCents = %v, want %d", tc.message, e.MinBudgetCents, tc.wantMin*100)
		}
		if e.MaxBudgetCents == nil || *e.MaxBudgetCents != tc.wantMax*100 {
			t.Fatalf("%q: MaxBudgetCents = %v, want %d", tc.message, e.MaxBudgetCents, tc.wantMax*100)
		}
	}
}

func TestExtractIgnoresSmallBareNumbers(t *testing.T) {
	e := Extract("quero 3 quartos", testVocab)
	if e.MaxBudgetCents != nil {
		t.Fatalf("MaxBudgetCents = %d, want nil for bedroom count", *e.MaxBudgetCents)
	}
	if e.Bedrooms == nil || *e.Bedrooms != 3 {
		t.Fatalf("Bedrooms = %v, want 3", e.Bedrooms)
	}
}

func TestExtractBrokerIntent(t *testing.T) {
	for _, msg := range []string{"sou corretor", "quero ser parceiro", "quais os planos?", "como anunciar meu imóvel"} {
		if e := Extract(msg, testVocab); !e.BrokerIntent {
			t.Fatalf("BrokerIntent not detected in %q", msg)
		}
	}
}

func TestExtractClosingIntent(t *testing.T) {
	for _, msg := range []string{"obrigado!", "valeu, era só isso", "tchau"} {
		if e := Extract(msg, testVocab); !e.ClosingIntent {
			t.Fatalf("ClosingIntent not detected in %q", msg)
		}
	}
}

func TestExtractExpandSearch(t *testing.T) {
	e := Extract("pode ampliar a busca para outros bairros", testVocab)
	if !e.ExpandSearch {
		t.Fatal("ExpandSearch not detected")
	}
}

func TestExtractUrgencyAnywhere(t *testing.T) {
	for _, msg := range []string{
		"é urgente",
		"preciso me mudar, caso seja possível o quanto antes",
		"URGENTE: procuro apartamento",
	} {
		if e := Extract(msg, testVocab); !e.Urgency {
			t.Fatalf("Urgency not detected in %q", msg)
		}
	}
}

func TestExtractPhone(t *testing.T) {
	e := Extract("meu telefone é (84) 99876-5432", testVocab)
	if e.ContactPhone == "" {
		t.Fatal("ContactPhone not extracted")
	}
}
