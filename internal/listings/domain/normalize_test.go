package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestJoinedValueAcceptsBothShapes(t *testing.T) {
	var fromString JoinedValue
	if err := json.Unmarshal([]byte(`"venda"`), &fromString); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if fromString.Value != "venda" {
		t.Fatalf("Value = %q, want %q", fromString.Value, "venda")
	}

	var fromObject JoinedValue
	if err := json.Unmarshal([]byte(`{"tipo":"venda"}`), &fromObject); err != nil {
		t.Fatalf("unmarshal object: %v", err)
	}
	if fromObject.Value != "venda" {
		t.Fatalf("Value = %q, want %q", fromObject.Value, "venda")
	}
}

func TestSplitPhotos(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a.jpg,b.jpg,c.jpg", []string{"a.jpg", "b.jpg", "c.jpg"}},
		{" a.jpg , b.jpg ", []string{"a.jpg", "b.jpg"}},
		{"a.jpg,,", []string{"a.jpg"}},
		{"", nil},
		{"  ", nil},
	}
	for _, tc := range cases {
		if got := SplitPhotos(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("SplitPhotos(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseOperation(t *testing.T) {
	cases := []struct {
		in   string
		want Operation
		ok   bool
	}{
		{"Venda", OperationSale, true},
		{"LOCAÇÃO", OperationRental, true},
		{"aluguel", OperationRental, true},
		{"Venda e Locação", OperationSaleOrRental, true},
		{"temporada", OperationSeasonal, true},
		{"", "", false},
		{"permuta", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseOperation(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseOperation(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParsePropertyType(t *testing.T) {
	cases := []struct {
		in   string
		want PropertyType
		ok   bool
	}{
		{"Apartamento", PropertyApartment, true},
		{"Casa", PropertyHouse, true},
		{"Cobertura Duplex", PropertyPenthouse, true},
		{"Sala Comercial", PropertyCommercial, true},
		{"Chácara", PropertyRural, true},
		{"Kitnet", PropertyFlat, true},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParsePropertyType(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParsePropertyType(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFromRawConvertsPricesAndPhotos(t *testing.T) {
	venda := 350000.0
	raw := RawListing{
		Codigo:     42,
		Titulo:     " Apartamento no Centro ",
		Cidade:     "Curitiba",
		Bairro:     "Centro",
		Operacao:   JoinedValue{Value: "Venda"},
		TipoImovel: JoinedValue{Value: "Apartamento"},
		ValorVenda: &venda,
		Fotos:      "a.jpg, b.jpg",
		Quartos:    2,
	}
	l := FromRaw(raw)
	if l.Operation != OperationSale || l.PropertyType != PropertyApartment {
		t.Fatalf("enums = (%q, %q)", l.Operation, l.PropertyType)
	}
	if l.SalePriceCents == nil || *l.SalePriceCents != 35000000 {
		t.Fatalf("SalePriceCents = %v, want 35000000", l.SalePriceCents)
	}
	if !reflect.DeepEqual(l.Photos, []string{"a.jpg", "b.jpg"}) {
		t.Fatalf("Photos = %v", l.Photos)
	}
	if l.Title != "Apartamento no Centro" {
		t.Fatalf("Title = %q", l.Title)
	}
	if l.Status != StatusPending {
		t.Fatalf("Status = %q, want pending", l.Status)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	l := Normalize(FromRaw(RawListing{
		Codigo:   1,
		Cidade:   " Curitiba ",
		Bairro:   "Centro",
		Fotos:    "a.jpg,,b.jpg",
		Operacao: JoinedValue{Value: "venda"},
	}))
	again := Normalize(l)
	if !reflect.DeepEqual(l, again) {
		t.Fatalf("Normalize not idempotent: %+v vs %+v", l, again)
	}
}

func TestOffersOperationCombined(t *testing.T) {
	l := Listing{Operation: OperationSaleOrRental}
	if !l.OffersOperation(OperationSale) || !l.OffersOperation(OperationRental) {
		t.Fatal("venda_locacao should serve both sale and rental")
	}
	if l.OffersOperation(OperationSeasonal) {
		t.Fatal("venda_locacao should not serve seasonal")
	}
	sale := Listing{Operation: OperationSale}
	if sale.OffersOperation(OperationRental) {
		t.Fatal("sale listing should not serve rental")
	}
}
