package domain

import (
	"encoding/json"
	"strings"

	ptext "broker_portal_backend/platform/text"
)

// JoinedValue decodes a field that arrives either as a plain string or as the
// expanded lookup object {"tipo": "..."} produced by relational joins in
// exported data. Either shape collapses to the string value.
type JoinedValue struct {
	Value string
}

func (j *JoinedValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		j.Value = s
		return nil
	}
	var obj struct {
		Tipo string `json:"tipo"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	j.Value = obj.Tipo
	return nil
}

func (j JoinedValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.Value)
}

// RawListing is the shape listings arrive in from bulk imports: prices in
// reais, photos as a comma-joined string, operation and type either plain or
// join-expanded.
type RawListing struct {
	Codigo       int64       `json:"codigo"`
	Titulo       string      `json:"titulo"`
	Descricao    string      `json:"descricao"`
	Estado       string      `json:"estado"`
	Cidade       string      `json:"cidade"`
	Bairro       string      `json:"bairro"`
	Operacao     JoinedValue `json:"operacao"`
	TipoImovel   JoinedValue `json:"tipo_imovel"`
	ValorVenda   *float64    `json:"valor_venda"`
	ValorLocacao *float64    `json:"valor_locacao"`
	ValorDiaria  *float64    `json:"valor_diaria"`
	ValorMensal  *float64    `json:"valor_mensal"`
	AreaM2       float64     `json:"area_privativa"`
	Quartos      int         `json:"quartos"`
	Suites       int         `json:"suites"`
	Banheiros    int         `json:"banheiros"`
	Vagas        int         `json:"vagas"`
	Fotos        string      `json:"fotos"`
	Status       string      `json:"status"`
}

// SplitPhotos turns a comma-joined photo string into a clean URL slice.
// Empty segments and surrounding whitespace are dropped.
func SplitPhotos(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	photos := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			photos = append(photos, p)
		}
	}
	if len(photos) == 0 {
		return nil
	}
	return photos
}

// ParseOperation maps free-form operation labels to the canonical enum.
func ParseOperation(raw string) (Operation, bool) {
	switch folded := ptext.FoldLower(strings.TrimSpace(raw)); {
	case folded == "":
		return "", false
	case strings.Contains(folded, "venda") && strings.Contains(folded, "loca"):
		return OperationSaleOrRental, true
	case strings.Contains(folded, "venda") || folded == "sale":
		return OperationSale, true
	case strings.Contains(folded, "loca") || strings.Contains(folded, "aluguel") || folded == "rent":
		return OperationRental, true
	case strings.Contains(folded, "temporada"):
		return OperationSeasonal, true
	}
	return "", false
}

// ParsePropertyType maps free-form type labels to the canonical enum.
func ParsePropertyType(raw string) (PropertyType, bool) {
	folded := ptext.FoldLower(strings.TrimSpace(raw))
	switch {
	case folded == "":
		return "", false
	case strings.Contains(folded, "apartamento") || strings.Contains(folded, "apto"):
		return PropertyApartment, true
	case strings.Contains(folded, "cobertura"):
		return PropertyPenthouse, true
	case strings.Contains(folded, "casa") || strings.Contains(folded, "sobrado"):
		return PropertyHouse, true
	case strings.Contains(folded, "terreno") || strings.Contains(folded, "lote"):
		return PropertyLand, true
	case strings.Contains(folded, "comercial") || strings.Contains(folded, "sala") || strings.Contains(folded, "loja"):
		return PropertyCommercial, true
	case strings.Contains(folded, "rural") || strings.Contains(folded, "chacara") || strings.Contains(folded, "fazenda") || strings.Contains(folded, "sitio"):
		return PropertyRural, true
	case strings.Contains(folded, "flat") || strings.Contains(folded, "studio") || strings.Contains(folded, "kitnet"):
		return PropertyFlat, true
	}
	return "", false
}

func reaisToCents(v *float64) *int64 {
	if v == nil || *v <= 0 {
		return nil
	}
	cents := int64(*v*100 + 0.5)
	return &cents
}

// FromRaw converts a raw import row into the normalized model. Unrecognized
// operation or type labels are kept empty for the caller to reject.
func FromRaw(raw RawListing) Listing {
	l := Listing{
		Codigo:            raw.Codigo,
		Title:             strings.TrimSpace(raw.Titulo),
		Description:       strings.TrimSpace(raw.Descricao),
		State:             strings.TrimSpace(raw.Estado),
		City:              strings.TrimSpace(raw.Cidade),
		Neighborhood:      strings.TrimSpace(raw.Bairro),
		SalePriceCents:    reaisToCents(raw.ValorVenda),
		RentalPriceCents:  reaisToCents(raw.ValorLocacao),
		DailyPriceCents:   reaisToCents(raw.ValorDiaria),
		MonthlyPriceCents: reaisToCents(raw.ValorMensal),
		AreaM2:            raw.AreaM2,
		Bedrooms:          raw.Quartos,
		Suites:            raw.Suites,
		Bathrooms:         raw.Banheiros,
		ParkingSpots:      raw.Vagas,
		Photos:            SplitPhotos(raw.Fotos),
		Status:            StatusPending,
	}
	if op, ok := ParseOperation(raw.Operacao.Value); ok {
		l.Operation = op
	}
	if pt, ok := ParsePropertyType(raw.TipoImovel.Value); ok {
		l.PropertyType = pt
	}
	if raw.Status == string(StatusActive) {
		l.Status = StatusActive
	}
	return l
}

// Normalize cleans an in-memory listing: trims location fields and drops
// empty photo entries. Normalizing an already-normalized listing is a no-op.
func Normalize(l Listing) Listing {
	l.Title = strings.TrimSpace(l.Title)
	l.State = strings.TrimSpace(l.State)
	l.City = strings.TrimSpace(l.City)
	l.Neighborhood = strings.TrimSpace(l.Neighborhood)
	if len(l.Photos) > 0 {
		photos := make([]string, 0, len(l.Photos))
		for _, p := range l.Photos {
			p = strings.TrimSpace(p)
			if p != "" {
				photos = append(photos, p)
			}
		}
		if len(photos) == 0 {
			photos = nil
		}
		l.Photos = photos
	}
	return l
}
