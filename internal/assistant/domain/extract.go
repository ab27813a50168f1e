package domain

import (
	"regexp"
	"strconv"
	"strings"

	listingdomain "broker_portal_backend/internal/listings/domain"
	ptext "broker_portal_backend/platform/text"
)

// Extraction is everything one user message can disclose.
type Extraction struct {
	Operation     listingdomain.Operation
	PropertyType  listingdomain.PropertyType
	City          string
	Neighborhoods []string

	MinBudgetCents *int64
	MaxBudgetCents *int64
	Bedrooms       *int
	ContactPhone   string

	BrokerIntent  bool
	ClosingIntent bool
	ExpandSearch  bool
	Urgency       bool
}

// Vocabulary is the known geography, fed from live inventory, that free-text
// city/neighborhood mentions are matched against.
type Vocabulary struct {
	Cities        []string
	Neighborhoods []string
}

var operationKeywords = []struct {
	keyword string
	op      listingdomain.Operation
}{
	{"comprar", listingdomain.OperationSale},
	{"compra", listingdomain.OperationSale},
	{"venda", listingdomain.OperationSale},
	{"alugar", listingdomain.OperationRental},
	{"aluguel", listingdomain.OperationRental},
	{"locacao", listingdomain.OperationRental},
	{"temporada", listingdomain.OperationSeasonal},
	{"diaria", listingdomain.OperationSeasonal},
}

var typeKeywords = []struct {
	keyword string
	pt      listingdomain.PropertyType
}{
	{"apartamento", listingdomain.PropertyApartment},
	{"apto", listingdomain.PropertyApartment},
	{"cobertura", listingdomain.PropertyPenthouse},
	{"casa", listingdomain.PropertyHouse},
	{"sobrado", listingdomain.PropertyHouse},
	{"terreno", listingdomain.PropertyLand},
	{"lote", listingdomain.PropertyLand},
	{"comercial", listingdomain.PropertyCommercial},
	{"loja", listingdomain.PropertyCommercial},
	{"sala", listingdomain.PropertyCommercial},
	{"chacara", listingdomain.PropertyRural},
	{"sitio", listingdomain.PropertyRural},
	{"fazenda", listingdomain.PropertyRural},
	{"flat", listingdomain.PropertyFlat},
	{"kitnet", listingdomain.PropertyFlat},
	{"studio", listingdomain.PropertyFlat},
}

var brokerKeywords = []string{"corretor", "parceiro", "planos", "anunciar"}

var closingKeywords = []string{
	"obrigado", "obrigada", "valeu", "agradeco",
	"tchau", "ate mais", "ate logo", "era so isso",
}

var expandKeywords = []string{
	"ampliar", "expandir", "outros bairros", "outras regioes", "qualquer bairro",
}

// UrgencyKeywords is the fixed Portuguese urgency list for temperature scoring.
var UrgencyKeywords = []string{
	"urgente", "urgencia", "o quanto antes", "imediato", "imediata",
	"preciso logo", "para ontem", "essa semana", "este mes",
}

var (
	bedroomsRe = regexp.MustCompile(`(\d{1,2})\s*(?:quartos?|dormitorios?|dorms?)`)
	phoneRe    = regexp.MustCompile(`\(?\d{2}\)?\s?9?\d{4}[-\s]?\d{4}`)
	// "R$ 350.000", "350 mil", "1,5 milhao", "2 milhoes", bare "350000"
	amountRe = regexp.MustCompile(`(?:r\$\s*)?(\d{1,3}(?:\.\d{3})+|\d+(?:,\d+)?)\s*(milhoes|milhao|mil)?`)
	rangeRe  = regexp.MustCompile(`(?:entre|de)\s+(.+?)\s+(?:e|a|ate)\s+(.+)`)
	capRe    = regexp.MustCompile(`(?:ate|no maximo|max(?:imo)?)\s+(.+)`)
)

// Extract pulls every recognizable disclosure out of one user message.
// Matching is diacritics-insensitive and lowercase throughout.
func Extract(message string, vocab Vocabulary) Extraction {
	folded := ptext.FoldLower(message)
	var e Extraction

	for _, kw := range brokerKeywords {
		if strings.Contains(folded, kw) {
			e.BrokerIntent = true
			break
		}
	}
	for _, kw := range closingKeywords {
		if strings.Contains(folded, kw) {
			e.ClosingIntent = true
			break
		}
	}
	for _, kw := range expandKeywords {
		if strings.Contains(folded, kw) {
			e.ExpandSearch = true
			break
		}
	}
	for _, kw := range UrgencyKeywords {
		if strings.Contains(folded, kw) {
			e.Urgency = true
			break
		}
	}

	for _, ok := range operationKeywords {
		if strings.Contains(folded, ok.keyword) {
			e.Operation = ok.op
			break
		}
	}
	for _, tk := range typeKeywords {
		if strings.Contains(folded, tk.keyword) {
			e.PropertyType = tk.pt
			break
		}
	}

	for _, city := range vocab.Cities {
		if city != "" && strings.Contains(folded, ptext.FoldLower(city)) {
			e.City = city
			break
		}
	}
	for _, n := range vocab.Neighborhoods {
		if n != "" && strings.Contains(folded, ptext.FoldLower(n)) {
			e.Neighborhoods = append(e.Neighborhoods, n)
			if len(e.Neighborhoods) == MaxNeighborhoods {
				break
			}
		}
	}

	if m := bedroomsRe.FindStringSubmatch(folded); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil && v > 0 {
			e.Bedrooms = &v
		}
	}
	if m := phoneRe.FindString(message); m != "" {
		e.ContactPhone = m
	}

	e.MinBudgetCents, e.MaxBudgetCents = extractBudget(folded)
	return e
}

func extractBudget(folded string) (min, max *int64) {
	if m := rangeRe.FindStringSubmatch(folded); m != nil {
		lo := parseAmountCents(m[1])
		hi := parseAmountCents(m[2])
		if lo != nil && hi != nil && *lo < *hi {
			return lo, hi
		}
	}
	if m := capRe.FindStringSubmatch(folded); m != nil {
		if v := parseAmountCents(m[1]); v != nil {
			return nil, v
		}
	}
	if strings.Contains(folded, "r$") || strings.Contains(folded, "mil") {
		if v := parseAmountCents(folded); v != nil {
			return nil, v
		}
	}
	return nil, nil
}

// parseAmountCents reads the first money amount in the text and returns it in
// cents. "350 mil" and "1,5 milhao" multiply accordingly; amounts under one
// thousand reais without a multiplier are ignored as noise.
func parseAmountCents(text string) *int64 {
	m := amountRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	number := strings.ReplaceAll(m[1], ".", "")
	number = strings.ReplaceAll(number, ",", ".")
	value, err := strconv.ParseFloat(number, 64)
	if err != nil || value <= 0 {
		return nil
	}
	switch m[2] {
	case "mil":
		value *= 1_000
	case "milhao", "milhoes":
		value *= 1_000_000
	default:
		if value < 1_000 {
			return nil
		}
	}
	cents := int64(value*100 + 0.5)
	return &cents
}
