package domain

import (
	"fmt"
	"strings"

	ptext "broker_portal_backend/platform/text"
)

var operationSlugLabels = map[Operation]string{
	OperationSale:         "venda",
	OperationRental:       "locacao",
	OperationSeasonal:     "temporada",
	OperationSaleOrRental: "venda-e-locacao",
}

// Slug builds the SEO URL segment for a listing, for example
// "apartamento-3-quartos-centro-florianopolis-2-vagas-120-m2-venda-850000-cod1234".
// Zero or missing numeric fields are omitted, the codigo suffix is always
// present, and the result is deterministic for the same listing.
func Slug(l Listing) string {
	parts := make([]string, 0, 9)
	if l.PropertyType != "" {
		parts = append(parts, string(l.PropertyType))
	}
	if l.Bedrooms > 0 {
		parts = append(parts, fmt.Sprintf("%d-quartos", l.Bedrooms))
	}
	if l.Neighborhood != "" {
		parts = append(parts, l.Neighborhood)
	}
	if l.City != "" {
		parts = append(parts, l.City)
	}
	if l.ParkingSpots > 0 {
		parts = append(parts, fmt.Sprintf("%d-vagas", l.ParkingSpots))
	}
	if l.AreaM2 > 0 {
		parts = append(parts, fmt.Sprintf("%d-m2", int64(l.AreaM2)))
	}
	if l.Operation != "" {
		parts = append(parts, operationSlugLabels[l.Operation])
	}
	if price := l.PriceCentsFor(l.Operation); price != nil && *price > 0 {
		parts = append(parts, fmt.Sprintf("%d", *price/100))
	}
	parts = append(parts, fmt.Sprintf("cod%d", l.Codigo))
	return Slugify(strings.Join(parts, "-"))
}

// ParseSlugCodigo extracts the trailing codigo from a slug. Only the suffix
// matters: older slugs keep resolving after the listing's fields change.
func ParseSlugCodigo(slug string) (int64, bool) {
	idx := strings.LastIndex(slug, "-cod")
	tail := slug
	if idx >= 0 {
		tail = slug[idx+1:]
	}
	if !strings.HasPrefix(tail, "cod") {
		return 0, false
	}
	var codigo int64
	if _, err := fmt.Sscanf(tail, "cod%d", &codigo); err != nil || codigo <= 0 {
		return 0, false
	}
	return codigo, true
}

// Slugify lowercases the input, folds diacritics and collapses every run of
// non-alphanumeric characters into a single hyphen.
func Slugify(s string) string {
	folded := ptext.FoldLower(s)
	var b strings.Builder
	b.Grow(len(folded))
	lastHyphen := true // suppress leading hyphen
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
