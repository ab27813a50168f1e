package domain

import (
	"sort"
	"strings"

	listingdomain "broker_portal_backend/internal/listings/domain"
	ptext "broker_portal_backend/platform/text"
)

// maxDirectResults is the most listings shown in one reply. Anything above
// this offers price refinement instead of a wall of links.
const maxDirectResults = 4

// BudgetRelaxFactor widens the funnel's budget cap on the second search tier.
// The lead/listing matcher deliberately has no such tolerance.
const BudgetRelaxFactor = 1.2

// RelaxedMax returns the budget cap widened by the relax factor.
func RelaxedMax(maxCents *int64) *int64 {
	if maxCents == nil {
		return nil
	}
	relaxed := int64(float64(*maxCents) * BudgetRelaxFactor)
	return &relaxed
}

// StrictFilter re-validates operation and type with case- and
// diacritics-insensitive substring matches, discarding rows the broad query
// returned that do not truly satisfy the disclosed intent. The store cannot
// filter efficiently on joined lookup tables, so this runs on every tier.
func StrictFilter(listings []listingdomain.Listing, op listingdomain.Operation, pt listingdomain.PropertyType) []listingdomain.Listing {
	foldedOp := ptext.FoldLower(string(op))
	foldedType := ptext.FoldLower(string(pt))
	out := make([]listingdomain.Listing, 0, len(listings))
	for _, l := range listings {
		if foldedOp != "" {
			listingOp := ptext.FoldLower(string(l.Operation))
			if !substringEither(listingOp, foldedOp) {
				continue
			}
		}
		if foldedType != "" {
			listingType := ptext.FoldLower(string(l.PropertyType))
			if !substringEither(listingType, foldedType) {
				continue
			}
		}
		out = append(out, l)
	}
	return out
}

func substringEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// ResultsKind tells the caller how to present a finished search.
type ResultsKind string

const (
	// ResultsShow lists the found properties directly.
	ResultsShow ResultsKind = "show"
	// ResultsDeferNeighborhoods withholds listings and asks the user to pick
	// a neighborhood first.
	ResultsDeferNeighborhoods ResultsKind = "defer_neighborhoods"
	// ResultsRefinePrice offers price-band badges to narrow a large set.
	ResultsRefinePrice ResultsKind = "refine_price"
	// ResultsEmpty offers expand-search and custom-request actions.
	ResultsEmpty ResultsKind = "empty"
)

// PriceBand is one refinement badge over the found price distribution.
type PriceBand struct {
	MinCents int64
	MaxCents int64
	Count    int
}

// ResultsDecision is the outcome of the results phase for one turn.
type ResultsDecision struct {
	Kind          ResultsKind
	Listings      []listingdomain.Listing
	Neighborhoods []string
	PriceBands    []PriceBand
}

// DecideResults applies the disclosure rules to a completed search. A
// city-wide set spanning several neighborhoods never reveals listings, even
// when the user had asked for a specific neighborhood that came up empty;
// the discovered neighborhoods become the options instead.
func DecideResults(c Conversation, found []listingdomain.Listing, cityWide bool) ResultsDecision {
	if len(found) == 0 {
		return ResultsDecision{Kind: ResultsEmpty}
	}

	if cityWide {
		if hoods := distinctNeighborhoods(found); len(hoods) > 1 {
			return ResultsDecision{Kind: ResultsDeferNeighborhoods, Neighborhoods: hoods}
		}
	}

	if len(found) > maxDirectResults {
		return ResultsDecision{
			Kind:       ResultsRefinePrice,
			PriceBands: priceBands(found, c.Operation),
		}
	}
	return ResultsDecision{Kind: ResultsShow, Listings: found}
}

func distinctNeighborhoods(listings []listingdomain.Listing) []string {
	seen := make(map[string]bool)
	hoods := make([]string, 0, 4)
	for _, l := range listings {
		if l.Neighborhood == "" {
			continue
		}
		key := ptext.FoldLower(l.Neighborhood)
		if !seen[key] {
			seen[key] = true
			hoods = append(hoods, l.Neighborhood)
		}
	}
	return hoods
}

// priceBands splits the found prices into three roughly equal badges.
func priceBands(listings []listingdomain.Listing, op listingdomain.Operation) []PriceBand {
	prices := make([]int64, 0, len(listings))
	for _, l := range listings {
		if p := l.PriceCentsFor(op); p != nil && *p > 0 {
			prices = append(prices, *p)
		}
	}
	if len(prices) == 0 {
		return nil
	}
	sort.Slice(prices, func(i, j int) bool { return prices[i] < prices[j] })

	bandCount := 3
	if len(prices) < bandCount {
		bandCount = len(prices)
	}
	bands := make([]PriceBand, 0, bandCount)
	size := len(prices) / bandCount
	for i := 0; i < bandCount; i++ {
		lo := i * size
		hi := lo + size
		if i == bandCount-1 {
			hi = len(prices)
		}
		bands = append(bands, PriceBand{
			MinCents: prices[lo],
			MaxCents: prices[hi-1],
			Count:    hi - lo,
		})
	}
	return bands
}
