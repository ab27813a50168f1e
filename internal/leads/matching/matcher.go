// Package matching scores how well an active listing fits a lead's stated
// preferences. Scores move in 20-point steps, one per criterion, so every
// score lands on {0, 20, 40, 60, 80, 100}.
package matching

import (
	"sort"

	"broker_portal_backend/internal/listings/domain"
	ptext "broker_portal_backend/platform/text"
)

// MatchThreshold is the minimum score a listing needs to be surfaced.
const MatchThreshold = 60

const criterionWeight = 20

// Preferences is the subset of a lead relevant to matching.
type Preferences struct {
	Operation      domain.Operation
	PropertyType   domain.PropertyType
	City           string
	Neighborhoods  []string
	MinBudgetCents *int64
	MaxBudgetCents *int64
}

// Score rates a listing against the preferences. Each criterion is all or
// nothing: operation, property type, city, neighborhood (any of the lead's)
// and budget each add 20 points. The budget check is a strict inclusive range
// on the price that corresponds to the lead's operation, with no tolerance
// above the maximum.
func Score(prefs Preferences, listing domain.Listing) int {
	score := 0
	if prefs.Operation != "" && listing.OffersOperation(prefs.Operation) {
		score += criterionWeight
	}
	if prefs.PropertyType != "" && prefs.PropertyType == listing.PropertyType {
		score += criterionWeight
	}
	if prefs.City != "" && foldEqual(prefs.City, listing.City) {
		score += criterionWeight
	}
	if neighborhoodSatisfied(prefs.Neighborhoods, listing.Neighborhood) {
		score += criterionWeight
	}
	if budgetSatisfied(prefs, listing) {
		score += criterionWeight
	}
	return score
}

func neighborhoodSatisfied(wanted []string, actual string) bool {
	for _, n := range wanted {
		if n != "" && foldEqual(n, actual) {
			return true
		}
	}
	return false
}

func budgetSatisfied(prefs Preferences, listing domain.Listing) bool {
	if prefs.MinBudgetCents == nil && prefs.MaxBudgetCents == nil {
		return true
	}
	price := listing.PriceCentsFor(prefs.Operation)
	if price == nil {
		return false
	}
	if prefs.MinBudgetCents != nil && *price < *prefs.MinBudgetCents {
		return false
	}
	if prefs.MaxBudgetCents != nil && *price > *prefs.MaxBudgetCents {
		return false
	}
	return true
}

func foldEqual(a, b string) bool {
	return ptext.FoldLower(a) == ptext.FoldLower(b)
}

// Match pairs a listing with its score.
type Match struct {
	Listing domain.Listing
	Score   int
}

// Rank scores every listing and returns those at or above the threshold,
// highest score first. Ties keep the input order.
func Rank(prefs Preferences, listings []domain.Listing) []Match {
	matches := make([]Match, 0, len(listings))
	for _, l := range listings {
		if s := Score(prefs, l); s >= MatchThreshold {
			matches = append(matches, Match{Listing: l, Score: s})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}
