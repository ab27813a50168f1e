// Package aggregate computes market statistics over listing rows: R$/m² for
// sale and rental plus an annualized rental yield, grouped by geography or
// property type. Pure functions, null-safe throughout: a group with no valid
// price/area pairs reports nil metrics, never NaN or Inf.
package aggregate

import (
	"math"
	"sort"

	ptext "broker_portal_backend/platform/text"
)

// Dimension selects what the rows are grouped by.
type Dimension string

const (
	ByState        Dimension = "state"
	ByCity         Dimension = "city"
	ByNeighborhood Dimension = "neighborhood"
	ByPropertyType Dimension = "type"
)

// Row is one listing's market-relevant slice.
type Row struct {
	State        string
	City         string
	Neighborhood string
	PropertyType string

	SalePriceCents   *int64
	MonthlyRentCents *int64
	AreaM2           float64
}

// Stats holds mean/min/max of a per-m² metric in reais. Nil when the group
// had no valid samples.
type Stats struct {
	Mean *float64 `json:"mean"`
	Min  *float64 `json:"min"`
	Max  *float64 `json:"max"`
}

// Group is the aggregate for one key.
type Group struct {
	Key   string `json:"key"`
	Count int    `json:"count"`

	SalePerM2   Stats    `json:"salePerM2"`
	RentPerM2   Stats    `json:"rentPerM2"`
	AnnualYield *float64 `json:"annualYieldPct"`
}

// Aggregate groups rows by the dimension and computes the metrics. Groups
// come back ordered by listing count descending, the most data-dense areas
// first; equal counts fall back to key order.
func Aggregate(rows []Row, dim Dimension) []Group {
	byKey := make(map[string][]Row)
	labels := make(map[string]string)
	for _, r := range rows {
		label := keyOf(r, dim)
		if label == "" {
			continue
		}
		folded := ptext.FoldLower(label)
		if _, ok := labels[folded]; !ok {
			labels[folded] = label
		}
		byKey[folded] = append(byKey[folded], r)
	}

	groups := make([]Group, 0, len(byKey))
	for folded, members := range byKey {
		groups = append(groups, Group{
			Key:         labels[folded],
			Count:       len(members),
			SalePerM2:   perAreaStats(members, salePrice),
			RentPerM2:   perAreaStats(members, rentPrice),
			AnnualYield: annualYield(members),
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

func keyOf(r Row, dim Dimension) string {
	switch dim {
	case ByState:
		return r.State
	case ByCity:
		return r.City
	case ByNeighborhood:
		return r.Neighborhood
	case ByPropertyType:
		return r.PropertyType
	}
	return ""
}

func salePrice(r Row) *int64 { return r.SalePriceCents }
func rentPrice(r Row) *int64 { return r.MonthlyRentCents }

// perAreaStats computes mean/min/max of price-per-m² in reais over the rows
// where the price is set and the area is positive. Each sample is rounded to
// whole reais before aggregation; the mean keeps two decimals.
func perAreaStats(rows []Row, price func(Row) *int64) Stats {
	samples := make([]float64, 0, len(rows))
	for _, r := range rows {
		p := price(r)
		if p == nil || *p <= 0 || r.AreaM2 <= 0 {
			continue
		}
		samples = append(samples, math.Round(float64(*p)/100/r.AreaM2))
	}
	if len(samples) == 0 {
		return Stats{}
	}

	minV, maxV, sum := samples[0], samples[0], 0.0
	for _, s := range samples {
		if s < minV {
			minV = s
		}
		if s > maxV {
			maxV = s
		}
		sum += s
	}
	mean := round2(sum / float64(len(samples)))
	return Stats{Mean: &mean, Min: &minV, Max: &maxV}
}

// annualYield averages (monthly_rent × 12) / sale_price × 100 over rows
// where both prices are known, two decimals.
func annualYield(rows []Row) *float64 {
	sum, n := 0.0, 0
	for _, r := range rows {
		if r.SalePriceCents == nil || *r.SalePriceCents <= 0 ||
			r.MonthlyRentCents == nil || *r.MonthlyRentCents <= 0 {
			continue
		}
		sum += float64(*r.MonthlyRentCents) * 12 / float64(*r.SalePriceCents) * 100
		n++
	}
	if n == 0 {
		return nil
	}
	yield := round2(sum / float64(n))
	return &yield
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
