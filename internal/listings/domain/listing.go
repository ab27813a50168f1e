// Package domain holds the listing model and the pure normalization and slug
// logic. Nothing in this package touches the database or the network.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Operation is the commercial operation offered for a listing.
type Operation string

const (
	OperationSale         Operation = "venda"
	OperationRental       Operation = "locacao"
	OperationSeasonal     Operation = "temporada"
	OperationSaleOrRental Operation = "venda_locacao"
)

// PropertyType is the kind of property being offered.
type PropertyType string

const (
	PropertyApartment  PropertyType = "apartamento"
	PropertyHouse      PropertyType = "casa"
	PropertyLand       PropertyType = "terreno"
	PropertyCommercial PropertyType = "comercial"
	PropertyRural      PropertyType = "rural"
	PropertyPenthouse  PropertyType = "cobertura"
	PropertyFlat       PropertyType = "flat"
)

// Status is the moderation/visibility status of a listing.
type Status string

const (
	StatusActive   Status = "active"
	StatusPending  Status = "pending"
	StatusRejected Status = "rejected"
	StatusInactive Status = "inactive"
)

// Listing is a broker's published property in normalized form: photos are an
// ordered URL slice and operation/type are typed enums. The raw store shapes
// (comma-joined photos, joined lookup objects) never leave the data boundary.
type Listing struct {
	ID           uuid.UUID
	Codigo       int64 // sequential internal code, the "cod" slug suffix
	BrokerID     uuid.UUID
	Title        string
	Description  string
	State        string
	City         string
	Neighborhood string
	Operation    Operation
	PropertyType PropertyType

	SalePriceCents    *int64
	RentalPriceCents  *int64
	DailyPriceCents   *int64
	MonthlyPriceCents *int64

	AreaM2       float64
	Bedrooms     int
	Suites       int
	Bathrooms    int
	ParkingSpots int

	Photos   []string
	Features []string

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OffersOperation reports whether the listing serves the desired operation,
// treating venda_locacao as both sale and rental.
func (l Listing) OffersOperation(desired Operation) bool {
	if l.Operation == desired {
		return true
	}
	if l.Operation == OperationSaleOrRental {
		return desired == OperationSale || desired == OperationRental
	}
	if desired == OperationSaleOrRental {
		return l.Operation == OperationSale || l.Operation == OperationRental
	}
	return false
}

// PriceCentsFor returns the price applicable to the desired operation, or nil
// when the listing has no meaningful price for it.
func (l Listing) PriceCentsFor(desired Operation) *int64 {
	switch desired {
	case OperationSale:
		return l.SalePriceCents
	case OperationRental:
		if l.RentalPriceCents != nil {
			return l.RentalPriceCents
		}
		return l.MonthlyPriceCents
	case OperationSeasonal:
		return l.DailyPriceCents
	case OperationSaleOrRental:
		if l.SalePriceCents != nil {
			return l.SalePriceCents
		}
		return l.RentalPriceCents
	}
	return nil
}

// HasMeaningfulPrice reports whether at least one price field is set and
// positive, required for a listing to go active.
func (l Listing) HasMeaningfulPrice() bool {
	for _, p := range []*int64{l.SalePriceCents, l.RentalPriceCents, l.DailyPriceCents, l.MonthlyPriceCents} {
		if p != nil && *p > 0 {
			return true
		}
	}
	return false
}
