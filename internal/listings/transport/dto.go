// Package transport defines the HTTP request/response shapes for listings.
package transport

import (
	"time"

	"broker_portal_backend/internal/listings/domain"

	"github.com/google/uuid"
)

type CreateListingRequest struct {
	Title        string `json:"title" validate:"required,min=3,max=200"`
	Description  string `json:"description" validate:"max=5000"`
	State        string `json:"state" validate:"required,len=2"`
	City         string `json:"city" validate:"required,min=2,max=100"`
	Neighborhood string `json:"neighborhood" validate:"max=100"`
	Operation    string `json:"operation" validate:"required,oneof=venda locacao temporada venda_locacao"`
	PropertyType string `json:"propertyType" validate:"required,oneof=apartamento casa terreno comercial rural cobertura flat"`

	SalePriceCents    *int64 `json:"salePriceCents" validate:"omitempty,gt=0"`
	RentalPriceCents  *int64 `json:"rentalPriceCents" validate:"omitempty,gt=0"`
	DailyPriceCents   *int64 `json:"dailyPriceCents" validate:"omitempty,gt=0"`
	MonthlyPriceCents *int64 `json:"monthlyPriceCents" validate:"omitempty,gt=0"`

	AreaM2       float64 `json:"areaM2" validate:"omitempty,gt=0"`
	Bedrooms     int     `json:"bedrooms" validate:"min=0,max=50"`
	Suites       int     `json:"suites" validate:"min=0,max=50"`
	Bathrooms    int     `json:"bathrooms" validate:"min=0,max=50"`
	ParkingSpots int     `json:"parkingSpots" validate:"min=0,max=50"`

	Photos   []string `json:"photos" validate:"max=50,dive,url"`
	Features []string `json:"features" validate:"max=50,dive,min=1,max=100"`
	Publish  bool     `json:"publish"`
}

type UpdateListingRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=3,max=200"`
	Description  *string `json:"description" validate:"omitempty,max=5000"`
	State        *string `json:"state" validate:"omitempty,len=2"`
	City         *string `json:"city" validate:"omitempty,min=2,max=100"`
	Neighborhood *string `json:"neighborhood" validate:"omitempty,max=100"`
	Operation    *string `json:"operation" validate:"omitempty,oneof=venda locacao temporada venda_locacao"`
	PropertyType *string `json:"propertyType" validate:"omitempty,oneof=apartamento casa terreno comercial rural cobertura flat"`

	SalePriceCents    *int64 `json:"salePriceCents" validate:"omitempty,gt=0"`
	RentalPriceCents  *int64 `json:"rentalPriceCents" validate:"omitempty,gt=0"`
	DailyPriceCents   *int64 `json:"dailyPriceCents" validate:"omitempty,gt=0"`
	MonthlyPriceCents *int64 `json:"monthlyPriceCents" validate:"omitempty,gt=0"`

	AreaM2       *float64 `json:"areaM2" validate:"omitempty,gt=0"`
	Bedrooms     *int     `json:"bedrooms" validate:"omitempty,min=0,max=50"`
	Suites       *int     `json:"suites" validate:"omitempty,min=0,max=50"`
	Bathrooms    *int     `json:"bathrooms" validate:"omitempty,min=0,max=50"`
	ParkingSpots *int     `json:"parkingSpots" validate:"omitempty,min=0,max=50"`

	Photos   []string `json:"photos" validate:"omitempty,max=50,dive,url"`
	Features []string `json:"features" validate:"omitempty,max=50,dive,min=1,max=100"`
	Status   *string  `json:"status" validate:"omitempty,oneof=active pending inactive"`
}

type SearchListingsRequest struct {
	Operation     string   `form:"operation" validate:"omitempty,oneof=venda locacao temporada venda_locacao"`
	PropertyType  string   `form:"propertyType" validate:"omitempty,oneof=apartamento casa terreno comercial rural cobertura flat"`
	City          string   `form:"city" validate:"omitempty,max=100"`
	Neighborhoods []string `form:"neighborhood" validate:"omitempty,max=10,dive,max=100"`
	MinPriceCents *int64   `form:"minPriceCents" validate:"omitempty,gt=0"`
	MaxPriceCents *int64   `form:"maxPriceCents" validate:"omitempty,gt=0"`
	MinBedrooms   int      `form:"minBedrooms" validate:"omitempty,min=0,max=50"`
	Limit         int      `form:"limit" validate:"omitempty,min=1,max=100"`
}

type ImportListingsRequest struct {
	Listings []domain.RawListing `json:"listings" validate:"required,min=1,max=500"`
}

type ImportListingsResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

type ListingResponse struct {
	ID           uuid.UUID `json:"id"`
	Codigo       int64     `json:"codigo"`
	BrokerID     uuid.UUID `json:"brokerId"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	State        string    `json:"state"`
	City         string    `json:"city"`
	Neighborhood string    `json:"neighborhood,omitempty"`
	Operation    string    `json:"operation"`
	PropertyType string    `json:"propertyType"`

	SalePriceCents    *int64 `json:"salePriceCents,omitempty"`
	RentalPriceCents  *int64 `json:"rentalPriceCents,omitempty"`
	DailyPriceCents   *int64 `json:"dailyPriceCents,omitempty"`
	MonthlyPriceCents *int64 `json:"monthlyPriceCents,omitempty"`

	AreaM2       float64 `json:"areaM2,omitempty"`
	Bedrooms     int     `json:"bedrooms,omitempty"`
	Suites       int     `json:"suites,omitempty"`
	Bathrooms    int     `json:"bathrooms,omitempty"`
	ParkingSpots int     `json:"parkingSpots,omitempty"`

	Photos   []string  `json:"photos,omitempty"`
	Features []string  `json:"features,omitempty"`
	Status   string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToListingResponse(l domain.Listing) ListingResponse {
	return ListingResponse{
		ID:           l.ID,
		Codigo:       l.Codigo,
		BrokerID:     l.BrokerID,
		Slug:         domain.Slug(l),
		Title:        l.Title,
		Description:  l.Description,
		State:        l.State,
		City:         l.City,
		Neighborhood: l.Neighborhood,
		Operation:    string(l.Operation),
		PropertyType: string(l.PropertyType),

		SalePriceCents:    l.SalePriceCents,
		RentalPriceCents:  l.RentalPriceCents,
		DailyPriceCents:   l.DailyPriceCents,
		MonthlyPriceCents: l.MonthlyPriceCents,

		AreaM2:       l.AreaM2,
		Bedrooms:     l.Bedrooms,
		Suites:       l.Suites,
		Bathrooms:    l.Bathrooms,
		ParkingSpots: l.ParkingSpots,

		Photos:    l.Photos,
		Features:  l.Features,
		Status:    string(l.Status),
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func ToListingResponses(items []domain.Listing) []ListingResponse {
	out := make([]ListingResponse, len(items))
	for i, l := range items {
		out[i] = ToListingResponse(l)
	}
	return out
}
