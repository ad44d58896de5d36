// Package domain contains the core data types for the travel planner backend.
// This package has no dependencies on other internal packages and is imported
// by every other internal package (repo, service, handler).
package domain

import "github.com/shopspring/decimal"

// Destination is a place users can travel to. Attractions and accommodations
// belong to a destination.
type Destination struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Attraction is a sight or activity located at a destination.
// DestinationName is denormalized by the repo (joined from destinations) so
// the summary builder can group items without extra lookups.
type Attraction struct {
	ID              int64  `json:"id"`
	DestinationID   int64  `json:"destination_id"`
	DestinationName string `json:"destination_name,omitempty"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	ImageURL        string `json:"image_url,omitempty"`
}

// Accommodation is a priced place to stay at a destination.
// Prices are decimal — money is never represented as a float anywhere in
// this codebase, so repeated sums have zero rounding drift.
type Accommodation struct {
	ID              int64           `json:"id"`
	DestinationID   int64           `json:"destination_id"`
	DestinationName string          `json:"destination_name,omitempty"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Type            string          `json:"accommodation_type"`
	PricePerNight   decimal.Decimal `json:"price_per_night"`
	Rating          decimal.Decimal `json:"rating"`
	ImageURL        string          `json:"image_url,omitempty"`
}

// CarRentalCompany is a rental business. The company itself carries no price;
// only its individual cars do.
type CarRentalCompany struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Car is a rentable vehicle belonging to a rental company.
// PricePerDay is nil when the company has not listed a rate; unpriced cars
// are excluded from trip cost totals.
type Car struct {
	ID          int64            `json:"id"`
	CompanyID   int64            `json:"company_id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	PricePerDay *decimal.Decimal `json:"price_per_day,omitempty"`
	ImageURL    string           `json:"image_url,omitempty"`
}

// TravelAgency is a tour operator. Like rental companies, agencies are not
// priced; their tour packages are.
type TravelAgency struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
}

// TourPackage is a priced tour offered by a travel agency.
type TourPackage struct {
	ID           int64            `json:"id"`
	AgencyID     int64            `json:"agency_id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	DurationDays int              `json:"duration_days"`
	ImageURL     string           `json:"image_url,omitempty"`
}

// AccommodationFilter narrows ListAccommodations results.
// Zero/nil fields are ignored.
type AccommodationFilter struct {
	DestinationID int64
	Type          string
	MaxPrice      *decimal.Decimal
	MinRating     *decimal.Decimal
}
