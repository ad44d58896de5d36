package domain

import "github.com/shopspring/decimal"

// TripSummary is the display-ready projection of a trip. Every endpoint that
// renders a trip (active summary, saved trip view) serializes this one type,
// so there is exactly one JSON contract for a summarized trip.
type TripSummary struct {
	TripID    string `json:"trip_id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	StartDate string `json:"start_date,omitempty"` // "2006-01-02", empty when unset
	EndDate   string `json:"end_date,omitempty"`

	// DurationDays is the inclusive span between start and end dates, nil
	// when either date is missing. Not clamped: a stored inverted range
	// yields a negative value rather than a silently corrected one.
	DurationDays *int `json:"duration_days"`

	// Destinations groups the trip's attractions and accommodations by the
	// destination they belong to. A destination appears here only when at
	// least one linked attraction or accommodation references it.
	Destinations []DestinationGroup `json:"destinations"`

	Cars               []Car              `json:"cars"`
	CarRentalCompanies []CarRentalCompany `json:"car_rental_companies"`
	TravelAgencies     []TravelAgency     `json:"travel_agencies"`
	TourPackages       []TourPackage      `json:"tour_packages"`

	// TotalCost is the exact decimal sum of accommodation nightly prices,
	// priced cars' daily prices, and priced tour package prices.
	TotalCost decimal.Decimal `json:"total_cost"`
}

// DestinationGroup collects the trip's attractions and accommodations that
// belong to one destination.
type DestinationGroup struct {
	DestinationID   int64           `json:"destination_id"`
	DestinationName string          `json:"destination_name"`
	Attractions     []Attraction    `json:"attractions"`
	Accommodations  []Accommodation `json:"accommodations"`
}
