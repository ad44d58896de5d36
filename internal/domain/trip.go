package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTripName is the name a freshly created active trip starts with.
// It is overwritten with a derived name when the trip is saved.
const DefaultTripName = "New Trip Plan"

// TripStatus is the lifecycle state of a trip.
// The only transition the core performs is active → saved; booked is set by
// back-office tooling and is terminal from this code's perspective.
type TripStatus string

const (
	StatusActive TripStatus = "active"
	StatusSaved  TripStatus = "saved"
	StatusBooked TripStatus = "booked"
)

// Label returns the display-friendly form of the status used in trip listings.
func (s TripStatus) Label() string {
	switch s {
	case StatusActive:
		return "Active Plan"
	case StatusSaved:
		return "Saved Trip"
	case StatusBooked:
		return "Booked Trip"
	}
	return string(s)
}

// Trip is one user's plan: a status, an optional date range, and (loaded
// separately as TripItems) a set of references into the catalog.
// At most one trip per user has StatusActive at any time; the trips table
// enforces this with a partial unique index.
type Trip struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Name      string     `json:"name"`
	Status    TripStatus `json:"status"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TripItems holds the seven item relations of a trip. Each slice is a set:
// the join tables have composite primary keys, so an item appears at most
// once per relation. Slices are ordered by the time the item was linked.
type TripItems struct {
	Destinations       []Destination      `json:"destinations"`
	Attractions        []Attraction       `json:"attractions"`
	Accommodations     []Accommodation    `json:"accommodations"`
	CarRentalCompanies []CarRentalCompany `json:"car_rental_companies"`
	Cars               []Car              `json:"cars"`
	TravelAgencies     []TravelAgency     `json:"travel_agencies"`
	TourPackages       []TourPackage      `json:"tour_packages"`
}

// Count returns the number of linked items across all relations.
// Tour packages are included only when countTourPackages is set — whether
// they belong in listing counts has flip-flopped historically, so the choice
// lives in configuration rather than here.
func (ti TripItems) Count(countTourPackages bool) int {
	n := len(ti.Destinations) +
		len(ti.Attractions) +
		len(ti.Accommodations) +
		len(ti.CarRentalCompanies) +
		len(ti.Cars) +
		len(ti.TravelAgencies)
	if countTourPackages {
		n += len(ti.TourPackages)
	}
	return n
}

// TripListEntry is one row in a user's trip listing. ItemCount and
// TourPackageCount are computed by the repo; the service folds the latter
// into the former depending on configuration.
type TripListEntry struct {
	Trip
	ItemCount        int `json:"item_count"`
	TourPackageCount int `json:"-"`
}
