package domain

import "fmt"

// ItemKind identifies which catalog relation a selectable item belongs to.
// It is a closed set: adding a new catalog kind means adding a constant here,
// a field on TripItems, and a row in the repo's relation table — the compiler
// and the repo's kind lookup keep the three in sync.
type ItemKind string

const (
	KindDestination   ItemKind = "destination"
	KindAttraction    ItemKind = "attraction"
	KindAccommodation ItemKind = "accommodation"
	KindCarRental     ItemKind = "car_rental"
	KindCar           ItemKind = "car"
	KindTravelAgency  ItemKind = "travel_agency"
	KindTourPackage   ItemKind = "tour_package"
)

// ItemKinds lists every valid kind, in the order relations appear on TripItems.
func ItemKinds() []ItemKind {
	return []ItemKind{
		KindDestination,
		KindAttraction,
		KindAccommodation,
		KindCarRental,
		KindCar,
		KindTravelAgency,
		KindTourPackage,
	}
}

// ParseItemKind converts a wire string into an ItemKind.
// Returns ErrValidation (wrapped) for anything outside the closed set, so a
// typo'd item_type from a client surfaces as HTTP 400, not a silent no-op.
func ParseItemKind(s string) (ItemKind, error) {
	switch k := ItemKind(s); k {
	case KindDestination, KindAttraction, KindAccommodation,
		KindCarRental, KindCar, KindTravelAgency, KindTourPackage:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown item type %q", ErrValidation, s)
}
