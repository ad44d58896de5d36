package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/asoniya/travel-planner/backend/internal/domain"
	"github.com/asoniya/travel-planner/backend/internal/repo"
)

// dateFormat is how dates are rendered in summary views.
const dateFormat = "2006-01-02"

// SummaryService derives the display-ready projection of a trip: duration,
// items grouped by destination, and the exact total cost.
type SummaryService struct {
	trips repo.TripRepo
}

// NewSummaryService constructs a SummaryService backed by the provided TripRepo.
func NewSummaryService(trips repo.TripRepo) *SummaryService {
	return &SummaryService{trips: trips}
}

// BuildActive builds the summary for the user's active trip.
// Returns domain.ErrNotFound when the user has no active trip.
func (s *SummaryService) BuildActive(ctx context.Context, userID uuid.UUID) (domain.TripSummary, error) {
	trip, err := s.trips.GetActive(ctx, userID)
	if err != nil {
		return domain.TripSummary{}, fmt.Errorf("service.SummaryService.BuildActive: %w", err)
	}
	return s.load(ctx, trip)
}

// BuildByID builds the summary for any of the user's trips — the saved-trip
// view. Returns domain.ErrNotFound when the trip does not exist or belongs
// to another user.
func (s *SummaryService) BuildByID(ctx context.Context, userID, tripID uuid.UUID) (domain.TripSummary, error) {
	trip, err := s.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return domain.TripSummary{}, fmt.Errorf("service.SummaryService.BuildByID: %w", err)
	}
	return s.load(ctx, trip)
}

func (s *SummaryService) load(ctx context.Context, trip domain.Trip) (domain.TripSummary, error) {
	items, err := s.trips.ListItems(ctx, trip.ID)
	if err != nil {
		return domain.TripSummary{}, fmt.Errorf("service.SummaryService: list items: %w", err)
	}
	return BuildSummary(trip, items), nil
}

// BuildSummary is the pure projection from a trip and its loaded items to the
// summary view. Exported separately from the service so the derivation rules
// can be tested without any repo.
func BuildSummary(trip domain.Trip, items domain.TripItems) domain.TripSummary {
	summary := domain.TripSummary{
		TripID:             trip.ID.String(),
		Name:               trip.Name,
		Status:             trip.Status.Label(),
		DurationDays:       durationDays(trip),
		Destinations:       groupByDestination(items),
		Cars:               items.Cars,
		CarRentalCompanies: items.CarRentalCompanies,
		TravelAgencies:     items.TravelAgencies,
		TourPackages:       items.TourPackages,
		TotalCost:          totalCost(items),
	}
	if trip.StartDate != nil {
		summary.StartDate = trip.StartDate.Format(dateFormat)
	}
	if trip.EndDate != nil {
		summary.EndDate = trip.EndDate.Format(dateFormat)
	}
	return summary
}

// durationDays returns the inclusive day span of the trip, or nil when either
// date is missing. The value is not clamped: an inverted stored range yields
// a negative duration rather than a silently corrected one.
func durationDays(trip domain.Trip) *int {
	if trip.StartDate == nil || trip.EndDate == nil {
		return nil
	}
	days := int(trip.EndDate.Sub(*trip.StartDate).Hours()/24) + 1
	return &days
}

// groupByDestination collects the destinations referenced by the trip's
// attractions and accommodations and buckets those items under them, in
// first-reference order. Destinations linked directly to the trip but with no
// attraction or accommodation do not form a group; they remain visible in the
// trip's flat destination list.
func groupByDestination(items domain.TripItems) []domain.DestinationGroup {
	groups := []domain.DestinationGroup{}
	index := map[int64]int{}

	at := func(id int64, name string) int {
		if i, ok := index[id]; ok {
			return i
		}
		index[id] = len(groups)
		groups = append(groups, domain.DestinationGroup{
			DestinationID:   id,
			DestinationName: name,
			Attractions:     []domain.Attraction{},
			Accommodations:  []domain.Accommodation{},
		})
		return index[id]
	}

	for _, a := range items.Attractions {
		i := at(a.DestinationID, a.DestinationName)
		groups[i].Attractions = append(groups[i].Attractions, a)
	}
	for _, a := range items.Accommodations {
		i := at(a.DestinationID, a.DestinationName)
		groups[i].Accommodations = append(groups[i].Accommodations, a)
	}
	return groups
}

// totalCost sums accommodation nightly prices, priced cars' daily prices, and
// priced tour package prices. Rental companies and agencies carry no price by
// design — only their cars and packages do. All arithmetic is decimal; no
// value on this path ever passes through a float.
func totalCost(items domain.TripItems) decimal.Decimal {
	total := decimal.Zero
	for _, a := range items.Accommodations {
		total = total.Add(a.PricePerNight)
	}
	for _, c := range items.Cars {
		if c.PricePerDay != nil {
			total = total.Add(*c.PricePerDay)
		}
	}
	for _, tp := range items.TourPackages {
		if tp.Price != nil {
			total = total.Add(*tp.Price)
		}
	}
	return total
}
