// Package service contains the business logic for the travel planner API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/asoniya/travel-planner/backend/internal/domain"
	"github.com/asoniya/travel-planner/backend/internal/repo"
)

// FallbackTripName is used when a trip is saved without any linked destination.
const FallbackTripName = "My Trip Plan"

// savedNameDateFormat is the start-date suffix format on saved trip names,
// e.g. "Trip to Lalibela (Mar 15, 2026)".
const savedNameDateFormat = "Jan 2, 2006"

// TripService implements the trip lifecycle: find-or-create of the single
// active trip, linking catalog items to it, date updates, and the
// active → saved transition.
type TripService struct {
	trips             repo.TripRepo
	catalog           repo.CatalogRepo
	countTourPackages bool
}

// NewTripService constructs a TripService. countTourPackages controls whether
// tour packages are included in listing item counts.
func NewTripService(trips repo.TripRepo, catalog repo.CatalogRepo, countTourPackages bool) *TripService {
	return &TripService{trips: trips, catalog: catalog, countTourPackages: countTourPackages}
}

// GetOrCreateActive returns the user's active trip, creating one if needed.
func (s *TripService) GetOrCreateActive(ctx context.Context, userID uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetOrCreateActive(ctx, userID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetOrCreateActive: %w", err)
	}
	return trip, nil
}

// AddItem links one catalog item to the user's active trip and returns the
// parsed kind. The item is validated against the catalog *before* the active
// trip is found-or-created, so a bad request never mutates trip state.
// Linking an already-linked item is a no-op, not an error.
func (s *TripService) AddItem(ctx context.Context, userID uuid.UUID, itemType string, itemID int64) (domain.ItemKind, error) {
	kind, err := domain.ParseItemKind(itemType)
	if err != nil {
		return "", fmt.Errorf("service.TripService.AddItem: %w", err)
	}
	if itemID <= 0 {
		return "", fmt.Errorf("service.TripService.AddItem: %w: item_id is required", domain.ErrValidation)
	}

	exists, err := s.catalog.ItemExists(ctx, kind, itemID)
	if err != nil {
		return "", fmt.Errorf("service.TripService.AddItem: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("service.TripService.AddItem: %w: no %s with id %d", domain.ErrNotFound, kind, itemID)
	}

	trip, err := s.trips.GetOrCreateActive(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("service.TripService.AddItem: %w", err)
	}

	if err := s.trips.AddItem(ctx, trip.ID, kind, itemID); err != nil {
		return "", fmt.Errorf("service.TripService.AddItem: %w", err)
	}
	return kind, nil
}

// UpdateDates sets the date range on the user's active trip, creating the
// trip if needed. An end date before the start date is rejected outright —
// a negative-length trip is never storable through this path.
func (s *TripService) UpdateDates(ctx context.Context, userID uuid.UUID, start, end *time.Time) (domain.Trip, error) {
	if start != nil && end != nil && end.Before(*start) {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateDates: %w: end_date must not be before start_date", domain.ErrValidation)
	}

	trip, err := s.trips.GetOrCreateActive(ctx, userID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateDates: %w", err)
	}

	updated, err := s.trips.UpdateDates(ctx, trip.ID, start, end)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateDates: %w", err)
	}
	return updated, nil
}

// Save finalizes the user's active trip: derives a display name from its
// items, flips status to saved, and returns the saved trip. Returns
// domain.ErrNotFound when the user has no active trip — after a save, the
// next mutation starts a fresh active trip rather than re-saving this one.
func (s *TripService) Save(ctx context.Context, userID uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetActive(ctx, userID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Save: %w", err)
	}

	items, err := s.trips.ListItems(ctx, trip.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Save: %w", err)
	}

	saved, err := s.trips.Save(ctx, trip.ID, savedTripName(trip, items))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Save: %w", err)
	}
	return saved, nil
}

// List returns all of the user's trips, newest first. Tour packages count
// toward each entry's item count only when the service is configured so.
func (s *TripService) List(ctx context.Context, userID uuid.UUID) ([]domain.TripListEntry, error) {
	entries, err := s.trips.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if s.countTourPackages {
		for i := range entries {
			entries[i].ItemCount += entries[i].TourPackageCount
		}
	}
	return entries, nil
}

// savedTripName derives the frozen display name for a trip being saved:
// "Trip to {first linked destination}" when one exists, otherwise the
// generic fallback, with the formatted start date appended when set.
func savedTripName(trip domain.Trip, items domain.TripItems) string {
	name := FallbackTripName
	if len(items.Destinations) > 0 {
		name = "Trip to " + items.Destinations[0].Name
	}
	if trip.StartDate != nil {
		name += " (" + trip.StartDate.Format(savedNameDateFormat) + ")"
	}
	return name
}
