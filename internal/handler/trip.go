package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime/types"

	"github.com/asoniya/travel-planner/backend/internal/middleware"
)

// addToTripRequest is the body of POST /api/trip/add.
type addToTripRequest struct {
	ItemID   int64  `json:"item_id"`
	ItemType string `json:"item_type"`
}

// tripDatesRequest is the body of POST /api/trip/dates.
// Dates are ISO strings ("2006-01-02"); either may be omitted to clear it.
type tripDatesRequest struct {
	StartDate *types.Date `json:"start_date"`
	EndDate   *types.Date `json:"end_date"`
}

// AddToTrip handles POST /api/trip/add: validates the (kind, id) pair against
// the catalog and links the item to the caller's active trip, creating the
// trip if this is their first selection.
func (s *Server) AddToTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: ErrorDetail{Code: "unauthenticated", Message: "login required"}})
		return
	}

	var req addToTripRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	kind, err := s.trips.AddItem(r.Context(), userID, req.ItemType, req.ItemID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "success",
		Message: fmt.Sprintf("%s with id %d added to trip.", kind, req.ItemID),
	})
}

// UpdateTripDates handles POST /api/trip/dates: overwrites the active trip's
// date range, creating the trip if the user has none.
func (s *Server) UpdateTripDates(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: ErrorDetail{Code: "unauthenticated", Message: "login required"}})
		return
	}

	var req tripDatesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	_, err := s.trips.UpdateDates(r.Context(), userID, datePtr(req.StartDate), datePtr(req.EndDate))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{Status: "success", Message: "Trip dates updated."})
}

// SaveTrip handles POST /api/trip/save: finalizes the active trip under a
// derived name. Responds 404 when the user has no active trip — saving is not
// repeatable, a save consumes the active trip.
func (s *Server) SaveTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: ErrorDetail{Code: "unauthenticated", Message: "login required"}})
		return
	}

	trip, err := s.trips.Save(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "success",
		Message: fmt.Sprintf("Trip saved as %q.", trip.Name),
	})
}

// TripSummary handles GET /api/trip/summary: the full projection of the
// caller's active trip. Responds 404 when no trip has been started.
func (s *Server) TripSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: ErrorDetail{Code: "unauthenticated", Message: "login required"}})
		return
	}

	summary, err := s.summaries.BuildActive(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// ViewTrip handles GET /api/trips/{tripID}: the summary projection of any of
// the caller's trips, typically a saved one linked from the profile page.
func (s *Server) ViewTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: ErrorDetail{Code: "unauthenticated", Message: "login required"}})
		return
	}

	tripID, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid trip id"))
		return
	}

	summary, err := s.summaries.BuildByID(r.Context(), userID, tripID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// datePtr converts an optional wire date into *time.Time.
func datePtr(d *types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
