package handler

import (
	"net/http"

	"github.com/asoniya/travel-planner/backend/internal/middleware"
)

// profileResponse is the body of GET /api/profile.
type profileResponse struct {
	Username   string          `json:"username"`
	Email      string          `json:"email"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	SavedTrips []tripListEntry `json:"saved_trips"`
}

// tripListEntry is one trip in the profile listing. ViewURL points at the
// trip's summary view so the client can link straight to it.
type tripListEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	ItemCount int    `json:"item_count"`
	ViewURL   string `json:"view_url"`
}

// Profile handles GET /api/profile: the caller's account details plus all of
// their trips (active, saved, and booked) with display labels and item counts.
func (s *Server) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: ErrorDetail{Code: "unauthenticated", Message: "login required"}})
		return
	}

	user, err := s.users.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	entries, err := s.trips.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := profileResponse{
		Username:   user.Username,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		SavedTrips: []tripListEntry{},
	}
	for _, e := range entries {
		resp.SavedTrips = append(resp.SavedTrips, tripListEntry{
			ID:        e.ID.String(),
			Name:      e.Name,
			Status:    e.Status.Label(),
			ItemCount: e.ItemCount,
			ViewURL:   "/api/trips/" + e.ID.String(),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
