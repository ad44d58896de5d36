// Package handler implements the HTTP surface of the travel planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, catalog.go, authn.go, ...) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/asoniya/travel-planner/backend/internal/domain"
	"github.com/asoniya/travel-planner/backend/internal/service"
)

// TripServicer defines the trip operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	AddItem(ctx context.Context, userID uuid.UUID, itemType string, itemID int64) (domain.ItemKind, error)
	UpdateDates(ctx context.Context, userID uuid.UUID, start, end *time.Time) (domain.Trip, error)
	Save(ctx context.Context, userID uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.TripListEntry, error)
}

// SummaryServicer builds display-ready trip projections.
type SummaryServicer interface {
	BuildActive(ctx context.Context, userID uuid.UUID) (domain.TripSummary, error)
	BuildByID(ctx context.Context, userID, tripID uuid.UUID) (domain.TripSummary, error)
}

// UserServicer defines the account operations the handlers depend on.
type UserServicer interface {
	Signup(ctx context.Context, in service.SignupInput) (domain.User, error)
	Authenticate(ctx context.Context, username, password string) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

// CatalogReader defines the read-only catalog queries the handlers depend on.
// Satisfied by repo.CatalogRepo.
type CatalogReader interface {
	ListDestinations(ctx context.Context) ([]domain.Destination, error)
	ListAttractionsByDestination(ctx context.Context, destinationID int64) ([]domain.Attraction, error)
	ListAccommodations(ctx context.Context, f domain.AccommodationFilter) ([]domain.Accommodation, error)
	ListCarRentalCompanies(ctx context.Context) ([]domain.CarRentalCompany, error)
	ListCarsByCompany(ctx context.Context, companyID int64) ([]domain.Car, error)
	ListTravelAgencies(ctx context.Context) ([]domain.TravelAgency, error)
	ListTourPackagesByAgency(ctx context.Context, agencyID int64) ([]domain.TourPackage, error)
}

// TokenIssuer mints session tokens for freshly authenticated users.
// Satisfied by *auth.TokenIssuer.
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
}

// Server holds the dependencies shared by every handler method.
type Server struct {
	trips     TripServicer
	summaries SummaryServicer
	users     UserServicer
	catalog   CatalogReader
	tokens    TokenIssuer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, summaries SummaryServicer, users UserServicer, catalog CatalogReader, tokens TokenIssuer) *Server {
	return &Server{
		trips:     trips,
		summaries: summaries,
		users:     users,
		catalog:   catalog,
		tokens:    tokens,
	}
}

// statusResponse is the success envelope for mutating endpoints.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads the request body into v, returning false (and writing a
// 400 response) on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid request body"))
		return false
	}
	return true
}
