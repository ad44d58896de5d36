package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/asoniya/travel-planner/backend/internal/domain"
	"github.com/asoniya/travel-planner/backend/internal/handler"
	"github.com/asoniya/travel-planner/backend/internal/middleware"
	"github.com/asoniya/travel-planner/backend/internal/service"
)

// Hand-written test doubles for the handler's consumer interfaces.
// Each method is a function field — set only the ones your test needs;
// an unset field panics, which fails the test loudly.

type mockTripServicer struct {
	addItem     func(ctx context.Context, userID uuid.UUID, itemType string, itemID int64) (domain.ItemKind, error)
	updateDates func(ctx context.Context, userID uuid.UUID, start, end *time.Time) (domain.Trip, error)
	save        func(ctx context.Context, userID uuid.UUID) (domain.Trip, error)
	list        func(ctx context.Context, userID uuid.UUID) ([]domain.TripListEntry, error)
}

func (m *mockTripServicer) AddItem(ctx context.Context, userID uuid.UUID, itemType string, itemID int64) (domain.ItemKind, error) {
	return m.addItem(ctx, userID, itemType, itemID)
}
func (m *mockTripServicer) UpdateDates(ctx context.Context, userID uuid.UUID, start, end *time.Time) (domain.Trip, error) {
	return m.updateDates(ctx, userID, start, end)
}
func (m *mockTripServicer) Save(ctx context.Context, userID uuid.UUID) (domain.Trip, error) {
	return m.save(ctx, userID)
}
func (m *mockTripServicer) List(ctx context.Context, userID uuid.UUID) ([]domain.TripListEntry, error) {
	return m.list(ctx, userID)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockSummaryServicer struct {
	buildActive func(ctx context.Context, userID uuid.UUID) (domain.TripSummary, error)
	buildByID   func(ctx context.Context, userID, tripID uuid.UUID) (domain.TripSummary, error)
}

func (m *mockSummaryServicer) BuildActive(ctx context.Context, userID uuid.UUID) (domain.TripSummary, error) {
	return m.buildActive(ctx, userID)
}
func (m *mockSummaryServicer) BuildByID(ctx context.Context, userID, tripID uuid.UUID) (domain.TripSummary, error) {
	return m.buildByID(ctx, userID, tripID)
}

var _ handler.SummaryServicer = (*mockSummaryServicer)(nil)

type mockUserServicer struct {
	signup       func(ctx context.Context, in service.SignupInput) (domain.User, error)
	authenticate func(ctx context.Context, username, password string) (domain.User, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.User, error)
}

func (m *mockUserServicer) Signup(ctx context.Context, in service.SignupInput) (domain.User, error) {
	return m.signup(ctx, in)
}
func (m *mockUserServicer) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	return m.authenticate(ctx, username, password)
}
func (m *mockUserServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}

var _ handler.UserServicer = (*mockUserServicer)(nil)

type mockCatalogReader struct {
	listDestinations             func(ctx context.Context) ([]domain.Destination, error)
	listAttractionsByDestination func(ctx context.Context, destinationID int64) ([]domain.Attraction, error)
	listAccommodations           func(ctx context.Context, f domain.AccommodationFilter) ([]domain.Accommodation, error)
	listCarRentalCompanies       func(ctx context.Context) ([]domain.CarRentalCompany, error)
	listCarsByCompany            func(ctx context.Context, companyID int64) ([]domain.Car, error)
	listTravelAgencies           func(ctx context.Context) ([]domain.TravelAgency, error)
	listTourPackagesByAgency     func(ctx context.Context, agencyID int64) ([]domain.TourPackage, error)
}

func (m *mockCatalogReader) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	return m.listDestinations(ctx)
}
func (m *mockCatalogReader) ListAttractionsByDestination(ctx context.Context, destinationID int64) ([]domain.Attraction, error) {
	return m.listAttractionsByDestination(ctx, destinationID)
}
func (m *mockCatalogReader) ListAccommodations(ctx context.Context, f domain.AccommodationFilter) ([]domain.Accommodation, error) {
	return m.listAccommodations(ctx, f)
}
func (m *mockCatalogReader) ListCarRentalCompanies(ctx context.Context) ([]domain.CarRentalCompany, error) {
	return m.listCarRentalCompanies(ctx)
}
func (m *mockCatalogReader) ListCarsByCompany(ctx context.Context, companyID int64) ([]domain.Car, error) {
	return m.listCarsByCompany(ctx, companyID)
}
func (m *mockCatalogReader) ListTravelAgencies(ctx context.Context) ([]domain.TravelAgency, error) {
	return m.listTravelAgencies(ctx)
}
func (m *mockCatalogReader) ListTourPackagesByAgency(ctx context.Context, agencyID int64) ([]domain.TourPackage, error) {
	return m.listTourPackagesByAgency(ctx, agencyID)
}

var _ handler.CatalogReader = (*mockCatalogReader)(nil)

type mockTokenIssuer struct {
	issue func(userID uuid.UUID) (string, error)
}

func (m *mockTokenIssuer) Issue(userID uuid.UUID) (string, error) { return m.issue(userID) }

var _ handler.TokenIssuer = (*mockTokenIssuer)(nil)

// deps bundles the mocks a test server is built from. Zero-value fields are
// fine as long as the test never exercises them.
type deps struct {
	trips     *mockTripServicer
	summaries *mockSummaryServicer
	users     *mockUserServicer
	catalog   *mockCatalogReader
	tokens    *mockTokenIssuer
}

// newRouter builds the full route tree around the given mocks, with the auth
// middleware replaced by one that injects userID into the request context.
// Pass uuid.Nil to leave requests unauthenticated.
func newRouter(d deps, userID uuid.UUID) http.Handler {
	if d.trips == nil {
		d.trips = &mockTripServicer{}
	}
	if d.summaries == nil {
		d.summaries = &mockSummaryServicer{}
	}
	if d.users == nil {
		d.users = &mockUserServicer{}
	}
	if d.catalog == nil {
		d.catalog = &mockCatalogReader{}
	}
	if d.tokens == nil {
		d.tokens = &mockTokenIssuer{
			issue: func(uuid.UUID) (string, error) { return "test-token", nil },
		}
	}

	srv := handler.NewServer(d.trips, d.summaries, d.users, d.catalog, d.tokens)
	return srv.Router(stubAuthn(userID))
}

// stubAuthn stands in for middleware.RequireAuth. With a real user ID it
// authenticates every request; with uuid.Nil it passes requests through
// untouched so the handlers' own 401 paths can be exercised.
func stubAuthn(userID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID != uuid.Nil {
				r = r.WithContext(middleware.WithUserID(r.Context(), userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// doJSON performs a request with an optional JSON body and returns the recorder.
func doJSON(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
