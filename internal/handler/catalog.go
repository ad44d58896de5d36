package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/asoniya/travel-planner/backend/internal/domain"
)

// Catalog endpoints are plain filtered reads over back-office-maintained
// data. They are public: browsing requires no account.

// ListDestinations handles GET /api/destinations.
func (s *Server) ListDestinations(w http.ResponseWriter, r *http.Request) {
	dests, err := s.catalog.ListDestinations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dests)
}

// ListAttractions handles GET /api/destinations/{destinationID}/attractions.
func (s *Server) ListAttractions(w http.ResponseWriter, r *http.Request) {
	destinationID, ok := pathID(w, r, "destinationID")
	if !ok {
		return
	}

	attractions, err := s.catalog.ListAttractionsByDestination(r.Context(), destinationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, attractions)
}

// ListAccommodations handles GET /api/accommodations with optional
// ?destination=, ?type=, ?max_price=, and ?min_rating= filters.
func (s *Server) ListAccommodations(w http.ResponseWriter, r *http.Request) {
	var f domain.AccommodationFilter

	q := r.URL.Query()
	if v := q.Get("destination"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, requestBody("invalid destination filter"))
			return
		}
		f.DestinationID = id
	}
	f.Type = q.Get("type")
	if v := q.Get("max_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, requestBody("invalid max_price filter"))
			return
		}
		f.MaxPrice = &d
	}
	if v := q.Get("min_rating"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, requestBody("invalid min_rating filter"))
			return
		}
		f.MinRating = &d
	}

	accommodations, err := s.catalog.ListAccommodations(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accommodations)
}

// ListCarRentalCompanies handles GET /api/car-rentals.
func (s *Server) ListCarRentalCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.catalog.ListCarRentalCompanies(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, companies)
}

// ListCars handles GET /api/car-rentals/{companyID}/cars.
func (s *Server) ListCars(w http.ResponseWriter, r *http.Request) {
	companyID, ok := pathID(w, r, "companyID")
	if !ok {
		return
	}

	cars, err := s.catalog.ListCarsByCompany(r.Context(), companyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

// ListTravelAgencies handles GET /api/travel-agencies.
func (s *Server) ListTravelAgencies(w http.ResponseWriter, r *http.Request) {
	agencies, err := s.catalog.ListTravelAgencies(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agencies)
}

// ListTourPackages handles GET /api/travel-agencies/{agencyID}/tours.
func (s *Server) ListTourPackages(w http.ResponseWriter, r *http.Request) {
	agencyID, ok := pathID(w, r, "agencyID")
	if !ok {
		return
	}

	tours, err := s.catalog.ListTourPackagesByAgency(r.Context(), agencyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tours)
}

// pathID parses a positive integer URL parameter, writing a 400 response and
// returning false when it is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid "+name))
		return 0, false
	}
	return id, true
}
