package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/asoniya/travel-planner/backend/spec"
)

// Router builds the route tree. authn is the middleware guarding
// trip-mutating and profile endpoints; catalog browsing and account creation
// stay public so anyone can browse, but only a logged-in user can plan.
func (s *Server) Router(authn func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.Health)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(spec.OpenAPI)
	})

	r.Route("/api", func(api chi.Router) {
		api.Post("/signup", s.Signup)
		api.Post("/login", s.Login)
		api.Post("/logout", s.Logout)

		api.Get("/destinations", s.ListDestinations)
		api.Get("/destinations/{destinationID}/attractions", s.ListAttractions)
		api.Get("/accommodations", s.ListAccommodations)
		api.Get("/car-rentals", s.ListCarRentalCompanies)
		api.Get("/car-rentals/{companyID}/cars", s.ListCars)
		api.Get("/travel-agencies", s.ListTravelAgencies)
		api.Get("/travel-agencies/{agencyID}/tours", s.ListTourPackages)

		api.Group(func(protected chi.Router) {
			protected.Use(authn)
			protected.Post("/trip/add", s.AddToTrip)
			protected.Post("/trip/dates", s.UpdateTripDates)
			protected.Post("/trip/save", s.SaveTrip)
			protected.Get("/trip/summary", s.TripSummary)
			protected.Get("/trips/{tripID}", s.ViewTrip)
			protected.Get("/profile", s.Profile)
		})
	})

	return r
}
