// Package repo contains all database access logic for the travel planner API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/asoniya/travel-planner/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// kindRelation names the tables backing one item kind: the catalog table the
// items live in, and the trip join table that links them to trips.
// The map below is the single source of truth for kind → table wiring; both
// the catalog existence check and the trip item linker read from it, so the
// two can never disagree about a kind.
type kindRelation struct {
	itemTable string
	joinTable string
	joinCol   string
}

// kindRelations is a closed table over domain.ItemKinds. Table and column
// names are compile-time constants, never user input, so interpolating them
// into SQL is safe.
var kindRelations = map[domain.ItemKind]kindRelation{
	domain.KindDestination:   {"destinations", "trip_destinations", "destination_id"},
	domain.KindAttraction:    {"attractions", "trip_attractions", "attraction_id"},
	domain.KindAccommodation: {"accommodations", "trip_accommodations", "accommodation_id"},
	domain.KindCarRental:     {"car_rental_companies", "trip_car_rental_companies", "company_id"},
	domain.KindCar:           {"cars", "trip_cars", "car_id"},
	domain.KindTravelAgency:  {"travel_agencies", "trip_travel_agencies", "agency_id"},
	domain.KindTourPackage:   {"tour_packages", "trip_tour_packages", "tour_package_id"},
}

// numericToDecimal converts a scanned NUMERIC into an exact decimal value.
// Invalid (NULL) numerics convert to zero; use numericToDecimalPtr for
// columns where NULL is meaningful.
func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.NaN || n.Int == nil {
		return decimal.Decimal{}
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

// numericToDecimalPtr converts a scanned nullable NUMERIC, preserving NULL as nil.
func numericToDecimalPtr(n pgtype.Numeric) *decimal.Decimal {
	if !n.Valid || n.NaN || n.Int == nil {
		return nil
	}
	d := decimal.NewFromBigInt(n.Int, n.Exp)
	return &d
}
