package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/asoniya/travel-planner/backend/internal/domain"
)

// CatalogRepo defines the read-only persistence operations over the travel
// catalog. Catalog rows are maintained by back-office tooling; this API never
// writes them.
type CatalogRepo interface {
	// ItemExists reports whether a catalog row of the given kind and id exists.
	ItemExists(ctx context.Context, kind domain.ItemKind, id int64) (bool, error)

	// ListDestinations returns all destinations ordered by name.
	ListDestinations(ctx context.Context) ([]domain.Destination, error)

	// ListAttractionsByDestination returns the attractions at one destination,
	// ordered by name.
	ListAttractionsByDestination(ctx context.Context, destinationID int64) ([]domain.Attraction, error)

	// ListAccommodations returns accommodations matching the filter, ordered
	// by name. Zero/nil filter fields are ignored.
	ListAccommodations(ctx context.Context, f domain.AccommodationFilter) ([]domain.Accommodation, error)

	// ListCarRentalCompanies returns all rental companies ordered by name.
	ListCarRentalCompanies(ctx context.Context) ([]domain.CarRentalCompany, error)

	// ListCarsByCompany returns one company's cars ordered by name.
	ListCarsByCompany(ctx context.Context, companyID int64) ([]domain.Car, error)

	// ListTravelAgencies returns all travel agencies ordered by name.
	ListTravelAgencies(ctx context.Context) ([]domain.TravelAgency, error)

	// ListTourPackagesByAgency returns one agency's tour packages ordered by name.
	ListTourPackagesByAgency(ctx context.Context, agencyID int64) ([]domain.TourPackage, error)
}

// pgCatalogRepo is the Postgres implementation of CatalogRepo.
type pgCatalogRepo struct {
	db db
}

// NewCatalogRepo constructs a CatalogRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewCatalogRepo(db db) CatalogRepo {
	return &pgCatalogRepo{db: db}
}

// ItemExists checks for a catalog row by kind and id. The table name comes
// from the closed kindRelations map, not from the caller.
func (r *pgCatalogRepo) ItemExists(ctx context.Context, kind domain.ItemKind, id int64) (bool, error) {
	rel, ok := kindRelations[kind]
	if !ok {
		return false, fmt.Errorf("repo.CatalogRepo.ItemExists: %w: unknown item kind %q", domain.ErrValidation, kind)
	}

	q := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = @id)`, rel.itemTable)

	var exists bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.CatalogRepo.ItemExists: %w", err)
	}
	return exists, nil
}

// ListDestinations returns all destinations ordered by name.
func (r *pgCatalogRepo) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	const q = `
		SELECT id, name, description, image_url
		FROM destinations
		ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListDestinations: %w", err)
	}
	defer rows.Close()

	dests := []domain.Destination{}
	for rows.Next() {
		var d domain.Destination
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.ImageURL); err != nil {
			return nil, fmt.Errorf("repo.CatalogRepo.ListDestinations: scan: %w", err)
		}
		dests = append(dests, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListDestinations: rows: %w", err)
	}
	return dests, nil
}

// ListAttractionsByDestination returns one destination's attractions with the
// destination name joined in.
func (r *pgCatalogRepo) ListAttractionsByDestination(ctx context.Context, destinationID int64) ([]domain.Attraction, error) {
	const q = `
		SELECT a.id, a.destination_id, d.name, a.name, a.description, a.image_url
		FROM attractions a
		JOIN destinations d ON d.id = a.destination_id
		WHERE a.destination_id = @destination_id
		ORDER BY a.name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"destination_id": destinationID})
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListAttractionsByDestination: %w", err)
	}
	defer rows.Close()

	attractions := []domain.Attraction{}
	for rows.Next() {
		a, err := scanAttraction(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CatalogRepo.ListAttractionsByDestination: scan: %w", err)
		}
		attractions = append(attractions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListAttractionsByDestination: rows: %w", err)
	}
	return attractions, nil
}

// ListAccommodations returns accommodations matching the filter.
// The WHERE clause is assembled from fixed fragments; values always travel as
// bind parameters.
func (r *pgCatalogRepo) ListAccommodations(ctx context.Context, f domain.AccommodationFilter) ([]domain.Accommodation, error) {
	clauses := []string{"TRUE"}
	args := pgx.NamedArgs{}

	if f.DestinationID != 0 {
		clauses = append(clauses, "a.destination_id = @destination_id")
		args["destination_id"] = f.DestinationID
	}
	if f.Type != "" {
		clauses = append(clauses, "a.accommodation_type = @type")
		args["type"] = f.Type
	}
	if f.MaxPrice != nil {
		clauses = append(clauses, "a.price_per_night <= @max_price")
		args["max_price"] = f.MaxPrice.String()
	}
	if f.MinRating != nil {
		clauses = append(clauses, "a.rating >= @min_rating")
		args["min_rating"] = f.MinRating.String()
	}

	q := `
		SELECT a.id, a.destination_id, d.name, a.name, a.description,
		       a.accommodation_type, a.price_per_night, a.rating, a.image_url
		FROM accommodations a
		JOIN destinations d ON d.id = a.destination_id
		WHERE ` + strings.Join(clauses, " AND ") + `
		ORDER BY a.name`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListAccommodations: %w", err)
	}
	defer rows.Close()

	accommodations := []domain.Accommodation{}
	for rows.Next() {
		a, err := scanAccommodation(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CatalogRepo.ListAccommodations: scan: %w", err)
		}
		accommodations = append(accommodations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListAccommodations: rows: %w", err)
	}
	return accommodations, nil
}

// ListCarRentalCompanies returns all rental companies ordered by name.
func (r *pgCatalogRepo) ListCarRentalCompanies(ctx context.Context) ([]domain.CarRentalCompany, error) {
	const q = `
		SELECT id, name, description, image_url
		FROM car_rental_companies
		ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListCarRentalCompanies: %w", err)
	}
	defer rows.Close()

	companies := []domain.CarRentalCompany{}
	for rows.Next() {
		var c domain.CarRentalCompany
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL); err != nil {
			return nil, fmt.Errorf("repo.CatalogRepo.ListCarRentalCompanies: scan: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListCarRentalCompanies: rows: %w", err)
	}
	return companies, nil
}

// ListCarsByCompany returns one rental company's cars ordered by name.
func (r *pgCatalogRepo) ListCarsByCompany(ctx context.Context, companyID int64) ([]domain.Car, error) {
	const q = `
		SELECT id, company_id, name, description, price_per_day, image_url
		FROM cars
		WHERE company_id = @company_id
		ORDER BY name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"company_id": companyID})
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListCarsByCompany: %w", err)
	}
	defer rows.Close()

	cars := []domain.Car{}
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CatalogRepo.ListCarsByCompany: scan: %w", err)
		}
		cars = append(cars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListCarsByCompany: rows: %w", err)
	}
	return cars, nil
}

// ListTravelAgencies returns all travel agencies ordered by name.
func (r *pgCatalogRepo) ListTravelAgencies(ctx context.Context) ([]domain.TravelAgency, error) {
	const q = `
		SELECT id, name, description, image_url
		FROM travel_agencies
		ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListTravelAgencies: %w", err)
	}
	defer rows.Close()

	agencies := []domain.TravelAgency{}
	for rows.Next() {
		var a domain.TravelAgency
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.ImageURL); err != nil {
			return nil, fmt.Errorf("repo.CatalogRepo.ListTravelAgencies: scan: %w", err)
		}
		agencies = append(agencies, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListTravelAgencies: rows: %w", err)
	}
	return agencies, nil
}

// ListTourPackagesByAgency returns one agency's tour packages ordered by name.
func (r *pgCatalogRepo) ListTourPackagesByAgency(ctx context.Context, agencyID int64) ([]domain.TourPackage, error) {
	const q = `
		SELECT id, agency_id, name, description, price, duration_days, image_url
		FROM tour_packages
		WHERE agency_id = @agency_id
		ORDER BY name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"agency_id": agencyID})
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListTourPackagesByAgency: %w", err)
	}
	defer rows.Close()

	tours := []domain.TourPackage{}
	for rows.Next() {
		tp, err := scanTourPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CatalogRepo.ListTourPackagesByAgency: scan: %w", err)
		}
		tours = append(tours, tp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListTourPackagesByAgency: rows: %w", err)
	}
	return tours, nil
}

// --- scan helpers -----------------------------------------------------------

// scanAttraction maps a row of (id, destination_id, destination_name, name,
// description, image_url) into a domain.Attraction.
func scanAttraction(s scanner) (domain.Attraction, error) {
	var a domain.Attraction
	err := s.Scan(&a.ID, &a.DestinationID, &a.DestinationName, &a.Name, &a.Description, &a.ImageURL)
	if err != nil {
		return domain.Attraction{}, err
	}
	return a, nil
}

// scanAccommodation maps a row of (id, destination_id, destination_name, name,
// description, accommodation_type, price_per_night, rating, image_url) into a
// domain.Accommodation, converting NUMERIC columns to exact decimals.
func scanAccommodation(s scanner) (domain.Accommodation, error) {
	var (
		a      domain.Accommodation
		price  pgtype.Numeric
		rating pgtype.Numeric
	)
	err := s.Scan(&a.ID, &a.DestinationID, &a.DestinationName, &a.Name, &a.Description,
		&a.Type, &price, &rating, &a.ImageURL)
	if err != nil {
		return domain.Accommodation{}, err
	}
	a.PricePerNight = numericToDecimal(price)
	a.Rating = numericToDecimal(rating)
	return a, nil
}

// scanCar maps a row of (id, company_id, name, description, price_per_day,
// image_url) into a domain.Car. price_per_day is nullable.
func scanCar(s scanner) (domain.Car, error) {
	var (
		c     domain.Car
		price pgtype.Numeric
	)
	err := s.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Description, &price, &c.ImageURL)
	if err != nil {
		return domain.Car{}, err
	}
	c.PricePerDay = numericToDecimalPtr(price)
	return c, nil
}

// scanTourPackage maps a row of (id, agency_id, name, description, price,
// duration_days, image_url) into a domain.TourPackage. price is nullable.
func scanTourPackage(s scanner) (domain.TourPackage, error) {
	var (
		tp    domain.TourPackage
		price pgtype.Numeric
	)
	err := s.Scan(&tp.ID, &tp.AgencyID, &tp.Name, &tp.Description, &price, &tp.DurationDays, &tp.ImageURL)
	if err != nil {
		return domain.TourPackage{}, err
	}
	tp.Price = numericToDecimalPtr(price)
	return tp, nil
}
