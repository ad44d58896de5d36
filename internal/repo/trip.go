package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/asoniya/travel-planner/backend/internal/domain"
)

// TripRepo defines the persistence operations for trips and their item
// relations. The service layer depends on this interface, not the concrete
// Postgres implementation, which allows the service to be unit-tested with a
// mock.
type TripRepo interface {
	// GetOrCreateActive returns the user's active trip, creating one with the
	// default name if none exists. The operation is atomic: the trips table
	// has a partial unique index on (user_id) WHERE status = 'active', and
	// the insert upserts against it, so two concurrent calls for the same
	// user always resolve to the same row.
	GetOrCreateActive(ctx context.Context, userID uuid.UUID) (domain.Trip, error)

	// GetActive returns the user's active trip, or domain.ErrNotFound when
	// the user has none.
	GetActive(ctx context.Context, userID uuid.UUID) (domain.Trip, error)

	// GetByID returns one of the user's trips regardless of status.
	// Returns domain.ErrNotFound when the trip does not exist or belongs to
	// another user — ownership is part of the lookup, not a separate check.
	GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error)

	// ListByUser returns all of the user's trips, newest first, each with its
	// linked-item counts. TourPackageCount is reported separately so the
	// service can decide whether it counts toward ItemCount.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.TripListEntry, error)

	// UpdateDates overwrites the trip's date range and returns the updated row.
	// Returns domain.ErrNotFound if the trip does not exist.
	UpdateDates(ctx context.Context, tripID uuid.UUID, start, end *time.Time) (domain.Trip, error)

	// Save transitions an active trip to saved, freezing the given name.
	// Returns domain.ErrNotFound if the trip does not exist or is not active,
	// so a stale double-save fails instead of renaming a finalized trip.
	Save(ctx context.Context, tripID uuid.UUID, name string) (domain.Trip, error)

	// AddItem links a catalog item to the trip's relation for the given kind.
	// Idempotent — linking an already-linked item is a no-op.
	AddItem(ctx context.Context, tripID uuid.UUID, kind domain.ItemKind, itemID int64) error

	// ListItems loads all seven item relations for a trip, each ordered by
	// the time the item was linked. Attraction and accommodation rows carry
	// their destination's name for grouping.
	ListItems(ctx context.Context, tripID uuid.UUID) (domain.TripItems, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, user_id, name, status, start_date, end_date, created_at, updated_at`

// GetOrCreateActive finds or creates the user's single active trip.
// The no-op DO UPDATE forces the RETURNING clause to fire on conflict —
// with DO NOTHING, RETURNING yields no row for an existing trip.
func (r *pgTripRepo) GetOrCreateActive(ctx context.Context, userID uuid.UUID) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (user_id, name, status)
		VALUES (@user_id, @name, 'active')
		ON CONFLICT (user_id) WHERE status = 'active'
		DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{"user_id": userID, "name": domain.DefaultTripName}

	trip, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetOrCreateActive: %w", err)
	}
	return trip, nil
}

// GetActive returns the user's active trip without creating one.
func (r *pgTripRepo) GetActive(ctx context.Context, userID uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = @user_id AND status = 'active'`

	trip, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetActive: %w", err)
	}
	return trip, nil
}

// GetByID retrieves one of the user's trips by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE id = @id AND user_id = @user_id`

	trip, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": tripID, "user_id": userID}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return trip, nil
}

// ListByUser returns the user's trips, newest first, with item counts computed
// by scalar subqueries over the seven join tables.
func (r *pgTripRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.TripListEntry, error) {
	const q = `
		SELECT t.id, t.user_id, t.name, t.status, t.start_date, t.end_date,
		       t.created_at, t.updated_at,
		       (SELECT count(*) FROM trip_destinations x WHERE x.trip_id = t.id)
		     + (SELECT count(*) FROM trip_attractions x WHERE x.trip_id = t.id)
		     + (SELECT count(*) FROM trip_accommodations x WHERE x.trip_id = t.id)
		     + (SELECT count(*) FROM trip_car_rental_companies x WHERE x.trip_id = t.id)
		     + (SELECT count(*) FROM trip_cars x WHERE x.trip_id = t.id)
		     + (SELECT count(*) FROM trip_travel_agencies x WHERE x.trip_id = t.id) AS item_count,
		       (SELECT count(*) FROM trip_tour_packages x WHERE x.trip_id = t.id) AS tour_package_count
		FROM trips t
		WHERE t.user_id = @user_id
		ORDER BY t.created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	entries := []domain.TripListEntry{}
	for rows.Next() {
		var (
			e      domain.TripListEntry
			id     pgtype.UUID
			uid    pgtype.UUID
			startD pgtype.Date
			endD   pgtype.Date
			items  int64
			tours  int64
		)
		err := rows.Scan(&id, &uid, &e.Name, &e.Status, &startD, &endD,
			&e.CreatedAt, &e.UpdatedAt, &items, &tours)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListByUser: scan: %w", err)
		}
		e.ID = uuid.UUID(id.Bytes)
		e.UserID = uuid.UUID(uid.Bytes)
		e.StartDate = datePtr(startD)
		e.EndDate = datePtr(endD)
		e.ItemCount = int(items)
		e.TourPackageCount = int(tours)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUser: rows: %w", err)
	}
	return entries, nil
}

// UpdateDates overwrites the trip's date range.
func (r *pgTripRepo) UpdateDates(ctx context.Context, tripID uuid.UUID, start, end *time.Time) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET start_date = @start_date,
		    end_date   = @end_date,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":         tripID,
		"start_date": start, // nil becomes NULL
		"end_date":   end,
	}

	trip, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.UpdateDates: %w", err)
	}
	return trip, nil
}

// Save freezes the derived name and flips status to saved. The status guard
// in the WHERE clause means a trip can only be saved while active.
func (r *pgTripRepo) Save(ctx context.Context, tripID uuid.UUID, name string) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET name       = @name,
		    status     = 'saved',
		    updated_at = now()
		WHERE id = @id AND status = 'active'
		RETURNING ` + tripColumns

	trip, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": tripID, "name": name}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: %w", err)
	}
	return trip, nil
}

// AddItem inserts into the join table for the item's kind.
// Idempotent via ON CONFLICT DO NOTHING — the join tables have composite
// primary keys, so relations behave as sets.
func (r *pgTripRepo) AddItem(ctx context.Context, tripID uuid.UUID, kind domain.ItemKind, itemID int64) error {
	rel, ok := kindRelations[kind]
	if !ok {
		return fmt.Errorf("repo.TripRepo.AddItem: %w: unknown item kind %q", domain.ErrValidation, kind)
	}

	q := fmt.Sprintf(`
		INSERT INTO %s (trip_id, %s)
		VALUES (@trip_id, @item_id)
		ON CONFLICT DO NOTHING`, rel.joinTable, rel.joinCol)

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "item_id": itemID})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.AddItem: %w", err)
	}
	return nil
}

// ListItems loads all seven relations for a trip. Seven small indexed queries
// keep the scanning code straightforward; trips hold tens of items, not
// thousands.
func (r *pgTripRepo) ListItems(ctx context.Context, tripID uuid.UUID) (domain.TripItems, error) {
	var (
		items domain.TripItems
		err   error
	)
	args := pgx.NamedArgs{"trip_id": tripID}

	items.Destinations, err = queryList(ctx, r.db, `
		SELECT d.id, d.name, d.description, d.image_url
		FROM trip_destinations td
		JOIN destinations d ON d.id = td.destination_id
		WHERE td.trip_id = @trip_id
		ORDER BY td.added_at, d.id`, args,
		func(s scanner) (domain.Destination, error) {
			var d domain.Destination
			err := s.Scan(&d.ID, &d.Name, &d.Description, &d.ImageURL)
			return d, err
		})
	if err != nil {
		return domain.TripItems{}, fmt.Errorf("repo.TripRepo.ListItems: destinations: %w", err)
	}

	items.Attractions, err = queryList(ctx, r.db, `
		SELECT a.id, a.destination_id, d.name, a.name, a.description, a.image_url
		FROM trip_attractions ta
		JOIN attractions a ON a.id = ta.attraction_id
		JOIN destinations d ON d.id = a.destination_id
		WHERE ta.trip_id = @trip_id
		ORDER BY ta.added_at, a.id`, args, scanAttraction)
	if err != nil {
		return domain.TripItems{}, fmt.Errorf("repo.TripRepo.ListItems: attractions: %w", err)
	}

	items.Accommodations, err = queryList(ctx, r.db, `
		SELECT a.id, a.destination_id, d.name, a.name, a.description,
		       a.accommodation_type, a.price_per_night, a.rating, a.image_url
		FROM trip_accommodations tac
		JOIN accommodations a ON a.id = tac.accommodation_id
		JOIN destinations d ON d.id = a.destination_id
		WHERE tac.trip_id = @trip_id
		ORDER BY tac.added_at, a.id`, args, scanAccommodation)
	if err != nil {
		return domain.TripItems{}, fmt.Errorf("repo.TripRepo.ListItems: accommodations: %w", err)
	}

	items.CarRentalCompanies, err = queryList(ctx, r.db, `
		SELECT c.id, c.name, c.description, c.image_url
		FROM trip_car_rental_companies tc
		JOIN car_rental_companies c ON c.id = tc.company_id
		WHERE tc.trip_id = @trip_id
		ORDER BY tc.added_at, c.id`, args,
		func(s scanner) (domain.CarRentalCompany, error) {
			var c domain.CarRentalCompany
			err := s.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL)
			return c, err
		})
	if err != nil {
		return domain.TripItems{}, fmt.Errorf("repo.TripRepo.ListItems: car rental companies: %w", err)
	}

	items.Cars, err = queryList(ctx, r.db, `
		SELECT c.id, c.company_id, c.name, c.description, c.price_per_day, c.image_url
		FROM trip_cars tc
		JOIN cars c ON c.id = tc.car_id
		WHERE tc.trip_id = @trip_id
		ORDER BY tc.added_at, c.id`, args, scanCar)
	if err != nil {
		return domain.TripItems{}, fmt.Errorf("repo.TripRepo.ListItems: cars: %w", err)
	}

	items.TravelAgencies, err = queryList(ctx, r.db, `
		SELECT a.id, a.name, a.description, a.image_url
		FROM trip_travel_agencies tta
		JOIN travel_agencies a ON a.id = tta.agency_id
		WHERE tta.trip_id = @trip_id
		ORDER BY tta.added_at, a.id`, args,
		func(s scanner) (domain.TravelAgency, error) {
			var a domain.TravelAgency
			err := s.Scan(&a.ID, &a.Name, &a.Description, &a.ImageURL)
			return a, err
		})
	if err != nil {
		return domain.TripItems{}, fmt.Errorf("repo.TripRepo.ListItems: travel agencies: %w", err)
	}

	items.TourPackages, err = queryList(ctx, r.db, `
		SELECT tp.id, tp.agency_id, tp.name, tp.description, tp.price, tp.duration_days, tp.image_url
		FROM trip_tour_packages ttp
		JOIN tour_packages tp ON tp.id = ttp.tour_package_id
		WHERE ttp.trip_id = @trip_id
		ORDER BY ttp.added_at, tp.id`, args, scanTourPackage)
	if err != nil {
		return domain.TripItems{}, fmt.Errorf("repo.TripRepo.ListItems: tour packages: %w", err)
	}

	return items, nil
}

// queryList runs a query and scans every row with scan, returning an empty
// (non-nil) slice when there are no rows.
func queryList[T any](ctx context.Context, db db, q string, args pgx.NamedArgs, scan func(scanner) (T, error)) ([]T, error) {
	rows, err := db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID and nullable date conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t      domain.Trip
		id     pgtype.UUID
		userID pgtype.UUID
		startD pgtype.Date
		endD   pgtype.Date
	)

	err := s.Scan(&id, &userID, &t.Name, &t.Status, &startD, &endD, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.UserID = uuid.UUID(userID.Bytes)
	t.StartDate = datePtr(startD)
	t.EndDate = datePtr(endD)
	return t, nil
}

// datePtr converts a nullable DATE column into *time.Time.
func datePtr(d pgtype.Date) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}
