package repo_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/asoniya/travel-planner/backend/internal/domain"
	"github.com/asoniya/travel-planner/backend/migrations"
	"github.com/asoniya/travel-planner/backend/testutil"
)

// TestMain runs before any test in the repo_test package.
// It applies all pending migrations to the test database so individual tests
// never need to think about schema state.
func TestMain(m *testing.M) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		// No test DB configured — skip all tests in this package cleanly.
		os.Exit(m.Run())
	}

	// Use a plain *sql.DB for goose (it needs database/sql, not a pgx pool).
	db := testutil.MustOpenSQLDB(os.Getenv("TEST_DATABASE_URL"))
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		log.Fatalf("TestMain: create goose provider: %v", err)
	}

	if _, err := provider.Up(context.Background()); err != nil {
		log.Fatalf("TestMain: run migrations: %v", err)
	}

	os.Exit(m.Run())
}

// newTestTx opens a transaction against the test database. All repos in a test
// share the transaction, and it is rolled back automatically when the test
// finishes — per-test isolation with no cleanup SQL.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return tx
}

// ---- fixtures --------------------------------------------------------------
//
// Catalog tables use identity columns, so fixtures insert through SQL and
// return the generated IDs. Every fixture runs on the test transaction.

var fixtureSeq int

// uniqueName returns a name that is unique within the test binary, keeping
// username collisions out of tests that share a database.
func uniqueName(prefix string) string {
	fixtureSeq++
	return fmt.Sprintf("%s-%d-%s", prefix, fixtureSeq, uuid.NewString()[:8])
}

func createUser(t *testing.T, tx pgx.Tx) domain.User {
	t.Helper()
	var u domain.User
	u.Username = uniqueName("traveler")
	err := tx.QueryRow(context.Background(), `
		INSERT INTO users (username, email, first_name, last_name, password_hash)
		VALUES ($1, '', '', '', 'x')
		RETURNING id`, u.Username).Scan(&u.ID)
	require.NoError(t, err, "create user fixture")
	return u
}

func seedDestination(t *testing.T, tx pgx.Tx, name string) int64 {
	t.Helper()
	var id int64
	err := tx.QueryRow(context.Background(), `
		INSERT INTO destinations (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	require.NoError(t, err, "seed destination")
	return id
}

func seedAttraction(t *testing.T, tx pgx.Tx, destinationID int64, name string) int64 {
	t.Helper()
	var id int64
	err := tx.QueryRow(context.Background(), `
		INSERT INTO attractions (destination_id, name)
		VALUES ($1, $2) RETURNING id`, destinationID, name).Scan(&id)
	require.NoError(t, err, "seed attraction")
	return id
}

func seedAccommodation(t *testing.T, tx pgx.Tx, destinationID int64, name, accType, price, rating string) int64 {
	t.Helper()
	var id int64
	err := tx.QueryRow(context.Background(), `
		INSERT INTO accommodations (destination_id, name, accommodation_type, price_per_night, rating)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		destinationID, name, accType, price, rating).Scan(&id)
	require.NoError(t, err, "seed accommodation")
	return id
}

func seedCompany(t *testing.T, tx pgx.Tx, name string) int64 {
	t.Helper()
	var id int64
	err := tx.QueryRow(context.Background(), `
		INSERT INTO car_rental_companies (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	require.NoError(t, err, "seed car rental company")
	return id
}

// seedCar inserts a car; pass price "" for an unpriced one.
func seedCar(t *testing.T, tx pgx.Tx, companyID int64, name, price string) int64 {
	t.Helper()
	var pricePtr *string
	if price != "" {
		pricePtr = &price
	}
	var id int64
	err := tx.QueryRow(context.Background(), `
		INSERT INTO cars (company_id, name, price_per_day)
		VALUES ($1, $2, $3) RETURNING id`, companyID, name, pricePtr).Scan(&id)
	require.NoError(t, err, "seed car")
	return id
}

func seedAgency(t *testing.T, tx pgx.Tx, name string) int64 {
	t.Helper()
	var id int64
	err := tx.QueryRow(context.Background(), `
		INSERT INTO travel_agencies (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	require.NoError(t, err, "seed travel agency")
	return id
}

func seedTourPackage(t *testing.T, tx pgx.Tx, agencyID int64, name, price string, days int) int64 {
	t.Helper()
	var pricePtr *string
	if price != "" {
		pricePtr = &price
	}
	var id int64
	err := tx.QueryRow(context.Background(), `
		INSERT INTO tour_packages (agency_id, name, price, duration_days)
		VALUES ($1, $2, $3, $4) RETURNING id`, agencyID, name, pricePtr, days).Scan(&id)
	require.NoError(t, err, "seed tour package")
	return id
}
