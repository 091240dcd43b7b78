package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweaver/backend/internal/domain"
	"github.com/tripweaver/backend/internal/repo"
	"github.com/tripweaver/backend/testutil"
)

// newTestTx opens a transaction against the test database. It is rolled back
// automatically when the test finishes, giving free per-test isolation. All
// repos in a test should share one transaction so they see each other's rows.
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

// tripFixture returns a domain.Trip with sensible defaults.
// Callers override individual fields as needed.
func tripFixture() domain.Trip {
	return domain.Trip{
		Name:      "Western Europe",
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		Status:    domain.TripStatusPlanned,
		Notes:     "shoulder season",
	}
}

func TestTripRepo_Create(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	input := tripFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated")
	assert.Equal(t, input.Name, got.Name)
	assert.True(t, got.StartDate.Equal(input.StartDate), "StartDate mismatch")
	assert.True(t, got.EndDate.Equal(input.EndDate), "EndDate mismatch")
	assert.Equal(t, domain.TripStatusPlanned, got.Status)
	assert.Equal(t, input.Notes, got.Notes)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
	assert.False(t, got.UpdatedAt.IsZero(), "UpdatedAt should be set by DB")
}

func TestTripRepo_GetByID(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Name, got.Name)
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_ListPaged(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := r.Create(ctx, tripFixture())
		require.NoError(t, err)
	}

	page1, total, err := r.ListPaged(ctx, domain.PaginationParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page1, 2)
	assert.EqualValues(t, 3, total)

	page2, total, err := r.ListPaged(ctx, domain.PaginationParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page2, 1)
	assert.EqualValues(t, 3, total)
}

func TestTripRepo_Update(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	created.Name = "Western Europe, extended"
	created.EndDate = time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	created.Status = domain.TripStatusActive

	got, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, "Western Europe, extended", got.Name)
	assert.True(t, got.EndDate.Equal(created.EndDate))
	assert.Equal(t, domain.TripStatusActive, got.Status)
}

func TestTripRepo_Update_NotFound(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))

	missing := tripFixture()
	missing.ID = uuid.New()
	_, err := r.Update(context.Background(), missing)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Delete(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Delete_NotFound(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))

	err := r.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDestinationRepo_AttachOrdering(t *testing.T) {
	tx := newTestTx(t)
	trips := repo.NewTripRepo(tx)
	destinations := repo.NewDestinationRepo(tx)
	ctx := context.Background()

	trip, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	paris, err := destinations.Create(ctx, domain.Destination{Name: "Paris", Country: "France", Timezone: "Europe/Paris"})
	require.NoError(t, err)
	london, err := destinations.Create(ctx, domain.Destination{Name: "London", Country: "UK", Timezone: "Europe/London"})
	require.NoError(t, err)

	// Attachment order, not alphabetical order, must come back.
	require.NoError(t, destinations.AttachToTrip(ctx, trip.ID, paris.ID))
	require.NoError(t, destinations.AttachToTrip(ctx, trip.ID, london.ID))

	got, err := destinations.ListByTrip(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Paris", got[0].Name)
	assert.Equal(t, "London", got[1].Name)
}

func TestDestinationRepo_AttachTwiceIsNoop(t *testing.T) {
	tx := newTestTx(t)
	trips := repo.NewTripRepo(tx)
	destinations := repo.NewDestinationRepo(tx)
	ctx := context.Background()

	trip, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)
	paris, err := destinations.Create(ctx, domain.Destination{Name: "Paris", Timezone: "Europe/Paris"})
	require.NoError(t, err)

	require.NoError(t, destinations.AttachToTrip(ctx, trip.ID, paris.ID))
	require.NoError(t, destinations.AttachToTrip(ctx, trip.ID, paris.ID))

	got, err := destinations.ListByTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestActivityRepo_CreateAndList(t *testing.T) {
	tx := newTestTx(t)
	destinations := repo.NewDestinationRepo(tx)
	activities := repo.NewActivityRepo(tx)
	ctx := context.Background()

	paris, err := destinations.Create(ctx, domain.Destination{Name: "Paris", Timezone: "Europe/Paris"})
	require.NoError(t, err)

	cost := 22.0
	created, err := activities.Create(ctx, domain.Activity{
		DestinationID:   paris.ID,
		Name:            "Louvre visit",
		Category:        "museum",
		DurationMinutes: 120,
		EstimatedCost:   &cost,
	})
	require.NoError(t, err)
	require.NotNil(t, created.EstimatedCost)
	assert.Equal(t, 22.0, *created.EstimatedCost)

	list, err := activities.ListByDestination(ctx, paris.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}
