package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripweaver/backend/internal/domain"
)

// txdb extends db with the ability to begin a transaction. *pgxpool.Pool and
// pgx.Tx both satisfy it (a Tx begins a nested savepoint), so integration
// tests keep their rollback isolation even through WithTripLock.
type txdb interface {
	db
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TripActivityRepo defines the persistence operations for scheduled
// placements. Read methods return placements ordered by
// (planned_date, start_time) ascending, the calendar's retrieval order,
// which the conflict detector and the read projections both rely on.
type TripActivityRepo interface {
	// Create inserts a new placement and returns the persisted record.
	Create(ctx context.Context, a domain.TripActivity) (domain.TripActivity, error)

	// GetByID retrieves a single placement by its UUID primary key.
	// Returns domain.ErrNotFound if no placement with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.TripActivity, error)

	// ListByTrip returns all placements for a trip in calendar order.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.TripActivity, error)

	// ListByTripBetween returns the trip's placements whose planned date falls
	// in the inclusive [from, to] range, in calendar order.
	ListByTripBetween(ctx context.Context, tripID uuid.UUID, from, to time.Time) ([]domain.TripActivity, error)

	// ListDates returns the distinct planned dates for a trip, ascending.
	ListDates(ctx context.Context, tripID uuid.UUID) ([]time.Time, error)

	// Update overwrites the mutable fields of a placement and returns the
	// updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, a domain.TripActivity) (domain.TripActivity, error)

	// Delete removes a placement by ID.
	// Returns domain.ErrNotFound (and deletes nothing) if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// SumEstimatedCost sums the estimated cost of the trip's placements;
	// the inline cost for custom placements, the catalog activity's cost
	// otherwise. Missing values count as 0; an empty trip sums to 0.
	SumEstimatedCost(ctx context.Context, tripID uuid.UUID) (float64, error)

	// SumActualCost sums actual_cost over the trip's placements, treating
	// NULL as 0. An empty trip sums to 0.
	SumActualCost(ctx context.Context, tripID uuid.UUID) (float64, error)

	// WithTripLock runs fn inside a transaction that first acquires a
	// per-trip advisory lock (pg_advisory_xact_lock keyed by the trip id).
	// Concurrent mutating operations on the same trip serialize here, so a
	// load-placements/detect-conflicts/insert sequence inside fn cannot race
	// another scheduler of the same trip. The lock releases on commit or
	// rollback; fn returning an error rolls the transaction back.
	WithTripLock(ctx context.Context, tripID uuid.UUID, fn func(TripActivityRepo) error) error
}

// pgTripActivityRepo is the Postgres implementation of TripActivityRepo.
type pgTripActivityRepo struct {
	db txdb
}

// NewTripActivityRepo constructs a TripActivityRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx for
// rollback isolation.
func NewTripActivityRepo(db txdb) TripActivityRepo {
	return &pgTripActivityRepo{db: db}
}

// placementColumns is the SELECT list shared by every read. The LEFT JOIN on
// activities resolves the display name for catalog-backed placements.
const placementColumns = `
	ta.id, ta.trip_id, ta.activity_id, COALESCE(a.name, ''),
	ta.custom_name, ta.custom_category, ta.custom_description, ta.custom_estimated_cost,
	ta.planned_date, ta.start_time, ta.duration_minutes, ta.timezone,
	ta.actual_cost, ta.notes, ta.created_at`

func (r *pgTripActivityRepo) Create(ctx context.Context, a domain.TripActivity) (domain.TripActivity, error) {
	const q = `
		WITH inserted AS (
			INSERT INTO trip_activities (
				trip_id, activity_id,
				custom_name, custom_category, custom_description, custom_estimated_cost,
				planned_date, start_time, duration_minutes, timezone,
				actual_cost, notes
			)
			VALUES (
				@trip_id, @activity_id,
				@custom_name, @custom_category, @custom_description, @custom_estimated_cost,
				@planned_date, @start_time, @duration_minutes, @timezone,
				@actual_cost, @notes
			)
			RETURNING *
		)
		SELECT ` + placementColumns + `
		FROM inserted ta
		LEFT JOIN activities a ON a.id = ta.activity_id`

	row := r.db.QueryRow(ctx, q, placementArgs(a))
	result, err := scanTripActivity(row)
	if err != nil {
		return domain.TripActivity{}, fmt.Errorf("repo.TripActivityRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.TripActivity, error) {
	const q = `
		SELECT ` + placementColumns + `
		FROM trip_activities ta
		LEFT JOIN activities a ON a.id = ta.activity_id
		WHERE ta.id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTripActivity(row)
	if err != nil {
		return domain.TripActivity{}, fmt.Errorf("repo.TripActivityRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripActivityRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.TripActivity, error) {
	const q = `
		SELECT ` + placementColumns + `
		FROM trip_activities ta
		LEFT JOIN activities a ON a.id = ta.activity_id
		WHERE ta.trip_id = @trip_id
		ORDER BY ta.planned_date ASC, ta.start_time ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripActivityRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	return collectTripActivities(rows, "repo.TripActivityRepo.ListByTrip")
}

func (r *pgTripActivityRepo) ListByTripBetween(ctx context.Context, tripID uuid.UUID, from, to time.Time) ([]domain.TripActivity, error) {
	const q = `
		SELECT ` + placementColumns + `
		FROM trip_activities ta
		LEFT JOIN activities a ON a.id = ta.activity_id
		WHERE ta.trip_id = @trip_id
		  AND ta.planned_date BETWEEN @from AND @to
		ORDER BY ta.planned_date ASC, ta.start_time ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID, "from": from, "to": to})
	if err != nil {
		return nil, fmt.Errorf("repo.TripActivityRepo.ListByTripBetween: %w", err)
	}
	defer rows.Close()

	return collectTripActivities(rows, "repo.TripActivityRepo.ListByTripBetween")
}

func (r *pgTripActivityRepo) ListDates(ctx context.Context, tripID uuid.UUID) ([]time.Time, error) {
	const q = `
		SELECT DISTINCT planned_date
		FROM trip_activities
		WHERE trip_id = @trip_id
		ORDER BY planned_date ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripActivityRepo.ListDates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d pgtype.Date
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("repo.TripActivityRepo.ListDates: scan: %w", err)
		}
		dates = append(dates, d.Time)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripActivityRepo.ListDates: rows: %w", err)
	}

	return dates, nil
}

func (r *pgTripActivityRepo) Update(ctx context.Context, a domain.TripActivity) (domain.TripActivity, error) {
	const q = `
		WITH updated AS (
			UPDATE trip_activities
			SET custom_name           = @custom_name,
			    custom_category       = @custom_category,
			    custom_description    = @custom_description,
			    custom_estimated_cost = @custom_estimated_cost,
			    planned_date          = @planned_date,
			    start_time            = @start_time,
			    duration_minutes      = @duration_minutes,
			    timezone              = @timezone,
			    actual_cost           = @actual_cost,
			    notes                 = @notes
			WHERE id = @id
			RETURNING *
		)
		SELECT ` + placementColumns + `
		FROM updated ta
		LEFT JOIN activities a ON a.id = ta.activity_id`

	args := placementArgs(a)
	args["id"] = a.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTripActivity(row)
	if err != nil {
		return domain.TripActivity{}, fmt.Errorf("repo.TripActivityRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTripActivityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trip_activities WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripActivityRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripActivityRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTripActivityRepo) SumEstimatedCost(ctx context.Context, tripID uuid.UUID) (float64, error) {
	const q = `
		SELECT COALESCE(SUM(COALESCE(ta.custom_estimated_cost, a.estimated_cost, 0)), 0)::float8
		FROM trip_activities ta
		LEFT JOIN activities a ON a.id = ta.activity_id
		WHERE ta.trip_id = @trip_id`

	var total float64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}).Scan(&total); err != nil {
		return 0, fmt.Errorf("repo.TripActivityRepo.SumEstimatedCost: %w", err)
	}
	return total, nil
}

func (r *pgTripActivityRepo) SumActualCost(ctx context.Context, tripID uuid.UUID) (float64, error) {
	const q = `
		SELECT COALESCE(SUM(COALESCE(actual_cost, 0)), 0)::float8
		FROM trip_activities
		WHERE trip_id = @trip_id`

	var total float64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}).Scan(&total); err != nil {
		return 0, fmt.Errorf("repo.TripActivityRepo.SumActualCost: %w", err)
	}
	return total, nil
}

func (r *pgTripActivityRepo) WithTripLock(ctx context.Context, tripID uuid.UUID, fn func(TripActivityRepo) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.TripActivityRepo.WithTripLock: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	// hashtextextended folds the uuid into the bigint key space
	// pg_advisory_xact_lock expects. The lock is released automatically at
	// transaction end, so there is no unlock path to forget.
	const lockQ = `SELECT pg_advisory_xact_lock(hashtextextended(@trip_id::text, 0))`
	if _, err := tx.Exec(ctx, lockQ, pgx.NamedArgs{"trip_id": tripID}); err != nil {
		return fmt.Errorf("repo.TripActivityRepo.WithTripLock: lock: %w", err)
	}

	if err := fn(&pgTripActivityRepo{db: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.TripActivityRepo.WithTripLock: commit: %w", err)
	}
	return nil
}

// placementArgs builds the NamedArgs shared by Create and Update.
// Empty custom strings become NULL so the catalog/custom CHECK constraint
// sees the same distinction the domain type does.
func placementArgs(a domain.TripActivity) pgx.NamedArgs {
	return pgx.NamedArgs{
		"trip_id":               a.TripID,
		"activity_id":           a.ActivityID, // nil becomes NULL
		"custom_name":           nullIfEmpty(a.CustomName),
		"custom_category":       nullIfEmpty(a.CustomCategory),
		"custom_description":    nullIfEmpty(a.CustomDescription),
		"custom_estimated_cost": a.CustomEstimatedCost,
		"planned_date":          a.PlannedDate,
		"start_time":            timeOfDayParam(a.StartTime),
		"duration_minutes":      a.DurationMinutes,
		"timezone":              a.Timezone,
		"actual_cost":           a.ActualCost,
		"notes":                 a.Notes,
	}
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// timeOfDayParam converts a domain.TimeOfDay to the pgtype value for a
// Postgres TIME column (microseconds since midnight).
func timeOfDayParam(t domain.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: int64(t) * 60 * 1_000_000, Valid: true}
}

func collectTripActivities(rows pgx.Rows, op string) ([]domain.TripActivity, error) {
	var out []domain.TripActivity
	for rows.Next() {
		a, err := scanTripActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return out, nil
}

// scanTripActivity maps a single database row into a domain.TripActivity,
// handling the nullable activity reference, the nullable custom columns, and
// the TIME → TimeOfDay conversion.
func scanTripActivity(s scanner) (domain.TripActivity, error) {
	var (
		a          domain.TripActivity
		id         pgtype.UUID
		tripID     pgtype.UUID
		activityID pgtype.UUID
		customName pgtype.Text
		customCat  pgtype.Text
		customDesc pgtype.Text
		customCost pgtype.Float8
		planned    pgtype.Date
		start      pgtype.Time
		actualCost pgtype.Float8
	)

	err := s.Scan(
		&id, &tripID, &activityID, &a.ActivityName,
		&customName, &customCat, &customDesc, &customCost,
		&planned, &start, &a.DurationMinutes, &a.Timezone,
		&actualCost, &a.Notes, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripActivity{}, domain.ErrNotFound
		}
		return domain.TripActivity{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.TripID = uuid.UUID(tripID.Bytes)
	if activityID.Valid {
		aid := uuid.UUID(activityID.Bytes)
		a.ActivityID = &aid
	}
	a.CustomName = customName.String
	a.CustomCategory = customCat.String
	a.CustomDescription = customDesc.String
	if customCost.Valid {
		c := customCost.Float64
		a.CustomEstimatedCost = &c
	}
	a.PlannedDate = planned.Time
	a.StartTime = domain.TimeOfDay(start.Microseconds / (60 * 1_000_000))
	if actualCost.Valid {
		c := actualCost.Float64
		a.ActualCost = &c
	}

	return a, nil
}
