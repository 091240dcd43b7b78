package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripweaver/backend/internal/domain"
)

// DestinationRepo defines the persistence operations for Destinations and
// their ordered attachment to trips.
type DestinationRepo interface {
	// Create inserts a new destination and returns the persisted record.
	Create(ctx context.Context, d domain.Destination) (domain.Destination, error)

	// GetByID retrieves a single destination by its UUID primary key.
	// Returns domain.ErrNotFound if no destination with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error)

	// List returns all destinations ordered by name ascending.
	List(ctx context.Context) ([]domain.Destination, error)

	// AttachToTrip links a destination to a trip at the next position.
	// Attaching the same destination twice is a no-op.
	AttachToTrip(ctx context.Context, tripID, destinationID uuid.UUID) error

	// ListByTrip returns a trip's destinations in attachment order.
	// The first element supplies the trip's default timezone.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error)
}

// pgDestinationRepo is the Postgres implementation of DestinationRepo.
type pgDestinationRepo struct {
	db db
}

// NewDestinationRepo constructs a DestinationRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx.
func NewDestinationRepo(db db) DestinationRepo {
	return &pgDestinationRepo{db: db}
}

func (r *pgDestinationRepo) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	const q = `
		INSERT INTO destinations (name, country, timezone)
		VALUES (@name, @country, @timezone)
		RETURNING id, name, country, timezone, created_at`

	args := pgx.NamedArgs{
		"name":     d.Name,
		"country":  d.Country,
		"timezone": d.Timezone,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanDestination(row)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	const q = `
		SELECT id, name, country, timezone, created_at
		FROM destinations
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanDestination(row)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) List(ctx context.Context) ([]domain.Destination, error) {
	const q = `
		SELECT id, name, country, timezone, created_at
		FROM destinations
		ORDER BY name ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.List: %w", err)
	}
	defer rows.Close()

	return collectDestinations(rows, "repo.DestinationRepo.List")
}

// AttachToTrip appends the destination to the trip's ordered destination set.
// The position is one past the current maximum for the trip; ON CONFLICT
// keeps re-attachment idempotent.
func (r *pgDestinationRepo) AttachToTrip(ctx context.Context, tripID, destinationID uuid.UUID) error {
	const q = `
		INSERT INTO trip_destinations (trip_id, destination_id, position)
		SELECT @trip_id, @destination_id, COALESCE(MAX(position), 0) + 1
		FROM trip_destinations
		WHERE trip_id = @trip_id
		ON CONFLICT (trip_id, destination_id) DO NOTHING`

	args := pgx.NamedArgs{"trip_id": tripID, "destination_id": destinationID}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.DestinationRepo.AttachToTrip: %w", err)
	}
	return nil
}

func (r *pgDestinationRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error) {
	const q = `
		SELECT d.id, d.name, d.country, d.timezone, d.created_at
		FROM destinations d
		JOIN trip_destinations td ON td.destination_id = d.id
		WHERE td.trip_id = @trip_id
		ORDER BY td.position ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	return collectDestinations(rows, "repo.DestinationRepo.ListByTrip")
}

func collectDestinations(rows pgx.Rows, op string) ([]domain.Destination, error) {
	var out []domain.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return out, nil
}

// scanDestination maps a single database row into a domain.Destination.
func scanDestination(s scanner) (domain.Destination, error) {
	var (
		d  domain.Destination
		id pgtype.UUID
	)

	err := s.Scan(&id, &d.Name, &d.Country, &d.Timezone, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Destination{}, domain.ErrNotFound
		}
		return domain.Destination{}, err
	}

	d.ID = uuid.UUID(id.Bytes)
	return d, nil
}
