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

// ActivityRepo defines the persistence operations for catalog Activities.
type ActivityRepo interface {
	// Create inserts a new activity and returns the persisted record.
	Create(ctx context.Context, a domain.Activity) (domain.Activity, error)

	// GetByID retrieves a single activity by its UUID primary key.
	// Returns domain.ErrNotFound if no activity with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error)

	// ListByDestination returns all activities at a destination ordered by name.
	ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]domain.Activity, error)
}

// pgActivityRepo is the Postgres implementation of ActivityRepo.
type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

func (r *pgActivityRepo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	const q = `
		INSERT INTO activities (destination_id, name, category, description, duration_minutes, estimated_cost)
		VALUES (@destination_id, @name, @category, @description, @duration_minutes, @estimated_cost)
		RETURNING id, destination_id, name, category, description, duration_minutes, estimated_cost, created_at`

	args := pgx.NamedArgs{
		"destination_id":   a.DestinationID,
		"name":             a.Name,
		"category":         a.Category,
		"description":      a.Description,
		"duration_minutes": a.DurationMinutes,
		"estimated_cost":   a.EstimatedCost, // nil becomes NULL
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	const q = `
		SELECT id, destination_id, name, category, description, duration_minutes, estimated_cost, created_at
		FROM activities
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]domain.Activity, error) {
	const q = `
		SELECT id, destination_id, name, category, description, duration_minutes, estimated_cost, created_at
		FROM activities
		WHERE destination_id = @destination_id
		ORDER BY name ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"destination_id": destinationID})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByDestination: %w", err)
	}
	defer rows.Close()

	var out []domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ActivityRepo.ListByDestination: scan: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByDestination: rows: %w", err)
	}

	return out, nil
}

// scanActivity maps a single database row into a domain.Activity.
func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a      domain.Activity
		id     pgtype.UUID
		destID pgtype.UUID
		cost   pgtype.Float8
	)

	err := s.Scan(&id, &destID, &a.Name, &a.Category, &a.Description, &a.DurationMinutes, &cost, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Activity{}, domain.ErrNotFound
		}
		return domain.Activity{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.DestinationID = uuid.UUID(destID.Bytes)
	if cost.Valid {
		c := cost.Float64
		a.EstimatedCost = &c
	}

	return a, nil
}
