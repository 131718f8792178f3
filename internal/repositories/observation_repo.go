package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sharklandy/deapsea-project/internal/models"
)

type ObservationRepo struct {
	pool *pgxpool.Pool
}

func NewObservationRepo(pool *pgxpool.Pool) *ObservationRepo {
	return &ObservationRepo{pool: pool}
}

const observationColumns = `
	id, species_id, author_id, description, danger_level, status,
	validated_by, validated_at, deleted, deleted_at, deleted_by, created_at`

func scanObservation(row interface{ Scan(...any) error }, o *models.Observation) error {
	return row.Scan(&o.ID, &o.SpeciesID, &o.AuthorID, &o.Description, &o.DangerLevel, &o.Status,
		&o.ValidatedBy, &o.ValidatedAt, &o.Deleted, &o.DeletedAt, &o.DeletedBy, &o.CreatedAt)
}

func (r *ObservationRepo) Create(ctx context.Context, o *models.Observation) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO observations (species_id, author_id, description, danger_level, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, o.SpeciesID, o.AuthorID, o.Description, o.DangerLevel, o.Status).Scan(&o.ID, &o.CreatedAt)
}

func (r *ObservationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Observation, error) {
	var o models.Observation
	err := scanObservation(r.pool.QueryRow(ctx, `
		SELECT `+observationColumns+` FROM observations WHERE id = $1
	`, id), &o)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ObservationRepo) ListBySpecies(ctx context.Context, speciesID uuid.UUID) ([]models.Observation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+observationColumns+` FROM observations
		WHERE species_id = $1 ORDER BY created_at
	`, speciesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Observation
	for rows.Next() {
		var o models.Observation
		if err := scanObservation(rows, &o); err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func (r *ObservationRepo) ListIDsBySpecies(ctx context.Context, speciesID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM observations WHERE species_id = $1`, speciesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// HasRecentByAuthor reports whether the author already submitted an
// observation for this species inside the sliding window starting at since.
func (r *ObservationRepo) HasRecentByAuthor(ctx context.Context, authorID, speciesID uuid.UUID, since time.Time) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM observations
			WHERE author_id = $1 AND species_id = $2 AND created_at >= $3
		)
	`, authorID, speciesID, since).Scan(&exists)
	return exists, err
}

// CountValidated is the recount behind the rarity score; soft-deleted rows
// still count, matching the audit-preserving delete semantics.
func (r *ObservationRepo) CountValidated(ctx context.Context, speciesID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM observations WHERE species_id = $1 AND status = $2
	`, speciesID, models.ObservationStatusValidated).Scan(&n)
	return n, err
}
