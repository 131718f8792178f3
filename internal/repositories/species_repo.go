package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sharklandy/deapsea-project/internal/models"
)

type SpeciesRepo struct {
	pool *pgxpool.Pool
}

func NewSpeciesRepo(pool *pgxpool.Pool) *SpeciesRepo {
	return &SpeciesRepo{pool: pool}
}

func (r *SpeciesRepo) Create(ctx context.Context, s *models.Species) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO species (author_id, name, description, rarity_score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, s.AuthorID, s.Name, s.Description, s.RarityScore).Scan(&s.ID, &s.CreatedAt)
}

func (r *SpeciesRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Species, error) {
	var s models.Species
	err := r.pool.QueryRow(ctx, `
		SELECT id, author_id, name, description, rarity_score, created_at
		FROM species WHERE id = $1
	`, id).Scan(&s.ID, &s.AuthorID, &s.Name, &s.Description, &s.RarityScore, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SpeciesRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM species WHERE name = $1)
	`, name).Scan(&exists)
	return exists, err
}

func (r *SpeciesRepo) List(ctx context.Context, sortByRarity bool) ([]models.Species, error) {
	query := `
		SELECT id, author_id, name, description, rarity_score, created_at
		FROM species ORDER BY created_at`
	if sortByRarity {
		query = `
		SELECT id, author_id, name, description, rarity_score, created_at
		FROM species ORDER BY rarity_score DESC`
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Species
	for rows.Next() {
		var s models.Species
		if err := rows.Scan(&s.ID, &s.AuthorID, &s.Name, &s.Description, &s.RarityScore, &s.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SpeciesRepo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM species`)
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

func (r *SpeciesRepo) UpdateRarityScore(ctx context.Context, id uuid.UUID, score float64) error {
	_, err := r.pool.Exec(ctx, `UPDATE species SET rarity_score = $2 WHERE id = $1`, id, score)
	return err
}
