package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sharklandy/deapsea-project/internal/models"
)

// TaxonomyRepo reads the classification store. The aggregator is a read-only
// reporting layer; classification rows are maintained out of band.
type TaxonomyRepo struct {
	pool *pgxpool.Pool
}

func NewTaxonomyRepo(pool *pgxpool.Pool) *TaxonomyRepo {
	return &TaxonomyRepo{pool: pool}
}

func (r *TaxonomyRepo) ListFamilies(ctx context.Context) ([]models.Family, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, created_at FROM families ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Family
	for rows.Next() {
		var f models.Family
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

func (r *TaxonomyRepo) ListSubSpecies(ctx context.Context) ([]models.SubSpecies, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, species_id, name, characteristics, family_id, created_at
		FROM sub_species ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.SubSpecies
	for rows.Next() {
		var s models.SubSpecies
		if err := rows.Scan(&s.ID, &s.SpeciesID, &s.Name, &s.Characteristics, &s.FamilyID, &s.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *TaxonomyRepo) ListBranches(ctx context.Context) ([]models.EvolutionaryBranch, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, species_ids, common_ancestor, created_at
		FROM evolutionary_branches ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.EvolutionaryBranch
	for rows.Next() {
		var b models.EvolutionaryBranch
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.SpeciesIDs, &b.CommonAncestor, &b.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
