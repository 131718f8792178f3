package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sharklandy/deapsea-project/internal/models"
	"github.com/sharklandy/deapsea-project/internal/repositories"
	"go.uber.org/zap"
)

type SpeciesService struct {
	speciesRepo *repositories.SpeciesRepo
	obsRepo     *repositories.ObservationRepo
	log         *zap.Logger
}

func NewSpeciesService(speciesRepo *repositories.SpeciesRepo, obsRepo *repositories.ObservationRepo, log *zap.Logger) *SpeciesService {
	return &SpeciesService{speciesRepo: speciesRepo, obsRepo: obsRepo, log: log}
}

func (s *SpeciesService) Create(ctx context.Context, authorID uuid.UUID, name, description string) (*models.Species, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewInvalidError("name is required")
	}
	if description == "" {
		return nil, NewInvalidError("description is required")
	}
	if len([]rune(description)) < models.MinSpeciesDescriptionLen {
		return nil, NewInvalidError(fmt.Sprintf("description must be at least %d characters", models.MinSpeciesDescriptionLen))
	}

	exists, err := s.speciesRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, NewConflictError("species name already exists")
	}

	species := &models.Species{
		AuthorID:    authorID,
		Name:        name,
		Description: description,
		RarityScore: models.ComputeRarityScore(0),
	}
	if err := s.speciesRepo.Create(ctx, species); err != nil {
		return nil, err
	}
	return species, nil
}

func (s *SpeciesService) List(ctx context.Context, sortBy string) ([]models.Species, error) {
	return s.speciesRepo.List(ctx, sortBy == "rarity")
}

func (s *SpeciesService) Get(ctx context.Context, id uuid.UUID) (*models.Species, error) {
	species, err := s.speciesRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NewNotFoundError("species not found")
		}
		return nil, err
	}
	return species, nil
}

func (s *SpeciesService) ListObservations(ctx context.Context, speciesID uuid.UUID) ([]models.Observation, error) {
	return s.obsRepo.ListBySpecies(ctx, speciesID)
}
