package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sharklandy/deapsea-project/internal/config"
	"github.com/sharklandy/deapsea-project/internal/models"
	"go.uber.org/zap"
)

type observationStore interface {
	Create(ctx context.Context, o *models.Observation) error
	ListBySpecies(ctx context.Context, speciesID uuid.UUID) ([]models.Observation, error)
	HasRecentByAuthor(ctx context.Context, authorID, speciesID uuid.UUID, since time.Time) (bool, error)
}

type speciesReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Species, error)
}

type ObservationService struct {
	obsRepo     observationStore
	speciesRepo speciesReader
	cfg         *config.Config
	log         *zap.Logger
}

func NewObservationService(obsRepo observationStore, speciesRepo speciesReader, cfg *config.Config, log *zap.Logger) *ObservationService {
	return &ObservationService{obsRepo: obsRepo, speciesRepo: speciesRepo, cfg: cfg, log: log}
}

// Create stores a new observation, always PENDING regardless of what the
// caller supplies. The anti-spam rule is a true sliding window: one creation
// per (author, species) in the trailing window, measured from the wall clock
// at call time.
func (s *ObservationService) Create(ctx context.Context, authorID, speciesID uuid.UUID, description string, dangerLevel *int) (*models.Observation, error) {
	if _, err := s.speciesRepo.GetByID(ctx, speciesID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NewNotFoundError("species not found")
		}
		return nil, err
	}

	if description == "" {
		return nil, NewInvalidError("description is required")
	}
	if dangerLevel != nil && (*dangerLevel < models.MinDangerLevel || *dangerLevel > models.MaxDangerLevel) {
		return nil, NewInvalidError("danger level must be between 1 and 5")
	}

	since := time.Now().Add(-s.cfg.ObservationRateWindow)
	recent, err := s.obsRepo.HasRecentByAuthor(ctx, authorID, speciesID, since)
	if err != nil {
		return nil, err
	}
	if recent {
		return nil, NewTooManyRequestsError("an observation for this species was already submitted within the last 5 minutes")
	}

	obs := &models.Observation{
		SpeciesID:   speciesID,
		AuthorID:    authorID,
		Description: description,
		DangerLevel: dangerLevel,
		Status:      models.ObservationStatusPending,
	}
	if err := s.obsRepo.Create(ctx, obs); err != nil {
		return nil, err
	}
	return obs, nil
}

func (s *ObservationService) ListBySpecies(ctx context.Context, speciesID uuid.UUID) ([]models.Observation, error) {
	return s.obsRepo.ListBySpecies(ctx, speciesID)
}
