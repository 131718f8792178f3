package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sharklandy/deapsea-project/internal/models"
	"github.com/sharklandy/deapsea-project/internal/repositories"
	"go.uber.org/zap"
)

// RarityService keeps species rarity scores in sync with their validated
// observation counts. The score is always rebuilt from a full recount so it
// stays correct under concurrent or out-of-order triggers and self-heals
// from drift.
type RarityService struct {
	obsRepo     *repositories.ObservationRepo
	speciesRepo *repositories.SpeciesRepo
	log         *zap.Logger
}

func NewRarityService(obsRepo *repositories.ObservationRepo, speciesRepo *repositories.SpeciesRepo, log *zap.Logger) *RarityService {
	return &RarityService{obsRepo: obsRepo, speciesRepo: speciesRepo, log: log}
}

func (s *RarityService) Recompute(ctx context.Context, speciesID uuid.UUID) (float64, error) {
	count, err := s.obsRepo.CountValidated(ctx, speciesID)
	if err != nil {
		return 0, err
	}
	score := models.ComputeRarityScore(count)
	if err := s.speciesRepo.UpdateRarityScore(ctx, speciesID, score); err != nil {
		return 0, err
	}
	return score, nil
}

// RecomputeAll sweeps every species. Used by the worker as a periodic
// repair pass; per-species failures are logged and skipped.
func (s *RarityService) RecomputeAll(ctx context.Context) error {
	ids, err := s.speciesRepo.ListIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := s.Recompute(ctx, id); err != nil {
			s.log.Warn("rarity recompute failed", zap.String("species_id", id.String()), zap.Error(err))
		}
	}
	return nil
}
