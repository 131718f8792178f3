package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sharklandy/deapsea-project/internal/models"
	"github.com/sharklandy/deapsea-project/internal/repositories"
	"go.uber.org/zap"
)

const defaultHistoryPageSize = 100

// NormalizePage clamps caller-supplied paging values so they can flow into
// LIMIT/OFFSET directly; a negative offset is a Postgres error, not an empty
// page.
func NormalizePage(limit, skip int) (int, int) {
	if limit <= 0 {
		limit = defaultHistoryPageSize
	}
	if skip < 0 {
		skip = 0
	}
	return limit, skip
}

type HistoryService struct {
	historyRepo *repositories.HistoryRepo
	obsRepo     *repositories.ObservationRepo
	log         *zap.Logger
}

func NewHistoryService(historyRepo *repositories.HistoryRepo, obsRepo *repositories.ObservationRepo, log *zap.Logger) *HistoryService {
	return &HistoryService{historyRepo: historyRepo, obsRepo: obsRepo, log: log}
}

// Global returns a page of the audit log plus the unfiltered total, newest
// first.
func (s *HistoryService) Global(ctx context.Context, limit, skip int) ([]models.ActionHistory, int, error) {
	limit, skip = NormalizePage(limit, skip)
	total, err := s.historyRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	entries, err := s.historyRepo.List(ctx, limit, skip)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (s *HistoryService) ByActor(ctx context.Context, userID uuid.UUID) ([]models.ActionHistory, error) {
	return s.historyRepo.ListByActor(ctx, userID)
}

// BySpecies collects every moderation action taken on the species'
// observations. The audit rows reference observations, not species, so the
// observation ids are resolved first.
func (s *HistoryService) BySpecies(ctx context.Context, speciesID uuid.UUID) ([]models.ActionHistory, error) {
	ids, err := s.obsRepo.ListIDsBySpecies(ctx, speciesID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return s.historyRepo.ListByTargets(ctx, models.TargetObservation, ids)
}
