package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sharklandy/deapsea-project/internal/config"
	"github.com/sharklandy/deapsea-project/internal/events"
	"github.com/sharklandy/deapsea-project/internal/models"
	"github.com/sharklandy/deapsea-project/internal/rbac"
	"github.com/sharklandy/deapsea-project/internal/repositories"
	"go.uber.org/zap"
)

const targetDetailsMaxLen = 50

// Narrow views over the collaborators a moderation decision touches.
type observationReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Observation, error)
}

type decisionStore interface {
	ApplyDecision(ctx context.Context, w repositories.DecisionWrite) (*models.Observation, error)
	SoftDelete(ctx context.Context, w repositories.DecisionWrite) (*models.Observation, error)
	Restore(ctx context.Context, w repositories.DecisionWrite) (*models.Observation, error)
}

type rarityRecomputer interface {
	Recompute(ctx context.Context, speciesID uuid.UUID) (float64, error)
}

type actorResolver interface {
	Me(ctx context.Context, token string) (*LedgerUserInfo, error)
}

// ModerationService drives the observation state machine. Every decision is
// persisted through a single conditional transaction, so two moderators
// racing on the same observation resolve to exactly one winner.
type ModerationService struct {
	obsRepo   observationReader
	modRepo   decisionStore
	rarity    rarityRecomputer
	ledger    actorResolver
	publisher events.Publisher
	cfg       *config.Config
	log       *zap.Logger
}

func NewModerationService(
	obsRepo observationReader,
	modRepo decisionStore,
	rarity rarityRecomputer,
	ledger actorResolver,
	publisher events.Publisher,
	cfg *config.Config,
	log *zap.Logger,
) *ModerationService {
	return &ModerationService{
		obsRepo:   obsRepo,
		modRepo:   modRepo,
		rarity:    rarity,
		ledger:    ledger,
		publisher: publisher,
		cfg:       cfg,
		log:       log,
	}
}

type decisionOutcome struct {
	newStatus       string
	actionType      string
	authorDelta     int
	moderatorDelta  int
	recomputeRarity bool
}

// decide checks every moderation precondition in a fixed order: role, then
// existence, then authorship, then state. A nil obs means not found. Experts
// may reject their own observations but never validate them.
func decide(obs *models.Observation, actorID uuid.UUID, actorRole, newStatus string) (decisionOutcome, error) {
	if !rbac.HasPermission(actorRole, rbac.PermModerateObservation) {
		return decisionOutcome{}, NewForbiddenError("insufficient permissions to moderate observations")
	}
	if obs == nil {
		return decisionOutcome{}, NewNotFoundError("observation not found")
	}
	if newStatus == models.ObservationStatusValidated && obs.AuthorID == actorID {
		return decisionOutcome{}, NewForbiddenError("cannot validate your own observation")
	}
	if !models.IsValidTransition(obs.Status, newStatus) {
		return decisionOutcome{}, NewConflictError("observation has already been moderated")
	}

	switch newStatus {
	case models.ObservationStatusValidated:
		return decisionOutcome{
			newStatus:       newStatus,
			actionType:      models.ActionValidate,
			authorDelta:     models.ReputationValidatedAuthor,
			moderatorDelta:  models.ReputationModerator,
			recomputeRarity: true,
		}, nil
	case models.ObservationStatusRejected:
		return decisionOutcome{
			newStatus:   newStatus,
			actionType:  models.ActionReject,
			authorDelta: models.ReputationRejectedAuthor,
		}, nil
	default:
		return decisionOutcome{}, NewInvalidError("invalid moderation status")
	}
}

func (s *ModerationService) Validate(ctx context.Context, obsID, actorID uuid.UUID, actorRole, token string) (*models.Observation, error) {
	return s.moderate(ctx, obsID, actorID, actorRole, token, models.ObservationStatusValidated)
}

func (s *ModerationService) Reject(ctx context.Context, obsID, actorID uuid.UUID, actorRole, token string) (*models.Observation, error) {
	return s.moderate(ctx, obsID, actorID, actorRole, token, models.ObservationStatusRejected)
}

func (s *ModerationService) moderate(ctx context.Context, obsID, actorID uuid.UUID, actorRole, token, newStatus string) (*models.Observation, error) {
	obs, err := s.fetch(ctx, obsID)
	if err != nil {
		return nil, err
	}

	outcome, err := decide(obs, actorID, actorRole, newStatus)
	if err != nil {
		return nil, err
	}

	w := repositories.DecisionWrite{
		ObservationID: obsID,
		NewStatus:     outcome.newStatus,
		ActorID:       actorID,
		ActorUsername: s.actorUsername(ctx, token),
		ActorRole:     actorRole,
		ActionType:    outcome.actionType,
		TargetDetails: targetSnippet(obs.Description),
	}
	w.Reputation = append(w.Reputation, repositories.ReputationChange{UserID: obs.AuthorID, Points: outcome.authorDelta})
	if outcome.moderatorDelta != 0 {
		w.Reputation = append(w.Reputation, repositories.ReputationChange{UserID: actorID, Points: outcome.moderatorDelta})
	}

	updated, err := s.modRepo.ApplyDecision(ctx, w)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NewConflictError("observation has already been moderated")
		}
		return nil, err
	}

	// Rarity follows the decision but is not part of it; the periodic
	// resync sweep repairs any miss.
	if outcome.recomputeRarity {
		if _, err := s.rarity.Recompute(ctx, updated.SpeciesID); err != nil {
			s.log.Warn("rarity recompute after validation failed",
				zap.String("species_id", updated.SpeciesID.String()),
				zap.Error(err),
			)
		}
	}

	s.publish(events.EventObservationModerated, updated)
	return updated, nil
}

// SoftDelete hides an observation without touching its moderation state or
// the species rarity score.
func (s *ModerationService) SoftDelete(ctx context.Context, obsID, actorID uuid.UUID, actorRole, token string) (*models.Observation, error) {
	if !rbac.HasPermission(actorRole, rbac.PermSoftDeleteObservation) {
		return nil, NewForbiddenError("insufficient permissions to delete observations")
	}

	obs, err := s.fetch(ctx, obsID)
	if err != nil {
		return nil, err
	}
	if obs == nil {
		return nil, NewNotFoundError("observation not found")
	}
	if obs.Deleted {
		return nil, NewConflictError("observation is already deleted")
	}

	updated, err := s.modRepo.SoftDelete(ctx, repositories.DecisionWrite{
		ObservationID: obsID,
		ActorID:       actorID,
		ActorUsername: s.actorUsername(ctx, token),
		ActorRole:     actorRole,
		ActionType:    models.ActionDelete,
		TargetDetails: targetSnippet(obs.Description),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NewConflictError("observation is already deleted")
		}
		return nil, err
	}

	s.publish(events.EventObservationDeleted, updated)
	return updated, nil
}

// Restore brings back a soft-deleted observation with its prior moderation
// state intact. Validated observations kept their rarity contribution while
// hidden, so no recompute happens here either.
func (s *ModerationService) Restore(ctx context.Context, obsID, actorID uuid.UUID, actorRole, token string) (*models.Observation, error) {
	if !rbac.HasPermission(actorRole, rbac.PermRestoreObservation) {
		return nil, NewForbiddenError("insufficient permissions to restore observations")
	}

	obs, err := s.fetch(ctx, obsID)
	if err != nil {
		return nil, err
	}
	if obs == nil {
		return nil, NewNotFoundError("observation not found")
	}
	if !obs.Deleted {
		return nil, NewConflictError("observation is not deleted")
	}

	updated, err := s.modRepo.Restore(ctx, repositories.DecisionWrite{
		ObservationID: obsID,
		ActorID:       actorID,
		ActorUsername: s.actorUsername(ctx, token),
		ActorRole:     actorRole,
		ActionType:    models.ActionRestore,
		TargetDetails: targetSnippet(obs.Description),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NewConflictError("observation is not deleted")
		}
		return nil, err
	}

	s.publish(events.EventObservationRestored, updated)
	return updated, nil
}

func (s *ModerationService) fetch(ctx context.Context, obsID uuid.UUID) (*models.Observation, error) {
	obs, err := s.obsRepo.GetByID(ctx, obsID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return obs, nil
}

// actorUsername denormalizes the actor's username into the audit entry. The
// ledger being unreachable must not block a decision, so failures degrade to
// a placeholder.
func (s *ModerationService) actorUsername(ctx context.Context, token string) string {
	info, err := s.ledger.Me(ctx, token)
	if err != nil {
		s.log.Warn("failed to resolve actor username", zap.Error(err))
		return "Unknown"
	}
	return info.Username
}

func (s *ModerationService) publish(eventType string, obs *models.Observation) {
	go func() {
		event := events.Event{
			Type: eventType,
			Payload: map[string]any{
				"observationId": obs.ID.String(),
				"speciesId":     obs.SpeciesID.String(),
				"status":        obs.Status,
			},
		}
		if err := s.publisher.Publish(context.Background(), events.StreamObservations, event); err != nil {
			s.log.Warn("failed to publish observation event", zap.String("type", eventType), zap.Error(err))
		}
	}()
}

func targetSnippet(description string) string {
	runes := []rune(description)
	if len(runes) <= targetDetailsMaxLen {
		return description
	}
	return string(runes[:targetDetailsMaxLen]) + "..."
}
