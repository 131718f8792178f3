package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sharklandy/deapsea-project/internal/config"
	"github.com/sharklandy/deapsea-project/internal/events"
	"github.com/sharklandy/deapsea-project/internal/models"
	"github.com/sharklandy/deapsea-project/internal/repositories"
	"go.uber.org/zap"
)

func pendingObservation(authorID uuid.UUID) *models.Observation {
	return &models.Observation{
		ID:          uuid.New(),
		SpeciesID:   uuid.New(),
		AuthorID:    authorID,
		Description: "a long silver shape gliding past the reef wall",
		Status:      models.ObservationStatusPending,
	}
}

func TestDecide_Validate(t *testing.T) {
	author := uuid.New()
	moderator := uuid.New()

	outcome, err := decide(pendingObservation(author), moderator, models.RoleExpert, models.ObservationStatusValidated)
	if err != nil {
		t.Fatal(err)
	}

	if outcome.newStatus != models.ObservationStatusValidated {
		t.Errorf("newStatus = %q, want VALIDATED", outcome.newStatus)
	}
	if outcome.actionType != models.ActionValidate {
		t.Errorf("actionType = %q, want %q", outcome.actionType, models.ActionValidate)
	}
	if outcome.authorDelta != models.ReputationValidatedAuthor {
		t.Errorf("authorDelta = %d, want %d", outcome.authorDelta, models.ReputationValidatedAuthor)
	}
	if outcome.moderatorDelta != models.ReputationModerator {
		t.Errorf("moderatorDelta = %d, want %d", outcome.moderatorDelta, models.ReputationModerator)
	}
	if !outcome.recomputeRarity {
		t.Error("validation must trigger a rarity recompute")
	}
}

func TestDecide_Reject(t *testing.T) {
	author := uuid.New()
	moderator := uuid.New()

	outcome, err := decide(pendingObservation(author), moderator, models.RoleAdmin, models.ObservationStatusRejected)
	if err != nil {
		t.Fatal(err)
	}

	if outcome.actionType != models.ActionReject {
		t.Errorf("actionType = %q, want %q", outcome.actionType, models.ActionReject)
	}
	if outcome.authorDelta != models.ReputationRejectedAuthor {
		t.Errorf("authorDelta = %d, want %d", outcome.authorDelta, models.ReputationRejectedAuthor)
	}
	if outcome.moderatorDelta != 0 {
		t.Errorf("moderatorDelta = %d, want 0 on rejection", outcome.moderatorDelta)
	}
	if outcome.recomputeRarity {
		t.Error("rejection must not trigger a rarity recompute")
	}
}

func TestDecide_RoleCheckedFirst(t *testing.T) {
	// A plain user moderating a missing observation gets 403, not 404.
	_, err := decide(nil, uuid.New(), models.RoleUser, models.ObservationStatusValidated)
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestDecide_NotFoundBeforeSelfCheck(t *testing.T) {
	_, err := decide(nil, uuid.New(), models.RoleExpert, models.ObservationStatusValidated)
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestDecide_SelfValidationForbidden(t *testing.T) {
	author := uuid.New()
	obs := pendingObservation(author)
	obs.Status = models.ObservationStatusValidated // already moderated, but self check fires first

	_, err := decide(obs, author, models.RoleExpert, models.ObservationStatusValidated)
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestDecide_SelfRejectionAllowed(t *testing.T) {
	author := uuid.New()

	outcome, err := decide(pendingObservation(author), author, models.RoleExpert, models.ObservationStatusRejected)
	if err != nil {
		t.Fatalf("self rejection must be allowed, got %v", err)
	}
	if outcome.authorDelta != models.ReputationRejectedAuthor {
		t.Errorf("authorDelta = %d, want %d", outcome.authorDelta, models.ReputationRejectedAuthor)
	}
}

func TestDecide_AlreadyModerated(t *testing.T) {
	for _, status := range []string{models.ObservationStatusValidated, models.ObservationStatusRejected} {
		obs := pendingObservation(uuid.New())
		obs.Status = status

		_, err := decide(obs, uuid.New(), models.RoleAdmin, models.ObservationStatusValidated)
		se, ok := AsServiceError(err)
		if !ok || se.Code != ErrorConflict {
			t.Errorf("status %s: expected conflict, got %v", status, err)
		}
	}
}

func TestDecide_UserCannotModerate(t *testing.T) {
	_, err := decide(pendingObservation(uuid.New()), uuid.New(), models.RoleUser, models.ObservationStatusRejected)
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

// decisionStoreStub mirrors the conditional-write semantics of the SQL
// store in memory: decisions only land on PENDING rows, delete/restore only
// flip the soft-delete triple, and every successful write appends exactly
// one audit entry.
type decisionStoreStub struct {
	obs      models.Observation
	writes   []repositories.DecisionWrite
	applyErr error
}

func (m *decisionStoreStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Observation, error) {
	o := m.obs
	return &o, nil
}

func (m *decisionStoreStub) ApplyDecision(ctx context.Context, w repositories.DecisionWrite) (*models.Observation, error) {
	if m.applyErr != nil {
		return nil, m.applyErr
	}
	if m.obs.Status != models.ObservationStatusPending {
		return nil, pgx.ErrNoRows
	}
	actor := w.ActorID
	now := time.Now()
	m.obs.Status = w.NewStatus
	m.obs.ValidatedBy = &actor
	m.obs.ValidatedAt = &now
	m.writes = append(m.writes, w)
	o := m.obs
	return &o, nil
}

func (m *decisionStoreStub) SoftDelete(ctx context.Context, w repositories.DecisionWrite) (*models.Observation, error) {
	if m.obs.Deleted {
		return nil, pgx.ErrNoRows
	}
	actor := w.ActorID
	now := time.Now()
	m.obs.Deleted = true
	m.obs.DeletedAt = &now
	m.obs.DeletedBy = &actor
	m.writes = append(m.writes, w)
	o := m.obs
	return &o, nil
}

func (m *decisionStoreStub) Restore(ctx context.Context, w repositories.DecisionWrite) (*models.Observation, error) {
	if !m.obs.Deleted {
		return nil, pgx.ErrNoRows
	}
	m.obs.Deleted = false
	m.obs.DeletedAt = nil
	m.obs.DeletedBy = nil
	m.writes = append(m.writes, w)
	o := m.obs
	return &o, nil
}

type rarityCounter struct{ calls int }

func (r *rarityCounter) Recompute(ctx context.Context, speciesID uuid.UUID) (float64, error) {
	r.calls++
	return 1, nil
}

type staticResolver struct{}

func (staticResolver) Me(ctx context.Context, token string) (*LedgerUserInfo, error) {
	return &LedgerUserInfo{Username: "jcousteau"}, nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(ctx context.Context, stream string, event events.Event) error {
	return nil
}

func newModerationService(store *decisionStoreStub, rarity *rarityCounter) *ModerationService {
	return NewModerationService(store, store, rarity, staticResolver{}, nopPublisher{}, &config.Config{}, zap.NewNop())
}

func TestModerationService_ValidateFlow(t *testing.T) {
	author := uuid.New()
	moderator := uuid.New()
	store := &decisionStoreStub{obs: *pendingObservation(author)}
	rarity := &rarityCounter{}
	svc := newModerationService(store, rarity)

	updated, err := svc.Validate(context.Background(), store.obs.ID, moderator, models.RoleExpert, "token")
	if err != nil {
		t.Fatal(err)
	}

	if updated.Status != models.ObservationStatusValidated {
		t.Errorf("status = %q, want VALIDATED", updated.Status)
	}
	if len(store.writes) != 1 {
		t.Fatalf("writes = %d, want exactly 1 audit entry", len(store.writes))
	}
	w := store.writes[0]
	if w.ActionType != models.ActionValidate {
		t.Errorf("actionType = %q, want %q", w.ActionType, models.ActionValidate)
	}
	if w.ActorUsername != "jcousteau" {
		t.Errorf("actorUsername = %q, want %q", w.ActorUsername, "jcousteau")
	}
	if len(w.Reputation) != 2 {
		t.Fatalf("reputation changes = %d, want 2", len(w.Reputation))
	}
	if w.Reputation[0].UserID != author || w.Reputation[0].Points != models.ReputationValidatedAuthor {
		t.Errorf("author delta = %+v, want %d for author", w.Reputation[0], models.ReputationValidatedAuthor)
	}
	if w.Reputation[1].UserID != moderator || w.Reputation[1].Points != models.ReputationModerator {
		t.Errorf("moderator delta = %+v, want %d for moderator", w.Reputation[1], models.ReputationModerator)
	}
	if rarity.calls != 1 {
		t.Errorf("rarity recomputes = %d, want 1", rarity.calls)
	}
}

func TestModerationService_RejectFlow(t *testing.T) {
	author := uuid.New()
	store := &decisionStoreStub{obs: *pendingObservation(author)}
	rarity := &rarityCounter{}
	svc := newModerationService(store, rarity)

	updated, err := svc.Reject(context.Background(), store.obs.ID, uuid.New(), models.RoleAdmin, "token")
	if err != nil {
		t.Fatal(err)
	}

	if updated.Status != models.ObservationStatusRejected {
		t.Errorf("status = %q, want REJECTED", updated.Status)
	}
	if len(store.writes) != 1 {
		t.Fatalf("writes = %d, want 1", len(store.writes))
	}
	w := store.writes[0]
	if len(w.Reputation) != 1 || w.Reputation[0].UserID != author || w.Reputation[0].Points != models.ReputationRejectedAuthor {
		t.Errorf("reputation changes = %+v, want only author %d", w.Reputation, models.ReputationRejectedAuthor)
	}
	if rarity.calls != 0 {
		t.Errorf("rarity recomputes = %d, want 0 on rejection", rarity.calls)
	}
}

func TestModerationService_ConcurrentDecisionConflict(t *testing.T) {
	// The row was PENDING at read time but another moderator won the
	// conditional write; the store surfaces that as pgx.ErrNoRows.
	store := &decisionStoreStub{obs: *pendingObservation(uuid.New()), applyErr: pgx.ErrNoRows}
	svc := newModerationService(store, &rarityCounter{})

	_, err := svc.Validate(context.Background(), store.obs.ID, uuid.New(), models.RoleExpert, "token")
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(store.writes) != 0 {
		t.Errorf("writes = %d, want 0 on a lost race", len(store.writes))
	}
}

func TestModerationService_PreconditionFailureWritesNothing(t *testing.T) {
	author := uuid.New()

	tests := []struct {
		name  string
		actor uuid.UUID
		role  string
	}{
		{"self validation", author, models.RoleExpert},
		{"insufficient role", uuid.New(), models.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &decisionStoreStub{obs: *pendingObservation(author)}
			svc := newModerationService(store, &rarityCounter{})

			_, err := svc.Validate(context.Background(), store.obs.ID, tt.actor, tt.role, "token")
			se, ok := AsServiceError(err)
			if !ok || se.Code != ErrorForbidden {
				t.Fatalf("expected forbidden, got %v", err)
			}
			if len(store.writes) != 0 {
				t.Errorf("writes = %d, want no audit entry on a failed precondition", len(store.writes))
			}
			if store.obs.Status != models.ObservationStatusPending {
				t.Errorf("status = %q, must stay PENDING", store.obs.Status)
			}
		})
	}
}

func TestModerationService_DeleteRestorePreservesValidation(t *testing.T) {
	author := uuid.New()
	moderator := uuid.New()
	validatedAt := time.Now().Add(-time.Hour)

	obs := pendingObservation(author)
	obs.Status = models.ObservationStatusValidated
	obs.ValidatedBy = &moderator
	obs.ValidatedAt = &validatedAt

	store := &decisionStoreStub{obs: *obs}
	rarity := &rarityCounter{}
	svc := newModerationService(store, rarity)

	admin := uuid.New()

	deleted, err := svc.SoftDelete(context.Background(), obs.ID, admin, models.RoleAdmin, "token")
	if err != nil {
		t.Fatal(err)
	}
	if !deleted.Deleted {
		t.Error("observation not marked deleted")
	}
	if deleted.Status != models.ObservationStatusValidated {
		t.Errorf("status = %q, delete must not touch moderation state", deleted.Status)
	}
	if deleted.ValidatedBy == nil || *deleted.ValidatedBy != moderator {
		t.Error("validatedBy changed by delete")
	}
	if deleted.ValidatedAt == nil || !deleted.ValidatedAt.Equal(validatedAt) {
		t.Error("validatedAt changed by delete")
	}

	// Double delete conflicts.
	_, err = svc.SoftDelete(context.Background(), obs.ID, admin, models.RoleAdmin, "token")
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorConflict {
		t.Fatalf("expected conflict on double delete, got %v", err)
	}

	restored, err := svc.Restore(context.Background(), obs.ID, admin, models.RoleAdmin, "token")
	if err != nil {
		t.Fatal(err)
	}
	if restored.Deleted || restored.DeletedAt != nil || restored.DeletedBy != nil {
		t.Error("soft-delete triple not cleared by restore")
	}
	if restored.Status != models.ObservationStatusValidated {
		t.Errorf("status = %q after restore, want VALIDATED", restored.Status)
	}
	if restored.ValidatedBy == nil || *restored.ValidatedBy != moderator {
		t.Error("validatedBy changed by restore")
	}
	if restored.ValidatedAt == nil || !restored.ValidatedAt.Equal(validatedAt) {
		t.Error("validatedAt changed by restore")
	}

	// Restoring a live observation conflicts.
	_, err = svc.Restore(context.Background(), obs.ID, admin, models.RoleAdmin, "token")
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorConflict {
		t.Fatalf("expected conflict on restoring a live observation, got %v", err)
	}

	if len(store.writes) != 2 {
		t.Fatalf("writes = %d, want DELETE and RESTORE only", len(store.writes))
	}
	if store.writes[0].ActionType != models.ActionDelete || store.writes[1].ActionType != models.ActionRestore {
		t.Errorf("audit actions = %q, %q; want DELETE then RESTORE", store.writes[0].ActionType, store.writes[1].ActionType)
	}
	if rarity.calls != 0 {
		t.Errorf("rarity recomputes = %d, want 0 for delete/restore", rarity.calls)
	}
}

func TestTargetSnippet(t *testing.T) {
	short := "brief sighting"
	if got := targetSnippet(short); got != short {
		t.Errorf("short description must pass through, got %q", got)
	}

	long := "an extremely detailed account of a deep sea creature drifting slowly through the water column"
	got := targetSnippet(long)
	if len([]rune(got)) != targetDetailsMaxLen+3 {
		t.Errorf("snippet length = %d runes, want %d", len([]rune(got)), targetDetailsMaxLen+3)
	}
	if got[len(got)-3:] != "..." {
		t.Errorf("snippet must end with ellipsis, got %q", got)
	}
}
