package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sharklandy/deapsea-project/internal/models"
	"go.uber.org/zap"
)

type userStoreStub struct {
	user       models.User
	deliveries map[uuid.UUID]bool
}

func (s *userStoreStub) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if id != s.user.ID {
		return nil, pgx.ErrNoRows
	}
	u := s.user
	return &u, nil
}

func (s *userStoreStub) List(ctx context.Context) ([]models.User, error) {
	return []models.User{s.user}, nil
}

func (s *userStoreStub) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	s.user.Role = role
	return nil
}

func (s *userStoreStub) IncrementReputation(ctx context.Context, id uuid.UUID, points int) (*models.User, error) {
	s.user.Reputation += points
	u := s.user
	return &u, nil
}

func (s *userStoreStub) IncrementReputationOnce(ctx context.Context, id uuid.UUID, points int, deliveryID uuid.UUID) (*models.User, bool, error) {
	if s.deliveries[deliveryID] {
		u := s.user
		return &u, false, nil
	}
	s.deliveries[deliveryID] = true
	s.user.Reputation += points
	u := s.user
	return &u, true, nil
}

func TestUserService_AdjustReputationDeliveryReplay(t *testing.T) {
	store := &userStoreStub{
		user:       models.User{ID: uuid.New(), Role: models.RoleUser, Reputation: 7},
		deliveries: map[uuid.UUID]bool{},
	}
	svc := NewUserService(store, zap.NewNop())
	ctx := context.Background()

	d1 := uuid.New()
	user, promoted, err := svc.AdjustReputation(ctx, store.user.ID, 3, &d1)
	if err != nil {
		t.Fatal(err)
	}
	if user.Reputation != 10 || user.Role != models.RoleExpert || !promoted {
		t.Fatalf("first delivery: reputation=%d role=%q promoted=%v, want 10/EXPERT/true", user.Reputation, user.Role, promoted)
	}

	// A replayed delivery must not apply the points again.
	user, promoted, err = svc.AdjustReputation(ctx, store.user.ID, 3, &d1)
	if err != nil {
		t.Fatal(err)
	}
	if user.Reputation != 10 {
		t.Errorf("replay changed reputation to %d, want 10", user.Reputation)
	}
	if promoted {
		t.Error("replay reported a promotion")
	}
	if user.Role != models.RoleExpert {
		t.Errorf("replay changed role to %q", user.Role)
	}

	// A fresh delivery still lands, and the demotion rule applies.
	d2 := uuid.New()
	user, promoted, err = svc.AdjustReputation(ctx, store.user.ID, -1, &d2)
	if err != nil {
		t.Fatal(err)
	}
	if user.Reputation != 9 || user.Role != models.RoleUser || promoted {
		t.Fatalf("demotion: reputation=%d role=%q promoted=%v, want 9/USER/false", user.Reputation, user.Role, promoted)
	}
}

func TestUserService_AdjustReputationWithoutDeliveryID(t *testing.T) {
	store := &userStoreStub{
		user:       models.User{ID: uuid.New(), Role: models.RoleUser, Reputation: 0},
		deliveries: map[uuid.UUID]bool{},
	}
	svc := NewUserService(store, zap.NewNop())

	user, promoted, err := svc.AdjustReputation(context.Background(), store.user.ID, 4, nil)
	if err != nil {
		t.Fatal(err)
	}
	if user.Reputation != 4 || promoted {
		t.Errorf("reputation=%d promoted=%v, want 4/false", user.Reputation, promoted)
	}
}

func TestUserService_AdjustReputationUnknownUser(t *testing.T) {
	store := &userStoreStub{
		user:       models.User{ID: uuid.New()},
		deliveries: map[uuid.UUID]bool{},
	}
	svc := NewUserService(store, zap.NewNop())

	_, _, err := svc.AdjustReputation(context.Background(), uuid.New(), 3, nil)
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}
