package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sharklandy/deapsea-project/internal/models"
	"go.uber.org/zap"
)

type userStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error
	IncrementReputation(ctx context.Context, id uuid.UUID, points int) (*models.User, error)
	IncrementReputationOnce(ctx context.Context, id uuid.UUID, points int, deliveryID uuid.UUID) (*models.User, bool, error)
}

// UserService owns the reputation ledger side of the moderation contract:
// reputation adjustment with auto-promotion, plus admin user management.
type UserService struct {
	userRepo userStore
	log      *zap.Logger
}

func NewUserService(userRepo userStore, log *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, log: log}
}

// AdjustReputation applies a delta and the promotion rule in the same call.
// There is no floor: reputation may go negative. The increment is atomic;
// the role follows from (current role, new reputation) alone. A non-nil
// deliveryID makes the delta idempotent: a replayed delivery reads the
// current state instead of applying the points again. The role rule still
// runs on replays so a crash between increment and role update self-heals.
// The second return reports whether this call promoted the user to EXPERT.
func (s *UserService) AdjustReputation(ctx context.Context, id uuid.UUID, points int, deliveryID *uuid.UUID) (*models.User, bool, error) {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, NewNotFoundError("user not found")
		}
		return nil, false, err
	}

	var user *models.User
	var err error
	if deliveryID != nil {
		user, _, err = s.userRepo.IncrementReputationOnce(ctx, id, points, *deliveryID)
	} else {
		user, err = s.userRepo.IncrementReputation(ctx, id, points)
	}
	if err != nil {
		return nil, false, err
	}

	promoted := false
	if newRole := models.RoleForReputation(user.Role, user.Reputation); newRole != user.Role {
		if err := s.userRepo.UpdateRole(ctx, id, newRole); err != nil {
			return nil, false, err
		}
		s.log.Info("role changed by reputation rule",
			zap.String("user_id", id.String()),
			zap.String("from", user.Role),
			zap.String("to", newRole),
			zap.Int("reputation", user.Reputation),
		)
		promoted = newRole == models.RoleExpert
		user.Role = newRole
	}

	return user, promoted, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// SetRole is the explicit admin override; it bypasses the reputation rule.
func (s *UserService) SetRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error) {
	if !models.IsValidRole(role) {
		return nil, NewInvalidError("invalid role, allowed values: USER, EXPERT, ADMIN")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NewNotFoundError("user not found")
		}
		return nil, err
	}

	if err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}
