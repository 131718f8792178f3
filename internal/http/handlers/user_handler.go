package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sharklandy/deapsea-project/internal/http/dto"
	"github.com/sharklandy/deapsea-project/internal/services"
	"go.uber.org/zap"
)

type UserHandler struct {
	userSvc *services.UserService
	log     *zap.Logger
}

func NewUserHandler(userSvc *services.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{userSvc: userSvc, log: log}
}

// AdjustReputation is the internal delivery endpoint the moderation side's
// outbox dispatcher posts to.
func (h *UserHandler) AdjustReputation(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}

	var req dto.AdjustReputationRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, h.log, services.NewInvalidError("invalid request body"))
	}
	if req.Points == nil {
		return respondError(c, h.log, services.NewInvalidError("points is required"))
	}

	user, promoted, err := h.userSvc.AdjustReputation(c.Context(), id, *req.Points, req.DeliveryID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.ReputationResponse{
		UserID:     user.ID,
		Reputation: user.Reputation,
		Role:       user.Role,
		Promoted:   promoted,
	})
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userSvc.List(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(users)
}

func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}

	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, h.log, services.NewInvalidError("invalid request body"))
	}

	user, err := h.userSvc.SetRole(c.Context(), id, req.Role)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(user)
}
