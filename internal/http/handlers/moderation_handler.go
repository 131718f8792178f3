package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sharklandy/deapsea-project/internal/middleware"
	"github.com/sharklandy/deapsea-project/internal/services"
	"go.uber.org/zap"
)

type ModerationHandler struct {
	modSvc *services.ModerationService
	log    *zap.Logger
}

func NewModerationHandler(modSvc *services.ModerationService, log *zap.Logger) *ModerationHandler {
	return &ModerationHandler{modSvc: modSvc, log: log}
}

func (h *ModerationHandler) Validate(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}

	obs, err := h.modSvc.Validate(c.Context(), id, middleware.GetUserID(c), middleware.GetUserRole(c), middleware.GetToken(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(obs)
}

func (h *ModerationHandler) Reject(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}

	obs, err := h.modSvc.Reject(c.Context(), id, middleware.GetUserID(c), middleware.GetUserRole(c), middleware.GetToken(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(obs)
}

func (h *ModerationHandler) SoftDelete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}

	obs, err := h.modSvc.SoftDelete(c.Context(), id, middleware.GetUserID(c), middleware.GetUserRole(c), middleware.GetToken(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(obs)
}

func (h *ModerationHandler) Restore(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}

	obs, err := h.modSvc.Restore(c.Context(), id, middleware.GetUserID(c), middleware.GetUserRole(c), middleware.GetToken(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(obs)
}
