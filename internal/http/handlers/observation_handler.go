package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sharklandy/deapsea-project/internal/http/dto"
	"github.com/sharklandy/deapsea-project/internal/middleware"
	"github.com/sharklandy/deapsea-project/internal/services"
	"go.uber.org/zap"
)

type ObservationHandler struct {
	obsSvc *services.ObservationService
	log    *zap.Logger
}

func NewObservationHandler(obsSvc *services.ObservationService, log *zap.Logger) *ObservationHandler {
	return &ObservationHandler{obsSvc: obsSvc, log: log}
}

func (h *ObservationHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateObservationRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, h.log, services.NewInvalidError("invalid request body"))
	}

	obs, err := h.obsSvc.Create(c.Context(), middleware.GetUserID(c), req.SpeciesID, req.Description, req.DangerLevel)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(obs)
}

func (h *ObservationHandler) ListBySpecies(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}

	observations, err := h.obsSvc.ListBySpecies(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(observations)
}
