package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sharklandy/deapsea-project/internal/http/dto"
	"github.com/sharklandy/deapsea-project/internal/middleware"
	"github.com/sharklandy/deapsea-project/internal/services"
	"go.uber.org/zap"
)

type SpeciesHandler struct {
	speciesSvc *services.SpeciesService
	log        *zap.Logger
}

func NewSpeciesHandler(speciesSvc *services.SpeciesService, log *zap.Logger) *SpeciesHandler {
	return &SpeciesHandler{speciesSvc: speciesSvc, log: log}
}

func (h *SpeciesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSpeciesRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, h.log, services.NewInvalidError("invalid request body"))
	}

	species, err := h.speciesSvc.Create(c.Context(), middleware.GetUserID(c), req.Name, req.Description)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(species)
}

func (h *SpeciesHandler) List(c *fiber.Ctx) error {
	species, err := h.speciesSvc.List(c.Context(), c.Query("sortBy"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(species)
}

func (h *SpeciesHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}

	species, err := h.speciesSvc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(species)
}

func (h *SpeciesHandler) ListObservations(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}

	observations, err := h.speciesSvc.ListObservations(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(observations)
}
