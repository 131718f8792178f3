package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sharklandy/deapsea-project/internal/http/dto"
	"github.com/sharklandy/deapsea-project/internal/services"
	"go.uber.org/zap"
)

type HistoryHandler struct {
	historySvc *services.HistoryService
	log        *zap.Logger
}

func NewHistoryHandler(historySvc *services.HistoryService, log *zap.Logger) *HistoryHandler {
	return &HistoryHandler{historySvc: historySvc, log: log}
}

func (h *HistoryHandler) Global(c *fiber.Ctx) error {
	limit, skip := services.NormalizePage(c.QueryInt("limit", 100), c.QueryInt("skip", 0))

	actions, total, err := h.historySvc.Global(c.Context(), limit, skip)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.GlobalHistoryResponse{
		TotalActions: total,
		Limit:        limit,
		Skip:         skip,
		Actions:      actions,
	})
}

func (h *HistoryHandler) ByActor(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}

	actions, err := h.historySvc.ByActor(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.ActorHistoryResponse{
		UserID:       id,
		TotalActions: len(actions),
		Actions:      actions,
	})
}

func (h *HistoryHandler) BySpecies(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}

	actions, err := h.historySvc.BySpecies(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SpeciesHistoryResponse{
		SpeciesID:    id,
		TotalActions: len(actions),
		Actions:      actions,
	})
}
