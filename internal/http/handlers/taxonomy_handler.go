package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sharklandy/deapsea-project/internal/services"
	"go.uber.org/zap"
)

type TaxonomyHandler struct {
	taxSvc *services.TaxonomyService
	log    *zap.Logger
}

func NewTaxonomyHandler(taxSvc *services.TaxonomyService, log *zap.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{taxSvc: taxSvc, log: log}
}

func (h *TaxonomyHandler) Stats(c *fiber.Ctx) error {
	report, err := h.taxSvc.Stats(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(report)
}

func (h *TaxonomyHandler) Classification(c *fiber.Ctx) error {
	report, err := h.taxSvc.Classification(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(report)
}
