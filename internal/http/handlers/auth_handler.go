package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sharklandy/deapsea-project/internal/http/dto"
	"github.com/sharklandy/deapsea-project/internal/middleware"
	"github.com/sharklandy/deapsea-project/internal/services"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authSvc *services.AuthService
	log     *zap.Logger
}

func NewAuthHandler(authSvc *services.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, log: log}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, h.log, services.NewInvalidError("invalid request body"))
	}

	result, err := h.authSvc.Register(c.Context(), req.Email, req.Username, req.Password, req.Role)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{Token: result.Token, User: result.User})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, h.log, services.NewInvalidError("invalid request body"))
	}

	result, err := h.authSvc.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.AuthResponse{Token: result.Token, User: result.User})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.authSvc.Me(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(user)
}
