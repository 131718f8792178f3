package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sharklandy/deapsea-project/internal/http/dto"
	"github.com/sharklandy/deapsea-project/internal/middleware"
	"github.com/sharklandy/deapsea-project/internal/services"
	"go.uber.org/zap"
)

// respondError translates a service error into its HTTP shape. Anything that
// is not a ServiceError is an internal fault: logged in full, surfaced as an
// opaque 500.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	reqID, _ := c.Locals(middleware.CtxRequestID).(string)

	se, ok := services.AsServiceError(err)
	if !ok {
		log.Error("unhandled error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:     "internal server error",
			RequestID: reqID,
		})
	}

	return c.Status(services.HTTPStatus(err)).JSON(dto.ErrorResponse{
		Error:     se.Message,
		RequestID: reqID,
	})
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, services.NewInvalidError("invalid " + name)
	}
	return id, nil
}
