package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/sharklandy/deapsea-project/internal/config"
	"github.com/sharklandy/deapsea-project/internal/http/handlers"
	"github.com/sharklandy/deapsea-project/internal/middleware"
	"github.com/sharklandy/deapsea-project/internal/rbac"
	"go.uber.org/zap"
)

func setupCommon(app *fiber.App, log *zap.Logger) {
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

// SetupLedgerRouter wires the identity & reputation service routes.
func SetupLedgerRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
) {
	setupCommon(app, log)

	// Auth (public)
	app.Post("/auth/register", middleware.RateLimitMiddleware(rdb, 20, time.Minute), authHandler.Register)
	app.Post("/auth/login", middleware.RateLimitMiddleware(rdb, 20, time.Minute), authHandler.Login)

	// Internal contract: reputation deltas arrive from the moderation
	// side's outbox dispatcher. The port is not exposed publicly.
	app.Post("/users/:id/reputation", userHandler.AdjustReputation)

	protected := app.Group("", middleware.AuthMiddleware(cfg.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	admin := protected.Group("/admin")
	admin.Get("/users", middleware.RequirePermission(rbac.PermListUsers), userHandler.List)
	admin.Patch("/users/:id/role", middleware.RequirePermission(rbac.PermManageUserRoles), userHandler.UpdateRole)
}

// SetupObservationRouter wires the catalog, moderation, audit and admin
// routes of the observation service.
func SetupObservationRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	speciesHandler *handlers.SpeciesHandler,
	obsHandler *handlers.ObservationHandler,
	modHandler *handlers.ModerationHandler,
	historyHandler *handlers.HistoryHandler,
) {
	setupCommon(app, log)

	app.Use(middleware.RateLimitMiddleware(rdb, 300, time.Minute))

	// Public catalog reads
	app.Get("/species", speciesHandler.List)
	app.Get("/species/:id", speciesHandler.Get)
	app.Get("/species/:id/observations", speciesHandler.ListObservations)
	app.Get("/observations/species/:id", obsHandler.ListBySpecies)

	protected := app.Group("", middleware.AuthMiddleware(cfg.JWTSecret))

	protected.Post("/species", middleware.RequirePermission(rbac.PermCreateSpecies), speciesHandler.Create)
	protected.Post("/observations", middleware.RequirePermission(rbac.PermCreateObservation), obsHandler.Create)

	// Moderation decisions; role preconditions are re-checked in the
	// service so the failure order stays fixed.
	protected.Post("/observations/:id/validate", modHandler.Validate)
	protected.Post("/observations/:id/reject", modHandler.Reject)

	protected.Get("/expert/species/:id/history", middleware.RequirePermission(rbac.PermViewSpeciesHistory), historyHandler.BySpecies)

	admin := protected.Group("/admin")
	admin.Delete("/observations/:id", modHandler.SoftDelete)
	admin.Post("/observations/:id/restore", modHandler.Restore)
	admin.Get("/history", middleware.RequirePermission(rbac.PermViewActionHistory), historyHandler.Global)
	admin.Get("/user/:id/history", middleware.RequirePermission(rbac.PermViewActionHistory), historyHandler.ByActor)
}

// SetupTaxonomyRouter wires the read-only aggregation routes.
func SetupTaxonomyRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	taxHandler *handlers.TaxonomyHandler,
) {
	setupCommon(app, log)

	app.Use(middleware.RateLimitMiddleware(rdb, 100, time.Minute))

	app.Get("/taxonomy/stats", taxHandler.Stats)
	app.Get("/taxonomy/classification", taxHandler.Classification)
}
