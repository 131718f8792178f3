package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/sharklandy/deapsea-project/internal/config"
	"github.com/sharklandy/deapsea-project/internal/db"
	"github.com/sharklandy/deapsea-project/internal/events"
	apphttp "github.com/sharklandy/deapsea-project/internal/http"
	"github.com/sharklandy/deapsea-project/internal/http/handlers"
	"github.com/sharklandy/deapsea-project/internal/repositories"
	"github.com/sharklandy/deapsea-project/internal/services"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.TaxonomyPostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations/taxonomy", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	taxRepo := repositories.NewTaxonomyRepo(pool)

	// Services
	obsClient := services.NewObservationClient(cfg.ObservationInternalURL)
	taxService := services.NewTaxonomyService(taxRepo, obsClient, rdb, cfg, log)

	// Stale stats are dropped as soon as an observation changes.
	subscriber := events.NewRedisSubscriber(rdb, log)
	if err := taxService.SubscribeInvalidation(ctx, subscriber); err != nil {
		log.Fatal("failed to subscribe to observation events", zap.Error(err))
	}

	// Handlers
	taxHandler := handlers.NewTaxonomyHandler(taxService, log)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupTaxonomyRouter(app, cfg, log, rdb, taxHandler)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.TaxonomyPort)
	log.Info("starting taxonomy server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
