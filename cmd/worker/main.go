package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sharklandy/deapsea-project/internal/config"
	"github.com/sharklandy/deapsea-project/internal/db"
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

	pool, err := db.NewPostgresPool(ctx, cfg.ObservationPostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Repos
	obsRepo := repositories.NewObservationRepo(pool)
	speciesRepo := repositories.NewSpeciesRepo(pool)
	outboxRepo := repositories.NewOutboxRepo(pool)

	// Services
	ledgerClient := services.NewLedgerClient(cfg.LedgerInternalURL, log)
	dispatcher := services.NewOutboxDispatcher(outboxRepo, ledgerClient, cfg, log)
	rarityService := services.NewRarityService(obsRepo, speciesRepo, log)

	log.Info("worker started")

	// Run jobs on tickers
	outboxTicker := time.NewTicker(cfg.OutboxInterval)
	rarityTicker := time.NewTicker(cfg.RaritySyncInterval)
	defer outboxTicker.Stop()
	defer rarityTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-outboxTicker.C:
			runOutboxDispatch(ctx, dispatcher, log)
		case <-rarityTicker.C:
			runRaritySync(ctx, rarityService, log)
		case <-sigCh:
			log.Info("shutting down worker")
			cancel()
			return
		case <-ctx.Done():
			return
		}
	}
}

func runOutboxDispatch(ctx context.Context, dispatcher *services.OutboxDispatcher, log *zap.Logger) {
	sent, err := dispatcher.DispatchBatch(ctx)
	if err != nil {
		log.Error("outbox dispatch failed", zap.Error(err))
		return
	}
	if sent > 0 {
		log.Info("reputation deltas delivered", zap.Int("count", sent))
	}
}

func runRaritySync(ctx context.Context, rarityService *services.RarityService, log *zap.Logger) {
	if err := rarityService.RecomputeAll(ctx); err != nil {
		log.Error("rarity resync failed", zap.Error(err))
		return
	}
	log.Info("rarity resync completed")
}
