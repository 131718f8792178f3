package services

import (
	"context"
	"time"

	"github.com/sharklandy/deapsea-project/internal/config"
	"github.com/sharklandy/deapsea-project/internal/models"
	"github.com/sharklandy/deapsea-project/internal/repositories"
	"go.uber.org/zap"
)

// OutboxDispatcher drains the reputation outbox and delivers each delta to
// the identity ledger. Delivery is at-least-once: a delta whose confirmation
// is lost may be sent again, and the ledger's promotion rule tolerates the
// replay. Backoff grows linearly with the attempt count; entries that exhaust
// their attempts are parked as failed for operator inspection.
type OutboxDispatcher struct {
	outboxRepo *repositories.OutboxRepo
	ledger     *LedgerClient
	cfg        *config.Config
	log        *zap.Logger
}

func NewOutboxDispatcher(outboxRepo *repositories.OutboxRepo, ledger *LedgerClient, cfg *config.Config, log *zap.Logger) *OutboxDispatcher {
	return &OutboxDispatcher{outboxRepo: outboxRepo, ledger: ledger, cfg: cfg, log: log}
}

// DispatchBatch claims one batch of due entries and delivers them. Returns
// the number of entries delivered.
func (d *OutboxDispatcher) DispatchBatch(ctx context.Context) (int, error) {
	entries, err := d.outboxRepo.ClaimDue(ctx, d.cfg.OutboxBatchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, entry := range entries {
		if err := d.deliver(ctx, entry); err != nil {
			d.handleFailure(ctx, entry, err)
			continue
		}
		if err := d.outboxRepo.MarkSent(ctx, entry.ID); err != nil {
			d.log.Error("failed to mark outbox entry sent", zap.String("id", entry.ID.String()), zap.Error(err))
			continue
		}
		sent++
	}
	return sent, nil
}

// deliver posts one delta with the entry id as idempotency key, so a retry
// after a lost confirmation cannot double-apply the points.
func (d *OutboxDispatcher) deliver(ctx context.Context, entry models.ReputationOutbox) error {
	result, err := d.ledger.AdjustReputation(ctx, entry.UserID, entry.Points, entry.ID)
	if err != nil {
		return err
	}
	if result.Promoted {
		d.log.Info("reputation delivery triggered role change",
			zap.String("user_id", result.UserID.String()),
			zap.String("role", result.Role),
			zap.Int("reputation", result.Reputation),
		)
	}
	return nil
}

func (d *OutboxDispatcher) handleFailure(ctx context.Context, entry models.ReputationOutbox, cause error) {
	// ClaimDue already counted this attempt.
	if entry.Attempts >= d.cfg.OutboxMaxAttempts {
		d.log.Error("outbox entry exhausted its attempts",
			zap.String("id", entry.ID.String()),
			zap.String("user_id", entry.UserID.String()),
			zap.Int("attempts", entry.Attempts),
			zap.Error(cause),
		)
		if err := d.outboxRepo.MarkFailed(ctx, entry.ID, cause.Error()); err != nil {
			d.log.Error("failed to park outbox entry", zap.String("id", entry.ID.String()), zap.Error(err))
		}
		return
	}

	nextAttempt := time.Now().Add(time.Duration(entry.Attempts) * d.cfg.OutboxBackoff)
	d.log.Warn("reputation delivery failed, will retry",
		zap.String("id", entry.ID.String()),
		zap.Int("attempts", entry.Attempts),
		zap.Time("next_attempt_at", nextAttempt),
		zap.Error(cause),
	)
	if err := d.outboxRepo.MarkRetry(ctx, entry.ID, cause.Error(), nextAttempt); err != nil {
		d.log.Error("failed to schedule outbox retry", zap.String("id", entry.ID.String()), zap.Error(err))
	}
}
