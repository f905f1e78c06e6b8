package worker

import (
	"context"
	"time"

	"github.com/rokfinancial/broker-portal/internal/logger"
)

type StaleReferralMarker interface {
	MarkStale(ctx context.Context, olderThan time.Duration) ([]string, error)
}

// StaleReferralWorker flags referrals the dispatch worker never picked up.
type StaleReferralWorker struct {
	repo         StaleReferralMarker
	logger       logger.Logger
	staleAfter   time.Duration
	tickInterval time.Duration
}

func NewStaleReferralWorker(repo StaleReferralMarker, log logger.Logger) *StaleReferralWorker {
	return &StaleReferralWorker{
		repo:         repo,
		logger:       log.WithFields(map[string]interface{}{"component": "stale-referral-worker"}),
		staleAfter:   30 * time.Minute,
		tickInterval: 1 * time.Minute,
	}
}

// WithSchedule overrides the default thresholds; zero values keep the defaults.
func (w *StaleReferralWorker) WithSchedule(staleAfter, interval time.Duration) *StaleReferralWorker {
	if staleAfter > 0 {
		w.staleAfter = staleAfter
	}
	if interval > 0 {
		w.tickInterval = interval
	}
	return w
}

func (w *StaleReferralWorker) Start(ctx context.Context) {
	w.logger.Info("stale referral worker started", map[string]interface{}{
		"staleAfter": w.staleAfter.String(),
	})

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stale referral worker stopped", nil)
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *StaleReferralWorker) sweep(ctx context.Context) int {
	ids, err := w.repo.MarkStale(ctx, w.staleAfter)
	if err != nil {
		w.logger.Error("failed to mark stale referrals", map[string]interface{}{"error": err})
		return 0
	}

	if len(ids) > 0 {
		w.logger.Warn("referrals marked stale", map[string]interface{}{
			"count":       len(ids),
			"referralIds": ids,
		})
	}
	return len(ids)
}
