package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/artisell/artisell-backend/internal/app/repository"
	"github.com/artisell/artisell-backend/pkg/logger"
)

// staleCartAge is how long a cart item may sit untouched before the nightly
// cleanup removes it.
const staleCartAge = 30 * 24 * time.Hour

// CartCleanupScheduler purges abandoned cart items on a nightly schedule.
type CartCleanupScheduler struct {
	cron     *cron.Cron
	cartRepo repository.CartRepository
}

func NewCartCleanupScheduler(cartRepo repository.CartRepository) *CartCleanupScheduler {
	return &CartCleanupScheduler{
		cron:     cron.New(),
		cartRepo: cartRepo,
	}
}

// Start registers the nightly cleanup job and starts the scheduler.
func (s *CartCleanupScheduler) Start() error {
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		logger.Info("Starting scheduled cart cleanup", nil)

		cutoff := time.Now().Add(-staleCartAge)
		deleted, err := s.cartRepo.DeleteStaleBefore(cutoff)
		if err != nil {
			logger.Error("Failed to purge stale cart items", err)
			return
		}

		logger.Info("Scheduled cart cleanup completed", map[string]interface{}{
			"deleted": deleted,
			"cutoff":  cutoff,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for cart cleanup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Cart cleanup scheduler started (daily at 3:00 AM)", nil)

	return nil
}

// Stop halts the scheduler.
func (s *CartCleanupScheduler) Stop() {
	logger.Info("Stopping cart cleanup scheduler...", nil)
	s.cron.Stop()
	logger.Info("Cart cleanup scheduler stopped", nil)
}
