package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// CartCleanupJob manages the scheduled removal of abandoned carts.
// Runs hourly; the idle cutoff itself is configured on the handler.
type CartCleanupJob struct {
	handler commands.CleanupCartsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCartCleanupJob creates a new job for cleaning up abandoned carts.
func NewCartCleanupJob(handler commands.CleanupCartsCommandHandler, logger *slog.Logger) *CartCleanupJob {
	return &CartCleanupJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "cart_cleanup_job"),
	}
}

// Start begins the cart cleanup job to run at the top of every hour.
func (j *CartCleanupJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewCleanupCartsCommand()

		removed, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Cart cleanup job failed", "error", err)
			return
		}
		if removed > 0 {
			j.logger.InfoContext(ctx, "Removed abandoned carts", "count", removed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Cart cleanup job started (running hourly)")
	return nil
}

// Stop stops the cart cleanup job.
func (j *CartCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Cart cleanup job stopped")
}
