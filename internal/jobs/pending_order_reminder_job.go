package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PendingOrderReminderJob periodically sweeps for orders that have sat in
// pending longer than the configured threshold and alerts their restaurants.
type PendingOrderReminderJob struct {
	handler   *commands.RemindStalePendingCommandHandler
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewPendingOrderReminderJob creates the reminder job. The sweep runs once a
// minute; threshold is how long an order may stay pending before its
// restaurant is alerted.
func NewPendingOrderReminderJob(
	handler *commands.RemindStalePendingCommandHandler,
	threshold time.Duration,
	logger *slog.Logger,
) *PendingOrderReminderJob {
	return &PendingOrderReminderJob{
		handler:   handler,
		threshold: threshold,
		cron:      cron.New(),
		logger:    logger.With("component", "pending_order_reminder_job"),
	}
}

// Start begins the reminder sweep on a one minute schedule.
func (j *PendingOrderReminderJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewRemindStalePendingCommand(j.threshold)
		if err != nil {
			j.logger.ErrorContext(ctx, "Pending order reminder misconfigured", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Pending order reminder sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending order reminder job started (running every minute)")
	return nil
}

// Stop stops the reminder sweep.
func (j *PendingOrderReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pending order reminder job stopped")
}
