package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

type boardWarmer interface {
	Warm(ctx context.Context) error
}

// newBoardScheduler schedules board refreshes on a standard five-field cron expression.
// Overlapping runs are skipped.
func newBoardScheduler(ctx context.Context, schedule string, board boardWarmer, logger *slog.Logger) (*cron.Cron, error) {
	const op = "app.newBoardScheduler"

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := c.AddFunc(schedule, func() {
		if err := board.Warm(ctx); err != nil {
			logger.Warn("scheduled project board refresh failed", slog.String("op", op), slog.Any("err", err))
			return
		}
		logger.Debug("project board refreshed", slog.String("op", op))
	})
	if err != nil {
		return nil, fmt.Errorf("%s: invalid schedule %q: %w", op, schedule, err)
	}

	return c, nil
}
