package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/crucial707/fittrack/internal/metrics"
	"github.com/crucial707/fittrack/internal/repo"
)

// Run starts a background cron that refreshes the store-size gauges
// (users_total, exercises_total) once a minute. Returns the cron so the caller
// can Stop it on shutdown.
func Run(users *repo.UserRepo, exercises *repo.ExerciseRepo) (*cron.Cron, error) {
	refresh := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if n, err := users.Count(ctx); err != nil {
			slog.Error("stats: count users", "err", err)
		} else {
			metrics.UsersTotal.Set(float64(n))
		}

		if n, err := exercises.Count(ctx); err != nil {
			slog.Error("stats: count exercises", "err", err)
		} else {
			metrics.ExercisesTotal.Set(float64(n))
		}
	}

	c := cron.New()
	if _, err := c.AddFunc("@every 1m", refresh); err != nil {
		return nil, err
	}

	// Prime the gauges so /metrics is meaningful before the first tick.
	refresh()
	c.Start()
	return c, nil
}
