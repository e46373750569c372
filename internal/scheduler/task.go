package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// PeriodicTask runs a function on an interval with an optional initial delay.
type PeriodicTask struct {
	name         string
	initialDelay time.Duration
	interval     time.Duration
	runFunc      func(ctx context.Context)
}

func NewPeriodicTask(name string, initialDelay, interval time.Duration, run func(ctx context.Context)) *PeriodicTask {
	return &PeriodicTask{name: name, initialDelay: initialDelay, interval: interval, runFunc: run}
}

// run executes the task until ctx is cancelled or stopChan is closed.
func (pt *PeriodicTask) run(ctx context.Context, stopChan <-chan struct{}) {
	logger := log.With().Str("task", pt.name).Logger()

	if pt.initialDelay > 0 {
		logger.Debug().Dur("delay", pt.initialDelay).Msg("waiting for initial delay")
		timer := time.NewTimer(pt.initialDelay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			logger.Info().Msg("stopped during initial delay due to context cancellation")
			return
		case <-stopChan:
			timer.Stop()
			logger.Info().Msg("stopped during initial delay due to stop signal")
			return
		}
	}
	pt.runFunc(ctx)

	ticker := time.NewTicker(pt.interval)
	defer ticker.Stop()

	logger.Info().Dur("interval", pt.interval).Msg("started")

	for {
		select {
		case <-ticker.C:
			pt.runFunc(ctx)
		case <-ctx.Done():
			logger.Info().Msg("stopped due to context cancellation")
			return
		case <-stopChan:
			logger.Info().Msg("stopped due to stop signal")
			return
		}
	}
}
