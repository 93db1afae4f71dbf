package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"

	"github.com/hwpaige/launchboard/common"
)

var log = logger.GetOrCreate("scheduler")

const refreshTimeout = 30 * time.Second

// refreshScheduler periodically refreshes both launch categories. This is the
// only automatic retry in the pipeline: a failed refresh is retried on the
// next tick, never immediately.
type refreshScheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	interval  time.Duration
}

// NewRefreshScheduler creates a new periodic refresh scheduler
func NewRefreshScheduler(refresher Refresher, interval time.Duration) (*refreshScheduler, error) {
	if check.IfNil(refresher) {
		return nil, errors.New("nil refresher")
	}
	if interval <= 0 {
		return nil, errors.New("invalid refresh interval")
	}

	return &refreshScheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		refresher: refresher,
		interval:  interval,
	}, nil
}

// Start schedules the periodic job, running it once immediately so the kiosk
// has data right after boot, and starts the underlying scheduler
func (s *refreshScheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).StartImmediately().Do(s.refreshAll)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *refreshScheduler) refreshAll() {
	log.Debug("running launch refresh job")

	for _, category := range common.AllCategories {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)

		_, err := s.refresher.Refresh(ctx, category)
		if err != nil {
			log.Warn("scheduled refresh failed", "category", category, "error", err)
		}

		cancel()
	}

	log.Debug("completed launch refresh job")
}

// Stop stops the scheduler and cancels any future jobs
func (s *refreshScheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// IsInterfaceNil returns true if the value under the interface is nil
func (s *refreshScheduler) IsInterfaceNil() bool {
	return s == nil
}
