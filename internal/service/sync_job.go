package service

import (
	"context"
	"sync"
	"time"

	"github.com/scorebook-app/scorebook/internal/logger"
)

type syncJob struct {
	engine SyncEngine
	logger *logger.Logger

	// kick carries Trigger requests to the loop. Buffered with size one so
	// triggers arriving while a cycle runs coalesce into a single
	// follow-up cycle.
	kick chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a syncJob that runs engine drain cycles on a ticker and
// whenever Trigger is called. The job is idle until Start is called.
func NewSyncJob(engine SyncEngine, logger *logger.Logger) SyncJob {
	return &syncJob{
		engine: engine,
		logger: logger,
		kick:   make(chan struct{}, 1),
	}
}

// Start implements SyncJob. It stops any previously running job, then
// launches a background goroutine that drains the queue every interval and
// on every Trigger. If interval is zero or negative it defaults to 5
// minutes. The goroutine exits when ctx is cancelled or Stop is called.
func (j *syncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
			case <-j.kick:
			}

			if err := j.engine.Sync(jobCtx); err != nil {
				j.logger.Err(err).
					Str("func", "syncJob").
					Msg("drain cycle aborted")
			}
		}
	}()
}

// Trigger implements SyncJob.
func (j *syncJob) Trigger() {
	select {
	case j.kick <- struct{}{}:
	default:
	}
}

// Stop implements SyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is
// not running (no-op in that case).
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
