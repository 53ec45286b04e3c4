package workers

import (
	"context"
	"time"

	"github.com/scorebook-app/scorebook/internal/service"
)

// syncWorker adapts the background sync job to the [Worker] contract so it
// can be started alongside any other background workers the process runs.
type syncWorker struct {
	ctx      context.Context
	job      service.SyncJob
	interval time.Duration
}

// NewSyncWorker wraps the sync job as a [Worker]. The job keeps draining
// until ctx is cancelled.
func NewSyncWorker(ctx context.Context, job service.SyncJob, interval time.Duration) Worker {
	return &syncWorker{ctx: ctx, job: job, interval: interval}
}

func (w *syncWorker) Run() {
	w.job.Start(w.ctx, w.interval)
}
