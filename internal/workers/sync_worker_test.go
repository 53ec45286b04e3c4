package workers

import (
	"context"
	"testing"
	"time"
)

// stubJob records Start invocations.
type stubJob struct {
	started  int
	interval time.Duration
}

func (j *stubJob) Start(_ context.Context, interval time.Duration) {
	j.started++
	j.interval = interval
}

func (j *stubJob) Trigger() {}
func (j *stubJob) Stop()    {}

func TestSyncWorker_Run_StartsJob(t *testing.T) {
	job := &stubJob{}
	w := NewSyncWorker(context.Background(), job, 42*time.Second)

	w.Run()

	if job.started != 1 {
		t.Errorf("expected job started once, got %d", job.started)
	}
	if job.interval != 42*time.Second {
		t.Errorf("expected interval to pass through, got %v", job.interval)
	}
}
