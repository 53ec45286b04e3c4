package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/scorebook-app/scorebook/internal/logger"
	"github.com/scorebook-app/scorebook/internal/store"
	"github.com/scorebook-app/scorebook/models"
)

// statsTTL bounds how often Stats recomputes its snapshot. Badge rendering
// polls aggressively; correctness never depends on the counts.
const statsTTL = time.Second

// queueEntry is the in-memory state of one entity reference in the queue.
type queueEntry struct {
	intent models.SyncIntent
	status models.IntentStatus

	// next holds an intent enqueued while this entry was processing. It is
	// promoted to pending when the in-flight attempt settles, whatever the
	// outcome of that attempt.
	next *models.SyncIntent
}

// syncQueue is the in-memory coalescing queue, mirrored to the sync_queue
// table through [store.QueueRepository] so pending work survives restarts.
// The in-memory state machine is canonical; the table only ever holds the
// pending and failed states.
type syncQueue struct {
	repo   store.QueueRepository
	logger *logger.Logger
	now    func() time.Time

	mu      sync.Mutex
	entries map[models.EntityRef]*queueEntry

	statsMu sync.Mutex
	statsAt time.Time
	stats   models.QueueStats
}

// NewSyncQueue constructs an empty [SyncQueue] persisting through repo.
// Call Load before the first drain to restore intents from a previous run.
func NewSyncQueue(repo store.QueueRepository, logger *logger.Logger) SyncQueue {
	return &syncQueue{
		repo:    repo,
		logger:  logger,
		now:     time.Now,
		entries: make(map[models.EntityRef]*queueEntry),
	}
}

// Enqueue implements [SyncQueue].
func (q *syncQueue) Enqueue(ctx context.Context, intent models.SyncIntent) error {
	if intent.EnqueuedAt.IsZero() {
		intent.EnqueuedAt = q.now()
	}
	intent.RetryCount = 0
	intent.LastError = ""

	q.mu.Lock()
	defer q.mu.Unlock()

	entry, ok := q.entries[intent.Ref]
	switch {
	case !ok:
		q.entries[intent.Ref] = &queueEntry{intent: intent, status: models.IntentPending}
	case entry.status == models.IntentProcessing:
		// Park behind the in-flight attempt. The persisted row is updated
		// to pending now so a crash cannot lose the newer mutation.
		parked := intent
		entry.next = &parked
	default:
		entry.intent = intent
		entry.status = models.IntentPending
		entry.next = nil
	}

	// Persisted under q.mu: racing enqueues for the same reference must land
	// on disk in the same order they land in memory, or a crash restores the
	// older payload.
	if err := q.repo.SaveIntent(ctx, intent, models.IntentPending); err != nil {
		q.logger.Err(err).
			Str("func", "syncQueue.Enqueue").
			Str("entity", intent.Ref.String()).
			Msg("failed to persist intent; queue continues in memory")
		return fmt.Errorf("persist intent %s: %w", intent.Ref, err)
	}

	return nil
}

// Drain implements [SyncQueue].
func (q *syncQueue) Drain(_ context.Context) []models.SyncIntent {
	q.mu.Lock()
	defer q.mu.Unlock()

	batch := make([]models.SyncIntent, 0, len(q.entries))
	for _, entry := range q.entries {
		if entry.status != models.IntentPending {
			continue
		}
		entry.status = models.IntentProcessing
		batch = append(batch, entry.intent)
	}

	sort.Slice(batch, func(i, j int) bool {
		if !batch[i].EnqueuedAt.Equal(batch[j].EnqueuedAt) {
			return batch[i].EnqueuedAt.Before(batch[j].EnqueuedAt)
		}
		return batch[i].Ref.String() < batch[j].Ref.String()
	})

	return batch
}

// Settle implements [SyncQueue].
func (q *syncQueue) Settle(ctx context.Context, ref models.EntityRef) error {
	q.mu.Lock()
	entry, ok := q.entries[ref]
	if !ok || entry.status != models.IntentProcessing {
		q.mu.Unlock()
		return nil
	}
	if entry.next != nil {
		entry.intent = *entry.next
		entry.status = models.IntentPending
		entry.next = nil
		q.mu.Unlock()
		// The parked intent's row was already persisted at enqueue time.
		return nil
	}
	delete(q.entries, ref)
	q.mu.Unlock()

	if err := q.repo.DeleteIntent(ctx, ref); err != nil {
		return fmt.Errorf("delete settled intent %s: %w", ref, err)
	}
	return nil
}

// Release implements [SyncQueue].
func (q *syncQueue) Release(ctx context.Context, ref models.EntityRef, attempts int, cause error) error {
	return q.park(ctx, ref, models.IntentPending, attempts, cause)
}

// Fail implements [SyncQueue].
func (q *syncQueue) Fail(ctx context.Context, ref models.EntityRef, attempts int, cause error) error {
	return q.park(ctx, ref, models.IntentFailed, attempts, cause)
}

// park moves a processing entry back to a durable state. A parked newer
// intent always wins over the outcome of the interrupted attempt.
func (q *syncQueue) park(ctx context.Context, ref models.EntityRef, status models.IntentStatus, attempts int, cause error) error {
	q.mu.Lock()
	entry, ok := q.entries[ref]
	if !ok || entry.status != models.IntentProcessing {
		q.mu.Unlock()
		return nil
	}
	if entry.next != nil {
		entry.intent = *entry.next
		entry.status = models.IntentPending
		entry.next = nil
		q.mu.Unlock()
		return nil
	}

	entry.intent.RetryCount = attempts
	if cause != nil {
		entry.intent.LastError = cause.Error()
	}
	entry.status = status
	persisted := entry.intent
	q.mu.Unlock()

	if err := q.repo.SaveIntent(ctx, persisted, status); err != nil {
		return fmt.Errorf("persist %s intent %s: %w", status, ref, err)
	}
	return nil
}

// Discard implements [SyncQueue]. The queued mutation for ref has been
// superseded locally (a pulled remote copy won resolution), so pushing it
// would regress the remote.
func (q *syncQueue) Discard(ctx context.Context, ref models.EntityRef) error {
	q.mu.Lock()
	entry, ok := q.entries[ref]
	if !ok {
		q.mu.Unlock()
		return nil
	}
	if entry.status == models.IntentProcessing {
		// The in-flight attempt settles itself; only its parked successor
		// carries the superseded payload.
		entry.next = nil
		q.mu.Unlock()
		return nil
	}
	delete(q.entries, ref)
	q.mu.Unlock()

	if err := q.repo.DeleteIntent(ctx, ref); err != nil {
		return fmt.Errorf("delete discarded intent %s: %w", ref, err)
	}
	return nil
}

// Retry implements [SyncQueue].
func (q *syncQueue) Retry(ctx context.Context, ref models.EntityRef) error {
	q.mu.Lock()
	entry, ok := q.entries[ref]
	if !ok || entry.status != models.IntentFailed {
		q.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrIntentNotFailed, ref)
	}
	entry.intent.RetryCount = 0
	entry.intent.LastError = ""
	entry.status = models.IntentPending
	revived := entry.intent
	q.mu.Unlock()

	if err := q.repo.SaveIntent(ctx, revived, models.IntentPending); err != nil {
		return fmt.Errorf("persist revived intent %s: %w", ref, err)
	}
	return nil
}

// Contains implements [SyncQueue].
func (q *syncQueue) Contains(ref models.EntityRef) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	_, ok := q.entries[ref]
	return ok
}

// Stats implements [SyncQueue]. Processing intents count as pending: the
// work is still outstanding from the user's point of view.
func (q *syncQueue) Stats() models.QueueStats {
	q.statsMu.Lock()
	defer q.statsMu.Unlock()

	if q.now().Sub(q.statsAt) < statsTTL {
		return q.stats
	}

	q.mu.Lock()
	snapshot := models.QueueStats{}
	for _, entry := range q.entries {
		switch entry.status {
		case models.IntentFailed:
			snapshot.Failed++
		default:
			snapshot.Pending++
		}
	}
	q.mu.Unlock()

	q.stats = snapshot
	q.statsAt = q.now()
	return snapshot
}

// Load implements [SyncQueue].
func (q *syncQueue) Load(ctx context.Context) error {
	stored, err := q.repo.ListIntents(ctx)
	if err != nil {
		return fmt.Errorf("load persisted intents: %w", err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.entries = make(map[models.EntityRef]*queueEntry, len(stored))
	for _, item := range stored {
		status := item.Status
		if status != models.IntentFailed {
			status = models.IntentPending
		}
		q.entries[item.Ref] = &queueEntry{intent: item.SyncIntent, status: status}
	}

	q.logger.Debug().
		Str("func", "syncQueue.Load").
		Int("intents", len(stored)).
		Msg("restored sync queue from local storage")
	return nil
}
