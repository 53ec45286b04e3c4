// Package service contains the synchronization core: the version cache, the
// conflict resolver, the coalescing sync queue, the sync engine, and the
// synchronized store facade the application talks to.
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/scorebook-app/scorebook/models"
)

// VersionCache tracks the last remote version counter confirmed for each
// record. The engine consults it to fill ExpectedVersion on pushes; a stale
// or missing entry is harmless and at worst costs one extra conflict round.
type VersionCache interface {
	// Get returns the cached remote version for the record, and whether an
	// entry exists at all.
	Get(ref models.EntityRef) (int64, bool)

	// Set records the version the remote confirmed for the record.
	Set(ref models.EntityRef, version int64)

	// Invalidate drops the entry for one record.
	Invalidate(ref models.EntityRef)

	// Clear drops every entry. Called before a full resync.
	Clear()
}

// ConflictResolver decides which side of a version conflict survives.
// Implementations must be pure: the same conflict always produces the same
// resolution, with no I/O and no dependence on wall-clock time.
type ConflictResolver interface {
	Resolve(conflict models.Conflict) models.Resolution
}

// SyncQueue is the coalescing intent queue between the facade and the
// engine. At most one intent exists per entity reference; enqueueing a newer
// mutation for the same reference supersedes the old intent in place.
//
// Intents move pending -> processing -> settled (or failed). The processing
// state lives in memory only, so a crash mid-drain leaves the persisted row
// pending and the work is simply redone after restart.
type SyncQueue interface {
	// Enqueue adds or supersedes the intent for its entity reference and
	// persists it as pending. Enqueueing over a failed intent revives it
	// with a fresh retry budget. Enqueueing while the reference is being
	// processed parks the new intent; it becomes pending as soon as the
	// in-flight attempt settles, regardless of that attempt's outcome.
	Enqueue(ctx context.Context, intent models.SyncIntent) error

	// Drain atomically moves every pending intent to processing and returns
	// them in FIFO order by enqueue time. Intents already processing are
	// not returned, which gives the engine single-flight per record.
	Drain(ctx context.Context) []models.SyncIntent

	// Settle removes the processing intent for the reference after a
	// successful push or a resolved conflict. If a newer intent was parked
	// during processing it becomes pending instead.
	Settle(ctx context.Context, ref models.EntityRef) error

	// Release returns a processing intent to pending, keeping the attempt
	// count and failure cause. Used when an attempt is interrupted
	// (shutdown, suspended session) rather than exhausted.
	Release(ctx context.Context, ref models.EntityRef, attempts int, cause error) error

	// Fail moves a processing intent to the failed bucket after the retry
	// ceiling was reached. Failed intents are excluded from drains until
	// revived by Retry or superseded by a newer enqueue.
	Fail(ctx context.Context, ref models.EntityRef, attempts int, cause error) error

	// Discard drops the queued intent for the reference because the local
	// mutation it carries has been superseded, typically by a pulled remote
	// copy winning conflict resolution. A pending or failed intent is
	// removed outright; for a reference currently processing only the
	// parked successor is dropped, the in-flight attempt finishes on its
	// own. Discarding an absent reference is a no-op.
	Discard(ctx context.Context, ref models.EntityRef) error

	// Retry revives one failed intent back to pending with a fresh retry
	// budget. Returns ErrIntentNotFailed if the reference has no failed
	// intent.
	Retry(ctx context.Context, ref models.EntityRef) error

	// Contains reports whether any intent (in any state) exists for the
	// reference. Used by the startup reconciliation pass.
	Contains(ref models.EntityRef) bool

	// Stats returns a point-in-time queue summary for display. Snapshots
	// are cached for up to a second; callers must not base correctness
	// decisions on them.
	Stats() models.QueueStats

	// Load restores persisted intents after a restart. Pending rows become
	// pending, failed rows stay failed.
	Load(ctx context.Context) error
}

// SyncEngine executes queued intents against the remote: pushes with
// optimistic concurrency, resolves conflicts, retries transient failures
// with exponential backoff.
type SyncEngine interface {
	// Sync runs one drain cycle: takes every pending intent and executes
	// them with bounded concurrency. Safe to call concurrently with itself;
	// the queue's processing state guarantees single-flight per record.
	// Returns without doing work when no valid session is available.
	Sync(ctx context.Context) error

	// RetryFailed revives one failed intent and immediately runs a drain
	// cycle for it.
	RetryFailed(ctx context.Context, ref models.EntityRef) error
}

// SyncedStore is the facade the application uses for all record access. It
// reads and writes the local replica synchronously and never blocks on the
// network; remote reconciliation happens in the background.
type SyncedStore interface {
	// Save writes the record locally, marks it dirty, and enqueues an
	// upsert intent. When id is empty a new identifier is generated.
	// Writes whose canonical payload hash matches the stored record are
	// recognised as no-ops and produce no new intent.
	Save(ctx context.Context, kind models.EntityKind, id string, payload json.RawMessage) (models.Entity, error)

	// Get returns the local record. Soft-deleted records read as absent.
	Get(ctx context.Context, ref models.EntityRef) (models.Entity, error)

	// List returns all live local records of the given kinds (all kinds if
	// none are given), ordered by kind then id.
	List(ctx context.Context, kinds ...models.EntityKind) ([]models.Entity, error)

	// Delete soft-deletes the record locally and enqueues a delete intent.
	// Deleting an absent record is a no-op.
	Delete(ctx context.Context, ref models.EntityRef) error

	// PushAll enqueues an intent for every record with unsynced local
	// changes, then triggers a drain.
	PushAll(ctx context.Context) error

	// PullAll fetches the owner's full remote state and applies it to the
	// local replica. Clean local records are overwritten; dirty ones go
	// through conflict resolution. Running it twice in a row leaves the
	// replica unchanged the second time.
	PullAll(ctx context.Context) error

	// Reconcile is the startup pass: reloads the persisted queue and
	// re-enqueues any dirty record that lost its intent (crash between the
	// local write and the queue write).
	Reconcile(ctx context.Context) error

	// Stats exposes the queue summary for sync badges.
	Stats() models.QueueStats
}

// SyncJob is the background worker that runs drain cycles on a ticker and
// on demand.
type SyncJob interface {
	// Start launches the background goroutine. Any previously running job
	// is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Trigger requests an immediate drain cycle without waiting for the
	// ticker. Never blocks; triggers arriving while a cycle runs coalesce
	// into one follow-up cycle.
	Trigger()

	// Stop signals the goroutine to exit and blocks until it has fully
	// terminated.
	Stop()
}

// SessionSource provides the identity and bearer token the sync paths
// operate under. The auth provider itself is external; this only reads what
// it deposited.
type SessionSource interface {
	// OwnerID returns the authenticated identity. Returns ErrNoSession
	// when no usable token is available.
	OwnerID() (int64, error)

	// Token returns the current bearer token, or ErrNoSession.
	Token() (string, error)

	// Valid reports whether a token is present and not expired. The engine
	// suspends drains while this is false.
	Valid() bool
}
