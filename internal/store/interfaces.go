// Package store implements the local replica: an SQLite database holding the
// authoritative local copy of every synchronizable record plus the durable
// sync queue. The rest of the application treats it as the source of truth
// for "what the user last saw"; the sync engine reconciles it with the
// remote on its own schedule.
package store

import (
	"context"

	"github.com/scorebook-app/scorebook/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// EntityFilter narrows List results. The zero value matches every live
// record of the owner.
type EntityFilter struct {
	// Kinds, when non-empty, restricts the result to the given kinds.
	Kinds []models.EntityKind

	// IncludeDeleted also returns soft-deleted records. Needed by the sync
	// paths; the application-facing list excludes them.
	IncludeDeleted bool
}

// EntityRepository is the low-level local replica repository for entities.
// Local read/write failures are the one error class that propagates
// synchronously to the caller: the local store is the authoritative path the
// application depends on immediately.
type EntityRepository interface {
	// Save upserts one or more records, replacing every stored column.
	Save(ctx context.Context, entities ...models.Entity) error

	// Get returns a single record, soft-deleted or not.
	// Returns ErrEntityNotFound when no row matches.
	Get(ctx context.Context, ref models.EntityRef) (models.Entity, error)

	// List returns the owner's records matching the filter, ordered by
	// kind then id.
	List(ctx context.Context, ownerID int64, filter EntityFilter) ([]models.Entity, error)

	// GetAllStates returns lightweight state descriptors for every record
	// of the owner, soft-deleted included.
	GetAllStates(ctx context.Context, ownerID int64) ([]models.EntityState, error)

	// GetDirtyStates returns state descriptors for records with unsynced
	// local changes. Used by push-all and the startup reconciliation pass.
	GetDirtyStates(ctx context.Context, ownerID int64) ([]models.EntityState, error)

	// SetClean clears the dirty marker and records the confirmed remote
	// version for a record, after a successful push or an applied pull.
	SetClean(ctx context.Context, ref models.EntityRef, version int64) error

	// HardDelete removes a record row entirely. Only called once a remote
	// deletion has been confirmed; until then deletion stays soft.
	HardDelete(ctx context.Context, ref models.EntityRef) error
}

// QueueRepository persists sync intents so that pending work survives a
// restart. The in-memory queue in the service layer is the canonical state
// machine; rows here only ever hold the pending and failed states (a crash
// mid-processing must leave the row pending).
type QueueRepository interface {
	// SaveIntent upserts the row for the intent's entity reference.
	SaveIntent(ctx context.Context, intent models.SyncIntent, status models.IntentStatus) error

	// DeleteIntent removes the row after the intent settles successfully.
	DeleteIntent(ctx context.Context, ref models.EntityRef) error

	// ListIntents returns all persisted intents with their stored status,
	// FIFO by enqueue time. Used to reload the queue on startup.
	ListIntents(ctx context.Context) ([]models.StoredIntent, error)
}
