// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Scorebook Authors

package models

import (
	"encoding/json"
	"time"
)

// IntentKind is the kind of reconciliation a sync intent requests.
type IntentKind string

const (
	// IntentUpsert pushes the local record (create or update) to the remote.
	IntentUpsert IntentKind = "upsert"

	// IntentDelete propagates a local soft-delete to the remote.
	IntentDelete IntentKind = "delete"
)

// IntentStatus is the lifecycle state of a queued sync intent.
type IntentStatus string

const (
	// IntentPending means the intent is waiting for the next drain.
	IntentPending IntentStatus = "pending"

	// IntentProcessing means a drain has handed the intent to the engine.
	// Processing intents are invisible to a concurrent second drain.
	IntentProcessing IntentStatus = "processing"

	// IntentFailed means the retry ceiling was reached. Failed intents are
	// surfaced via queue stats and stay put until manually retried or
	// superseded by a full resync.
	IntentFailed IntentStatus = "failed"
)

// SyncIntent is a queued request to reconcile one record's local state with
// the remote. At most one pending intent exists per entity reference; a new
// enqueue for the same reference supersedes the old intent in place.
type SyncIntent struct {
	// Ref identifies the record this intent reconciles.
	Ref EntityRef `json:"ref"`

	// Kind says whether the intent is an upsert or a delete.
	Kind IntentKind `json:"kind"`

	// OwnerID scopes the remote call.
	OwnerID int64 `json:"owner_id"`

	// Payload is the record content captured at enqueue time. Empty for
	// deletes.
	Payload json.RawMessage `json:"payload,omitempty"`

	// UpdatedAt is the local modification timestamp carried to the remote
	// and used for conflict comparison.
	UpdatedAt time.Time `json:"updated_at"`

	// EnqueuedAt is the time of the original enqueue, reset when a newer
	// mutation coalesces into this intent. Drain order is FIFO by this
	// field.
	EnqueuedAt time.Time `json:"enqueued_at"`

	// RetryCount is the number of failed execution attempts so far.
	RetryCount int `json:"retry_count"`

	// LastError holds the message of the most recent failure, if any.
	LastError string `json:"last_error,omitempty"`
}

// StoredIntent is a SyncIntent together with its persisted lifecycle state.
// Only pending and failed are ever written to disk; processing exists in
// memory alone so a crash mid-drain leaves the row pending.
type StoredIntent struct {
	SyncIntent
	Status IntentStatus `json:"status"`
}

// QueueStats is a point-in-time summary of the sync queue, intended for
// display (sync badges) only. Snapshots may be up to a second stale; callers
// must not base correctness decisions on them.
type QueueStats struct {
	Pending int `json:"pending"`
	Failed  int `json:"failed"`
}

// Conflict is produced when a push is rejected because the remote version
// advanced past the version the push assumed. It is transient: resolved
// immediately, never queued or persisted.
type Conflict struct {
	Ref    EntityRef
	Local  Entity
	Remote Entity
}

// Resolution is the outcome of resolving a Conflict.
type Resolution struct {
	// Winner is the payload/state that survives on both replicas.
	Winner Entity

	// RemoteWon reports whether the remote side's state was kept. When
	// true the local replica is overwritten and nothing is re-pushed from
	// the resolution path.
	RemoteWon bool
}
