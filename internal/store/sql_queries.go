// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Scorebook Authors

package store

const (
	upsertEntity = `
		INSERT INTO entities (
			kind,
			id,
			owner_id,
			payload,
			version,
			updated_at,
			deleted,
			dirty,
			hash
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (kind, id) DO UPDATE SET
			owner_id   = excluded.owner_id,
			payload    = excluded.payload,
			version    = excluded.version,
			updated_at = excluded.updated_at,
			deleted    = excluded.deleted,
			dirty      = excluded.dirty,
			hash       = excluded.hash;`

	getSingleEntity = `
		SELECT
			kind,
			id,
			owner_id,
			payload,
			version,
			updated_at,
			deleted,
			dirty,
			hash
		FROM entities
		WHERE kind = ? AND id = ?;`

	getAllEntityStates = `
		SELECT kind, id, hash, version, deleted, dirty, updated_at
		FROM entities
		WHERE owner_id = ?
		ORDER BY kind, id;`

	getDirtyEntityStates = `
		SELECT kind, id, hash, version, deleted, dirty, updated_at
		FROM entities
		WHERE owner_id = ? AND dirty = 1
		ORDER BY kind, id;`

	setEntityClean = `
		UPDATE entities
		SET dirty = 0, version = ?
		WHERE kind = ? AND id = ?;`

	hardDeleteEntity = `
		DELETE FROM entities
		WHERE kind = ? AND id = ?;`

	upsertIntent = `
		INSERT INTO sync_queue (
			kind,
			id,
			owner_id,
			intent_kind,
			payload,
			updated_at,
			enqueued_at,
			retry_count,
			last_error,
			status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (kind, id) DO UPDATE SET
			owner_id    = excluded.owner_id,
			intent_kind = excluded.intent_kind,
			payload     = excluded.payload,
			updated_at  = excluded.updated_at,
			enqueued_at = excluded.enqueued_at,
			retry_count = excluded.retry_count,
			last_error  = excluded.last_error,
			status      = excluded.status;`

	deleteIntent = `
		DELETE FROM sync_queue
		WHERE kind = ? AND id = ?;`

	listIntents = `
		SELECT
			kind,
			id,
			owner_id,
			intent_kind,
			payload,
			updated_at,
			enqueued_at,
			retry_count,
			last_error,
			status
		FROM sync_queue
		ORDER BY enqueued_at, kind, id;`
)
