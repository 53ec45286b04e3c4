package models

import (
	"encoding/json"
	"time"
)

// PushRequest is the wire form of a single optimistic-concurrency push.
// The remote rejects it with a conflict signal when its current version for
// the record differs from ExpectedVersion.
type PushRequest struct {
	// OwnerID is the identity the record belongs to.
	OwnerID int64 `json:"owner_id"`

	// Kind and ID identify the record.
	Kind EntityKind `json:"kind"`
	ID   string     `json:"id"`

	// Payload is the full record content. Ignored for deletes.
	Payload json.RawMessage `json:"payload,omitempty"`

	// ExpectedVersion is the remote version the client believes is current.
	// Zero means the client believes the record does not exist remotely.
	ExpectedVersion int64 `json:"expected_version"`

	// UpdatedAt is the client-side modification timestamp, recorded
	// remotely for last-write-wins comparison on other devices.
	UpdatedAt time.Time `json:"updated_at"`

	// Deleted marks the push as a soft-delete propagation.
	Deleted bool `json:"deleted"`
}

// PushResponse carries the version the remote assigned to the accepted push.
type PushResponse struct {
	Version int64 `json:"version"`
}

// PullResponse is the wire form of a single-record fetch.
type PullResponse struct {
	Kind      EntityKind      `json:"kind"`
	ID        string          `json:"id"`
	Payload   json.RawMessage `json:"payload"`
	Version   int64           `json:"version"`
	UpdatedAt time.Time       `json:"updated_at"`
	Deleted   bool            `json:"deleted"`
}

// Entity converts the wire record into the local replica form. Dirty is
// always false: what the remote returned is, by definition, synced.
func (p PullResponse) Entity(ownerID int64) Entity {
	return Entity{
		Kind:      p.Kind,
		ID:        p.ID,
		OwnerID:   ownerID,
		Payload:   p.Payload,
		Version:   p.Version,
		UpdatedAt: p.UpdatedAt,
		Deleted:   p.Deleted,
	}
}

// PullAllResponse is the wire form of a full remote fetch for one owner.
type PullAllResponse struct {
	Records []PullResponse `json:"records"`

	// Length is the total number of entries in Records. Provided so the
	// client can validate the response without iterating the slice.
	Length int `json:"length"`
}
