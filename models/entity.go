// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Scorebook Authors

package models

import (
	"encoding/json"
	"time"
)

// EntityKind identifies the kind of synchronizable record.
type EntityKind string

const (
	// KindGame is a recorded game with its score events.
	KindGame EntityKind = "game"

	// KindRoster is a team roster (players and jersey numbers).
	KindRoster EntityKind = "roster"

	// KindSettings is the per-user settings blob.
	KindSettings EntityKind = "settings"
)

// EntityRef uniquely identifies one synchronizable record. It is the key
// used by the sync queue for coalescing and by the version cache.
type EntityRef struct {
	Kind EntityKind `json:"kind"`
	ID   string     `json:"id"`
}

// String returns a stable "kind/id" form, used in log fields and map keys.
func (r EntityRef) String() string {
	return string(r.Kind) + "/" + r.ID
}

// Entity is a single synchronizable record as held in the local replica.
// The payload is stored as opaque JSON; its structure is defined by the
// kind-specific payload types in this package.
type Entity struct {
	// Kind is the semantic kind of the record (game, roster, settings).
	Kind EntityKind `json:"kind"`

	// ID is the stable, client-generated identifier of the record.
	ID string `json:"id"`

	// OwnerID is the identity that owns this record. Every remote call is
	// scoped to it.
	OwnerID int64 `json:"owner_id"`

	// Payload is the structured record content, stored as opaque JSON.
	Payload json.RawMessage `json:"payload"`

	// Version is the last remote version counter known for this record.
	// Zero means the record has never been pushed.
	Version int64 `json:"version"`

	// UpdatedAt is the modification timestamp used for last-write-wins
	// conflict comparison. Always compared as epoch milliseconds, never as
	// a formatted string.
	UpdatedAt time.Time `json:"updated_at"`

	// Deleted marks the record as soft-deleted. Deleted records are kept
	// locally until the deletion has been confirmed remotely.
	Deleted bool `json:"deleted"`

	// Dirty marks unsynced local changes. Cleared on successful push or
	// when a pull overwrites the record.
	Dirty bool `json:"dirty"`

	// Hash is the canonical content hash of Payload, used for the
	// order-independent no-op write check before enqueuing a sync intent.
	Hash string `json:"hash"`
}

// Ref returns the EntityRef identifying this record.
func (e *Entity) Ref() EntityRef {
	return EntityRef{Kind: e.Kind, ID: e.ID}
}

// TableName returns the name of the local database table backing Entity.
func (e *Entity) TableName() string {
	return "entities"
}

// GamePayload is the payload structure for KindGame records.
type GamePayload struct {
	Opponent   string      `json:"opponent"`
	PlayedAt   time.Time   `json:"played_at"`
	HomeScore  int         `json:"home_score"`
	AwayScore  int         `json:"away_score"`
	Finalized  bool        `json:"finalized"`
	ScoreEvent []ScoreMark `json:"events,omitempty"`
}

// ScoreMark is a single scoring event inside a game payload.
type ScoreMark struct {
	Period int    `json:"period"`
	Player string `json:"player"`
	Points int    `json:"points"`
}

// RosterPayload is the payload structure for KindRoster records.
type RosterPayload struct {
	TeamName string         `json:"team_name"`
	Season   string         `json:"season,omitempty"`
	Players  []RosterPlayer `json:"players"`
}

// RosterPlayer is one roster entry.
type RosterPlayer struct {
	Name   string `json:"name"`
	Number int    `json:"number"`
}

// SettingsPayload is the payload structure for KindSettings records.
type SettingsPayload struct {
	DefaultPeriods int    `json:"default_periods"`
	PeriodMinutes  int    `json:"period_minutes"`
	Theme          string `json:"theme,omitempty"`
}
