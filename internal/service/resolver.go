// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Scorebook Authors

package service

import "github.com/scorebook-app/scorebook/models"

// lwwResolver implements last-write-wins conflict resolution.
//
// Both sides' UpdatedAt timestamps are compared as epoch milliseconds, which
// makes the comparison immune to time zone and serialisation format
// differences between devices. Deletions carry timestamps like any other
// mutation: a delete beats an older upsert, and a newer upsert resurrects a
// record deleted earlier on another device.
type lwwResolver struct {
	// remoteWinsOnTie breaks exact millisecond ties. Defaults to true so
	// that every device deciding the same conflict converges on the copy
	// already visible to the rest of the fleet.
	remoteWinsOnTie bool
}

// NewLWWResolver returns the default [ConflictResolver]: last write wins,
// remote wins exact-timestamp ties.
func NewLWWResolver() ConflictResolver {
	return &lwwResolver{remoteWinsOnTie: true}
}

// NewLWWResolverLocalTiebreak returns a last-write-wins resolver that keeps
// the local copy on exact-timestamp ties.
func NewLWWResolverLocalTiebreak() ConflictResolver {
	return &lwwResolver{remoteWinsOnTie: false}
}

// Resolve implements [ConflictResolver].
func (r *lwwResolver) Resolve(conflict models.Conflict) models.Resolution {
	localMs := conflict.Local.UpdatedAt.UnixMilli()
	remoteMs := conflict.Remote.UpdatedAt.UnixMilli()

	switch {
	case localMs > remoteMs:
		return models.Resolution{Winner: conflict.Local, RemoteWon: false}
	case remoteMs > localMs:
		return models.Resolution{Winner: conflict.Remote, RemoteWon: true}
	case r.remoteWinsOnTie:
		return models.Resolution{Winner: conflict.Remote, RemoteWon: true}
	default:
		return models.Resolution{Winner: conflict.Local, RemoteWon: false}
	}
}
