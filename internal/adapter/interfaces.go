// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Scorebook Authors

// Package adapter provides transport-layer abstractions for reaching the
// shared remote replica.
//
// The primary abstraction is [RemoteTransport], which decouples the sync
// engine from the underlying protocol. The package ships two
// implementations: an HTTP/REST one ([NewHTTPRemoteTransport]) that talks to
// the scorebook API, and a direct-PostgreSQL one ([NewPostgresRemoteTransport])
// for deployments that reach the shared database without an API in between.
//
// Error values defined in errors.go are mapped from HTTP status codes and
// PostgreSQL SQLSTATEs so that callers can use [errors.Is] for
// transport-agnostic error handling (e.g. [ErrConflict] for an
// optimistic-concurrency rejection, regardless of transport).
package adapter

import (
	"context"

	"github.com/scorebook-app/scorebook/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_transport_mock.go -package=mock

// RemoteTransport defines transport-agnostic communication with the shared
// remote replica. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to
// the sentinel values defined in this package.
//
// Every call is scoped to the owning identity carried in the request, and
// bounded by the context deadline: on expiry the underlying operation is
// cancelled, never left running in the background.
type RemoteTransport interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent requests. Called by the session gate whenever the auth
	// provider hands over a fresh token. Implementations without a token
	// concept (direct DB) may ignore it.
	SetToken(token string)

	// Token returns the bearer token currently stored in the transport, or
	// an empty string if no token has been set yet.
	Token() string

	// Push writes one record to the remote under optimistic concurrency.
	// The remote rejects the write with [ErrConflict] (wrapped) when its
	// current version for the record differs from req.ExpectedVersion.
	// On success the response carries the version the remote assigned.
	Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error)

	// Pull fetches the remote's current state for a single record.
	// Returns [ErrNotFound] (wrapped) when the remote has no such record.
	Pull(ctx context.Context, ownerID int64, ref models.EntityRef) (models.PullResponse, error)

	// PullAll fetches every record the remote holds for the owner,
	// including soft-deleted ones, so a full resync can propagate
	// deletions too.
	PullAll(ctx context.Context, ownerID int64) ([]models.PullResponse, error)
}
