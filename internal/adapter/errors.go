package adapter

import "errors"

// Sentinel errors mapped from transport-level failures. Callers match them
// with [errors.Is]; the sync engine routes each into exactly one class of
// its error taxonomy (conflict / transient / fatal).
var (
	// ErrConflict signals an optimistic-concurrency rejection: the remote's
	// current version token has advanced past the one the push assumed.
	// Maps from HTTP 409 or a PostgreSQL serialization-failure class
	// SQLSTATE.
	ErrConflict = errors.New("remote version conflict")

	// ErrUnauthorized signals a rejected or expired session.
	ErrUnauthorized = errors.New("remote unauthorized")

	// ErrNotFound signals that the requested record does not exist
	// remotely.
	ErrNotFound = errors.New("remote record not found")

	// ErrBadPayload signals a structurally invalid write (malformed
	// payload, schema violation). Never retried: resubmitting an invalid
	// payload can never succeed.
	ErrBadPayload = errors.New("remote rejected payload")

	// ErrUnavailable signals a transient failure class: network errors,
	// timeouts, 5xx responses, rate limiting. Safe to retry with backoff.
	ErrUnavailable = errors.New("remote temporarily unavailable")
)
