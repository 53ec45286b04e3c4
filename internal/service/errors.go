package service

import "errors"

var (
	// ErrExhaustedRetries marks an intent that hit the retry ceiling and
	// was moved to the failed bucket.
	ErrExhaustedRetries = errors.New("retry attempts exhausted")

	// ErrIntentNotFailed is returned by a manual retry for a reference that
	// has no failed intent.
	ErrIntentNotFailed = errors.New("no failed intent for reference")

	// ErrNoSession means no usable bearer token is available. Sync is
	// suspended until the auth provider deposits a fresh one.
	ErrNoSession = errors.New("no active session")

	// ErrUnknownEntityKind rejects writes with a kind the store does not
	// recognise.
	ErrUnknownEntityKind = errors.New("unknown entity kind")

	// ErrEmptyPayload rejects upserts with no payload at all.
	ErrEmptyPayload = errors.New("empty payload")
)
