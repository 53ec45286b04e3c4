package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid remote transport settings
	// (for example, neither an HTTP address nor a PostgreSQL DSN).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid local replica settings
	// (for example, an empty DSN or unsupported in-memory DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidSyncConfigs indicates invalid sync tuning
	// (for example, a negative retry ceiling or backoff bounds out of order).
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
)
