// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Scorebook Authors

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the sync
// client. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Remote holds the settings for reaching the shared remote replica,
	// either through the scorebook HTTP API or directly over PostgreSQL.
	Remote Remote `envPrefix:"REMOTE_"`

	// Storage holds configuration for the local replica database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Sync holds tuning knobs for the background sync engine: drain
	// interval, retry ceiling, backoff bounds, and worker count.
	Sync Sync `envPrefix:"SYNC_"`

	// Session holds settings for obtaining the owning identity's session
	// token from the external auth provider.
	Session Session `envPrefix:"SESSION_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Remote holds the settings for the remote transport.
type Remote struct {
	// HTTPAddress is the scorebook API endpoint in "host:port" or URL form.
	// Env: REMOTE_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// PostgresDSN, when set, selects the direct-PostgreSQL transport
	// instead of the HTTP API. Used by deployments that talk straight to
	// the shared database.
	// Env: REMOTE_POSTGRES_DSN
	PostgresDSN string `env:"POSTGRES_DSN"`

	// RequestTimeout bounds every single remote call. On expiry the
	// underlying request is cancelled, not abandoned.
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for the local replica.
type Storage struct {
	// DB holds the local SQLite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local replica database.
type DB struct {
	// DSN is the SQLite file path for the local replica
	// (e.g. "~/.scorebook/scorebook.db").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Sync holds tuning knobs for the sync queue and engine.
type Sync struct {
	// Interval is how often the background job drains the sync queue.
	// Env: SYNC_INTERVAL
	Interval time.Duration `env:"INTERVAL"`

	// MaxAttempts is the retry ceiling per intent; once reached the intent
	// moves to the failed bucket.
	// Env: SYNC_MAX_ATTEMPTS
	MaxAttempts int `env:"MAX_ATTEMPTS"`

	// BackoffBase is the first retry delay; subsequent delays grow
	// exponentially up to BackoffMax, with jitter.
	// Env: SYNC_BACKOFF_BASE
	BackoffBase time.Duration `env:"BACKOFF_BASE"`

	// BackoffMax caps the retry delay.
	// Env: SYNC_BACKOFF_MAX
	BackoffMax time.Duration `env:"BACKOFF_MAX"`

	// Workers is the number of concurrent intent executors per drain.
	// Concurrency is across distinct entities only; per-entity execution
	// stays single-flight.
	// Env: SYNC_WORKERS
	Workers int `env:"WORKERS"`
}

// Session holds settings for the externally supplied session.
type Session struct {
	// TokenFile is the path where the auth provider deposits the current
	// bearer token. The sync engine re-reads it when the session expires.
	// Env: SESSION_TOKEN_FILE
	TokenFile string `env:"TOKEN_FILE"`
}

// GetStructuredConfig loads and merges the configuration from all available
// sources in the following priority order (last source wins for non-zero
// fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
