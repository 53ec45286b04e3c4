// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Scorebook Authors

package config

import "strings"

// validate checks that the final merged [ClientConfig] satisfies all
// invariants the sync core relies on at startup.
//
// The local replica must live in a durable file: an in-memory SQLite DSN
// would silently violate the local-first durability guarantee, so it is
// rejected outright.
//
// Returns nil if the configuration is valid, or one of the sentinel errors
// from errors.go otherwise.
func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" && cfg.Adapter.PostgresDSN == "" {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Sync.Interval <= 0 || cfg.Sync.MaxAttempts <= 0 || cfg.Sync.Workers <= 0 {
		return ErrInvalidSyncConfigs
	}
	if cfg.Sync.BackoffBase <= 0 || cfg.Sync.BackoffMax < cfg.Sync.BackoffBase {
		return ErrInvalidSyncConfigs
	}

	return nil
}
