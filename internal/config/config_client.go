package config

import (
	"fmt"
	"time"
)

// Defaults applied by GetClientConfig when the corresponding knobs are left
// unset by every configuration source.
const (
	DefaultSyncInterval   = 5 * time.Minute
	DefaultMaxAttempts    = 5
	DefaultBackoffBase    = 500 * time.Millisecond
	DefaultBackoffMax     = 30 * time.Second
	DefaultSyncWorkers    = 4
	DefaultRequestTimeout = 30 * time.Second
)

// ClientAdapter holds network settings used by the remote transport layer.
type ClientAdapter struct {
	// HTTPAddress is the scorebook API endpoint used by the HTTP transport.
	HTTPAddress string
	// PostgresDSN, when non-empty, selects the direct-PostgreSQL transport.
	PostgresDSN string
	// RequestTimeout is the deadline for a single outbound remote call.
	RequestTimeout time.Duration
}

// ClientDB contains local replica database settings.
type ClientDB struct {
	// DSN is the SQLite file path of the local replica.
	DSN string
}

// ClientStorage groups local storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientSync contains sync queue and engine tuning.
type ClientSync struct {
	// Interval defines how often the background drain runs.
	Interval time.Duration
	// MaxAttempts is the per-intent retry ceiling.
	MaxAttempts int
	// BackoffBase is the initial retry delay.
	BackoffBase time.Duration
	// BackoffMax caps the retry delay.
	BackoffMax time.Duration
	// Workers is the bounded drain concurrency.
	Workers int
}

// ClientSession contains identity/session settings.
type ClientSession struct {
	// TokenFile is where the auth provider deposits the bearer token.
	TokenFile string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains remote transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains local replica settings.
	Storage ClientStorage
	// Sync contains background sync tuning.
	Sync ClientSync
	// Session contains identity/session settings.
	Session ClientSession
}

// GetClientConfig builds and validates the client configuration.
//
// It loads the base config via [GetStructuredConfig], maps it onto the
// [ClientConfig] view, fills unset sync knobs with the package defaults, and
// validates the result.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Remote.HTTPAddress,
			PostgresDSN:    cfg.Remote.PostgresDSN,
			RequestTimeout: cfg.Remote.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Sync: ClientSync{
			Interval:    cfg.Sync.Interval,
			MaxAttempts: cfg.Sync.MaxAttempts,
			BackoffBase: cfg.Sync.BackoffBase,
			BackoffMax:  cfg.Sync.BackoffMax,
			Workers:     cfg.Sync.Workers,
		},
		Session: ClientSession{TokenFile: cfg.Session.TokenFile},
	}

	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Sync.Interval == 0 {
		cfg.Sync.Interval = DefaultSyncInterval
	}
	if cfg.Sync.MaxAttempts == 0 {
		cfg.Sync.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Sync.BackoffBase == 0 {
		cfg.Sync.BackoffBase = DefaultBackoffBase
	}
	if cfg.Sync.BackoffMax == 0 {
		cfg.Sync.BackoffMax = DefaultBackoffMax
	}
	if cfg.Sync.Workers == 0 {
		cfg.Sync.Workers = DefaultSyncWorkers
	}
}
