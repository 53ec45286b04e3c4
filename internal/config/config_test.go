package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_PopulatesStructuredConfig(t *testing.T) {
	t.Setenv("REMOTE_ADDRESS", "api.scorebook.test:443")
	t.Setenv("REMOTE_REQUEST_TIMEOUT", "15s")
	t.Setenv("STORAGE_DB_DSN", "/tmp/scorebook.db")
	t.Setenv("SYNC_INTERVAL", "2m")
	t.Setenv("SYNC_MAX_ATTEMPTS", "7")
	t.Setenv("SYNC_WORKERS", "2")
	t.Setenv("SESSION_TOKEN_FILE", "/tmp/token")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "api.scorebook.test:443", cfg.Remote.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, "/tmp/scorebook.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 2*time.Minute, cfg.Sync.Interval)
	assert.Equal(t, 7, cfg.Sync.MaxAttempts)
	assert.Equal(t, 2, cfg.Sync.Workers)
	assert.Equal(t, "/tmp/token", cfg.Session.TokenFile)
}

func TestParseJSON_FullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"remote": {"address": "localhost:8080", "request_timeout": "45s"},
		"storage": {"db": {"dsn": "/data/local.db"}},
		"sync": {"interval": "90s", "max_attempts": 3, "backoff_base": "250ms", "backoff_max": "10s", "workers": 8},
		"session": {"token_file": "/data/token"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.Remote.HTTPAddress)
	assert.Equal(t, 45*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, "/data/local.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 90*time.Second, cfg.Sync.Interval)
	assert.Equal(t, 3, cfg.Sync.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Sync.BackoffBase)
	assert.Equal(t, 10*time.Second, cfg.Sync.BackoffMax)
	assert.Equal(t, 8, cfg.Sync.Workers)
	assert.Equal(t, "/data/token", cfg.Session.TokenFile)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Duration
		ok    bool
	}{
		{name: "string form", input: `"1h30m"`, want: 90 * time.Minute, ok: true},
		{name: "numeric nanoseconds", input: `1000000000`, want: time.Second, ok: true},
		{name: "garbage", input: `"not-a-duration"`, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestConfigBuilder_MergePriority(t *testing.T) {
	// mergo keeps the first non-zero value, so earlier sources win.
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Remote: Remote{HTTPAddress: "from-env:1"}},
		&StructuredConfig{Remote: Remote{HTTPAddress: "from-flags:2", PostgresDSN: "pg-dsn"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "from-env:1", cfg.Remote.HTTPAddress)
	assert.Equal(t, "pg-dsn", cfg.Remote.PostgresDSN, "zero fields are filled from later sources")
}

func validClientConfig() *ClientConfig {
	cfg := &ClientConfig{
		Adapter: ClientAdapter{HTTPAddress: "localhost:8080"},
		Storage: ClientStorage{DB: ClientDB{DSN: "/tmp/scorebook.db"}},
	}
	cfg.applyDefaults()
	return cfg
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ClientConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*ClientConfig) {}, wantErr: nil},
		{
			name:    "empty local dsn",
			mutate:  func(c *ClientConfig) { c.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "in-memory local dsn",
			mutate:  func(c *ClientConfig) { c.Storage.DB.DSN = ":memory:" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "no transport at all",
			mutate: func(c *ClientConfig) {
				c.Adapter.HTTPAddress = ""
				c.Adapter.PostgresDSN = ""
			},
			wantErr: ErrInvalidAdapterConfigs,
		},
		{
			name: "postgres-only transport is fine",
			mutate: func(c *ClientConfig) {
				c.Adapter.HTTPAddress = ""
				c.Adapter.PostgresDSN = "postgres://u:p@db/scorebook"
			},
			wantErr: nil,
		},
		{
			name:    "zero retry ceiling",
			mutate:  func(c *ClientConfig) { c.Sync.MaxAttempts = -1 },
			wantErr: ErrInvalidSyncConfigs,
		},
		{
			name:    "backoff bounds out of order",
			mutate:  func(c *ClientConfig) { c.Sync.BackoffMax = c.Sync.BackoffBase / 2 },
			wantErr: ErrInvalidSyncConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validClientConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestClientConfig_ApplyDefaults(t *testing.T) {
	cfg := &ClientConfig{}
	cfg.applyDefaults()

	assert.Equal(t, DefaultSyncInterval, cfg.Sync.Interval)
	assert.Equal(t, DefaultMaxAttempts, cfg.Sync.MaxAttempts)
	assert.Equal(t, DefaultBackoffBase, cfg.Sync.BackoffBase)
	assert.Equal(t, DefaultBackoffMax, cfg.Sync.BackoffMax)
	assert.Equal(t, DefaultSyncWorkers, cfg.Sync.Workers)
	assert.Equal(t, DefaultRequestTimeout, cfg.Adapter.RequestTimeout)
}

func TestNetAddress_SetAndString(t *testing.T) {
	var a NetAddress
	require.NoError(t, a.Set("localhost:9090"))
	assert.Equal(t, "localhost:9090", a.String())

	assert.Error(t, a.Set("no-port"))
	assert.Error(t, a.Set("localhost:0"))
	assert.Error(t, a.Set("not-an-ip:80"))
}
