package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and the
// string-friendly [Duration] type, so that durations can be written as
// "30s" / "5m" in the config file.
type StructuredJSONConfig struct {
	Remote struct {
		HTTPAddress    string   `json:"address"`
		PostgresDSN    string   `json:"postgres_dsn"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"remote,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Sync struct {
		Interval    Duration `json:"interval"`
		MaxAttempts int      `json:"max_attempts"`
		BackoffBase Duration `json:"backoff_base"`
		BackoffMax  Duration `json:"backoff_max"`
		Workers     int      `json:"workers"`
	} `json:"sync,omitempty"`

	Session struct {
		TokenFile string `json:"token_file"`
	} `json:"session,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Remote: Remote{
			HTTPAddress:    jsonCfg.Remote.HTTPAddress,
			PostgresDSN:    jsonCfg.Remote.PostgresDSN,
			RequestTimeout: time.Duration(jsonCfg.Remote.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Sync: Sync{
			Interval:    time.Duration(jsonCfg.Sync.Interval),
			MaxAttempts: jsonCfg.Sync.MaxAttempts,
			BackoffBase: time.Duration(jsonCfg.Sync.BackoffBase),
			BackoffMax:  time.Duration(jsonCfg.Sync.BackoffMax),
			Workers:     jsonCfg.Sync.Workers,
		},
		Session:      Session{TokenFile: jsonCfg.Session.TokenFile},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
