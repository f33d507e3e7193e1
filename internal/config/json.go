// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags. Durations
// are accepted either as strings ("30s") or as nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		Version      string `json:"version"`
		TokenSignKey string `json:"token_sign_key"`
		TokenIssuer  string `json:"token_issuer"`
		LogLevel     string `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		BaseURL        string   `json:"base_url"`
		RequestTimeout Duration `json:"request_timeout"`
		MaxInFlight    int64    `json:"max_in_flight"`
		RetryAttempts  uint64   `json:"retry_attempts"`
		RetryBase      Duration `json:"retry_base"`
		RetryCap       Duration `json:"retry_cap"`
		PageSize       int      `json:"page_size"`
	} `json:"adapter,omitempty"`

	OAuth struct {
		ClientID      string   `json:"client_id"`
		ClientSecret  string   `json:"client_secret"`
		TokenURL      string   `json:"token_url"`
		RefreshMargin Duration `json:"refresh_margin"`
	} `json:"oauth,omitempty"`

	Notifier struct {
		Kind           string   `json:"kind"`
		BaseURL        string   `json:"base_url"`
		APIKey         string   `json:"api_key"`
		RequestTimeout Duration `json:"request_timeout"`
		RedisAddr      string   `json:"redis_addr"`
		Queue          string   `json:"queue"`
	} `json:"notifier,omitempty"`

	Workers struct {
		DeltaInterval Duration `json:"delta_interval"`
		FullInterval  Duration `json:"full_interval"`
		RunOnStart    bool     `json:"run_on_start"`
	} `json:"workers,omitempty"`
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
		App: App{
			Version:      jsonCfg.App.Version,
			TokenSignKey: jsonCfg.App.TokenSignKey,
			TokenIssuer:  jsonCfg.App.TokenIssuer,
			LogLevel:     jsonCfg.App.LogLevel,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			BaseURL:        jsonCfg.Adapter.BaseURL,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			MaxInFlight:    jsonCfg.Adapter.MaxInFlight,
			RetryAttempts:  jsonCfg.Adapter.RetryAttempts,
			RetryBase:      time.Duration(jsonCfg.Adapter.RetryBase),
			RetryCap:       time.Duration(jsonCfg.Adapter.RetryCap),
			PageSize:       jsonCfg.Adapter.PageSize,
		},
		OAuth: OAuth{
			ClientID:      jsonCfg.OAuth.ClientID,
			ClientSecret:  jsonCfg.OAuth.ClientSecret,
			TokenURL:      jsonCfg.OAuth.TokenURL,
			RefreshMargin: time.Duration(jsonCfg.OAuth.RefreshMargin),
		},
		Notifier: Notifier{
			Kind:           jsonCfg.Notifier.Kind,
			BaseURL:        jsonCfg.Notifier.BaseURL,
			APIKey:         jsonCfg.Notifier.APIKey,
			RequestTimeout: time.Duration(jsonCfg.Notifier.RequestTimeout),
			RedisAddr:      jsonCfg.Notifier.RedisAddr,
			Queue:          jsonCfg.Notifier.Queue,
		},
		Workers: Workers{
			DeltaInterval: time.Duration(jsonCfg.Workers.DeltaInterval),
			FullInterval:  time.Duration(jsonCfg.Workers.FullInterval),
			RunOnStart:    jsonCfg.Workers.RunOnStart,
		},
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
