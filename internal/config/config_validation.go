// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
	"strings"
	"time"
)

// Defaults used when no source sets a value.
const (
	DefaultDBDriver        = "pgx"
	DefaultAdapterBaseURL  = "https://classroom.googleapis.com/v1"
	DefaultAdapterTimeout  = 20 * time.Second
	DefaultMaxInFlight     = 12
	DefaultRetryAttempts   = 3
	DefaultRetryBase       = time.Second
	DefaultRetryCap        = 10 * time.Second
	DefaultPageSize        = 200
	DefaultTokenURL        = "https://oauth2.googleapis.com/token"
	DefaultRefreshMargin   = 5 * time.Minute
	DefaultNotifierQueue   = "whatsapp:pending"
	DefaultNotifierTimeout = 10 * time.Second
	DefaultDeltaInterval   = 5 * time.Minute
	DefaultFullInterval    = 6 * time.Hour
	DefaultRequestTimeout  = 30 * time.Second
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = DefaultDBDriver
	}

	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}

	a := &cfg.Adapter
	if a.BaseURL == "" {
		a.BaseURL = DefaultAdapterBaseURL
	}
	if a.RequestTimeout == 0 {
		a.RequestTimeout = DefaultAdapterTimeout
	}
	if a.MaxInFlight == 0 {
		a.MaxInFlight = DefaultMaxInFlight
	}
	if a.RetryAttempts == 0 {
		a.RetryAttempts = DefaultRetryAttempts
	}
	if a.RetryBase == 0 {
		a.RetryBase = DefaultRetryBase
	}
	if a.RetryCap == 0 {
		a.RetryCap = DefaultRetryCap
	}
	if a.PageSize == 0 {
		a.PageSize = DefaultPageSize
	}

	if cfg.OAuth.TokenURL == "" {
		cfg.OAuth.TokenURL = DefaultTokenURL
	}
	if cfg.OAuth.RefreshMargin == 0 {
		cfg.OAuth.RefreshMargin = DefaultRefreshMargin
	}

	if cfg.Notifier.Kind == "" {
		cfg.Notifier.Kind = NotifierConsole
	}
	if cfg.Notifier.Queue == "" {
		cfg.Notifier.Queue = DefaultNotifierQueue
	}
	if cfg.Notifier.RequestTimeout == 0 {
		cfg.Notifier.RequestTimeout = DefaultNotifierTimeout
	}

	if cfg.Workers.DeltaInterval == 0 {
		cfg.Workers.DeltaInterval = DefaultDeltaInterval
	}
	if cfg.Workers.FullInterval == 0 {
		cfg.Workers.FullInterval = DefaultFullInterval
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or one of the ErrInvalid*
// sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	db := cfg.Storage.DB
	if db.DSN == "" || (db.Driver != "pgx" && db.Driver != "sqlite3") {
		return ErrInvalidStorageConfigs
	}

	if u, err := url.Parse(cfg.Adapter.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Adapter.MaxInFlight < 1 || cfg.Adapter.RetryBase > cfg.Adapter.RetryCap || cfg.Adapter.PageSize < 1 {
		return ErrInvalidAdapterConfigs
	}

	switch strings.ToLower(cfg.Notifier.Kind) {
	case NotifierConsole:
	case NotifierHTTP:
		if cfg.Notifier.BaseURL == "" {
			return ErrInvalidNotifierConfigs
		}
	case NotifierRedis:
		if cfg.Notifier.RedisAddr == "" {
			return ErrInvalidNotifierConfigs
		}
	default:
		return ErrInvalidNotifierConfigs
	}

	if cfg.Workers.DeltaInterval < 0 || cfg.Workers.FullInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Server.RequestTimeout < 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
