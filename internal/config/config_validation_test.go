// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *StructuredConfig {
	cfg := &StructuredConfig{Storage: Storage{DB: DB{DSN: "postgres://localhost/db"}}}
	cfg.applyDefaults()
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "defaults are valid", mutate: func(*StructuredConfig) {}},
		{
			name:    "empty dsn",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "unknown driver",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.Driver = "mysql" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:   "sqlite driver",
			mutate: func(cfg *StructuredConfig) { cfg.Storage.DB.Driver = "sqlite3" },
		},
		{
			name:    "base url without scheme",
			mutate:  func(cfg *StructuredConfig) { cfg.Adapter.BaseURL = "classroom.local" },
			wantErr: ErrInvalidAdapterConfigs,
		},
		{
			name:    "negative in-flight cap",
			mutate:  func(cfg *StructuredConfig) { cfg.Adapter.MaxInFlight = -1 },
			wantErr: ErrInvalidAdapterConfigs,
		},
		{
			name: "retry base above cap",
			mutate: func(cfg *StructuredConfig) {
				cfg.Adapter.RetryBase = cfg.Adapter.RetryCap * 2
			},
			wantErr: ErrInvalidAdapterConfigs,
		},
		{
			name:    "http notifier without url",
			mutate:  func(cfg *StructuredConfig) { cfg.Notifier.Kind = NotifierHTTP },
			wantErr: ErrInvalidNotifierConfigs,
		},
		{
			name: "http notifier with url",
			mutate: func(cfg *StructuredConfig) {
				cfg.Notifier.Kind = NotifierHTTP
				cfg.Notifier.BaseURL = "http://wa.local"
			},
		},
		{
			name:    "redis notifier without address",
			mutate:  func(cfg *StructuredConfig) { cfg.Notifier.Kind = NotifierRedis },
			wantErr: ErrInvalidNotifierConfigs,
		},
		{
			name:    "unknown notifier",
			mutate:  func(cfg *StructuredConfig) { cfg.Notifier.Kind = "pigeon" },
			wantErr: ErrInvalidNotifierConfigs,
		},
		{
			name:    "negative interval",
			mutate:  func(cfg *StructuredConfig) { cfg.Workers.DeltaInterval = -1 },
			wantErr: ErrInvalidWorkerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
