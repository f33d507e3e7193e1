// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/sama64/nerdeala25/internal/adapter"
	"github.com/sama64/nerdeala25/internal/config"
	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/internal/notifier"
	"github.com/sama64/nerdeala25/internal/store"
	"github.com/sama64/nerdeala25/models"
)

type Services struct {
	AppInfoService     AppInfoService
	CredentialProvider CredentialProvider
	Dispatcher         NotificationDispatcher
	SyncService        SyncService
}

func NewServices(
	storages *store.Storages,
	classroom adapter.ClassroomAdapter,
	n notifier.Notifier,
	recorder Recorder,
	cfg config.StructuredConfig,
	build models.AppBuildInfo,
	logger *logger.Logger,
) *Services {
	credentials := NewCredentialProvider(storages.Credentials, cfg.OAuth, logger)
	dispatcher := NewNotificationDispatcher(n, recorder)

	return &Services{
		AppInfoService:     NewAppInfoService(cfg.App, build, logger),
		CredentialProvider: credentials,
		Dispatcher:         dispatcher,
		SyncService:        NewSyncService(classroom, credentials, dispatcher, storages, storages.ETags, recorder, logger),
	}
}
