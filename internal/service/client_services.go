package service

import (
	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

type ClientServices struct {
	Sessions SessionStore
	Auth     AuthController
	Notes    NotesService
	AppInfo  AppInfoService
}

func NewClientServices(localStore *store.ClientStorages, serverAdapter adapter.ServerAdapter, buildInfo models.AppBuildInfo, logger *logger.Logger) *ClientServices {
	sessions := NewSessionStore(localStore.SessionRepository, logger.WithComponent("session"))

	return &ClientServices{
		Sessions: sessions,
		Auth:     NewAuthController(sessions, serverAdapter, logger.WithComponent("auth")),
		Notes:    NewNotesService(serverAdapter, logger.WithComponent("notes")),
		AppInfo:  NewAppInfoService(buildInfo, serverAdapter, logger.WithComponent("app_info")),
	}
}
