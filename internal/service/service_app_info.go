package service

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

const (
	ServerHealthy     = "healthy"
	ServerUnhealthy   = "unhealthy"
	ServerUnreachable = "unreachable"
)

type appInfoService struct {
	buildInfo models.AppBuildInfo
	adapter   adapter.ServerAdapter

	logger *logger.Logger
}

func NewAppInfoService(buildInfo models.AppBuildInfo, serverAdapter adapter.ServerAdapter, logger *logger.Logger) AppInfoService {
	return &appInfoService{
		buildInfo: buildInfo,
		adapter:   serverAdapter,
		logger:    logger,
	}
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.buildInfo.BuildVersion()
}

func (s *appInfoService) BuildInfo() models.AppBuildInfo {
	return s.buildInfo
}

func (s *appInfoService) ServerStatus(ctx context.Context) string {
	health, err := s.adapter.Health(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("func", "appInfoService.ServerStatus").Msg("health check failed")
		if adapter.KindOf(err) == adapter.KindNetworkError {
			return ServerUnreachable
		}
		return ServerUnhealthy
	}

	s.logger.Debug().
		Str("func", "appInfoService.ServerStatus").
		Str("status", health.Status).
		Str("database", health.Database).
		Msg("health check")

	if !health.Healthy() {
		return ServerUnhealthy
	}
	return ServerHealthy
}
