package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/workers"
	"github.com/MKhiriev/go-note-keeper/models"
)

type App struct {
	services *service.ClientServices
	ui       UI
	workers  *workers.Workers
	logger   *logger.Logger
}

// NewApp wires the UI with a refresh worker that keeps notes current while
// a user is logged in.
func NewApp(services *service.ClientServices, ui UI, notes workers.Refresher, cfg config.ClientWorkers, logger *logger.Logger) *App {
	authenticated := func() bool {
		return services.Auth.State() == models.AuthAuthenticated
	}

	return &App{
		services: services,
		ui:       ui,
		workers: workers.NewWorkers(
			workers.NewRefreshWorker(notes, cfg.RefreshInterval, authenticated, logger.WithComponent("refresh-worker")),
		),
		logger: logger,
	}
}

func (a *App) Run(ctx context.Context) error {
	state := a.services.Auth.Init(ctx)
	a.logger.Info().
		Str("auth_state", state.String()).
		Str("user", a.services.Auth.User().Email).
		Msg("session restored")

	a.logger.Info().
		Str("app_version", a.services.AppInfo.GetAppVersion(ctx)).
		Str("server_status", a.services.AppInfo.ServerStatus(ctx)).
		Msg("client started")

	a.workers.Start(ctx)
	defer a.workers.Stop()

	if err := a.ui.Run(ctx); err != nil {
		return fmt.Errorf("ui: %w", err)
	}

	a.logger.Info().Msg("client stopped")
	return nil
}
