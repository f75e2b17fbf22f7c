package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/validators"
	"github.com/MKhiriev/go-note-keeper/internal/viewmodel"
	"github.com/MKhiriev/go-note-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
)

// TUI is the terminal front end over the client services and view-models.
type TUI struct {
	services  *service.ClientServices
	list      *viewmodel.NotesList
	detail    *viewmodel.NoteDetail
	validator validators.Validator
	logger    *logger.Logger
}

func New(services *service.ClientServices, list *viewmodel.NotesList, detail *viewmodel.NoteDetail, validator validators.Validator, logger *logger.Logger) *TUI {
	return &TUI{
		services:  services,
		list:      list,
		detail:    detail,
		validator: validator,
		logger:    logger,
	}
}

// Model builds the root model. Authenticated users start on the notes list.
func (t *TUI) Model(ctx context.Context) RootModel {
	pages := map[string]tea.Model{
		pageWelcome:  NewWelcomeModel(ctx, t.services.AppInfo),
		pageLogin:    NewLoginModel(ctx, t.services.Auth, t.validator),
		pageRegister: NewRegisterModel(ctx, t.services.Auth, t.validator),
		pageList:     NewNotesListModel(ctx, t.list, t.services.Auth),
		pageCreate:   NewCreateModel(ctx, t.list),
		pageDetail:   NewNoteDetailModel(ctx, t.detail),
	}

	start := pageWelcome
	if t.services.Auth.State() == models.AuthAuthenticated {
		start = pageList
	}

	return NewRootModel(pages, start, t.services.Auth, t.services.AppInfo.BuildInfo())
}

// Run blocks until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	program := tea.NewProgram(t.Model(ctx), tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			t.logger.Info().Msg("terminal UI stopped by context")
			return nil
		}
		return fmt.Errorf("run terminal UI: %w", err)
	}

	return nil
}
