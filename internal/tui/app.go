package tui

import (
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
)

const sessionExpiredNotice = "Session expired. Please log in again."

// RootModel is a TUI router:
// 1) keeps active page
// 2) handles global Ctrl+C quit
// 3) handles NavigateTo messages and keeps unauthenticated users off protected pages
// 4) delegates all other messages to the active page
type RootModel struct {
	pages       map[string]tea.Model
	current     tea.Model
	currentPage string

	auth      service.AuthController
	buildInfo models.AppBuildInfo

	showBuildInfo bool
}

// NewRootModel registers all pages and opens startPage, subject to the
// access guard.
func NewRootModel(pages map[string]tea.Model, startPage string, auth service.AuthController, buildInfo models.AppBuildInfo) RootModel {
	r := RootModel{
		pages:     pages,
		auth:      auth,
		buildInfo: buildInfo,
	}
	r.open(r.guard(startPage))
	return r
}

func (r RootModel) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Global hotkey for every page.
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return r, tea.Quit
		case "v":
			if r.currentPage == pageWelcome {
				r.showBuildInfo = !r.showBuildInfo
				return r, nil
			}
		case "esc":
			if r.showBuildInfo {
				r.showBuildInfo = false
				return r, nil
			}
		}

		if r.showBuildInfo {
			return r, nil
		}
	}

	// Cross-page navigation.
	if nav, ok := msg.(NavigateTo); ok {
		if _, exists := r.pages[nav.Page]; !exists {
			return r, nil
		}

		page := r.guard(nav.Page)
		r.showBuildInfo = false
		r.open(page)

		if page != nav.Page {
			return r, notice(sessionExpiredNotice)
		}
		if nav.Payload != nil {
			return r, func() tea.Msg { return nav.Payload }
		}
		return r, r.current.Init()
	}

	if r.current == nil {
		return r, nil
	}

	updated, cmd := r.current.Update(msg)
	r.current = updated
	r.pages[r.currentPage] = updated

	// The session may have been dropped while handling msg, for example
	// after the server rejected the token.
	if page := r.guard(r.currentPage); page != r.currentPage {
		r.open(page)
		return r, tea.Batch(cmd, notice(sessionExpiredNotice))
	}

	return r, cmd
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.buildInfo)
	}
	if r.current == nil {
		return renderPage("GoNoteKeeper", "", "")
	}
	return r.current.View()
}

// CurrentPage returns the name of the active page.
func (r RootModel) CurrentPage() string {
	return r.currentPage
}

func (r *RootModel) open(page string) {
	r.currentPage = page
	r.current = r.pages[page]
}

// guard returns the page to show instead of page for the current auth state.
func (r RootModel) guard(page string) string {
	if !isProtected(page) || r.auth.Allow(models.AccessProtected) {
		return page
	}
	return pageWelcome
}

func isProtected(page string) bool {
	switch page {
	case pageList, pageCreate, pageDetail:
		return true
	default:
		return false
	}
}

func notice(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text} }
}
