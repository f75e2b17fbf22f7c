package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// WelcomeModel is the landing page for anonymous users.
type WelcomeModel struct {
	ctx     context.Context
	appInfo service.AppInfoService

	items        []string
	idx          int
	status       string
	serverStatus string
}

func NewWelcomeModel(ctx context.Context, appInfo service.AppInfoService) *WelcomeModel {
	return &WelcomeModel{
		ctx:     ctx,
		appInfo: appInfo,
		items:   []string{"Log in", "Register", "Quit"},
	}
}

func (m *WelcomeModel) Init() tea.Cmd {
	ctx, appInfo := m.ctx, m.appInfo
	return func() tea.Msg {
		return serverStatusMsg{status: appInfo.ServerStatus(ctx)}
	}
}

func (m *WelcomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case noticeMsg:
		m.status = msg.text
		return m, nil
	case serverStatusMsg:
		m.serverStatus = msg.status
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case "q":
		return m, tea.Quit
	case "enter":
		m.status = ""
		switch m.idx {
		case 0:
			return m, func() tea.Msg { return NavigateTo{Page: pageLogin} }
		case 1:
			return m, func() tea.Msg { return NavigateTo{Page: pageRegister} }
		default:
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *WelcomeModel) View() string {
	var b strings.Builder

	b.WriteString("Welcome to GoNoteKeeper\n")
	b.WriteString("Server: ")
	if m.serverStatus == "" {
		b.WriteString("checking...")
	} else {
		b.WriteString(m.serverStatus)
	}
	b.WriteString("\n\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n\n")
	}

	idColWidth := lipgloss.Width(fmt.Sprintf("%d", len(m.items))) + 2
	actionColWidth := lipgloss.Width("Action")
	for _, item := range m.items {
		if w := lipgloss.Width(item); w > actionColWidth {
			actionColWidth = w
		}
	}

	b.WriteString(fmt.Sprintf("%-*s │ %-*s\n", idColWidth, "#", actionColWidth, "Action"))
	b.WriteString(strings.Repeat("─", idColWidth))
	b.WriteString("─┼─")
	b.WriteString(strings.Repeat("─", actionColWidth))
	b.WriteString("\n")

	for i, item := range m.items {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		idCell := fmt.Sprintf("%s %d", cursor, i+1)
		b.WriteString(fmt.Sprintf("%-*s │ %-*s\n", idColWidth, idCell, actionColWidth, item))
	}

	return renderPage("MAIN MENU", strings.TrimRight(b.String(), "\n"), "enter: select │ ↑/↓: move │ v: version │ q: quit")
}
