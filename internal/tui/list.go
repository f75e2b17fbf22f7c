package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/viewmodel"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const redrawInterval = time.Second

// NotesListModel renders the notes list with search and delete confirmation.
// Background refreshes change the view-model directly; a redraw tick keeps the
// screen current.
type NotesListModel struct {
	ctx  context.Context
	vm   *viewmodel.NotesList
	auth service.AuthController

	search    textinput.Model
	searching bool
	spinner   spinner.Model
	loading   bool

	idx       int
	redrawGen int
	confirm   *confirmModel
	status    string
	errMsg    string
}

func NewNotesListModel(ctx context.Context, vm *viewmodel.NotesList, auth service.AuthController) *NotesListModel {
	search := textinput.New()
	search.Placeholder = "search title or content"
	search.Prompt = "/ "
	search.Width = 40

	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return &NotesListModel{
		ctx:     ctx,
		vm:      vm,
		auth:    auth,
		search:  search,
		spinner: s,
	}
}

// Init refreshes the list each time the page is opened. The search box and
// the delete prompt follow the view-model, which may have been reset by a
// logout in the meantime.
func (m *NotesListModel) Init() tea.Cmd {
	m.loading = true
	m.errMsg = ""
	if q := m.vm.Query(); q != m.search.Value() {
		m.search.SetValue(q)
		m.searching = false
		m.idx = 0
	}
	if _, ok := m.vm.PendingDelete(); !ok {
		m.confirm = nil
	}
	m.redrawGen++
	return tea.Batch(m.cmdRefresh(), m.spinner.Tick, redraw(m.redrawGen))
}

func (m *NotesListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case notesRefreshedMsg:
		m.loading = false
		m.errMsg = humanizeError(msg.err)
		m.clampIdx()
		return m, nil
	case noteDeletedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.clampIdx()
		m.status = "Note deleted"
		return m, clearStatusLater()
	case noticeMsg:
		m.status = msg.text
		m.clampIdx()
		return m, clearStatusLater()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case redrawMsg:
		if msg.gen != m.redrawGen {
			return m, nil
		}
		m.clampIdx()
		return m, redraw(m.redrawGen)
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.searching {
		return m.updateSearch(msg)
	}
	return m, nil
}

func (m *NotesListModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		switch {
		case key.Matches(msg, keys.yes):
			m.confirm = nil
			m.loading = true
			return m, tea.Batch(m.cmdConfirmDelete(), m.spinner.Tick)
		case key.Matches(msg, keys.no):
			m.confirm = nil
			m.vm.CancelDelete()
		}
		return m, nil
	}

	if m.searching {
		switch {
		case key.Matches(msg, keys.esc), key.Matches(msg, keys.enter):
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		return m.updateSearch(msg)
	}

	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.vm.Visible())-1 {
			m.idx++
		}
	case key.Matches(msg, keys.search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, keys.esc):
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.vm.SetQuery("")
			m.clampIdx()
		}
	case key.Matches(msg, keys.enter):
		if note, ok := m.selected(); ok {
			return m, func() tea.Msg {
				return NavigateTo{Page: pageDetail, Payload: openNoteMsg{id: note.ID}}
			}
		}
	case key.Matches(msg, keys.newItem):
		return m, func() tea.Msg { return NavigateTo{Page: pageCreate} }
	case key.Matches(msg, keys.delete):
		note, ok := m.selected()
		if !ok {
			return m, nil
		}
		prompt, err := m.vm.RequestDelete(note.ID)
		if err != nil {
			m.errMsg = humanizeError(err)
			return m, nil
		}
		m.confirm = &confirmModel{prompt: fmt.Sprintf("%s\n\n%q", prompt, fitText(note.Title, 40))}
	case key.Matches(msg, keys.refresh):
		m.loading = true
		m.errMsg = ""
		return m, tea.Batch(m.cmdRefresh(), m.spinner.Tick)
	case key.Matches(msg, keys.logout):
		return m, m.cmdLogout()
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	}

	return m, nil
}

func (m *NotesListModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.vm.Query() {
		m.vm.SetQuery(m.search.Value())
		m.idx = 0
	}
	return m, cmd
}

func (m *NotesListModel) View() string {
	var b strings.Builder

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	visible := m.vm.Visible()
	switch {
	case !m.vm.Loaded() && m.loading:
		b.WriteString("Loading...\n")
	case !m.vm.Loaded():
		b.WriteString("Notes are not loaded. Press r to retry.\n")
	case len(visible) == 0:
		b.WriteString(m.vm.EmptyMessage())
		b.WriteString("\n")
	default:
		for i, note := range visible {
			cursor := "  "
			line := fmt.Sprintf("%-30s  %s", fitText(note.Title, 30), formatTimestamp(note.UpdatedAt))
			if i == m.idx {
				cursor = "> "
				line = selectedStyle.Render(line)
			}
			b.WriteString(cursor)
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString(renderMessages(m.status, m.errMsg))

	title := "NOTES"
	if user := m.auth.User(); user.Email != "" {
		title += " · " + user.Email
	}
	if m.loading {
		title += " " + m.spinner.View()
	}

	page := renderPage(title, strings.TrimRight(b.String(), "\n"),
		"enter: open │ n: new │ d: delete │ /: search │ r: refresh │ l: log out │ q: quit")
	if m.confirm != nil {
		return withOverlay(page, m.confirm.View())
	}
	return page
}

func (m *NotesListModel) selected() (models.Note, bool) {
	visible := m.vm.Visible()
	if m.idx < 0 || m.idx >= len(visible) {
		return models.Note{}, false
	}
	return visible[m.idx], true
}

func (m *NotesListModel) clampIdx() {
	n := len(m.vm.Visible())
	if m.idx >= n {
		m.idx = n - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *NotesListModel) cmdRefresh() tea.Cmd {
	ctx, vm := m.ctx, m.vm
	return func() tea.Msg {
		return notesRefreshedMsg{err: vm.Refresh(ctx)}
	}
}

func (m *NotesListModel) cmdConfirmDelete() tea.Cmd {
	ctx, vm := m.ctx, m.vm
	return func() tea.Msg {
		return noteDeletedMsg{err: vm.ConfirmDelete(ctx)}
	}
}

func (m *NotesListModel) cmdLogout() tea.Cmd {
	ctx, auth := m.ctx, m.auth
	m.search.SetValue("")
	m.searching = false
	m.idx = 0
	m.status, m.errMsg = "", ""
	return func() tea.Msg {
		auth.Logout(ctx)
		return NavigateTo{Page: pageWelcome}
	}
}

// redraw schedules the next repaint. Ticks from an earlier Init carry an old
// gen and stop there.
func redraw(gen int) tea.Cmd {
	return tea.Tick(redrawInterval, func(time.Time) tea.Msg { return redrawMsg{gen: gen} })
}
