package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/viewmodel"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// NoteDetailModel shows one note and drives editing, version history and
// restore on top of [viewmodel.NoteDetail].
type NoteDetailModel struct {
	ctx context.Context
	vm  *viewmodel.NoteDetail

	editor     noteEditor
	loading    bool
	versionIdx int
	confirm    *confirmModel
	status     string
	errMsg     string
}

func NewNoteDetailModel(ctx context.Context, vm *viewmodel.NoteDetail) *NoteDetailModel {
	return &NoteDetailModel{
		ctx:    ctx,
		vm:     vm,
		editor: newNoteEditor(),
	}
}

// Init reloads the note already shown. Opening a note goes through openNoteMsg.
func (m *NoteDetailModel) Init() tea.Cmd {
	id := m.vm.NoteID()
	if id == "" {
		return nil
	}
	m.loading = true
	return m.cmdLoad(id)
}

func (m *NoteDetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case openNoteMsg:
		m.loading = true
		m.confirm = nil
		m.versionIdx = 0
		m.status, m.errMsg = "", ""
		return m, m.cmdLoad(msg.id)
	case noteLoadedMsg:
		m.loading = false
		if errors.Is(msg.err, viewmodel.ErrNoteNotFound) {
			return m, func() tea.Msg {
				return NavigateTo{Page: pageList, Payload: noticeMsg{text: "Note not found"}}
			}
		}
		m.errMsg = humanizeError(msg.err)
		return m, nil
	case noteSavedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		return m, m.setStatus("Note saved")
	case versionsLoadedMsg:
		m.loading = false
		m.versionIdx = 0
		m.errMsg = humanizeError(msg.err)
		return m, nil
	case versionPreviewMsg:
		m.loading = false
		m.errMsg = humanizeError(msg.err)
		return m, nil
	case versionRestoredMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		return m, m.setStatus("Note restored")
	case copiedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		return m, m.setStatus("Content copied to clipboard")
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.vm.Mode() == viewmodel.ModeEditing {
		return m, m.editor.update(msg)
	}
	return m, nil
}

func (m *NoteDetailModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		switch {
		case key.Matches(msg, keys.yes):
			m.confirm = nil
			m.loading = true
			return m, m.cmdConfirmRestore()
		case key.Matches(msg, keys.no):
			m.confirm = nil
			m.vm.CancelRestore()
		}
		return m, nil
	}

	if m.vm.Mode() == viewmodel.ModeEditing {
		return m.handleEditKey(msg)
	}
	if m.vm.HistoryOpen() {
		return m.handleHistoryKey(msg)
	}

	switch {
	case key.Matches(msg, keys.esc), key.Matches(msg, keys.quit):
		m.vm.Reset()
		m.status, m.errMsg = "", ""
		return m, func() tea.Msg { return NavigateTo{Page: pageList} }
	case key.Matches(msg, keys.edit):
		if err := m.vm.StartEdit(); err != nil {
			m.errMsg = humanizeError(err)
			return m, nil
		}
		draft := m.vm.Draft()
		m.editor.reset(draft.Title, draft.Content)
		m.errMsg = ""
	case key.Matches(msg, keys.history):
		m.loading = true
		m.errMsg = ""
		return m, m.cmdListVersions()
	case key.Matches(msg, keys.copy):
		note, ok := m.vm.Note()
		if !ok {
			return m, nil
		}
		content := note.Content
		return m, func() tea.Msg { return copiedMsg{err: clipboard.WriteAll(content)} }
	}

	return m, nil
}

func (m *NoteDetailModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.vm.CancelEdit()
		m.errMsg = ""
		return m, nil
	case key.Matches(msg, keys.save):
		if m.loading {
			return m, nil
		}
		if err := m.vm.SetDraft(m.editor.title.Value(), m.editor.content.Value()); err != nil {
			m.errMsg = humanizeError(err)
			return m, nil
		}
		m.loading = true
		m.errMsg = ""
		return m, m.cmdSave()
	}

	return m, m.editor.update(msg)
}

func (m *NoteDetailModel) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	versions := m.vm.Versions()

	switch {
	case key.Matches(msg, keys.esc):
		m.vm.CloseHistory()
		m.errMsg = ""
	case key.Matches(msg, keys.up):
		if m.versionIdx > 0 {
			m.versionIdx--
		}
	case key.Matches(msg, keys.down):
		if m.versionIdx < len(versions)-1 {
			m.versionIdx++
		}
	case key.Matches(msg, keys.preview):
		if m.versionIdx >= len(versions) {
			return m, nil
		}
		m.loading = true
		return m, m.cmdPreview(versions[m.versionIdx].VersionNumber)
	case key.Matches(msg, keys.restore):
		if m.versionIdx >= len(versions) {
			return m, nil
		}
		prompt, err := m.vm.RequestRestore(versions[m.versionIdx].VersionNumber)
		if err != nil {
			m.errMsg = humanizeError(err)
			return m, nil
		}
		m.confirm = &confirmModel{prompt: prompt}
	}

	return m, nil
}

func (m *NoteDetailModel) View() string {
	note, ok := m.vm.Note()
	if !ok {
		body := "Loading..."
		if !m.loading {
			body = "No note loaded"
		}
		return renderPage("NOTE", body+renderMessages(m.status, m.errMsg), "esc: back")
	}

	var (
		b       strings.Builder
		hotKeys string
	)

	switch {
	case m.vm.Mode() == viewmodel.ModeEditing:
		b.WriteString(m.editor.View())
		hotKeys = "tab: next field │ ctrl+s: save │ esc: cancel"
	case m.vm.HistoryOpen():
		b.WriteString(m.renderHistory())
		hotKeys = "↑/↓: select │ p/enter: preview │ r: restore │ esc: close history"
	default:
		b.WriteString(note.Content)
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("created %s · updated %s",
			formatTimestamp(note.CreatedAt), formatTimestamp(note.UpdatedAt))))
		hotKeys = "e: edit │ h: history │ c: copy │ esc: back"
	}

	if m.loading {
		b.WriteString("\n\nWorking...")
	}
	b.WriteString(renderMessages(m.status, m.errMsg))

	page := renderPage(strings.ToUpper(fitText(note.Title, 50)), b.String(), hotKeys)
	if m.confirm != nil {
		return withOverlay(page, m.confirm.View())
	}
	return page
}

func (m *NoteDetailModel) renderHistory() string {
	versions := m.vm.Versions()
	if len(versions) == 0 {
		return viewmodel.EmptyHistoryMessage
	}

	var b strings.Builder
	b.WriteString("Version history\n\n")
	for i, v := range versions {
		cursor := "  "
		line := fmt.Sprintf("v%-4d %s  %s", v.VersionNumber, formatTimestamp(v.Timestamp), fitText(firstLine(v.ContentSnapshot), 30))
		if i == m.versionIdx {
			cursor = "> "
			line = selectedStyle.Render(line)
		}
		b.WriteString(cursor)
		b.WriteString(line)
		b.WriteString("\n")
	}

	if preview, ok := m.vm.Preview(); ok {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render(fmt.Sprintf("Version %d", preview.VersionNumber)))
		b.WriteString("\n")
		b.WriteString(preview.ContentSnapshot)
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m *NoteDetailModel) setStatus(text string) tea.Cmd {
	m.status = text
	return clearStatusLater()
}

func (m *NoteDetailModel) cmdLoad(id string) tea.Cmd {
	ctx, vm := m.ctx, m.vm
	return func() tea.Msg {
		return noteLoadedMsg{err: vm.Load(ctx, id)}
	}
}

func (m *NoteDetailModel) cmdSave() tea.Cmd {
	ctx, vm := m.ctx, m.vm
	return func() tea.Msg {
		return noteSavedMsg{err: vm.Save(ctx)}
	}
}

func (m *NoteDetailModel) cmdListVersions() tea.Cmd {
	ctx, vm := m.ctx, m.vm
	return func() tea.Msg {
		return versionsLoadedMsg{err: vm.ListVersions(ctx)}
	}
}

func (m *NoteDetailModel) cmdPreview(versionNumber int) tea.Cmd {
	ctx, vm := m.ctx, m.vm
	return func() tea.Msg {
		_, err := vm.PreviewVersion(ctx, versionNumber)
		return versionPreviewMsg{err: err}
	}
}

func (m *NoteDetailModel) cmdConfirmRestore() tea.Cmd {
	ctx, vm := m.ctx, m.vm
	return func() tea.Msg {
		return versionRestoredMsg{err: vm.ConfirmRestore(ctx)}
	}
}
