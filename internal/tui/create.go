package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/viewmodel"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// CreateModel is the new note form.
type CreateModel struct {
	ctx context.Context
	vm  *viewmodel.NotesList

	editor     noteEditor
	submitting bool
	errMsg     string
}

func NewCreateModel(ctx context.Context, vm *viewmodel.NotesList) *CreateModel {
	return &CreateModel{
		ctx:    ctx,
		vm:     vm,
		editor: newNoteEditor(),
	}
}

func (m *CreateModel) Init() tea.Cmd {
	m.editor.reset("", "")
	m.submitting = false
	m.errMsg = ""
	return textinput.Blink
}

func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(noteCreatedMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = humanizeError(result.err)
			if m.errMsg != "" {
				return m, nil
			}
		}
		return m, func() tea.Msg {
			return NavigateTo{Page: pageList, Payload: noticeMsg{text: "Note created"}}
		}
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			return m, func() tea.Msg { return NavigateTo{Page: pageList} }
		case key.Matches(keyMsg, keys.save):
			if m.submitting {
				return m, nil
			}
			m.errMsg = ""
			m.submitting = true
			return m, m.cmdCreate(m.editor.title.Value(), m.editor.content.Value())
		}
	}

	return m, m.editor.update(msg)
}

func (m *CreateModel) View() string {
	var b strings.Builder
	b.WriteString(m.editor.View())

	if m.submitting {
		b.WriteString("\n\n[Saving...]")
	}
	b.WriteString(renderMessages("", m.errMsg))

	return renderPage("NEW NOTE", b.String(), "tab: next field │ ctrl+s: save │ esc: cancel")
}

func (m *CreateModel) cmdCreate(title, content string) tea.Cmd {
	ctx, vm := m.ctx, m.vm
	return func() tea.Msg {
		_, err := vm.Create(ctx, title, content)
		return noteCreatedMsg{err: err}
	}
}

// noteEditor is the title input plus content area shared by the create and
// edit screens.
type noteEditor struct {
	title   textinput.Model
	content textarea.Model
	focus   int
}

func newNoteEditor() noteEditor {
	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 200
	title.Width = 60

	content := textarea.New()
	content.Placeholder = "content"
	content.SetWidth(60)
	content.SetHeight(10)
	content.ShowLineNumbers = false

	e := noteEditor{title: title, content: content}
	e.reset("", "")
	return e
}

func (e *noteEditor) reset(title, content string) {
	e.title.SetValue(title)
	e.title.CursorEnd()
	e.content.SetValue(content)
	e.focus = 0
	e.content.Blur()
	e.title.Focus()
}

func (e *noteEditor) toggleFocus() {
	if e.focus == 0 {
		e.focus = 1
		e.title.Blur()
		e.content.Focus()
		return
	}
	e.focus = 0
	e.content.Blur()
	e.title.Focus()
}

// update handles focus switching and forwards everything else to the
// focused widget.
func (e *noteEditor) update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, keys.tab) || key.Matches(keyMsg, keys.backtab) {
			e.toggleFocus()
			return nil
		}
	}

	var cmd tea.Cmd
	if e.focus == 0 {
		e.title, cmd = e.title.Update(msg)
	} else {
		e.content, cmd = e.content.Update(msg)
	}
	return cmd
}

func (e noteEditor) View() string {
	var b strings.Builder
	b.WriteString("Title\n")
	b.WriteString(e.title.View())
	b.WriteString("\n\nContent\n")
	b.WriteString(e.content.View())
	return b.String()
}
