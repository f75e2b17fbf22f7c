package tui

import (
	"testing"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/mock"
	"github.com/MKhiriev/go-note-keeper/internal/validators"
	"github.com/MKhiriev/go-note-keeper/internal/viewmodel"
	"github.com/MKhiriev/go-note-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/mock/gomock"
)

var (
	groceries = models.Note{ID: "n-1", Title: "Groceries", Content: "milk, eggs"}
	ideas     = models.Note{ID: "n-2", Title: "Ideas", Content: "write more tests"}
)

type fixture struct {
	svc    *mock.MockNotesService
	auth   *mock.MockAuthController
	list   *viewmodel.NotesList
	detail *viewmodel.NoteDetail

	onLogout *[]func()
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mock.NewMockNotesService(ctrl)
	auth := mock.NewMockAuthController(ctrl)
	v := validators.NewFormValidator()

	listeners := new([]func())
	auth.EXPECT().OnLogout(gomock.Any()).Do(func(fn func()) {
		*listeners = append(*listeners, fn)
	}).AnyTimes()

	return fixture{
		svc:      svc,
		auth:     auth,
		list:     viewmodel.NewNotesList(svc, auth, v, logger.Nop()),
		detail:   viewmodel.NewNoteDetail(svc, auth, v, logger.Nop()),
		onLogout: listeners,
	}
}

// loggedOut runs the registered logout listeners the way the auth controller does.
func (f fixture) loggedOut() {
	for _, fn := range *f.onLogout {
		fn()
	}
}

func press(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// run executes cmd and returns the messages it produces, flattening batches.
// Timer commands are not expected here: they would block the test.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// find returns the first message of type T.
func find[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

type stubPage struct {
	name string
	msgs []tea.Msg
}

func (s *stubPage) Init() tea.Cmd { return nil }

func (s *stubPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	s.msgs = append(s.msgs, msg)
	return s, nil
}

func (s *stubPage) View() string { return s.name }
