package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/validators"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// RegisterModel is the Bubble Tea model for the registration screen. A successful
// registration also logs the user in, so the screen continues to the notes list.
type RegisterModel struct {
	ctx       context.Context
	auth      service.AuthController
	validator validators.Validator

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func NewRegisterModel(ctx context.Context, auth service.AuthController, validator validators.Validator) *RegisterModel {
	fields := make([]textinput.Model, 3)

	fields[0] = textinput.New()
	fields[0].Placeholder = "username"
	fields[0].CharLimit = 64
	fields[0].Width = 40
	fields[0].Focus()

	fields[1] = textinput.New()
	fields[1].Placeholder = "email"
	fields[1].CharLimit = 254
	fields[1].Width = 40

	fields[2] = textinput.New()
	fields[2].Placeholder = "password"
	fields[2].CharLimit = 256
	fields[2].EchoMode = textinput.EchoPassword
	fields[2].EchoCharacter = '*'
	fields[2].Width = 40

	return &RegisterModel{
		ctx:       ctx,
		auth:      auth,
		validator: validator,
		inputs:    fields,
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(authResultMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = humanizeError(result.err)
			return m, nil
		}
		m.reset()
		return m, func() tea.Msg {
			return NavigateTo{Page: pageList}
		}
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.reset()
			return m, func() tea.Msg { return NavigateTo{Page: pageWelcome} }
		case "tab", "down":
			m.focusNext()
			return m, nil
		case "shift+tab", "up":
			m.focusPrev()
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}

			form := validators.RegisterForm{
				Username: strings.TrimSpace(m.inputs[0].Value()),
				Email:    strings.TrimSpace(m.inputs[1].Value()),
				Password: m.inputs[2].Value(),
			}
			if err := m.validator.Validate(m.ctx, form); err != nil {
				m.errMsg = humanizeError(err)
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdRegister(models.Credentials{
				Username: form.Username,
				Email:    form.Email,
				Password: form.Password,
			})
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *RegisterModel) View() string {
	var b strings.Builder
	b.WriteString("Field    │ Value\n")
	b.WriteString("─────────┼────────────────────────────────────────────\n")
	b.WriteString("Username │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Email    │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")
	b.WriteString("Password │ [")
	b.WriteString(m.inputs[2].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Registering...]\n")
	} else {
		b.WriteString("\n[Register]\n")
	}

	b.WriteString(renderMessages("", m.errMsg))

	return renderPage("REGISTER", strings.TrimRight(b.String(), "\n"), "esc: back │ tab/↑/↓: move │ enter: submit")
}

func (m *RegisterModel) cmdRegister(creds models.Credentials) tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		return authResultMsg{err: auth.Register(ctx, creds)}
	}
}

func (m *RegisterModel) reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = 0
	m.inputs[0].Focus()
	m.submitting = false
	m.errMsg = ""
}

func (m *RegisterModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *RegisterModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
