package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// NavigateTo switches the active page. When Payload is set it is delivered
// to the new page instead of calling its Init.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

const (
	pageWelcome  = "welcome"
	pageLogin    = "login"
	pageRegister = "register"
	pageList     = "list"
	pageCreate   = "create"
	pageDetail   = "detail"
)

type authResultMsg struct {
	err error
}

type serverStatusMsg struct {
	status string
}

type notesRefreshedMsg struct {
	err error
}

type noteCreatedMsg struct {
	err error
}

type noteDeletedMsg struct {
	err error
}

type openNoteMsg struct {
	id string
}

type noteLoadedMsg struct {
	err error
}

type noteSavedMsg struct {
	err error
}

type versionsLoadedMsg struct {
	err error
}

type versionPreviewMsg struct {
	err error
}

type versionRestoredMsg struct {
	err error
}

type noticeMsg struct {
	text string
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}

type redrawMsg struct {
	gen int
}
