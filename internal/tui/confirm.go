package tui

type confirmModel struct {
	prompt string
}

func (m confirmModel) View() string {
	content := m.prompt + "\n\n"
	content += "y yes    n no"
	return overlayBoxStyle.Render(content)
}
