package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-note-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	uiDivider      = "──────────────────────────────────────────────────────"
	timeLayout     = "2006-01-02 15:04"
	statusLifetime = 2 * time.Second
)

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		lines := strings.Split(data, "\n")
		for _, line := range lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("  ctrl+c: quit"))

	return b.String()
}

// withOverlay appends the overlay box below the page body.
func withOverlay(page, overlay string) string {
	if overlay == "" {
		return page
	}
	return page + "\n\n" + overlay
}

func formatTimestamp(ts models.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format(timeLayout)
}

func fitText(v string, max int) string {
	r := []rune(v)
	if max <= 0 || len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// firstLine returns the first line of v, used for one-line content previews.
func firstLine(v string) string {
	if i := strings.IndexByte(v, '\n'); i >= 0 {
		return v[:i]
	}
	return v
}

func renderMessages(status, errMsg string) string {
	var b strings.Builder
	if status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(status))
	}
	if errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %s", errMsg)))
	}
	return b.String()
}

func clearStatusLater() tea.Cmd {
	return tea.Tick(statusLifetime, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
