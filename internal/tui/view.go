package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)
)

// ModelView renders the TUI model's view as a string.
func ModelView(m model) string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading...\n"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.fileName))
	b.WriteString("\n")
	b.WriteString(m.view.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	return b.String()
}

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	return vp
}

// fitLines truncates each line of s to the given display width so that
// long source lines do not wrap and break the viewport's row accounting.
func fitLines(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if runewidth.StringWidth(line) > width {
			lines[i] = runewidth.Truncate(line, width, "…")
		}
	}
	return strings.Join(lines, "\n")
}

// max returns the maximum of two ints.
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
