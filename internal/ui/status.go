package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/bzx/internal/app"
)

// StatusModel is the passive status bar component. It displays state and
// never mutates it.
type StatusModel struct {
	StatusText  string
	Mode        app.SearchMode
	LastUpdated int64
	Width       int
	NoColor     bool
}

// NewStatusModel creates a status model with a sane default width.
func NewStatusModel() StatusModel {
	return StatusModel{Width: 92}
}

const searchHints = "Esc quit • Enter detail • ↑/↓ navigate • Ctrl+S sort"

// View renders the one-line status bar.
func (m StatusModel) View() string {
	th := CurrentTheme()
	statusStyle := lipgloss.NewStyle()
	hintStyle := lipgloss.NewStyle()
	modeStyle := lipgloss.NewStyle().Bold(true)
	if !m.NoColor {
		statusStyle = statusStyle.Foreground(th.StatusColor)
		hintStyle = hintStyle.Foreground(th.Muted)
		modeStyle = modeStyle.Foreground(th.Accent)
	}

	parts := []string{
		statusStyle.Render(m.StatusText),
		hintStyle.Render(searchHints),
		hintStyle.Render(fmt.Sprintf("Last Updated: %d", m.LastUpdated)),
		"Mode: " + modeStyle.Render(m.Mode.String()),
	}
	line := strings.Join(parts, "   |  ")
	if m.Width > 0 {
		line = clampLine(line, m.Width)
	}
	return line
}
