package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// searchView renders the search screen: input box, ranked results, status
// bar.
func (m *Model) searchView() string {
	th := CurrentTheme()

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		Padding(0, 1).
		Width(maxInt(m.WinWidth-2, 20))
	if !m.NoColor {
		inputStyle = inputStyle.BorderForeground(th.SeparatorColor)
	}
	titleStyle := lipgloss.NewStyle().Bold(true)

	input := titleStyle.Render("Search") + "\n" + inputStyle.Render(m.SearchInput.View())

	// Input block (2 lines + border) plus header and status line.
	listHeight := m.WinHeight - 6
	if listHeight < 1 {
		listHeight = 1
	}
	results := m.renderResults(listHeight)

	header := titleStyle.Render("Products ") +
		fmt.Sprintf("(Enter to open) – %d results", len(m.App.Search.FilteredIndices))

	return strings.Join([]string{input, header, results, m.Status.View()}, "\n")
}

// renderResults renders the visible window of the filtered result list,
// keeping the selection on screen.
func (m *Model) renderResults(height int) string {
	th := CurrentTheme()
	search := m.App.Search
	count := len(search.FilteredIndices)
	if count == 0 {
		style := lipgloss.NewStyle()
		if !m.NoColor {
			style = style.Foreground(th.Muted)
		}
		lines := make([]string, height)
		lines[0] = style.Render("  No matches")
		return strings.Join(lines, "\n")
	}

	start := 0
	if search.SelectedIndex >= height {
		start = search.SelectedIndex - height + 1
	}
	end := minInt(start+height, count)

	nameStyle := lipgloss.NewStyle().Bold(true)
	labelStyle := lipgloss.NewStyle()
	buyStyle := lipgloss.NewStyle()
	sellStyle := lipgloss.NewStyle()
	dimStyle := lipgloss.NewStyle()
	selectedStyle := lipgloss.NewStyle().Bold(true).Reverse(true)
	if !m.NoColor {
		labelStyle = labelStyle.Foreground(th.Muted)
		buyStyle = buyStyle.Foreground(th.Buy)
		sellStyle = sellStyle.Foreground(th.Sell)
		dimStyle = dimStyle.Foreground(th.Dim)
		selectedStyle = selectedStyle.Foreground(th.SelectedFG)
	}

	lines := make([]string, 0, height)
	for row := start; row < end; row++ {
		idx := search.FilteredIndices[row]
		item := m.App.Data.Index[idx]

		var body string
		if p, ok := m.App.Data.Products[item.ID]; ok {
			buy := p.QuickStatus.BuyPrice
			sell := p.QuickStatus.SellPrice
			spread := sell - buy
			spreadStyle := buyStyle
			if spread < 0 {
				spreadStyle = sellStyle
			}
			body = nameStyle.Render(item.Display) +
				"  [" + labelStyle.Render("B:") + buyStyle.Render(fmt.Sprintf("%.1f", buy)) +
				"  " + labelStyle.Render("S:") + sellStyle.Render(fmt.Sprintf("%.1f", sell)) +
				"  " + labelStyle.Render("Δ:") + spreadStyle.Render(fmt.Sprintf("%+.1f", spread)) +
				"]"
		} else {
			body = dimStyle.Render(item.Display)
		}

		prefix := "  "
		if row == search.SelectedIndex {
			prefix = "▸ "
			body = selectedStyle.Render(item.Display)
			if p, ok := m.App.Data.Products[item.ID]; ok {
				body += labelStyle.Render(fmt.Sprintf("  [B:%.1f  S:%.1f]",
					p.QuickStatus.BuyPrice, p.QuickStatus.SellPrice))
			}
		}
		lines = append(lines, clampLine(prefix+body, maxInt(m.WinWidth, 20)))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
