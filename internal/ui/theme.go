package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme defines the colors used across the UI.
type Theme struct {
	Buy            color.Color // Buy-side prices and chart line
	Sell           color.Color // Sell-side prices and chart line
	BuySMA         color.Color // Buy SMA overlay
	SellSMA        color.Color // Sell SMA overlay
	Accent         color.Color // Highlights, mode indicator, spread legend
	Muted          color.Color // Labels, hints, placeholder text
	Dim            color.Color // Items without cached prices, separators
	Text           color.Color // Primary text
	SelectedFG     color.Color // Selected result foreground
	StatusColor    color.Color // Status bar text
	SeparatorColor color.Color // Borders
}

var currentTheme = defaultTheme()

// defaultTheme preserves the terminal palette of the original views: green
// buys, red sells, yellow accents, gray chrome.
func defaultTheme() Theme {
	return Theme{
		Buy:            lipgloss.Color("2"),   // green
		Sell:           lipgloss.Color("1"),   // red
		BuySMA:         lipgloss.Color("10"),  // light green
		SellSMA:        lipgloss.Color("9"),   // light red
		Accent:         lipgloss.Color("3"),   // yellow
		Muted:          lipgloss.Color("244"), // muted gray
		Dim:            lipgloss.Color("240"), // dark gray
		Text:           lipgloss.Color("252"), // near-white
		SelectedFG:     lipgloss.Color("3"),   // yellow selection
		StatusColor:    lipgloss.Color("250"),
		SeparatorColor: lipgloss.Color("238"),
	}
}

// CurrentTheme returns the active palette.
func CurrentTheme() Theme {
	return currentTheme
}
