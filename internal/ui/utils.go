package ui

import (
	"strings"

	runewidth "github.com/mattn/go-runewidth"
)

// visibleWidth returns the display width of s, ignoring ANSI escape
// sequences (CSI and OSC).
func visibleWidth(s string) int {
	width := 0
	inEscape := false
	inOSC := false
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inOSC:
			// OSC terminates with BEL or ST (ESC \).
			if r == '\a' {
				inOSC = false
			} else if r == '\x1b' && i+1 < len(runes) && runes[i+1] == '\\' {
				inOSC = false
				i++
			}
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			if i+1 < len(runes) && runes[i+1] == ']' {
				inOSC = true
				i++
			} else {
				inEscape = true
			}
		default:
			width += runewidth.RuneWidth(r)
		}
	}
	return width
}

// clampLine truncates s to at most max visible columns, preserving ANSI
// escape sequences and appending a reset when anything was styled.
func clampLine(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if visibleWidth(s) <= max {
		return s
	}

	var out strings.Builder
	width := 0
	sawEscape := false
	inEscape := false
	inOSC := false
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inOSC:
			out.WriteRune(r)
			if r == '\a' {
				inOSC = false
			} else if r == '\x1b' && i+1 < len(runes) && runes[i+1] == '\\' {
				out.WriteRune(runes[i+1])
				inOSC = false
				i++
			}
		case inEscape:
			out.WriteRune(r)
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			sawEscape = true
			out.WriteRune(r)
			if i+1 < len(runes) && runes[i+1] == ']' {
				out.WriteRune(runes[i+1])
				inOSC = true
				i++
			} else {
				inEscape = true
			}
		default:
			w := runewidth.RuneWidth(r)
			if width+w > max {
				if sawEscape {
					out.WriteString("\x1b[0m")
				}
				return out.String()
			}
			width += w
			out.WriteRune(r)
		}
	}
	return out.String()
}

// padLine pads s with spaces up to width visible columns.
func padLine(s string, width int) string {
	gap := width - visibleWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
