package render

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"
)

// DefaultColors maps each game glyph to an ANSI 256-colour index.
// Glyphs without an entry are drawn in the terminal's default colour.
var DefaultColors = map[string]string{
	"A": "10",  // player
	"x": "13",  // enemy
	"+": "5",   // enemy, blink phase
	"|": "11",  // shot
	"*": "208", // explosion
}

// lipglossStyles builds one style per glyph, bound to the given renderer so
// the colour profile matches the writer the glyphs end up on.
func lipglossStyles(r *lipgloss.Renderer, colors map[string]string) map[string]lipgloss.Style {
	styles := make(map[string]lipgloss.Style, len(colors))
	for glyph, c := range colors {
		styles[glyph] = r.NewStyle().Foreground(lipgloss.Color(c))
	}
	return styles
}

// tcellStyles converts the same colour table for a tcell screen.
// Numeric entries are palette indices; anything else goes through tcell's
// name and #rrggbb lookup.
func tcellStyles(colors map[string]string) map[string]tcell.Style {
	styles := make(map[string]tcell.Style, len(colors))
	for glyph, c := range colors {
		styles[glyph] = tcell.StyleDefault.Foreground(tcellColor(c))
	}
	return styles
}

func tcellColor(c string) tcell.Color {
	if n, err := strconv.Atoi(c); err == nil && n >= 0 && n < 256 {
		return tcell.PaletteColor(n)
	}
	return tcell.GetColor(c)
}
