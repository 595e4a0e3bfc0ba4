package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-invaders/internal/game"
)

var (
	wonStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	lostStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// RenderResult formats a finished game for printing once the terminal has
// been restored.
func RenderResult(res game.Result) string {
	var sb strings.Builder

	if res.State == game.WonExit {
		sb.WriteString(wonStyle.Render("YOU WIN!"))
	} else {
		sb.WriteString(lostStyle.Render("GAME OVER"))
	}
	sb.WriteRune('\n')

	fmt.Fprintf(&sb, "%s %d\n", labelStyle.Render("Enemies destroyed:"), res.Destroyed)
	fmt.Fprintf(&sb, "%s %s", labelStyle.Render("Time:"), FormatDuration(res.Elapsed))
	return sb.String()
}

// FormatDuration renders game time as m:ss.t.
func FormatDuration(d time.Duration) string {
	d = d.Round(100 * time.Millisecond)
	m := int(d / time.Minute)
	s := d % time.Minute
	return fmt.Sprintf("%d:%04.1f", m, s.Seconds())
}
