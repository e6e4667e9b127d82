package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles is the set of lipgloss styles derived from one Theme.
type styles struct {
	canvas lipgloss.Style
	panel  lipgloss.Style
	title  lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	active lipgloss.Style
	idle   lipgloss.Style
	graph  lipgloss.Style
	hint   lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas: lipgloss.NewStyle().Foreground(t.Canvas).Padding(1, 2),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(1, 2).
			Width(52),
		title:  lipgloss.NewStyle().Foreground(t.Title).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		active: lipgloss.NewStyle().Foreground(t.Active).Bold(true),
		idle:   lipgloss.NewStyle().Foreground(t.Idle),
		graph:  lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0),
		hint:   lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
	}
}

// AnimatedSpinner returns one frame of a Braille spinner.
func AnimatedSpinner(frame int) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinners[frame%len(spinners)]
}

// Separator is a muted horizontal rule.
func Separator(width int) string {
	if width < 8 {
		return strings.Repeat("─", width)
	}
	mid := width / 2
	return strings.Repeat("─", mid-2) + " ◆ " + strings.Repeat("─", width-mid-1)
}
