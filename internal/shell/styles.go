package shell

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	accent      = lipgloss.Color("#8BC34A")
	destructive = lipgloss.Color("#e53935")
	muted       = lipgloss.Color("#6b7280")
)

// styles renders against the session's output so colours are dropped when it
// is not a terminal.
type styles struct {
	banner lipgloss.Style
	failed lipgloss.Style
	info   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		banner: r.NewStyle().Bold(true).Foreground(accent),
		failed: r.NewStyle().Foreground(destructive),
		info:   r.NewStyle().Foreground(muted),
	}
}
