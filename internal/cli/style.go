package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	muted   lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
}

// newStyles binds the palette to w so colour is dropped when w is not a
// terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		heading: r.NewStyle().Bold(true).Underline(true),
		muted:   r.NewStyle().Faint(true),
		ok:      r.NewStyle().Foreground(lipgloss.Color("42")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("214")),
		err:     r.NewStyle().Foreground(lipgloss.Color("196")),
	}
}
