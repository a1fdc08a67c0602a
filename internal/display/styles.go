// Package display renders the banner, the run summary box, and byte
// counts for console output.
package display

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/backmassage/dlsort/internal/term"
)

var (
	accentColor  = lipgloss.Color("#B48EAD")
	successColor = lipgloss.Color("#A3BE8C")
	errorColor   = lipgloss.Color("#BF616A")
	subtleColor  = lipgloss.Color("#666666")
)

// palette holds the styles for one render. Colors are left out when
// terminal colors are disabled so output stays plain.
type palette struct {
	title   lipgloss.Style
	label   lipgloss.Style
	ok      lipgloss.Style
	bad     lipgloss.Style
	box     lipgloss.Style
	enabled bool
}

func newPalette() palette {
	p := palette{
		title: lipgloss.NewStyle().Bold(true),
		label: lipgloss.NewStyle().PaddingRight(2),
		ok:    lipgloss.NewStyle(),
		bad:   lipgloss.NewStyle(),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
		enabled: term.Enabled(),
	}
	if p.enabled {
		p.title = p.title.Foreground(accentColor)
		p.label = p.label.Foreground(subtleColor)
		p.ok = p.ok.Foreground(successColor)
		p.bad = p.bad.Foreground(errorColor)
		p.box = p.box.BorderForeground(subtleColor)
	}
	return p
}
