package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Row is one labeled line of a summary box.
type Row struct {
	Label string
	Value string
	Bad   bool // render the value as an error
}

// SummaryBox renders rows as a bordered, label-aligned box under title.
func SummaryBox(title string, rows []Row) string {
	p := newPalette()

	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.Label))
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, p.title.Render(title))
	for _, r := range rows {
		label := p.label.Render(r.Label + strings.Repeat(" ", width-lipgloss.Width(r.Label)))
		value := p.ok.Render(r.Value)
		if r.Bad {
			value = p.bad.Render(r.Value)
		}
		lines = append(lines, label+value)
	}
	return p.box.Render(strings.Join(lines, "\n"))
}
