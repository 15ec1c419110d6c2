// SPDX-License-Identifier: MPL-2.0

// Package pod resolves, launches, and supervises a set of interdependent
// processes as a single lifecycle: sequential startup gated on readiness,
// concurrent supervision, and an always-run reap of every spawned child.
package pod

import "github.com/charmbracelet/lipgloss"

// wheelColors is the 5-color bold palette used to distinguish processes'
// log prefixes by startup order.
var wheelColors = []lipgloss.Color{
	lipgloss.Color("5"), // magenta
	lipgloss.Color("4"), // blue
	lipgloss.Color("2"), // green
	lipgloss.Color("6"), // cyan
	lipgloss.Color("3"), // yellow
}

// wheel colorizes a string by batch index, cycling through the palette.
type wheel struct {
	styles []lipgloss.Style
}

func newWheel() *wheel {
	styles := make([]lipgloss.Style, len(wheelColors))
	for i, c := range wheelColors {
		styles[i] = lipgloss.NewStyle().Bold(true).Foreground(c)
	}
	return &wheel{styles: styles}
}

func (w *wheel) colorize(index int, s string) string {
	return w.styles[index%len(w.styles)].Render(s)
}
