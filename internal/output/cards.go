// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
)

// Card is a titled block of lines rendered inside a border.
type Card struct {
	Title  string
	Lines  []string
	Footer string
}

// RenderCards writes each card in a rounded border, separated by a blank
// line.
func RenderCards(w io.Writer, cards []Card, color bool) {
	header, _, odd := getColors("colors")

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	title := lipgloss.NewStyle()
	footer := lipgloss.NewStyle()

	if color {
		border = border.BorderForeground(lipgloss.Color(odd))
		title = title.Bold(true).Foreground(lipgloss.Color(header))
		footer = footer.Italic(true)
	}

	for i, c := range cards {
		var b strings.Builder
		b.WriteString(title.Render(c.Title))
		for _, l := range c.Lines {
			b.WriteString("\n")
			b.WriteString(l)
		}
		if c.Footer != "" {
			b.WriteString("\n\n")
			b.WriteString(footer.Render(c.Footer))
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, border.Render(b.String()))
	}
}
