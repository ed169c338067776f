// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"

	"github.com/AnirudhJM24/TechJacked/internal/attrs"
	"github.com/AnirudhJM24/TechJacked/internal/config"
)

// TableWriter renders rows as a borderless table of the included attrs.
func TableWriter(rows []map[string]any, al attrs.AttrList, opts Options, w io.Writer) {
	if len(rows) == 0 {
		return
	}

	included := al.Included()

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")
		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	pad, _ := config.GetInt("padding", 0)

	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(included))
		for _, attr := range included {
			cells = append(cells, InterfaceToString(row[attr.OutputKey], "-"))
		}
		data = append(data, cells)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}
			if col > 0 {
				style = style.PaddingLeft(pad)
			}
			return style
		}).
		Rows(data...)

	if opts.Titles {
		headers := make([]string, 0, len(included))
		for _, attr := range included {
			headers = append(headers, attr.OutputKey)
		}
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}

	fmt.Fprintln(w, t)
}

// getColors returns the configured title, even and odd row colors.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}
