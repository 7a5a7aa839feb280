package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/tuisplit/tuisplit/internal/split"
)

// renderRows lays the split table out as name-left, value-right lines
// of the given width.
func renderRows(rows []split.Row, width int) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, renderRow(row, width))
	}
	return strings.Join(lines, "\n")
}

func renderRow(row split.Row, width int) string {
	name := row.Name
	value := row.Value

	valueWidth := runewidth.StringWidth(value)
	nameMax := width - valueWidth - 1
	if nameMax < 1 {
		nameMax = 1
	}
	name = runewidth.Truncate(name, nameMax, "…")

	pad := width - runewidth.StringWidth(name) - valueWidth
	if pad < 1 {
		pad = 1
	}

	nameStyle := rowNameStyle
	if row.Current {
		nameStyle = currentRowStyle
	}
	return nameStyle.Render(name) + strings.Repeat(" ", pad) + classStyle(row.Class).Render(value)
}
