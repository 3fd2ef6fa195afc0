// Package report renders check results as box-drawing tables.
package report

import (
	"strings"

	"golang.org/x/text/width"
)

// maxCell is the number of characters kept in a cell before truncation.
const maxCell = 80

// truncate shortens s to maxCell characters followed by "...".
func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxCell {
		return s
	}
	return string(r[:maxCell]) + "..."
}

// displayWidth returns the number of terminal columns s occupies. East
// Asian wide and fullwidth characters take two columns; ANSI color
// sequences take none.
func displayWidth(s string) int {
	n := 0
	inEscape := false
	for _, r := range s {
		if inEscape {
			inEscape = r != 'm'
			continue
		}
		if r == '\033' {
			inEscape = true
			continue
		}
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// FormatTable renders groups of rows as a table. The first group is
// usually the header; a separator line is drawn between groups.
func FormatTable(groups [][][]string) string {
	var widths []int
	for _, group := range groups {
		for _, row := range group {
			for i, cell := range row {
				if i >= len(widths) {
					widths = append(widths, 0)
				}
				widths[i] = max(widths[i], displayWidth(cell))
			}
		}
	}

	line := func(left, mid, right string) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+2)
		}
		return left + strings.Join(parts, mid) + right
	}

	var b strings.Builder
	b.WriteString(line("┌", "┬", "┐"))
	for gi, group := range groups {
		if gi > 0 {
			b.WriteString("\n" + line("├", "┼", "┤"))
		}
		for _, row := range group {
			b.WriteString("\n│")
			for i, w := range widths {
				cell := ""
				if i < len(row) {
					cell = row[i]
				}
				b.WriteString(" " + cell + strings.Repeat(" ", w-displayWidth(cell)) + " │")
			}
		}
	}
	b.WriteString("\n" + line("└", "┴", "┘"))
	return b.String()
}
