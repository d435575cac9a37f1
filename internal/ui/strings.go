package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(r))
}

// cell renders value as a column of exactly width runes, always leaving a
// trailing space as the gutter. A zero width hides the column.
func cell(value string, width int) string {
	switch {
	case width <= 0:
		return ""
	case width == 1:
		return " "
	}
	return padRight(truncate(value, width-1), width)
}

// truncateANSI cuts already-styled text to width terminal cells.
func truncateANSI(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// window returns the [start, end) range of rows to draw so that cursor stays
// visible in a viewport of height rows over total items.
func window(cursor, total, height int) (int, int) {
	if height <= 0 || total <= 0 {
		return 0, 0
	}
	if total <= height {
		return 0, total
	}
	start := cursor - height/2
	start = max(0, min(start, total-height))
	return start, start + height
}
