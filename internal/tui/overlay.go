package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// overlayCenter draws box over the middle of base. Lines of base outside
// the box keep their content; width is the visual width of the canvas.
func overlayCenter(base, box string, width int) string {
	baseLines := strings.Split(base, "\n")
	boxLines := strings.Split(box, "\n")
	boxWidth := widest(boxLines)

	x := (width - boxWidth) / 2
	if x < 0 {
		x = 0
	}
	y := (len(baseLines) - len(boxLines)) / 2
	if y < 0 {
		y = 0
	}
	for len(baseLines) < y+len(boxLines) {
		baseLines = append(baseLines, "")
	}

	for i, line := range boxLines {
		row := y + i
		target := fill(baseLines[row], width)
		left := ansi.Truncate(target, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		line = fill(line, boxWidth)
		right := ansi.TruncateLeft(target, x+boxWidth, "")
		baseLines[row] = left + line + right
	}
	return strings.Join(baseLines, "\n")
}

func widest(lines []string) int {
	m := 0
	for _, l := range lines {
		if w := ansi.StringWidth(l); w > m {
			m = w
		}
	}
	return m
}

func fill(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
