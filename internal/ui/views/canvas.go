package views

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// canvas is a fixed-size grid of plain-text lines that cards are drawn onto.
// Cells are measured with runewidth so wide runes keep their two columns.
type canvas struct {
	width int
	lines []string
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, lines: make([]string, height)}
	blank := strings.Repeat(" ", width)
	for i := range c.lines {
		c.lines[i] = blank
	}
	return c
}

// draw places block with its top-left corner at column x, row y. Parts that
// fall outside the canvas are clipped.
func (c *canvas) draw(block []string, x, y int) {
	for i, line := range block {
		row := y + i
		if row < 0 || row >= len(c.lines) {
			continue
		}
		c.lines[row] = overlay(c.lines[row], line, x, c.width)
	}
}

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}

// overlay writes s over base starting at column x and returns a line of
// exactly width cells
func overlay(base, s string, x, width int) string {
	sw := runewidth.StringWidth(s)
	if x >= width || x+sw <= 0 || sw == 0 {
		return fit(base, width)
	}

	if x < 0 {
		s = runewidth.TruncateLeft(s, -x, "")
		x = 0
		sw = runewidth.StringWidth(s)
	}
	if x+sw > width {
		s = runewidth.Truncate(s, width-x, "")
		sw = runewidth.StringWidth(s)
	}

	left := runewidth.FillRight(runewidth.Truncate(base, x, ""), x)
	right := runewidth.TruncateLeft(base, x+sw, "")
	return fit(left+s+right, width)
}

// fit pads or cuts s to exactly width cells
func fit(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, ""), width)
}
