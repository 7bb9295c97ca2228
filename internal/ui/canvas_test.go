package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanvasStringHasFixedShape(t *testing.T) {
	c := newCellCanvas(8, 3)
	out := c.String()
	rows := strings.Split(out, "\n")
	assert.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, strings.Repeat(" ", 8), row)
	}
}

func TestCanvasSetClipsOutOfBounds(t *testing.T) {
	c := newCellCanvas(4, 2)
	c.set(-1, 0, 'x', -1)
	c.set(4, 0, 'x', -1)
	c.set(0, -1, 'x', -1)
	c.set(0, 2, 'x', -1)
	assert.NotContains(t, c.String(), "x")

	c.set(3, 1, 'x', -1)
	assert.Contains(t, c.String(), "x")
}

func TestCanvasLineGlyphFollowsSlope(t *testing.T) {
	assert.Equal(t, '─', lineGlyph(10, 1))
	assert.Equal(t, '─', lineGlyph(-10, 0))
	assert.Equal(t, '│', lineGlyph(1, 10))
	assert.Equal(t, '│', lineGlyph(0, -4))
	assert.Equal(t, '\\', lineGlyph(5, 4))
	assert.Equal(t, '\\', lineGlyph(-5, -4))
	assert.Equal(t, '/', lineGlyph(5, -4))
	assert.Equal(t, '/', lineGlyph(-5, 4))
}

func TestCanvasLineConnectsEndpoints(t *testing.T) {
	c := newCellCanvas(10, 5)
	c.line(0, 0, 4, 4, -1)
	assert.Equal(t, '\\', c.cells[0][0])
	assert.Equal(t, '\\', c.cells[4][4])
	drawn := 0
	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			if c.cells[y][x] != ' ' {
				drawn++
			}
		}
	}
	assert.Equal(t, 5, drawn)
}

func TestCanvasTextCenteredAndClipped(t *testing.T) {
	c := newCellCanvas(11, 1)
	c.textCentered(5, 0, "abc", -1)
	assert.Equal(t, "    abc    ", c.String())

	c.text(9, 0, "xyz", -1)
	out := c.String()
	assert.Contains(t, out, "xy")
	assert.NotContains(t, out, "xyz")
}

func TestCanvasColorIndexInternsStyles(t *testing.T) {
	c := newCellCanvas(2, 1)
	a := c.colorIndex("#a7754e", false)
	b := c.colorIndex("#a7754e", false)
	bold := c.colorIndex("#a7754e", true)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, bold)
	assert.Len(t, c.styles, 2)
}

func TestCanvasMinimumSizeIsOneCell(t *testing.T) {
	c := newCellCanvas(0, -3)
	assert.Equal(t, " ", c.String())
}
