package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cellCanvas is a rune grid with a per-cell color index. Draw calls clip at
// the edges; String assembles styled rows grouping runs of equal color so a
// frame stays cheap to print.
type cellCanvas struct {
	w, h   int
	cells  [][]rune
	colors [][]int

	styles []lipgloss.Style
	lookup map[string]int
}

func newCellCanvas(w, h int) *cellCanvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &cellCanvas{
		w:      w,
		h:      h,
		cells:  make([][]rune, h),
		colors: make([][]int, h),
		lookup: make(map[string]int),
	}
	for y := 0; y < h; y++ {
		c.cells[y] = make([]rune, w)
		c.colors[y] = make([]int, w)
		for x := 0; x < w; x++ {
			c.cells[y][x] = ' '
			c.colors[y][x] = -1
		}
	}
	return c
}

// colorIndex interns a hex color, bold or not, into the style table.
func (c *cellCanvas) colorIndex(hex string, bold bool) int {
	key := hex
	if bold {
		key += "!"
	}
	if idx, ok := c.lookup[key]; ok {
		return idx
	}
	st := lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	if bold {
		st = st.Bold(true)
	}
	c.styles = append(c.styles, st)
	idx := len(c.styles) - 1
	c.lookup[key] = idx
	return idx
}

func (c *cellCanvas) set(x, y int, r rune, color int) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	c.cells[y][x] = r
	c.colors[y][x] = color
}

// line draws a Bresenham segment. The glyph follows the dominant slope so
// near-horizontal runs read as dashes and steep ones as bars.
func (c *cellCanvas) line(x0, y0, x1, y1 int, color int) {
	glyph := lineGlyph(x1-x0, y1-y0)

	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	x, y := x0, y0
	for {
		c.set(x, y, glyph, color)
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// text writes s starting at x, clipping at both edges.
func (c *cellCanvas) text(x, y int, s string, color int) {
	for _, r := range s {
		c.set(x, y, r, color)
		x++
		if x >= c.w {
			return
		}
	}
}

// textCentered writes s centered on x.
func (c *cellCanvas) textCentered(x, y int, s string, color int) {
	c.text(x-len([]rune(s))/2, y, s, color)
}

func (c *cellCanvas) String() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		run := make([]rune, 0, c.w)
		current := c.colors[y][0]
		flush := func() {
			if len(run) == 0 {
				return
			}
			if current < 0 || current >= len(c.styles) {
				b.WriteString(string(run))
			} else {
				b.WriteString(c.styles[current].Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < c.w; x++ {
			if c.colors[y][x] != current {
				flush()
				current = c.colors[y][x]
			}
			run = append(run, c.cells[y][x])
		}
		flush()
	}
	return b.String()
}

func lineGlyph(dx, dy int) rune {
	adx, ady := absInt(dx), absInt(dy)
	switch {
	case ady == 0 || adx >= 2*ady:
		return '─'
	case adx == 0 || ady >= 2*adx:
		return '│'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
