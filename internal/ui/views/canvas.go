package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// StylePlain is the index of the unstyled entry every canvas starts with
const StylePlain = 0

type cell struct {
	r     rune
	style int
	cont  bool // right half of a wide rune
}

// Canvas is a fixed-size grid of styled cells. Later draws cover earlier
// ones, which is how overlapping cards are stacked.
type Canvas struct {
	width  int
	height int
	cells  [][]cell
	styles []lipgloss.Style
}

// NewCanvas creates a blank canvas
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([][]cell, height)
	for y := range cells {
		row := make([]cell, width)
		for x := range row {
			row[x] = cell{r: ' '}
		}
		cells[y] = row
	}
	return &Canvas{
		width:  width,
		height: height,
		cells:  cells,
		styles: []lipgloss.Style{lipgloss.NewStyle()},
	}
}

// AddStyle registers a style and returns its index
func (c *Canvas) AddStyle(s lipgloss.Style) int {
	c.styles = append(c.styles, s)
	return len(c.styles) - 1
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

// Set writes a single-width rune; out of bounds writes are dropped
func (c *Canvas) Set(x, y int, r rune, style int) {
	if !c.inside(x, y) {
		return
	}
	c.breakWide(x, y)
	c.cells[y][x] = cell{r: r, style: style}
}

// breakWide blanks the other half of a wide rune about to be split
func (c *Canvas) breakWide(x, y int) {
	row := c.cells[y]
	if row[x].cont && x > 0 {
		row[x-1] = cell{r: ' ', style: row[x-1].style}
	}
	if x+1 < c.width && row[x+1].cont {
		row[x+1] = cell{r: ' ', style: row[x+1].style}
	}
}

// Fill paints a rectangle with r
func (c *Canvas) Fill(x, y, w, h int, r rune, style int) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			c.Set(col, row, r, style)
		}
	}
}

// Text writes s starting at (x, y), never past x+maxWidth. It returns the
// number of cells used.
func (c *Canvas) Text(x, y int, s string, style int, maxWidth int) int {
	used := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if used+w > maxWidth {
			break
		}
		col := x + used
		switch {
		case w == 1:
			c.Set(col, y, r, style)
		case !c.inside(col, y) || !c.inside(col+1, y):
			// half visible wide rune
			c.Set(col, y, ' ', style)
			c.Set(col+1, y, ' ', style)
		default:
			c.Set(col+1, y, ' ', style)
			c.Set(col, y, r, style)
			c.cells[y][col+1] = cell{r: ' ', style: style, cont: true}
		}
		used += w
	}
	return used
}

// PlainRow returns row y without styling
func (c *Canvas) PlainRow(y int) string {
	if y < 0 || y >= c.height {
		return ""
	}
	var b strings.Builder
	for _, cl := range c.cells[y] {
		if cl.cont {
			continue
		}
		b.WriteRune(cl.r)
	}
	return b.String()
}

// Render produces the styled rows joined by newlines
func (c *Canvas) Render() string {
	lines := make([]string, c.height)
	for y, row := range c.cells {
		var b strings.Builder
		var run strings.Builder
		current := StylePlain

		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current == StylePlain {
				b.WriteString(run.String())
			} else {
				b.WriteString(c.styles[current].Render(run.String()))
			}
			run.Reset()
		}

		for _, cl := range row {
			if cl.cont {
				continue
			}
			if cl.style != current {
				flush()
				current = cl.style
			}
			run.WriteRune(cl.r)
		}
		flush()
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}
