package render

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Pattern decides which dots of a filled area are set.
type Pattern func(x, y int) bool

// Solid sets every dot.
func Solid(int, int) bool { return true }

// Sparse sets every other dot in a checkerboard, for translucent fills.
func Sparse(x, y int) bool { return (x+y)%2 == 0 }

type marker struct {
	r     rune
	color string
}

// Canvas is a braille dot buffer with one color per cell.
type Canvas struct {
	cols, rows int
	masks      [][]uint8
	colors     [][]string
	markers    map[[2]int]marker
}

// NewCanvas creates an empty canvas of cols x rows cells.
func NewCanvas(cols, rows int) *Canvas {
	cols, rows = max(cols, 0), max(rows, 0)
	c := &Canvas{cols: cols, rows: rows, markers: map[[2]int]marker{}}
	c.masks = make([][]uint8, rows)
	c.colors = make([][]string, rows)
	for i := range c.masks {
		c.masks[i] = make([]uint8, cols)
		c.colors[i] = make([]string, cols)
	}
	return c
}

var dotBits = [DotsPerCol][DotsPerRow]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// Set turns on the dot at (x, y). Off-canvas dots are ignored.
func (c *Canvas) Set(x, y int, color string) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/DotsPerCol, y/DotsPerRow
	if col >= c.cols || row >= c.rows {
		return
	}
	c.masks[row][col] |= dotBits[x%DotsPerCol][y%DotsPerRow]
	c.colors[row][col] = color
}

// Line draws a segment between two dots (Bresenham).
func (c *Canvas) Line(x0, y0, x1, y1 int, color string) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for steps := 0; steps <= dx-dy; steps++ {
		c.Set(x0, y0, color)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// FillPolygon fills the area enclosed by rings (dot coordinates) using the
// even-odd rule, so inner rings punch holes.
func (c *Canvas) FillPolygon(rings [][][2]float64, color string, pattern Pattern) {
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, r := range rings {
		for _, pt := range r {
			minY, maxY = math.Min(minY, pt[1]), math.Max(maxY, pt[1])
		}
	}
	y0 := max(0, int(math.Floor(minY)))
	y1 := min(c.rows*DotsPerRow-1, int(math.Ceil(maxY)))
	width := c.cols * DotsPerCol
	var xs []float64
	for y := y0; y <= y1; y++ {
		yc := float64(y) + 0.5
		xs = xs[:0]
		for _, r := range rings {
			n := len(r)
			for i := 0; i < n; i++ {
				a, b := r[i], r[(i+1)%n]
				if (a[1] <= yc) == (b[1] <= yc) {
					continue
				}
				t := (yc - a[1]) / (b[1] - a[1])
				xs = append(xs, a[0]+t*(b[0]-a[0]))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			start := max(0, int(math.Ceil(xs[i]-0.5)))
			end := min(width-1, int(math.Floor(xs[i+1]-0.5)))
			for x := start; x <= end; x++ {
				if pattern(x, y) {
					c.Set(x, y, color)
				}
			}
		}
	}
}

// StrokeRing outlines a ring given in dot coordinates.
func (c *Canvas) StrokeRing(ring [][2]float64, color string) {
	n := len(ring)
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		c.Line(int(math.Floor(a[0])), int(math.Floor(a[1])), int(math.Floor(b[0])), int(math.Floor(b[1])), color)
	}
}

// Mark replaces a whole cell with r.
func (c *Canvas) Mark(col, row int, r rune, color string) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	c.markers[[2]int{col, row}] = marker{r: r, color: color}
}

func (c *Canvas) cell(col, row int) (rune, string) {
	if m, ok := c.markers[[2]int{col, row}]; ok {
		return m.r, m.color
	}
	mask := c.masks[row][col]
	if mask == 0 {
		return ' ', ""
	}
	return rune(0x2800 + int(mask)), c.colors[row][col]
}

// Lines returns the canvas as plain text rows.
func (c *Canvas) Lines() []string {
	out := make([]string, c.rows)
	for y := 0; y < c.rows; y++ {
		row := make([]rune, c.cols)
		for x := 0; x < c.cols; x++ {
			row[x], _ = c.cell(x, y)
		}
		out[y] = string(row)
	}
	return out
}

// Render returns the canvas rows with cell colors applied. Runs of the same
// color share one style.
func (c *Canvas) Render() []string {
	out := make([]string, c.rows)
	var b strings.Builder
	for y := 0; y < c.rows; y++ {
		b.Reset()
		var run []rune
		runColor := ""
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runColor == "" {
				b.WriteString(string(run))
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < c.cols; x++ {
			r, color := c.cell(x, y)
			if color != runColor {
				flush()
				runColor = color
			}
			run = append(run, r)
		}
		flush()
		out[y] = b.String()
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
