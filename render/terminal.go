package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/muesli/termenv"

	"github.com/0442/soft-body-simulation/vec"
)

// Characters used by the terminal renderer.
const (
	nodeChar = 'O'
	lineChar = '*'
)

type cell struct {
	ch rune
	fg color.RGBA
}

// A Terminal renders frames as colored characters.
// One character is one cell of a square grid scaled to fit the domain.
type Terminal struct {
	out   *termenv.Output
	cols  int
	rows  int
	scale float64 // cells per meter

	bg    *color.RGBA
	cells [][]cell
}

// NewTerminal returns a renderer writing cols×rows frames of a width×height domain to w.
func NewTerminal(w io.Writer, cols, rows int, width, height float64, opts ...termenv.OutputOption) (*Terminal, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("render: terminal size %dx%d", cols, rows)
	}
	if !(width > 0 && height > 0) {
		return nil, fmt.Errorf("render: domain %vx%v", width, height)
	}
	t := &Terminal{
		out:   termenv.NewOutput(w, opts...),
		cols:  cols,
		rows:  rows,
		scale: math.Min(float64(cols)/width, float64(rows)/height),
	}
	t.out.HideCursor()
	t.out.ClearScreen()
	t.Begin()
	return t, nil
}

// Begin clears the frame.
func (t *Terminal) Begin() {
	t.bg = nil
	t.cells = make([][]cell, t.rows)
	for i := range t.cells {
		t.cells[i] = make([]cell, t.cols)
	}
}

// cell converts a position to grid coordinates.
func (t *Terminal) cell(p vec.Vec) (col, row int) {
	return int(math.Floor(p[0] * t.scale)), int(math.Floor(p[1] * t.scale))
}

func (t *Terminal) set(col, row int, ch rune, c color.RGBA) {
	if row < 0 || row >= t.rows || col < 0 || col >= t.cols {
		return
	}
	t.cells[row][col] = cell{ch, c}
}

// clip cuts the segment from a to b in grid coordinates to the grid with
// the Liang-Barsky algorithm. It reports false if nothing is left.
func (t *Terminal) clip(a, b [2]float64) (_, _ [2]float64, ok bool) {
	// stay below the last cell edge so that flooring lands on the grid
	w := math.Nextafter(float64(t.cols), 0)
	h := math.Nextafter(float64(t.rows), 0)
	dx, dy := b[0]-a[0], b[1]-a[1]
	t0, t1 := 0.0, 1.0
	for _, pq := range [4][2]float64{{-dx, a[0]}, {dx, w - a[0]}, {-dy, a[1]}, {dy, h - a[1]}} {
		p, q := pq[0], pq[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, r)
		}
	}
	// clamped against rounding on far away ends
	in := func(x, y float64) [2]float64 {
		return [2]float64{math.Min(math.Max(x, 0), w), math.Min(math.Max(y, 0), h)}
	}
	return in(a[0]+t0*dx, a[1]+t0*dy), in(a[0]+t1*dx, a[1]+t1*dy), true
}

// AddLine rasterizes a segment with Bresenham's algorithm. The width is ignored.
// Only the part inside the grid is drawn, and nothing if an end is not finite.
func (t *Terminal) AddLine(p1, p2 vec.Vec, _ float64, c color.RGBA) {
	if !vec.IsFinite(p1) || !vec.IsFinite(p2) {
		return
	}
	a, b, ok := t.clip([2]float64{p1[0] * t.scale, p1[1] * t.scale}, [2]float64{p2[0] * t.scale, p2[1] * t.scale})
	if !ok {
		return
	}
	x0, y0 := int(math.Floor(a[0])), int(math.Floor(a[1]))
	x1, y1 := int(math.Floor(b[0])), int(math.Floor(b[1]))
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		t.set(x0, y0, lineChar, c)
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

// AddCircle marks the cell under the center. The radius is ignored.
func (t *Terminal) AddCircle(center vec.Vec, _ float64, c color.RGBA) {
	if !vec.IsFinite(center) {
		return
	}
	col, row := t.cell(center)
	t.set(col, row, nodeChar, c)
}

// AddRectangle sets the background color of the frame.
func (t *Terminal) AddRectangle(_ vec.Vec, _, _ float64, c color.RGBA) {
	t.bg = &c
}

// Lines returns the characters of the current frame, without colors.
func (t *Terminal) Lines() []string {
	lines := make([]string, t.rows)
	for i, row := range t.cells {
		var b strings.Builder
		for _, c := range row {
			if c.ch == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteRune(c.ch)
		}
		lines[i] = b.String()
	}
	return lines
}

// Render writes the frame at the top left of the terminal.
func (t *Terminal) Render() error {
	var b strings.Builder
	for _, row := range t.cells {
		for _, c := range row {
			s := t.out.String(" ")
			if c.ch != 0 {
				s = t.out.String(string(c.ch)).Foreground(t.out.Color(hex(c.fg)))
			}
			if t.bg != nil {
				s = s.Background(t.out.Color(hex(*t.bg)))
			}
			b.WriteString(s.String())
		}
		b.WriteString("|\n")
	}
	t.out.MoveCursor(1, 1)
	_, err := io.WriteString(t.out, b.String())
	return err
}

// Quit restores the cursor.
func (t *Terminal) Quit() error {
	t.out.ShowCursor()
	return nil
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
