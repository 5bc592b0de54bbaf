package viz

import (
	"strings"

	"github.com/san-kum/lander/internal/dynamo"
)

// Each cell is a braille glyph holding a 2x4 dot grid:
//
//	1 4
//	2 5
//	3 6
//	7 8
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot canvas of Width x Height cells, giving a dot
// resolution of Width*2 by Height*4.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	view          Viewport
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		view:   Viewport{MaxX: float64(w * 2), MaxY: float64(h * 4)},
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Viewport is the world rectangle mapped onto the canvas. y grows down in
// both spaces so no flip is applied.
type Viewport struct {
	MinX, MinY, MaxX, MaxY float64
}

func (v Viewport) valid() bool { return v.MaxX > v.MinX && v.MaxY > v.MinY }

// Fit grows the viewport to include p.
func (v Viewport) Fit(p dynamo.Vec2) Viewport {
	if p.X < v.MinX {
		v.MinX = p.X
	}
	if p.X > v.MaxX {
		v.MaxX = p.X
	}
	if p.Y < v.MinY {
		v.MinY = p.Y
	}
	if p.Y > v.MaxY {
		v.MaxY = p.Y
	}
	return v
}

func (c *Canvas) SetViewport(v Viewport) {
	if v.valid() {
		c.view = v
	}
}

func (c *Canvas) Viewport() Viewport { return c.view }

// Project maps a world point to dot coordinates.
func (c *Canvas) Project(p dynamo.Vec2) (int, int) {
	dw, dh := float64(c.Width*2-1), float64(c.Height*4-1)
	x := (p.X - c.view.MinX) / (c.view.MaxX - c.view.MinX) * dw
	y := (p.Y - c.view.MinY) / (c.view.MaxY - c.view.MinY) * dh
	return int(x + 0.5), int(y + 0.5)
}

// Set lights the dot at (x, y). Dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a dot line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Plot lights the dot under a world point.
func (c *Canvas) Plot(p dynamo.Vec2) {
	c.Set(c.Project(p))
}

// Segment draws a world-space line.
func (c *Canvas) Segment(a, b dynamo.Vec2) {
	x0, y0 := c.Project(a)
	x1, y1 := c.Project(b)
	c.DrawLine(x0, y0, x1, y1)
}

// Polygon draws the closed outline through pts.
func (c *Canvas) Polygon(pts []dynamo.Vec2) {
	for i := range pts {
		c.Segment(pts[i], pts[(i+1)%len(pts)])
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
