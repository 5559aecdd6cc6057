package core

import "github.com/go-gl/mathgl/mgl32"

// ColorGrid stores the graded colors of a preview frame in row-major order.
type ColorGrid struct {
	W, H int
	data []mgl32.Vec3
}

// NewColorGrid allocates a grid with the given dimensions.
func NewColorGrid(w, h int) *ColorGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ColorGrid{W: w, H: h, data: make([]mgl32.Vec3, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ColorGrid) Cells() []mgl32.Vec3 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ColorGrid) Index(x, y int) int { return y*g.W + x }

// At returns the color at (x, y).
func (g *ColorGrid) At(x, y int) mgl32.Vec3 { return g.data[g.Index(x, y)] }

// Set stores c at (x, y).
func (g *ColorGrid) Set(x, y int, c mgl32.Vec3) { g.data[g.Index(x, y)] = c }

// Row returns the slice backing row y.
func (g *ColorGrid) Row(y int) []mgl32.Vec3 { return g.data[y*g.W : (y+1)*g.W] }
