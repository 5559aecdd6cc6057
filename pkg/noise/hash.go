// Package noise provides the deterministic scalar generators every other
// shading stage is built on. All functions are pure.
package noise

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"skyshade/pkg/core"
)

// Period is the lattice wrap applied to integer cell coordinates before
// hashing. Large world coordinates therefore never reach the hash.
const Period = 289.0

func mod289(x float64) float64 {
	return x - math.Floor(x*(1.0/Period))*Period
}

func fract(x float64) float64 { return x - math.Floor(x) }

// hash is the sine hash used for lattice corners, evaluated in float64.
func hash(x, y float64) float64 {
	return fract(math.Sin(x*12.9898+y*4.1414) * 43758.5453)
}

// Rand hashes a lattice cell into [0, 1). The cell is wrapped by Period.
func Rand(cell mgl32.Vec2) float32 {
	return float32(hash(mod289(float64(cell[0])), mod289(float64(cell[1]))))
}

// RandT hashes a cell and passes the result through smoothstep(jitter.x, jitter.y).
// Narrow jitter windows produce sparse, high-contrast cells.
func RandT(cell, jitter mgl32.Vec2) float32 {
	return core.Smoothstep(jitter[0], jitter[1], Rand(cell))
}

// FastRand is the cheap position hash used for ripples and puddles. It is not
// lattice based and is not wrapped.
func FastRand(p mgl32.Vec2) float32 {
	a := math.Cos(float64(p[0])*4.2683 + float64(p[1])*1.367)
	return float32(fract(250 * a * a))
}

// CellHashes returns the jittered hashes of the four corners of the cell whose
// lower corner is p0, ordered (0,0), (1,0), (0,1), (1,1). Each corner is
// wrapped independently so neighbouring cells stay continuous across the
// period boundary.
func CellHashes(p0, jitter mgl32.Vec2) (c00, c10, c01, c11 float32) {
	c00 = RandT(p0, jitter)
	c10 = RandT(mgl32.Vec2{p0[0] + 1, p0[1]}, jitter)
	c01 = RandT(mgl32.Vec2{p0[0], p0[1] + 1}, jitter)
	c11 = RandT(mgl32.Vec2{p0[0] + 1, p0[1] + 1}, jitter)
	return c00, c10, c01, c11
}
