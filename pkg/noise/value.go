package noise

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"skyshade/pkg/core"
)

func ease(t float32) float32 { return t * t * (3 - 2*t) }

// HashNoise2D is jittered value noise in [0, 1]: the four cell corners are
// hashed through RandT and blended bilinearly with cubic easing.
func HashNoise2D(p, jitter mgl32.Vec2) float32 {
	p0 := mgl32.Vec2{core.Floor(p[0]), core.Floor(p[1])}
	ux := ease(p[0] - p0[0])
	uy := ease(p[1] - p0[1])
	vx, vy := 1-ux, 1-uy

	c00, c10, c01, c11 := CellHashes(p0, jitter)
	return vy*(c00*vx+c10*ux) + uy*(c01*vx+c11*ux)
}

// Flicker1D is one-dimensional value noise in [0, 1) used for blinking light.
func Flicker1D(x float32) float32 {
	x0 := math.Floor(float64(x))
	t := ease(x - float32(x0))
	h0 := fract(math.Sin(mod289(x0)) * 84.85)
	h1 := fract(math.Sin(mod289(x0+1)) * 84.85)
	return core.Mix(float32(h0), float32(h1), t)
}
