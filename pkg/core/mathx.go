package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon floors lengths and denominators that would otherwise reach zero.
const Epsilon = 1e-6

// PiHalf is used by every travelling-wave term keyed to chunk coordinates.
const PiHalf float32 = math.Pi / 2

// Sin returns the sine of x.
func Sin(x float32) float32 { return float32(math.Sin(float64(x))) }

// Cos returns the cosine of x.
func Cos(x float32) float32 { return float32(math.Cos(float64(x))) }

// Exp returns e**x.
func Exp(x float32) float32 { return float32(math.Exp(float64(x))) }

// Sqrt returns the square root of x.
func Sqrt(x float32) float32 { return float32(math.Sqrt(float64(x))) }

// Pow returns x**y.
func Pow(x, y float32) float32 { return float32(math.Pow(float64(x), float64(y))) }

// Floor returns the greatest integer value less than or equal to x.
func Floor(x float32) float32 { return float32(math.Floor(float64(x))) }

// Fract returns x - floor(x).
func Fract(x float32) float32 { return x - Floor(x) }

// Mix linearly interpolates between a and b.
func Mix(a, b, t float32) float32 { return a + (b-a)*t }

// Step returns 0 when x < edge and 1 otherwise.
func Step(edge, x float32) float32 {
	if x < edge {
		return 0
	}
	return 1
}

// Smoothstep performs Hermite interpolation between 0 and 1 across [e0, e1].
func Smoothstep(e0, e1, x float32) float32 {
	t := mgl32.Clamp((x-e0)/(e1-e0), 0, 1)
	return t * t * (3 - 2*t)
}

// Clamp01 clamps x into [0, 1].
func Clamp01(x float32) float32 { return mgl32.Clamp(x, 0, 1) }

// Max returns the larger of a and b.
func Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of a and b.
func Min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// Splat returns a vector with every component set to s.
func Splat(s float32) mgl32.Vec3 { return mgl32.Vec3{s, s, s} }

// Mul3 multiplies two vectors component-wise.
func Mul3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// Mix3 linearly interpolates between two colors.
func Mix3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// MaxComponent returns the largest channel of v.
func MaxComponent(v mgl32.Vec3) float32 {
	return Max(v[0], Max(v[1], v[2]))
}

// Normalize scales v to unit length. The length is floored at Epsilon so a
// zero vector maps to zero instead of NaN.
func Normalize(v mgl32.Vec3) mgl32.Vec3 {
	return v.Mul(1 / Max(v.Len(), Epsilon))
}

// SignedFloor keeps the sign of x while pushing its magnitude to at least Epsilon.
func SignedFloor(x float32) float32 {
	return float32(math.Copysign(float64(Max(mgl32.Abs(x), Epsilon)), float64(x)))
}

// Finite reports whether every component of v is a finite number.
func Finite(v ...float32) bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
