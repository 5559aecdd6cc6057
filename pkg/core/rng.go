package core

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic
// input generation in sweeps and tests. The shading kernels never use it.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// Range returns a float32 in [lo, hi).
func (r *RNG) Range(lo, hi float32) float32 {
	return lo + (hi-lo)*r.r.Float32()
}

// Unit returns a float32 in [0, 1).
func (r *RNG) Unit() float32 { return r.r.Float32() }

// Vec3 returns a vector with each component drawn from [lo, hi).
func (r *RNG) Vec3(lo, hi float32) mgl32.Vec3 {
	return mgl32.Vec3{r.Range(lo, hi), r.Range(lo, hi), r.Range(lo, hi)}
}

// Direction returns a random unit vector.
func (r *RNG) Direction() mgl32.Vec3 {
	for {
		v := r.Vec3(-1, 1)
		if l := v.Len(); l > 0.05 && l <= 1 {
			return v.Mul(1 / l)
		}
	}
}
