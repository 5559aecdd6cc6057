package clouds

import (
	"github.com/go-gl/mathgl/mgl32"

	"skyshade/pkg/core"
	"skyshade/pkg/noise"
)

// DensityFunc samples cloud density at a slab-local position. y runs from 0
// at the bottom of the slab to 1 at the top.
type DensityFunc func(pos mgl32.Vec3, rain float32) float32

// Volumetric raymarches a horizontal cloud slab with a fixed step count.
type Volumetric struct {
	p Params
	// Density is sampled once per step. It defaults to the rounded,
	// simplex-perturbed value-noise field.
	Density DensityFunc
}

// NewVolumetric returns a volumetric cloud field using the default density.
func NewVolumetric(p Params) *Volumetric {
	v := &Volumetric{p: p}
	v.Density = v.density
	return v
}

// Name returns the registry name.
func (v *Volumetric) Name() string { return "volumetric" }

// VolumetricReflection scales volumetric clouds seen in reflections.
const VolumetricReflection = 0.5

// ReflectionScale is fixed for the slab; the surface setting only tunes billboards.
func (v *Volumetric) ReflectionScale(float32) float32 { return VolumetricReflection }

// Steps reports how many density samples every Render performs.
func (v *Volumetric) Steps() int {
	if v.p.Steps < 1 {
		return 1
	}
	return v.p.Steps
}

// SlabHeight returns the slab thickness for the given rain intensity.
func (v *Volumetric) SlabHeight(rain float32) float32 {
	return 7 * core.Mix(v.p.Thickness, v.p.RainThickness, rain)
}

func (v *Volumetric) density(pos mgl32.Vec3, rain float32) float32 {
	shape := v.p.Shape
	p0 := mgl32.Vec2{core.Floor(pos[0]), core.Floor(pos[2])}
	ux := core.Smoothstep(0.999*shape, 1, pos[0]-p0[0])
	uy := core.Smoothstep(0.999*shape, 1, pos[2]-p0[1])

	c00, c10, c01, c11 := noise.CellHashes(p0, mgl32.Vec2{0.1001 + 0.2*rain, 0.1 + 0.2*rain*rain})
	n := core.Mix(core.Mix(c00, c10, ux), core.Mix(c01, c11, ux), uy)

	round := 1 - 1.9*core.Smoothstep(shape, 2-shape, 2*mgl32.Abs(pos[1]-0.5))

	q := mgl32.Vec2{pos[0]*3 + pos[1]*2, pos[2]*3 + pos[1]*2}
	fluff := v.p.Fluffiness * (noise.Simplex2D(q) - 0.5)

	return core.Smoothstep(0.2, 1, (n+fluff)*round)
}

// Render marches from the far side of the slab toward the camera, always
// taking exactly Steps samples.
func (v *Volumetric) Render(r Ray, c Colors) Sample {
	steps := v.Steps()
	height := v.SlabHeight(r.Rain)

	spread := v.p.Scale * height / (0.02 + 0.98*mgl32.Abs(r.Dir[1]))
	delta := mgl32.Vec3{spread * r.Dir[0], 1, spread * r.Dir[2]}

	drift := r.Time * v.p.Velocity
	pos := mgl32.Vec3{
		v.p.Scale * (r.Pos[0] + drift),
		0,
		v.p.Scale * (r.Pos[2] + 0.5*drift),
	}.Add(delta)
	delta = delta.Mul(-1 / float32(steps))

	var sum float32
	h := float32(1)
	for i := 0; i < steps; i++ {
		m := v.Density(pos, r.Rain)
		sum += m
		h = core.Mix(h, pos[1], m)
		pos = pos.Add(delta)
	}

	sum *= core.Smoothstep(0.03, 0.1, sum)
	alpha := sum / (float32(steps)/v.p.Density + sum)

	// Seen from below the slab the gradient is flipped.
	if r.Pos[1] > 0 {
		h = 1 - h
	}
	h = 1 - 0.7*h*h

	col := c.Zenith.Mul(0.6)
	col = col.Add(mgl32.Vec3{0.03, 0.05, 0.05}.Add(c.Fog.Mul(0.8)).Mul(h))
	col = col.Mul(1 - 0.5*r.Rain)

	return Sample{Color: col, Alpha: alpha, Height: h}
}

func init() {
	Register("volumetric", func(p Params) Model { return NewVolumetric(p) })
}
