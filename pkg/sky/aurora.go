package sky

import (
	"github.com/go-gl/mathgl/mgl32"

	"skyshade/pkg/core"
)

// AuroraParams controls the aurora band.
type AuroraParams struct {
	Strength float32
	Velocity float32
	Scale    float32
	Width    float32
	Color1   mgl32.Vec3
	Color2   mgl32.Vec3
}

// DefaultAuroraParams returns the standard aurora settings.
func DefaultAuroraParams() AuroraParams {
	return AuroraParams{
		Strength: 1.3,
		Velocity: 0.03,
		Scale:    0.04,
		Width:    0.18,
		Color1:   mgl32.Vec3{0.0, 1.0, 0.4},
		Color2:   mgl32.Vec3{0.8, 0.1, 1.0},
	}
}

// Aurora renders the additive filament band drawn on the cloud layer.
type Aurora struct {
	p AuroraParams
}

// NewAurora returns an aurora overlay.
func NewAurora(p AuroraParams) *Aurora { return &Aurora{p: p} }

// Mask fades the aurora under rain and removes it whenever the fog is bright
// enough to be daylight.
func Mask(rain float32, fog mgl32.Vec3) float32 {
	return (1 - 0.8*rain) * core.Max(1-3*core.Max(fog[2], fog[1]), 0)
}

// Render returns the band color in rgb and its coverage in a; both are
// already scaled by the coverage.
func (a *Aurora) Render(p mgl32.Vec3, t, rain float32, fog mgl32.Vec3) mgl32.Vec4 {
	t *= a.p.Velocity
	x := p[0] * a.p.Scale
	z := p[2] * a.p.Scale
	wobble := 0.05 * core.Sin(x*4+20*t)
	x += wobble
	z += wobble

	d0 := core.Sin(x*0.1 + t + core.Sin(z*0.2))
	d1 := core.Sin(z*0.1 - t + core.Sin(x*0.2))
	d2 := core.Sin(z*0.1 + core.Sin(d0+d1*2) + d1*2 + d0)
	d0 *= d0
	d1 *= d1
	d2 *= d2
	band := d0 / (1 + d2/a.p.Width)

	k := band * Mask(rain, fog)
	col := core.Mix3(a.p.Color1, a.p.Color2, d1).Mul(a.p.Strength * k)
	return col.Vec4(k)
}
