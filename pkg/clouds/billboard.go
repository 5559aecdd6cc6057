package clouds

import (
	"github.com/go-gl/mathgl/mgl32"

	"skyshade/pkg/core"
	"skyshade/pkg/noise"
)

// Billboard renders flat two-octave value-noise clouds projected onto a plane.
type Billboard struct {
	p Params
}

// NewBillboard returns a billboard cloud field.
func NewBillboard(p Params) *Billboard { return &Billboard{p: p} }

// Name returns the registry name.
func (b *Billboard) Name() string { return "billboard" }

// ReflectionScale defers to the water surface setting.
func (b *Billboard) ReflectionScale(surface float32) float32 { return surface }

// Noise evaluates the two-octave cloud density at plane position p. Rain
// widens the jitter window so cells merge into an overcast sheet.
func (b *Billboard) Noise(p mgl32.Vec2, t, rain float32) float32 {
	t *= b.p.BillboardSpeed
	p = p.Add(mgl32.Vec2{t, t})
	p[0] += core.Sin(p[1]*0.4 + t)

	base := noise.HashNoise2D(p, mgl32.Vec2{0.09 + 0.5*rain, 0.089 + 0.5*rain*rain})
	detail := noise.HashNoise2D(p.Mul(2), mgl32.Vec2{0.07 + 0.4*rain, 0.068 + 0.4*rain*rain})
	return base + 0.5*detail
}

// Render evaluates coverage at the ray position and darkens the clouds where a
// denser patch sits at 0.91x scale.
func (b *Billboard) Render(r Ray, c Colors) Sample {
	p := mgl32.Vec2{r.Pos[0] * b.p.BillboardScale[0], r.Pos[2] * b.p.BillboardScale[1]}

	alpha := b.Noise(p, r.Time, r.Rain)
	shadow := b.Noise(p.Mul(0.91), r.Time, r.Rain)

	height := 1 - 0.5*shadow*core.Step(0, r.Pos[1])
	col := mgl32.Vec3{0.8, 0.8, 0.85}.Add(c.Fog).Mul(height)
	col = col.Add(c.Zenith.Mul(0.7)).Mul(1 - 0.3*r.Rain)
	col = core.Mix3(col, c.Horizon, 0.2*(1-shadow))

	return Sample{Color: col, Alpha: core.Clamp01(alpha), Height: height}
}

func init() {
	Register("billboard", func(p Params) Model { return NewBillboard(p) })
}
