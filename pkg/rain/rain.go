// Package rain adds wet-ground reflections, albedo darkening and wind-blown
// mist to terrain fragments.
package rain

import (
	"github.com/go-gl/mathgl/mgl32"

	"skyshade/pkg/core"
	"skyshade/pkg/noise"
	"skyshade/pkg/sky"
	"skyshade/pkg/water"
)

// Wind shaping constants.
const (
	windFrequency = 4.0
	windAmplitude = 2.0
	windTime      = 0.2

	// reflectClip is the fraction of the render distance past which no
	// ground reflection is computed.
	reflectClip = 0.6
	// auroraParallax is the projection distance of aurora in puddles.
	auroraParallax = 100.0
)

// Params configures the overlay.
type Params struct {
	// MistOpacity scales the humid-air contribution to the mist alpha.
	// Zero disables mist.
	MistOpacity float32
	// Wetness scales the reflectivity of wet ground.
	Wetness float32
	// Puddles controls how much of the ground holds standing water.
	Puddles        float32
	TorchIntensity float32
	// GroundReflection, when positive, keeps ground reflections on outside
	// rain at this strength.
	GroundReflection float32
	// AuroraReflection shows the aurora in puddles. It only applies with
	// forced ground reflections.
	AuroraReflection bool
}

// DefaultParams returns the standard rain settings.
func DefaultParams() Params {
	return Params{
		MistOpacity:    0.12,
		Wetness:        1.0,
		Puddles:        0.7,
		TorchIntensity: 1.0,
	}
}

// Wind is the gust pattern driving the mist. It lies in [0, 1].
func Wind(p mgl32.Vec2, t float32) float32 {
	v := core.Sin(windFrequency*p[0] + 0.5*windFrequency*p[1] + windTime*t + windAmplitude*p[1]*p[0])
	v += core.Sin(p[1] - p[0] + windTime*t)
	return 0.25 * v * v
}

// Input carries one terrain fragment.
type Input struct {
	Color mgl32.Vec4
	Mist  mgl32.Vec4
	Lit   mgl32.Vec2
	Tiled mgl32.Vec3
	// WorldPos is relative to the camera; ClipPos is the projected position.
	WorldPos mgl32.Vec3
	ClipPos  mgl32.Vec3
	View     mgl32.Vec3
	CamDist  float32
	Torch    mgl32.Vec3
}

// Result holds the wet reflection (alpha is its strength) and the updated
// base and mist colors.
type Result struct {
	Reflection mgl32.Vec4
	Color      mgl32.Vec4
	Mist       mgl32.Vec4
}

// Overlay applies rain effects. It is immutable.
type Overlay struct {
	p      Params
	sky    water.Reflector
	aurora *sky.Aurora
}

// NewOverlay returns an overlay reflecting sky. aurora may be nil.
func NewOverlay(p Params, refl water.Reflector, aurora *sky.Aurora) *Overlay {
	return &Overlay{p: p, sky: refl, aurora: aurora}
}

// Active reports whether the overlay has any effect for the frame.
func (o *Overlay) Active(f core.Frame) bool {
	return f.Rain > 0 || o.p.GroundReflection > 0
}

// Apply returns the wet reflection and the darkened base and mist colors.
func (o *Overlay) Apply(in Input, f core.Frame, colors core.SkyColors) Result {
	res := Result{Color: in.Color, Mist: in.Mist}
	if !o.Active(f) {
		return res
	}

	rain := f.Rain
	wetness := in.Lit[1] * in.Lit[1]

	if o.p.MistOpacity > 0 {
		p := mgl32.Vec2{in.ClipPos[0], in.ClipPos[1]}.Mul(1 / (1 + in.ClipPos[2]))
		humid := rain * wetness * Wind(p, f.Time)
		res.Mist[3] = core.Min(res.Mist[3]+humid*o.p.MistOpacity, 1)
	}

	end := f.RenderDistance * reflectClip
	if in.CamDist < end {
		cosR := core.Max(in.View[1], 0)
		puddles := core.Max(1-o.p.Puddles*noise.FastRand(mgl32.Vec2{in.Tiled[0], in.Tiled[2]}), 0)

		var reflective float32
		if o.p.GroundReflection > 0 {
			reflective = o.p.GroundReflection
			if f.Env.Overworld() {
				reflective *= wetness
			}
			wetness *= puddles
			reflective = core.Mix(reflective, wetness, rain)
		} else {
			wetness *= puddles
			reflective = wetness * rain * o.p.Wetness
		}

		if in.WorldPos[1] < 0 {
			rgb := o.sky.Reflect(in.View, in.WorldPos, f, colors)
			a := water.Fresnel(cosR, 0.03) * reflective

			if o.p.GroundReflection > 0 && o.p.AuroraReflection && o.aurora != nil {
				proj := sky.Project(in.WorldPos, in.View, auroraParallax)
				fade := sky.ParallaxFade(proj)
				au := o.aurora.Render(mgl32.Vec3{proj[0], proj[1], proj[1]}, f.Time, rain, colors.HorizonEdge)
				rgb = rgb.Add(au.Vec3().Mul(2 * au[3] * fade))
			}

			rgb = rgb.Add(in.Torch.Mul(in.Lit[0] * o.p.TorchIntensity))
			a *= core.Clamp01(2 - 2*in.CamDist/end)
			res.Reflection = rgb.Vec4(a)
		}
	}

	dim := 1 - 0.4*wetness*rain
	res.Color = mgl32.Vec4{in.Color[0] * dim, in.Color[1] * dim, in.Color[2] * dim, in.Color[3]}
	return res
}
