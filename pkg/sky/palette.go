// Package sky derives the sky palette from the host fog color and composes
// sky, aurora and cloud contributions for direct and reflected views.
package sky

import (
	"github.com/go-gl/mathgl/mgl32"

	"skyshade/pkg/core"
)

// PaletteParams are the base colors the palette is built from.
type PaletteParams struct {
	BaseSky        mgl32.Vec3
	BaseHorizon    mgl32.Vec3
	NightSky       mgl32.Vec3
	DayHorizon     mgl32.Vec3
	EdgeHorizon    mgl32.Vec3
	EndZenith      mgl32.Vec3
	EndHorizon     mgl32.Vec3
	UnderwaterTint mgl32.Vec3
}

// DefaultPaletteParams returns the standard sky colors.
func DefaultPaletteParams() PaletteParams {
	return PaletteParams{
		BaseSky:        mgl32.Vec3{0.15, 0.45, 1.0},
		BaseHorizon:    mgl32.Vec3{1.0, 0.4, 0.3},
		NightSky:       mgl32.Vec3{0.01, 0.06, 0.1},
		DayHorizon:     mgl32.Vec3{0.7, 0.85, 1.0},
		EdgeHorizon:    mgl32.Vec3{1.0, 0.4, 0.2},
		EndZenith:      mgl32.Vec3{0.08, 0.0, 0.14},
		EndHorizon:     mgl32.Vec3{0.3, 0.03, 0.5},
		UnderwaterTint: mgl32.Vec3{0.5, 0.8, 1.0},
	}
}

// Zenith returns the overworld zenith color for the fog color and rain.
func (p PaletteParams) Zenith(fog mgl32.Vec3, rain float32) mgl32.Vec3 {
	val := core.Max(fog[0]*0.6, core.Max(fog[1], fog[2]))
	zenith := p.BaseSky.Mul(0.77*val*val + 0.33*val)
	zenith = zenith.Add(p.NightSky.Mul(0.4 - 0.4*fog[2]))

	brightness := core.Min(fog[1], 0.26)
	brightness *= brightness * 13.2
	return core.Mix3(zenith.Mul(1+0.5*rain), mgl32.Vec3{0.85, 0.9, 1.0}.Mul(brightness), rain)
}

// Horizon returns the overworld horizon color for the fog color and rain.
func (p PaletteParams) Horizon(fog mgl32.Vec3, rain float32) mgl32.Vec3 {
	val := core.Max(fog[0]*0.65, core.Max(fog[1]*1.1, fog[2]))
	sun := core.Max(fog[0]-fog[2], 0)

	horizon := p.BaseHorizon.Mul((0.7*val*val + 0.4*val + sun) * 2.4)
	horizon = horizon.Add(p.NightSky)
	horizon = core.Mix3(horizon, p.DayHorizon.Mul(2*val), val*val)

	brightness := core.Min(fog[1], 0.26)
	brightness *= brightness * 19.6
	return core.Mix3(horizon, core.Splat(brightness), rain)
}

// HorizonEdge tints the horizon toward the sunset edge color around dawn and dusk.
func (p PaletteParams) HorizonEdge(horizon, fog mgl32.Vec3, rain float32) mgl32.Vec3 {
	val := 2.1 * (1.1 - fog[2]) * fog[1] * (1 - rain)
	return core.Mul3(horizon, core.Splat(1-val).Add(p.EdgeHorizon.Mul(val)))
}

// Colors returns the palette for the frame. Nether fog is expected to be
// passed already un-graded; the nether palette is the fog color itself.
func (p PaletteParams) Colors(f core.Frame) core.SkyColors {
	switch {
	case f.Env.Underwater:
		return core.UniformSky(core.Mul3(p.UnderwaterTint, core.Mul3(f.Fog, f.Fog)).Mul(2))
	case f.Env.End():
		return core.SkyColors{Zenith: p.EndZenith, Horizon: p.EndHorizon, HorizonEdge: p.EndHorizon}
	case f.Env.Nether():
		return core.UniformSky(f.Fog)
	}
	horizon := p.Horizon(f.Fog, f.Rain)
	return core.SkyColors{
		Zenith:      p.Zenith(f.Fog, f.Rain),
		Horizon:     horizon,
		HorizonEdge: p.HorizonEdge(horizon, f.Fog, f.Rain),
	}
}

// Gradient is the three-stop vertical sky: zenith overhead, horizon near the
// horizon and the edge color in a thin band right at it. h is the view
// elevation in [-1, 1].
func Gradient(c core.SkyColors, h float32) mgl32.Vec3 {
	h = 1 - h*h
	hsq := h * h
	g1 := hsq * hsq
	g1 *= g1
	g2 := 0.6*g1 + 0.4*hsq
	g1 *= g1

	horizon := core.Mix3(c.Horizon, c.HorizonEdge, g1)
	return core.Mix3(c.Zenith, horizon, g2)
}
