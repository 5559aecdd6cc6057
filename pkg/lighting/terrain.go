package lighting

import (
	"github.com/go-gl/mathgl/mgl32"

	"skyshade/pkg/core"
	"skyshade/pkg/noise"
)

// shadowEdge is the sky light level above which a fragment counts as sunlit.
const shadowEdge = 0.3

// Fragment carries the per-fragment terrain attributes.
type Fragment struct {
	// Color is the vertex color; dark values mark crevices.
	Color mgl32.Vec3
	// LightMap holds block light in x and sky light in y.
	LightMap mgl32.Vec2
	// Lit is the host's smoothed light level pair, same layout as LightMap.
	Lit     mgl32.Vec2
	Shade   float32
	Foliage bool
}

// Composer turns light levels and the frame environment into a light
// accumulator. It is immutable and safe for concurrent use.
type Composer struct {
	p         Params
	weighting NormalWeighting
}

// New returns a composer. A nil weighting selects the cheap heuristic.
func New(p Params, w NormalWeighting) *Composer {
	if w == nil {
		w = Cheap{}
	}
	return &Composer{p: p, weighting: w}
}

// Params returns the constants the composer was built with.
func (c *Composer) Params() Params { return c.p }

// TorchAttenuation returns the torch light multiplier for block light and lit.x.
func (c *Composer) TorchAttenuation(block, litX, t float32) float32 {
	att := c.p.TorchIntensity * block / (0.5 - 0.45*litX)
	if c.p.BlinkingTorch {
		att *= 1 - 0.12*noise.Flicker1D(9*t)
	}
	return att
}

// SunTint returns the direct sunlight color for the day factor, rain and fog.
func (c *Composer) SunTint(day, rain float32, fog mgl32.Vec3) mgl32.Vec3 {
	tf := fog[1] + 0.1*fog[0]
	noon := core.Clamp01((tf - 0.37) / 0.45)
	morning := core.Clamp01((tf - 0.05) * 3.125)

	tint := core.Mix3(
		core.Mix3(c.p.NightSun, c.p.MorningSun, morning),
		core.Mix3(c.p.MorningSun, c.p.NoonSun, noon),
		day,
	)

	r := 1 - rain
	r *= r
	return core.Mix3(mgl32.Vec3{0.65, 0.65, 0.75}, tint, r*r)
}

// DayFactor estimates daylight from the fog color, boosted under rain.
func DayFactor(fog mgl32.Vec3, rain float32) float32 {
	return core.Min(fog.Dot(mgl32.Vec3{0.5, 0.4, 0.4})*(1+1.9*rain), 1)
}

// Terrain returns the light reaching a terrain fragment and the torch color
// used for it.
func (c *Composer) Terrain(fr Fragment, f core.Frame, sky core.SkyColors) (light, torch mgl32.Vec3) {
	block, skyLight := fr.LightMap[0], fr.LightMap[1]
	torch = c.p.TorchColor(f.Env)
	torchLight := torch.Mul(c.TorchAttenuation(block, fr.Lit[0], f.Time))

	if f.Env.Nether() || f.Env.End() {
		light = c.p.NetherAmbient
		if f.Env.End() {
			light = c.p.EndAmbient
		}
		light = light.Add(sky.Horizon).Add(torchLight.Mul(0.5))
	} else {
		day := DayFactor(f.Fog, f.Rain)
		night := 1 - day*day
		rainDim := core.Min(f.Fog[1], 0.25) * f.Rain
		intensity := c.p.SunIntensity * (3 - rainDim) * (1 + c.p.NightBrightness*night)

		// caves
		light = core.Splat((1.35 + c.p.CaveBrightness) * (1 - block) * (1 - skyLight))

		ambient := core.Mix3(sky.Horizon, sky.Zenith, 0.5+skyLight-0.5*fr.Lit[1])
		light = light.Add(ambient.Mul(fr.Lit[1] * (3 - 2*skyLight) * (1.3 + 4*night - rainDim)))

		shadow := core.Step(shadowEdge, skyLight)
		shadow = core.Max(shadow, (1-c.p.ShadowIntensity+0.6*c.p.ShadowIntensity*night)*fr.Lit[1])
		if fr.Shade <= 0.8 {
			shadow *= 0.8
		}

		direct := shadow * (1.5 - block*night) * intensity
		light = light.Add(c.SunTint(day, f.Rain, f.Fog).Mul(direct))
		light = light.Add(core.Splat(0.3 * fr.Lit[1] * skyLight * (1 - shadow) * intensity))
		light = light.Add(torchLight.Mul(1 - core.Max(shadow, 0.65*fr.Lit[1])*day*(1-0.3*f.Rain)))
	}

	if core.MaxComponent(fr.Color) < 0.7 {
		light = light.Mul(c.p.ShadowSides)
	}
	if fr.Foliage {
		light = light.Mul(1.25)
	}
	return light, torch
}

// UnderwaterInput carries the positions the caustics and current are keyed to.
type UnderwaterInput struct {
	Lit      mgl32.Vec2
	LightMap mgl32.Vec2
	// Tiled is the chunk-tiled position used for the caustic pattern.
	Tiled mgl32.Vec3
	// Chunk is the position within the chunk.
	Chunk mgl32.Vec3
}

// Underwater adjusts light for a submerged fragment and sways its clip
// position pos with the current. It returns the new light and position.
func (c *Composer) Underwater(light, pos mgl32.Vec3, in UnderwaterInput, t float32, horizon mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	if in.LightMap[1] < 0.9 {
		caustics := noise.Displace3D(core.Mul3(in.Tiled, mgl32.Vec3{1, 0.1, 1}), t)
		caustics += 1 + core.Sin(t+(in.Chunk[0]+in.Chunk[2])*core.PiHalf)
		light = light.Add(core.Splat(c.p.UnderwaterBrightness + c.p.CausticIntensity*caustics*(0.1+in.Lit[1]+0.7*in.Lit[0])))
	}
	light = core.Mul3(light, core.Mix3(core.Normalize(horizon), core.Splat(1), 0.6*in.Lit[1]))

	if c.p.UnderwaterWave != 0 {
		sway := c.p.UnderwaterWave * core.Min(0.05*pos[2], 0.6) *
			core.Sin(1.2*t+in.Chunk.Dot(core.Splat(core.PiHalf)))
		pos[0] += sway
		pos[1] += sway
	}
	return light, pos
}
