// Package pipeline wires the shading kernels into the per-fragment stages a
// host calls: sky, terrain, water and actors, each finished by the tone
// mapper.
package pipeline

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"skyshade/pkg/clouds"
	"skyshade/pkg/core"
	"skyshade/pkg/lighting"
	"skyshade/pkg/rain"
	"skyshade/pkg/sky"
	"skyshade/pkg/tonemap"
	"skyshade/pkg/water"
)

// Pipeline holds the resolved strategies. It is immutable after New and
// shared by every render worker.
type Pipeline struct {
	cfg     Config
	clouds  clouds.Model
	sky     *sky.Composer
	light   *lighting.Composer
	water   *water.Surface
	rain    *rain.Overlay
	tone    *tonemap.Mapper
	palette sky.PaletteParams
	pbr     bool
}

// New resolves every strategy in cfg.
func New(cfg Config) (*Pipeline, error) {
	model, err := clouds.New(cfg.CloudModel, cfg.Clouds)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	weighting, err := lighting.Weighting(cfg.Weighting)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	var aurora *sky.Aurora
	if cfg.Aurora {
		aurora = sky.NewAurora(cfg.AuroraParams)
	}
	composer := &sky.Composer{Clouds: model, Aurora: aurora, CloudReflection: model.ReflectionScale(cfg.Water.CloudReflection)}

	light := cfg.Lighting
	surface := cfg.Water
	surface.TorchIntensity = light.TorchIntensity
	wet := cfg.Rain
	wet.TorchIntensity = light.TorchIntensity

	return &Pipeline{
		cfg:     cfg,
		clouds:  model,
		sky:     composer,
		light:   lighting.New(light, weighting),
		water:   water.NewSurface(surface, composer),
		rain:    rain.NewOverlay(wet, composer, aurora),
		tone:    tonemap.New(cfg.Tonemap),
		palette: cfg.Palette,
		pbr:     cfg.PBR,
	}, nil
}

// Config returns the configuration the pipeline was built from.
func (p *Pipeline) Config() Config { return p.cfg }

// CloudModel returns the resolved cloud model.
func (p *Pipeline) CloudModel() clouds.Model { return p.clouds }

// Colors derives the frame's sky palette. Nether fog arrives graded and is
// mapped back before use.
func (p *Pipeline) Colors(f core.Frame) core.SkyColors {
	if f.Env.Nether() && !f.Env.Underwater {
		f.Fog = p.tone.Inverse(f.Fog)
	}
	return p.palette.Colors(f)
}

// Output is a finished fragment.
type Output struct {
	// Color is display-ready.
	Color mgl32.Vec3
	Alpha float32
	// WorldPos is the possibly displaced fragment position.
	WorldPos mgl32.Vec3
	// ClipPos is the terrain clip position after the underwater current.
	ClipPos mgl32.Vec3
}

// Fog mixes c toward the mist color by the mist alpha.
func Fog(c mgl32.Vec3, mist mgl32.Vec4) mgl32.Vec3 {
	return core.Mix3(c, mist.Vec3(), mist[3])
}

// ShadeSky grades the sky seen along view.
func (p *Pipeline) ShadeSky(view mgl32.Vec3, f core.Frame, colors core.SkyColors) Output {
	return Output{Color: p.tone.Map(p.sky.Sky(view, f, colors)), Alpha: 1}
}

// Terrain carries one terrain fragment.
type Terrain struct {
	Albedo   mgl32.Vec4
	Light    lighting.Fragment
	WorldPos mgl32.Vec3
	ClipPos  mgl32.Vec3
	View     mgl32.Vec3
	Tiled    mgl32.Vec3
	Chunk    mgl32.Vec3
	CamDist  float32
	Mist     mgl32.Vec4
}

// ShadeTerrain lights a terrain fragment, applies rain and fog, and grades it.
func (p *Pipeline) ShadeTerrain(in Terrain, f core.Frame, colors core.SkyColors) Output {
	light, torch := p.light.Terrain(in.Light, f, colors)
	pos := in.ClipPos
	if f.Env.Underwater {
		light, pos = p.light.Underwater(light, pos, lighting.UnderwaterInput{
			Lit:      in.Light.Lit,
			LightMap: in.Light.LightMap,
			Tiled:    in.Tiled,
			Chunk:    in.Chunk,
		}, f.Time, colors.Horizon)
	}

	albedo, mist := in.Albedo, in.Mist
	var wet mgl32.Vec4
	if p.rain.Active(f) {
		r := p.rain.Apply(rain.Input{
			Color:    albedo,
			Mist:     mist,
			Lit:      in.Light.Lit,
			Tiled:    in.Tiled,
			WorldPos: in.WorldPos,
			ClipPos:  pos,
			View:     in.View,
			CamDist:  in.CamDist,
			Torch:    torch,
		}, f, colors)
		albedo, mist, wet = r.Color, r.Mist, r.Reflection
	}

	c := core.Mul3(albedo.Vec3(), light)
	c = core.Mix3(c, wet.Vec3(), wet[3])
	c = Fog(c, mist)
	return Output{Color: p.tone.Map(c), Alpha: albedo[3], WorldPos: in.WorldPos, ClipPos: pos}
}

// Water carries one water fragment.
type Water struct {
	Surface water.Input
	Light   lighting.Fragment
	Mist    mgl32.Vec4
}

// ShadeWater shades a water fragment and grades it.
func (p *Pipeline) ShadeWater(in Water, f core.Frame, colors core.SkyColors) Output {
	light, torch := p.light.Terrain(in.Light, f, colors)
	surf := in.Surface
	surf.Torch = torch
	r := p.water.Shade(surf, f, colors)

	c := core.Mul3(r.Color.Vec3(), light)
	c = core.Mix3(c, r.Reflection, r.Fresnel)
	c = Fog(c, in.Mist)
	return Output{Color: p.tone.Map(c), Alpha: r.Color[3], WorldPos: r.WorldPos}
}

// Actor carries one entity fragment.
type Actor struct {
	lighting.Actor
	Albedo mgl32.Vec4
	View   mgl32.Vec3
	// SunDir points toward the sun; it drives the PBR term.
	SunDir    mgl32.Vec3
	Metallic  float32
	Roughness float32
	Mist      mgl32.Vec4
}

// ShadeActor lights an entity fragment, optionally adding the Cook-Torrance
// sun term, and grades it.
func (p *Pipeline) ShadeActor(in Actor, f core.Frame, colors core.SkyColors) Output {
	light := p.light.Actor(in.Actor, f, colors.Horizon)
	c := core.Mul3(in.Albedo.Vec3(), light)

	if p.pbr && f.Env.Overworld() && !f.Env.Underwater {
		n := core.Normalize(in.Normal.Vec3())
		day := lighting.DayFactor(f.Fog, f.Rain)
		sun := p.light.SunTint(day, f.Rain, f.Fog).Mul(p.light.Params().SunIntensity * day)
		c = c.Add(lighting.PBR(n, in.View.Mul(-1), core.Normalize(in.SunDir), sun, in.Albedo.Vec3(), in.Metallic, in.Roughness))
	}

	c = Fog(c, in.Mist)
	return Output{Color: p.tone.Map(c), Alpha: in.Albedo[3], WorldPos: in.Pos}
}

// Grade applies only the tone mapper.
func (p *Pipeline) Grade(c mgl32.Vec3) mgl32.Vec3 { return p.tone.Map(c) }
