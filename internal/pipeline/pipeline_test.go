package pipeline

import (
	"flag"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"skyshade/pkg/clouds"
	"skyshade/pkg/core"
	"skyshade/pkg/lighting"
	"skyshade/pkg/tonemap"
	"skyshade/pkg/water"
)

func mustNew(t *testing.T, cfg Config) *Pipeline {
	t.Helper()
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func dayFrame() core.Frame {
	return core.Frame{Time: 30, Fog: mgl32.Vec3{0.7, 0.8, 0.95}, RenderDistance: 96}
}

func finite(v mgl32.Vec3) bool { return core.Finite(v[0], v[1], v[2]) }

func TestNewRejectsUnknownStrategies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CloudModel = "cirrus"
	if _, err := New(cfg); err == nil {
		t.Fatal("expected an error for an unknown cloud model")
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate accepted an unknown cloud model")
	}

	cfg = DefaultConfig()
	cfg.Weighting = "ultra"
	if _, err := New(cfg); err == nil {
		t.Fatal("expected an error for an unknown normal weighting")
	}
}

func TestFromMapIgnoresBadValues(t *testing.T) {
	cfg := FromMap(map[string]string{
		"sun_intensity": "lots",
		"cloud_steps":   "-4",
		"aurora":        "maybe",
		"wave":          "tsunami",
		"tonemap":       "sepia",
	})
	if cfg != DefaultConfig() {
		t.Fatalf("unparsable values changed the config: %+v", cfg)
	}
}

func TestFromMapParses(t *testing.T) {
	cfg := FromMap(map[string]string{
		"clouds":        "billboard",
		"weighting":     "cheap",
		"aurora":        "false",
		"pbr":           "true",
		"wave":          "noise",
		"tonemap":       "aces",
		"cloud_steps":   "12",
		"sun_intensity": "1.5",
		"exposure":      "0.9",
	})
	if cfg.CloudModel != "billboard" || cfg.Weighting != "cheap" || cfg.Aurora || !cfg.PBR {
		t.Fatalf("strategies not parsed: %+v", cfg)
	}
	if cfg.Water.Wave != water.WaveNoise || cfg.Tonemap.Curve != tonemap.ACES || cfg.Clouds.Steps != 12 {
		t.Fatalf("modes not parsed: wave %v curve %v steps %d", cfg.Water.Wave, cfg.Tonemap.Curve, cfg.Clouds.Steps)
	}
	if cfg.Lighting.SunIntensity != 1.5 || cfg.Tonemap.Exposure != 0.9 {
		t.Fatalf("floats not parsed: sun %f exposure %f", cfg.Lighting.SunIntensity, cfg.Tonemap.Exposure)
	}
}

func TestParametersRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CloudModel = "billboard"
	cfg.PBR = true
	cfg.Water.Wave = water.WaveNoise
	cfg.Tonemap.Curve = tonemap.Hable
	cfg.Lighting.CausticIntensity = 2.25
	cfg.Rain.Puddles = 0.35

	got := FromMap(cfg.Parameters().Map())
	if got != cfg {
		t.Fatalf("snapshot round trip lost values:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestSettersClamp(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.SetFloatParameter("shadow_intensity", 3) {
		t.Fatal("expected shadow intensity to be adjustable")
	}
	if cfg.Lighting.ShadowIntensity != 1 {
		t.Fatalf("shadow intensity = %f, want clamp to 1", cfg.Lighting.ShadowIntensity)
	}
	if cfg.SetFloatParameter("no_such_key", 1) {
		t.Fatal("setter accepted an unknown key")
	}
	if cfg.SetFloatParameter("exposure", math.NaN()) {
		t.Fatal("setter accepted NaN")
	}

	if !cfg.SetIntParameter("cloud_steps", 0) || cfg.Clouds.Steps != 1 {
		t.Fatalf("cloud steps = %d, want clamp to 1", cfg.Clouds.Steps)
	}
	if !cfg.SetIntParameter("tonemap", 40) || cfg.Tonemap.Curve != tonemap.CustomPBR {
		t.Fatalf("tone curve = %v, want clamp to the last curve", cfg.Tonemap.Curve)
	}
}

func TestControlsMatchSnapshot(t *testing.T) {
	cfg := DefaultConfig()
	snap := cfg.Parameters()
	for _, ctrl := range cfg.ParameterControls() {
		if _, ok := snap.Lookup(ctrl.Key); !ok {
			t.Fatalf("control %q missing from the parameter snapshot", ctrl.Key)
		}
	}
}

func TestBindFlags(t *testing.T) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	err := fs.Parse([]string{"-clouds", "billboard", "-wave", "off", "-tonemap", "7", "-set", "rain_puddles=0.2"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.CloudModel != "billboard" || cfg.Water.Wave != water.WaveOff || cfg.Tonemap.Curve != tonemap.Hable {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if cfg.Rain.Puddles != 0.2 {
		t.Fatalf("-set not applied: puddles %f", cfg.Rain.Puddles)
	}

	fs = flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(discard{})
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-set", "bogus=1"}); err == nil {
		t.Fatal("expected an error for an unknown tunable")
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestBillboardUsesWaterCloudReflection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CloudModel = "billboard"
	p := mustNew(t, cfg)
	if got := p.sky.CloudReflection; got != cfg.Water.CloudReflection {
		t.Fatalf("billboard reflection scale = %f, want %f", got, cfg.Water.CloudReflection)
	}

	cfg.CloudModel = "volumetric"
	p = mustNew(t, cfg)
	if got := p.sky.CloudReflection; got != clouds.VolumetricReflection {
		t.Fatalf("volumetric reflection scale = %f, want %f", got, float32(clouds.VolumetricReflection))
	}
}

func TestNetherPaletteUsesUngradedFog(t *testing.T) {
	p := mustNew(t, DefaultConfig())
	f := dayFrame()
	f.Env.Realm = core.RealmNether
	f.Fog = mgl32.Vec3{0.3, 0.1, 0.05}
	got := p.Colors(f)
	want := core.UniformSky(p.tone.Inverse(f.Fog))
	if got != want {
		t.Fatalf("nether palette = %+v, want %+v", got, want)
	}
}

func TestStagesFiniteAcrossEnvironments(t *testing.T) {
	for _, model := range []string{"billboard", "volumetric"} {
		cfg := DefaultConfig()
		cfg.CloudModel = model
		cfg.PBR = true
		p := mustNew(t, cfg)

		for _, env := range []core.Env{
			{},
			{Realm: core.RealmNether},
			{Realm: core.RealmEnd},
			{Underwater: true},
		} {
			f := dayFrame()
			f.Rain = 0.6
			f.Env = env
			colors := p.Colors(f)

			if out := p.ShadeSky(core.Normalize(mgl32.Vec3{0.2, 0.5, 1}), f, colors); !finite(out.Color) {
				t.Fatalf("%s %+v: sky %v", model, env, out.Color)
			}

			view := core.Normalize(mgl32.Vec3{0.1, -0.4, 1})
			ground := p.ShadeTerrain(Terrain{
				Albedo:   mgl32.Vec4{0.4, 0.6, 0.3, 1},
				Light:    lighting.Fragment{Color: mgl32.Vec3{1, 1, 1}, LightMap: mgl32.Vec2{0.1, 0.9}, Lit: mgl32.Vec2{0.1, 0.9}, Shade: 1},
				WorldPos: view.Mul(8),
				ClipPos:  mgl32.Vec3{0.1, -0.2, 8},
				View:     view,
				Tiled:    mgl32.Vec3{3.5, 0, 7.5},
				Chunk:    mgl32.Vec3{3.5, 0, 7.5},
				CamDist:  8,
				Mist:     mgl32.Vec4{0.6, 0.7, 0.8, 0.1},
			}, f, colors)
			if !finite(ground.Color) {
				t.Fatalf("%s %+v: terrain %v", model, env, ground.Color)
			}

			surf := p.ShadeWater(Water{
				Surface: water.Input{
					WorldPos:    view.Mul(6),
					Color:       mgl32.Vec4{0.3, 0.5, 0.8, 1},
					VertexAlpha: 1,
					View:        view,
					Chunk:       mgl32.Vec3{1.5, 0.9, 4.5},
					Tiled:       mgl32.Vec3{1.5, 0.9, 4.5},
					FractY:      0.9,
					Lit:         mgl32.Vec2{0, 1},
					CamDist:     6,
				},
				Light: lighting.Fragment{Color: mgl32.Vec3{1, 1, 1}, LightMap: mgl32.Vec2{0, 1}, Lit: mgl32.Vec2{0, 1}, Shade: 1},
			}, f, colors)
			if !finite(surf.Color) || surf.Alpha < 0 || surf.Alpha > 1 {
				t.Fatalf("%s %+v: water %v alpha %f", model, env, surf.Color, surf.Alpha)
			}

			actor := p.ShadeActor(Actor{
				Actor: lighting.Actor{
					Pos:       mgl32.Vec3{0, -1, 4},
					Normal:    mgl32.Vec4{0, 1, 0, 0},
					World:     mgl32.Ident4(),
					TileLight: mgl32.Vec4{0.2, 0, 0.9, 1},
				},
				Albedo:    mgl32.Vec4{0.8, 0.3, 0.3, 1},
				View:      view,
				SunDir:    mgl32.Vec3{0.3, 1, 0.2},
				Metallic:  0.2,
				Roughness: 0.5,
			}, f, colors)
			if !finite(actor.Color) {
				t.Fatalf("%s %+v: actor %v", model, env, actor.Color)
			}
		}
	}
}

func TestUnderwaterCurrentMovesClipPos(t *testing.T) {
	in := Terrain{
		Albedo:   mgl32.Vec4{0.4, 0.6, 0.3, 1},
		Light:    lighting.Fragment{Color: mgl32.Vec3{1, 1, 1}, LightMap: mgl32.Vec2{0.1, 0.9}, Lit: mgl32.Vec2{0.1, 0.9}, Shade: 1},
		WorldPos: mgl32.Vec3{0.8, -3.2, 8},
		ClipPos:  mgl32.Vec3{0.1, -0.2, 8},
		View:     core.Normalize(mgl32.Vec3{0.1, -0.4, 1}),
		Tiled:    mgl32.Vec3{3.5, 0, 7.5},
		Chunk:    mgl32.Vec3{3.5, 0, 7.5},
		CamDist:  8,
	}
	f := dayFrame()
	f.Env.Underwater = true

	shade := func(wave float32) mgl32.Vec3 {
		cfg := DefaultConfig()
		cfg.Lighting.UnderwaterWave = wave
		p := mustNew(t, cfg)
		return p.ShadeTerrain(in, f, p.Colors(f)).ClipPos
	}

	if got := shade(0); got != in.ClipPos {
		t.Fatalf("still water moved clip position to %v", got)
	}
	swayed := shade(1)
	if swayed == in.ClipPos {
		t.Fatal("underwater current left clip position unchanged")
	}
	dx, dy := swayed[0]-in.ClipPos[0], swayed[1]-in.ClipPos[1]
	if math.Abs(float64(dx-dy)) > 1e-5 || swayed[2] != in.ClipPos[2] {
		t.Fatalf("current should sway x and y equally, got %v from %v", swayed, in.ClipPos)
	}

	f.Env.Underwater = false
	p := mustNew(t, DefaultConfig())
	if got := p.ShadeTerrain(in, f, p.Colors(f)).ClipPos; got != in.ClipPos {
		t.Fatalf("dry terrain moved clip position to %v", got)
	}
}

func TestShadeDeterministic(t *testing.T) {
	p := mustNew(t, DefaultConfig())
	f := dayFrame()
	colors := p.Colors(f)
	view := core.Normalize(mgl32.Vec3{0.4, 0.3, 1})
	a := p.ShadeSky(view, f, colors)
	b := p.ShadeSky(view, f, colors)
	if a != b {
		t.Fatalf("sky not deterministic: %v vs %v", a, b)
	}
}
