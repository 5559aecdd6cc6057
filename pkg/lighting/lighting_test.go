package lighting

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"skyshade/pkg/core"
)

func approx(a, b, tol float32) bool { return math.Abs(float64(a-b)) <= float64(tol) }

func testSky() core.SkyColors {
	return core.SkyColors{
		Zenith:      mgl32.Vec3{0.2, 0.4, 0.9},
		Horizon:     mgl32.Vec3{0.8, 0.8, 0.9},
		HorizonEdge: mgl32.Vec3{0.9, 0.6, 0.4},
	}
}

func frame(env core.Env) core.Frame {
	return core.Frame{Time: 3, Fog: mgl32.Vec3{0.7, 0.8, 0.95}, RenderDistance: 96, Env: env}
}

func bright() Fragment {
	return Fragment{
		Color:    mgl32.Vec3{1, 1, 1},
		LightMap: mgl32.Vec2{0.2, 1},
		Lit:      mgl32.Vec2{0.2, 1},
		Shade:    1,
	}
}

func TestNetherIgnoresOverworldConstants(t *testing.T) {
	base := DefaultParams()
	tweaked := base
	tweaked.SunIntensity = 9
	tweaked.NightBrightness = 3
	tweaked.CaveBrightness = 2
	tweaked.ShadowIntensity = 0.1

	for _, realm := range []core.Realm{core.RealmNether, core.RealmEnd} {
		f := frame(core.Env{Realm: realm})
		a, _ := New(base, nil).Terrain(bright(), f, testSky())
		b, _ := New(tweaked, nil).Terrain(bright(), f, testSky())
		if a != b {
			t.Fatalf("%s light changed with overworld constants: %v vs %v", realm, a, b)
		}
	}
}

func TestNetherLightFormula(t *testing.T) {
	p := DefaultParams()
	c := New(p, nil)
	fr := bright()
	f := frame(core.Env{Realm: core.RealmNether})
	got, torch := c.Terrain(fr, f, testSky())

	att := p.TorchIntensity * fr.LightMap[0] / (0.5 - 0.45*fr.Lit[0])
	want := p.NetherAmbient.Add(testSky().Horizon).Add(p.NetherTorch.Mul(0.5 * att))
	for i := range want {
		if !approx(got[i], want[i], 1e-5) {
			t.Fatalf("nether light = %v, want %v", got, want)
		}
	}
	if torch != p.NetherTorch {
		t.Fatalf("nether torch color = %v", torch)
	}
}

func TestTorchColorPriority(t *testing.T) {
	p := DefaultParams()
	p.UnderwaterTorch = mgl32.Vec3{0, 0, 1}
	p.EndTorch = mgl32.Vec3{1, 0, 1}
	p.NetherTorch = mgl32.Vec3{1, 0, 0}
	if got := p.TorchColor(core.Env{Realm: core.RealmEnd, Underwater: true}); got != p.UnderwaterTorch {
		t.Fatalf("underwater should win, got %v", got)
	}
	if got := p.TorchColor(core.Env{Realm: core.RealmEnd}); got != p.EndTorch {
		t.Fatalf("end torch = %v", got)
	}
	if got := p.TorchColor(core.Env{}); got != p.OverworldTorch {
		t.Fatalf("overworld torch = %v", got)
	}
}

func TestShadowSidesAndFoliage(t *testing.T) {
	c := New(DefaultParams(), nil)
	f := frame(core.Env{})
	lit, _ := c.Terrain(bright(), f, testSky())

	dark := bright()
	dark.Color = mgl32.Vec3{0.5, 0.6, 0.4}
	got, _ := c.Terrain(dark, f, testSky())
	if !approx(got[1], lit[1]*0.8, 1e-4) {
		t.Fatalf("crevice light = %v, want %v scaled by 0.8", got, lit)
	}

	leaf := bright()
	leaf.Foliage = true
	got, _ = c.Terrain(leaf, f, testSky())
	if !approx(got[0], lit[0]*1.25, 1e-4) {
		t.Fatalf("foliage light = %v, want %v scaled by 1.25", got, lit)
	}
}

func TestCaveAmbientOnlyWhenDark(t *testing.T) {
	c := New(DefaultParams(), nil)
	f := frame(core.Env{})
	cave := Fragment{Color: mgl32.Vec3{1, 1, 1}, Shade: 1}
	got, _ := c.Terrain(cave, f, testSky())
	// No sky or block light: only the cave ambient is left.
	want := 1.35 + DefaultParams().CaveBrightness
	for i := range got {
		if !approx(got[i], want, 1e-5) {
			t.Fatalf("cave light %v, want uniform %f", got, want)
		}
	}
}

func TestRainDimsSunTint(t *testing.T) {
	c := New(DefaultParams(), nil)
	fog := mgl32.Vec3{0.7, 0.8, 0.95}
	got := c.SunTint(1, 1, fog)
	if got != (mgl32.Vec3{0.65, 0.65, 0.75}) {
		t.Fatalf("full-rain sun tint = %v, want overcast grey", got)
	}
}

func TestBlinkingTorchFlickers(t *testing.T) {
	p := DefaultParams()
	steady := New(p, nil)
	p.BlinkingTorch = true
	blink := New(p, nil)

	base := steady.TorchAttenuation(1, 0, 0)
	for i := 0; i < 50; i++ {
		ti := float32(i) * 0.37
		a := blink.TorchAttenuation(1, 0, ti)
		if a > base+1e-6 || a < base*0.88-1e-6 {
			t.Fatalf("flickered attenuation %f outside [%f, %f]", a, base*0.88, base)
		}
	}
}

func TestUnderwaterWaveDisabled(t *testing.T) {
	p := DefaultParams()
	p.UnderwaterWave = 0
	c := New(p, nil)
	pos := mgl32.Vec3{0.3, -0.2, 5}
	_, got := c.Underwater(core.Splat(1), pos, UnderwaterInput{LightMap: mgl32.Vec2{0, 1}}, 4, testSky().Horizon)
	if got != pos {
		t.Fatalf("position moved with the current disabled: %v", got)
	}
}

func TestUnderwaterCausticsBelowSurface(t *testing.T) {
	c := New(DefaultParams(), nil)
	horizon := mgl32.Vec3{1, 1, 1}
	in := UnderwaterInput{Lit: mgl32.Vec2{0, 1}, LightMap: mgl32.Vec2{0, 0.95}}
	open, _ := c.Underwater(core.Splat(1), mgl32.Vec3{}, in, 1, horizon)
	in.LightMap[1] = 0.5
	deep, _ := c.Underwater(core.Splat(1), mgl32.Vec3{}, in, 1, horizon)
	if deep[0] <= open[0] {
		t.Fatalf("caustics did not add light: %v vs %v", deep, open)
	}
}

func TestWeightingRegistry(t *testing.T) {
	for _, name := range Weightings() {
		w, err := Weighting(name)
		if err != nil {
			t.Fatalf("Weighting(%q): %v", name, err)
		}
		if w.Name() != name {
			t.Fatalf("Weighting(%q).Name() = %q", name, w.Name())
		}
	}
	if _, err := Weighting("ultra"); err == nil {
		t.Fatal("expected an error for an unknown weighting")
	}
}

func TestFancyMatchesCheapForIdentityUp(t *testing.T) {
	up := mgl32.Vec4{0, 1, 0, 0}
	tile := mgl32.Vec4{0, 0, 1, 1}
	fancy := Fancy{}.Intensity(up, mgl32.Ident4(), tile)
	if !approx(fancy, 1, 1e-6) {
		t.Fatalf("fancy intensity for an up normal = %f, want 1", fancy)
	}
	if cheap := (Cheap{}).Intensity(up, mgl32.Mat4{}, tile); !approx(cheap, 0.9, 1e-6) {
		t.Fatalf("cheap intensity for an up normal = %f, want 0.9", cheap)
	}
}

func TestActorEndTint(t *testing.T) {
	p := DefaultParams()
	c := New(p, Cheap{})
	a := Actor{Pos: mgl32.Vec3{0, -1, 0}, Normal: mgl32.Vec4{0, 1, 0, 0}, World: mgl32.Ident4(), TileLight: mgl32.Vec4{0, 0, 1, 1}}
	over := c.Actor(a, frame(core.Env{}), mgl32.Vec3{})
	end := c.Actor(a, frame(core.Env{Realm: core.RealmEnd}), mgl32.Vec3{})
	want := core.Mul3(over, p.EndAmbient)
	for i := range want {
		if !approx(end[i], want[i], 1e-5) {
			t.Fatalf("end actor light = %v, want %v", end, want)
		}
	}
}

func TestPBRDenominatorFloor(t *testing.T) {
	n := mgl32.Vec3{0, 1, 0}
	v := mgl32.Vec3{1, 0, 0} // grazing: NdotV = 0
	l := core.Normalize(mgl32.Vec3{0, 1, 1})
	got := PBR(n, v, l, core.Splat(1), mgl32.Vec3{0.8, 0.5, 0.3}, 0.5, 0.5)
	if !core.Finite(got[0], got[1], got[2]) {
		t.Fatalf("PBR at grazing view is not finite: %v", got)
	}
}

func TestPBRNoLightBehind(t *testing.T) {
	n := mgl32.Vec3{0, 1, 0}
	v := mgl32.Vec3{0, 1, 0}
	l := mgl32.Vec3{0, -1, 0}
	if got := PBR(n, v, l, core.Splat(3), core.Splat(1), 0, 0.4); got != (mgl32.Vec3{}) {
		t.Fatalf("light from behind contributed %v", got)
	}
}

func TestFresnelSchlickLimits(t *testing.T) {
	f0 := mgl32.Vec3{0.04, 0.04, 0.04}
	if got := FresnelSchlick(1, f0); got != f0 {
		t.Fatalf("normal incidence = %v, want f0", got)
	}
	if got := FresnelSchlick(0, f0); !approx(got[0], 1, 1e-6) {
		t.Fatalf("grazing incidence = %v, want 1", got)
	}
}
