package sky

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"skyshade/pkg/clouds"
	"skyshade/pkg/core"
)

func approx(a, b, tol float32) bool { return math.Abs(float64(a-b)) <= float64(tol) }

func approxVec(a, b mgl32.Vec3, tol float32) bool {
	return approx(a[0], b[0], tol) && approx(a[1], b[1], tol) && approx(a[2], b[2], tol)
}

func dayFrame() core.Frame {
	return core.Frame{Time: 12, Fog: mgl32.Vec3{0.7, 0.8, 0.95}, RenderDistance: 96}
}

func TestGradientEndpoints(t *testing.T) {
	c := core.SkyColors{
		Zenith:      mgl32.Vec3{0, 0, 1},
		Horizon:     mgl32.Vec3{0, 1, 0},
		HorizonEdge: mgl32.Vec3{1, 0, 0},
	}
	if got := Gradient(c, 1); !approxVec(got, c.Zenith, 1e-6) {
		t.Fatalf("overhead gradient = %v, want zenith", got)
	}
	if got := Gradient(c, 0); !approxVec(got, c.HorizonEdge, 1e-6) {
		t.Fatalf("gradient at the horizon = %v, want edge color", got)
	}
	if a, b := Gradient(c, 0.3), Gradient(c, -0.3); a != b {
		t.Fatalf("gradient not symmetric in elevation: %v vs %v", a, b)
	}
}

func TestPaletteRealms(t *testing.T) {
	p := DefaultPaletteParams()

	f := dayFrame()
	f.Env.Realm = core.RealmNether
	if got := p.Colors(f); got != core.UniformSky(f.Fog) {
		t.Fatalf("nether palette = %+v, want uniform fog", got)
	}

	f.Env.Realm = core.RealmEnd
	end := p.Colors(f)
	if end.Zenith != p.EndZenith || end.Horizon != p.EndHorizon {
		t.Fatalf("end palette = %+v", end)
	}

	f.Env = core.Env{Underwater: true}
	under := p.Colors(f)
	if under.Zenith != under.Horizon || under.Horizon != under.HorizonEdge {
		t.Fatalf("underwater palette should be uniform, got %+v", under)
	}
}

func TestPaletteDayBrighterThanNight(t *testing.T) {
	p := DefaultPaletteParams()
	day := p.Colors(dayFrame())
	night := dayFrame()
	night.Fog = mgl32.Vec3{0.02, 0.03, 0.06}
	dark := p.Colors(night)

	if day.Zenith.Len() <= dark.Zenith.Len() {
		t.Fatalf("day zenith %v not brighter than night %v", day.Zenith, dark.Zenith)
	}
	if day.Horizon.Len() <= dark.Horizon.Len() {
		t.Fatalf("day horizon %v not brighter than night %v", day.Horizon, dark.Horizon)
	}
}

func TestAuroraMaskedByBrightFog(t *testing.T) {
	a := NewAurora(DefaultAuroraParams())
	bright := mgl32.Vec3{0.5, 0.6, 0.7}
	for i := 0; i < 50; i++ {
		p := mgl32.Vec3{float32(i) * 11, 0, float32(i) * -7}
		if got := a.Render(p, float32(i), 0, bright); got != (mgl32.Vec4{}) {
			t.Fatalf("aurora visible under bright fog: %v", got)
		}
	}
	if m := Mask(1, mgl32.Vec3{}); !approx(m, 0.2, 1e-6) {
		t.Fatalf("full rain mask = %f, want 0.2", m)
	}
	if Mask(0.2, mgl32.Vec3{}) < Mask(0.8, mgl32.Vec3{}) {
		t.Fatal("aurora mask should fall with rain")
	}
}

func TestAuroraCoverageBounded(t *testing.T) {
	a := NewAurora(DefaultAuroraParams())
	for i := 0; i < 200; i++ {
		fi := float32(i)
		got := a.Render(mgl32.Vec3{fi * 3.1, 0, fi * 1.7}, fi*0.25, 0, mgl32.Vec3{})
		if got[3] < 0 || got[3] > 1 {
			t.Fatalf("aurora coverage %f outside [0,1]", got[3])
		}
	}
}

func TestParallaxFade(t *testing.T) {
	if got := ParallaxFade(mgl32.Vec2{0, 100}); got != 1 {
		t.Fatalf("near fade = %f, want 1", got)
	}
	if got := ParallaxFade(mgl32.Vec2{600, 0}); got != 0 {
		t.Fatalf("far fade = %f, want 0", got)
	}
}

func TestProjectHorizontalViewFinite(t *testing.T) {
	p := Project(mgl32.Vec3{1, -2, 3}, mgl32.Vec3{1, 0, 0}, 80)
	if !core.Finite(p[0], p[1]) {
		t.Fatalf("projection of a horizontal ray is not finite: %v", p)
	}
}

func newComposer(t *testing.T, model string) *Composer {
	t.Helper()
	m, err := clouds.New(model, clouds.DefaultParams())
	if err != nil {
		t.Fatalf("clouds.New(%q): %v", model, err)
	}
	return &Composer{Clouds: m, Aurora: NewAurora(DefaultAuroraParams()), CloudReflection: 0.5}
}

func TestReflectOutsideOverworldIsGradient(t *testing.T) {
	c := newComposer(t, "volumetric")
	p := DefaultPaletteParams()
	view := core.Normalize(mgl32.Vec3{0.3, -0.4, 0.8})
	wPos := mgl32.Vec3{4, -2, 9}

	for _, env := range []core.Env{
		{Realm: core.RealmNether},
		{Realm: core.RealmEnd},
		{Underwater: true},
	} {
		f := dayFrame()
		f.Env = env
		sky := p.Colors(f)
		want := Gradient(sky, mgl32.Abs(view[1]))
		if got := c.Reflect(view, wPos, f, sky); got != want {
			t.Fatalf("%+v: reflect = %v, want gradient %v", env, got, want)
		}
	}
}

func TestReflectAboveSurfaceSkipsLayers(t *testing.T) {
	c := newComposer(t, "billboard")
	f := dayFrame()
	sky := DefaultPaletteParams().Colors(f)
	view := core.Normalize(mgl32.Vec3{0.2, 0.5, 0.6})
	got := c.Reflect(view, mgl32.Vec3{0, 1, 0}, f, sky)
	if want := Gradient(sky, view[1]); got != want {
		t.Fatalf("reflect above the surface = %v, want plain gradient %v", got, want)
	}
}

func TestComposerDeterministic(t *testing.T) {
	for _, model := range clouds.Names() {
		c := newComposer(t, model)
		f := dayFrame()
		f.Rain = 0.3
		sky := DefaultPaletteParams().Colors(f)
		for i := 0; i < 40; i++ {
			fi := float32(i)
			view := core.Normalize(mgl32.Vec3{0.1 * fi, -0.5, 1})
			wPos := mgl32.Vec3{fi, -1.5, fi * 2}
			a := c.Reflect(view, wPos, f, sky)
			b := c.Reflect(view, wPos, f, sky)
			if a != b || !core.Finite(a[0], a[1], a[2]) {
				t.Fatalf("%s: reflect unstable or non-finite: %v vs %v", model, a, b)
			}
			up := core.Normalize(mgl32.Vec3{0.1 * fi, 0.6, 1})
			if s := c.Sky(up, f, sky); !core.Finite(s[0], s[1], s[2]) {
				t.Fatalf("%s: sky non-finite %v", model, s)
			}
		}
	}
}

func TestNilLayersDisable(t *testing.T) {
	c := &Composer{}
	f := dayFrame()
	sky := DefaultPaletteParams().Colors(f)
	view := core.Normalize(mgl32.Vec3{0.2, -0.3, 1})
	got := c.Reflect(view, mgl32.Vec3{0, -1, 0}, f, sky)
	if want := Gradient(sky, mgl32.Abs(view[1])); got != want {
		t.Fatalf("composer without layers = %v, want gradient %v", got, want)
	}
}
