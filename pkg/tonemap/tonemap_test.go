package tonemap

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"skyshade/pkg/core"
)

func approx(a, b, tol float32) bool { return math.Abs(float64(a-b)) <= float64(tol) }

func TestBlackStaysBlack(t *testing.T) {
	curves := append(Curves(), 0, 42, -3)
	for _, c := range curves {
		p := DefaultParams()
		p.Curve = c
		got := New(p).Map(mgl32.Vec3{})
		for i := range got {
			if !approx(got[i], 0, 1e-6) {
				t.Fatalf("curve %s maps black to %v", c, got)
			}
		}
	}
}

func TestUnknownCurveIsIdentity(t *testing.T) {
	m := New(Params{Curve: 99, Exposure: 1, Contrast: 1, Saturation: 1, Tint: mgl32.Vec3{1, 1, 1}})
	in := mgl32.Vec3{0.25, 1.5, 7}
	got := m.Map(in)
	for i := range in {
		if !approx(got[i], in[i], 1e-5) {
			t.Fatalf("unknown curve changed %v to %v", in, got)
		}
	}
}

func TestCurvesFinite(t *testing.T) {
	for _, c := range Curves() {
		p := DefaultParams()
		p.Curve = c
		m := New(p)
		for _, x := range []float32{1e-7, 0.01, 0.5, 1, 4, 60, 1e4} {
			got := m.Map(mgl32.Vec3{x, x * 0.5, x * 2})
			if !core.Finite(got[0], got[1], got[2]) {
				t.Fatalf("curve %s not finite at %f: %v", c, x, got)
			}
		}
	}
}

func TestReinhardFamilyMonotonic(t *testing.T) {
	for _, c := range []Curve{Exponential, SimpleReinhard, ExtendedReinhard, ReinhardModified, Unreal} {
		p := DefaultParams()
		p.Curve = c
		m := New(p)
		prev := float32(-1)
		for i := 0; i <= 100; i++ {
			x := float32(i) * 0.1
			got := m.Map(core.Splat(x))[1]
			if got < prev {
				t.Fatalf("curve %s decreased at %f: %f < %f", c, x, got, prev)
			}
			prev = got
		}
	}
}

func TestInverseRecoversDarkGrey(t *testing.T) {
	m := New(DefaultParams())
	for i := 0; i <= 20; i++ {
		x := float32(i) * 0.01
		back := m.Inverse(m.Map(core.Splat(x)))
		if !approx(back[0], x, 0.02) {
			t.Fatalf("inverse of %f came back as %f", x, back[0])
		}
	}
}

func TestParseCurve(t *testing.T) {
	for _, c := range Curves() {
		got, err := ParseCurve(c.String())
		if err != nil || got != c {
			t.Fatalf("ParseCurve(%q) = %v, %v", c.String(), got, err)
		}
	}
	if got, err := ParseCurve("4"); err != nil || got != ACES {
		t.Fatalf("ParseCurve(\"4\") = %v, %v", got, err)
	}
	if got, err := ParseCurve("12"); err != nil || got != 12 {
		t.Fatalf("ParseCurve(\"12\") = %v, %v", got, err)
	}
	if _, err := ParseCurve("sepia"); err == nil {
		t.Fatal("expected an error for an unknown curve name")
	}
}
