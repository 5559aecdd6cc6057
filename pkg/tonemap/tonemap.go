// Package tonemap maps the unbounded light accumulator to display color and
// back.
package tonemap

import (
	"fmt"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"

	"skyshade/pkg/core"
)

// Curve identifies a tone curve. The numbering is the one hosts configure.
type Curve int

const (
	Exponential Curve = iota + 1
	SimpleReinhard
	ExtendedReinhard
	ACES
	Filmic
	Hejl2015
	Hable
	Uncharted2
	ReinhardModified
	Unreal
	CustomPBR
)

var curveNames = map[Curve]string{
	Exponential:      "exponential",
	SimpleReinhard:   "reinhard",
	ExtendedReinhard: "extended-reinhard",
	ACES:             "aces",
	Filmic:           "filmic",
	Hejl2015:         "hejl2015",
	Hable:            "hable",
	Uncharted2:       "uncharted2",
	ReinhardModified: "reinhard-modified",
	Unreal:           "unreal",
	CustomPBR:        "custom-pbr",
}

// String returns the curve name, or its number when unknown.
func (c Curve) String() string {
	if name, ok := curveNames[c]; ok {
		return name
	}
	return strconv.Itoa(int(c))
}

// Curves lists every known curve in id order.
func Curves() []Curve {
	out := make([]Curve, 0, len(curveNames))
	for c := Exponential; c <= CustomPBR; c++ {
		out = append(out, c)
	}
	return out
}

// ParseCurve accepts a curve name or number. Numbers outside the known range
// are accepted and map through the identity curve.
func ParseCurve(s string) (Curve, error) {
	for c, name := range curveNames {
		if name == s {
			return c, nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unknown tone curve %q", s)
	}
	return Curve(n), nil
}

// Params is the grading configuration.
type Params struct {
	Curve      Curve
	Exposure   float32
	Contrast   float32
	Saturation float32
	Tint       mgl32.Vec3
}

// DefaultParams returns the standard grading.
func DefaultParams() Params {
	return Params{
		Curve:      ExtendedReinhard,
		Exposure:   1.3,
		Contrast:   0.74,
		Saturation: 1.4,
		Tint:       mgl32.Vec3{1, 1, 1},
	}
}

// inverseWhite is the white scale of the approximate inverse.
const inverseWhite = 0.7966

var luma = mgl32.Vec3{0.21, 0.71, 0.08}

// Mapper applies a fixed grading. It is immutable.
type Mapper struct {
	p     Params
	curve func(mgl32.Vec3) mgl32.Vec3
}

// New resolves the curve once.
func New(p Params) *Mapper {
	m := &Mapper{p: p}
	m.curve = m.resolve(p.Curve)
	return m
}

// Params returns the grading the mapper was built with.
func (m *Mapper) Params() Params { return m.p }

func (m *Mapper) resolve(c Curve) func(mgl32.Vec3) mgl32.Vec3 {
	switch c {
	case Exponential:
		return each(func(x float32) float32 { return 1 - core.Exp(-0.8*x) })
	case SimpleReinhard:
		return each(func(x float32) float32 { return x / (1 + x) })
	case ExtendedReinhard:
		const whiteScale = 0.063
		return each(func(x float32) float32 { return x * (1 + x*whiteScale) / (1 + x) })
	case ACES:
		return aces
	case Filmic:
		return each(func(x float32) float32 { return x * (2.51*x + 0.03) / (x*(2.43*x+0.59) + 0.14) })
	case Hejl2015:
		return each(func(x float32) float32 {
			d := x * (0.983729*x + 0.4329510 + 0.238081)
			return core.Max(0, x*(x+0.0245786-0.000090537)/core.Max(d, core.Epsilon))
		})
	case Hable:
		return each(func(x float32) float32 { return x * (x*0.6 + 0.5) / (x*(x*0.3+0.6) + 0.1) })
	case Uncharted2:
		return each(func(x float32) float32 { return x * (x*0.426 + 0.55) / (x*(x*0.3+0.45) + 0.05) })
	case ReinhardModified:
		return each(func(x float32) float32 { return x * (1 + x*0.2) / (1 + x) })
	case Unreal:
		return each(func(x float32) float32 { return x / (x + 0.155) * 1.019 })
	case CustomPBR:
		return m.customPBR
	}
	return func(c mgl32.Vec3) mgl32.Vec3 { return c }
}

func each(f func(float32) float32) func(mgl32.Vec3) mgl32.Vec3 {
	return func(c mgl32.Vec3) mgl32.Vec3 { return mgl32.Vec3{f(c[0]), f(c[1]), f(c[2])} }
}

var (
	acesIn = mgl32.Mat3{
		0.59719, 0.07600, 0.02840,
		0.35458, 0.90834, 0.13383,
		0.04823, 0.01566, 0.83777,
	}
	acesOut = mgl32.Mat3{
		1.60475, -0.10208, -0.00327,
		-0.53108, 1.10813, -0.07276,
		-0.07367, -0.00605, 1.07602,
	}
)

func aces(c mgl32.Vec3) mgl32.Vec3 {
	v := acesIn.Mul3x1(c)
	var r mgl32.Vec3
	for i, x := range v {
		a := x*(x+0.0245786) - 0.000090537
		b := x*(0.983729*x+0.4329510) + 0.238081
		r[i] = a / b
	}
	r = acesOut.Mul3x1(r)
	for i := range r {
		r[i] = core.Pow(core.Clamp01(r[i]), 1/2.2)
	}
	return r
}

func (m *Mapper) customPBR(c mgl32.Vec3) mgl32.Vec3 {
	c = c.Mul(m.p.Exposure)
	c = each(func(x float32) float32 { return x / (x + 1) })(c)
	c = pow(c, m.p.Contrast)
	c = pow(c, 1/2.2)
	c = m.saturate(c)
	c = core.Mul3(c, m.p.Tint)
	c = clamp(c)
	c = c.Mul(1 / core.SignedFloor(m.p.Exposure))
	c = pow(c, 2.2)
	c = each(func(x float32) float32 { return x * (x + 1) / core.Max(x, core.Epsilon) })(c)
	return clamp(c)
}

func pow(c mgl32.Vec3, e float32) mgl32.Vec3 {
	return each(func(x float32) float32 { return core.Pow(core.Max(x, 0), e) })(c)
}

func clamp(c mgl32.Vec3) mgl32.Vec3 { return each(core.Clamp01)(c) }

func (m *Mapper) saturate(c mgl32.Vec3) mgl32.Vec3 {
	return core.Mix3(core.Splat(c.Dot(luma)), c, m.p.Saturation)
}

// Map grades a linear color for display.
func (m *Mapper) Map(c mgl32.Vec3) mgl32.Vec3 {
	c = c.Mul(m.p.Exposure)
	c = m.curve(c)
	c = pow(c, m.p.Contrast)
	c = m.saturate(c)
	return core.Mul3(c, m.p.Tint)
}

// Inverse approximately undoes Map for the extended Reinhard curve. It is
// used to recover the nether fog color before grading.
func (m *Mapper) Inverse(c mgl32.Vec3) mgl32.Vec3 {
	c = mgl32.Vec3{
		c[0] / core.SignedFloor(m.p.Tint[0]),
		c[1] / core.SignedFloor(m.p.Tint[1]),
		c[2] / core.SignedFloor(m.p.Tint[2]),
	}
	c = pow(c, 1/m.p.Contrast)
	c = each(func(x float32) float32 {
		return x * (inverseWhite + x) / (inverseWhite + x*(1-inverseWhite))
	})(c)
	return c.Mul(1 / core.SignedFloor(m.p.Exposure))
}
