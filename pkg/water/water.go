// Package water shades the water surface: reflection, fresnel, tint, alpha
// and the near-camera wave displacement.
package water

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"skyshade/pkg/core"
	"skyshade/pkg/noise"
)

// WaveMode selects how the surface is displaced near the camera.
type WaveMode uint8

const (
	WaveOff WaveMode = iota
	// WaveBump lowers the surface by the reflection bump.
	WaveBump
	// WaveNoise lowers the surface by a 3D simplex field.
	WaveNoise
)

// String returns the flag name of the mode.
func (m WaveMode) String() string {
	switch m {
	case WaveBump:
		return "bump"
	case WaveNoise:
		return "noise"
	default:
		return "off"
	}
}

// ParseWaveMode maps a flag name to a wave mode.
func ParseWaveMode(s string) (WaveMode, error) {
	switch s {
	case "off", "":
		return WaveOff, nil
	case "bump":
		return WaveBump, nil
	case "noise":
		return WaveNoise, nil
	}
	return WaveOff, fmt.Errorf("unknown wave mode %q", s)
}

// WaveDistance is the camera distance beyond which the surface stays flat.
const WaveDistance = 14.0

// Params configures the surface.
type Params struct {
	Transparency float32
	Bump         float32
	Tint         mgl32.Vec3
	// CloudReflection scales billboard clouds seen in the water.
	CloudReflection    float32
	MoonlightColor     mgl32.Vec3
	MoonlightIntensity float32
	TorchIntensity     float32
	Wave               WaveMode
	// FogFade keeps the base color alpha instead of the vertex alpha so the
	// host fog can fade the surface out.
	FogFade bool
}

// DefaultParams returns the standard water settings.
func DefaultParams() Params {
	return Params{
		Transparency:       0.47,
		Bump:               0.07,
		Tint:               mgl32.Vec3{0.52, 0.9, 0.45},
		CloudReflection:    1.436,
		MoonlightColor:     mgl32.Vec3{0.5, 0.6, 1.0},
		MoonlightIntensity: 0.2,
		TorchIntensity:     1.0,
		Wave:               WaveBump,
	}
}

// Reflector supplies the sky seen mirrored at a surface point.
type Reflector interface {
	Reflect(view, wPos mgl32.Vec3, f core.Frame, sky core.SkyColors) mgl32.Vec3
}

// Fresnel is Schlick's approximation with base reflectance r0.
func Fresnel(cosR, r0 float32) float32 {
	a := 1 - cosR
	a2 := a * a
	return r0 + (1-r0)*a2*a2*a
}

// Input carries one water fragment.
type Input struct {
	// WorldPos is relative to the camera.
	WorldPos mgl32.Vec3
	// Color is the sampled base color.
	Color mgl32.Vec4
	// VertexAlpha is the alpha of the vertex color.
	VertexAlpha float32
	View        mgl32.Vec3
	Chunk       mgl32.Vec3
	Tiled       mgl32.Vec3
	// FractY is the fractional chunk height; zero on side planes.
	FractY  float32
	Lit     mgl32.Vec2
	CamDist float32
	Torch   mgl32.Vec3
}

// Result is the shaded surface.
type Result struct {
	Reflection mgl32.Vec3
	Fresnel    float32
	// Color is the tinted base color with the final alpha.
	Color    mgl32.Vec4
	WorldPos mgl32.Vec3
}

// Surface shades water fragments. It is immutable.
type Surface struct {
	p   Params
	sky Reflector
}

// NewSurface returns a surface reflecting sky.
func NewSurface(p Params, sky Reflector) *Surface {
	return &Surface{p: p, sky: sky}
}

var moonDir = core.Normalize(mgl32.Vec3{0.5, 0.5, 0.5})

// Shade computes the reflection, fresnel, tinted color and displaced position
// of a water fragment.
func (s *Surface) Shade(in Input, f core.Frame, sky core.SkyColors) Result {
	var cosR float32
	var refl mgl32.Vec3
	bump := s.p.Bump
	view := in.View
	phase := in.Chunk.Dot(core.Splat(core.PiHalf))

	if in.FractY > 0 {
		bump *= noise.Displace3D(in.Tiled, f.Time) + 0.12*core.Sin(2*f.Time+phase)

		cosR = mgl32.Abs(view[1])
		cosR = core.Mix(cosR, 1-cosR*cosR, bump)
		view[1] = cosR

		refl = s.sky.Reflect(view, in.WorldPos, f, sky)
		refl = refl.Add(s.p.MoonlightColor.Mul(core.Clamp01(view.Dot(moonDir)) * s.p.MoonlightIntensity))

		lx := in.Lit[0]
		refl = refl.Add(in.Torch.Mul(s.p.TorchIntensity * (lx*lx + lx) * bump * 10))

		// Always true: every top plane takes the flat falloff.
		if in.FractY > 0.8 || in.FractY < 0.9 {
			refl = refl.Mul(1 - mgl32.Clamp(in.WorldPos[1], 0, 0.66))
		} else {
			k := float32(0.4)
			if in.FractY > 0.9 {
				k = 0.2
			}
			refl = refl.Mul(0.1*core.Sin(2*f.Time+in.Chunk[1]*12.566) + k)
		}
	} else {
		bump *= 0.5 + 0.5*core.Sin(1.5*f.Time+phase)

		cosR = core.Max(mgl32.Vec2{view[0], view[2]}.Len(), core.Step(in.WorldPos[1], 0.5))
		cosR += (1 - cosR*cosR) * bump

		refl = sky.Zenith
	}

	if !f.Env.End() {
		refl = refl.Mul(0.05 + 1.14*in.Lit[1])
	}

	fresnel := Fresnel(cosR, 0.03)
	opacity := 1 - cosR

	rgb := core.Mul3(in.Color.Vec3(), s.p.Tint.Mul(0.22*(1-0.8*fresnel)))
	alpha := in.VertexAlpha * s.p.Transparency
	if s.p.FogFade {
		alpha = in.Color[3] * s.p.Transparency
	}
	alpha += (1 - alpha) * opacity * opacity

	pos := in.WorldPos
	if in.CamDist < WaveDistance {
		switch s.p.Wave {
		case WaveBump:
			pos[1] -= bump
		case WaveNoise:
			q := pos.Mul(3).Sub(core.Splat(0.2 * f.Time))
			pos[1] -= 0.2 * noise.Simplex3D(q)
		}
	}

	return Result{
		Reflection: refl,
		Fresnel:    fresnel,
		Color:      rgb.Vec4(alpha),
		WorldPos:   pos,
	}
}
