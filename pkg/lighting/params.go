// Package lighting computes the diffuse light reaching terrain and actor
// fragments, the underwater adjustment and an optional Cook-Torrance term.
package lighting

import (
	"github.com/go-gl/mathgl/mgl32"

	"skyshade/pkg/core"
)

// Params holds the lighting constants. Colors are linear and may exceed 1.
type Params struct {
	SunIntensity    float32
	TorchIntensity  float32
	NightBrightness float32
	CaveBrightness  float32
	ShadowIntensity float32
	// ShadowSides darkens crevices, detected by a dark vertex color.
	ShadowSides float32

	OverworldTorch  mgl32.Vec3
	UnderwaterTorch mgl32.Vec3
	NetherTorch     mgl32.Vec3
	EndTorch        mgl32.Vec3

	NetherAmbient mgl32.Vec3
	EndAmbient    mgl32.Vec3

	MorningSun mgl32.Vec3
	NoonSun    mgl32.Vec3
	NightSun   mgl32.Vec3

	UnderwaterBrightness float32
	CausticIntensity     float32
	// UnderwaterWave is the amplitude of the underwater current sway. Zero
	// disables it.
	UnderwaterWave float32
	BlinkingTorch  bool
}

// DefaultParams returns the standard lighting setup.
func DefaultParams() Params {
	torch := mgl32.Vec3{1.0, 0.52, 0.18}
	return Params{
		SunIntensity:    2.95,
		TorchIntensity:  1.0,
		NightBrightness: 0.0,
		CaveBrightness:  0.1,
		ShadowIntensity: 0.7,
		ShadowSides:     0.8,

		OverworldTorch:  torch,
		UnderwaterTorch: torch,
		NetherTorch:     torch,
		EndTorch:        torch,

		NetherAmbient: mgl32.Vec3{3.0, 2.6, 2.3},
		EndAmbient:    mgl32.Vec3{1.98, 1.25, 2.3},

		MorningSun: mgl32.Vec3{1.0, 0.45, 0.14},
		NoonSun:    mgl32.Vec3{1.0, 0.75, 0.57},
		NightSun:   mgl32.Vec3{0.5, 0.64, 1.0},

		UnderwaterBrightness: 0.8,
		CausticIntensity:     1.9,
		UnderwaterWave:       0.1,
	}
}

// TorchColor picks the torch color for env. Underwater wins over the realm.
func (p Params) TorchColor(env core.Env) mgl32.Vec3 {
	switch {
	case env.Underwater:
		return p.UnderwaterTorch
	case env.End():
		return p.EndTorch
	case env.Nether():
		return p.NetherTorch
	}
	return p.OverworldTorch
}
