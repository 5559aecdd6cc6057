package core

import "github.com/go-gl/mathgl/mgl32"

// Realm enumerates the mutually exclusive world dimensions.
type Realm uint8

const (
	RealmOverworld Realm = iota
	RealmNether
	RealmEnd
)

// String returns the lowercase realm name.
func (r Realm) String() string {
	switch r {
	case RealmNether:
		return "nether"
	case RealmEnd:
		return "end"
	default:
		return "overworld"
	}
}

// Env is the environment a fragment is shaded in. Underwater composes with
// any realm.
type Env struct {
	Realm      Realm
	Underwater bool
}

// Overworld reports whether the fragment belongs to the overworld.
func (e Env) Overworld() bool { return e.Realm == RealmOverworld }

// Nether reports whether the fragment belongs to the nether.
func (e Env) Nether() bool { return e.Realm == RealmNether }

// End reports whether the fragment belongs to the end.
func (e Env) End() bool { return e.Realm == RealmEnd }

// Frame carries the inputs that are uniform across every fragment of a frame.
// It is passed by value and never mutated by the kernels.
type Frame struct {
	Time float32
	// Rain is the rain intensity in [0, 1].
	Rain float32
	// Fog is the host fog color. Outside the nether it doubles as the
	// day/night heuristic.
	Fog            mgl32.Vec3
	RenderDistance float32
	Env            Env
}

// SkyColors is the three-stop palette used by the sky gradient, the lighting
// composer and every reflection.
type SkyColors struct {
	Zenith      mgl32.Vec3
	Horizon     mgl32.Vec3
	HorizonEdge mgl32.Vec3
}

// UniformSky returns a palette with every stop set to c.
func UniformSky(c mgl32.Vec3) SkyColors {
	return SkyColors{Zenith: c, Horizon: c, HorizonEdge: c}
}
