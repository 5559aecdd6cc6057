package lighting

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"skyshade/pkg/core"
)

// NormalWeighting turns an actor normal into a directional light intensity
// before the tile light is applied.
type NormalWeighting interface {
	Name() string
	Intensity(normal mgl32.Vec4, world mgl32.Mat4, tile mgl32.Vec4) float32
}

// Fancy transforms the normal to world space and shapes it with the tile
// light alpha.
type Fancy struct{}

func (Fancy) Name() string { return "fancy" }

func (Fancy) Intensity(normal mgl32.Vec4, world mgl32.Mat4, tile mgl32.Vec4) float32 {
	w := world.Mul4x1(normal)
	n := w.Mul(1 / core.Max(w.Len(), core.Epsilon)).Vec3()
	n[1] *= tile[3]
	n[0] *= n[0]
	n[2] *= n[2]

	i := 0.75 + 0.25*n[1] - 0.1*n[0] + 0.1*n[2]
	return i * i
}

// Cheap ignores the world transform.
type Cheap struct{}

func (Cheap) Name() string { return "cheap" }

func (Cheap) Intensity(normal mgl32.Vec4, _ mgl32.Mat4, _ mgl32.Vec4) float32 {
	return (0.7 + 0.3*mgl32.Abs(normal[1])) * (0.9 + 0.1*mgl32.Abs(normal[0]))
}

var weightings = map[string]NormalWeighting{
	"fancy": Fancy{},
	"cheap": Cheap{},
}

// Weighting looks up a normal weighting by name.
func Weighting(name string) (NormalWeighting, error) {
	w, ok := weightings[name]
	if !ok {
		return nil, fmt.Errorf("unknown normal weighting %q (have %v)", name, Weightings())
	}
	return w, nil
}

// Weightings lists the available weighting names.
func Weightings() []string {
	names := make([]string, 0, len(weightings))
	for name := range weightings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Actor carries the attributes of an entity fragment.
type Actor struct {
	Pos    mgl32.Vec3
	Normal mgl32.Vec4
	World  mgl32.Mat4
	// TileLight holds block light in r, sky light in b and the normal
	// shaping factor in a.
	TileLight mgl32.Vec4
	Overlay   mgl32.Vec4
}

// Actor returns the light reaching an entity fragment.
func (c *Composer) Actor(a Actor, f core.Frame, horizon mgl32.Vec3) mgl32.Vec3 {
	tile := a.TileLight
	i := c.weighting.Intensity(a.Normal, a.World, tile)
	i *= tile[2] * tile[2] * c.p.SunIntensity * 1.2
	i += 0.35 * a.Overlay[3]

	factor := tile[2] - tile[0]
	light := mgl32.Vec3{1 - 2.8*factor, 1 - 2.7*factor, 1}.Mul(i)
	light = light.Mul(1 - 0.3*core.Step(0, a.Pos[1]))
	light = light.Add(horizon.Mul(0.55 * tile[0]))

	switch {
	case f.Env.Nether():
		light = core.Mul3(light, c.p.NetherAmbient.Mul(0.5*tile[0]))
	case f.Env.End():
		light = core.Mul3(light, c.p.EndAmbient)
	case f.Env.Underwater:
		light = light.Add(core.Splat(c.p.UnderwaterBrightness))
		light = core.Mul3(light, core.Mix3(core.Normalize(horizon), core.Splat(1), 0.5*tile[0]))
		ripple := 0.5 + 0.5*core.Sin(f.Time+a.Pos.Dot(core.Splat(1.5)))
		light = light.Add(core.Splat(c.p.CausticIntensity * core.Max(tile[0]-0.46, 0) * ripple))
	}
	return light
}
