package sky

import (
	"github.com/go-gl/mathgl/mgl32"

	"skyshade/pkg/clouds"
	"skyshade/pkg/core"
)

// Reflection projection distances and fade rate.
const (
	reflectParallax = 80.0
	domeHeight      = 64.0
	fadeRate        = 0.004
)

// Composer assembles sky gradient, aurora and clouds. Clouds and Aurora may
// be nil to disable them.
type Composer struct {
	Clouds clouds.Model
	Aurora *Aurora
	// CloudReflection scales cloud color seen in reflections.
	CloudReflection float32
}

// ParallaxFade returns how strongly a reflected or projected layer at pos
// contributes; it falls to zero 500 units out.
func ParallaxFade(pos mgl32.Vec2) float32 {
	return core.Clamp01(2 - fadeRate*pos.Len())
}

// Project moves a ground position along the view ray onto a layer dist units
// away, the cheap parallax used for every reflected layer.
func Project(wPos, view mgl32.Vec3, dist float32) mgl32.Vec2 {
	y := core.SignedFloor(view[1])
	return mgl32.Vec2{wPos[0] - dist*view[0]/y, wPos[2] - dist*view[2]/y}
}

// Clouds use the zenith as their sky tint and the horizon edge as their fog tint.
func (c *Composer) cloudColors(sky core.SkyColors) clouds.Colors {
	return clouds.Colors{Zenith: sky.Zenith, Horizon: sky.Horizon, Fog: sky.HorizonEdge}
}

// Reflect returns the sky seen mirrored in a horizontal surface at wPos
// (relative to the camera) along view.
func (c *Composer) Reflect(view, wPos mgl32.Vec3, f core.Frame, sky core.SkyColors) mgl32.Vec3 {
	col := Gradient(sky, mgl32.Abs(view[1]))
	if !f.Env.Overworld() || f.Env.Underwater || wPos[1] >= 0 {
		return col
	}

	refl := Project(wPos, view, reflectParallax)
	fade := ParallaxFade(refl)
	layer := mgl32.Vec3{refl[0], refl[1], refl[1]}

	if c.Aurora != nil {
		a := c.Aurora.Render(layer, f.Time, f.Rain, f.Fog)
		col = col.Add(a.Vec3().Mul(4 * a[3] * fade))
	}
	if c.Clouds != nil {
		s := c.Clouds.Render(clouds.Ray{Dir: view, Pos: layer, Time: f.Time, Rain: f.Rain}, c.cloudColors(sky))
		col = core.Mix3(col, s.Color.Mul(c.CloudReflection), s.Alpha*fade)
	}
	return col
}

// Sky returns the sky color seen directly along view.
func (c *Composer) Sky(view mgl32.Vec3, f core.Frame, sky core.SkyColors) mgl32.Vec3 {
	col := Gradient(sky, view[1])
	if !f.Env.Overworld() || f.Env.Underwater || view[1] <= 0 {
		return col
	}

	dome := view.Mul(domeHeight / core.Max(view[1], 0.02))
	fade := core.Smoothstep(0, 0.2, view[1])

	if c.Aurora != nil {
		a := c.Aurora.Render(dome, f.Time, f.Rain, f.Fog)
		col = col.Add(a.Vec3().Mul(a[3] * fade))
	}
	if c.Clouds != nil {
		s := c.Clouds.Render(clouds.Ray{Dir: view, Pos: dome, Time: f.Time, Rain: f.Rain}, c.cloudColors(sky))
		col = core.Mix3(col, s.Color, s.Alpha*fade)
	}
	return col
}
