package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"skyshade/internal/pipeline"
	"skyshade/pkg/core"
	"skyshade/pkg/lighting"
	"skyshade/pkg/noise"
	"skyshade/pkg/sky"
	"skyshade/pkg/water"
)

// Scene geometry, camera-relative. The ground is a plane below the eye with
// a rectangular pool cut into it and one spherical actor standing on it.
const (
	eyeHeight   = 1.8
	fieldOfView = 70.0 * math.Pi / 180

	poolMinX = -10.0
	poolMaxX = 6.0
	poolMinZ = 5.0
	poolMaxZ = 28.0

	torchRadius = 9.0
)

var (
	grassColor  = mgl32.Vec4{0.36, 0.55, 0.24, 1}
	dirtColor   = mgl32.Vec4{0.45, 0.33, 0.22, 1}
	waterColor  = mgl32.Vec4{0.25, 0.45, 0.75, 0.85}
	actorColor  = mgl32.Vec4{0.75, 0.28, 0.22, 1}
	actorCenter = mgl32.Vec3{6, -eyeHeight + 1, 9}
	torchPos    = mgl32.Vec2{-4, 4}
	sunDir      = core.Normalize(mgl32.Vec3{0.4, 0.8, 0.3})
)

const actorRadius = 1.0

// Camera places the eye over the scene.
type Camera struct {
	Yaw float32
	// Pitch tilts the view; positive looks down.
	Pitch float32
	// Travel moves the eye along +z so the ground scrolls under it.
	Travel float32
}

// Ray returns the unit view direction for pixel (x, y) of a w×h frame.
func (c Camera) Ray(x, y, w, h int) mgl32.Vec3 {
	aspect := float32(w) / float32(h)
	scale := float32(math.Tan(fieldOfView / 2))
	px := (2*(float32(x)+0.5)/float32(w) - 1) * aspect * scale
	py := (1 - 2*(float32(y)+0.5)/float32(h)) * scale

	d := mgl32.Vec3{px, py, 1}
	rot := mgl32.Rotate3DY(c.Yaw).Mul3(mgl32.Rotate3DX(c.Pitch))
	return core.Normalize(rot.Mul3x1(d))
}

// shader evaluates one pixel of the preview scene.
type shader struct {
	p      *pipeline.Pipeline
	frame  core.Frame
	colors core.SkyColors
	cam    Camera
}

func newShader(p *pipeline.Pipeline, f core.Frame, cam Camera) shader {
	return shader{p: p, frame: f, colors: p.Colors(f), cam: cam}
}

func (s shader) mist(dist float32) mgl32.Vec4 {
	rd := s.frame.RenderDistance
	a := core.Smoothstep(0.35*rd, rd, dist)
	return sky.Gradient(s.colors, 0.05).Vec4(a)
}

func (s shader) pixel(view mgl32.Vec3) mgl32.Vec3 {
	if t, ok := hitSphere(view, actorCenter, actorRadius); ok {
		return s.actor(view, t)
	}
	wPos, world, t, ok := s.groundHit(view)
	if !ok {
		return s.p.ShadeSky(view, s.frame, s.colors).Color
	}
	if world[0] > poolMinX && world[0] < poolMaxX && world[2] > poolMinZ && world[2] < poolMaxZ {
		return s.water(view, wPos, world, t)
	}
	return s.ground(view, wPos, world, t)
}

// groundHit intersects view with the ground plane within render distance.
func (s shader) groundHit(view mgl32.Vec3) (wPos, world mgl32.Vec3, dist float32, ok bool) {
	if view[1] >= -1e-4 {
		return wPos, world, 0, false
	}
	dist = eyeHeight / -view[1]
	if dist > s.frame.RenderDistance {
		return wPos, world, 0, false
	}
	wPos = view.Mul(dist)
	world = mgl32.Vec3{wPos[0], 0, wPos[2] + s.cam.Travel}
	return wPos, world, dist, true
}

// lightAt returns block and sky light for a ground point. Block light falls
// off linearly around the torch.
func lightAt(world mgl32.Vec3) mgl32.Vec2 {
	d := mgl32.Vec2{world[0], world[2]}.Sub(torchPos).Len()
	block := core.Clamp01(1 - d/torchRadius)
	return mgl32.Vec2{block, 1}
}

func chunk(world mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		world[0] - 16*core.Floor(world[0]/16),
		world[1],
		world[2] - 16*core.Floor(world[2]/16),
	}
}

func (s shader) ground(view, wPos, world mgl32.Vec3, dist float32) mgl32.Vec3 {
	out := s.shadeGround(view, wPos, world, dist)
	if !s.frame.Env.Underwater {
		return out.Color
	}
	// The current moves fragments in clip space, so this pixel shows the
	// ground point seen from the view shifted back by that offset.
	d := out.ClipPos.Sub(clipPos(view, dist))
	if d[0] == 0 && d[1] == 0 {
		return out.Color
	}
	swayed := core.Normalize(mgl32.Vec3{view[0] - d[0], view[1] - d[1], view[2]})
	sp, sw, sd, ok := s.groundHit(swayed)
	if !ok {
		return out.Color
	}
	return s.shadeGround(swayed, sp, sw, sd).Color
}

func clipPos(view mgl32.Vec3, dist float32) mgl32.Vec3 {
	return mgl32.Vec3{view[0], view[1], dist}
}

func (s shader) shadeGround(view, wPos, world mgl32.Vec3, dist float32) pipeline.Output {
	lm := lightAt(world)
	n := noise.HashNoise2D(mgl32.Vec2{world[0], world[2]}.Mul(0.5), mgl32.Vec2{0.2, 0.8})
	albedo := grassColor
	vertex := mgl32.Vec3{1, 1, 1}
	if n > 0.75 {
		albedo = dirtColor
		vertex = mgl32.Vec3{0.65, 0.65, 0.65}
	}
	return s.p.ShadeTerrain(pipeline.Terrain{
		Albedo: albedo,
		Light: lighting.Fragment{
			Color:    vertex,
			LightMap: lm,
			Lit:      lm,
			Shade:    1,
			Foliage:  n < 0.15,
		},
		WorldPos: wPos,
		ClipPos:  clipPos(view, dist),
		View:     view,
		Tiled:    world,
		Chunk:    chunk(world),
		CamDist:  dist,
		Mist:     s.mist(dist),
	}, s.frame, s.colors)
}

func (s shader) water(view, wPos, world mgl32.Vec3, dist float32) mgl32.Vec3 {
	lm := lightAt(world)
	c := chunk(world)
	c[1] = 0.9
	out := s.p.ShadeWater(pipeline.Water{
		Surface: water.Input{
			WorldPos:    wPos,
			Color:       waterColor,
			VertexAlpha: waterColor[3],
			View:        view,
			Chunk:       c,
			Tiled:       mgl32.Vec3{world[0], 0.9, world[2]},
			FractY:      0.9,
			Lit:         lm,
			CamDist:     dist,
		},
		Light: lighting.Fragment{Color: mgl32.Vec3{1, 1, 1}, LightMap: lm, Lit: lm, Shade: 1},
		Mist:  s.mist(dist),
	}, s.frame, s.colors)

	// Composite over the pool floor.
	floor := s.ground(view, wPos, world, dist).Mul(0.6)
	return core.Mix3(floor, out.Color, out.Alpha)
}

func (s shader) actor(view mgl32.Vec3, t float32) mgl32.Vec3 {
	pos := view.Mul(t)
	n := core.Normalize(pos.Sub(actorCenter))
	lm := lightAt(mgl32.Vec3{pos[0], 0, pos[2] + s.cam.Travel})
	out := s.p.ShadeActor(pipeline.Actor{
		Actor: lighting.Actor{
			Pos:       pos,
			Normal:    n.Vec4(0),
			World:     mgl32.Ident4(),
			TileLight: mgl32.Vec4{lm[0], 0, lm[1], 1},
		},
		Albedo:    actorColor,
		View:      view,
		SunDir:    sunDir,
		Metallic:  0.1,
		Roughness: 0.45,
		Mist:      s.mist(t),
	}, s.frame, s.colors)
	return out.Color
}

// hitSphere returns the nearest positive ray distance to the sphere.
func hitSphere(dir, center mgl32.Vec3, radius float32) (float32, bool) {
	b := dir.Dot(center)
	c := center.Dot(center) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	t := b - core.Sqrt(disc)
	if t <= 0 {
		return 0, false
	}
	return t, true
}
