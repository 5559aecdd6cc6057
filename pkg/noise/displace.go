package noise

import (
	"github.com/go-gl/mathgl/mgl32"

	"skyshade/pkg/core"
)

// Displace3D is the ripple map shared by the water surface and underwater
// caustics. Two travelling sines interfere to pick a blend between two
// FastRand samples, so the result stays in [0, 1).
func Displace3D(p mgl32.Vec3, t float32) float32 {
	wave := 0.5 +
		0.25*core.Sin(t*1.7+(p[0]+p[1])*core.PiHalf) +
		0.25*core.Sin(t*1.1+(p[2]-p[0])*core.PiHalf)

	xz := mgl32.Vec2{p[0], p[2]}
	return core.Mix(FastRand(xz), FastRand(xz.Add(mgl32.Vec2{1, 1})), wave)
}
