package noise

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Overshoot bounds how far the simplex generators may exceed [-1, 1].
const Overshoot = 0.25

func permute(x float64) float64 {
	return mod289((x*34 + 1) * x)
}

func taylorInvSqrt(r float64) float64 {
	return 1.79284291400159 - 0.85373472095314*r
}

// Simplex2D is skewed-triangle gradient noise, approximately in [-1, 1].
func Simplex2D(v mgl32.Vec2) float32 {
	const (
		cx = 0.211324865405187  // (3-sqrt(3))/6
		cy = 0.366025403784439  // (sqrt(3)-1)/2
		cz = -0.577350269189626 // -1 + 2*cx
		cw = 0.024390243902439  // 1/41
	)
	vx, vy := float64(v[0]), float64(v[1])

	s := (vx + vy) * cy
	ix := math.Floor(vx + s)
	iy := math.Floor(vy + s)
	t := (ix + iy) * cx
	x0 := [2]float64{vx - ix + t, vy - iy + t}

	var i1x, i1y float64
	if x0[0] > x0[1] {
		i1x = 1
	} else {
		i1y = 1
	}
	x1 := [2]float64{x0[0] + cx - i1x, x0[1] + cx - i1y}
	x2 := [2]float64{x0[0] + cz, x0[1] + cz}

	ix = mod289(ix)
	iy = mod289(iy)
	p := [3]float64{
		permute(permute(iy) + ix),
		permute(permute(iy+i1y) + ix + i1x),
		permute(permute(iy+1) + ix + 1),
	}

	offsets := [3][2]float64{x0, x1, x2}
	var sum float64
	for k := 0; k < 3; k++ {
		off := offsets[k]
		m := math.Max(0.5-(off[0]*off[0]+off[1]*off[1]), 0)
		m *= m
		m *= m

		x := 2*fract(p[k]*cw) - 1
		h := math.Abs(x) - 0.5
		a0 := x - math.Floor(x+0.5)
		m *= taylorInvSqrt(a0*a0 + h*h)

		sum += m * (a0*off[0] + h*off[1])
	}
	return float32(130 * sum)
}

// Simplex3D is tetrahedral gradient noise with four contributing corners,
// approximately in [-1, 1]. Gradients are drawn from a 7x7 grid folded onto an
// octahedron.
func Simplex3D(v mgl32.Vec3) float32 {
	const (
		c1 = 1.0 / 6.0
		c2 = 1.0 / 3.0
		n  = 1.0 / 7
	)
	vx, vy, vz := float64(v[0]), float64(v[1]), float64(v[2])

	s := (vx + vy + vz) * c2
	i := [3]float64{math.Floor(vx + s), math.Floor(vy + s), math.Floor(vz + s)}
	t := (i[0] + i[1] + i[2]) * c1
	x0 := [3]float64{vx - i[0] + t, vy - i[1] + t, vz - i[2] + t}

	g := [3]float64{step(x0[1], x0[0]), step(x0[2], x0[1]), step(x0[0], x0[2])}
	l := [3]float64{1 - g[0], 1 - g[1], 1 - g[2]}
	i1 := [3]float64{math.Min(g[0], l[2]), math.Min(g[1], l[0]), math.Min(g[2], l[1])}
	i2 := [3]float64{math.Max(g[0], l[2]), math.Max(g[1], l[0]), math.Max(g[2], l[1])}

	var corners [4][3]float64
	corners[0] = x0
	for a := 0; a < 3; a++ {
		corners[1][a] = x0[a] - i1[a] + c1
		corners[2][a] = x0[a] - i2[a] + c2
		corners[3][a] = x0[a] - 0.5
	}

	for a := range i {
		i[a] = mod289(i[a])
	}
	offX := [4]float64{0, i1[0], i2[0], 1}
	offY := [4]float64{0, i1[1], i2[1], 1}
	offZ := [4]float64{0, i1[2], i2[2], 1}

	nsx := n * 2
	nsy := n*0.5 - 1

	var sum float64
	for k := 0; k < 4; k++ {
		p := permute(permute(permute(i[2]+offZ[k])+i[1]+offY[k]) + i[0] + offX[k])

		// Exact divisions keep multiples of 7 inside the 7x7 gradient grid.
		j := p - 49*math.Floor(p/49)
		xg := math.Floor(j / 7)
		yg := j - 7*xg
		x := xg*nsx + nsy
		y := yg*nsx + nsy
		h := 1 - math.Abs(x) - math.Abs(y)

		if h <= 0 {
			x -= math.Floor(x)*2 + 1
			y -= math.Floor(y)*2 + 1
		}
		norm := taylorInvSqrt(x*x + y*y + h*h)
		gx, gy, gz := x*norm, y*norm, h*norm

		c := corners[k]
		m := math.Max(0.6-(c[0]*c[0]+c[1]*c[1]+c[2]*c[2]), 0)
		m *= m
		sum += m * m * (gx*c[0] + gy*c[1] + gz*c[2])
	}
	return float32(42 * sum)
}

func step(edge, x float64) float64 {
	if x < edge {
		return 0
	}
	return 1
}
