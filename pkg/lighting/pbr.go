package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"skyshade/pkg/core"
)

const specularFloor = 0.001

// DistributionGGX is the Trowbridge-Reitz normal distribution.
func DistributionGGX(n, h mgl32.Vec3, roughness float32) float32 {
	a := roughness * roughness
	a2 := a * a
	nh := core.Max(n.Dot(h), 0)
	d := nh*nh*(a2-1) + 1
	return a2 / (math.Pi * d * d)
}

// GeometrySchlickGGX is the single-direction Smith term with k = (r+1)²/8.
func GeometrySchlickGGX(nv, roughness float32) float32 {
	r := roughness + 1
	k := r * r / 8
	return nv / (nv*(1-k) + k)
}

// GeometrySmith combines view and light masking.
func GeometrySmith(n, v, l mgl32.Vec3, roughness float32) float32 {
	nv := core.Max(n.Dot(v), 0)
	nl := core.Max(n.Dot(l), 0)
	return GeometrySchlickGGX(nl, roughness) * GeometrySchlickGGX(nv, roughness)
}

// FresnelSchlick returns the reflectance at cosTheta for base reflectance f0.
func FresnelSchlick(cosTheta float32, f0 mgl32.Vec3) mgl32.Vec3 {
	k := core.Pow(1-cosTheta, 5)
	return f0.Add(core.Splat(1).Sub(f0).Mul(k))
}

// PBR evaluates the Cook-Torrance BRDF for one light. n, v and l must be unit
// vectors.
func PBR(n, v, l, lightColor, albedo mgl32.Vec3, metallic, roughness float32) mgl32.Vec3 {
	h := core.Normalize(v.Add(l))
	ndf := DistributionGGX(n, h, roughness)
	g := GeometrySmith(n, v, l, roughness)
	f := FresnelSchlick(core.Max(h.Dot(v), 0), core.Mix3(core.Splat(0.04), albedo, metallic))

	kd := core.Splat(1).Sub(f).Mul(1 - metallic)

	nl := core.Max(n.Dot(l), 0)
	denom := 4 * core.Max(n.Dot(v), 0) * nl
	spec := f.Mul(ndf * g / core.Max(denom, specularFloor))

	diffuse := core.Mul3(kd, albedo).Mul(1 / math.Pi)
	return core.Mul3(diffuse.Add(spec), lightColor).Mul(nl)
}
