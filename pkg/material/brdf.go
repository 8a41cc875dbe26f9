package material

import (
	"math"

	"github.com/doubleailes/crust-render/pkg/core"
)

// Shared microfacet terms used by the Cook-Torrance and Disney materials.
// Direction conventions: v points from the surface toward the viewer,
// l toward the light, h is the half vector, all unit length.

// FresnelSchlick computes Schlick's approximation of the Fresnel term
func FresnelSchlick(cosTheta float64, f0 core.Vec3) core.Vec3 {
	white := core.NewVec3(1, 1, 1)
	return f0.Add(white.Subtract(f0).Multiply(schlickWeight(cosTheta)))
}

// fresnelSchlickScalar is the scalar form, used by the clearcoat lobe
func fresnelSchlickScalar(cosTheta, f0 float64) float64 {
	return f0 + (1.0-f0)*schlickWeight(cosTheta)
}

// schlickWeight is the (1-cosθ)⁵ falloff shared by the Fresnel approximations
func schlickWeight(cosTheta float64) float64 {
	c := 1.0 - cosTheta
	if c < 0 {
		c = 0
	}
	return c * c * c * c * c
}

// ggxD evaluates the GGX normal distribution for alpha = roughness²
func ggxD(nDotH, alpha float64) float64 {
	a2 := alpha * alpha
	denom := nDotH*nDotH*(a2-1.0) + 1.0
	return a2 / math.Max(math.Pi*denom*denom, 1e-8)
}

// geometrySchlickGGX is the Smith shadowing-masking term for one direction
func geometrySchlickGGX(nDot, roughness float64) float64 {
	k := (roughness + 1.0) * (roughness + 1.0) / 8.0
	return nDot / (nDot*(1.0-k) + k)
}

// gtr1 is the clearcoat normal distribution (Burley's GTR with γ=1)
func gtr1(nDotH, alpha float64) float64 {
	a2 := alpha * alpha
	denom := math.Pi * math.Log(a2) * (1.0 + (a2-1.0)*nDotH*nDotH)
	if math.Abs(denom) < 1e-8 {
		return 1.0 / math.Pi
	}
	return (a2 - 1.0) / denom
}

// sampleGGXHalfVector samples a half vector from the GGX distribution
// around the normal, for alpha = roughness²
func sampleGGXHalfVector(normal core.Vec3, alpha float64, sample core.Vec2) core.Vec3 {
	a2 := alpha * alpha

	cosTheta := math.Sqrt((1.0 - sample.X) / (1.0 + (a2-1.0)*sample.X))
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	phi := 2.0 * math.Pi * sample.Y

	local := core.NewVec3(
		sinTheta*math.Cos(phi),
		sinTheta*math.Sin(phi),
		cosTheta,
	)
	return alignToNormal(local, normal)
}

// ggxHalfVectorPDF converts the GGX distribution density into a solid-angle
// density over outgoing directions via the half-vector Jacobian 1/(4·v·h)
func ggxHalfVectorPDF(nDotH, vDotH, alpha float64) float64 {
	if vDotH <= 0 || nDotH <= 0 {
		return 0
	}
	return ggxD(nDotH, alpha) * nDotH / (4.0 * vDotH)
}

// sampleGTR1HalfVector samples a half vector from the clearcoat distribution
func sampleGTR1HalfVector(normal core.Vec3, alpha float64, sample core.Vec2) core.Vec3 {
	a2 := alpha * alpha

	cosTheta := math.Sqrt(math.Max(0, (1.0-math.Pow(a2, 1.0-sample.X))/(1.0-a2)))
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	phi := 2.0 * math.Pi * sample.Y

	local := core.NewVec3(
		sinTheta*math.Cos(phi),
		sinTheta*math.Sin(phi),
		cosTheta,
	)
	return alignToNormal(local, normal)
}

// gtr1HalfVectorPDF is the solid-angle density matching sampleGTR1HalfVector
func gtr1HalfVectorPDF(nDotH, vDotH, alpha float64) float64 {
	if vDotH <= 0 || nDotH <= 0 {
		return 0
	}
	return gtr1(nDotH, alpha) * nDotH / (4.0 * vDotH)
}

// disneyDiffuse is Burley's retro-reflective diffuse lobe
func disneyDiffuse(baseColor core.Vec3, roughness float64, nDotL, nDotV, lDotH float64) core.Vec3 {
	fd90 := 0.5 + 2.0*lDotH*lDotH*roughness
	lightScatter := 1.0 + (fd90-1.0)*schlickWeight(nDotL)
	viewScatter := 1.0 + (fd90-1.0)*schlickWeight(nDotV)
	return baseColor.Multiply(lightScatter * viewScatter / math.Pi)
}

// alignToNormal rotates a z-up local direction into the frame around normal
func alignToNormal(local, normal core.Vec3) core.Vec3 {
	tangent, bitangent := core.OrthonormalBasis(normal)
	return tangent.Multiply(local.X).
		Add(bitangent.Multiply(local.Y)).
		Add(normal.Multiply(local.Z))
}

// reflectAbout mirrors the view vector about the half vector
func reflectAbout(v, h core.Vec3) core.Vec3 {
	return h.Multiply(2.0 * v.Dot(h)).Subtract(v)
}
