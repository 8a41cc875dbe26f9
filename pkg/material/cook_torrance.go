package material

import (
	"math"

	"github.com/doubleailes/crust-render/pkg/core"
)

// CookTorrance is a GGX microfacet material with a lambertian base layer
type CookTorrance struct {
	Albedo    core.Vec3
	Roughness float64
	Metallic  float64
}

// NewCookTorrance creates a new Cook-Torrance material. Roughness is clamped
// away from zero to keep the GGX distribution finite.
func NewCookTorrance(albedo core.Vec3, roughness, metallic float64) *CookTorrance {
	return &CookTorrance{
		Albedo:    albedo,
		Roughness: clamp(roughness, 0.05, 1.0),
		Metallic:  clamp(metallic, 0.0, 1.0),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func (c *CookTorrance) alpha() float64 {
	return c.Roughness * c.Roughness
}

func (c *CookTorrance) f0() core.Vec3 {
	return core.NewVec3(0.04, 0.04, 0.04).Lerp(c.Albedo, c.Metallic)
}

// Scatter samples a 50/50 mixture of the diffuse lobe and the GGX specular
// lobe, reporting the combined density
func (c *CookTorrance) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	n := hit.Normal
	v := rayIn.Direction.Normalize().Negate()

	var l core.Vec3
	if sampler.Get1D() < 0.5 {
		h := sampleGGXHalfVector(n, c.alpha(), sampler.Get2D())
		l = reflectAbout(v, h)
	} else {
		l = core.SampleCosineHemisphere(n, sampler.Get2D())
	}

	if l.Dot(n) <= 0 {
		return core.ScatterResult{}, false
	}

	pdf, _ := c.PDF(rayIn.Direction.Normalize(), l, n)
	if pdf <= 0 {
		return core.ScatterResult{}, false
	}

	return core.ScatterResult{
		Incoming:    rayIn,
		Scattered:   core.NewRay(hit.Point, l),
		Attenuation: c.EvaluateBRDF(rayIn.Direction.Normalize(), l, n),
		PDF:         pdf,
	}, true
}

// EvaluateBRDF evaluates the full microfacet BRDF: D·F·G specular plus an
// energy-balanced diffuse term
func (c *CookTorrance) EvaluateBRDF(incomingDir, outgoingDir, normal core.Vec3) core.Vec3 {
	v := incomingDir.Negate()
	l := outgoingDir

	nDotL := normal.Dot(l)
	nDotV := normal.Dot(v)
	if nDotL <= 0 || nDotV <= 0 {
		return core.Vec3{}
	}

	h := v.Add(l).Normalize()
	nDotH := math.Max(1e-8, normal.Dot(h))
	vDotH := math.Max(1e-8, v.Dot(h))

	f := FresnelSchlick(vDotH, c.f0())
	d := ggxD(nDotH, c.alpha())
	g := geometrySchlickGGX(nDotV, c.Roughness) * geometrySchlickGGX(nDotL, c.Roughness)

	specular := f.Multiply(d * g / (4.0*nDotV*nDotL + 1e-8))

	// Metals have no diffuse transmission; Fresnel takes the rest
	kd := core.NewVec3(1, 1, 1).Subtract(f).Multiply(1.0 - c.Metallic)
	diffuse := kd.MultiplyVec(c.Albedo.Multiply(1.0 / math.Pi))

	return diffuse.Add(specular)
}

// PDF returns the 50/50 mixture density of the two sampling lobes
func (c *CookTorrance) PDF(incomingDir, outgoingDir, normal core.Vec3) (float64, bool) {
	v := incomingDir.Negate()
	l := outgoingDir

	cosTheta := normal.Dot(l)
	if cosTheta <= 0 {
		return 0, false
	}

	h := v.Add(l).Normalize()
	nDotH := math.Max(0, normal.Dot(h))
	vDotH := math.Max(0, v.Dot(h))

	diffusePDF := cosTheta / math.Pi
	specularPDF := ggxHalfVectorPDF(nDotH, vDotH, c.alpha())

	return 0.5*diffusePDF + 0.5*specularPDF, false
}
