package material

import (
	"math"

	"github.com/doubleailes/crust-render/pkg/core"
)

// Disney is the principled BRDF: a weighted combination of diffuse, sheen,
// GGX specular and GTR1 clearcoat lobes
type Disney struct {
	BaseColor      core.Vec3
	Metallic       float64
	Roughness      float64
	Specular       float64
	SpecularTint   float64
	Sheen          float64
	SheenTint      float64
	Clearcoat      float64
	ClearcoatGloss float64
}

// NewDisney creates a new Disney principled material
func NewDisney(baseColor core.Vec3, metallic, roughness, specular, specularTint,
	sheen, sheenTint, clearcoat, clearcoatGloss float64) *Disney {
	return &Disney{
		BaseColor:      baseColor,
		Metallic:       clamp(metallic, 0, 1),
		Roughness:      clamp(roughness, 0.05, 1),
		Specular:       clamp(specular, 0, 1),
		SpecularTint:   clamp(specularTint, 0, 1),
		Sheen:          clamp(sheen, 0, 1),
		SheenTint:      clamp(sheenTint, 0, 1),
		Clearcoat:      clamp(clearcoat, 0, 1),
		ClearcoatGloss: clamp(clearcoatGloss, 0, 1),
	}
}

func (d *Disney) alpha() float64 {
	return d.Roughness * d.Roughness
}

func (d *Disney) clearcoatAlpha() float64 {
	// Gloss 0 → wide lobe (0.1), gloss 1 → tight lobe (0.001)
	return 0.1 + (0.001-0.1)*d.ClearcoatGloss
}

// tint is the hue-preserving normalization of the base color
func (d *Disney) tint() core.Vec3 {
	maxComp := d.BaseColor.MaxComponent()
	if maxComp <= 0 {
		return core.NewVec3(1, 1, 1)
	}
	return d.BaseColor.Multiply(1.0 / maxComp)
}

// f0 is the normal-incidence reflectance of the specular lobe
func (d *Disney) f0() core.Vec3 {
	dielectric := core.NewVec3(0.04, 0.04, 0.04).Lerp(d.tint(), d.SpecularTint).Multiply(d.Specular)
	return dielectric.Lerp(d.BaseColor, d.Metallic)
}

// lobeWeights returns the unnormalized selection weights for the
// diffuse, specular and clearcoat lobes
func (d *Disney) lobeWeights() (diffuse, specular, clearcoat float64) {
	diffuse = 1.0 - d.Metallic
	specular = d.Metallic + d.Specular*0.5
	clearcoat = 0.25 * d.Clearcoat
	return diffuse, specular, clearcoat
}

// Scatter picks a lobe proportional to its energy weight, samples within it,
// and reports the combined multi-lobe density
func (d *Disney) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	n := hit.Normal
	v := rayIn.Direction.Normalize().Negate()

	wDiffuse, wSpecular, wClearcoat := d.lobeWeights()
	total := wDiffuse + wSpecular + wClearcoat
	if total <= 0 {
		return core.ScatterResult{}, false
	}

	choice := sampler.Get1D() * total

	var l core.Vec3
	switch {
	case choice < wDiffuse:
		l = core.SampleCosineHemisphere(n, sampler.Get2D())
	case choice < wDiffuse+wSpecular:
		h := sampleGGXHalfVector(n, d.alpha(), sampler.Get2D())
		l = reflectAbout(v, h)
	default:
		h := sampleGTR1HalfVector(n, d.clearcoatAlpha(), sampler.Get2D())
		l = reflectAbout(v, h)
	}

	if l.Dot(n) <= 0 {
		return core.ScatterResult{}, false
	}

	pdf, _ := d.PDF(rayIn.Direction.Normalize(), l, n)
	if pdf <= 0 {
		return core.ScatterResult{}, false
	}

	return core.ScatterResult{
		Incoming:    rayIn,
		Scattered:   core.NewRay(hit.Point, l),
		Attenuation: d.EvaluateBRDF(rayIn.Direction.Normalize(), l, n),
		PDF:         pdf,
	}, true
}

// EvaluateBRDF sums all lobes for a direction pair
func (d *Disney) EvaluateBRDF(incomingDir, outgoingDir, normal core.Vec3) core.Vec3 {
	v := incomingDir.Negate()
	l := outgoingDir

	nDotL := normal.Dot(l)
	nDotV := normal.Dot(v)
	if nDotL <= 0 || nDotV <= 0 {
		return core.Vec3{}
	}

	h := v.Add(l).Normalize()
	nDotH := math.Max(0, normal.Dot(h))
	lDotH := math.Max(0, l.Dot(h))
	vDotH := math.Max(0, v.Dot(h))

	f := FresnelSchlick(vDotH, d.f0())

	// Diffuse and sheen, suppressed as the surface turns metallic
	kd := core.NewVec3(1, 1, 1).Subtract(f).Multiply(1.0 - d.Metallic)
	diffuse := kd.MultiplyVec(disneyDiffuse(d.BaseColor, d.Roughness, nDotL, nDotV, lDotH))

	sheenColor := core.NewVec3(1, 1, 1).Lerp(d.tint(), d.SheenTint)
	sheen := sheenColor.Multiply(schlickWeight(lDotH) * d.Sheen * (1.0 - d.Metallic))

	// GGX specular
	dTerm := ggxD(nDotH, d.alpha())
	gTerm := geometrySchlickGGX(nDotV, d.Roughness) * geometrySchlickGGX(nDotL, d.Roughness)
	specular := f.Multiply(dTerm * gTerm / (4.0*nDotV*nDotL + 1e-8))

	// Clearcoat: GTR1 distribution, fixed 4% Fresnel
	dc := gtr1(nDotH, d.clearcoatAlpha())
	fc := fresnelSchlickScalar(vDotH, 0.04)
	clearcoat := d.Clearcoat * dc * fc / (4.0*nDotV*nDotL + 1e-8)

	return diffuse.Add(sheen).Add(specular).Add(core.NewVec3(clearcoat, clearcoat, clearcoat))
}

// PDF sums the per-lobe densities weighted by their selection probability
func (d *Disney) PDF(incomingDir, outgoingDir, normal core.Vec3) (float64, bool) {
	v := incomingDir.Negate()
	l := outgoingDir

	cosTheta := normal.Dot(l)
	if cosTheta <= 0 {
		return 0, false
	}

	wDiffuse, wSpecular, wClearcoat := d.lobeWeights()
	total := wDiffuse + wSpecular + wClearcoat
	if total <= 0 {
		return 0, false
	}

	h := v.Add(l).Normalize()
	nDotH := math.Max(0, normal.Dot(h))
	vDotH := math.Max(0, v.Dot(h))

	diffusePDF := cosTheta / math.Pi
	specularPDF := ggxHalfVectorPDF(nDotH, vDotH, d.alpha())
	clearcoatPDF := gtr1HalfVectorPDF(nDotH, vDotH, d.clearcoatAlpha())

	pdf := (wDiffuse*diffusePDF + wSpecular*specularPDF + wClearcoat*clearcoatPDF) / total
	return pdf, false
}
