package material

import (
	"math"

	"github.com/doubleailes/crust-render/pkg/core"
)

// BlinnPhong combines a lambertian diffuse term with a cosⁿ specular lobe
// around the half vector
type BlinnPhong struct {
	Diffuse   core.Vec3
	Specular  core.Vec3
	Shininess float64
}

// NewBlinnPhong creates a new Blinn-Phong material
func NewBlinnPhong(diffuse, specular core.Vec3, shininess float64) *BlinnPhong {
	if shininess < 1 {
		shininess = 1
	}
	return &BlinnPhong{Diffuse: diffuse, Specular: specular, Shininess: shininess}
}

// specularProbability splits sampling effort between the lobes by their energy
func (b *BlinnPhong) specularProbability() float64 {
	diffuseEnergy := b.Diffuse.MaxComponent()
	specularEnergy := b.Specular.MaxComponent()
	total := diffuseEnergy + specularEnergy
	if total <= 0 {
		return 0
	}
	return specularEnergy / total
}

// Scatter samples one of the two lobes and reports the mixture density
func (b *BlinnPhong) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	n := hit.Normal
	v := rayIn.Direction.Normalize().Negate()

	var l core.Vec3
	if sampler.Get1D() < b.specularProbability() {
		// Sample the half vector from the cosⁿ lobe, then mirror the view
		h := samplePhongHalfVector(n, b.Shininess, sampler.Get2D())
		l = reflectAbout(v, h)
	} else {
		l = core.SampleCosineHemisphere(n, sampler.Get2D())
	}

	if l.Dot(n) <= 0 {
		return core.ScatterResult{}, false
	}

	pdf, _ := b.PDF(rayIn.Direction.Normalize(), l, n)
	if pdf <= 0 {
		return core.ScatterResult{}, false
	}

	return core.ScatterResult{
		Incoming:    rayIn,
		Scattered:   core.NewRay(hit.Point, l),
		Attenuation: b.EvaluateBRDF(rayIn.Direction.Normalize(), l, n),
		PDF:         pdf,
	}, true
}

// EvaluateBRDF evaluates both lobes for a direction pair
func (b *BlinnPhong) EvaluateBRDF(incomingDir, outgoingDir, normal core.Vec3) core.Vec3 {
	v := incomingDir.Negate()
	l := outgoingDir

	nDotL := normal.Dot(l)
	nDotV := normal.Dot(v)
	if nDotL <= 0 || nDotV <= 0 {
		return core.Vec3{}
	}

	h := v.Add(l).Normalize()
	nDotH := math.Max(0, normal.Dot(h))

	diffuse := b.Diffuse.Multiply(1.0 / math.Pi)

	// Normalized Blinn-Phong specular: (n+2)/(2π)·cosⁿ(θh)
	norm := (b.Shininess + 2.0) / (2.0 * math.Pi)
	specular := b.Specular.Multiply(norm * math.Pow(nDotH, b.Shininess))

	return diffuse.Add(specular)
}

// PDF returns the mixture density matching the sampling strategy
func (b *BlinnPhong) PDF(incomingDir, outgoingDir, normal core.Vec3) (float64, bool) {
	v := incomingDir.Negate()
	l := outgoingDir

	cosTheta := normal.Dot(l)
	if cosTheta <= 0 {
		return 0, false
	}

	pSpec := b.specularProbability()
	diffusePDF := cosTheta / math.Pi

	h := v.Add(l).Normalize()
	nDotH := math.Max(0, normal.Dot(h))
	vDotH := math.Max(1e-8, v.Dot(h))

	// cosⁿ half-vector density with the 1/(4·v·h) Jacobian
	halfPDF := (b.Shininess + 1.0) / (2.0 * math.Pi) * math.Pow(nDotH, b.Shininess)
	specularPDF := halfPDF / (4.0 * vDotH)

	return (1.0-pSpec)*diffusePDF + pSpec*specularPDF, false
}

// samplePhongHalfVector samples a half vector from the cosⁿ distribution
func samplePhongHalfVector(normal core.Vec3, shininess float64, sample core.Vec2) core.Vec3 {
	cosTheta := math.Pow(sample.X, 1.0/(shininess+1.0))
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	phi := 2.0 * math.Pi * sample.Y

	local := core.NewVec3(
		sinTheta*math.Cos(phi),
		sinTheta*math.Sin(phi),
		cosTheta,
	)
	return alignToNormal(local, normal)
}
