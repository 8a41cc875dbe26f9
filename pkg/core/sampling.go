package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms.
// Can be swapped out for deterministic testing or different sampling patterns.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// GenerateCMJ2D generates a correlated multi-jittered 2D sample pattern with
// samplesPerSide² points. Each point lands in its own row and column stratum
// of the n×n grid, with jitter correlated through shuffled sub-stratum
// assignments. Used for camera ray jitter within a pixel footprint.
func GenerateCMJ2D(samplesPerSide int, random *rand.Rand) []Vec2 {
	n := samplesPerSide
	if n <= 0 {
		return nil
	}
	nf := float64(n)

	// Shuffled sub-stratum assignments correlate the jitter between rows
	// and columns, which is what separates CMJ from plain multi-jitter.
	xs := random.Perm(n)
	ys := random.Perm(n)

	samples := make([]Vec2, 0, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			x := (float64(i) + (float64(xs[j]) + random.Float64()) / nf) / nf
			y := (float64(j) + (float64(ys[i]) + random.Float64()) / nf) / nf
			samples = append(samples, NewVec2(x, y))
		}
	}
	return samples
}

// SampleCosineHemisphere generates a cosine-weighted random direction in the
// hemisphere around normal. The matching density is cos(θ)/π.
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	a := 2.0 * math.Pi * sample.X
	z := sample.Y
	r := math.Sqrt(z)

	x := r * math.Cos(a)
	y := r * math.Sin(a)
	zCoord := math.Sqrt(1.0 - z)

	tangent, bitangent := OrthonormalBasis(normal)
	return tangent.Multiply(x).Add(bitangent.Multiply(y)).Add(normal.Multiply(zCoord))
}

// SampleCone samples a direction uniformly within a cone around direction.
// cosThetaMax is the cosine of the cone half-angle; the matching density is
// 1/(2π(1-cosThetaMax)).
func SampleCone(direction Vec3, cosThetaMax float64, sample Vec2) Vec3 {
	u, v := OrthonormalBasis(direction)

	cosTheta := 1.0 - sample.X*(1.0-cosThetaMax)
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	phi := 2.0 * math.Pi * sample.Y

	x := sinTheta * math.Cos(phi)
	y := sinTheta * math.Sin(phi)
	z := cosTheta

	return u.Multiply(x).Add(v.Multiply(y)).Add(direction.Multiply(z))
}

// SampleOnUnitSphere generates a uniform random direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// SamplePointInUnitDisk generates a random point in the unit disk using
// concentric mapping, avoiding rejection sampling. Used for lens sampling.
func SamplePointInUnitDisk(sample Vec2) Vec3 {
	uOffset := NewVec2(2*sample.X-1, 2*sample.Y-1)
	if uOffset.X == 0 && uOffset.Y == 0 {
		return Vec3{}
	}

	var theta, r float64
	if math.Abs(uOffset.X) > math.Abs(uOffset.Y) {
		r = uOffset.X
		theta = math.Pi / 4 * (uOffset.Y / uOffset.X)
	} else {
		r = uOffset.Y
		theta = math.Pi/2 - math.Pi/4*(uOffset.X/uOffset.Y)
	}

	return NewVec3(r*math.Cos(theta), r*math.Sin(theta), 0)
}

// SamplePointInUnitSphere generates a random point inside the unit sphere
// via the inverse CDF, keeping the fuzz perturbation rejection-free.
func SamplePointInUnitSphere(sample Vec3) Vec3 {
	r := math.Pow(sample.X, 1.0/3.0)
	phi := 2 * math.Pi * sample.Y
	cosTheta := 2*sample.Z - 1
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))

	return NewVec3(
		r*sinTheta*math.Cos(phi),
		r*sinTheta*math.Sin(phi),
		r*cosTheta,
	)
}

// OrthonormalBasis builds two unit vectors perpendicular to w and each other
func OrthonormalBasis(w Vec3) (u, v Vec3) {
	var nt Vec3
	if math.Abs(w.X) > 0.1 {
		nt = NewVec3(0, 1, 0)
	} else {
		nt = NewVec3(1, 0, 0)
	}
	u = nt.Cross(w).Normalize()
	v = w.Cross(u)
	return u, v
}

// BalanceHeuristic computes the MIS weight pdfA/(pdfA+pdfB).
// Weights for the two strategies sum to 1 whenever both pdfs are non-zero.
func BalanceHeuristic(pdfA, pdfB float64) float64 {
	if pdfA <= 0 {
		return 0
	}
	return pdfA / (pdfA + pdfB)
}

// PowerHeuristic computes the β=2 MIS weight (nf·f)²/((nf·f)²+(ng·g)²)
func PowerHeuristic(nf int, fPdf float64, ng int, gPdf float64) float64 {
	f := float64(nf) * fPdf
	g := float64(ng) * gPdf
	if f <= 0 {
		return 0
	}
	return (f * f) / (f*f + g*g)
}
