package integrator

import (
	"math"

	"github.com/doubleailes/crust-render/pkg/core"
)

// PathTracingIntegrator implements unidirectional path tracing with
// multiple importance sampling between light sampling and BRDF sampling.
// Paths are truncated at a fixed depth; the missing tail energy is a small,
// predictable bias rather than the noise a stochastic cutoff would add.
type PathTracingIntegrator struct {
	config core.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config core.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{config: config}
}

// RayColor computes the radiance arriving along a camera ray. The result is
// sanitized: NaN or negative components come back as zero.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene core.Scene, sampler core.Sampler) core.Vec3 {
	return pt.li(ray, scene, sampler, pt.config.MaxDepth, 1.0).Sanitize()
}

// li is the recursive radiance estimate. emissionWeight scales emission
// encountered at the next hit: 1 for camera rays and specular continuations,
// the MIS weight of the sampled direction for diffuse ones, so that light
// sources seen through both sampling strategies are not counted twice.
func (pt *PathTracingIntegrator) li(ray core.Ray, scene core.Scene, sampler core.Sampler, depth int, emissionWeight float64) core.Vec3 {
	if depth < 0 {
		return core.Vec3{}
	}

	hit, isHit := scene.GetBVH().Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		return pt.backgroundGradient(ray, scene)
	}

	emitted := pt.emittedLight(ray, hit).Multiply(emissionWeight)

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return emitted
	}

	if scatter.IsSpecular() {
		if depth == 0 {
			return emitted
		}
		// Delta lobes carry no density, so MIS does not apply; the next
		// emissive hit counts in full
		indirect := pt.li(scatter.Scattered, scene, sampler, depth-1, 1.0)
		return emitted.Add(scatter.Attenuation.MultiplyVec(indirect))
	}

	// Depth 0 is the terminal gather state: visible emission plus one
	// shadow-ray estimate, no continuation
	direct := pt.directLighting(scene, ray, hit, sampler)
	if depth == 0 {
		return emitted.Add(direct)
	}

	indirect := pt.indirectLighting(scene, scatter, hit, sampler, depth)

	return emitted.Add(direct).Add(indirect)
}

// emittedLight returns the radiance emitted by the hit material, if any
func (pt *PathTracingIntegrator) emittedLight(ray core.Ray, hit *core.HitRecord) core.Vec3 {
	if emitter, isEmissive := hit.Material.(core.Emitter); isEmissive {
		return emitter.Emit(ray)
	}
	return core.Vec3{}
}

// directLighting estimates direct illumination by sampling the light catalog
func (pt *PathTracingIntegrator) directLighting(scene core.Scene, ray core.Ray, hit *core.HitRecord, sampler core.Sampler) core.Vec3 {
	lights := scene.GetLights()

	lightSample, hasLight := core.SampleLight(lights, hit.Point, sampler)
	if !hasLight || lightSample.PDF <= 0 {
		return core.Vec3{}
	}

	cosine := lightSample.Direction.Dot(hit.Normal)
	if cosine <= 0 {
		return core.Vec3{}
	}

	shadowRay := core.NewRay(hit.Point, lightSample.Direction)
	if scene.GetBVH().Occluded(shadowRay, 0.001, lightSample.Distance-0.001) {
		return core.Vec3{}
	}

	incoming := ray.Direction.Normalize()
	brdf := hit.Material.EvaluateBRDF(incoming, lightSample.Direction, hit.Normal)
	materialPDF, _ := hit.Material.PDF(incoming, lightSample.Direction, hit.Normal)

	// The density of this direction is the catalog-wide combined pdf, not
	// the chosen light's alone: with angularly overlapping lights more than
	// one light can produce the same direction. Using the combined pdf in
	// both the divisor and the weight keeps the two MIS weights for a
	// direction complementary.
	lightPDF := core.CalculateLightPDF(lights, hit.Point, lightSample.Direction)
	if lightPDF <= 0 {
		return core.Vec3{}
	}
	misWeight := core.BalanceHeuristic(lightPDF, materialPDF)

	return brdf.MultiplyVec(lightSample.Emission).Multiply(cosine * misWeight / lightPDF)
}

// indirectLighting continues the path along the BRDF-sampled direction. The
// emission weight passed down is the MIS weight of this direction against
// the light catalog, completing the pair of weighted strategies.
func (pt *PathTracingIntegrator) indirectLighting(scene core.Scene, scatter core.ScatterResult, hit *core.HitRecord, sampler core.Sampler, depth int) core.Vec3 {
	if scatter.PDF <= 0 {
		return core.Vec3{}
	}

	scatterDirection := scatter.Scattered.Direction.Normalize()
	cosine := scatterDirection.Dot(hit.Normal)
	if cosine <= 0 {
		return core.Vec3{}
	}

	lightPDF := core.CalculateLightPDF(scene.GetLights(), hit.Point, scatterDirection)
	misWeight := core.BalanceHeuristic(scatter.PDF, lightPDF)

	incoming := pt.li(scatter.Scattered, scene, sampler, depth-1, misWeight)

	return scatter.Attenuation.MultiplyVec(incoming).Multiply(cosine / scatter.PDF)
}

// backgroundGradient interpolates the scene background along the ray's
// vertical direction
func (pt *PathTracingIntegrator) backgroundGradient(r core.Ray, scene core.Scene) core.Vec3 {
	topColor, bottomColor := scene.GetBackgroundColors()

	unitDirection := r.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)

	return bottomColor.Multiply(1.0 - t).Add(topColor.Multiply(t))
}
