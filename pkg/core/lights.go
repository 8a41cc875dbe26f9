package core

// SampleLight selects one light uniformly and samples a direction toward it.
// The returned sample's PDF includes the 1/N selection probability. With
// angularly overlapping lights the density of producing the direction is the
// catalog-wide combined pdf; use CalculateLightPDF for estimator weights.
func SampleLight(lights []Light, point Vec3, sampler Sampler) (LightSample, bool) {
	if len(lights) == 0 {
		return LightSample{}, false
	}

	index := int(sampler.Get1D() * float64(len(lights)))
	if index >= len(lights) {
		index = len(lights) - 1
	}

	sample := lights[index].Sample(point, sampler.Get2D())
	sample.PDF /= float64(len(lights))
	return sample, true
}

// CalculateLightPDF returns the density the light sampling procedure assigns
// to an arbitrary direction from the shading point: the per-light densities
// averaged over the uniform selection. Used as the MIS denominator when a
// BRDF-sampled ray happens to reach a light.
func CalculateLightPDF(lights []Light, point Vec3, direction Vec3) float64 {
	if len(lights) == 0 {
		return 0
	}

	total := 0.0
	for _, light := range lights {
		total += light.PDF(point, direction)
	}
	return total / float64(len(lights))
}
