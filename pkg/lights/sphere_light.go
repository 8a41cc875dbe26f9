package lights

import (
	"math"

	"github.com/doubleailes/crust-render/pkg/core"
	"github.com/doubleailes/crust-render/pkg/geometry"
)

// SphereLight is a spherical area light. It wraps the sphere geometry that
// carries the emissive material so the catalog and the BVH stay in sync.
type SphereLight struct {
	*geometry.Sphere
	Emission core.Vec3
}

// NewSphereLight creates a spherical light around an existing emissive sphere
func NewSphereLight(sphere *geometry.Sphere, emission core.Vec3) *SphereLight {
	return &SphereLight{Sphere: sphere, Emission: emission}
}

// Sample picks a direction toward the light by sampling the cone of
// directions the sphere subtends from the shading point. A shading point
// inside the sphere yields a zero-PDF sample, which callers treat as no
// contribution.
func (sl *SphereLight) Sample(point core.Vec3, sample core.Vec2) core.LightSample {
	toCenter := sl.Center.Subtract(point)
	distanceToCenter := toCenter.Length()

	if distanceToCenter <= sl.Radius {
		return core.LightSample{PDF: 0}
	}

	sinThetaMax := sl.Radius / distanceToCenter
	cosThetaMax := math.Sqrt(math.Max(0, 1.0-sinThetaMax*sinThetaMax))

	direction := core.SampleCone(toCenter.Normalize(), cosThetaMax, sample)

	// Project the sampled direction onto the sphere surface
	ray := core.NewRay(point, direction)
	hit, ok := sl.Sphere.Hit(ray, 0.001, math.Inf(1))
	if !ok {
		// Grazing directions can miss due to floating point; treat as a
		// tangent hit at the silhouette
		t := distanceToCenter * cosThetaMax
		hitPoint := point.Add(direction.Multiply(t))
		return core.LightSample{
			Point:     hitPoint,
			Normal:    hitPoint.Subtract(sl.Center).Normalize(),
			Direction: direction,
			Distance:  t,
			Emission:  sl.Emission,
			PDF:       conePDF(cosThetaMax),
		}
	}

	return core.LightSample{
		Point:     hit.Point,
		Normal:    hit.Normal,
		Direction: direction,
		Distance:  hit.T,
		Emission:  sl.Emission,
		PDF:       conePDF(cosThetaMax),
	}
}

// PDF returns the solid-angle density of sampling the given direction from
// the shading point, or zero if the direction misses the sphere.
func (sl *SphereLight) PDF(point core.Vec3, direction core.Vec3) float64 {
	ray := core.NewRay(point, direction)
	if _, ok := sl.Sphere.Hit(ray, 0.001, math.Inf(1)); !ok {
		return 0
	}

	toCenter := sl.Center.Subtract(point)
	distanceToCenter := toCenter.Length()
	if distanceToCenter <= sl.Radius {
		return 0
	}

	sinThetaMax := sl.Radius / distanceToCenter
	cosThetaMax := math.Sqrt(math.Max(0, 1.0-sinThetaMax*sinThetaMax))
	return conePDF(cosThetaMax)
}

// conePDF is the uniform solid-angle density over a cone of half-angle θmax
func conePDF(cosThetaMax float64) float64 {
	solidAngle := 2.0 * math.Pi * (1.0 - cosThetaMax)
	if solidAngle <= 0 {
		return 0
	}
	return 1.0 / solidAngle
}
