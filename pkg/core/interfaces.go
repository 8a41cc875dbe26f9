package core

// Logger interface for renderer progress output
type Logger interface {
	Printf(format string, args ...interface{})
}

// Material interface for surfaces that can scatter rays
type Material interface {
	// Scatter importance-samples an outgoing direction for the incoming ray.
	// Returns false when the surface absorbs the ray.
	Scatter(rayIn Ray, hit HitRecord, sampler Sampler) (ScatterResult, bool)

	// EvaluateBRDF evaluates the BRDF value for a specific direction pair.
	// Directions must be unit length; incoming points toward the surface,
	// outgoing away from it.
	EvaluateBRDF(incomingDir, outgoingDir, normal Vec3) Vec3

	// PDF returns the solid-angle density the sampling strategy assigns to
	// the direction pair, and whether the material is a delta (specular)
	// scatterer. Delta materials return (0, true): they cannot be combined
	// with light sampling.
	PDF(incomingDir, outgoingDir, normal Vec3) (pdf float64, isDelta bool)
}

// Emitter interface for materials that emit light
type Emitter interface {
	Emit(rayIn Ray) Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Incoming    Ray     // The incoming ray
	Scattered   Ray     // The sampled outgoing ray
	Attenuation Vec3    // BRDF value for diffuse lobes, reflectance for specular
	PDF         float64 // Solid-angle density of the sampled direction (0 for specular)
}

// IsSpecular reports whether this is delta scattering with no continuous PDF
func (s ScatterResult) IsSpecular() bool {
	return s.PDF <= 0
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Surface normal, oriented against the incoming ray
	UV        Vec2     // Surface parametric coordinates
	T         float64  // Parameter t along the ray
	FrontFace bool     // Whether the ray hit the front face
	Material  Material // Material at the hit point
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}

// Shape interface for geometry that can be intersected by rays
type Shape interface {
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
	BoundingBox() AABB
}

// Light interface for emissive surfaces that can be sampled for direct lighting
type Light interface {
	// Sample picks a direction from the shading point toward the light and
	// returns it with its solid-angle density. A degenerate configuration
	// (e.g. shading point inside the light) yields PDF 0, which callers
	// treat as zero contribution.
	Sample(point Vec3, sample Vec2) LightSample

	// PDF returns the density Sample would have assigned to an arbitrary
	// direction from the shading point, 0 if the direction misses the light.
	PDF(point Vec3, direction Vec3) float64
}

// LightSample contains information about a sampled point on a light
type LightSample struct {
	Point     Vec3    // Point on the light surface
	Normal    Vec3    // Surface normal at the sample point
	Direction Vec3    // Unit direction from shading point to light
	Distance  float64 // Distance to the sample point
	Emission  Vec3    // Emitted radiance
	PDF       float64 // Solid-angle density of this sample
}

// Scene is the read-only snapshot the integrator traces against
type Scene interface {
	GetBVH() *BVH
	GetLights() []Light
	GetBackgroundColors() (topColor, bottomColor Vec3)
}
