package geometry

import (
	"math"

	"github.com/doubleailes/crust-render/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3
	Normal   core.Vec3 // unit length
	Material core.Material
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, material core.Material) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(),
		Material: material,
	}
}

// Hit tests if a ray intersects the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)
	if math.Abs(denominator) < 1e-8 {
		// Ray parallel to the plane
		return nil, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < tMin || t > tMax {
		return nil, false
	}

	hit := &core.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Material: p.Material,
	}
	hit.SetFaceNormal(ray, p.Normal)

	return hit, true
}

// BoundingBox returns a large box around the plane. Axis-aligned planes get
// a thin slab, which keeps the BVH useful for ground planes and walls.
func (p *Plane) BoundingBox() core.AABB {
	const extent = 1e6
	const thickness = 0.001

	switch {
	case math.Abs(p.Normal.X) > 0.9999:
		return core.NewAABB(
			core.NewVec3(p.Point.X-thickness, -extent, -extent),
			core.NewVec3(p.Point.X+thickness, extent, extent),
		)
	case math.Abs(p.Normal.Y) > 0.9999:
		return core.NewAABB(
			core.NewVec3(-extent, p.Point.Y-thickness, -extent),
			core.NewVec3(extent, p.Point.Y+thickness, extent),
		)
	case math.Abs(p.Normal.Z) > 0.9999:
		return core.NewAABB(
			core.NewVec3(-extent, -extent, p.Point.Z-thickness),
			core.NewVec3(extent, extent, p.Point.Z+thickness),
		)
	default:
		return core.NewAABB(
			core.NewVec3(-extent, -extent, -extent),
			core.NewVec3(extent, extent, extent),
		)
	}
}
