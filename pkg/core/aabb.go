package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB creates a new AABB from min and max corners
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Union returns an AABB that bounds both this AABB and another
func (box AABB) Union(other AABB) AABB {
	return AABB{
		Min: Vec3{
			X: math.Min(box.Min.X, other.Min.X),
			Y: math.Min(box.Min.Y, other.Min.Y),
			Z: math.Min(box.Min.Z, other.Min.Z),
		},
		Max: Vec3{
			X: math.Max(box.Max.X, other.Max.X),
			Y: math.Max(box.Max.Y, other.Max.Y),
			Z: math.Max(box.Max.Z, other.Max.Z),
		},
	}
}

// Center returns the center point of the AABB
func (box AABB) Center() Vec3 {
	return box.Min.Add(box.Max).Multiply(0.5)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (box AABB) LongestAxis() int {
	size := box.Max.Subtract(box.Min)
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// Hit tests if a ray intersects this AABB within [tMin, tMax] using the slab method
func (box AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		var lo, hi, origin, direction float64
		switch axis {
		case 0:
			lo, hi, origin, direction = box.Min.X, box.Max.X, ray.Origin.X, ray.Direction.X
		case 1:
			lo, hi, origin, direction = box.Min.Y, box.Max.Y, ray.Origin.Y, ray.Direction.Y
		case 2:
			lo, hi, origin, direction = box.Min.Z, box.Max.Z, ray.Origin.Z, ray.Direction.Z
		}

		if math.Abs(direction) < 1e-12 {
			// Ray parallel to this slab: hits only if the origin is inside it
			if origin < lo || origin > hi {
				return false
			}
			continue
		}

		invDir := 1.0 / direction
		t1 := (lo - origin) * invDir
		t2 := (hi - origin) * invDir
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}
