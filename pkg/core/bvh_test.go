package core

import (
	"math"
	"testing"
)

// testSphere is a minimal shape implementation for BVH tests
type testSphere struct {
	center Vec3
	radius float64
}

func (s *testSphere) Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	oc := ray.Origin.Subtract(s.center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.radius*s.radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	hit := &HitRecord{T: root, Point: ray.At(root)}
	hit.SetFaceNormal(ray, hit.Point.Subtract(s.center).Multiply(1/s.radius))
	return hit, true
}

func (s *testSphere) BoundingBox() AABB {
	r := NewVec3(s.radius, s.radius, s.radius)
	return NewAABB(s.center.Subtract(r), s.center.Add(r))
}

func TestBVH_FindsNearestHit(t *testing.T) {
	shapes := []Shape{
		&testSphere{center: NewVec3(0, 0, -5), radius: 1},
		&testSphere{center: NewVec3(0, 0, -10), radius: 1},
		&testSphere{center: NewVec3(3, 0, -5), radius: 1},
	}
	bvh := NewBVH(shapes)

	ray := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, -1))
	hit, ok := bvh.Hit(ray, 0.001, math.Inf(1))
	if !ok {
		t.Fatal("expected a hit")
	}
	if math.Abs(hit.T-4.0) > 1e-9 {
		t.Errorf("expected nearest hit at t=4, got t=%v", hit.T)
	}
}

func TestBVH_Miss(t *testing.T) {
	shapes := []Shape{
		&testSphere{center: NewVec3(0, 0, -5), radius: 1},
	}
	bvh := NewBVH(shapes)

	ray := NewRay(NewVec3(0, 0, 0), NewVec3(0, 1, 0))
	if _, ok := bvh.Hit(ray, 0.001, math.Inf(1)); ok {
		t.Error("expected a miss")
	}
}

func TestBVH_Empty(t *testing.T) {
	bvh := NewBVH(nil)
	ray := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, -1))
	if _, ok := bvh.Hit(ray, 0.001, math.Inf(1)); ok {
		t.Error("empty BVH should never hit")
	}
}

func TestBVH_ManyShapes(t *testing.T) {
	// Enough spheres to force several levels of splitting
	var shapes []Shape
	for i := 0; i < 64; i++ {
		shapes = append(shapes, &testSphere{
			center: NewVec3(float64(i%8)*3, float64(i/8)*3, -20),
			radius: 1,
		})
	}
	bvh := NewBVH(shapes)

	// Aim at each sphere center in turn
	for i := 0; i < 64; i++ {
		target := NewVec3(float64(i%8)*3, float64(i/8)*3, -20)
		ray := NewRay(NewVec3(target.X, target.Y, 0), NewVec3(0, 0, -1))
		hit, ok := bvh.Hit(ray, 0.001, math.Inf(1))
		if !ok {
			t.Fatalf("sphere %d: expected hit", i)
		}
		if math.Abs(hit.T-19.0) > 1e-9 {
			t.Errorf("sphere %d: expected t=19, got %v", i, hit.T)
		}
	}
}

func TestBVH_Occluded(t *testing.T) {
	shapes := []Shape{
		&testSphere{center: NewVec3(0, 0, -5), radius: 1},
	}
	bvh := NewBVH(shapes)
	ray := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, -1))

	if !bvh.Occluded(ray, 0.001, 10) {
		t.Error("sphere should occlude the ray")
	}
	// Bounded occlusion query stops short of the sphere
	if bvh.Occluded(ray, 0.001, 3) {
		t.Error("occlusion query past tMax should miss")
	}
}
