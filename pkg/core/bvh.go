package core

import "sort"

// Leave small shape groups in leaves; linear search beats tree traversal there.
const leafThreshold = 4

// bvhNode is a node in the bounding volume hierarchy
type bvhNode struct {
	bounds AABB
	left   *bvhNode
	right  *bvhNode
	shapes []Shape // non-nil only for leaf nodes
}

// BVH is a bounding volume hierarchy for fast ray-scene intersection.
// It is immutable after construction and safe to share across workers.
type BVH struct {
	root *bvhNode
}

// NewBVH constructs a BVH from a slice of shapes. The slice is copied, so
// concurrent builds over the same shapes are safe.
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{}
	}
	owned := make([]Shape, len(shapes))
	copy(owned, shapes)
	return &BVH{root: buildBVH(owned)}
}

// buildBVH recursively splits shapes at the median of the longest axis
func buildBVH(shapes []Shape) *bvhNode {
	bounds := shapes[0].BoundingBox()
	for _, shape := range shapes[1:] {
		bounds = bounds.Union(shape.BoundingBox())
	}

	if len(shapes) <= leafThreshold {
		return &bvhNode{bounds: bounds, shapes: shapes}
	}

	axis := bounds.LongestAxis()
	sort.Slice(shapes, func(i, j int) bool {
		ci := shapes[i].BoundingBox().Center()
		cj := shapes[j].BoundingBox().Center()
		switch axis {
		case 0:
			return ci.X < cj.X
		case 1:
			return ci.Y < cj.Y
		default:
			return ci.Z < cj.Z
		}
	})

	mid := len(shapes) / 2
	return &bvhNode{
		bounds: bounds,
		left:   buildBVH(shapes[:mid]),
		right:  buildBVH(shapes[mid:]),
	}
}

// Hit returns the nearest intersection within [tMin, tMax], or false on a miss
func (bvh *BVH) Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	if bvh.root == nil {
		return nil, false
	}
	return hitNode(bvh.root, ray, tMin, tMax)
}

// Occluded reports whether any geometry blocks the ray within [tMin, tMax].
// Shadow rays only need a boolean answer, not the nearest hit.
func (bvh *BVH) Occluded(ray Ray, tMin, tMax float64) bool {
	_, hit := bvh.Hit(ray, tMin, tMax)
	return hit
}

func hitNode(node *bvhNode, ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	if !node.bounds.Hit(ray, tMin, tMax) {
		return nil, false
	}

	if node.shapes != nil {
		var closest *HitRecord
		closestT := tMax
		for _, shape := range node.shapes {
			if hit, ok := shape.Hit(ray, tMin, closestT); ok {
				closest = hit
				closestT = hit.T
			}
		}
		return closest, closest != nil
	}

	var closest *HitRecord
	closestT := tMax
	if hit, ok := hitNode(node.left, ray, tMin, closestT); ok {
		closest = hit
		closestT = hit.T
	}
	if hit, ok := hitNode(node.right, ray, tMin, closestT); ok {
		closest = hit
	}
	return closest, closest != nil
}
