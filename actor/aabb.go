package actor

import "github.com/go-gl/mathgl/mgl64"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// CubeAABB returns the box of an axis-aligned cube centered on position
func CubeAABB(position mgl64.Vec3, edgeLength float64) AABB {
	h := edgeLength / 2
	half := mgl64.Vec3{h, h, h}
	return AABB{Min: position.Sub(half), Max: position.Add(half)}
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps checks if two AABBs overlap. Touching faces do not count.
func (a AABB) Overlaps(other AABB) bool {
	// AABBs overlap if they overlap on all three axes
	return a.Max.X() > other.Min.X() && a.Min.X() < other.Max.X() &&
		a.Max.Y() > other.Min.Y() && a.Min.Y() < other.Max.Y() &&
		a.Max.Z() > other.Min.Z() && a.Min.Z() < other.Max.Z()
}

// Center returns the midpoint of the box
func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// Extents returns the half size of the box on each axis
func (a AABB) Extents() mgl64.Vec3 {
	return a.Max.Sub(a.Min).Mul(0.5)
}
