package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// FaceIndices lists the corner indices of the six quads of a box, in the
// order bottom, top, front, back, right, left. It indexes the slices
// returned by Corners and BoxCorners.
var FaceIndices = [6][4]int{
	{0, 1, 2, 3}, // bottom
	{4, 5, 6, 7}, // top
	{0, 1, 5, 4}, // front
	{2, 3, 7, 6}, // back
	{1, 2, 6, 5}, // right
	{0, 3, 7, 4}, // left
}

// BoxCorners returns the 8 local corners of a box: the 4 corners of the -z
// face followed by the 4 corners of the +z face, in the same xy order.
func BoxCorners(halfExtents mgl64.Vec3) [8]mgl64.Vec3 {
	hx, hy, hz := halfExtents.X(), halfExtents.Y(), halfExtents.Z()
	return [8]mgl64.Vec3{
		{-hx, -hy, -hz},
		{+hx, -hy, -hz},
		{+hx, +hy, -hz},
		{-hx, +hy, -hz},
		{-hx, -hy, +hz},
		{+hx, -hy, +hz},
		{+hx, +hy, +hz},
		{-hx, +hy, +hz},
	}
}

// Corners returns the 8 world space vertices of the cube
func (rb *RigidBody) Corners() [8]mgl64.Vec3 {
	h := rb.edgeLength / 2
	corners := BoxCorners(mgl64.Vec3{h, h, h})
	for i := range corners {
		corners[i] = rb.Transform.Rotation.Rotate(corners[i]).Add(rb.Transform.Position)
	}
	return corners
}

// Faces returns the 6 world space quads of the cube, see FaceIndices
func (rb *RigidBody) Faces() [6][4]mgl64.Vec3 {
	return FacesOf(rb.Corners())
}

// BoundingBox returns the AABB enclosing the rotated cube
func (rb *RigidBody) BoundingBox() AABB {
	corners := rb.Corners()

	min := corners[0]
	max := corners[0]
	for i := 1; i < 8; i++ {
		min[0] = math.Min(min[0], corners[i][0])
		min[1] = math.Min(min[1], corners[i][1])
		min[2] = math.Min(min[2], corners[i][2])

		max[0] = math.Max(max[0], corners[i][0])
		max[1] = math.Max(max[1], corners[i][1])
		max[2] = math.Max(max[2], corners[i][2])
	}

	return AABB{Min: min, Max: max}
}

// FacesOf groups 8 corners into quads following FaceIndices
func FacesOf(corners [8]mgl64.Vec3) [6][4]mgl64.Vec3 {
	var faces [6][4]mgl64.Vec3
	for f, idx := range FaceIndices {
		for i, c := range idx {
			faces[f][i] = corners[c]
		}
	}
	return faces
}
