package constraint

import (
	"math"

	"github.com/akmonengine/tumble/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// BoundaryContact reports one wall correction
type BoundaryContact struct {
	Axis   actor.Axis
	Upper  bool       // max side of the axis
	Depth  float64    // penetration before correction
	Normal mgl64.Vec3 // pointing into the domain
}

// Boundary keeps bodies inside the domain. The walls of the Up axis are
// the ground and the ceiling: they apply the body friction and couple the
// sliding velocity into spin. The other walls only add spin: with (h1, h2)
// the horizontal pair of Up, an h2 wall spins the body around Up and an h1
// wall spins it around h2.
type Boundary struct {
	Bounds Bounds
	Up     actor.Axis

	// RestingSpeed is the reflected speed under which a ground or ceiling
	// contact stops the body along Up
	RestingSpeed       float64
	GroundSpinCoupling float64
	WallSpinCoupling   float64

	// applied once per tick when any wall was hit
	LinearDamping  float64
	AngularDamping float64
}

// NewBoundary validates bounds and returns a resolver with the default
// coefficients
func NewBoundary(bounds Bounds, up actor.Axis) (*Boundary, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	if !up.Valid() {
		return nil, actor.ErrUnknownAxis
	}

	return &Boundary{
		Bounds:             bounds,
		Up:                 up,
		RestingSpeed:       0.3,
		GroundSpinCoupling: 0.2,
		WallSpinCoupling:   0.1,
		LinearDamping:      0.98,
		AngularDamping:     0.95,
	}, nil
}

// Resolve pushes the rotated bounding box of rb back inside the bounds, one
// axis at a time, and reflects the velocity with the body restitution. It
// returns one contact per corrected wall, or nil.
func (b *Boundary) Resolve(rb *actor.RigidBody) []BoundaryContact {
	var contacts []BoundaryContact
	aabb := rb.BoundingBox()

	for a := actor.AxisX; a <= actor.AxisZ; a++ {
		var contact BoundaryContact

		if lo := b.Bounds[a][0]; aabb.Min[a] < lo {
			contact = BoundaryContact{Axis: a, Depth: lo - aabb.Min[a]}
			contact.Normal[a] = 1
			rb.Transform.Position[a] += contact.Depth
		} else if hi := b.Bounds[a][1]; aabb.Max[a] > hi {
			contact = BoundaryContact{Axis: a, Upper: true, Depth: aabb.Max[a] - hi}
			contact.Normal[a] = -1
			rb.Transform.Position[a] -= contact.Depth
		} else {
			continue
		}

		b.reflect(rb, contact)
		contacts = append(contacts, contact)
	}

	if len(contacts) > 0 {
		rb.Velocity = rb.Velocity.Mul(b.LinearDamping)
		rb.AngularVelocity = rb.AngularVelocity.Mul(b.AngularDamping)
		clampSmallVelocities(rb)
	}

	return contacts
}

func (b *Boundary) reflect(rb *actor.RigidBody, contact BoundaryContact) {
	a := contact.Axis
	material := rb.Material()

	// only the component going through the wall is reflected
	if rb.Velocity[a]*contact.Normal[a] < 0 {
		rb.Velocity[a] = -rb.Velocity[a] * material.Restitution
	}

	h1, h2 := b.Up.Horizontal()
	switch a {
	case h2:
		rb.AngularVelocity[b.Up] += b.WallSpinCoupling * rb.Velocity[a]
		return
	case h1:
		rb.AngularVelocity[h2] += b.WallSpinCoupling * rb.Velocity[a]
		return
	}

	normalSpeed := math.Abs(rb.Velocity[a])
	if normalSpeed < b.RestingSpeed {
		rb.Velocity[a] = 0
	}

	var tangent mgl64.Vec3
	tangent[h1] = rb.Velocity[h1]
	tangent[h2] = rb.Velocity[h2]

	if speed := tangent.Len(); speed > 0 {
		reduced := speed - math.Min(material.Friction*normalSpeed, speed)
		tangent = tangent.Mul(reduced / speed)
		rb.Velocity[h1] = tangent[h1]
		rb.Velocity[h2] = tangent[h2]
	}

	rb.AngularVelocity = rb.AngularVelocity.Add(contact.Normal.Cross(tangent).Mul(b.GroundSpinCoupling))
}
