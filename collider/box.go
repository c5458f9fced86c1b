package collider

import (
	"math"

	"github.com/akmonengine/tumble/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Box is an axis-aligned solid box
type Box struct {
	desc   Descriptor
	center mgl64.Vec3
	half   mgl64.Vec3
	tuning Tuning
}

func newBox(desc Descriptor, tuning Tuning) *Box {
	return &Box{
		desc:   desc,
		center: mgl64.Vec3(desc.Position),
		half:   mgl64.Vec3(desc.Size).Mul(0.5),
		tuning: tuning,
	}
}

func (b *Box) Kind() Kind             { return KindBox }
func (b *Box) Descriptor() Descriptor { return b.desc }

// HalfExtents returns the half-width, half-depth and half-height of the box
func (b *Box) HalfExtents() mgl64.Vec3 { return b.half }

func (b *Box) Bounds() actor.AABB {
	return actor.AABB{Min: b.center.Sub(b.half), Max: b.center.Add(b.half)}
}

// Corners returns the 8 world space vertices, in actor.BoxCorners order
func (b *Box) Corners() [8]mgl64.Vec3 {
	corners := actor.BoxCorners(b.half)
	for i := range corners {
		corners[i] = corners[i].Add(b.center)
	}
	return corners
}

func (b *Box) Overlaps(position mgl64.Vec3, edge float64) bool {
	return actor.CubeAABB(position, edge).Overlaps(b.Bounds())
}

// Respond separates the cube along the axis of least penetration, leaving a
// BoxMargin gap, then reflects the velocity about that axis.
func (b *Box) Respond(position, velocity mgl64.Vec3, edge float64, rng Rand) (mgl64.Vec3, mgl64.Vec3, mgl64.Vec3) {
	if !b.Overlaps(position, edge) {
		return position, velocity, mgl64.Vec3{}
	}

	axis, sign := b.leastPenetration(position, edge)

	var normal mgl64.Vec3
	normal[axis] = sign

	newPosition := position
	newPosition[axis] = b.center[axis] + sign*(b.half[axis]+edge/2+b.tuning.BoxMargin)

	bounce := b.tuning.BoxBounce + uniform(rng, b.tuning.BoxBounceJitter)
	newVelocity := reflect(velocity, normal).Mul(bounce)

	// unmodeled spin
	newVelocity = newVelocity.Add(mgl64.Vec3{
		uniform(rng, b.tuning.BoxSpinJitter),
		uniform(rng, b.tuning.BoxSpinJitter),
		uniform(rng, b.tuning.BoxSpinJitter),
	})

	return newPosition, newVelocity, normal
}

func (b *Box) leastPenetration(position mgl64.Vec3, edge float64) (int, float64) {
	axis := 0
	sign := 1.0
	best := math.Inf(1)

	for i := range 3 {
		d := position[i] - b.center[i]
		penetration := b.half[i] + edge/2 - math.Abs(d)
		if penetration < best {
			best = penetration
			axis = i
			sign = 1
			if d < 0 {
				sign = -1
			}
		}
	}

	return axis, sign
}
