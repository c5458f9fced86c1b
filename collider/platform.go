package collider

import (
	"math"

	"github.com/akmonengine/tumble/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Platform is a one-sided slab: only its top face, facing the up axis, stops
// a cube. A cube coming from below is lifted on top of it.
type Platform struct {
	desc   Descriptor
	center mgl64.Vec3
	half   mgl64.Vec3
	up     actor.Axis
	tuning Tuning
}

func newPlatform(desc Descriptor, up actor.Axis, tuning Tuning) *Platform {
	return &Platform{
		desc:   desc,
		center: mgl64.Vec3(desc.Position),
		half:   mgl64.Vec3(desc.Size).Mul(0.5),
		up:     up,
		tuning: tuning,
	}
}

func (p *Platform) Kind() Kind              { return KindPlatform }
func (p *Platform) Descriptor() Descriptor  { return p.desc }
func (p *Platform) HalfExtents() mgl64.Vec3 { return p.half }

// Top is the height of the collidable face along the up axis
func (p *Platform) Top() float64 {
	return p.center[p.up] + p.half[p.up]
}

func (p *Platform) Bottom() float64 {
	return p.center[p.up] - p.half[p.up]
}

func (p *Platform) Bounds() actor.AABB {
	return actor.AABB{Min: p.center.Sub(p.half), Max: p.center.Add(p.half)}
}

// Corners returns the 8 world space vertices, in actor.BoxCorners order
func (p *Platform) Corners() [8]mgl64.Vec3 {
	corners := actor.BoxCorners(p.half)
	for i := range corners {
		corners[i] = corners[i].Add(p.center)
	}
	return corners
}

// Overlaps requires the cube footprint to overlap the platform footprint and
// the bottom face of the cube to lie between the bottom and the top of the
// platform.
func (p *Platform) Overlaps(position mgl64.Vec3, edge float64) bool {
	h1, h2 := p.up.Horizontal()
	for _, h := range [2]actor.Axis{h1, h2} {
		if math.Abs(position[h]-p.center[h]) >= p.half[h]+edge/2 {
			return false
		}
	}

	bottom := position[p.up] - edge/2
	return bottom >= p.Bottom() && bottom <= p.Top()
}

// Respond places the cube on the top face. A downward velocity is reflected
// with PlatformBounce; under RestingSpeed the contact becomes a resting one.
// The horizontal velocity is damped by PlatformFriction, and diffused only
// on a real bounce.
func (p *Platform) Respond(position, velocity mgl64.Vec3, edge float64, rng Rand) (mgl64.Vec3, mgl64.Vec3, mgl64.Vec3) {
	if !p.Overlaps(position, edge) {
		return position, velocity, mgl64.Vec3{}
	}

	h1, h2 := p.up.Horizontal()

	newPosition := position
	newPosition[p.up] = p.Top() + edge/2 + p.tuning.PlatformOffset

	newVelocity := velocity
	newVelocity[h1] *= p.tuning.PlatformFriction
	newVelocity[h2] *= p.tuning.PlatformFriction

	if velocity[p.up] < 0 {
		bounce := p.tuning.PlatformBounce + uniform(rng, p.tuning.PlatformBounceJitter)
		reflected := -velocity[p.up] * bounce
		if reflected < p.tuning.RestingSpeed {
			newVelocity[p.up] = 0
		} else {
			newVelocity[p.up] = reflected
			newVelocity[h1] += uniform(rng, p.tuning.PlatformDiffusion)
			newVelocity[h2] += uniform(rng, p.tuning.PlatformDiffusion)
		}
	}

	return newPosition, newVelocity, p.up.Unit()
}
