package collider

import (
	"github.com/akmonengine/tumble/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// tangentEpsilon is the length under which n × up is considered degenerate
const tangentEpsilon = 1e-9

type Sphere struct {
	desc   Descriptor
	center mgl64.Vec3
	radius float64
	up     actor.Axis
	tuning Tuning
}

func newSphere(desc Descriptor, up actor.Axis, tuning Tuning) *Sphere {
	return &Sphere{
		desc:   desc,
		center: mgl64.Vec3(desc.Position),
		radius: desc.Size[0],
		up:     up,
		tuning: tuning,
	}
}

func (s *Sphere) Kind() Kind             { return KindSphere }
func (s *Sphere) Descriptor() Descriptor { return s.desc }
func (s *Sphere) Center() mgl64.Vec3     { return s.center }
func (s *Sphere) Radius() float64        { return s.radius }

func (s *Sphere) Bounds() actor.AABB {
	r := mgl64.Vec3{s.radius, s.radius, s.radius}
	return actor.AABB{Min: s.center.Sub(r), Max: s.center.Add(r)}
}

// Overlaps compares the distance between the centers to radius + edge/2
func (s *Sphere) Overlaps(position mgl64.Vec3, edge float64) bool {
	return position.Sub(s.center).Len() < s.radius+edge/2
}

// Respond moves the cube radially to radius + edge/2 + SphereMargin from the
// center, reflects its velocity about the radial normal and adds a random
// tangential component around the up axis.
func (s *Sphere) Respond(position, velocity mgl64.Vec3, edge float64, rng Rand) (mgl64.Vec3, mgl64.Vec3, mgl64.Vec3) {
	if !s.Overlaps(position, edge) {
		return position, velocity, mgl64.Vec3{}
	}

	up := s.up.Unit()

	normal := up
	d := position.Sub(s.center)
	if dist := d.Len(); dist > 0 {
		normal = d.Mul(1 / dist)
	}

	newPosition := s.center.Add(normal.Mul(s.radius + edge/2 + s.tuning.SphereMargin))

	bounce := s.tuning.SphereBounce + uniform(rng, s.tuning.SphereBounceJitter)
	newVelocity := reflect(velocity, normal).Mul(bounce)

	tangent := normal.Cross(up)
	if tangent.Len() > tangentEpsilon {
		newVelocity = newVelocity.Add(tangent.Normalize().Mul(uniform(rng, s.tuning.SphereSpin)))
	}

	return newPosition, newVelocity, normal
}
