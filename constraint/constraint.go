package constraint

import (
	"errors"
	"fmt"
	"math"

	"github.com/akmonengine/tumble/actor"
	"github.com/go-gl/mathgl/mgl64"
)

var ErrInvalidBounds = errors.New("invalid domain bounds")

// Bounds is the simulation domain, as [(xmin,xmax), (ymin,ymax), (zmin,zmax)]
type Bounds [3][2]float64

// DefaultBounds is a 20m wide domain with the ground at y=0
func DefaultBounds() Bounds {
	return Bounds{{-10, 10}, {0, 20}, {-10, 10}}
}

// Validate requires finite bounds with min < max on every axis
func (b Bounds) Validate() error {
	for i, r := range b {
		if math.IsNaN(r[0]) || math.IsNaN(r[1]) || math.IsInf(r[0], 0) || math.IsInf(r[1], 0) {
			return fmt.Errorf("%w: %v axis is not finite", ErrInvalidBounds, actor.Axis(i))
		}
		if r[0] >= r[1] {
			return fmt.Errorf("%w: %v axis min %v >= max %v", ErrInvalidBounds, actor.Axis(i), r[0], r[1])
		}
	}
	return nil
}

func (b Bounds) AABB() actor.AABB {
	return actor.AABB{
		Min: mgl64.Vec3{b[0][0], b[1][0], b[2][0]},
		Max: mgl64.Vec3{b[0][1], b[1][1], b[2][1]},
	}
}

// Ground is the lower bound of the up axis
func (b Bounds) Ground(up actor.Axis) float64 {
	return b[up][0]
}

func clampSmallVelocities(rb *actor.RigidBody) {
	const velocityThreshold = 1e-9

	if rb.Velocity.Len() < velocityThreshold {
		rb.Velocity = mgl64.Vec3{0, 0, 0}
	}
	if rb.AngularVelocity.Len() < velocityThreshold {
		rb.AngularVelocity = mgl64.Vec3{0, 0, 0}
	}
}
