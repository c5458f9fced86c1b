package tumble

import (
	"errors"
	"fmt"

	"github.com/akmonengine/tumble/actor"
	"github.com/go-gl/mathgl/mgl64"
)

var ErrUnknownIntegrator = errors.New("unknown integrator")

// ForceModel computes the external loads on a body: gravity along -Up and
// quadratic drags.
type ForceModel struct {
	Gravity     float64 // m/s²
	Up          actor.Axis
	LinearDrag  float64
	AngularDrag float64
}

// Force returns gravity plus the air drag for the velocity v
func (f ForceModel) Force(rb *actor.RigidBody, v mgl64.Vec3) mgl64.Vec3 {
	gravity := f.Up.Unit().Mul(-f.Gravity * rb.Mass())
	drag := v.Mul(-f.LinearDrag * v.Len())
	return gravity.Add(drag)
}

func (f ForceModel) Torque(rb *actor.RigidBody) mgl64.Vec3 {
	return rb.AngularVelocity.Mul(-f.AngularDrag * rb.AngularVelocity.Len())
}

// Integrator advances the position and the velocity of a body
type Integrator interface {
	Name() string
	Integrate(rb *actor.RigidBody, forces ForceModel, dt float64)
}

// LegacyRK4 is the four stages scheme with the force evaluated once, at the
// start of the step. The stages collapse to
//
//	x += dt·(v + ½dt·a)
//	v += dt·a
//
// which is exact for a constant acceleration.
type LegacyRK4 struct{}

func (LegacyRK4) Name() string { return "legacy" }

func (LegacyRK4) Integrate(rb *actor.RigidBody, forces ForceModel, dt float64) {
	v := rb.Velocity
	a := forces.Force(rb, v).Mul(1 / rb.Mass())

	rb.Transform.Position = rb.Transform.Position.Add(v.Add(a.Mul(dt / 2)).Mul(dt))
	rb.Velocity = v.Add(a.Mul(dt))
}

// RK4 is the classic Runge-Kutta scheme, the drag being evaluated at every
// stage.
type RK4 struct{}

func (RK4) Name() string { return "rk4" }

func (RK4) Integrate(rb *actor.RigidBody, forces ForceModel, dt float64) {
	invMass := 1 / rb.Mass()
	accel := func(v mgl64.Vec3) mgl64.Vec3 {
		return forces.Force(rb, v).Mul(invMass)
	}

	v1 := rb.Velocity
	a1 := accel(v1)
	v2 := v1.Add(a1.Mul(dt / 2))
	a2 := accel(v2)
	v3 := v1.Add(a2.Mul(dt / 2))
	a3 := accel(v3)
	v4 := v1.Add(a3.Mul(dt))
	a4 := accel(v4)

	dx := v1.Add(v2.Mul(2)).Add(v3.Mul(2)).Add(v4).Mul(dt / 6)
	dv := a1.Add(a2.Mul(2)).Add(a3.Mul(2)).Add(a4).Mul(dt / 6)

	rb.Transform.Position = rb.Transform.Position.Add(dx)
	rb.Velocity = v1.Add(dv)
}

// ParseIntegrator returns the integrator named "legacy" or "rk4"
func ParseIntegrator(name string) (Integrator, error) {
	switch name {
	case "", "legacy":
		return LegacyRK4{}, nil
	case "rk4":
		return RK4{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownIntegrator, name)
}
