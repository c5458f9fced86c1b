package tumble

import (
	"github.com/akmonengine/tumble/actor"
	"github.com/akmonengine/tumble/collider"
	"github.com/akmonengine/tumble/config"
	"github.com/go-gl/mathgl/mgl64"
)

// FromConfig builds a world from a validated config. The preset named by
// Scene comes first in the collider set, followed by the custom colliders.
// opts are applied after the config and take precedence.
func FromConfig(cfg config.Config, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	up, err := cfg.Up()
	if err != nil {
		return nil, err
	}
	integrator, err := ParseIntegrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	tuning := cfg.ColliderTuning()

	var descs []collider.Descriptor
	if cfg.Scene != "" {
		preset, err := collider.Preset(cfg.Scene)
		if err != nil {
			return nil, err
		}
		for _, d := range preset {
			descs = append(descs, d.Oriented(up))
		}
	}
	descs = append(descs, cfg.Colliders...)

	set, err := collider.NewSet(descs, up, tuning)
	if err != nil {
		return nil, err
	}

	options := []Option{
		WithGravity(cfg.Gravity),
		WithUpAxis(up),
		WithBounds(cfg.Bounds),
		WithTimeStep(cfg.TimeStep),
		WithDrag(cfg.AirDrag, cfg.AngularDrag),
		WithIntegrator(integrator),
		WithTuning(tuning),
		WithColliders(set),
		WithWorkers(cfg.Workers),
		WithRestThresholds(cfg.Rest.Velocity, cfg.Rest.Time),
	}
	if cfg.Seed != 0 {
		options = append(options, WithSeed(cfg.Seed))
	}

	w, err := NewWorld(append(options, opts...)...)
	if err != nil {
		return nil, err
	}

	w.Boundary.RestingSpeed = cfg.RestingSpeed
	w.Boundary.LinearDamping = cfg.Boundary.LinearDamping
	w.Boundary.AngularDamping = cfg.Boundary.AngularDamping
	w.Boundary.GroundSpinCoupling = cfg.Boundary.GroundSpin
	w.Boundary.WallSpinCoupling = cfg.Boundary.WallSpin

	return w, nil
}

// NewScenarioBody builds the cube launched by a scenario, with the config
// friction. Scenario coordinates are y-up and are carried to the up axis the
// same way as the preset scenes.
func NewScenarioBody(s config.Scenario, cfg config.Config) (*actor.RigidBody, error) {
	up, err := cfg.Up()
	if err != nil {
		return nil, err
	}

	position := yUpTo(up, s.Position)
	velocity := yUpTo(up, s.Velocity)
	body, err := actor.NewRigidBody(position, velocity, s.EdgeLength, s.Mass)
	if err != nil {
		return nil, err
	}

	err = body.SetMaterial(actor.Material{Restitution: s.Restitution, Friction: cfg.Material.Friction})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// yUpTo maps (h1, up, h2) given in a y-up frame onto the horizontal pair and
// the up axis of another frame
func yUpTo(up actor.Axis, v [3]float64) mgl64.Vec3 {
	h1, h2 := actor.AxisY.Horizontal()
	var out mgl64.Vec3
	u1, u2 := up.Horizontal()
	out[u1] = v[h1]
	out[u2] = v[h2]
	out[up] = v[actor.AxisY]
	return out
}
