package tumble

import (
	"errors"
	"testing"

	"github.com/akmonengine/tumble/actor"
	"github.com/akmonengine/tumble/collider"
	"github.com/akmonengine/tumble/config"
	"github.com/go-gl/mathgl/mgl64"
)

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Scene = "basic"
	cfg.Seed = 5
	cfg.Integrator = "rk4"
	cfg.Workers = 3
	cfg.Boundary.GroundSpin = 0.4
	cfg.RestingSpeed = 0.2
	cfg.Colliders = []collider.Descriptor{
		{Kind: collider.KindBox, Position: [3]float64{4, 2, 4}, Size: [3]float64{1, 1, 1}},
	}

	w, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}

	if w.Seed() != 5 {
		t.Errorf("Seed = %d, want 5", w.Seed())
	}
	if w.Integrator.Name() != "rk4" {
		t.Errorf("Integrator = %s", w.Integrator.Name())
	}
	if w.Workers != 3 {
		t.Errorf("Workers = %d", w.Workers)
	}
	if w.Colliders.Len() != 4 {
		t.Fatalf("Expected 3 preset colliders and 1 custom, got %d", w.Colliders.Len())
	}
	if w.Colliders.At(3).Kind() != collider.KindBox {
		t.Errorf("Expected the custom collider last, got %s", w.Colliders.At(3).Kind())
	}
	if w.Boundary.GroundSpinCoupling != 0.4 || w.Boundary.RestingSpeed != 0.2 {
		t.Errorf("Boundary = %+v", w.Boundary)
	}
	if w.Boundary.LinearDamping != cfg.Boundary.LinearDamping {
		t.Errorf("LinearDamping = %v", w.Boundary.LinearDamping)
	}
}

func TestFromConfig_OptionsOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 5

	w, err := FromConfig(cfg, WithSeed(9), WithTimeStep(0.01))
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if w.Seed() != 9 || w.TimeStep != 0.01 {
		t.Errorf("Seed = %d, TimeStep = %v", w.Seed(), w.TimeStep)
	}
}

func TestFromConfig_Invalid(t *testing.T) {
	cfg := config.Default()
	cfg.TimeStep = -1

	_, err := FromConfig(cfg)
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestNewScenarioBody(t *testing.T) {
	scenario, err := config.LookupScenario("basic")
	if err != nil {
		t.Fatalf("LookupScenario: %v", err)
	}

	cfg := config.Default()
	body, err := NewScenarioBody(scenario, cfg)
	if err != nil {
		t.Fatalf("NewScenarioBody: %v", err)
	}
	if body.Transform.Position != (mgl64.Vec3{0, 15, 0}) || body.Velocity != (mgl64.Vec3{1, 0, 0.5}) {
		t.Errorf("y-up state = %v, %v", body.Transform.Position, body.Velocity)
	}
	if body.EdgeLength() != 1.5 || body.Material().Restitution != 0.7 {
		t.Errorf("edge = %v, material = %+v", body.EdgeLength(), body.Material())
	}

	cfg.UpAxis = "z"
	body, err = NewScenarioBody(scenario, cfg)
	if err != nil {
		t.Fatalf("NewScenarioBody: %v", err)
	}
	if body.Transform.Position != (mgl64.Vec3{0, 0, 15}) {
		t.Errorf("z-up position = %v, want {0 0 15}", body.Transform.Position)
	}
	// height stays on the up axis and the frame stays right-handed
	if body.Velocity != (mgl64.Vec3{0.5, 1, 0}) {
		t.Errorf("z-up velocity = %v, want {0.5 1 0}", body.Velocity)
	}
	if body.Transform.Position[actor.AxisZ] != scenario.Position[1] {
		t.Error("height not carried to the up axis")
	}
}
