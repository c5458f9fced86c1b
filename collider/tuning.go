package collider

import (
	"fmt"
	"math"
)

// Tuning holds the magnitudes of the collision responses. Every *Jitter,
// *Spin and *Diffusion value is the half-width of a uniform random term.
type Tuning struct {
	BoxMargin       float64 `yaml:"box_margin" toml:"box_margin"`
	BoxBounce       float64 `yaml:"box_bounce" toml:"box_bounce"`
	BoxBounceJitter float64 `yaml:"box_bounce_jitter" toml:"box_bounce_jitter"`
	BoxSpinJitter   float64 `yaml:"box_spin_jitter" toml:"box_spin_jitter"`

	SphereMargin       float64 `yaml:"sphere_margin" toml:"sphere_margin"`
	SphereBounce       float64 `yaml:"sphere_bounce" toml:"sphere_bounce"`
	SphereBounceJitter float64 `yaml:"sphere_bounce_jitter" toml:"sphere_bounce_jitter"`
	SphereSpin         float64 `yaml:"sphere_spin" toml:"sphere_spin"`

	PlatformOffset       float64 `yaml:"platform_offset" toml:"platform_offset"`
	PlatformBounce       float64 `yaml:"platform_bounce" toml:"platform_bounce"`
	PlatformBounceJitter float64 `yaml:"platform_bounce_jitter" toml:"platform_bounce_jitter"`
	PlatformFriction     float64 `yaml:"platform_friction" toml:"platform_friction"`
	PlatformDiffusion    float64 `yaml:"platform_diffusion" toml:"platform_diffusion"`

	// RestingSpeed is the reflected speed under which a platform contact
	// becomes a resting contact
	RestingSpeed float64 `yaml:"resting_speed" toml:"resting_speed"`
}

func DefaultTuning() Tuning {
	return Tuning{
		BoxMargin:       0.2,
		BoxBounce:       0.75,
		BoxBounceJitter: 0.1,
		BoxSpinJitter:   0.3,

		SphereMargin:       0.15,
		SphereBounce:       0.85,
		SphereBounceJitter: 0.05,
		SphereSpin:         0.2,

		PlatformOffset:       1e-3,
		PlatformBounce:       0.8,
		PlatformBounceJitter: 0.1,
		PlatformFriction:     0.9,
		PlatformDiffusion:    0.1,

		RestingSpeed: 0.3,
	}
}

// Deterministic returns a copy of t without any random term
func (t Tuning) Deterministic() Tuning {
	t.BoxBounceJitter = 0
	t.BoxSpinJitter = 0
	t.SphereBounceJitter = 0
	t.SphereSpin = 0
	t.PlatformBounceJitter = 0
	t.PlatformDiffusion = 0
	return t
}

// Validate requires finite, non-negative coefficients and a platform
// friction in [0,1]. A negative margin would leave bodies inside the
// colliders.
func (t Tuning) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"box_margin", t.BoxMargin},
		{"box_bounce", t.BoxBounce},
		{"box_bounce_jitter", t.BoxBounceJitter},
		{"box_spin_jitter", t.BoxSpinJitter},
		{"sphere_margin", t.SphereMargin},
		{"sphere_bounce", t.SphereBounce},
		{"sphere_bounce_jitter", t.SphereBounceJitter},
		{"sphere_spin", t.SphereSpin},
		{"platform_offset", t.PlatformOffset},
		{"platform_bounce", t.PlatformBounce},
		{"platform_bounce_jitter", t.PlatformBounceJitter},
		{"platform_friction", t.PlatformFriction},
		{"platform_diffusion", t.PlatformDiffusion},
		{"resting_speed", t.RestingSpeed},
	} {
		if !(f.value >= 0) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s %v", ErrInvalidTuning, f.name, f.value)
		}
	}
	if t.PlatformFriction > 1 {
		return fmt.Errorf("%w: platform_friction %v not in [0,1]", ErrInvalidTuning, t.PlatformFriction)
	}
	return nil
}
