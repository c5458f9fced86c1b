package tumble

import (
	"github.com/akmonengine/tumble/actor"
	"github.com/akmonengine/tumble/collider"
	"github.com/akmonengine/tumble/constraint"
	"go.uber.org/zap"
)

type Option func(w *World)

func WithGravity(g float64) Option {
	return func(w *World) { w.Forces.Gravity = g }
}

// WithUpAxis sets the axis opposite to gravity. It also drives the ground
// of the boundary, the platforms and the potential energy.
func WithUpAxis(up actor.Axis) Option {
	return func(w *World) { w.Forces.Up = up }
}

func WithTimeStep(dt float64) Option {
	return func(w *World) { w.TimeStep = dt }
}

func WithDrag(linear, angular float64) Option {
	return func(w *World) {
		w.Forces.LinearDrag = linear
		w.Forces.AngularDrag = angular
	}
}

func WithBounds(bounds constraint.Bounds) Option {
	return func(w *World) { w.bounds = bounds }
}

func WithIntegrator(integrator Integrator) Option {
	return func(w *World) { w.Integrator = integrator }
}

// WithColliders uses a prebuilt set; it must be oriented for the world up axis
func WithColliders(set *collider.Set) Option {
	return func(w *World) {
		w.Colliders = set
		w.presetName = ""
	}
}

// WithPreset builds the named scene for the world up axis
func WithPreset(name string) Option {
	return func(w *World) { w.presetName = name }
}

// WithTuning sets the collider tuning used by WithPreset
func WithTuning(tuning collider.Tuning) Option {
	return func(w *World) { w.tuning = tuning }
}

// WithSeed seeds the random streams of the bodies
func WithSeed(seed uint64) Option {
	return func(w *World) { w.seed = seed }
}

// WithRandSource replaces the PCG built for each body stream. newSource is
// called with the seed derived for the body.
func WithRandSource(newSource func(seed1, seed2 uint64) collider.Rand) Option {
	return func(w *World) {
		if newSource != nil {
			w.newSource = newSource
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

func WithWorkers(n int) Option {
	return func(w *World) { w.Workers = max(DEFAULT_WORKERS, n) }
}

func WithRestThresholds(velocity, time float64) Option {
	return func(w *World) {
		w.RestVelocity = velocity
		w.RestTime = time
	}
}
