package tumble

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/akmonengine/tumble/actor"
	"github.com/akmonengine/tumble/collider"
	"github.com/akmonengine/tumble/constraint"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

const (
	DEFAULT_WORKERS   = 1
	DEFAULT_TIME_STEP = 0.016
	DEFAULT_GRAVITY   = 9.81
)

var (
	ErrNumericInstability = errors.New("numeric instability")
	ErrInvalidBounds      = constraint.ErrInvalidBounds
	ErrInvalidWorld       = errors.New("invalid world parameters")
)

// World steps independent cubes against a static scene: a set of colliders
// and the walls of the domain. Bodies never collide with each other.
type World struct {
	// Fixed time step (s)
	TimeStep   float64
	Forces     ForceModel
	Integrator Integrator
	Colliders  *collider.Set
	Boundary   *constraint.Boundary
	// A body slower than RestVelocity for RestTime is flagged as resting
	RestVelocity float64
	RestTime     float64
	Workers      int

	Events Events

	seed      uint64
	newSource func(seed1, seed2 uint64) collider.Rand
	streams   map[*actor.RigidBody]collider.Rand
	recorder  recorder
	logger   *zap.Logger

	bounds     constraint.Bounds
	tuning     collider.Tuning
	presetName string
}

// NewWorld builds a y-up world with the default domain, no collider, and a
// random seed.
func NewWorld(opts ...Option) (*World, error) {
	w := &World{
		TimeStep: DEFAULT_TIME_STEP,
		Forces: ForceModel{
			Gravity:     DEFAULT_GRAVITY,
			Up:          actor.AxisY,
			LinearDrag:  0.01,
			AngularDrag: 0.1,
		},
		Integrator:   LegacyRK4{},
		RestVelocity: 0.05,
		RestTime:     0.1,
		Workers:      DEFAULT_WORKERS,
		Events:       NewEvents(),
		seed:         rand.Uint64(),
		newSource:    newPCG,
		streams:      make(map[*actor.RigidBody]collider.Rand),
		logger:       zap.NewNop(),
		bounds:       constraint.DefaultBounds(),
		tuning:       collider.DefaultTuning(),
	}

	for _, opt := range opts {
		opt(w)
	}

	if !(w.TimeStep > 0) {
		return nil, fmt.Errorf("%w: time step %v", ErrInvalidWorld, w.TimeStep)
	}
	if w.Forces.Gravity < 0 {
		return nil, fmt.Errorf("%w: gravity %v", ErrInvalidWorld, w.Forces.Gravity)
	}
	if w.Integrator == nil {
		return nil, fmt.Errorf("%w: no integrator", ErrInvalidWorld)
	}

	boundary, err := constraint.NewBoundary(w.bounds, w.Forces.Up)
	if err != nil {
		return nil, err
	}
	w.Boundary = boundary

	if w.presetName != "" {
		set, err := collider.NewPresetSet(w.presetName, w.Forces.Up, w.tuning)
		if err != nil {
			return nil, err
		}
		w.Colliders = set
	}

	w.logger.Debug("world created",
		zap.Stringer("up", w.Forces.Up),
		zap.String("integrator", w.Integrator.Name()),
		zap.Int("colliders", w.Colliders.Len()),
		zap.Uint64("seed", w.seed),
	)

	return w, nil
}

// Up returns the vertical axis of the world
func (w *World) Up() actor.Axis {
	return w.Forces.Up
}

func (w *World) Seed() uint64 {
	return w.seed
}

// Step advances every body by one time step. Faulted bodies are skipped;
// a body becoming non-finite is faulted without affecting the others.
func (w *World) Step(bodies []*actor.RigidBody) {
	w.recorder.reset()
	for _, body := range bodies {
		w.stepBody(body, w.stream(body), &w.recorder)
	}

	w.Events.merge(&w.recorder)
	w.Events.processRestEvents(bodies)
	w.Events.flush()
}

// StepBatches steps each batch on its own goroutine, at most Workers at a
// time. Bodies draw from their own random streams, so the states reached do
// not depend on scheduling nor on how bodies are split into batches. A body
// must not appear in two batches. Events are sent after all batches, in
// batch order.
func (w *World) StepBatches(ctx context.Context, batches [][]*actor.RigidBody) error {
	// the goroutines only read the stream map
	for _, batch := range batches {
		for _, body := range batch {
			w.stream(body)
		}
	}

	recorders := make([]recorder, len(batches))
	err := task(ctx, w.Workers, batches, func(i int, batch []*actor.RigidBody) {
		for _, body := range batch {
			w.stepBody(body, w.streams[body], &recorders[i])
		}
	})

	for i := range recorders {
		w.Events.merge(&recorders[i])
	}
	for _, batch := range batches {
		w.Events.processRestEvents(batch)
	}
	w.Events.flush()

	if err != nil {
		w.logger.Debug("batch step interrupted", zap.Error(err))
		return err
	}
	return nil
}

// stream returns the jitter source of body, seeded from the world seed and
// the state the body has the first time the world steps it
func (w *World) stream(body *actor.RigidBody) collider.Rand {
	rng, ok := w.streams[body]
	if !ok {
		rng = w.newSource(bodySeed(w.seed, body))
		w.streams[body] = rng
	}
	return rng
}

func (w *World) stepBody(body *actor.RigidBody, rng collider.Rand, rec *recorder) {
	if body.Err() != nil {
		return
	}
	dt := w.TimeStep

	body.RecordHistory()

	torque := w.Forces.Torque(body)
	w.Integrator.Integrate(body, w.Forces, dt)
	body.IntegrateAngular(torque, dt)

	w.resolveColliders(body, rng, rec)

	for _, contact := range w.Boundary.Resolve(body) {
		rec.emit(BoundaryEvent{Body: body, Contact: contact})
	}

	if !body.Finite() {
		err := fmt.Errorf("%w: body %s", ErrNumericInstability, body.ID)
		body.Fail(err)
		w.logger.Warn("body excluded from the simulation",
			zap.Stringer("body", body.ID),
			zap.Error(err),
		)
		rec.emit(FaultEvent{Body: body, Err: err})
		return
	}

	body.TryRest(dt, w.RestTime, w.RestVelocity)
}

// resolveColliders tests the colliders in set order, each one against the
// position corrected by the previous ones
func (w *World) resolveColliders(body *actor.RigidBody, rng collider.Rand, rec *recorder) {
	edge := body.EdgeLength()
	rec.candidates = w.Colliders.Candidates(body.Transform.Position, edge, rec.candidates[:0])

	for k := 0; k < len(rec.candidates); k++ {
		i := rec.candidates[k]
		c := w.Colliders.At(i)
		if !c.Overlaps(body.Transform.Position, edge) {
			continue
		}

		var normal mgl64.Vec3
		body.Transform.Position, body.Velocity, normal = c.Respond(body.Transform.Position, body.Velocity, edge, rng)
		rec.contact(body, i, c, normal)

		// the body moved: look the colliders after i up again
		rec.candidates = w.Colliders.Candidates(body.Transform.Position, edge, rec.candidates[:0])
		k = sort.SearchInts(rec.candidates, i+1) - 1
	}
}

// Reset puts body back at position with velocity, unrotated, and clears its
// history and fault. The world forgets its contacts, rest state and random
// stream: the body then replays like a new one spawned there.
func (w *World) Reset(body *actor.RigidBody, position, velocity mgl64.Vec3) {
	body.Reset(position, velocity)
	w.Forget(body)
}

// Forget drops the event tracking and random stream of a body that will no
// longer be stepped
func (w *World) Forget(body *actor.RigidBody) {
	w.Events.forget(body)
	delete(w.streams, body)
}
