package predictor

import (
	"context"
	"fmt"

	"github.com/akmonengine/tumble/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Ballistic extrapolates the last state of the window under constant
// gravity, without drag nor contacts. The spin is kept constant and the
// rotation advanced with the exponential map. It is the physics baseline
// learned predictors are compared against.
type Ballistic struct {
	Gravity  float64
	Up       actor.Axis
	TimeStep float64
}

func NewBallistic(gravity float64, up actor.Axis, timeStep float64) Ballistic {
	return Ballistic{Gravity: gravity, Up: up, TimeStep: timeStep}
}

func (b Ballistic) Predict(ctx context.Context, window []actor.State, steps int) ([]actor.State, error) {
	if len(window) == 0 {
		return nil, ErrInsufficientHistory
	}

	body, err := actor.NewRigidBody(mgl64.Vec3{}, mgl64.Vec3{}, 1, 1)
	if err != nil {
		return nil, err
	}
	if err := body.SetStateVector(window[len(window)-1]); err != nil {
		return nil, fmt.Errorf("predictor: last state: %w", err)
	}

	dt := b.TimeStep
	a := b.Up.Unit().Mul(-b.Gravity)

	states := make([]actor.State, 0, max(steps, 0))
	for i := range steps {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		v := body.Velocity
		body.Transform.Position = body.Transform.Position.Add(v.Add(a.Mul(dt / 2)).Mul(dt))
		body.Velocity = v.Add(a.Mul(dt))
		body.IntegrateAngular(mgl64.Vec3{}, dt)

		states = append(states, body.StateVector())
	}

	return states, nil
}
