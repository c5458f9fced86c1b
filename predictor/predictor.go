// Package predictor hands the motion history of bodies to sequence
// predictors and measures how far their forecasts land from the simulation.
package predictor

import (
	"context"
	"errors"

	"github.com/akmonengine/tumble/actor"
)

var (
	ErrInsufficientHistory = errors.New("insufficient history")
	ErrLengthMismatch      = errors.New("length mismatch")
	ErrInvalidParameters   = errors.New("invalid forecaster parameters")
)

// Predictor forecasts the next steps states following window, oldest first
type Predictor interface {
	Predict(ctx context.Context, window []actor.State, steps int) ([]actor.State, error)
}

// PredictorFunc adapts a function to the Predictor interface
type PredictorFunc func(ctx context.Context, window []actor.State, steps int) ([]actor.State, error)

func (f PredictorFunc) Predict(ctx context.Context, window []actor.State, steps int) ([]actor.State, error) {
	return f(ctx, window, steps)
}
