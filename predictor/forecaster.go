package predictor

import (
	"context"
	"fmt"
	"sync"

	"github.com/akmonengine/tumble/actor"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DEFAULT_SEQUENCE_LENGTH = 10
	DEFAULT_STEPS           = 10
	DEFAULT_QUEUE_SIZE      = 16
)

// Forecast is the outcome of one request
type Forecast struct {
	Body uuid.UUID
	// Window is the history the predictor was given, oldest first
	Window []actor.State
	States []actor.State
	Err    error
}

// Forecaster runs a predictor on the newest history window of bodies, off
// the simulation goroutine. A body has at most one request in flight, and
// at most QueueSize requests are pending or waiting to be read: a request
// holds its slot until its forecast is received from Results.
type Forecaster struct {
	predictor      Predictor
	sequenceLength int
	steps          int
	queueSize      int
	logger         *zap.Logger

	results chan Forecast
	wg      sync.WaitGroup

	mu       sync.Mutex
	inFlight map[uuid.UUID]bool
	// requests accepted and not yet sent to results
	pending int
	closed  bool
}

type ForecasterOption func(f *Forecaster)

// WithSequenceLength sets the number of history states given to the
// predictor
func WithSequenceLength(n int) ForecasterOption {
	return func(f *Forecaster) { f.sequenceLength = n }
}

// WithSteps sets the number of states requested from the predictor
func WithSteps(n int) ForecasterOption {
	return func(f *Forecaster) { f.steps = n }
}

func WithQueueSize(n int) ForecasterOption {
	return func(f *Forecaster) { f.queueSize = n }
}

func WithLogger(logger *zap.Logger) ForecasterOption {
	return func(f *Forecaster) {
		if logger != nil {
			f.logger = logger
		}
	}
}

func NewForecaster(p Predictor, opts ...ForecasterOption) (*Forecaster, error) {
	f := &Forecaster{
		predictor:      p,
		sequenceLength: DEFAULT_SEQUENCE_LENGTH,
		steps:          DEFAULT_STEPS,
		queueSize:      DEFAULT_QUEUE_SIZE,
		logger:         zap.NewNop(),
		inFlight:       make(map[uuid.UUID]bool),
	}
	for _, opt := range opts {
		opt(f)
	}

	if p == nil {
		return nil, fmt.Errorf("%w: no predictor", ErrInvalidParameters)
	}
	if f.sequenceLength < 1 || f.sequenceLength > actor.HistoryCapacity {
		return nil, fmt.Errorf("%w: sequence length %d not in [1,%d]", ErrInvalidParameters, f.sequenceLength, actor.HistoryCapacity)
	}
	if f.steps < 1 || f.queueSize < 1 {
		return nil, fmt.Errorf("%w: steps %d, queue size %d", ErrInvalidParameters, f.steps, f.queueSize)
	}

	f.results = make(chan Forecast, f.queueSize)
	return f, nil
}

func (f *Forecaster) SequenceLength() int {
	return f.sequenceLength
}

// Results delivers the forecasts in completion order. It is closed by Close.
func (f *Forecaster) Results() <-chan Forecast {
	return f.results
}

// Request snapshots the newest history window of body and forecasts it in
// the background. It never blocks: it returns false when the history is
// shorter than the sequence length, when a request for the body is already
// in flight, when the queue is full or after Close.
// Request must be called from the goroutine stepping body.
func (f *Forecaster) Request(ctx context.Context, body *actor.RigidBody) bool {
	if body.History().Len() < f.sequenceLength {
		return false
	}

	f.mu.Lock()
	if f.closed || f.inFlight[body.ID] {
		f.mu.Unlock()
		return false
	}
	if f.pending+len(f.results) >= f.queueSize {
		f.mu.Unlock()
		f.logger.Debug("forecast dropped, queue full", zap.Stringer("body", body.ID))
		return false
	}
	f.inFlight[body.ID] = true
	f.pending++
	f.wg.Add(1)
	f.mu.Unlock()

	window := body.History().Window(f.sequenceLength)
	go f.run(ctx, body.ID, window)

	return true
}

func (f *Forecaster) run(ctx context.Context, id uuid.UUID, window []actor.State) {
	defer f.wg.Done()

	states, err := f.predictor.Predict(ctx, window, f.steps)
	if err != nil {
		f.logger.Debug("forecast failed", zap.Stringer("body", id), zap.Error(err))
	}

	// pending plus buffered forecasts never exceed the capacity of results,
	// so the send does not block
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.inFlight, id)
	f.pending--
	f.results <- Forecast{Body: id, Window: window, States: states, Err: err}
}

// Close stops accepting requests, waits for the running ones and closes
// Results. Forecasts buffered before the close can still be read.
func (f *Forecaster) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	f.mu.Unlock()

	f.wg.Wait()
	close(f.results)
}
