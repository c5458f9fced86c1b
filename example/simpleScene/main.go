package main

import (
	"context"
	"fmt"
	"os"

	"github.com/akmonengine/tumble"
	"github.com/akmonengine/tumble/actor"
	"github.com/akmonengine/tumble/config"
	"github.com/akmonengine/tumble/internal/logging"
	"github.com/akmonengine/tumble/predictor"
	"go.uber.org/zap"
)

// comparison follows the simulation after a request, to score the forecast
type comparison struct {
	actual   []actor.State
	forecast *predictor.Forecast
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	if len(os.Args) > 1 {
		cfg, err := config.Load(os.Args[1])
		if err != nil {
			return config.Config{}, err
		}
		return *cfg, nil
	}

	cfg := config.Default()
	cfg.Scene = "basic"
	return cfg, nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Scenario == "" {
		cfg.Scenario = "basic"
	}
	scenario, err := config.LookupScenario(cfg.Scenario)
	if err != nil {
		return err
	}
	scenario.Apply(&cfg)

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	world, err := tumble.FromConfig(cfg, tumble.WithLogger(logger))
	if err != nil {
		return err
	}
	cube, err := tumble.NewScenarioBody(scenario, cfg)
	if err != nil {
		return err
	}
	bodies := []*actor.RigidBody{cube}

	world.Events.Subscribe(tumble.CONTACT_ENTER, func(e tumble.Event) {
		enter := e.(tumble.ContactEnterEvent)
		logger.Info("obstacle hit",
			zap.Int("collider", enter.Index),
			zap.String("kind", string(enter.Collider.Kind())),
			zap.Float64s("normal", enter.Normal[:]),
		)
	})
	world.Events.Subscribe(tumble.ON_REST, func(e tumble.Event) {
		logger.Info("cube at rest", zap.Float64s("position", cube.Transform.Position[:]))
	})
	world.Events.Subscribe(tumble.ON_FAULT, func(e tumble.Event) {
		logger.Error("cube faulted", zap.Error(e.(tumble.FaultEvent).Err))
	})

	ballistic := predictor.NewBallistic(cfg.Gravity, world.Up(), world.TimeStep)
	forecaster, err := predictor.NewForecaster(ballistic,
		predictor.WithSequenceLength(cfg.Predictor.SequenceLength),
		predictor.WithSteps(cfg.Predictor.Steps),
		predictor.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer forecaster.Close()

	fmt.Printf("Scenario %q: %d colliders, seed %d\n", scenario.Name, world.Colliders.Len(), world.Seed())

	ctx := context.Background()
	steps := int(scenario.Duration / world.TimeStep)
	var current *comparison

	for step := range steps {
		world.Step(bodies)

		if current != nil {
			current.actual = append(current.actual, cube.StateVector())
		}

		select {
		case forecast := <-forecaster.Results():
			if current != nil {
				current.forecast = &forecast
			}
		default:
		}

		if current != nil && current.forecast != nil && len(current.actual) >= len(current.forecast.States) {
			report(step, current)
			current = nil
		}

		if current == nil && step%50 == 0 && forecaster.Request(ctx, cube) {
			// the forecast starts at the current state
			current = &comparison{actual: []actor.State{cube.StateVector()}}
		}

		if step%60 == 0 {
			energy := world.Energy(bodies)
			fmt.Printf("t=%5.2fs  position=%6.2f  kinetic=%7.3f  total=%7.3f\n",
				float64(step)*world.TimeStep, cube.Transform.Position, energy.Kinetic, energy.Total())
		}
	}

	return nil
}

func report(step int, c *comparison) {
	if c.forecast.Err != nil {
		fmt.Printf("step %d: forecast failed: %v\n", step, c.forecast.Err)
		return
	}

	n := len(c.forecast.States)
	metrics, err := predictor.Accuracy(c.forecast.States, c.actual[:n])
	if err != nil {
		fmt.Printf("step %d: %v\n", step, err)
		return
	}
	fmt.Printf("step %d: ballistic forecast over %d steps, position RMSE %.4f m, velocity RMSE %.4f m/s\n",
		step, n, metrics.PositionRMSE, metrics.VelocityRMSE)
}
