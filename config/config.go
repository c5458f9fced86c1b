package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/akmonengine/tumble/actor"
	"github.com/akmonengine/tumble/collider"
	"github.com/akmonengine/tumble/constraint"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidConfig     = errors.New("invalid config")
	ErrUnknownFormat     = errors.New("unknown config format")
	ErrUnknownScenario   = errors.New("unknown scenario")
	errUnknownIntegrator = errors.New("integrator must be legacy or rk4")
)

// Config describes a simulation. It can be read from YAML or TOML; keys
// missing from the file keep their Default value.
type Config struct {
	Gravity     float64           `yaml:"gravity" toml:"gravity"`
	UpAxis      string            `yaml:"up_axis" toml:"up_axis"`
	Bounds      constraint.Bounds `yaml:"bounds" toml:"bounds"`
	TimeStep    float64           `yaml:"time_step" toml:"time_step"`
	AirDrag     float64           `yaml:"air_drag" toml:"air_drag"`
	AngularDrag float64           `yaml:"angular_drag" toml:"angular_drag"`
	// legacy or rk4
	Integrator string `yaml:"integrator" toml:"integrator"`

	Material Material `yaml:"material" toml:"material"`
	// RestingSpeed applies to the ground, the ceiling and the platforms
	RestingSpeed float64  `yaml:"resting_speed" toml:"resting_speed"`
	Rest         Rest     `yaml:"rest" toml:"rest"`
	Boundary     Boundary `yaml:"boundary" toml:"boundary"`

	Workers int `yaml:"workers" toml:"workers"`
	// 0 picks a random seed
	Seed uint64 `yaml:"seed" toml:"seed"`

	// Scene is an optional preset name; Colliders are appended after it, in
	// world coordinates
	Scene     string                `yaml:"scene" toml:"scene"`
	Colliders []collider.Descriptor `yaml:"colliders" toml:"colliders"`
	Tuning    collider.Tuning       `yaml:"tuning" toml:"tuning"`

	LogLevel  string    `yaml:"log_level" toml:"log_level"`
	Predictor Predictor `yaml:"predictor" toml:"predictor"`
	Scenario  string    `yaml:"scenario" toml:"scenario"`
}

type Material struct {
	Restitution float64 `yaml:"restitution" toml:"restitution"`
	Friction    float64 `yaml:"friction" toml:"friction"`
}

func (m Material) Actor() actor.Material {
	return actor.Material{Restitution: m.Restitution, Friction: m.Friction}
}

type Rest struct {
	Velocity float64 `yaml:"velocity" toml:"velocity"`
	Time     float64 `yaml:"time" toml:"time"`
}

type Boundary struct {
	LinearDamping  float64 `yaml:"linear_damping" toml:"linear_damping"`
	AngularDamping float64 `yaml:"angular_damping" toml:"angular_damping"`
	GroundSpin     float64 `yaml:"ground_spin" toml:"ground_spin"`
	WallSpin       float64 `yaml:"wall_spin" toml:"wall_spin"`
}

type Predictor struct {
	SequenceLength int `yaml:"sequence_length" toml:"sequence_length"`
	Steps          int `yaml:"steps" toml:"steps"`
}

func Default() Config {
	m := actor.DefaultMaterial()
	return Config{
		Gravity:     9.81,
		UpAxis:      "y",
		Bounds:      constraint.DefaultBounds(),
		TimeStep:    0.016,
		AirDrag:     0.01,
		AngularDrag: 0.1,
		Integrator:  "legacy",

		Material:     Material{Restitution: m.Restitution, Friction: m.Friction},
		RestingSpeed: 0.3,
		Rest:         Rest{Velocity: 0.05, Time: 0.1},
		Boundary: Boundary{
			LinearDamping:  0.98,
			AngularDamping: 0.95,
			GroundSpin:     0.2,
			WallSpin:       0.1,
		},

		Workers: 1,
		Tuning:  collider.DefaultTuning(),

		LogLevel:  "info",
		Predictor: Predictor{SequenceLength: 10, Steps: 10},
		Scenario:  "basic",
	}
}

// Load reads a .yaml, .yml or .toml file
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(f)
	case ".toml":
		return LoadTOML(f)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// LoadYAML loads config from YAML reader.
func LoadYAML(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return &c, nil
}

// LoadTOML loads config from TOML reader.
func LoadTOML(r io.Reader) (*Config, error) {
	c := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("toml: %w", err)
	}
	return &c, nil
}

// Up returns the parsed up axis
func (c Config) Up() (actor.Axis, error) {
	return actor.ParseAxis(c.UpAxis)
}

// ColliderTuning returns the tuning with the shared resting speed
func (c Config) ColliderTuning() collider.Tuning {
	t := c.Tuning
	t.RestingSpeed = c.RestingSpeed
	return t
}

// Validate reports every invalid field, each error wrapping ErrInvalidConfig
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if !(c.Gravity >= 0) || math.IsInf(c.Gravity, 0) {
		invalid("gravity %v", c.Gravity)
	}
	if _, err := c.Up(); err != nil {
		invalid("up_axis: %v", err)
	}
	if err := c.Bounds.Validate(); err != nil {
		invalid("bounds: %v", err)
	}
	if !(c.TimeStep > 0) {
		invalid("time_step %v", c.TimeStep)
	}
	if !(c.AirDrag >= 0) || !(c.AngularDrag >= 0) {
		invalid("air_drag %v, angular_drag %v", c.AirDrag, c.AngularDrag)
	}
	if c.Integrator != "legacy" && c.Integrator != "rk4" {
		invalid("%v: %q", errUnknownIntegrator, c.Integrator)
	}
	if err := c.Material.Actor().Validate(); err != nil {
		invalid("material: %v", err)
	}
	if !(c.RestingSpeed >= 0) || !(c.Rest.Velocity >= 0) || !(c.Rest.Time >= 0) {
		invalid("resting_speed %v, rest %+v", c.RestingSpeed, c.Rest)
	}
	if !unit(c.Boundary.LinearDamping) || !unit(c.Boundary.AngularDamping) {
		invalid("boundary damping %v, %v not in (0,1]", c.Boundary.LinearDamping, c.Boundary.AngularDamping)
	}
	if err := c.ColliderTuning().Validate(); err != nil {
		invalid("tuning: %v", err)
	}
	if c.Workers < 1 {
		invalid("workers %d", c.Workers)
	}
	if c.Scene != "" {
		if _, err := collider.Preset(c.Scene); err != nil {
			invalid("scene: %v", err)
		}
	}
	for i, d := range c.Colliders {
		if _, err := collider.ParseKind(string(d.Kind)); err != nil {
			invalid("colliders[%d]: %v", i, err)
		}
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		invalid("log_level: %v", err)
	}
	if c.Predictor.SequenceLength < 1 || c.Predictor.SequenceLength > actor.HistoryCapacity || c.Predictor.Steps < 1 {
		invalid("predictor %+v", c.Predictor)
	}
	if c.Scenario != "" {
		if _, err := LookupScenario(c.Scenario); err != nil {
			invalid("scenario: %v", err)
		}
	}

	return errors.Join(errs...)
}

func unit(f float64) bool {
	return f > 0 && f <= 1
}
