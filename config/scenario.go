package config

import (
	"fmt"
	"sort"
)

// Scenario is a launch setup: one cube thrown in a y-up domain
type Scenario struct {
	Name        string
	Position    [3]float64
	Velocity    [3]float64
	Gravity     float64
	Duration    float64 // s
	EdgeLength  float64
	Mass        float64
	Restitution float64
}

var scenarios = map[string]Scenario{
	"basic": {
		Position: [3]float64{0, 15, 0},
		Velocity: [3]float64{1, 0, 0.5},
		Gravity:  9.81,
		Duration: 8,
	},
	"high_energy": {
		Position: [3]float64{-3, 18, 2},
		Velocity: [3]float64{4, -1, -2},
		Gravity:  9.81,
		Duration: 10,
	},
	"low_gravity": {
		Position: [3]float64{0, 12, 0},
		Velocity: [3]float64{2, 1, 1},
		Gravity:  3.71, // Mars
		Duration: 15,
	},
	"bouncy": {
		Position:    [3]float64{0, 10, 0},
		Gravity:     9.81,
		Duration:    12,
		Restitution: 0.9,
	},
}

// LookupScenario returns a named scenario with its defaults filled in
func LookupScenario(name string) (Scenario, error) {
	s, ok := scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}

	s.Name = name
	if s.EdgeLength == 0 {
		s.EdgeLength = 1.5
	}
	if s.Mass == 0 {
		s.Mass = 1
	}
	if s.Restitution == 0 {
		s.Restitution = 0.7
	}
	return s, nil
}

func ScenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply copies the scenario physics into c
func (s Scenario) Apply(c *Config) {
	c.Scenario = s.Name
	c.Gravity = s.Gravity
	c.Material.Restitution = s.Restitution
}
