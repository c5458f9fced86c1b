package collider

import (
	"fmt"
	"slices"
	"sort"
)

// presets are written with z as the up axis
var presets = map[string][]Descriptor{
	"basic": {
		{Kind: KindPlatform, Position: [3]float64{2, 0, 5}, Size: [3]float64{3, 3, 0.5}, Color: [3]float64{0.8, 0.4, 0.2}},
		{Kind: KindPlatform, Position: [3]float64{-2, 2, 8}, Size: [3]float64{2, 2, 0.5}, Color: [3]float64{0.2, 0.8, 0.4}},
		{Kind: KindSphere, Position: [3]float64{0, 0, 3}, Size: [3]float64{1, 1, 0.5}, Color: [3]float64{0.2, 0.2, 0.8}},
	},
	"complex": {
		{Kind: KindPlatform, Position: [3]float64{0, 0, 3}, Size: [3]float64{4, 1, 0.5}, Color: [3]float64{0.8, 0.4, 0.2}},
		{Kind: KindPlatform, Position: [3]float64{3, -2, 6}, Size: [3]float64{2, 2, 0.5}, Color: [3]float64{0.2, 0.8, 0.4}},
		{Kind: KindPlatform, Position: [3]float64{-3, 1, 9}, Size: [3]float64{2, 2, 0.5}, Color: [3]float64{0.4, 0.2, 0.8}},
		{Kind: KindPlatform, Position: [3]float64{1, 3, 12}, Size: [3]float64{1.5, 1.5, 0.5}, Color: [3]float64{0.8, 0.8, 0.2}},
		{Kind: KindSphere, Position: [3]float64{0, 0, 5}, Size: [3]float64{0.7, 0.7, 0.7}, Color: [3]float64{0.9, 0.1, 0.1}},
	},
	"bouncy_obstacles": {
		// two offset platforms forming a channel
		{Kind: KindPlatform, Position: [3]float64{-2, 0, 4}, Size: [3]float64{2, 2, 0.4}, Color: [3]float64{0.9, 0.3, 0.1}},
		{Kind: KindPlatform, Position: [3]float64{2, 0, 6}, Size: [3]float64{2, 2, 0.4}, Color: [3]float64{0.9, 0.5, 0.1}},
		// springboard
		{Kind: KindPlatform, Position: [3]float64{0, 2, 8}, Size: [3]float64{1.5, 3, 0.3}, Color: [3]float64{0.1, 0.9, 0.3}},
		{Kind: KindBox, Position: [3]float64{1, -1, 10}, Size: [3]float64{1.2, 1.2, 1.2}, Color: [3]float64{0.1, 0.5, 0.9}},
		{Kind: KindSphere, Position: [3]float64{-1, 1, 2}, Size: [3]float64{0.8, 0.8, 0.8}, Color: [3]float64{0.8, 0.1, 0.9}},
	},
}

// Preset returns a copy of the descriptors of a named scene. The table is
// z-up; see Descriptor.Oriented.
func Preset(name string) ([]Descriptor, error) {
	descs, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return slices.Clone(descs), nil
}

// PresetNames lists the known scenes, sorted
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
