package collider

import (
	"fmt"
	"math"

	"github.com/akmonengine/tumble/actor"
)

// Kind tags the shape of a collider
type Kind string

const (
	KindBox      Kind = "box"
	KindSphere   Kind = "sphere"
	KindPlatform Kind = "platform"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindBox, KindSphere, KindPlatform:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedColliderVariant, s)
}

// Descriptor is the configuration form of a collider.
//
// Size holds the full dimensions of boxes and platforms (the half-extents
// are Size/2) and the radius of spheres in Size[0]. Color is only used for
// rendering.
type Descriptor struct {
	Kind     Kind       `yaml:"kind" toml:"kind"`
	Position [3]float64 `yaml:"position" toml:"position"`
	Size     [3]float64 `yaml:"size" toml:"size"`
	Color    [3]float64 `yaml:"color,omitempty" toml:"color,omitempty"`
}

// Oriented maps a descriptor written with z as the up axis onto a world
// whose up axis is up. The two horizontal components land on up.Horizontal()
// so the frame stays right-handed. A sphere radius is left untouched.
func (d Descriptor) Oriented(up actor.Axis) Descriptor {
	if up == actor.AxisZ {
		return d
	}

	h1, h2 := up.Horizontal()
	remap := func(v [3]float64) [3]float64 {
		var out [3]float64
		out[h1] = v[0]
		out[h2] = v[1]
		out[up] = v[2]
		return out
	}

	d.Position = remap(d.Position)
	if d.Kind != KindSphere {
		d.Size = remap(d.Size)
	}
	return d
}

func (d Descriptor) validateSize() error {
	n := 3
	if d.Kind == KindSphere {
		n = 1
	}
	for i := range n {
		if !(d.Size[i] > 0) || math.IsInf(d.Size[i], 0) {
			return fmt.Errorf("%w: %s size %v", ErrInvalidExtents, d.Kind, d.Size)
		}
	}
	for _, p := range d.Position {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("%w: %s position %v", ErrInvalidExtents, d.Kind, d.Position)
		}
	}
	return nil
}
