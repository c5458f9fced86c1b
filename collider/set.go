package collider

import (
	"fmt"

	"github.com/akmonengine/tumble/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Set is an ordered, read-only list of colliders, indexed by a spatial hash
// grid. It can be shared by several worlds stepping concurrently. A nil *Set
// is an empty set.
type Set struct {
	colliders []Collider
	grid      *grid
}

// NewSet builds one collider per descriptor, keeping their order
func NewSet(descs []Descriptor, up actor.Axis, tuning Tuning) (*Set, error) {
	if err := tuning.Validate(); err != nil {
		return nil, err
	}
	colliders := make([]Collider, 0, len(descs))
	for i, desc := range descs {
		c, err := New(desc, up, tuning)
		if err != nil {
			return nil, fmt.Errorf("collider %d: %w", i, err)
		}
		colliders = append(colliders, c)
	}

	g := newGrid(DEFAULT_CELL_SIZE, max(64, 8*len(colliders)))
	for i, c := range colliders {
		g.insert(i, c.Bounds())
	}

	return &Set{colliders: colliders, grid: g}, nil
}

// NewPresetSet builds a named scene, oriented for the up axis
func NewPresetSet(name string, up actor.Axis, tuning Tuning) (*Set, error) {
	descs, err := Preset(name)
	if err != nil {
		return nil, err
	}
	for i := range descs {
		descs[i] = descs[i].Oriented(up)
	}
	return NewSet(descs, up, tuning)
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.colliders)
}

// Candidates appends to dst, in set order, the indices of the colliders a
// cube at position may overlap. Every collider for which Overlaps holds is
// included.
func (s *Set) Candidates(position mgl64.Vec3, edge float64, dst []int) []int {
	if s.Len() == 0 {
		return dst
	}
	return s.grid.query(actor.CubeAABB(position, edge), dst)
}

func (s *Set) At(i int) Collider {
	return s.colliders[i]
}

// Colliders returns a copy of the list
func (s *Set) Colliders() []Collider {
	if s == nil {
		return nil
	}
	out := make([]Collider, len(s.colliders))
	copy(out, s.colliders)
	return out
}
