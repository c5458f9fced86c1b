package collider

import (
	"errors"

	"github.com/akmonengine/tumble/actor"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrUnsupportedColliderVariant = errors.New("unsupported collider variant")
	ErrInvalidExtents             = errors.New("invalid collider extents")
	ErrUnknownPreset              = errors.New("unknown scene preset")
	ErrInvalidTuning              = errors.New("invalid collider tuning")
)

// Rand is the random source used for the jitter of collision responses.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Collider is a static obstacle a cube can hit. Implementations are
// immutable once built and safe for concurrent use.
type Collider interface {
	Kind() Kind
	Descriptor() Descriptor
	// Bounds returns the world space AABB of the obstacle
	Bounds() actor.AABB
	// Overlaps tests an axis-aligned cube of the given edge length centered
	// on position against the obstacle
	Overlaps(position mgl64.Vec3, edge float64) bool
	// Respond pushes an overlapping cube out of the obstacle and returns its
	// corrected position, velocity and the contact normal. A cube that does
	// not overlap is returned unchanged, with a zero normal.
	Respond(position, velocity mgl64.Vec3, edge float64, rng Rand) (mgl64.Vec3, mgl64.Vec3, mgl64.Vec3)
}

// New builds the collider described by desc. The descriptor is used as is:
// call Descriptor.Oriented first for z-up data in a world with another up axis.
func New(desc Descriptor, up actor.Axis, tuning Tuning) (Collider, error) {
	if _, err := ParseKind(string(desc.Kind)); err != nil {
		return nil, err
	}
	if !up.Valid() {
		return nil, actor.ErrUnknownAxis
	}
	if err := desc.validateSize(); err != nil {
		return nil, err
	}

	switch desc.Kind {
	case KindBox:
		return newBox(desc, tuning), nil
	case KindSphere:
		return newSphere(desc, up, tuning), nil
	default:
		return newPlatform(desc, up, tuning), nil
	}
}

// uniform draws from [-amplitude, amplitude). A zero amplitude or a nil
// source yields 0 without consuming a draw.
func uniform(rng Rand, amplitude float64) float64 {
	if amplitude == 0 || rng == nil {
		return 0
	}
	return amplitude * (2*rng.Float64() - 1)
}

func reflect(v, n mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}
