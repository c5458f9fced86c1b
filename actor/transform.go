package actor

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrDegenerateRotation = errors.New("degenerate rotation quaternion")
	ErrUnknownAxis        = errors.New("unknown axis")
)

// Axis designates one of the three world axes
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "unknown"
}

// Unit returns the positive unit vector along the axis
func (a Axis) Unit() mgl64.Vec3 {
	var v mgl64.Vec3
	v[a] = 1
	return v
}

// Horizontal returns the two axes orthogonal to a, in cyclic order
func (a Axis) Horizontal() (Axis, Axis) {
	return (a + 1) % 3, (a + 2) % 3
}

func (a Axis) Valid() bool {
	return a >= AxisX && a <= AxisZ
}

// ParseAxis accepts "x", "y" or "z" (case-insensitive)
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAxis, s)
}

// Rotation is a unit quaternion (scalar first). Every constructor and mutator
// re-normalizes, so a Rotation never holds a denormalized value.
// The zero value is the identity.
type Rotation struct {
	q mgl64.Quat
}

// IdentityRotation returns the identity rotation
func IdentityRotation() Rotation {
	return Rotation{q: mgl64.QuatIdent()}
}

// NewRotation normalizes q. A zero or non-finite quaternion is rejected.
func NewRotation(q mgl64.Quat) (Rotation, error) {
	n := q.Len()
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return Rotation{}, ErrDegenerateRotation
	}
	return Rotation{q: normalize(q, n)}, nil
}

// Compose returns normalize(r ∘ dq). The delta is applied on the right, i.e.
// dq is expressed in the body frame.
func (r Rotation) Compose(dq mgl64.Quat) Rotation {
	q := r.Quat().Mul(dq)
	n := q.Len()
	if n == 0 {
		return r
	}
	return Rotation{q: normalize(q, n)}
}

// Quat returns the unit quaternion
func (r Rotation) Quat() mgl64.Quat {
	if r.q == (mgl64.Quat{}) {
		return mgl64.QuatIdent()
	}
	return r.q
}

// Rotate applies the rotation to v
func (r Rotation) Rotate(v mgl64.Vec3) mgl64.Vec3 {
	return r.Quat().Rotate(v)
}

func (r Rotation) Norm() float64 {
	return r.Quat().Len()
}

// Finite reports whether every component is a finite number
func (r Rotation) Finite() bool {
	q := r.Quat()
	return finite(q.W) && vec3Finite(q.V)
}

func normalize(q mgl64.Quat, n float64) mgl64.Quat {
	return mgl64.Quat{W: q.W / n, V: q.V.Mul(1 / n)}
}

// Transform represents a position and orientation in 3D space
type Transform struct {
	Position mgl64.Vec3
	Rotation Rotation
}

// NewTransform creates an identity transform at position
func NewTransform(position mgl64.Vec3) Transform {
	return Transform{
		Position: position,
		Rotation: IdentityRotation(),
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func vec3Finite(v mgl64.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}
