package actor

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

var ErrInvalidBodyParameters = errors.New("invalid body parameters")

// angularEpsilon is the angular speed under which the rotation is left untouched
const angularEpsilon = 1e-8

type Material struct {
	Restitution float64 // 0= no rebound, 1= perfect restitution
	Friction    float64 // ground friction, 0.0 - 1.0
}

// DefaultMaterial is assigned to every new body
func DefaultMaterial() Material {
	return Material{Restitution: 0.7, Friction: 0.3}
}

func (m Material) Validate() error {
	if !(m.Restitution >= 0 && m.Restitution <= 1) {
		return fmt.Errorf("%w: restitution %v not in [0,1]", ErrInvalidBodyParameters, m.Restitution)
	}
	if !(m.Friction >= 0 && m.Friction <= 1) {
		return fmt.Errorf("%w: friction %v not in [0,1]", ErrInvalidBodyParameters, m.Friction)
	}
	return nil
}

// RigidBody is a cube of uniform density
type RigidBody struct {
	ID uuid.UUID

	// Spatial properties
	Transform Transform

	// Linear motion
	Velocity mgl64.Vec3 // Linear velocity (m/s)

	// Angular motion
	AngularVelocity mgl64.Vec3 // rad/s

	IsResting bool
	RestTimer float64

	edgeLength float64
	mass       float64
	inertia    float64
	material   Material

	history History
	err     error
}

// NewRigidBody creates a cube with the given initial position and velocity.
// The mass and the edge length must be strictly positive.
func NewRigidBody(position, velocity mgl64.Vec3, edgeLength, mass float64) (*RigidBody, error) {
	if !(edgeLength > 0) || math.IsInf(edgeLength, 0) {
		return nil, fmt.Errorf("%w: edge length %v", ErrInvalidBodyParameters, edgeLength)
	}
	if !(mass > 0) || math.IsInf(mass, 0) {
		return nil, fmt.Errorf("%w: mass %v", ErrInvalidBodyParameters, mass)
	}
	if !vec3Finite(position) || !vec3Finite(velocity) {
		return nil, fmt.Errorf("%w: non-finite initial state", ErrInvalidBodyParameters)
	}

	return &RigidBody{
		ID:         uuid.New(),
		Transform:  NewTransform(position),
		Velocity:   velocity,
		edgeLength: edgeLength,
		mass:       mass,
		// solid cube: I = m * a² / 6
		inertia:  mass * edgeLength * edgeLength / 6.0,
		material: DefaultMaterial(),
	}, nil
}

func (rb *RigidBody) EdgeLength() float64 { return rb.edgeLength }
func (rb *RigidBody) Mass() float64       { return rb.mass }
func (rb *RigidBody) Inertia() float64    { return rb.inertia }
func (rb *RigidBody) Material() Material  { return rb.material }

func (rb *RigidBody) SetMaterial(m Material) error {
	if err := m.Validate(); err != nil {
		return err
	}
	rb.material = m
	return nil
}

// History returns the bounded motion history, oldest first
func (rb *RigidBody) History() *History {
	return &rb.history
}

// RecordHistory pushes the current state vector
func (rb *RigidBody) RecordHistory() {
	rb.history.Push(rb.StateVector())
}

// Reset puts the body back to an unrotated, non-spinning state at position
// with velocity, and forgets its history and fault.
func (rb *RigidBody) Reset(position, velocity mgl64.Vec3) {
	rb.Transform = NewTransform(position)
	rb.Velocity = velocity
	rb.AngularVelocity = mgl64.Vec3{}
	rb.history.Clear()
	rb.err = nil
	rb.Awake()
}

// Err returns the fault that excluded the body from the simulation, if any
func (rb *RigidBody) Err() error {
	return rb.err
}

// Fail marks the body as faulted; it will no longer be integrated
func (rb *RigidBody) Fail(err error) {
	rb.err = err
}

// Finite reports whether position, velocity, rotation and angular velocity
// are all finite
func (rb *RigidBody) Finite() bool {
	return vec3Finite(rb.Transform.Position) && vec3Finite(rb.Velocity) &&
		rb.Transform.Rotation.Finite() && vec3Finite(rb.AngularVelocity)
}

// StateVector encodes the body as [p, v, q, ω]
func (rb *RigidBody) StateVector() State {
	var s State
	q := rb.Transform.Rotation.Quat()
	copy(s[0:3], rb.Transform.Position[:])
	copy(s[3:6], rb.Velocity[:])
	s[6] = q.W
	copy(s[7:10], q.V[:])
	copy(s[10:13], rb.AngularVelocity[:])
	return s
}

// SetStateVector decodes s into the body, normalizing the quaternion.
// A zero quaternion is rejected and the body is left unchanged.
func (rb *RigidBody) SetStateVector(s State) error {
	rotation, err := NewRotation(mgl64.Quat{W: s[6], V: mgl64.Vec3{s[7], s[8], s[9]}})
	if err != nil {
		return err
	}
	rb.Transform.Position = mgl64.Vec3{s[0], s[1], s[2]}
	rb.Velocity = mgl64.Vec3{s[3], s[4], s[5]}
	rb.Transform.Rotation = rotation
	rb.AngularVelocity = mgl64.Vec3{s[10], s[11], s[12]}
	return nil
}

// IntegrateAngular advances the angular velocity by explicit Euler and the
// rotation by the angle-axis exponential map.
func (rb *RigidBody) IntegrateAngular(torque mgl64.Vec3, dt float64) {
	rb.AngularVelocity = rb.AngularVelocity.Add(torque.Mul(dt / rb.inertia))

	omega := rb.AngularVelocity.Len()
	if omega < angularEpsilon {
		return
	}

	axis := rb.AngularVelocity.Mul(1 / omega)
	halfAngle := omega * dt / 2
	dq := mgl64.Quat{W: math.Cos(halfAngle), V: axis.Mul(math.Sin(halfAngle))}
	rb.Transform.Rotation = rb.Transform.Rotation.Compose(dq)
}

func (rb *RigidBody) TryRest(dt float64, timeThreshold float64, velocityThreshold float64) {
	if rb.Velocity.Len() < velocityThreshold && rb.AngularVelocity.Len() < velocityThreshold {
		rb.RestTimer += dt
		if rb.RestTimer >= timeThreshold {
			rb.IsResting = true
		}
	} else {
		rb.Awake()
	}
}

func (rb *RigidBody) Awake() {
	rb.IsResting = false
	rb.RestTimer = 0.0
}

// KineticEnergy is the translational plus rotational kinetic energy
func (rb *RigidBody) KineticEnergy() float64 {
	linear := 0.5 * rb.mass * rb.Velocity.Dot(rb.Velocity)
	angular := 0.5 * rb.inertia * rb.AngularVelocity.Dot(rb.AngularVelocity)
	return linear + angular
}

// PotentialEnergy is m*g*h, h being the position along up
func (rb *RigidBody) PotentialEnergy(gravity float64, up Axis) float64 {
	return rb.mass * gravity * rb.Transform.Position[up]
}
