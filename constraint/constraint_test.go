package constraint

import (
	"errors"
	"math"
	"testing"

	"github.com/akmonengine/tumble/actor"
	"github.com/go-gl/mathgl/mgl64"
)

func TestBoundsValidate(t *testing.T) {
	tests := []struct {
		name    string
		bounds  Bounds
		wantErr bool
	}{
		{"default", DefaultBounds(), false},
		{"asymmetric", Bounds{{0, 1}, {-5, 100}, {2, 3}}, false},
		{"empty axis", Bounds{{0, 0}, {0, 1}, {0, 1}}, true},
		{"inverted axis", Bounds{{0, 1}, {5, 1}, {0, 1}}, true},
		{"NaN", Bounds{{0, 1}, {0, 1}, {math.NaN(), 1}}, true},
		{"infinite", Bounds{{math.Inf(-1), 1}, {0, 1}, {0, 1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bounds.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidBounds) {
				t.Errorf("Validate() error = %v, want ErrInvalidBounds", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestBoundsAABB(t *testing.T) {
	aabb := DefaultBounds().AABB()

	if aabb.Min != (mgl64.Vec3{-10, 0, -10}) || aabb.Max != (mgl64.Vec3{10, 20, 10}) {
		t.Errorf("AABB() = %v..%v", aabb.Min, aabb.Max)
	}
	if g := DefaultBounds().Ground(actor.AxisY); g != 0 {
		t.Errorf("Ground(y) = %v, want 0", g)
	}
}

func TestNewBoundary_Errors(t *testing.T) {
	if _, err := NewBoundary(Bounds{{1, 0}, {0, 1}, {0, 1}}, actor.AxisY); !errors.Is(err, ErrInvalidBounds) {
		t.Errorf("error = %v, want ErrInvalidBounds", err)
	}
	if _, err := NewBoundary(DefaultBounds(), actor.Axis(7)); !errors.Is(err, actor.ErrUnknownAxis) {
		t.Errorf("error = %v, want ErrUnknownAxis", err)
	}
}

func TestClampSmallVelocities(t *testing.T) {
	rb, _ := actor.NewRigidBody(mgl64.Vec3{}, mgl64.Vec3{1e-12, 0, 0}, 1, 1)
	rb.AngularVelocity = mgl64.Vec3{0, 1, 0}

	clampSmallVelocities(rb)

	if rb.Velocity != (mgl64.Vec3{}) {
		t.Errorf("Velocity = %v, want zero", rb.Velocity)
	}
	if rb.AngularVelocity != (mgl64.Vec3{0, 1, 0}) {
		t.Errorf("AngularVelocity = %v, should be kept", rb.AngularVelocity)
	}
}
