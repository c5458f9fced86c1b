package tumble

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/akmonengine/tumble/actor"
	"github.com/go-gl/mathgl/mgl64"
)

func TestTask_VisitsEveryElement(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 16} {
		data := make([]int, 100)
		for i := range data {
			data[i] = i
		}
		visited := make([]atomic.Int32, len(data))

		err := task(context.Background(), workers, data, func(i int, d int) {
			if i != d {
				t.Errorf("index %d got element %d", i, d)
			}
			visited[i].Add(1)
		})
		if err != nil {
			t.Fatalf("workers %d: %v", workers, err)
		}

		for i := range visited {
			if n := visited[i].Load(); n != 1 {
				t.Fatalf("workers %d: element %d visited %d times", workers, i, n)
			}
		}
	}
}

func TestTask_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	err := task(ctx, 4, []int{1, 2, 3}, func(int, int) { calls.Add(1) })

	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls.Load() != 0 {
		t.Errorf("fn called %d times after cancellation", calls.Load())
	}
}

func TestBodySeed(t *testing.T) {
	a, err := actor.NewRigidBody(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, 1, 0}, 1, 1)
	if err != nil {
		t.Fatalf("NewRigidBody: %v", err)
	}
	twin, _ := actor.NewRigidBody(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, 1, 0}, 1, 1)
	other, _ := actor.NewRigidBody(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, 1, 0}, 2, 1)

	a1, a2 := bodySeed(42, a)
	b1, b2 := bodySeed(42, twin)
	if a1 != b1 || a2 != b2 {
		t.Error("Expected the same seed for bodies in the same state")
	}
	if a1 == a2 {
		t.Error("Expected two distinct PCG words")
	}

	seen := make(map[[2]uint64]bool)
	for seed := range uint64(8) {
		for _, body := range []*actor.RigidBody{a, other} {
			s1, s2 := bodySeed(seed, body)
			key := [2]uint64{s1, s2}
			if seen[key] {
				t.Fatalf("seed %d: duplicate stream seed", seed)
			}
			seen[key] = true
		}
	}

	if newPCG(bodySeed(42, a)).Float64() != newPCG(bodySeed(42, twin)).Float64() {
		t.Error("Expected reproducible streams")
	}
}
