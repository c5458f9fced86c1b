package tumble

import (
	"context"
	"encoding/binary"
	"math"
	"math/rand/v2"

	"github.com/akmonengine/tumble/actor"
	"github.com/akmonengine/tumble/collider"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
)

// task runs fn on every element of data, at most workersCount at a time.
// It stops scheduling new elements once ctx is done and returns its error.
func task[T any](ctx context.Context, workersCount int, data []T, fn func(i int, data T)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workersCount))

	for i, d := range data {
		if err := gctx.Err(); err != nil {
			g.Wait()
			return err
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(i, d)
			return nil
		})
	}

	return g.Wait()
}

// bodySeed derives the PCG seed of the jitter stream of a body from the world
// seed and the body state, edge length and mass
func bodySeed(seed uint64, body *actor.RigidBody) (uint64, uint64) {
	var buf [8]byte
	d := xxhash.New()
	write := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		d.Write(buf[:])
	}

	write(seed)
	for _, v := range body.StateVector() {
		write(math.Float64bits(v))
	}
	write(math.Float64bits(body.EdgeLength()))
	write(math.Float64bits(body.Mass()))
	hi := d.Sum64()

	write(^seed)
	return hi, d.Sum64()
}

func newPCG(seed1, seed2 uint64) collider.Rand {
	return rand.New(rand.NewPCG(seed1, seed2))
}
