package collider

import (
	"math"
	"slices"
	"sort"

	"github.com/akmonengine/tumble/actor"
)

// DEFAULT_CELL_SIZE is the edge of a grid cell, in meters
const DEFAULT_CELL_SIZE = 2.0

// cellKey is the integer coordinate of a cell in 3D space
type cellKey struct {
	X, Y, Z int
}

// grid is a uniform spatial hash over the collider bounds. Cells are folded
// into a power of two number of buckets, so a query returns a superset of
// the colliders whose bounds touch the queried box.
type grid struct {
	cellSize float64
	buckets  [][]int
	mask     int
	all      []int
}

func newGrid(cellSize float64, numBuckets int) *grid {
	numBuckets = nextPowerOfTwo(numBuckets)

	return &grid{
		cellSize: cellSize,
		buckets:  make([][]int, numBuckets),
		mask:     numBuckets - 1,
	}
}

// nextPowerOfTwo rounds n up to a power of 2
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// insert registers index in every cell touched by bounds
func (g *grid) insert(index int, bounds actor.AABB) {
	g.all = append(g.all, index)

	minCell, maxCell, ok := g.cellRange(bounds)
	if !ok {
		for i := range g.buckets {
			g.buckets[i] = append(g.buckets[i], index)
		}
		return
	}

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				bucket := g.hashCell(cellKey{x, y, z})
				// a large collider can fold several cells into one bucket
				if n := len(g.buckets[bucket]); n > 0 && g.buckets[bucket][n-1] == index {
					continue
				}
				g.buckets[bucket] = append(g.buckets[bucket], index)
			}
		}
	}
}

// query appends to dst the sorted, unique indices registered in the cells
// touched by bounds
func (g *grid) query(bounds actor.AABB, dst []int) []int {
	minCell, maxCell, ok := g.cellRange(bounds)
	if !ok {
		return append(dst, g.all...)
	}

	start := len(dst)
	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				dst = append(dst, g.buckets[g.hashCell(cellKey{x, y, z})]...)
			}
		}
	}

	found := dst[start:]
	sort.Ints(found)
	return append(dst[:start], slices.Compact(found)...)
}

// cellRange returns the cells spanned by bounds. It fails when the bounds
// are not finite or span more cells than there are buckets, in which case
// every bucket is concerned.
func (g *grid) cellRange(bounds actor.AABB) (cellKey, cellKey, bool) {
	var lo, hi [3]float64
	span := 1.0
	for i := range 3 {
		lo[i] = math.Floor(bounds.Min[i] / g.cellSize)
		hi[i] = math.Floor(bounds.Max[i] / g.cellSize)
		span *= hi[i] - lo[i] + 1
	}
	if !(span >= 1 && span <= float64(len(g.buckets))) {
		return cellKey{}, cellKey{}, false
	}
	if !(math.Abs(lo[0]) < math.MaxInt32 && math.Abs(lo[1]) < math.MaxInt32 && math.Abs(lo[2]) < math.MaxInt32) {
		return cellKey{}, cellKey{}, false
	}

	return cellKey{int(lo[0]), int(lo[1]), int(lo[2])},
		cellKey{int(hi[0]), int(hi[1]), int(hi[2])}, true
}

// hashCell maps a cell to its bucket
func (g *grid) hashCell(key cellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & g.mask
}
