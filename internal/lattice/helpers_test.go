package lattice

import (
	"github.com/banshee-data/lattice/internal/testutil"
	"gonum.org/v1/gonum/spatial/r3"
)

var assertVec = testutil.AssertVec

func vec(x, y, z float64) r3.Vec { return r3.Vec{X: x, Y: y, Z: z} }

// unitGrid returns a manual-origin grid of unit cells without spacing.
func unitGrid(size Coord) *Grid {
	return NewGrid(size, NewCellLayout(vec(1, 1, 1), r3.Vec{}), NewOrigin())
}

// counter subscribes to s and returns a pointer to the notification count.
func counter(subscribe func(func()) func()) *int {
	n := 0
	subscribe(func() { n++ })
	return &n
}
