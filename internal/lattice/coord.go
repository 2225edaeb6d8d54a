package lattice

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Coord is an integer lattice coordinate: X is width, Y is height, Z is depth.
type Coord struct {
	X, Y, Z int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Prod returns X*Y*Z.
func (c Coord) Prod() int {
	return c.X * c.Y * c.Z
}

// Vec returns c as a float vector.
func (c Coord) Vec() r3.Vec {
	return r3.Vec{X: float64(c.X), Y: float64(c.Y), Z: float64(c.Z)}
}

// clampNonNegative zeroes negative axes and reports whether any were changed.
func (c Coord) clampNonNegative() (Coord, bool) {
	clamped := false
	if c.X < 0 {
		c.X, clamped = 0, true
	}
	if c.Y < 0 {
		c.Y, clamped = 0, true
	}
	if c.Z < 0 {
		c.Z, clamped = 0, true
	}
	return c, clamped
}

// Identity is the rotation that leaves vectors unchanged.
var Identity = r3.Rotation{Real: 1}

// One is the unit scale.
var One = r3.Vec{X: 1, Y: 1, Z: 1}

// mulAxes returns the per-axis product of a and b.
func mulAxes(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}

// absAxes returns the per-axis absolute value of v.
func absAxes(v r3.Vec) r3.Vec {
	return r3.Vec{X: math.Abs(v.X), Y: math.Abs(v.Y), Z: math.Abs(v.Z)}
}

// ClampAxes applies the same upper bound independently to each axis of v.
// A +Inf bound leaves v unchanged.
func ClampAxes(v r3.Vec, max float64) r3.Vec {
	return r3.Vec{X: math.Min(v.X, max), Y: math.Min(v.Y, max), Z: math.Min(v.Z, max)}
}

// minFinite returns the smallest of values, skipping NaN. It returns +Inf when
// values is empty or holds only NaN.
func minFinite(values ...float64) float64 {
	min := math.Inf(1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if v < min {
			min = v
		}
	}
	return min
}

// isZeroRotation reports whether q is the all-zero quaternion, which rotates
// every vector onto the origin.
func isZeroRotation(q r3.Rotation) bool {
	return q == r3.Rotation{}
}
