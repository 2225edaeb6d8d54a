package overlay

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// BoxKind tells a renderer what a box represents.
type BoxKind int

const (
	// CellBox outlines one lattice cell.
	CellBox BoxKind = iota
	// BoundsBox outlines the auto-scale world bound.
	BoundsBox
)

func (k BoxKind) String() string {
	switch k {
	case CellBox:
		return "cell"
	case BoundsBox:
		return "bounds"
	default:
		return fmt.Sprintf("BoxKind(%d)", int(k))
	}
}

// Box is an oriented wireframe box.
type Box struct {
	Kind     BoxKind
	Index    int // cell index, -1 for BoundsBox
	Center   r3.Vec
	Size     r3.Vec
	Rotation r3.Rotation
}

// Label names the box for legends and series.
func (b Box) Label() string {
	if b.Kind == CellBox {
		return fmt.Sprintf("cell %d", b.Index)
	}
	return b.Kind.String()
}

// Corners 0-3 form the low-y face and corner i+4 sits above corner i.
var cornerSigns = [8]r3.Vec{
	{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: 1},
	{X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
}

var boxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// wirePath visits all 12 edges in one polyline, retracing three of them.
var wirePath = [16]int{0, 1, 2, 3, 0, 4, 5, 1, 5, 6, 2, 6, 7, 3, 7, 4}

// Corners returns the eight world-space corners of the box.
func (b Box) Corners() [8]r3.Vec {
	rotation := b.Rotation
	if rotation == (r3.Rotation{}) {
		rotation = r3.Rotation{Real: 1}
	}
	half := r3.Scale(0.5, b.Size)

	var corners [8]r3.Vec
	for i, s := range cornerSigns {
		local := r3.Vec{X: s.X * half.X, Y: s.Y * half.Y, Z: s.Z * half.Z}
		corners[i] = r3.Add(b.Center, rotation.Rotate(local))
	}
	return corners
}

// Edges returns the twelve edges of the box as corner pairs.
func (b Box) Edges() [12][2]r3.Vec {
	corners := b.Corners()
	var edges [12][2]r3.Vec
	for i, e := range boxEdges {
		edges[i] = [2]r3.Vec{corners[e[0]], corners[e[1]]}
	}
	return edges
}

// WirePath returns a single polyline covering every edge of the box.
func (b Box) WirePath() []r3.Vec {
	corners := b.Corners()
	path := make([]r3.Vec, len(wirePath))
	for i, c := range wirePath {
		path[i] = corners[c]
	}
	return path
}
