package overlay

import (
	"errors"
	"math"
	"testing"

	"github.com/banshee-data/lattice/internal/lattice"
	"github.com/banshee-data/lattice/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func testGrid(t *testing.T) *lattice.Grid {
	t.Helper()
	layout := lattice.NewCellLayout(r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{})
	return lattice.NewGrid(lattice.Coord{X: 2, Y: 2, Z: 2}, layout, lattice.NewOrigin())
}

func TestDraw_Cells(t *testing.T) {
	g := testGrid(t)
	var rec Recorder

	n, err := Draw(g, &rec)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	require.Len(t, rec.Boxes, 8)

	for i, b := range rec.Boxes {
		want, err := g.CellPositionInWorld(i)
		require.NoError(t, err)
		assert.Equal(t, CellBox, b.Kind)
		assert.Equal(t, i, b.Index)
		testutil.AssertVec(t, "centre", want, b.Center)
		assert.Equal(t, r3.Vec{X: 1, Y: 1, Z: 1}, b.Size)
		assert.Equal(t, lattice.Identity, b.Rotation)
	}
}

func TestDraw_AutoScaleBounds(t *testing.T) {
	g := testGrid(t)
	g.Origin().SetPosition(r3.Vec{X: 3})
	g.SetMaxWorldSize(r3.Vec{X: 4, Y: 4, Z: 4})
	g.SetAutoScale(true)

	var rec Recorder
	n, err := Draw(g, &rec)
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	last := rec.Boxes[len(rec.Boxes)-1]
	assert.Equal(t, BoundsBox, last.Kind)
	assert.Equal(t, -1, last.Index)
	assert.Equal(t, "bounds", last.Label())
	assert.Equal(t, r3.Vec{X: 3}, last.Center)
	assert.Equal(t, r3.Vec{X: 4, Y: 4, Z: 4}, last.Size)

	// Cells fill the bound exactly.
	testutil.AssertVec(t, "cell size", r3.Vec{X: 2, Y: 2, Z: 2}, rec.Boxes[0].Size)

	rec.Reset()
	assert.Empty(t, rec.Boxes)
}

func TestDraw_EmptyGrid(t *testing.T) {
	g := testGrid(t)
	g.SetSize(lattice.Coord{})
	n, err := Draw(g, RendererFunc(func(b Box) { t.Errorf("unexpected box %v", b) }))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDraw_InvalidArguments(t *testing.T) {
	_, err := Draw(nil, &Recorder{})
	assert.True(t, errors.Is(err, lattice.ErrInvalidArgument))

	_, err = Draw(testGrid(t), nil)
	assert.True(t, errors.Is(err, lattice.ErrInvalidArgument))
}

func TestBox_Corners(t *testing.T) {
	b := Box{Center: r3.Vec{X: 1, Y: 2, Z: 3}, Size: r3.Vec{X: 2, Y: 4, Z: 6}}
	corners := b.Corners()
	testutil.AssertVec(t, "zero rotation acts as identity", r3.Vec{}, corners[0])
	testutil.AssertVec(t, "corner 6", r3.Vec{X: 2, Y: 4, Z: 6}, corners[6])
	for i := 0; i < 4; i++ {
		assert.InDelta(t, 0.0, corners[i].Y, 1e-12, "corner %d on the low face", i)
		assert.InDelta(t, 4.0, corners[i+4].Y, 1e-12, "corner %d on the high face", i+4)
	}

	half := math.Sqrt2 / 2
	b.Rotation = r3.Rotation{Real: half, Jmag: half}
	corners = b.Corners()
	testutil.AssertVec(t, "rotated corner 0", r3.Vec{X: -2, Y: 0, Z: 4}, corners[0])
}

func TestBox_EdgesAndWirePath(t *testing.T) {
	b := Box{Center: r3.Vec{}, Size: r3.Vec{X: 1, Y: 2, Z: 3}, Rotation: lattice.Identity}

	lengths := map[float64]int{}
	for _, e := range b.Edges() {
		l := math.Round(r3.Norm(r3.Sub(e[1], e[0]))*1e6) / 1e6
		lengths[l]++
	}
	assert.Equal(t, map[float64]int{1: 4, 2: 4, 3: 4}, lengths)

	path := b.WirePath()
	require.Len(t, path, 16)
	covered := map[[2]int]bool{}
	for i := 1; i < len(wirePath); i++ {
		a, c := wirePath[i-1], wirePath[i]
		if a > c {
			a, c = c, a
		}
		covered[[2]int{a, c}] = true
	}
	for _, e := range boxEdges {
		a, c := e[0], e[1]
		if a > c {
			a, c = c, a
		}
		assert.True(t, covered[[2]int{a, c}], "edge %v not on the wire path", e)
	}
	assert.Len(t, covered, 12, "wire path must only follow box edges")
}

func TestBoxKind_String(t *testing.T) {
	assert.Equal(t, "cell", CellBox.String())
	assert.Equal(t, "bounds", BoundsBox.String())
	assert.Equal(t, "BoxKind(7)", BoxKind(7).String())
	assert.Equal(t, "cell 3", Box{Kind: CellBox, Index: 3}.Label())
}
