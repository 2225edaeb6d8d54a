package lattice

import (
	"fmt"
	"iter"

	"gonum.org/v1/gonum/spatial/r3"
)

// Grid is a lattice of Size cells laid out by a CellLayout around an Origin.
//
// Cell index order is y outermost, then x, then z fastest-varying:
//
//	index = y*Size.X*Size.Z + x*Size.Z + z
//
// With InvertZ set the z axis is traversed back to front for both the index
// mapping and the world mapping, so the two still compose to the identity.
type Grid struct {
	size    Coord
	invertZ bool
	offset  r3.Vec

	scale        r3.Vec
	autoScale    bool
	maxWorldSize r3.Vec

	layout *CellLayout
	origin *Origin

	changed Signal
}

// NewGrid creates a grid of size cells. A nil layout or origin is replaced by
// an empty layout or a manual identity origin. The grid takes ownership of
// both and reacts to their changes.
func NewGrid(size Coord, layout *CellLayout, origin *Origin) *Grid {
	if layout == nil {
		layout = NewCellLayout(r3.Vec{}, r3.Vec{})
	}
	if origin == nil {
		origin = NewOrigin()
	}
	g := &Grid{
		size:   clampSize(size),
		scale:  One,
		layout: layout,
		origin: origin,
	}
	g.bind()
	return g
}

// NewGridFrom makes a field-by-field copy of template. The layout and origin
// are copied too; the origin keeps pointing at the same anchor. Subscribers
// are not copied.
func NewGridFrom(template *Grid) (*Grid, error) {
	if template == nil {
		return nil, fmt.Errorf("%w: grid template is nil", ErrInvalidArgument)
	}
	layout, err := NewCellLayoutFrom(template.layout)
	if err != nil {
		return nil, err
	}
	origin, err := NewOriginFrom(template.origin)
	if err != nil {
		return nil, err
	}
	g := &Grid{
		size:         template.size,
		invertZ:      template.invertZ,
		offset:       template.offset,
		scale:        template.scale,
		autoScale:    template.autoScale,
		maxWorldSize: template.maxWorldSize,
		layout:       layout,
		origin:       origin,
	}
	g.bind()
	return g, nil
}

func (g *Grid) bind() {
	g.layout.Subscribe(g.collaboratorChanged)
	g.origin.Subscribe(g.collaboratorChanged)
}

func (g *Grid) collaboratorChanged() {
	g.mutated()
}

// mutated re-solves the scale when auto-scale is on and fires the change
// signal exactly once.
func (g *Grid) mutated() {
	g.origin.noteExpiry()
	if g.autoScale {
		g.solveAutoScale()
	}
	g.changed.Emit()
}

func clampSize(size Coord) Coord {
	c, clamped := size.clampNonNegative()
	if clamped {
		opsf("grid size %v has negative axes, clamped to %v", size, c)
	}
	return c
}

// Subscribe registers fn to run after every mutation of the grid, its layout
// or its origin.
func (g *Grid) Subscribe(fn func()) (unsubscribe func()) {
	return g.changed.Subscribe(fn)
}

// Layout returns the grid's cell layout. Mutating it updates the grid.
func (g *Grid) Layout() *CellLayout { return g.layout }

// Origin returns the grid's origin. Mutating it updates the grid.
func (g *Grid) Origin() *Origin { return g.origin }

// Size returns the cell count per axis.
func (g *Grid) Size() Coord { return g.size }

// SetSize sets the cell count per axis. Negative axes are clamped to zero.
func (g *Grid) SetSize(size Coord) {
	g.size = clampSize(size)
	g.mutated()
}

// Capacity returns the number of cells.
func (g *Grid) Capacity() int { return g.size.Prod() }

// InvertZ reports whether the depth axis is traversed back to front.
func (g *Grid) InvertZ() bool { return g.invertZ }

// SetInvertZ sets whether the depth axis is traversed back to front.
func (g *Grid) SetInvertZ(invert bool) {
	g.invertZ = invert
	g.mutated()
}

// Offset returns the manual local offset added to every cell position.
func (g *Grid) Offset() r3.Vec { return g.offset }

// SetOffset sets the manual local offset.
func (g *Grid) SetOffset(offset r3.Vec) {
	g.offset = offset
	g.mutated()
}

// Scale returns the grid scale, either user-set or solved by auto-scale.
func (g *Grid) Scale() r3.Vec { return g.scale }

// SetScale sets the grid scale. While auto-scale is enabled the value is
// immediately replaced by the solved scale.
func (g *Grid) SetScale(scale r3.Vec) {
	g.scale = scale
	g.mutated()
}

// EffectiveScale is the grid scale multiplied by the origin scale. It is the
// scale applied to cell size and spacing.
func (g *Grid) EffectiveScale() r3.Vec {
	return mulAxes(g.scale, g.origin.Scale())
}

// ScaledCellSize returns the world size of one cell.
func (g *Grid) ScaledCellSize() r3.Vec {
	return g.layout.ScaledCellSize(g.EffectiveScale())
}

// ScaledSpacing returns the world gap between adjacent cells.
func (g *Grid) ScaledSpacing() r3.Vec {
	return g.layout.ScaledSpacing(g.EffectiveScale())
}

// CellPitch returns the distance between the centres of adjacent cells.
func (g *Grid) CellPitch() r3.Vec {
	return r3.Add(g.ScaledCellSize(), g.ScaledSpacing())
}

// BaseWorldSize returns the lattice extent at scale 1.
func (g *Grid) BaseWorldSize() r3.Vec {
	return g.layout.WorldSize(g.size, One)
}

// WorldSize returns the world extent of the lattice using the scaled cell
// size and spacing. Every axis is non-negative; empty axes are zero.
func (g *Grid) WorldSize() r3.Vec {
	cell, spacing := g.ScaledCellSize(), g.ScaledSpacing()
	return r3.Vec{
		X: axisExtent(g.size.X, cell.X, spacing.X, 1),
		Y: axisExtent(g.size.Y, cell.Y, spacing.Y, 1),
		Z: axisExtent(g.size.Z, cell.Z, spacing.Z, 1),
	}
}

// Width returns the world extent along x.
func (g *Grid) Width() float64 { return g.WorldSize().X }

// Height returns the world extent along y.
func (g *Grid) Height() float64 { return g.WorldSize().Y }

// Depth returns the world extent along z.
func (g *Grid) Depth() float64 { return g.WorldSize().Z }

// LocalCenter is subtracted from local cell positions so the lattice is
// centred on the origin, with cell (0,0,0) at the low corner.
func (g *Grid) LocalCenter() r3.Vec {
	half := r3.Scale(0.5, g.WorldSize())
	halfCell := r3.Scale(0.5, g.ScaledCellSize())
	return r3.Sub(r3.Sub(half, halfCell), g.offset)
}

// Contains reports whether every axis of c lies in [0, Size).
func (g *Grid) Contains(c Coord) bool {
	return c.X >= 0 && c.X < g.size.X &&
		c.Y >= 0 && c.Y < g.size.Y &&
		c.Z >= 0 && c.Z < g.size.Z
}

// CellPositionInGrid maps a linear index to its lattice coordinate.
func (g *Grid) CellPositionInGrid(index int) (Coord, error) {
	capacity := g.Capacity()
	if index < 0 || index >= capacity {
		return Coord{}, fmt.Errorf("%w: index %d not in [0, %d)", ErrIndexOutOfRange, index, capacity)
	}

	sx, sz := g.size.X, g.size.Z
	c := Coord{
		X: index / sz % sx,
		Y: index / (sx * sz),
		Z: index % sz,
	}
	if g.invertZ {
		c.Z = sz - 1 - c.Z
	}
	return c, nil
}

// CellIndex maps a lattice coordinate back to its linear index.
func (g *Grid) CellIndex(c Coord) (int, error) {
	if !g.Contains(c) {
		return 0, fmt.Errorf("%w: %v not within size %v", ErrCoordOutOfRange, c, g.size)
	}
	z := c.Z
	if g.invertZ {
		z = g.size.Z - 1 - z
	}
	return c.Y*g.size.X*g.size.Z + c.X*g.size.Z + z, nil
}

// CoordPositionInWorld returns the world position of the centre of cell c.
// Coordinates outside the lattice extrapolate along the same pitch.
func (g *Grid) CoordPositionInWorld(c Coord) r3.Vec {
	if g.invertZ {
		c.Z = g.size.Z - 1 - c.Z
	}

	local := mulAxes(c.Vec(), g.CellPitch())
	local = r3.Sub(local, g.LocalCenter())

	world := r3.Add(g.origin.Position(), g.origin.Rotation().Rotate(local))
	tracef("cell %v -> world %v", c, world)
	return world
}

// CellPositionInWorld returns the world position of the centre of the cell
// at index.
func (g *Grid) CellPositionInWorld(index int) (r3.Vec, error) {
	c, err := g.CellPositionInGrid(index)
	if err != nil {
		return r3.Vec{}, err
	}
	return g.CoordPositionInWorld(c), nil
}

// Cells yields every index with its coordinate in index order.
func (g *Grid) Cells() iter.Seq2[int, Coord] {
	return func(yield func(int, Coord) bool) {
		for i := 0; i < g.Capacity(); i++ {
			c, err := g.CellPositionInGrid(i)
			if err != nil {
				return
			}
			if !yield(i, c) {
				return
			}
		}
	}
}
