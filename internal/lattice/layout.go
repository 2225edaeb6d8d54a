package lattice

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// CellLayout owns the base cell size and inter-cell spacing, and derives
// scaled sizes under optional per-axis maxima.
type CellLayout struct {
	cellSize r3.Vec
	spacing  r3.Vec

	maxCellSize        r3.Vec
	maxCellSizeEnabled bool

	maxSpacing        r3.Vec
	maxSpacingEnabled bool

	changed Signal
}

// NewCellLayout creates a layout with the given base cell size and spacing.
// Negative cell size axes are clamped to zero.
func NewCellLayout(cellSize, spacing r3.Vec) *CellLayout {
	return &CellLayout{
		cellSize: clampCellSize(cellSize),
		spacing:  spacing,
	}
}

// NewCellLayoutFrom copies every attribute of template. Subscribers are not
// copied.
func NewCellLayoutFrom(template *CellLayout) (*CellLayout, error) {
	if template == nil {
		return nil, fmt.Errorf("%w: cell layout template is nil", ErrInvalidArgument)
	}
	return &CellLayout{
		cellSize:           template.cellSize,
		spacing:            template.spacing,
		maxCellSize:        template.maxCellSize,
		maxCellSizeEnabled: template.maxCellSizeEnabled,
		maxSpacing:         template.maxSpacing,
		maxSpacingEnabled:  template.maxSpacingEnabled,
	}, nil
}

func clampCellSize(v r3.Vec) r3.Vec {
	c := r3.Vec{X: math.Max(v.X, 0), Y: math.Max(v.Y, 0), Z: math.Max(v.Z, 0)}
	if c != v {
		opsf("cell size %v has negative axes, clamped to %v", v, c)
	}
	return c
}

// Subscribe registers fn to run after every mutating setter.
func (l *CellLayout) Subscribe(fn func()) (unsubscribe func()) {
	return l.changed.Subscribe(fn)
}

// CellSize returns the unscaled size of one cell.
func (l *CellLayout) CellSize() r3.Vec { return l.cellSize }

// SetCellSize sets the unscaled cell size. Negative axes are clamped to zero.
func (l *CellLayout) SetCellSize(v r3.Vec) {
	l.cellSize = clampCellSize(v)
	l.changed.Emit()
}

// Spacing returns the unscaled gap between adjacent cells. Negative values
// make neighbouring cells overlap.
func (l *CellLayout) Spacing() r3.Vec { return l.spacing }

// SetSpacing sets the unscaled gap between adjacent cells.
func (l *CellLayout) SetSpacing(v r3.Vec) {
	l.spacing = v
	l.changed.Emit()
}

// MaxCellSize returns the cell size limit and whether it is enforced.
func (l *CellLayout) MaxCellSize() (r3.Vec, bool) {
	return l.maxCellSize, l.maxCellSizeEnabled
}

// SetMaxCellSize sets the cell size limit and whether it is enforced.
func (l *CellLayout) SetMaxCellSize(v r3.Vec, enabled bool) {
	l.maxCellSize = v
	l.maxCellSizeEnabled = enabled
	l.changed.Emit()
}

// MaxSpacing returns the spacing limit and whether it is enforced.
func (l *CellLayout) MaxSpacing() (r3.Vec, bool) {
	return l.maxSpacing, l.maxSpacingEnabled
}

// SetMaxSpacing sets the spacing limit and whether it is enforced.
func (l *CellLayout) SetMaxSpacing(v r3.Vec, enabled bool) {
	l.maxSpacing = v
	l.maxSpacingEnabled = enabled
	l.changed.Emit()
}

// MaxCellSizeScale is the largest uniform scale that keeps every cell axis
// within MaxCellSize. It is +Inf when the limit is disabled. An axis with zero
// cell size never binds.
func (l *CellLayout) MaxCellSizeScale() float64 {
	if !l.maxCellSizeEnabled {
		return math.Inf(1)
	}
	return axisRatioMin(l.maxCellSize, l.cellSize)
}

// MaxSpacingScale is the spacing counterpart of MaxCellSizeScale.
func (l *CellLayout) MaxSpacingScale() float64 {
	if !l.maxSpacingEnabled {
		return math.Inf(1)
	}
	return axisRatioMin(l.maxSpacing, l.spacing)
}

// axisRatioMin returns the smallest max/base ratio. Axes whose base is not
// positive never bind: a zero or negative extent cannot grow past a
// non-negative limit under a non-negative scale.
func axisRatioMin(max, base r3.Vec) float64 {
	return minFinite(axisRatio(max.X, base.X), axisRatio(max.Y, base.Y), axisRatio(max.Z, base.Z))
}

func axisRatio(max, base float64) float64 {
	if !(base > 0) {
		return math.Inf(1)
	}
	return max / base
}

// CellSizeFor returns the cell size multiplied by scale, without clamping.
func (l *CellLayout) CellSizeFor(scale r3.Vec) r3.Vec {
	return mulAxes(l.cellSize, scale)
}

// ScaledCellSize returns the cell size multiplied by scale, with each scale
// axis capped at MaxCellSizeScale.
func (l *CellLayout) ScaledCellSize(scale r3.Vec) r3.Vec {
	return mulAxes(l.cellSize, ClampAxes(scale, l.MaxCellSizeScale()))
}

// ScaledSpacing returns the spacing multiplied by scale, with each scale axis
// capped at MaxSpacingScale.
func (l *CellLayout) ScaledSpacing(scale r3.Vec) r3.Vec {
	return mulAxes(l.spacing, ClampAxes(scale, l.MaxSpacingScale()))
}

// WorldSize returns the unclamped extent of a lattice of size cells at scale.
// Empty axes have zero extent.
func (l *CellLayout) WorldSize(size Coord, scale r3.Vec) r3.Vec {
	return r3.Vec{
		X: axisExtent(size.X, l.cellSize.X, l.spacing.X, scale.X),
		Y: axisExtent(size.Y, l.cellSize.Y, l.spacing.Y, scale.Y),
		Z: axisExtent(size.Z, l.cellSize.Z, l.spacing.Z, scale.Z),
	}
}

// axisExtent is AxisWorldSize for world-size queries: zero for an empty axis
// and never negative, even when overlapping cells fold back past each other.
func axisExtent(count int, cellSize, spacing, scaleFactor float64) float64 {
	if count <= 0 {
		return 0
	}
	return math.Max(AxisWorldSize(count, cellSize, spacing, scaleFactor), 0)
}

// AxisWorldSize returns the extent along one axis of count cells of cellSize
// separated by spacing, multiplied by scaleFactor. A count of zero yields
// -spacing*scaleFactor; callers treat count <= 0 as an empty axis.
func AxisWorldSize(count int, cellSize, spacing, scaleFactor float64) float64 {
	n := float64(count)
	return (n*cellSize + (n-1)*spacing) * scaleFactor
}
