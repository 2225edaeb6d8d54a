package lattice

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// AutoScale reports whether the grid scale is solved from the world bounds.
func (g *Grid) AutoScale() bool { return g.autoScale }

// SetAutoScale enables or disables auto-scale. Enabling it solves the scale
// immediately; disabling it keeps the last solved scale.
func (g *Grid) SetAutoScale(enabled bool) {
	g.autoScale = enabled
	g.mutated()
}

// MaxWorldSize returns the world bound used by auto-scale.
func (g *Grid) MaxWorldSize() r3.Vec { return g.maxWorldSize }

// SetMaxWorldSize sets the world bound used by auto-scale.
func (g *Grid) SetMaxWorldSize(size r3.Vec) {
	g.maxWorldSize = size
	g.mutated()
}

// ApplyAutoScale solves the scale and fires the change signal. Use it when a
// live anchor changed or was destroyed, since anchors do not notify the grid.
func (g *Grid) ApplyAutoScale() {
	g.origin.noteExpiry()
	g.solveAutoScale()
	g.changed.Emit()
}

// MaxWorldScale is the largest uniform grid scale for which the unclamped
// lattice fits inside MaxWorldSize at the current origin scale. Empty axes and
// axes whose base extent is not positive never bind.
func (g *Grid) MaxWorldScale() float64 {
	base := g.BaseWorldSize()
	originScale := absAxes(g.origin.Scale())
	return minFinite(
		worldRatio(g.size.X, g.maxWorldSize.X, base.X, originScale.X),
		worldRatio(g.size.Y, g.maxWorldSize.Y, base.Y, originScale.Y),
		worldRatio(g.size.Z, g.maxWorldSize.Z, base.Z, originScale.Z),
	)
}

func worldRatio(count int, max, base, originScale float64) float64 {
	if count <= 0 || !(base > 0) {
		return math.Inf(1)
	}
	return max / (base * originScale)
}

// AutoScaleFactor returns the uniform factor auto-scale would apply: the
// smallest of MaxWorldScale and the layout's cell size and spacing limits,
// each taken relative to the largest origin scale axis. NaN candidates are
// ignored and negative ones floor at zero. When nothing binds the factor is 1.
func (g *Grid) AutoScaleFactor() float64 {
	originScale := absAxes(g.origin.Scale())
	largest := math.Max(originScale.X, math.Max(originScale.Y, originScale.Z))

	factor := minFinite(
		g.MaxWorldScale(),
		g.layout.MaxCellSizeScale()/largest,
		g.layout.MaxSpacingScale()/largest,
	)
	switch {
	case math.IsInf(factor, 1):
		return 1
	case factor < 0:
		return 0
	}
	return factor
}

func (g *Grid) solveAutoScale() {
	f := g.AutoScaleFactor()
	g.scale = r3.Vec{X: f, Y: f, Z: f}
	diagf("auto-scale size=%v max_world=%v factor=%.6g", g.size, g.maxWorldSize, f)
}
