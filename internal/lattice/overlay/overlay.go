// Package overlay draws a lattice as wireframe boxes for debugging.
//
// The overlay reads a grid only through Source and hands every box to a
// Renderer, so the lattice model never depends on a drawing backend.
// Backends: Recorder (in memory), PlotRenderer (gonum/plot projection to
// PNG/SVG/PDF) and EChartsRenderer (interactive 3-D HTML).
package overlay

import (
	"fmt"

	"github.com/banshee-data/lattice/internal/lattice"
	"gonum.org/v1/gonum/spatial/r3"
)

// Source is the read-only grid API the overlay consumes.
type Source interface {
	Capacity() int
	CellPositionInWorld(index int) (r3.Vec, error)
	ScaledCellSize() r3.Vec
	AutoScale() bool
	MaxWorldSize() r3.Vec
	Origin() *lattice.Origin
}

// Renderer receives one call per box to draw.
type Renderer interface {
	DrawWireBox(b Box)
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(b Box)

func (f RendererFunc) DrawWireBox(b Box) { f(b) }

// Draw emits a CellBox for every index in [0, capacity) and, when auto-scale
// is enabled, one BoundsBox of MaxWorldSize centred on the origin position.
// It returns the number of boxes drawn.
func Draw(src Source, r Renderer) (int, error) {
	if src == nil || r == nil {
		return 0, fmt.Errorf("%w: overlay needs a source and a renderer", lattice.ErrInvalidArgument)
	}

	origin := src.Origin()
	rotation := origin.Rotation()
	cellSize := src.ScaledCellSize()

	drawn := 0
	for i := 0; i < src.Capacity(); i++ {
		center, err := src.CellPositionInWorld(i)
		if err != nil {
			return drawn, fmt.Errorf("cell %d: %w", i, err)
		}
		r.DrawWireBox(Box{Kind: CellBox, Index: i, Center: center, Size: cellSize, Rotation: rotation})
		drawn++
	}

	if src.AutoScale() {
		r.DrawWireBox(Box{
			Kind:     BoundsBox,
			Index:    -1,
			Center:   origin.Position(),
			Size:     src.MaxWorldSize(),
			Rotation: rotation,
		})
		drawn++
	}
	return drawn, nil
}

// Recorder keeps every box it is asked to draw.
type Recorder struct {
	Boxes []Box
}

func (rec *Recorder) DrawWireBox(b Box) {
	rec.Boxes = append(rec.Boxes, b)
}

// Reset drops the recorded boxes.
func (rec *Recorder) Reset() {
	rec.Boxes = rec.Boxes[:0]
}
