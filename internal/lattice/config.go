package lattice

import (
	"fmt"

	"github.com/banshee-data/lattice/internal/config"
	"gonum.org/v1/gonum/spatial/r3"
)

// GridFromConfig builds a Grid with a manual origin from cfg. Unset fields
// take their defaults. The configuration is validated first.
func GridFromConfig(cfg *config.LatticeConfig) (*Grid, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: lattice config is nil", ErrInvalidArgument)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lattice config: %w", err)
	}

	layout := NewCellLayout(vecFrom(cfg.GetCellSize()), vecFrom(cfg.GetSpacing()))
	maxCell, maxCellOn := cfg.GetMaxCellSize()
	maxSpacing, maxSpacingOn := cfg.GetMaxSpacing()
	layout.maxCellSize, layout.maxCellSizeEnabled = vecFrom(maxCell), maxCellOn
	layout.maxSpacing, layout.maxSpacingEnabled = vecFrom(maxSpacing), maxSpacingOn

	q := cfg.GetOriginRotation()
	origin := NewOrigin()
	origin.position = vecFrom(cfg.GetOriginPosition())
	origin.rotation = r3.Rotation{Real: q[0], Imag: q[1], Jmag: q[2], Kmag: q[3]}
	origin.scale = vecFrom(cfg.GetOriginScale())

	size := cfg.GetSize()
	g := NewGrid(Coord{X: size[0], Y: size[1], Z: size[2]}, layout, origin)
	g.invertZ = cfg.GetInvertZ()
	g.offset = vecFrom(cfg.GetOffset())
	g.scale = vecFrom(cfg.GetScale())
	g.maxWorldSize = vecFrom(cfg.GetMaxWorldSize())
	g.autoScale = cfg.GetAutoScale()
	if g.autoScale {
		g.solveAutoScale()
	}

	diagf("grid from config: size=%v cell=%v spacing=%v auto_scale=%t scale=%v",
		g.size, layout.cellSize, layout.spacing, g.autoScale, g.scale)
	return g, nil
}

// ToConfig captures the grid's attribute values. The origin is recorded from
// its manual values; an attached anchor is not part of the configuration.
func (g *Grid) ToConfig() *config.LatticeConfig {
	maxCell, maxCellOn := g.layout.MaxCellSize()
	maxSpacing, maxSpacingOn := g.layout.MaxSpacing()
	q := g.origin.ManualRotation()

	size := [3]int{g.size.X, g.size.Y, g.size.Z}
	invertZ, autoScale := g.invertZ, g.autoScale
	offset, scale, maxWorld := arrayFrom(g.offset), arrayFrom(g.scale), arrayFrom(g.maxWorldSize)
	cell, spacing := arrayFrom(g.layout.CellSize()), arrayFrom(g.layout.Spacing())
	maxCellArr, maxSpacingArr := arrayFrom(maxCell), arrayFrom(maxSpacing)
	position, originScale := arrayFrom(g.origin.ManualPosition()), arrayFrom(g.origin.ManualScale())
	rotation := [4]float64{q.Real, q.Imag, q.Jmag, q.Kmag}

	return &config.LatticeConfig{
		Size:               &size,
		InvertZ:            &invertZ,
		Offset:             &offset,
		CellSize:           &cell,
		Spacing:            &spacing,
		MaxCellSize:        &maxCellArr,
		MaxCellSizeEnabled: &maxCellOn,
		MaxSpacing:         &maxSpacingArr,
		MaxSpacingEnabled:  &maxSpacingOn,
		Scale:              &scale,
		AutoScale:          &autoScale,
		MaxWorldSize:       &maxWorld,
		Origin: &config.OriginConfig{
			Position: &position,
			Rotation: &rotation,
			Scale:    &originScale,
		},
	}
}

func vecFrom(a [3]float64) r3.Vec {
	return r3.Vec{X: a[0], Y: a[1], Z: a[2]}
}

func arrayFrom(v r3.Vec) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
