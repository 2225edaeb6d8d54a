package overlay

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Plane selects the two world axes a PlotRenderer projects onto.
type Plane int

const (
	// PlaneXZ is the top-down view.
	PlaneXZ Plane = iota
	// PlaneXY is the front view.
	PlaneXY
	// PlaneZY is the side view.
	PlaneZY
)

func (p Plane) project(v r3.Vec) plotter.XY {
	switch p {
	case PlaneXY:
		return plotter.XY{X: v.X, Y: v.Y}
	case PlaneZY:
		return plotter.XY{X: v.Z, Y: v.Y}
	default:
		return plotter.XY{X: v.X, Y: v.Z}
	}
}

func (p Plane) axisLabels() (string, string) {
	switch p {
	case PlaneXY:
		return "X", "Y"
	case PlaneZY:
		return "Z", "Y"
	default:
		return "X", "Z"
	}
}

var (
	cellColor   = color.RGBA{G: 160, A: 255}
	boundsColor = color.RGBA{R: 220, A: 255}
)

// PlotRenderer collects boxes and renders their orthographic projection
// with gonum/plot.
type PlotRenderer struct {
	Title string
	Plane Plane

	boxes []Box
}

// NewPlotRenderer creates a renderer projecting onto plane.
func NewPlotRenderer(title string, plane Plane) *PlotRenderer {
	return &PlotRenderer{Title: title, Plane: plane}
}

func (pr *PlotRenderer) DrawWireBox(b Box) {
	pr.boxes = append(pr.boxes, b)
}

// Len returns the number of collected boxes.
func (pr *PlotRenderer) Len() int { return len(pr.boxes) }

// Plot builds the plot: one polyline per box, cells in green and the
// auto-scale bound in red.
func (pr *PlotRenderer) Plot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = pr.Title
	p.X.Label.Text, p.Y.Label.Text = pr.Plane.axisLabels()

	legended := make(map[BoxKind]bool)
	for _, b := range pr.boxes {
		path := b.WirePath()
		pts := make(plotter.XYs, len(path))
		for i, v := range path {
			pts[i] = pr.Plane.project(v)
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Label(), err)
		}
		line.Width = vg.Points(1)
		line.Color = cellColor
		if b.Kind == BoundsBox {
			line.Color = boundsColor
			line.Width = vg.Points(1.5)
		}
		p.Add(line)

		if !legended[b.Kind] {
			p.Legend.Add(b.Kind.String(), line)
			legended[b.Kind] = true
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// WriteTo renders the plot in format ("png", "svg", "pdf", ...) to w.
func (pr *PlotRenderer) WriteTo(w io.Writer, width, height vg.Length, format string) error {
	p, err := pr.Plot()
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return fmt.Errorf("create %s writer: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %s plot: %w", format, err)
	}
	return nil
}

// Save renders an 8x8 inch plot to path; the format follows the extension.
func (pr *PlotRenderer) Save(path string) error {
	p, err := pr.Plot()
	if err != nil {
		return err
	}
	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("save overlay plot: %w", err)
	}
	return nil
}
