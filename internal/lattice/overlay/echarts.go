package overlay

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// EChartsRenderer collects boxes and renders them as an interactive 3-D
// wireframe page with go-echarts.
type EChartsRenderer struct {
	Title string

	boxes []Box
}

// NewEChartsRenderer creates a renderer whose page carries title.
func NewEChartsRenderer(title string) *EChartsRenderer {
	return &EChartsRenderer{Title: title}
}

func (er *EChartsRenderer) DrawWireBox(b Box) {
	er.boxes = append(er.boxes, b)
}

// Len returns the number of collected boxes.
func (er *EChartsRenderer) Len() int { return len(er.boxes) }

// Chart builds a Line3D chart with one series per box.
func (er *EChartsRenderer) Chart() *charts.Line3D {
	chart := charts.NewLine3D()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: er.Title, Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: er.Title, Subtitle: fmt.Sprintf("boxes=%d", len(er.boxes))}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "X"}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "Y"}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Z"}),
	)

	for _, b := range er.boxes {
		path := b.WirePath()
		data := make([]opts.Chart3DData, len(path))
		for i, v := range path {
			data[i] = opts.Chart3DData{Value: []interface{}{v.X, v.Y, v.Z}}
		}

		lineColor := "#00a000"
		if b.Kind == BoundsBox {
			lineColor = "#dc0000"
		}
		chart.AddSeries(b.Label(), data, charts.WithLineStyleOpts(opts.LineStyle{Color: lineColor}))
	}
	return chart
}

// Render writes the HTML page to w.
func (er *EChartsRenderer) Render(w io.Writer) error {
	if err := er.Chart().Render(w); err != nil {
		return fmt.Errorf("render overlay chart: %w", err)
	}
	return nil
}
