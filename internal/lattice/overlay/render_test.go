package overlay

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/banshee-data/lattice/internal/lattice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/vg"
)

func autoScaledGrid(t *testing.T) *lattice.Grid {
	t.Helper()
	g := testGrid(t)
	g.SetMaxWorldSize(r3.Vec{X: 4, Y: 4, Z: 4})
	g.SetAutoScale(true)
	return g
}

func TestPlotRenderer_Formats(t *testing.T) {
	for _, plane := range []Plane{PlaneXZ, PlaneXY, PlaneZY} {
		pr := NewPlotRenderer("lattice", plane)
		n, err := Draw(autoScaledGrid(t), pr)
		require.NoError(t, err)
		assert.Equal(t, n, pr.Len())

		var png bytes.Buffer
		require.NoError(t, pr.WriteTo(&png, 4*vg.Inch, 4*vg.Inch, "png"))
		assert.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")), "plane %d: not a PNG", plane)

		var svg bytes.Buffer
		require.NoError(t, pr.WriteTo(&svg, 4*vg.Inch, 4*vg.Inch, "svg"))
		assert.Contains(t, svg.String(), "<svg")
	}
}

func TestPlotRenderer_Legend(t *testing.T) {
	pr := NewPlotRenderer("lattice", PlaneXZ)
	_, err := Draw(autoScaledGrid(t), pr)
	require.NoError(t, err)

	p, err := pr.Plot()
	require.NoError(t, err)
	assert.Equal(t, "X", p.X.Label.Text)
	assert.Equal(t, "Z", p.Y.Label.Text)
	assert.Equal(t, "lattice", p.Title.Text)
}

func TestPlotRenderer_UnknownFormat(t *testing.T) {
	pr := NewPlotRenderer("lattice", PlaneXZ)
	pr.DrawWireBox(Box{Size: r3.Vec{X: 1, Y: 1, Z: 1}})
	err := pr.WriteTo(&bytes.Buffer{}, vg.Inch, vg.Inch, "bmp-nope")
	assert.Error(t, err)
}

func TestPlotRenderer_Save(t *testing.T) {
	pr := NewPlotRenderer("lattice", PlaneXY)
	_, err := Draw(testGrid(t), pr)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "overlay.png")
	require.NoError(t, pr.Save(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestPlane_Project(t *testing.T) {
	v := r3.Vec{X: 1, Y: 2, Z: 3}
	assert.Equal(t, 1.0, PlaneXZ.project(v).X)
	assert.Equal(t, 3.0, PlaneXZ.project(v).Y)
	assert.Equal(t, 2.0, PlaneXY.project(v).Y)
	assert.Equal(t, 3.0, PlaneZY.project(v).X)
}

func TestEChartsRenderer_Render(t *testing.T) {
	er := NewEChartsRenderer("lattice overlay")
	_, err := Draw(autoScaledGrid(t), er)
	require.NoError(t, err)
	assert.Equal(t, 9, er.Len())

	var buf bytes.Buffer
	require.NoError(t, er.Render(&buf))
	html := buf.String()
	assert.Contains(t, html, "lattice overlay")
	assert.Contains(t, html, "line3D")
	assert.Contains(t, html, "cell 0")
	assert.Contains(t, html, "bounds")
}
