package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/triview/geometry2D"
	"github.com/notargets/triview/utils"
)

type recordCanvas struct {
	X, Y   []float64
	Segs   []Segment
	Colors []color.RGBA
	events []string
}

func (rc *recordCanvas) Scatter(x, y []float64) {
	rc.X, rc.Y = append(rc.X, x...), append(rc.Y, y...)
	rc.events = append(rc.events, "scatter")
}

func (rc *recordCanvas) Segments(segs []Segment, col color.RGBA) {
	rc.Segs = append(rc.Segs, segs...)
	for range segs {
		rc.Colors = append(rc.Colors, col)
	}
	rc.events = append(rc.events, "segments")
}

func (rc *recordCanvas) Show(ctx context.Context) error { return nil }

func unitMesh() *geometry2D.TriMesh {
	return geometry2D.NewTriMesh([]float64{0, 1, 0}, []float64{0, 0, 1})
}

func TestRender(t *testing.T) {
	red := utils.GetColor(utils.Red)
	{ // A lone triangle row is the last row and is not drawn
		tm := unitMesh()
		tm.AddTri(3, 0, 1, 2)
		cv := &recordCanvas{}
		st, err := Render(tm, cv, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, Stats{Points: 3}, st)
		assert.Equal(t, []float64{0, 1, 0}, cv.X)
		assert.Equal(t, []float64{0, 0, 1}, cv.Y)
		assert.Empty(t, cv.Segs)
	}
	{ // Two rows draw only the first one
		tm := unitMesh()
		tm.AddTri(3, 0, 1, 2)
		tm.AddTri(3, 0, 2, 1)
		cv := &recordCanvas{}
		st, err := Render(tm, cv, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, Stats{Points: 3, Triangles: 1, Segments: 3}, st)
		assert.Equal(t, []Segment{
			{X1: 0, Y1: 0, X2: 1, Y2: 0}, // v0-v1
			{X1: 0, Y1: 0, X2: 0, Y2: 1}, // v0-v2
			{X1: 1, Y1: 0, X2: 0, Y2: 1}, // v1-v2
		}, cv.Segs)
		assert.Equal(t, []color.RGBA{red, red, red}, cv.Colors)
		assert.Equal(t, []string{"scatter", "segments"}, cv.events)
	}
	{ // IncludeLast draws every row
		tm := unitMesh()
		tm.AddTri(3, 0, 1, 2)
		tm.AddTri(3, 0, 2, 1)
		cv := &recordCanvas{}
		opts := DefaultOptions()
		opts.IncludeLast = true
		opts.EdgeColor = utils.GetColor(utils.Green)
		st, err := Render(tm, cv, opts)
		require.NoError(t, err)
		assert.Equal(t, 2, st.Triangles)
		assert.Equal(t, 6, len(cv.Segs))
		assert.Equal(t, utils.GetColor(utils.Green), cv.Colors[5])
	}
	{ // Truncated index 2.9 refers to point 2
		tm := unitMesh()
		tm.AddTri(3, 0, 1, 2.9)
		tm.AddTri(3, 0, 1, 2)
		cv := &recordCanvas{}
		_, err := Render(tm, cv, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, Segment{X1: 0, Y1: 0, X2: 0, Y2: 1}, cv.Segs[1])
	}
	{ // Index equal to the point count fails after the points are plotted
		tm := unitMesh()
		tm.AddTri(3, 0, 1, 2)
		tm.AddTri(3, 0, 1, 3)
		tm.AddTri(3, 0, 1, 2)
		cv := &recordCanvas{}
		st, err := Render(tm, cv, DefaultOptions())
		assert.True(t, errors.Is(err, geometry2D.ErrIndexOutOfRange))
		assert.Equal(t, 3, len(cv.X))
		assert.Equal(t, 1, st.Triangles)
		assert.Equal(t, 3, len(cv.Segs))
	}
}

func TestNewCanvas(t *testing.T) {
	dir := t.TempDir()
	cv, err := NewCanvas(CanvasConfig{Backend: "PNG", Output: filepath.Join(dir, "a.png"), Width: 64, Height: 64})
	require.NoError(t, err)
	assert.IsType(t, &RasterCanvas{}, cv)
	cv, err = NewCanvas(CanvasConfig{Backend: Figure, Width: 64, Height: 64})
	require.NoError(t, err)
	assert.Equal(t, "triangulation.svg", cv.(*FigureCanvas).Output)
	cv, err = NewCanvas(CanvasConfig{Backend: Window, Width: 64, Height: 64})
	require.NoError(t, err)
	assert.IsType(t, &ChartCanvas{}, cv)
	_, err = NewCanvas(CanvasConfig{Backend: PNG, Output: filepath.Join(dir, "a.svg")})
	assert.Error(t, err)
	_, err = NewCanvas(CanvasConfig{Backend: "ascii"})
	assert.True(t, errors.Is(err, ErrUnknownBackend))
	{ // Upper case names still get the default output
		cv, err = NewCanvas(CanvasConfig{Backend: "PNG", Width: 64, Height: 64})
		require.NoError(t, err)
		assert.Equal(t, "triangulation.png", cv.(*RasterCanvas).Output)
		cv, err = NewCanvas(CanvasConfig{Backend: "Figure", Width: 64, Height: 64})
		require.NoError(t, err)
		assert.Equal(t, "triangulation.svg", cv.(*FigureCanvas).Output)
	}
}

func twoTriangleMesh() *geometry2D.TriMesh {
	tm := geometry2D.NewTriMesh([]float64{0, 1, 0, 1}, []float64{0, 0, 1, 1})
	tm.AddTri(3, 0, 1, 2)
	tm.AddTri(3, 1, 3, 2)
	tm.AddTri(3, 0, 1, 2)
	return tm
}

func TestRasterCanvas(t *testing.T) {
	out := filepath.Join(t.TempDir(), "mesh.png")
	rc := NewRasterCanvas(200, 100, out, utils.GetColor(utils.Blue), false)
	st, err := Render(twoTriangleMesh(), rc, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, st.Triangles)
	require.NoError(t, rc.Show(context.Background()))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, format, err := image.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Rect(0, 0, 200, 100), img.Bounds())
	// The corner is background
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
	// Point 0 sits at the bottom left of the padded square
	r, g, b, _ = img.At(rasterPadding, 100-rasterPadding).RGBA()
	assert.NotEqual(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, rc.Show(ctx))
}

func TestFigureCanvas(t *testing.T) {
	for _, name := range []string{"mesh.svg", "mesh.png"} {
		out := filepath.Join(t.TempDir(), name)
		fc := NewFigureCanvas(300, 300, out, "mesh", utils.GetColor(utils.Blue))
		_, err := Render(twoTriangleMesh(), fc, DefaultOptions())
		require.NoError(t, err)
		require.NoError(t, fc.Show(context.Background()))
		fi, err := os.Stat(out)
		require.NoError(t, err)
		assert.True(t, fi.Size() > 0)
	}
	{ // Unsupported extension
		fc := NewFigureCanvas(300, 300, filepath.Join(t.TempDir(), "mesh.xyz"), "", utils.GetColor(utils.Blue))
		_, err := Render(twoTriangleMesh(), fc, DefaultOptions())
		require.NoError(t, err)
		assert.Error(t, fc.Show(context.Background()))
	}
}

func TestChartCanvas(t *testing.T) {
	cc := NewChartCanvas(512, 512, utils.GetColor(utils.White))
	_, err := Render(twoTriangleMesh(), cc, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 4, len(cc.X))
	assert.Equal(t, 6, len(cc.Lines[utils.GetColor(utils.Red)]))
	assert.Equal(t, 4*2*4, len(cc.crossHairs(0.01)))
	assert.Equal(t, []float32{0, 0, 1, 0}, packSegments([]Segment{{X2: 1}}))
	{ // An ended context returns at once, no window is opened
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.True(t, errors.Is(cc.Show(ctx), context.Canceled))
	}
	if !testing.Verbose() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	assert.NoError(t, cc.Show(ctx))
}
