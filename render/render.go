package render

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/notargets/triview/geometry2D"
	"github.com/notargets/triview/utils"
)

var ErrUnknownBackend = errors.New("unknown backend")

type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Canvas receives markers and line segments and presents them on Show.
type Canvas interface {
	Scatter(x, y []float64)
	Segments(segs []Segment, col color.RGBA)
	Show(ctx context.Context) error
}

type Options struct {
	EdgeColor   color.RGBA
	IncludeLast bool
}

func DefaultOptions() Options {
	return Options{
		EdgeColor: utils.GetColor(utils.Red),
	}
}

type Stats struct {
	Points, Triangles, Segments int
}

// Render scatters every point, then draws the three edges of each triangle
// that RenderCount selects. An out of range vertex stops the render with the
// points and all earlier triangles already on the canvas.
func Render(tm *geometry2D.TriMesh, cv Canvas, opts Options) (st Stats, err error) {
	var (
		X, Y  = tm.XY()
		edges [3][2]int
	)
	cv.Scatter(X, Y)
	st.Points = len(X)
	for k := 0; k < tm.RenderCount(opts.IncludeLast); k++ {
		if edges, err = tm.Edges(k); err != nil {
			err = fmt.Errorf("rendering triangle %d: %w", k, err)
			return
		}
		segs := make([]Segment, 3)
		for i, e := range edges {
			segs[i] = Segment{X1: X[e[0]], Y1: Y[e[0]], X2: X[e[1]], Y2: Y[e[1]]}
		}
		cv.Segments(segs, opts.EdgeColor)
		st.Triangles++
		st.Segments += len(segs)
	}
	return
}

type Backend string

const (
	Window Backend = "window"
	PNG    Backend = "png"
	Figure Backend = "figure"
)

type CanvasConfig struct {
	Backend       Backend
	Output        string
	Width, Height int
	PointColor    color.RGBA
	Title         string
	Inline        bool
}

// DefaultOutput names the file written by the file backends when no output
// was given.
func DefaultOutput(b Backend) string {
	switch b {
	case PNG:
		return "triangulation.png"
	case Figure:
		return "triangulation.svg"
	}
	return ""
}

// NewCanvas matches the backend name without regard to case.
func NewCanvas(cfg CanvasConfig) (cv Canvas, err error) {
	cfg.Backend = Backend(strings.ToLower(strings.TrimSpace(string(cfg.Backend))))
	if cfg.Output == "" {
		cfg.Output = DefaultOutput(cfg.Backend)
	}
	switch cfg.Backend {
	case Window:
		cv = NewChartCanvas(cfg.Width, cfg.Height, cfg.PointColor)
	case PNG:
		if ext := strings.ToLower(filepath.Ext(cfg.Output)); ext != ".png" {
			err = fmt.Errorf("png backend writes .png files, got [%s]", cfg.Output)
			return
		}
		cv = NewRasterCanvas(cfg.Width, cfg.Height, cfg.Output, cfg.PointColor, cfg.Inline)
	case Figure:
		cv = NewFigureCanvas(cfg.Width, cfg.Height, cfg.Output, cfg.Title, cfg.PointColor)
	default:
		err = fmt.Errorf("[%s], choose one of window, png, figure: %w", cfg.Backend, ErrUnknownBackend)
	}
	return
}

func boundingBox(X, Y []float64, segs []Segment) (xMin, xMax, yMin, yMax float64) {
	tm := geometry2D.NewTriMesh(X, Y)
	for _, s := range segs {
		tm.Points = append(tm.Points,
			geometry2D.Point{X: [2]float64{s.X1, s.Y1}},
			geometry2D.Point{X: [2]float64{s.X2, s.Y2}})
	}
	return tm.BoundingBox()
}
