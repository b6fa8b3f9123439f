package render

import (
	"context"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// FigureCanvas builds a gonum plot: one scatter series for the points and a
// line per segment. The output format follows the file extension.
type FigureCanvas struct {
	Width, Height int
	Output        string
	Title         string
	PointColor    color.RGBA
	Plot          *plot.Plot
	err           error
}

func NewFigureCanvas(width, height int, output, title string,
	pointColor color.RGBA) *FigureCanvas {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	return &FigureCanvas{
		Width:      width,
		Height:     height,
		Output:     output,
		Title:      title,
		PointColor: pointColor,
		Plot:       p,
	}
}

func (fc *FigureCanvas) Scatter(x, y []float64) {
	if fc.err != nil || len(x) == 0 {
		return
	}
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X, pts[i].Y = x[i], y[i]
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		fc.err = err
		return
	}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Color = fc.PointColor
	s.GlyphStyle.Radius = vg.Points(2)
	fc.Plot.Add(s)
}

func (fc *FigureCanvas) Segments(segs []Segment, col color.RGBA) {
	for _, sg := range segs {
		if fc.err != nil {
			return
		}
		l, err := plotter.NewLine(plotter.XYs{{X: sg.X1, Y: sg.Y1}, {X: sg.X2, Y: sg.Y2}})
		if err != nil {
			fc.err = err
			return
		}
		l.LineStyle.Color = col
		l.LineStyle.Width = vg.Points(1)
		fc.Plot.Add(l)
	}
}

// Show saves the figure; sizes are taken as pixels at 96 dpi.
func (fc *FigureCanvas) Show(ctx context.Context) (err error) {
	if err = ctx.Err(); err != nil {
		return
	}
	if fc.err != nil {
		return fmt.Errorf("unable to build figure: %w", fc.err)
	}
	w := vg.Length(fc.Width) * vg.Inch / 96
	h := vg.Length(fc.Height) * vg.Inch / 96
	if err = fc.Plot.Save(w, h, fc.Output); err != nil {
		return fmt.Errorf("unable to write %s: %w", fc.Output, err)
	}
	return
}
