package render

import (
	"context"
	"image/color"

	"github.com/notargets/avs/chart2d"
	avsUtils "github.com/notargets/avs/utils"

	"github.com/notargets/triview/utils"
)

// ChartCanvas draws into an avs OpenGL window. Markers are cross hairs made
// of two short segments each.
type ChartCanvas struct {
	Width, Height int
	PointColor    color.RGBA
	X, Y          []float64
	Lines         map[color.RGBA][]Segment
	colorOrder    []color.RGBA
}

func NewChartCanvas(width, height int, pointColor color.RGBA) *ChartCanvas {
	return &ChartCanvas{
		Width:      width,
		Height:     height,
		PointColor: pointColor,
		Lines:      make(map[color.RGBA][]Segment),
	}
}

func (cc *ChartCanvas) Scatter(x, y []float64) {
	cc.X = append(cc.X, x...)
	cc.Y = append(cc.Y, y...)
}

func (cc *ChartCanvas) Segments(segs []Segment, col color.RGBA) {
	if _, ok := cc.Lines[col]; !ok {
		cc.colorOrder = append(cc.colorOrder, col)
	}
	cc.Lines[col] = append(cc.Lines[col], segs...)
}

// crossHairs returns the marker segments packed as x1,y1,x2,y2 quads.
func (cc *ChartCanvas) crossHairs(size float64) (line []float32) {
	sz := float32(size)
	for i, x := range cc.X {
		xl, yl := float32(x), float32(cc.Y[i])
		line = append(line,
			xl-sz, yl, xl+sz, yl,
			xl, yl-sz, xl, yl+sz,
		)
	}
	return
}

func packSegments(segs []Segment) (line []float32) {
	line = make([]float32, 0, 4*len(segs))
	for _, s := range segs {
		line = append(line, float32(s.X1), float32(s.Y1), float32(s.X2), float32(s.Y2))
	}
	return
}

// Show opens the window and blocks until ctx is cancelled. Closing the window
// does not return: the avs event loop ends without telling the caller, so the
// process lives until the context ends. A context that has already ended
// returns its error without opening a window.
func (cc *ChartCanvas) Show(ctx context.Context) (err error) {
	if err = ctx.Err(); err != nil {
		return
	}
	var all []Segment
	for _, col := range cc.colorOrder {
		all = append(all, cc.Lines[col]...)
	}
	xMin, xMax, yMin, yMax := utils.GetSquareBoundingBox(boundingBox(cc.X, cc.Y, all))
	xMin, xMax, yMin, yMax = utils.ScaleBox(xMin, xMax, yMin, yMax, 1.1)
	ch := chart2d.NewChart2D(float32(xMin), float32(xMax), float32(yMin), float32(yMax),
		cc.Width, cc.Height, avsUtils.WHITE, avsUtils.BLACK, 0.9)
	if len(cc.X) != 0 {
		ch.AddLine(cc.crossHairs(0.005*(xMax-xMin)), cc.PointColor)
	}
	for _, col := range cc.colorOrder {
		ch.AddLine(packSegments(cc.Lines[col]), col)
	}
	<-ctx.Done()
	return
}
