package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"

	"github.com/notargets/triview/utils"
)

const rasterPadding = 20

type rasterLines struct {
	col  color.RGBA
	segs []Segment
}

// RasterCanvas paints into a gg context and saves a PNG. With Inline set the
// image is also written to stdout using the iTerm image protocol.
type RasterCanvas struct {
	Width, Height int
	Output        string
	PointColor    color.RGBA
	Inline        bool
	LineWidth     float64
	PointRadius   float64
	X, Y          []float64
	lines         []rasterLines
}

func NewRasterCanvas(width, height int, output string, pointColor color.RGBA,
	inline bool) *RasterCanvas {
	return &RasterCanvas{
		Width:       width,
		Height:      height,
		Output:      output,
		PointColor:  pointColor,
		Inline:      inline,
		LineWidth:   1,
		PointRadius: 3,
	}
}

func (rc *RasterCanvas) Scatter(x, y []float64) {
	rc.X = append(rc.X, x...)
	rc.Y = append(rc.Y, y...)
}

func (rc *RasterCanvas) Segments(segs []Segment, col color.RGBA) {
	rc.lines = append(rc.lines, rasterLines{col: col, segs: segs})
}

// Draw paints everything gathered so far and returns the image.
func (rc *RasterCanvas) Draw() image.Image {
	var all []Segment
	for _, l := range rc.lines {
		all = append(all, l.segs...)
	}
	xMin, xMax, yMin, yMax := utils.GetSquareBoundingBox(boundingBox(rc.X, rc.Y, all))
	scaleX := float64(rc.Width-2*rasterPadding) / (xMax - xMin)
	scaleY := float64(rc.Height-2*rasterPadding) / (yMax - yMin)
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}

	c := gg.NewContext(rc.Width, rc.Height)
	c.SetRGB(1, 1, 1)
	c.Clear()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(rc.Height))
	c.Scale(1, -1)
	c.Translate(rasterPadding, rasterPadding)

	toPixel := func(x, y float64) (float64, float64) {
		return (x - xMin) * scale, (y - yMin) * scale
	}

	c.SetColor(rc.PointColor)
	for i, x := range rc.X {
		px, py := toPixel(x, rc.Y[i])
		c.DrawCircle(px, py, rc.PointRadius)
		c.Fill()
	}

	c.SetLineWidth(rc.LineWidth)
	for _, l := range rc.lines {
		c.SetColor(l.col)
		for _, s := range l.segs {
			x1, y1 := toPixel(s.X1, s.Y1)
			x2, y2 := toPixel(s.X2, s.Y2)
			c.DrawLine(x1, y1, x2, y2)
		}
		c.Stroke()
	}
	return c.Image()
}

func (rc *RasterCanvas) Show(ctx context.Context) (err error) {
	if err = ctx.Err(); err != nil {
		return
	}
	if err = gg.SavePNG(rc.Output, rc.Draw()); err != nil {
		return fmt.Errorf("unable to write %s: %w", rc.Output, err)
	}
	if rc.Inline {
		if err = imgcat.CatFile(rc.Output, os.Stdout); err != nil {
			return fmt.Errorf("unable to display %s inline: %w", rc.Output, err)
		}
	}
	return
}
