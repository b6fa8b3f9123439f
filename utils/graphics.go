package utils

import (
	"fmt"
	"image/color"
	"strings"
)

type ColorName uint8

const (
	White ColorName = iota
	Blue
	Red
	Green
	Black
)

var colorNames = map[string]ColorName{
	"white": White,
	"blue":  Blue,
	"red":   Red,
	"green": Green,
	"black": Black,
}

func GetColor(name ColorName) (c color.RGBA) {
	switch name {
	case White:
		c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	case Blue:
		c = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	case Red:
		c = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	case Green:
		c = color.RGBA{R: 25, G: 255, B: 25, A: 255}
	case Black:
		c = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	}
	return
}

// ParseColor accepts a colour name or a #rrggbb hex triple.
func ParseColor(s string) (c color.RGBA, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if name, ok := colorNames[s]; ok {
		return GetColor(name), nil
	}
	if len(s) == 7 && s[0] == '#' {
		var r, g, b uint8
		if _, err = fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err == nil {
			return color.RGBA{R: r, G: g, B: b, A: 255}, nil
		}
	}
	err = fmt.Errorf("unknown color [%s], use a name or #rrggbb", s)
	return
}

// GetSquareBoundingBox grows the shorter side of a box so both sides match,
// keeping the centre. Degenerate boxes get a unit extent.
func GetSquareBoundingBox(xMin, xMax, yMin, yMax float64) (xBMin,
	xBMax, yBMin, yBMax float64) {
	xRange := xMax - xMin
	yRange := yMax - yMin
	if xRange == 0 && yRange == 0 {
		return xMin - 0.5, xMax + 0.5, yMin - 0.5, yMax + 0.5
	}
	if yRange > xRange {
		yBMin = yMin
		yBMax = yMax
		xCent := xRange/2. + xMin
		xBMin = xCent - yRange/2.
		xBMax = xCent + yRange/2.
	} else {
		xBMin = xMin
		xBMax = xMax
		yCent := yRange/2. + yMin
		yBMin = yCent - xRange/2.
		yBMax = yCent + xRange/2.
	}
	return
}

// ScaleBox scales a box about its centre.
func ScaleBox(xMin, xMax, yMin, yMax, scale float64) (float64, float64, float64, float64) {
	xc, yc := (xMin+xMax)/2, (yMin+yMax)/2
	xh, yh := scale*(xMax-xMin)/2, scale*(yMax-yMin)/2
	return xc - xh, xc + xh, yc - yh, yc + yh
}
