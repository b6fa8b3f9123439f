package geometry2D

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

var ErrIndexOutOfRange = errors.New("vertex index out of range")

type Point struct {
	X [2]float64
}

// Triangle is one row of a qhull triangle file. NVert is carried through
// from the file but is not used for drawing.
type Triangle struct {
	NVert int
	Verts [3]int
}

type TriMesh struct {
	Tris   []Triangle
	Points []Point
}

func NewTriMesh(X, Y []float64) (tm *TriMesh) {
	pts := make([]Point, len(X))
	for i, x := range X {
		pts[i].X[0] = x
		pts[i].X[1] = Y[i]
	}
	tm = &TriMesh{
		Tris:   nil,
		Points: pts,
	}
	return
}

// AddTri appends a triangle whose fields were stored as floats. Indices are
// truncated toward zero, so 2.9 refers to point 2. Range is not checked here.
func (tm *TriMesh) AddTri(nVert, v0, v1, v2 float64) {
	tm.Tris = append(tm.Tris, Triangle{
		NVert: int(nVert),
		Verts: [3]int{int(v0), int(v1), int(v2)},
	})
}

func (tm *TriMesh) XY() (X, Y []float64) {
	X, Y = make([]float64, len(tm.Points)), make([]float64, len(tm.Points))
	for i, pt := range tm.Points {
		X[i], Y[i] = pt.X[0], pt.X[1]
	}
	return
}

// RenderCount is the number of leading triangles that get drawn. Unless
// includeLast is set the final row is left out, matching the qhull plotting
// tool this replaces.
func (tm *TriMesh) RenderCount(includeLast bool) (count int) {
	count = len(tm.Tris)
	if !includeLast {
		count--
	}
	if count < 0 {
		count = 0
	}
	return
}

// Edges returns the vertex pairs (v0,v1), (v0,v2), (v1,v2) of triangle k.
func (tm *TriMesh) Edges(k int) (edges [3][2]int, err error) {
	var (
		Np    = len(tm.Points)
		verts = tm.Tris[k].Verts
	)
	for _, v := range verts {
		if v < 0 || v >= Np {
			err = fmt.Errorf("triangle %d references vertex %d with %d points: %w",
				k, v, Np, ErrIndexOutOfRange)
			return
		}
	}
	edges[0] = [2]int{verts[0], verts[1]}
	edges[1] = [2]int{verts[0], verts[2]}
	edges[2] = [2]int{verts[1], verts[2]}
	return
}

func (tm *TriMesh) Point(i int) (x, y float64) {
	return tm.Points[i].X[0], tm.Points[i].X[1]
}

// BoundingBox of all points, zero when there are none.
func (tm *TriMesh) BoundingBox() (xMin, xMax, yMin, yMax float64) {
	if len(tm.Points) == 0 {
		return
	}
	X, Y := tm.XY()
	xMin, xMax = floats.Min(X), floats.Max(X)
	yMin, yMax = floats.Min(Y), floats.Max(Y)
	return
}
