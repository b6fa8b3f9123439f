package readfiles

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/triview/geometry2D"
)

// qhull writes "dim\nNpts\n" ahead of the points and "Ntris\n" ahead of the
// triangles.
const (
	PointsHeaderLines    = 2
	TrianglesHeaderLines = 1
)

var ErrCountMismatch = errors.New("declared count does not match file contents")

func ReadPoints(filename string, headerLines int) (X, Y []float64, err error) {
	var (
		tb *Table
	)
	if tb, err = ReadTableFile(filename, headerLines); err != nil {
		return
	}
	Np, Nc := tb.Dims()
	if Np != 0 && Nc < 2 {
		err = fmt.Errorf("%s: points need x and y, found %d columns: %w", filename, Nc, ErrParse)
		return
	}
	X, Y = tb.Col(0), tb.Col(1)
	return
}

// ReadTriangles returns the n_vert, v0, v1, v2 columns as stored in the file.
func ReadTriangles(filename string, headerLines int) (NVert, V0, V1, V2 []float64, err error) {
	var (
		tb *Table
	)
	if tb, err = ReadTableFile(filename, headerLines); err != nil {
		return
	}
	K, Nc := tb.Dims()
	if K != 0 && Nc < 4 {
		err = fmt.Errorf("%s: triangles need n_vert v0 v1 v2, found %d columns: %w", filename, Nc, ErrParse)
		return
	}
	NVert, V0, V1, V2 = tb.Col(0), tb.Col(1), tb.Col(2), tb.Col(3)
	return
}

func ReadTriangulation(pointsFile, trianglesFile string, pointsHeader,
	trianglesHeader int, verbose bool) (tm *geometry2D.TriMesh, err error) {
	var (
		X, Y               []float64
		NVert, V0, V1, V2 []float64
	)
	if verbose {
		fmt.Printf("Reading points file named: %s\n", pointsFile)
	}
	if X, Y, err = ReadPoints(pointsFile, pointsHeader); err != nil {
		return
	}
	if verbose {
		fmt.Printf("Reading triangles file named: %s\n", trianglesFile)
	}
	if NVert, V0, V1, V2, err = ReadTriangles(trianglesFile, trianglesHeader); err != nil {
		return
	}
	tm = geometry2D.NewTriMesh(X, Y)
	for k := range NVert {
		tm.AddTri(NVert[k], V0[k], V1[k], V2[k])
	}
	if verbose {
		fmt.Printf("Np = %d, K = %d\n", len(tm.Points), len(tm.Tris))
	}
	return
}

// ReadHeader returns the first n lines of a file without parsing them.
func ReadHeader(filename string, n int) (lines []string, err error) {
	var (
		file *os.File
		line string
	)
	if file, err = os.Open(filename); err != nil {
		err = fmt.Errorf("%w %s: %v", ErrFile, filename, err)
		return
	}
	defer file.Close()
	lr := &lineReader{reader: bufio.NewReader(file)}
	for i := 0; i < n; i++ {
		if line, err = lr.getLine(); err != nil {
			if err == io.EOF {
				err = fmt.Errorf("%s: early end of file in header: %w", filename, ErrParse)
			}
			return
		}
		lines = append(lines, line)
	}
	return
}

// DeclaredCount reads the leading integer of header line i, if there is one.
func DeclaredCount(header []string, i int) (count int, ok bool) {
	if i >= len(header) {
		return
	}
	fields := strings.Fields(header[i])
	if len(fields) == 0 {
		return
	}
	var err error
	if count, err = strconv.Atoi(fields[0]); err != nil {
		return 0, false
	}
	return count, true
}

// CheckQhullCounts compares the counts qhull declares in its headers with the
// rows that were read. Headers that carry no count are not checked.
func CheckQhullCounts(pointsHeader, trianglesHeader []string, tm *geometry2D.TriMesh) (err error) {
	if Np, ok := DeclaredCount(pointsHeader, 1); ok && Np != len(tm.Points) {
		return fmt.Errorf("points header declares %d, read %d: %w", Np, len(tm.Points), ErrCountMismatch)
	}
	if K, ok := DeclaredCount(trianglesHeader, 0); ok && K != len(tm.Tris) {
		return fmt.Errorf("triangles header declares %d, read %d: %w", K, len(tm.Tris), ErrCountMismatch)
	}
	return
}
