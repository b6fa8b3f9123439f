package readfiles

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pointsFile = []byte(`2
5
0.0 0.0
1.0 0.0 7.5
`)

func TestReadTable(t *testing.T) {
	{ // Header lines are skipped, rows are parsed in order
		tb, err := ReadTable(bytes.NewReader([]byte("H1\nH2\n0 0\n1 0\n0 1\n")), 2)
		require.NoError(t, err)
		r, c := tb.Dims()
		assert.Equal(t, 3, r)
		assert.Equal(t, 2, c)
		assert.Equal(t, []float64{0, 1, 0}, tb.Col(0))
		assert.Equal(t, []float64{0, 0, 1}, tb.Col(1))
		assert.Equal(t, 1., tb.At(2, 1))
	}
	{ // Blank lines, comments, tabs, CRLF and a missing final newline
		tb, err := ReadTable(bytes.NewReader([]byte("H\r\n\r\n# comment\n3\t0 1 2\r\n 3 0 2.9 1")), 1)
		require.NoError(t, err)
		r, c := tb.Dims()
		assert.Equal(t, 2, r)
		assert.Equal(t, 4, c)
		assert.Equal(t, 2.9, tb.At(1, 2))
	}
	{ // Header only gives an empty table
		tb, err := ReadTable(bytes.NewReader([]byte("H\n")), 1)
		require.NoError(t, err)
		r, c := tb.Dims()
		assert.Equal(t, 0, r)
		assert.Equal(t, 0, c)
		assert.Nil(t, tb.Col(0))
	}
	{ // Non numeric token
		_, err := ReadTable(bytes.NewReader([]byte("H\n3 0 x 2\n")), 1)
		assert.True(t, errors.Is(err, ErrParse))
		assert.Contains(t, err.Error(), "line 2")
	}
	{ // Ragged rows
		_, err := ReadTable(bytes.NewReader([]byte("H\n3 0 1 2\n3 0 1\n")), 1)
		assert.True(t, errors.Is(err, ErrParse))
		assert.Contains(t, err.Error(), "line 3")
	}
	{ // Not enough header lines
		_, err := ReadTable(bytes.NewReader([]byte("H1\n")), 2)
		assert.True(t, errors.Is(err, ErrParse))
		assert.Contains(t, err.Error(), "early end of file")
	}
}

func writeFile(t *testing.T, name string, data []byte) (path string) {
	path = filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return
}

func TestReadTableFile(t *testing.T) {
	{
		_, err := ReadTableFile(filepath.Join(t.TempDir(), "missing.txt"), 2)
		assert.True(t, errors.Is(err, ErrFile))
		assert.False(t, errors.Is(err, ErrParse))
	}
	{
		_, err := ReadTableFile(writeFile(t, "bad.txt", []byte("H\n1 a\n")), 1)
		assert.True(t, errors.Is(err, ErrParse))
		assert.Contains(t, err.Error(), "bad.txt")
	}
}

func TestReadTriangulation(t *testing.T) {
	pts := writeFile(t, "rand_points.txt", []byte("2\n3\n0 0\n1 0\n0 1\n"))
	{ // Extra columns are ignored, indices truncated
		tris := writeFile(t, "rand_triangles.txt", []byte("2\n3 0 1 2 99\n3 0 2.9 1 99\n"))
		tm, err := ReadTriangulation(pts, tris, PointsHeaderLines, TrianglesHeaderLines, false)
		require.NoError(t, err)
		assert.Equal(t, 3, len(tm.Points))
		assert.Equal(t, 2, len(tm.Tris))
		assert.Equal(t, [3]int{0, 2, 1}, tm.Tris[1].Verts)
	}
	{ // Too few columns
		tris := writeFile(t, "short.txt", []byte("1\n3 0 1\n"))
		_, err := ReadTriangulation(pts, tris, PointsHeaderLines, TrianglesHeaderLines, false)
		assert.True(t, errors.Is(err, ErrParse))
		one := writeFile(t, "one.txt", []byte("a\nb\n1\n2\n"))
		_, _, err = ReadPoints(one, PointsHeaderLines)
		assert.True(t, errors.Is(err, ErrParse))
	}
	{ // A bad triangle row fails before anything is returned
		tris := writeFile(t, "nan.txt", []byte("1\n3 0 one 2\n"))
		tm, err := ReadTriangulation(pts, tris, PointsHeaderLines, TrianglesHeaderLines, false)
		assert.True(t, errors.Is(err, ErrParse))
		assert.Nil(t, tm)
	}
	{ // Extra point columns are ignored
		p := writeFile(t, "p.txt", pointsFile)
		X, Y, err := ReadPoints(p, PointsHeaderLines)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 1}, X)
		assert.Equal(t, []float64{0, 0}, Y)
	}
}

func TestQhullCounts(t *testing.T) {
	pts := writeFile(t, "points.txt", []byte("2\n3\n0 0\n1 0\n0 1\n"))
	tris := writeFile(t, "triangles.txt", []byte("2\n3 0 1 2\n3 0 2 1\n"))
	tm, err := ReadTriangulation(pts, tris, PointsHeaderLines, TrianglesHeaderLines, false)
	require.NoError(t, err)
	ph, err := ReadHeader(pts, PointsHeaderLines)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, ph)
	th, err := ReadHeader(tris, TrianglesHeaderLines)
	require.NoError(t, err)
	assert.NoError(t, CheckQhullCounts(ph, th, tm))

	Np, ok := DeclaredCount(ph, 1)
	assert.True(t, ok)
	assert.Equal(t, 3, Np)
	_, ok = DeclaredCount([]string{"H1", "H2"}, 1)
	assert.False(t, ok)
	_, ok = DeclaredCount(ph, 5)
	assert.False(t, ok)

	assert.True(t, errors.Is(CheckQhullCounts(ph, []string{"7"}, tm), ErrCountMismatch))
	assert.True(t, errors.Is(CheckQhullCounts([]string{"2", "4"}, th, tm), ErrCountMismatch))
	// Headers without numbers are not checked
	assert.NoError(t, CheckQhullCounts([]string{"H1", "H2"}, []string{"H"}, tm))

	_, err = ReadHeader(writeFile(t, "empty.txt", nil), 1)
	assert.True(t, errors.Is(err, ErrParse))
}
