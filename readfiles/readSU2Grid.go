package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/notargets/triview/geometry2D"
)

// From here: https://su2code.github.io/docs_v7/Mesh-File/
type SU2ElementType uint8

const (
	ELType_LINE     SU2ElementType = 3
	ELType_Triangle SU2ElementType = 5
)

// SU2Mesh is a 2D SU2 mesh: triangles, points and the named boundary
// markers as vertex pairs.
type SU2Mesh struct {
	Dimensions int
	TriMesh    *geometry2D.TriMesh
	Markers    map[string][][2]int
}

// getLineNoComments skips blank lines and % comments. It returns io.EOF
// unwrapped so callers can treat a missing optional section as absent.
func (lr *lineReader) getLineNoComments() (line string, err error) {
	for {
		if line, err = lr.getLine(); err != nil {
			return
		}
		line = strings.Trim(line, " \t")
		if len(line) != 0 && !strings.HasPrefix(line, "%") {
			return
		}
	}
}

// dataLine returns the next line of a section, skipping blank lines and %
// comments. Running out of lines inside a section is a parse error.
func (lr *lineReader) dataLine() (line string, err error) {
	if line, err = lr.getLineNoComments(); err == io.EOF {
		err = fmt.Errorf("early end of file at line %d: %w", lr.lineNo, ErrParse)
	}
	return
}

func (lr *lineReader) getToken(key string) (token string, err error) {
	var line string
	if line, err = lr.getLineNoComments(); err != nil {
		if err == io.EOF {
			err = fmt.Errorf("early end of file looking for %s: %w", key, ErrParse)
		}
		return
	}
	return lr.parseToken(line, key)
}

func (lr *lineReader) parseToken(line, key string) (token string, err error) {
	ind := strings.Index(line, "=")
	if ind < 0 {
		err = fmt.Errorf("badly formed input line %d [%s], should have an =: %w", lr.lineNo, line, ErrParse)
		return
	}
	if got := strings.TrimSpace(line[:ind]); got != key {
		err = fmt.Errorf("line %d: expected %s, found [%s]: %w", lr.lineNo, key, got, ErrParse)
		return
	}
	token = strings.TrimSpace(line[ind+1:])
	return
}

func (lr *lineReader) readNumber(key string) (num int, err error) {
	var token string
	if token, err = lr.getToken(key); err != nil {
		return
	}
	return parseNumber(token)
}

func parseNumber(token string) (num int, err error) {
	if _, err = fmt.Sscanf(token, "%d", &num); err != nil {
		err = fmt.Errorf("unable to read number from token: [%s]: %w", token, ErrParse)
	}
	return
}

func (lr *lineReader) readElements(K int, tm *geometry2D.TriMesh) (err error) {
	var (
		nType      int
		v1, v2, v3 float64
		line       string
	)
	for k := 0; k < K; k++ {
		if line, err = lr.dataLine(); err != nil {
			return
		}
		if _, err = fmt.Sscanf(line, "%d %f %f %f", &nType, &v1, &v2, &v3); err != nil {
			return fmt.Errorf("line %d: unable to read element: %w", lr.lineNo, ErrParse)
		}
		if SU2ElementType(nType) != ELType_Triangle {
			return fmt.Errorf("line %d: element type %d is not a triangle: %w", lr.lineNo, nType, ErrParse)
		}
		tm.AddTri(3, v1, v2, v3)
	}
	return
}

func (lr *lineReader) readVertices(Nv int) (VX, VY []float64, err error) {
	var (
		x, y float64
		line string
	)
	VX, VY = make([]float64, Nv), make([]float64, Nv)
	for i := 0; i < Nv; i++ {
		if line, err = lr.dataLine(); err != nil {
			return
		}
		if _, err = fmt.Sscanf(line, "%f %f", &x, &y); err != nil {
			err = fmt.Errorf("line %d: unable to read coordinates: %w", lr.lineNo, ErrParse)
			return
		}
		VX[i], VY[i] = x, y
	}
	return
}

func (lr *lineReader) readMarkers() (markers map[string][][2]int, err error) {
	var (
		nType, v1, v2 int
		NBCs, nEdges  int
		label, line   string
		token         string
	)
	if line, err = lr.getLineNoComments(); err != nil {
		if err == io.EOF {
			err = nil
		}
		return
	}
	if token, err = lr.parseToken(line, "NMARK"); err != nil {
		return
	}
	if NBCs, err = parseNumber(token); err != nil {
		return
	}
	markers = make(map[string][][2]int, NBCs)
	for n := 0; n < NBCs; n++ {
		if label, err = lr.getToken("MARKER_TAG"); err != nil {
			return
		}
		if nEdges, err = lr.readNumber("MARKER_ELEMS"); err != nil {
			return
		}
		for i := 0; i < nEdges; i++ {
			if line, err = lr.dataLine(); err != nil {
				return
			}
			if _, err = fmt.Sscanf(line, "%d %d %d", &nType, &v1, &v2); err != nil {
				err = fmt.Errorf("line %d: unable to read marker edge: %w", lr.lineNo, ErrParse)
				return
			}
			if SU2ElementType(nType) != ELType_LINE {
				err = fmt.Errorf("line %d: markers should only contain line elements in 2D: %w", lr.lineNo, ErrParse)
				return
			}
			// Duplicate tags, like periodic pairs, share one slice
			markers[label] = append(markers[label], [2]int{v1, v2})
		}
	}
	return
}

// ParseSU2 reads a 2D triangular SU2 mesh. The marker section is optional.
func ParseSU2(r io.Reader) (m *SU2Mesh, err error) {
	var (
		lr     = &lineReader{reader: bufio.NewReader(r)}
		K, Nv  int
		VX, VY []float64
	)
	defer func() {
		if err != nil {
			err = fmt.Errorf("reading SU2 mesh: %w", err)
		}
	}()
	m = &SU2Mesh{}
	if m.Dimensions, err = lr.readNumber("NDIME"); err != nil {
		return
	}
	if m.Dimensions != 2 {
		err = fmt.Errorf("only 2 dimensional meshes are supported, found %d: %w", m.Dimensions, ErrParse)
		return
	}
	if K, err = lr.readNumber("NELEM"); err != nil {
		return
	}
	elements := geometry2D.NewTriMesh(nil, nil)
	if err = lr.readElements(K, elements); err != nil {
		return
	}
	if Nv, err = lr.readNumber("NPOIN"); err != nil {
		return
	}
	if VX, VY, err = lr.readVertices(Nv); err != nil {
		return
	}
	m.TriMesh = geometry2D.NewTriMesh(VX, VY)
	m.TriMesh.Tris = elements.Tris
	m.Markers, err = lr.readMarkers()
	return
}

func ReadSU2(filename string, verbose bool) (m *SU2Mesh, err error) {
	var (
		file *os.File
	)
	if verbose {
		fmt.Printf("Reading SU2 file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		err = fmt.Errorf("%w %s: %v", ErrFile, filename, err)
		return
	}
	defer file.Close()
	if m, err = ParseSU2(file); err != nil {
		err = fmt.Errorf("%s: %w", filename, err)
		return
	}
	if verbose {
		fmt.Printf("Np = %d, K = %d, %d markers\n", len(m.TriMesh.Points), len(m.TriMesh.Tris), len(m.Markers))
	}
	return
}
