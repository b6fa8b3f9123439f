package InputParameters

import (
	"fmt"
	"os"
	"strings"

	"github.com/ghodss/yaml"
)

// Settings for one plot, resolved from defaults, config files and flags.
// The json tags are the keys used in YAML parameter files.
type PlotParameters struct {
	Title           string `json:"title"`
	PointsFile      string `json:"points"`
	TrianglesFile   string `json:"triangles"`
	MeshFile        string `json:"mesh"`
	PointsHeader    int    `json:"pointsHeader"`
	TrianglesHeader int    `json:"trianglesHeader"`
	Backend         string `json:"backend"`
	Output          string `json:"output"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	EdgeColor       string `json:"edgeColor"`
	PointColor      string `json:"pointColor"`
	AllTriangles    bool   `json:"allTriangles"`
	Inline          bool   `json:"inline"`
	Strict          bool   `json:"strict"`
}

// Defaults match the qhull plotting script: fixed file names, two header lines
// ahead of the points and one ahead of the triangles.
func NewPlotParameters() *PlotParameters {
	return &PlotParameters{
		Title:           "Triangulation",
		PointsFile:      "rand_points.txt",
		TrianglesFile:   "rand_triangles.txt",
		PointsHeader:    2,
		TrianglesHeader: 1,
		Backend:         "window",
		Width:           1024,
		Height:          1024,
		EdgeColor:       "red",
		PointColor:      "blue",
	}
}

func (pp *PlotParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, pp)
}

// ReadParameterFile returns the raw settings of a YAML parameter file, after
// checking that every known key holds a value of the right type.
func ReadParameterFile(fileName string) (settings map[string]interface{}, err error) {
	var data []byte
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	if err = NewPlotParameters().Parse(data); err == nil {
		err = yaml.Unmarshal(data, &settings)
	}
	if err != nil {
		err = fmt.Errorf("unable to parse parameter file %s: %w", fileName, err)
	}
	return
}

// DrawAllTriangles reports whether the last triangle row is drawn. SU2 meshes
// have no trailing row to leave out.
func (pp *PlotParameters) DrawAllTriangles() bool {
	return pp.AllTriangles || len(pp.MeshFile) != 0
}

// Validate checks the settings and lower cases the backend name.
func (pp *PlotParameters) Validate() (err error) {
	pp.Backend = strings.ToLower(strings.TrimSpace(pp.Backend))
	switch {
	case pp.PointsHeader < 0 || pp.TrianglesHeader < 0:
		err = fmt.Errorf("header line counts must not be negative")
	case pp.Width <= 0 || pp.Height <= 0:
		err = fmt.Errorf("width and height must be positive, got %dx%d", pp.Width, pp.Height)
	case len(pp.MeshFile) == 0 && (len(pp.PointsFile) == 0 || len(pp.TrianglesFile) == 0):
		err = fmt.Errorf("must supply a points file (-p) and a triangles file (-t), or an SU2 mesh (-m)")
	}
	return
}

func (pp *PlotParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", pp.Title)
	if len(pp.MeshFile) != 0 {
		fmt.Printf("[%s]\t= SU2 Mesh File\n", pp.MeshFile)
	} else {
		fmt.Printf("[%s]\t= Points File\n", pp.PointsFile)
		fmt.Printf("[%s]\t= Triangles File\n", pp.TrianglesFile)
		fmt.Printf("[%d]\t\t\t\t= Points Header Lines\n", pp.PointsHeader)
		fmt.Printf("[%d]\t\t\t\t= Triangles Header Lines\n", pp.TrianglesHeader)
	}
	fmt.Printf("[%s]\t\t\t= Backend\n", pp.Backend)
	if len(pp.Output) != 0 {
		fmt.Printf("[%s]\t= Output\n", pp.Output)
	}
	fmt.Printf("[%dx%d]\t\t\t= Size\n", pp.Width, pp.Height)
	fmt.Printf("[%s/%s]\t\t= Edge/Point Color\n", pp.EdgeColor, pp.PointColor)
	fmt.Printf("[%v]\t\t\t= All Triangles\n", pp.AllTriangles)
}
