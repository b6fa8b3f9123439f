/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
	"github.com/spf13/cobra"

	"github.com/notargets/triview/InputParameters"
	"github.com/notargets/triview/geometry2D"
	"github.com/notargets/triview/readfiles"
	"github.com/notargets/triview/utils"
)

type Summary struct {
	PointsFile    string     `json:"pointsFile"`
	TrianglesFile string     `json:"trianglesFile"`
	Points        int        `json:"points"`
	Triangles     int        `json:"triangles"`
	Rendered      int        `json:"rendered"`
	BoundingBox   [4]float64 `json:"boundingBox"` // xMin, xMax, yMin, yMax
	HeaderCheck   string     `json:"headerCheck"`

	// Boundary marker tag to edge count, SU2 meshes only
	Markers map[string]int `json:"markers,omitempty"`
}

func newInfoCmd(a *app) (infoCmd *cobra.Command) {
	infoCmd = &cobra.Command{
		Use:   "info",
		Short: "Print counts and bounds of a triangulation without drawing it",
		RunE:  a.runInfo,
	}
	infoCmd.Flags().Bool("yaml", false, "print the summary as YAML")
	return
}

func summarize(pp *InputParameters.PlotParameters, tm *geometry2D.TriMesh,
	markers map[string][][2]int) (s Summary) {
	s = Summary{
		PointsFile:    pp.PointsFile,
		TrianglesFile: pp.TrianglesFile,
		Points:        len(tm.Points),
		Triangles:     len(tm.Tris),
		Rendered:      tm.RenderCount(pp.DrawAllTriangles()),
		HeaderCheck:   "ok",
	}
	xMin, xMax, yMin, yMax := tm.BoundingBox()
	s.BoundingBox = [4]float64{xMin, xMax, yMin, yMax}
	if len(pp.MeshFile) != 0 {
		s.PointsFile, s.TrianglesFile = pp.MeshFile, pp.MeshFile
		s.HeaderCheck = "n/a"
		if len(markers) != 0 {
			s.Markers = make(map[string]int, len(markers))
			for tag, edges := range markers {
				s.Markers[tag] = len(edges)
			}
		}
		return
	}
	ph, err := readfiles.ReadHeader(pp.PointsFile, pp.PointsHeader)
	if err == nil {
		var th []string
		if th, err = readfiles.ReadHeader(pp.TrianglesFile, pp.TrianglesHeader); err == nil {
			err = readfiles.CheckQhullCounts(ph, th, tm)
		}
	}
	if err != nil {
		s.HeaderCheck = err.Error()
	}
	return
}

func (a *app) runInfo(cmd *cobra.Command, args []string) (err error) {
	var (
		pp      *InputParameters.PlotParameters
		tm      *geometry2D.TriMesh
		markers map[string][][2]int
		au      = utils.NewStyler()
	)
	defer a.stopProfile()
	if pp, err = a.parameters(); err != nil {
		return
	}
	// The summary reports header mismatches instead of failing on them
	pp.Strict = false
	if tm, markers, err = loadTriangulation(pp, a.v.GetBool("verbose")); err != nil {
		return
	}
	s := summarize(pp, tm, markers)
	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		var data []byte
		if data, err = yaml.Marshal(s); err != nil {
			return
		}
		fmt.Print(string(data))
		return
	}
	fmt.Printf("Points file:    %s\n", au.Cyan(s.PointsFile))
	fmt.Printf("Triangles file: %s\n", au.Cyan(s.TrianglesFile))
	fmt.Printf("Np = %d, K = %d, rendered = %d\n", au.Green(s.Points), au.Green(s.Triangles), au.Green(s.Rendered))
	fmt.Printf("Bounding Box:\nXMin/XMax = %5.3f, %5.3f\nYMin/YMax = %5.3f, %5.3f\n",
		s.BoundingBox[0], s.BoundingBox[1], s.BoundingBox[2], s.BoundingBox[3])
	if s.HeaderCheck == "ok" {
		fmt.Printf("Header counts:  %s\n", au.Green(s.HeaderCheck))
	} else if s.HeaderCheck != "n/a" {
		fmt.Printf("Header counts:  %s\n", au.Red(s.HeaderCheck))
	}
	tags := make([]string, 0, len(s.Markers))
	for tag := range s.Markers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		fmt.Printf("Marker %s: %d edges\n", au.Cyan(tag), au.Green(s.Markers[tag]))
	}
	return
}
