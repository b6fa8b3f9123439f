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
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/notargets/triview/InputParameters"
	"github.com/notargets/triview/geometry2D"
	"github.com/notargets/triview/readfiles"
	"github.com/notargets/triview/render"
	"github.com/notargets/triview/utils"
)

func newPlotCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plot",
		Short: "Plot the points and draw the triangle edges",
		Long: `
Plots every point and draws the three edges of each triangle. The last
triangle row of a qhull triangles file is skipped unless --allTriangles is
given. With --mesh an SU2 mesh is read instead and every triangle is drawn.

The window backend keeps the process running until it is interrupted with
Ctrl-C or SIGTERM; closing the window alone does not end the command. The png
and figure backends write --output (default triangulation.png or
triangulation.svg) and return.`,
		RunE: a.runPlot,
	}
}

func (a *app) runPlot(cmd *cobra.Command, args []string) (err error) {
	var (
		pp      *InputParameters.PlotParameters
		tm      *geometry2D.TriMesh
		cv      render.Canvas
		opts    = render.DefaultOptions()
		st      render.Stats
		verbose = a.v.GetBool("verbose")
		au      = utils.NewStyler()
	)
	defer a.stopProfile()
	if pp, err = a.parameters(); err != nil {
		return
	}
	if verbose {
		pp.Print()
	}
	if tm, _, err = loadTriangulation(pp, verbose); err != nil {
		return
	}
	if opts.EdgeColor, err = utils.ParseColor(pp.EdgeColor); err != nil {
		return
	}
	opts.IncludeLast = pp.DrawAllTriangles()
	if cv, err = newCanvas(pp); err != nil {
		return
	}
	if st, err = render.Render(tm, cv, opts); err != nil {
		return
	}
	if verbose {
		fmt.Printf("Plotted %d points and %d triangles (%d segments)\n",
			au.Green(st.Points), au.Green(st.Triangles), au.Green(st.Segments))
		fmt.Println(utils.GetMemUsage())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err = cv.Show(ctx); err != nil {
		return
	}
	if out := outputFile(pp); len(out) != 0 {
		fmt.Printf("Saved as: %s %s\n", out, au.Green("✓"))
	}
	return
}

// loadTriangulation reads the SU2 mesh when one is given, otherwise the qhull
// points and triangles files. Markers are only found in SU2 meshes.
func loadTriangulation(pp *InputParameters.PlotParameters, verbose bool) (tm *geometry2D.TriMesh,
	markers map[string][][2]int, err error) {
	if len(pp.MeshFile) != 0 {
		var m *readfiles.SU2Mesh
		if m, err = readfiles.ReadSU2(pp.MeshFile, verbose); err != nil {
			return
		}
		tm, markers = m.TriMesh, m.Markers
		return
	}
	if tm, err = readfiles.ReadTriangulation(pp.PointsFile, pp.TrianglesFile,
		pp.PointsHeader, pp.TrianglesHeader, verbose); err != nil {
		return
	}
	if pp.Strict {
		var ph, th []string
		if ph, err = readfiles.ReadHeader(pp.PointsFile, pp.PointsHeader); err != nil {
			return
		}
		if th, err = readfiles.ReadHeader(pp.TrianglesFile, pp.TrianglesHeader); err != nil {
			return
		}
		err = readfiles.CheckQhullCounts(ph, th, tm)
	}
	return
}

func newCanvas(pp *InputParameters.PlotParameters) (cv render.Canvas, err error) {
	cfg := render.CanvasConfig{
		Backend: render.Backend(pp.Backend),
		Output:  pp.Output,
		Width:   pp.Width,
		Height:  pp.Height,
		Title:   pp.Title,
		Inline:  pp.Inline,
	}
	if cfg.PointColor, err = utils.ParseColor(pp.PointColor); err != nil {
		return
	}
	return render.NewCanvas(cfg)
}

func outputFile(pp *InputParameters.PlotParameters) string {
	b := render.Backend(strings.ToLower(pp.Backend))
	if b == render.Window {
		return ""
	}
	if len(pp.Output) != 0 {
		return pp.Output
	}
	return render.DefaultOutput(b)
}
