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
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/triview/InputParameters"
)

type app struct {
	v         *viper.Viper
	cfgFile   string
	paramFile string
	profiler  interface{ Stop() }
}

var rootCmd = NewRootCmd()

// NewRootCmd builds the command tree around its own viper instance.
func NewRootCmd() (root *cobra.Command) {
	_, root = newApp()
	return
}

func newApp() (a *app, root *cobra.Command) {
	a = &app{v: viper.New()}
	root = &cobra.Command{
		Use:   "triview",
		Short: "Display a 2D triangulation read from point and triangle files",
		Long: `
Reads a points file (x y per line, 2 header lines) and a triangles file
(n_vert v0 v1 v2 per line, 1 header line) as written by qhull, plots the
points and draws the triangle edges in red.

triview with no arguments plots rand_points.txt and rand_triangles.txt in a window.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.initConfig,
		RunE:              a.runPlot,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.triview.yaml)")
	pf.StringVarP(&a.paramFile, "parameters", "I", "", "YAML file with plot parameters, same keys as the flags")
	pf.BoolP("verbose", "v", false, "print progress and the resolved parameters")
	pf.String("profile", "", "write a profile while running: cpu, mem or trace")

	def := InputParameters.NewPlotParameters()
	pf.StringP("points", "p", def.PointsFile, "points file: header lines, then x y per line")
	pf.StringP("triangles", "t", def.TrianglesFile, "triangles file: header lines, then n_vert v0 v1 v2 per line")
	pf.StringP("mesh", "m", def.MeshFile, "SU2 mesh file, read instead of the points and triangles files")
	pf.Int("pointsHeader", def.PointsHeader, "number of header lines in the points file")
	pf.Int("trianglesHeader", def.TrianglesHeader, "number of header lines in the triangles file")
	pf.String("title", def.Title, "title of the window or figure")
	pf.StringP("backend", "b", def.Backend, "where to draw: window, png or figure")
	pf.StringP("output", "o", def.Output, "output file for the png and figure backends")
	pf.Int("width", def.Width, "width in pixels")
	pf.Int("height", def.Height, "height in pixels")
	pf.String("edgeColor", def.EdgeColor, "triangle edge color, a name or #rrggbb")
	pf.String("pointColor", def.PointColor, "point marker color, a name or #rrggbb")
	pf.Bool("allTriangles", def.AllTriangles, "also draw the last triangle row, which is skipped by default")
	pf.Bool("inline", def.Inline, "show png output inline in the terminal")
	pf.Bool("strict", def.Strict, "fail when the qhull header counts do not match the rows read")
	if err := a.v.BindPFlags(pf); err != nil {
		panic(err)
	}

	root.AddCommand(newPlotCmd(a), newInfoCmd(a))
	return
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) initConfig(cmd *cobra.Command, args []string) (err error) {
	v := a.v
	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		var home string
		if home, err = homedir.Dir(); err != nil {
			return
		}
		v.AddConfigPath(home)
		v.SetConfigName(".triview")
	}
	v.SetEnvPrefix("triview")
	v.AutomaticEnv()
	if err = v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || a.cfgFile != "" {
			return fmt.Errorf("unable to read config: %w", err)
		}
		err = nil
	} else if v.GetBool("verbose") {
		fmt.Println("Using config file:", v.ConfigFileUsed())
	}
	if len(a.paramFile) != 0 {
		var settings map[string]interface{}
		if settings, err = InputParameters.ReadParameterFile(a.paramFile); err != nil {
			return
		}
		if err = v.MergeConfigMap(settings); err != nil {
			return
		}
	}
	return a.startProfile()
}

func (a *app) startProfile() (err error) {
	var mode func(*profile.Profile)
	switch kind := strings.ToLower(a.v.GetString("profile")); kind {
	case "":
		return
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	case "trace":
		mode = profile.TraceProfile
	default:
		return fmt.Errorf("unknown profile [%s], use cpu, mem or trace", kind)
	}
	a.profiler = profile.Start(mode, profile.ProfilePath("."))
	return
}

// stopProfile is deferred by every command so the profile is written even
// when the command fails.
func (a *app) stopProfile() {
	if a.profiler != nil {
		a.profiler.Stop()
		a.profiler = nil
	}
}

// parameters collects the viper settings into PlotParameters. Flags beat
// environment, which beats parameter and config files, which beat defaults.
func (a *app) parameters() (pp *InputParameters.PlotParameters, err error) {
	v := a.v
	pp = &InputParameters.PlotParameters{
		Title:           v.GetString("title"),
		PointsFile:      v.GetString("points"),
		TrianglesFile:   v.GetString("triangles"),
		MeshFile:        v.GetString("mesh"),
		PointsHeader:    v.GetInt("pointsHeader"),
		TrianglesHeader: v.GetInt("trianglesHeader"),
		Backend:         v.GetString("backend"),
		Output:          v.GetString("output"),
		Width:           v.GetInt("width"),
		Height:          v.GetInt("height"),
		EdgeColor:       v.GetString("edgeColor"),
		PointColor:      v.GetString("pointColor"),
		AllTriangles:    v.GetBool("allTriangles"),
		Inline:          v.GetBool("inline"),
		Strict:          v.GetBool("strict"),
	}
	err = pp.Validate()
	return
}
