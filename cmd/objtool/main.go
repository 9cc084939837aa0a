// objtool is a headless CLI for inspecting OBJ meshes and model transforms.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/controls"
	"github.com/Faultbox/meshview/internal/engine/transform"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/internal/session"
	"github.com/Faultbox/meshview/pkg/formats"
	"github.com/Faultbox/meshview/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "flatten":
		cmdFlatten(args)
	case "simulate", "sim":
		cmdSimulate(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`objtool - OBJ mesh utility

Usage:
  objtool <command> [options]

Commands:
  info <file.obj>                      Show mesh statistics and skipped lines
  flatten [-n N] <file.obj>            Print the flat vertex buffer
  simulate [options] <file.obj>        Run the transform compositor headless
  config [output.yaml]                 Write the default viewer config

Simulate options:
  -frames N        frames to run (default 1)
  -hold a,b        actions held every frame (e.g. rotate_ccw,translate_up)
  -mode M          accumulate or reset (default accumulate)
  -v               log loading diagnostics

Examples:
  objtool info bottle_01.obj
  objtool flatten -n 6 bottle_01.obj
  objtool simulate -frames 60 -hold rotate_ccw bottle_01.obj`)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fail("Usage: objtool info <file.obj>")
	}

	obj, err := formats.ParseOBJFile(args[0])
	if err != nil {
		fail("Error: %v", err)
	}

	stats := obj.Stats()
	fmt.Printf("File:          %s\n", args[0])
	fmt.Printf("Vertices:      %d\n", stats.Vertices)
	fmt.Printf("Faces:         %d\n", stats.Faces)
	fmt.Printf("Indices:       %d\n", stats.Indices)
	fmt.Printf("Non-triangles: %d\n", stats.NonTriangles)
	fmt.Printf("Skipped lines: %d\n", len(obj.Skipped))

	if len(obj.Vertices) > 0 {
		c := transform.TransformedCentroid(obj.Vertices, transform.DefaultState())
		fmt.Printf("Centroid:      (%.4f, %.4f, %.4f)\n", c.X, c.Y, c.Z)
	}

	if _, err := formats.Flatten(&obj.Mesh); err != nil {
		fmt.Printf("Flatten:       FAILED (%v)\n", err)
	} else {
		fmt.Printf("Flatten:       ok, %d floats\n", 3*stats.Indices)
	}

	for _, le := range obj.Skipped {
		fmt.Fprintf(os.Stderr, "  skipped %v\n", &le)
	}
}

func cmdFlatten(args []string) {
	fs := flag.NewFlagSet("flatten", flag.ExitOnError)
	limit := fs.Int("n", 0, "Limit output to N vertices (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fail("Usage: objtool flatten [-n N] <file.obj>")
	}

	obj, err := formats.ParseOBJFile(fs.Arg(0))
	if err != nil {
		fail("Error: %v", err)
	}

	buf, err := formats.Flatten(&obj.Mesh)
	if err != nil {
		var ie *formats.IndexError
		if errors.As(err, &ie) {
			fail("Error: face %d references vertex %d, mesh has %d", ie.Face, ie.Index+1, ie.VertexCount)
		}
		fail("Error: %v", err)
	}

	count := int(formats.VertexCount(buf))
	for i := 0; i < count; i++ {
		if *limit > 0 && i >= *limit {
			break
		}
		fmt.Printf("%g %g %g\n", buf[3*i], buf[3*i+1], buf[3*i+2])
	}
	fmt.Fprintf(os.Stderr, "\n(%d floats, draw count %d)\n", len(buf), count)
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	frames := fs.Int("frames", 1, "Number of frames to run")
	hold := fs.String("hold", "", "Comma-separated actions held every frame")
	modeName := fs.String("mode", "accumulate", "Transform mode: accumulate or reset")
	verbose := fs.Bool("v", false, "Log loading diagnostics")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fail("Usage: objtool simulate [options] <file.obj>")
	}

	if *verbose {
		if err := logger.Init("debug", ""); err != nil {
			fail("Logger error: %v", err)
		}
		defer logger.Sync()
	}

	mode, err := transform.ParseMode(*modeName)
	if err != nil {
		fail("Error: %v", err)
	}

	var actions controls.Actions
	if *hold != "" {
		for _, name := range strings.Split(*hold, ",") {
			act, err := controls.ParseAction(strings.TrimSpace(name))
			if err != nil {
				fail("Error: %v", err)
			}
			actions.Set(act, true)
		}
	}

	err = runSimulate(os.Stdout, fs.Arg(0), simulation{
		frames:  *frames,
		actions: actions,
		mode:    mode,
		steps:   config.Default().Steps(),
	})
	if err != nil {
		fail("Error: %v", err)
	}
}

// simulation describes a headless run of the compositor.
type simulation struct {
	frames  int
	actions controls.Actions
	mode    transform.Mode
	steps   controls.Steps
}

// runSimulate advances a session over the mesh at path and writes the
// final state and model matrix to w. Unlike the viewer, an unreadable
// file is an error.
func runSimulate(w io.Writer, path string, sim simulation) error {
	obj, err := formats.ParseOBJFile(path)
	if err != nil {
		return err
	}
	for _, le := range obj.Skipped {
		logger.Warn("skipped malformed line", zap.String("file", path), zap.Error(&le))
	}

	s, err := session.New(&obj.Mesh, session.Options{Mode: sim.mode, Steps: sim.steps})
	if err != nil {
		return err
	}

	for i := 0; i < sim.frames; i++ {
		s.Advance(sim.actions)
	}

	st := s.State()
	c := transform.TransformedCentroid(s.Mesh().Vertices, st)
	fmt.Fprintf(w, "Frames:      %d (%s)\n", s.Frames(), sim.mode)
	fmt.Fprintf(w, "Skipped:     %d lines\n", len(obj.Skipped))
	fmt.Fprintf(w, "Translation: (%.4f, %.4f, %.4f)\n", st.Translation.X, st.Translation.Y, st.Translation.Z)
	fmt.Fprintf(w, "Angle:       %.4f deg\n", st.Angle)
	fmt.Fprintf(w, "Scale:       (%.4f, %.4f, %.4f)\n", st.Scale.X, st.Scale.Y, st.Scale.Z)
	fmt.Fprintf(w, "Centroid:    (%.4f, %.4f, %.4f)\n", c.X, c.Y, c.Z)
	fmt.Fprintln(w, "Model matrix:")
	printMat4(w, s.Matrix())
	return nil
}

// printMat4 prints a column-major matrix in row order.
func printMat4(w io.Writer, m math.Mat4) {
	for row := 0; row < 4; row++ {
		fmt.Fprintf(w, "  [% 10.5f % 10.5f % 10.5f % 10.5f]\n", m[row], m[4+row], m[8+row], m[12+row])
	}
}

func cmdConfig(args []string) {
	data, err := config.Default().Marshal()
	if err != nil {
		fail("Error: %v", err)
	}

	if len(args) < 1 {
		os.Stdout.Write(data)
		return
	}

	if err := config.Default().SaveTo(args[0]); err != nil {
		fail("Error: %v", err)
	}
	fmt.Printf("Wrote %s\n", args[0])
}
