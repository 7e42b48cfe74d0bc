// sweeptool is a CLI utility for inspecting, converting and writing sweep
// data files without opening the viewer.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Faultbox/sweepcad/internal/document"
	"github.com/Faultbox/sweepcad/internal/export"
	"github.com/Faultbox/sweepcad/internal/logger"
	"github.com/Faultbox/sweepcad/pkg/formats"
	"github.com/Faultbox/sweepcad/pkg/geom"
	"github.com/Faultbox/sweepcad/pkg/mesh"
	"github.com/Faultbox/sweepcad/pkg/sweep"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := logger.Init("warn", ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "dump":
		cmdDump(args)
	case "export", "stl":
		cmdExport(args)
	case "new":
		cmdNew(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`sweeptool - sweep data file utility

Usage:
  sweeptool <command> [options]

Commands:
  info [-steps N] [-raw] <file>             Show curves and mesh statistics
  dump [-steps N] [-raw] <file>             Print vertices and triangles
  export [-steps N] [-raw] [-o out] <file>  Write the mesh as binary STL
  new -kind K [-spans N] -profile P [-trajectory T] -o <file>
                                            Write a data file from inline points

Points are given as "x,y,z" triples separated by spaces or semicolons.

Examples:
  sweeptool info rotational_data.txt
  sweeptool export -o vase.stl rotational_data.txt
  sweeptool new -kind rotational -spans 24 -profile "1,0,0 1.5,0,1 1,0,2 1.2,0,3" -o rotational_data.txt`)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// meshFlags are shared by the commands that generate a mesh.
type meshFlags struct {
	steps *int
	raw   *bool
}

func addMeshFlags(fs *flag.FlagSet) meshFlags {
	return meshFlags{
		steps: fs.Int("steps", 10, "Spline samples per segment"),
		raw:   fs.Bool("raw", false, "Sweep the control points without interpolation"),
	}
}

// load reads path into a generated document.
func (m meshFlags) load(path string) *document.Document {
	doc := document.New(sweep.Translational, 1, document.Options{
		Steps:            *m.steps,
		SmoothTrajectory: true,
		Interpolate:      !*m.raw,
	})
	if err := doc.Load(path); err != nil {
		fail("%v", err)
	}
	return doc
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	mf := addMeshFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: sweeptool info [-steps N] [-raw] <file>")
		os.Exit(1)
	}

	doc := mf.load(fs.Arg(0))
	g, _ := doc.Geometry()
	printInfo(fs.Arg(0), doc, g)
}

func printInfo(path string, doc *document.Document, g *mesh.Geometry) {
	fmt.Printf("File:        %s\n", path)
	fmt.Printf("Kind:        %s\n", doc.Kind())
	if doc.Kind() == sweep.Rotational {
		fmt.Printf("Spans:       %d\n", doc.Spans())
	}
	fmt.Printf("Profile:     %d control points, %d samples\n", len(doc.Profile()), len(doc.ProfileCurve()))
	if doc.Kind() == sweep.Translational {
		fmt.Printf("Trajectory:  %d control points, %d samples\n", len(doc.Trajectory()), len(doc.TrajectoryCurve()))
	}
	fmt.Printf("Rings:       %d x %d\n", g.RingCount(), g.RingSize)
	fmt.Printf("Vertices:    %d\n", g.VertexCount())
	fmt.Printf("Triangles:   %d\n", g.TriangleCount())

	b := g.Bounds()
	fmt.Printf("Bounds:      (%.4g, %.4g, %.4g) - (%.4g, %.4g, %.4g)\n",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
}

func cmdDump(args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	mf := addMeshFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: sweeptool dump [-steps N] [-raw] <file>")
		os.Exit(1)
	}

	doc := mf.load(fs.Arg(0))
	g, _ := doc.Geometry()

	fmt.Printf("# %d vertices\n", g.VertexCount())
	for i, v := range g.Vertices {
		fmt.Printf("v %d %g %g %g\n", i, v.X, v.Y, v.Z)
	}
	fmt.Printf("# %d triangles\n", g.TriangleCount())
	for i := 0; i+2 < len(g.Indices); i += 3 {
		fmt.Printf("f %d %d %d\n", g.Indices[i], g.Indices[i+1], g.Indices[i+2])
	}
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	mf := addMeshFlags(fs)
	out := fs.String("o", "", "Output STL path (default: input name with .stl)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: sweeptool export [-steps N] [-raw] [-o out.stl] <file>")
		os.Exit(1)
	}

	in := fs.Arg(0)
	path := *out
	if path == "" {
		path = strings.TrimSuffix(in, filepath.Ext(in)) + ".stl"
	}

	doc := mf.load(in)
	g, _ := doc.Geometry()
	if err := export.STL(path, g); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote %s (%d triangles)\n", path, g.TriangleCount())
}

func cmdNew(args []string) {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	kindName := fs.String("kind", "translational", "Sweep kind: translational or rotational")
	spans := fs.Int("spans", 12, "Rotational span count")
	profile := fs.String("profile", "", "Profile control points")
	trajectory := fs.String("trajectory", "", "Trajectory control points (translational)")
	out := fs.String("o", "", "Output path (default: <kind>_data.txt)")
	fs.Parse(args)

	f, err := buildFile(*kindName, *spans, *profile, *trajectory)
	if err != nil {
		fail("%v", err)
	}

	path := *out
	if path == "" {
		path = document.FileName(f.Kind, "data.txt")
	}
	if err := f.WriteFile(path); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote %s\n", path)
}

// buildFile assembles and checks a sweep file from command-line values.
func buildFile(kindName string, spans int, profile, trajectory string) (*formats.SweepFile, error) {
	kind, err := sweep.ParseKind(kindName)
	if err != nil {
		return nil, err
	}
	f := &formats.SweepFile{Kind: kind}

	if f.Profile, err = parsePoints(profile); err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	if kind == sweep.Rotational {
		if spans <= 0 || spans > 0xFFFF {
			return nil, fmt.Errorf("%w: %d", sweep.ErrInvalidSpanCount, spans)
		}
		f.Spans = uint16(spans)
	} else if f.Trajectory, err = parsePoints(trajectory); err != nil {
		return nil, fmt.Errorf("trajectory: %w", err)
	}

	if err := f.Spec().Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// parsePoints parses "x,y,z" triples separated by spaces or semicolons.
func parsePoints(s string) (geom.Curve, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ';' || r == '\t' || r == '\n'
	})
	points := make(geom.Curve, 0, len(fields))
	for _, field := range fields {
		parts := strings.Split(field, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("point %q: want x,y,z", field)
		}
		var xyz [3]float64
		for i, part := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: point %q", formats.ErrMalformedNumber, field)
			}
			xyz[i] = v
		}
		points = append(points, geom.Point3{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	}
	return points, nil
}
