// meshc is a CLI utility for converting mesh source files into the
// meshforge binary format.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skorren/meshforge/internal/config"
	"github.com/skorren/meshforge/pkg/formats"
	"github.com/skorren/meshforge/pkg/geom"
	"github.com/skorren/meshforge/pkg/mesh"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "convert", "c":
		cmdConvert(args)
	case "info", "i":
		cmdInfo(args)
	case "bounds", "b":
		cmdBounds(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshc - mesh conversion utility

Usage:
  meshc <command> [options]

Commands:
  convert <file.obj|.gltf|.glb> [options]  Convert a mesh to binary form
  info <file.mfb>                          Show binary mesh information
  bounds <file>                            Print bounding box and sphere

Convert options:
  -o <path>       Output path (default: input with .mfb extension)
  -triangulate    Split quad faces into triangles
  -scale <f>      Uniform scale factor applied before conversion

Examples:
  meshc convert model.obj -triangulate
  meshc convert scene.glb -o scene.mfb
  meshc info scene.mfb
  meshc bounds model.obj`)
}

// loadStore picks a loader from the file extension.
func loadStore(path string) (*geom.Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return formats.ParseOBJFile(path)
	case ".gltf", ".glb":
		return formats.LoadGLTF(path)
	default:
		return nil, fmt.Errorf("unsupported input format %q", filepath.Ext(path))
	}
}

func cmdConvert(args []string) {
	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}

	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	output := fs.String("o", "", "output path")
	triangulate := fs.Bool("triangulate", cfg.Convert.Triangulate, "split quads into triangles")
	scale := fs.Float64("scale", 1.0, "uniform scale factor")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshc convert <file> [options]")
		os.Exit(1)
	}
	input := fs.Arg(0)

	store, err := loadStore(input)
	if err != nil {
		fatal(err)
	}
	if *scale != 1.0 {
		s := float32(*scale)
		store.Scale(s, s, s)
	}
	if *triangulate {
		store = store.Triangulate()
	}

	m := mesh.New(store)
	rd, err := m.Build()
	if err != nil {
		fatal(fmt.Errorf("converting %s: %w", input, err))
	}

	out := *output
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + cfg.Convert.OutputExt
	}
	if err := mesh.WriteFile(out, rd); err != nil {
		fatal(err)
	}

	fmt.Printf("%s -> %s\n", input, out)
	fmt.Printf("  pack type: %s\n", rd.PackType)
	fmt.Printf("  faces in:  %d\n", store.NumFaces())
	fmt.Printf("  records:   %d (from %d face-vertex occurrences)\n",
		rd.RecordCount(), len(rd.Indices))
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshc info <file.mfb>")
		os.Exit(1)
	}

	rd, err := mesh.ReadFile(args[0])
	if err != nil {
		fatal(err)
	}

	b := rd.Bounds()
	fmt.Printf("%s\n", args[0])
	fmt.Printf("  pack type:   %s (%d floats per record)\n", rd.PackType, rd.PackType.RecordSize())
	fmt.Printf("  records:     %d\n", rd.RecordCount())
	fmt.Printf("  indices:     %d (%d triangles)\n", len(rd.Indices), len(rd.Indices)/3)
	fmt.Printf("  bounds:      x [%g, %g]  y [%g, %g]  z [%g, %g]\n",
		b.MinX, b.MaxX, b.MinY, b.MaxY, b.MinZ, b.MaxZ)
	fmt.Printf("  center:      (%g, %g, %g)\n", b.Center.X, b.Center.Y, b.Center.Z)
}

func cmdBounds(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshc bounds <file>")
		os.Exit(1)
	}

	store, err := loadStore(args[0])
	if err != nil {
		fatal(err)
	}

	b := store.CalcDimensions()
	sphere := store.CalcBoundingSphere()

	fmt.Printf("%s: %d vertices, %d faces\n", args[0], store.NumVerts(), store.NumFaces())
	fmt.Printf("  bounds: x [%g, %g]  y [%g, %g]  z [%g, %g]\n",
		b.MinX, b.MaxX, b.MinY, b.MaxY, b.MinZ, b.MaxZ)
	fmt.Printf("  center: (%g, %g, %g)\n", b.Center.X, b.Center.Y, b.Center.Z)
	fmt.Printf("  sphere: radius %g\n", sphere.Radius)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
