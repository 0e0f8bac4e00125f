// Package formats provides loaders that populate a geometry store from
// common mesh interchange formats.
package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/skorren/meshforge/pkg/geom"
	"github.com/skorren/meshforge/pkg/math"
)

// OBJ format errors.
var (
	ErrMalformedVertex = errors.New("malformed vertex line")
	ErrMalformedFace   = errors.New("malformed face line")
	ErrZeroFaceIndex   = errors.New("face index 0 (OBJ indices start at 1)")
	ErrFaceIndexRange  = errors.New("face index outside parsed attribute range")
)

// ParseOBJ parses Wavefront OBJ text from r into a geometry store.
// Supported statements: v, vn, vt, and f with the v, v/t, v//n, and
// v/t/n reference forms, including negative (relative) indices.
// Unknown statements are skipped. Faces of any vertex count are
// recorded; arity is enforced later by the conversion engine.
func ParseOBJ(r io.Reader) (*geom.Store, error) {
	store := &geom.Store{}
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		keyword, args := fields[0], fields[1:]

		switch keyword {
		case "v":
			p, err := parseVec3(args)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			store.Positions = append(store.Positions, p)
		case "vn":
			n, err := parseVec3(args)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			store.Normals = append(store.Normals, n)
		case "vt":
			// Texture coordinates may carry an optional third component;
			// only the first two are meaningful.
			t, err := parseVec2(args)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			store.TexCoords = append(store.TexCoords, t)
		case "f":
			face, err := parseFace(args, store)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			store.Faces = append(store.Faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ data: %w", err)
	}

	return store, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*geom.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ file: %w", err)
	}
	defer f.Close()

	store, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return store, nil
}

func parseVec3(args []string) (math.Vec3, error) {
	if len(args) < 3 {
		return math.Vec3{}, ErrMalformedVertex
	}
	var out [3]float32
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("%w: %q", ErrMalformedVertex, args[i])
		}
		out[i] = float32(v)
	}
	return math.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}

func parseVec2(args []string) (math.Vec3, error) {
	if len(args) < 2 {
		return math.Vec3{}, ErrMalformedVertex
	}
	var out [2]float32
	for i := 0; i < 2; i++ {
		v, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("%w: %q", ErrMalformedVertex, args[i])
		}
		out[i] = float32(v)
	}
	return math.Vec3{X: out[0], Y: out[1]}, nil
}

// parseFace parses one f statement. All vertices of a face must use the
// same reference form; the face's attribute flags reflect that form.
func parseFace(args []string, store *geom.Store) (geom.Face, error) {
	if len(args) < 3 {
		return geom.Face{}, fmt.Errorf("%w: %d vertices", ErrMalformedFace, len(args))
	}

	var face geom.Face
	for vi, ref := range args {
		parts := strings.Split(ref, "/")

		pos, err := resolveIndex(parts[0], len(store.Positions))
		if err != nil {
			return geom.Face{}, err
		}
		face.VertIndices = append(face.VertIndices, pos)

		hasTex := len(parts) >= 2 && parts[1] != ""
		hasNorm := len(parts) >= 3 && parts[2] != ""
		if vi == 0 {
			face.HasTexCoords = hasTex
			face.HasNormals = hasNorm
		} else if hasTex != face.HasTexCoords || hasNorm != face.HasNormals {
			return geom.Face{}, fmt.Errorf("%w: mixed reference forms in %q", ErrMalformedFace, strings.Join(args, " "))
		}

		if hasTex {
			tex, err := resolveIndex(parts[1], len(store.TexCoords))
			if err != nil {
				return geom.Face{}, err
			}
			face.TexIndices = append(face.TexIndices, tex)
		}
		if hasNorm {
			norm, err := resolveIndex(parts[2], len(store.Normals))
			if err != nil {
				return geom.Face{}, err
			}
			face.NormIndices = append(face.NormIndices, norm)
		}
	}

	return face, nil
}

// resolveIndex converts a 1-based OBJ index (possibly negative, meaning
// relative to the end of the array parsed so far) to a 0-based index.
func resolveIndex(s string, count int) (uint32, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedFace, s)
	}
	if idx == 0 {
		return 0, ErrZeroFaceIndex
	}
	if idx < 0 {
		idx = count + idx
		if idx < 0 {
			return 0, fmt.Errorf("%w: %s with %d entries", ErrFaceIndexRange, s, count)
		}
		return uint32(idx), nil
	}
	return uint32(idx - 1), nil
}
