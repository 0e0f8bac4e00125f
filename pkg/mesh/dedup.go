package mesh

import (
	"errors"
	"fmt"

	"github.com/skorren/meshforge/pkg/geom"
)

// Conversion errors.
var (
	ErrUnsupportedFaceArity = errors.New("face is neither a triangle nor a quad")
	ErrIndexOutOfRange      = errors.New("index references a nonexistent attribute entry")
	ErrInconsistentFaces    = errors.New("faces disagree on normal/texcoord presence")
)

// IndexTriple identifies one unique combination of position, normal, and
// texture-coordinate indices. Absent attributes are held at zero so that
// faces without them still dedupe on the attributes they do carry.
type IndexTriple struct {
	Pos  uint32
	Norm uint32
	Tex  uint32
}

// IndexBuffer is the result of the deduplication pass.
type IndexBuffer struct {
	// Triples are the distinct index triples in first-occurrence order.
	// The position of a triple in this slice is its compact index.
	Triples []IndexTriple
	// Indices holds one compact index per face-vertex occurrence,
	// preserving face order and winding. This is what an indexed draw
	// call consumes.
	Indices []uint32
}

// BuildIndexBuffer walks the faces in order and assigns every distinct
// (position, normal, texcoord) index triple a dense compact index in
// first-occurrence order. The mapping is deterministic: identical input
// always yields identical output.
//
// Faces must be triangles or quads; anything else fails with
// ErrUnsupportedFaceArity and no partial result.
func BuildIndexBuffer(faces []geom.Face) (*IndexBuffer, error) {
	ib := &IndexBuffer{}
	seen := make(map[IndexTriple]uint32)

	for fi := range faces {
		f := &faces[fi]
		n := f.NumVerts()
		if n != 3 && n != 4 {
			return nil, fmt.Errorf("face %d has %d vertices: %w", fi, n, ErrUnsupportedFaceArity)
		}

		for v := 0; v < n; v++ {
			triple := IndexTriple{Pos: f.VertIndices[v]}
			if f.HasNormals {
				triple.Norm = f.NormIndices[v]
			}
			if f.HasTexCoords {
				triple.Tex = f.TexIndices[v]
			}

			compact, ok := seen[triple]
			if !ok {
				compact = uint32(len(ib.Triples))
				seen[triple] = compact
				ib.Triples = append(ib.Triples, triple)
			}
			ib.Indices = append(ib.Indices, compact)
		}
	}

	return ib, nil
}

// DetectPackType inspects the faces and returns the pack type matching
// their attribute presence. All faces must agree on whether normals and
// texture coordinates are present; mixing is ambiguous input and fails
// with ErrInconsistentFaces. An empty face list packs positions only.
func DetectPackType(faces []geom.Face) (PackType, error) {
	if len(faces) == 0 {
		return PackPos, nil
	}

	hasNorm := faces[0].HasNormals
	hasTex := faces[0].HasTexCoords
	for fi := range faces[1:] {
		f := &faces[fi+1]
		if f.HasNormals != hasNorm || f.HasTexCoords != hasTex {
			return 0, fmt.Errorf("face %d: %w", fi+1, ErrInconsistentFaces)
		}
	}

	switch {
	case hasNorm && hasTex:
		return PackPosNormTex, nil
	case hasNorm:
		return PackPosNorm, nil
	case hasTex:
		return PackPosTex, nil
	default:
		return PackPos, nil
	}
}
