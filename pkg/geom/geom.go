// Package geom holds raw mesh geometry as loaded from a source file:
// attribute arrays plus per-face index triples into them.
package geom

import (
	"github.com/skorren/meshforge/pkg/math"
)

// Face is a single polygon referencing geometry through index lists.
// VertIndices always has one entry per vertex; NormIndices and
// TexIndices are either empty or the same length as VertIndices,
// as reported by HasNormals/HasTexCoords.
type Face struct {
	VertIndices  []uint32
	NormIndices  []uint32
	TexIndices   []uint32
	HasNormals   bool
	HasTexCoords bool
}

// NumVerts returns the number of vertices in the face.
func (f *Face) NumVerts() int {
	return len(f.VertIndices)
}

// Store holds the attribute arrays and face list of one mesh.
// It is populated once by a loader and owned exclusively by its mesh;
// only Scale mutates it afterwards.
type Store struct {
	// Positions are the vertex positions.
	Positions []math.Vec3
	// Normals are the vertex normals.
	Normals []math.Vec3
	// TexCoords are the texture coordinates; only X and Y are meaningful.
	TexCoords []math.Vec3
	// Faces are the polygons referencing the arrays above.
	Faces []Face

	bbox        BoundingBox
	sphere      BoundingSphere
	bboxValid   bool
	sphereValid bool
}

// NumVerts returns the number of positions in the store.
func (s *Store) NumVerts() int { return len(s.Positions) }

// NumNormals returns the number of normals in the store.
func (s *Store) NumNormals() int { return len(s.Normals) }

// NumTexCoords returns the number of texture coordinates in the store.
func (s *Store) NumTexCoords() int { return len(s.TexCoords) }

// NumFaces returns the number of faces in the store.
func (s *Store) NumFaces() int { return len(s.Faces) }

// IsTriangular reports whether every face is a triangle.
func (s *Store) IsTriangular() bool {
	for i := range s.Faces {
		if s.Faces[i].NumVerts() != 3 {
			return false
		}
	}
	return true
}

// Scale multiplies every position by the given per-axis factors, in place.
// Bounds are NOT recomputed: callers must re-run CalcDimensions (and
// CalcBoundingSphere) before reading them again.
func (s *Store) Scale(sx, sy, sz float32) {
	for i := range s.Positions {
		s.Positions[i].X *= sx
		s.Positions[i].Y *= sy
		s.Positions[i].Z *= sz
	}
	s.bboxValid = false
	s.sphereValid = false
}

// Triangulate returns a store with every quad face split into two
// triangles (fan at the first vertex). Only the face list is new: the
// attribute arrays are shared with the receiver, so mutating positions
// through either store (e.g. Scale) is visible in both. Triangle faces
// are copied unchanged; faces with any other vertex count are returned
// as-is and will be rejected later by the index builder.
func (s *Store) Triangulate() *Store {
	out := &Store{
		Positions: s.Positions,
		Normals:   s.Normals,
		TexCoords: s.TexCoords,
	}
	for i := range s.Faces {
		f := &s.Faces[i]
		if f.NumVerts() != 4 {
			out.Faces = append(out.Faces, *f)
			continue
		}
		for _, corners := range [2][3]int{{0, 1, 2}, {0, 2, 3}} {
			tri := Face{
				HasNormals:   f.HasNormals,
				HasTexCoords: f.HasTexCoords,
			}
			for _, c := range corners {
				tri.VertIndices = append(tri.VertIndices, f.VertIndices[c])
				if f.HasNormals {
					tri.NormIndices = append(tri.NormIndices, f.NormIndices[c])
				}
				if f.HasTexCoords {
					tri.TexIndices = append(tri.TexIndices, f.TexIndices[c])
				}
			}
			out.Faces = append(out.Faces, tri)
		}
	}
	return out
}
