package mesh

import (
	"github.com/skorren/meshforge/pkg/geom"
	"github.com/skorren/meshforge/pkg/math"
)

// RenderData is the render-ready unit handed to a renderer or the binary
// codec: interleaved records, the index buffer consuming them, and the
// pack type describing the record layout.
type RenderData struct {
	PackType PackType
	Records  []float32
	Indices  []uint32
}

// RecordCount returns the number of packed records.
func (rd *RenderData) RecordCount() int {
	size := rd.PackType.RecordSize()
	if size == 0 {
		return 0
	}
	return len(rd.Records) / size
}

// Bounds computes the bounding box of the packed positions. Positions are
// always the first three scalars of every record, so this works for any
// pack type, including data decoded from disk that carries no raw
// geometry.
func (rd *RenderData) Bounds() geom.BoundingBox {
	size := rd.PackType.RecordSize()
	if size == 0 {
		return geom.BoundingBox{}
	}
	s := geom.Store{}
	for i := 0; i+2 < len(rd.Records); i += size {
		s.Positions = append(s.Positions, math.Vec3{
			X: rd.Records[i], Y: rd.Records[i+1], Z: rd.Records[i+2],
		})
	}
	return s.CalcDimensions()
}

// Mesh ties a geometry store to its derived render data. The store is
// loaded once; the render data is rebuilt on demand and dropped whenever
// the geometry changes.
type Mesh struct {
	Geom *geom.Store

	data *RenderData
}

// New wraps a loaded geometry store.
func New(store *geom.Store) *Mesh {
	return &Mesh{Geom: store}
}

// Build runs the full conversion pipeline: detect the pack type from the
// faces, deduplicate index triples, and pack the attribute records. The
// result is cached until the geometry changes. On error the mesh keeps
// its prior state.
func (m *Mesh) Build() (*RenderData, error) {
	if m.data != nil {
		return m.data, nil
	}

	packType, err := DetectPackType(m.Geom.Faces)
	if err != nil {
		return nil, err
	}

	ib, err := BuildIndexBuffer(m.Geom.Faces)
	if err != nil {
		return nil, err
	}

	records, err := Pack(m.Geom, ib.Triples, packType)
	if err != nil {
		return nil, err
	}

	m.data = &RenderData{
		PackType: packType,
		Records:  records,
		Indices:  ib.Indices,
	}
	return m.data, nil
}

// Scale multiplies every position by the given factors and drops the
// cached render data. Bounds stay stale until the store's calculators
// are re-run, per the geometry store's contract.
func (m *Mesh) Scale(sx, sy, sz float32) {
	m.Geom.Scale(sx, sy, sz)
	m.data = nil
}
