package formats

import (
	"encoding/binary"
	"errors"
	gomath "math"
	"testing"

	"github.com/qmuntal/gltf"
)

// buildTriangleDocument assembles an in-memory glTF document holding a
// single indexed triangle with positions, normals, and UVs packed into
// one embedded buffer.
func buildTriangleDocument(t *testing.T) *gltf.Document {
	t.Helper()

	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	normals := [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	uvs := [][2]float32{{0, 0}, {1, 0}, {0, 1}}
	indices := []uint16{0, 1, 2}

	var data []byte
	putF32 := func(v float32) {
		data = binary.LittleEndian.AppendUint32(data, gomath.Float32bits(v))
	}

	posOffset := len(data)
	for _, p := range positions {
		putF32(p[0])
		putF32(p[1])
		putF32(p[2])
	}
	normOffset := len(data)
	for _, n := range normals {
		putF32(n[0])
		putF32(n[1])
		putF32(n[2])
	}
	uvOffset := len(data)
	for _, uv := range uvs {
		putF32(uv[0])
		putF32(uv[1])
	}
	idxOffset := len(data)
	for _, i := range indices {
		data = binary.LittleEndian.AppendUint16(data, i)
	}

	return &gltf.Document{
		Buffers: []*gltf.Buffer{
			{ByteLength: len(data), Data: data},
		},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: posOffset, ByteLength: 36},
			{Buffer: 0, ByteOffset: normOffset, ByteLength: 36},
			{Buffer: 0, ByteOffset: uvOffset, ByteLength: 24},
			{Buffer: 0, ByteOffset: idxOffset, ByteLength: 6},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: gltf.Index(0), Count: 3, Type: gltf.AccessorVec3, ComponentType: gltf.ComponentFloat},
			{BufferView: gltf.Index(1), Count: 3, Type: gltf.AccessorVec3, ComponentType: gltf.ComponentFloat},
			{BufferView: gltf.Index(2), Count: 3, Type: gltf.AccessorVec2, ComponentType: gltf.ComponentFloat},
			{BufferView: gltf.Index(3), Count: 3, Type: gltf.AccessorScalar, ComponentType: gltf.ComponentUshort},
		},
		Meshes: []*gltf.Mesh{
			{
				Name: "triangle",
				Primitives: []*gltf.Primitive{
					{
						Mode: gltf.PrimitiveTriangles,
						Attributes: map[string]int{
							gltf.POSITION:   0,
							gltf.NORMAL:     1,
							gltf.TEXCOORD_0: 2,
						},
						Indices: gltf.Index(3),
					},
				},
			},
		},
	}
}

func TestStoreFromDocument(t *testing.T) {
	doc := buildTriangleDocument(t)

	store, err := storeFromDocument(doc)
	if err != nil {
		t.Fatalf("storeFromDocument failed: %v", err)
	}

	if store.NumVerts() != 3 {
		t.Errorf("vertex count = %d, want 3", store.NumVerts())
	}
	if store.NumNormals() != 3 {
		t.Errorf("normal count = %d, want 3", store.NumNormals())
	}
	if store.NumTexCoords() != 3 {
		t.Errorf("texcoord count = %d, want 3", store.NumTexCoords())
	}
	if store.NumFaces() != 1 {
		t.Fatalf("face count = %d, want 1", store.NumFaces())
	}

	f := store.Faces[0]
	if !f.HasNormals || !f.HasTexCoords {
		t.Error("face should carry normals and texcoords")
	}
	if f.VertIndices[1] != 1 || f.NormIndices[1] != 1 || f.TexIndices[1] != 1 {
		t.Errorf("unified indices expected, got vert %v norm %v tex %v",
			f.VertIndices, f.NormIndices, f.TexIndices)
	}

	if store.Positions[1].X != 1 {
		t.Errorf("position[1] = %v", store.Positions[1])
	}
	if store.Normals[0].Z != 1 {
		t.Errorf("normal[0] = %v", store.Normals[0])
	}
	if store.TexCoords[2].Y != 1 {
		t.Errorf("texcoord[2] = %v", store.TexCoords[2])
	}
}

func TestStoreFromDocument_NoIndices(t *testing.T) {
	doc := buildTriangleDocument(t)
	doc.Meshes[0].Primitives[0].Indices = nil

	store, err := storeFromDocument(doc)
	if err != nil {
		t.Fatalf("storeFromDocument failed: %v", err)
	}
	if store.NumFaces() != 1 {
		t.Errorf("face count = %d, want 1 (sequential triangle)", store.NumFaces())
	}
}

func TestStoreFromDocument_MultiplePrimitives(t *testing.T) {
	doc := buildTriangleDocument(t)
	// Same primitive twice: attribute indices of the second must be
	// offset past the first's data.
	doc.Meshes[0].Primitives = append(doc.Meshes[0].Primitives, doc.Meshes[0].Primitives[0])

	store, err := storeFromDocument(doc)
	if err != nil {
		t.Fatalf("storeFromDocument failed: %v", err)
	}
	if store.NumVerts() != 6 {
		t.Errorf("vertex count = %d, want 6", store.NumVerts())
	}
	if store.NumFaces() != 2 {
		t.Fatalf("face count = %d, want 2", store.NumFaces())
	}
	if store.Faces[1].VertIndices[0] != 3 {
		t.Errorf("second primitive base offset = %d, want 3", store.Faces[1].VertIndices[0])
	}
}

func TestStoreFromDocument_ExternalBuffer(t *testing.T) {
	doc := buildTriangleDocument(t)
	doc.Buffers[0].Data = nil
	doc.Buffers[0].URI = "mesh.bin"

	if _, err := storeFromDocument(doc); !errors.Is(err, ErrExternalBuffer) {
		t.Errorf("err = %v, want ErrExternalBuffer", err)
	}
}

func TestStoreFromDocument_BadAccessorType(t *testing.T) {
	doc := buildTriangleDocument(t)
	doc.Accessors[0].Type = gltf.AccessorVec4

	if _, err := storeFromDocument(doc); !errors.Is(err, ErrUnsupportedAccessor) {
		t.Errorf("err = %v, want ErrUnsupportedAccessor", err)
	}
}

func TestStoreFromDocument_AccessorOverrun(t *testing.T) {
	doc := buildTriangleDocument(t)
	doc.Accessors[0].Count = 1000

	if _, err := storeFromDocument(doc); !errors.Is(err, ErrUnsupportedAccessor) {
		t.Errorf("err = %v, want ErrUnsupportedAccessor", err)
	}
}
