package formats

import (
	"encoding/binary"
	"errors"
	"fmt"
	gomath "math"

	"github.com/qmuntal/gltf"

	"github.com/skorren/meshforge/pkg/geom"
	"github.com/skorren/meshforge/pkg/math"
)

// glTF loader errors.
var (
	ErrExternalBuffer      = errors.New("external glTF buffers are not supported")
	ErrUnsupportedAccessor = errors.New("unsupported glTF accessor layout")
)

// LoadGLTF loads a glTF or GLB file into a geometry store. Every
// triangle primitive of every mesh in the document is appended to the
// same store; attribute indices are offset so faces keep referencing
// their own primitive's data.
//
// glTF vertices are already unified (one index stream per primitive), so
// each face vertex uses the same index for position, normal, and
// texcoord. The conversion engine's deduplication still applies across
// primitives.
func LoadGLTF(path string) (*geom.Store, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening glTF file: %w", err)
	}
	store, err := storeFromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return store, nil
}

// storeFromDocument converts a parsed glTF document into a geometry store.
func storeFromDocument(doc *gltf.Document) (*geom.Store, error) {
	store := &geom.Store{}

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				continue
			}
			if err := appendPrimitive(doc, prim, store); err != nil {
				return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
			}
		}
	}

	return store, nil
}

func appendPrimitive(doc *gltf.Document, prim *gltf.Primitive, store *geom.Store) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}

	positions, err := readVec3Accessor(doc, posIdx)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	var normals []math.Vec3
	if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = readVec3Accessor(doc, normIdx); err != nil {
			return fmt.Errorf("normals: %w", err)
		}
	}

	var texCoords []math.Vec3
	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if texCoords, err = readVec2Accessor(doc, uvIdx); err != nil {
			return fmt.Errorf("texcoords: %w", err)
		}
	}

	basePos := uint32(len(store.Positions))
	baseNorm := uint32(len(store.Normals))
	baseTex := uint32(len(store.TexCoords))
	store.Positions = append(store.Positions, positions...)
	store.Normals = append(store.Normals, normals...)
	store.TexCoords = append(store.TexCoords, texCoords...)

	var indices []uint32
	if prim.Indices != nil {
		if indices, err = readIndexAccessor(doc, *prim.Indices); err != nil {
			return fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	hasNorm := len(normals) > 0
	hasTex := len(texCoords) > 0
	for i := 0; i+2 < len(indices); i += 3 {
		face := geom.Face{
			HasNormals:   hasNorm,
			HasTexCoords: hasTex,
		}
		for _, idx := range indices[i : i+3] {
			face.VertIndices = append(face.VertIndices, basePos+idx)
			if hasNorm {
				face.NormIndices = append(face.NormIndices, baseNorm+idx)
			}
			if hasTex {
				face.TexIndices = append(face.TexIndices, baseTex+idx)
			}
		}
		store.Faces = append(store.Faces, face)
	}

	return nil
}

func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("%w: want float VEC3, got %v/%v",
			ErrUnsupportedAccessor, accessor.Type, accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	out := make([]math.Vec3, accessor.Count)
	for i := range out {
		o := i * stride
		out[i] = math.Vec3{
			X: float32FromBytes(data[o:]),
			Y: float32FromBytes(data[o+4:]),
			Z: float32FromBytes(data[o+8:]),
		}
	}
	return out, nil
}

func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]math.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec2 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("%w: want float VEC2, got %v/%v",
			ErrUnsupportedAccessor, accessor.Type, accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, 8)
	if err != nil {
		return nil, err
	}

	out := make([]math.Vec3, accessor.Count)
	for i := range out {
		o := i * stride
		out[i] = math.Vec3{
			X: float32FromBytes(data[o:]),
			Y: float32FromBytes(data[o+4:]),
		}
	}
	return out, nil
}

func readIndexAccessor(doc *gltf.Document, accessorIdx int) ([]uint32, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("%w: want SCALAR indices, got %v", ErrUnsupportedAccessor, accessor.Type)
	}

	var width int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		width = 1
	case gltf.ComponentUshort:
		width = 2
	case gltf.ComponentUint:
		width = 4
	default:
		return nil, fmt.Errorf("%w: index component %v", ErrUnsupportedAccessor, accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, width)
	if err != nil {
		return nil, err
	}

	out := make([]uint32, accessor.Count)
	for i := range out {
		o := i * stride
		switch width {
		case 1:
			out[i] = uint32(data[o])
		case 2:
			out[i] = uint32(binary.LittleEndian.Uint16(data[o:]))
		case 4:
			out[i] = binary.LittleEndian.Uint32(data[o:])
		}
	}
	return out, nil
}

// accessorBytes returns the accessor's raw bytes and element stride.
// Only embedded (GLB or data-URI) buffers are supported.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("%w: accessor without buffer view", ErrUnsupportedAccessor)
	}
	view := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[view.Buffer]
	if buffer.Data == nil {
		return nil, 0, ErrExternalBuffer
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}

	start := view.ByteOffset + accessor.ByteOffset
	need := start + (accessor.Count-1)*stride + elemSize
	if accessor.Count == 0 {
		need = start
	}
	if need > len(buffer.Data) {
		return nil, 0, fmt.Errorf("%w: accessor overruns buffer (%d > %d)",
			ErrUnsupportedAccessor, need, len(buffer.Data))
	}

	return buffer.Data[start:], stride, nil
}

func float32FromBytes(b []byte) float32 {
	return gomath.Float32frombits(binary.LittleEndian.Uint32(b))
}
