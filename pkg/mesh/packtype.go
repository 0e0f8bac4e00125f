// Package mesh converts raw face-indexed geometry into a deduplicated,
// interleaved form ready for indexed drawing, and persists it as a
// compact binary snapshot.
package mesh

import "fmt"

// PackType selects which attributes are interleaved into each packed
// vertex record. The numeric values are part of the binary format.
type PackType uint32

const (
	// PackPos packs positions only (3 floats per record).
	PackPos PackType = 1
	// PackPosNorm packs positions and normals (6 floats per record).
	PackPosNorm PackType = 2
	// PackPosTex packs positions and texture coordinates (5 floats per record).
	PackPosTex PackType = 3
	// PackPosNormTex packs all three attributes (8 floats per record).
	PackPosNormTex PackType = 4
)

// RecordSize returns the number of float32 scalars per packed record,
// or 0 for an invalid pack type.
func (p PackType) RecordSize() int {
	switch p {
	case PackPos:
		return 3
	case PackPosNorm:
		return 6
	case PackPosTex:
		return 5
	case PackPosNormTex:
		return 8
	default:
		return 0
	}
}

// HasNormals reports whether records include a normal.
func (p PackType) HasNormals() bool {
	return p == PackPosNorm || p == PackPosNormTex
}

// HasTexCoords reports whether records include texture coordinates.
func (p PackType) HasTexCoords() bool {
	return p == PackPosTex || p == PackPosNormTex
}

// Valid reports whether p is one of the defined pack types.
func (p PackType) Valid() bool {
	return p.RecordSize() != 0
}

// String returns a human-readable pack type name.
func (p PackType) String() string {
	switch p {
	case PackPos:
		return "pos"
	case PackPosNorm:
		return "pos+norm"
	case PackPosTex:
		return "pos+tex"
	case PackPosNormTex:
		return "pos+norm+tex"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(p))
	}
}
