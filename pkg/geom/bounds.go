package geom

import (
	"github.com/skorren/meshforge/pkg/math"
)

// BoundingBox is the axis-aligned bounding box of a store's positions.
type BoundingBox struct {
	MinX, MaxX float32
	MinY, MaxY float32
	MinZ, MaxZ float32
	Center     math.Vec3
}

// Width returns the X extent of the box.
func (b BoundingBox) Width() float32 { return b.MaxX - b.MinX }

// Height returns the Y extent of the box.
func (b BoundingBox) Height() float32 { return b.MaxY - b.MinY }

// Depth returns the Z extent of the box.
func (b BoundingBox) Depth() float32 { return b.MaxZ - b.MinZ }

// BoundingSphere is the sphere centered on the bounding-box center that
// encloses every position.
type BoundingSphere struct {
	Center math.Vec3
	Radius float32
}

// CalcDimensions scans all positions once and sets the bounding box and
// its center. It must be called after any mutation of positions (Scale
// included) before the bounding box is read.
func (s *Store) CalcDimensions() BoundingBox {
	var b BoundingBox
	if len(s.Positions) == 0 {
		s.bbox = b
		s.bboxValid = true
		s.sphereValid = false
		return b
	}

	p0 := s.Positions[0]
	b = BoundingBox{
		MinX: p0.X, MaxX: p0.X,
		MinY: p0.Y, MaxY: p0.Y,
		MinZ: p0.Z, MaxZ: p0.Z,
	}
	for _, p := range s.Positions[1:] {
		if p.X < b.MinX {
			b.MinX = p.X
		}
		if p.X > b.MaxX {
			b.MaxX = p.X
		}
		if p.Y < b.MinY {
			b.MinY = p.Y
		}
		if p.Y > b.MaxY {
			b.MaxY = p.Y
		}
		if p.Z < b.MinZ {
			b.MinZ = p.Z
		}
		if p.Z > b.MaxZ {
			b.MaxZ = p.Z
		}
	}
	b.Center = math.Vec3{
		X: (b.MinX + b.MaxX) / 2,
		Y: (b.MinY + b.MaxY) / 2,
		Z: (b.MinZ + b.MaxZ) / 2,
	}

	s.bbox = b
	s.bboxValid = true
	s.sphereValid = false
	return b
}

// CalcBoundingSphere sets the bounding sphere from the current bounding-box
// center and the farthest position from it. CalcDimensions must have been
// called since the last position mutation.
func (s *Store) CalcBoundingSphere() BoundingSphere {
	if !s.bboxValid {
		s.CalcDimensions()
	}

	var maxDist float32
	for _, p := range s.Positions {
		if d := p.Distance(s.bbox.Center); d > maxDist {
			maxDist = d
		}
	}

	s.sphere = BoundingSphere{Center: s.bbox.Center, Radius: maxDist}
	s.sphereValid = true
	return s.sphere
}

// BoundingBox returns the last computed bounding box. The result is stale
// after Scale until CalcDimensions is re-run.
func (s *Store) BoundingBox() BoundingBox {
	return s.bbox
}

// BoundingSphere returns the last computed bounding sphere. The result is
// stale after Scale until CalcBoundingSphere is re-run.
func (s *Store) BoundingSphere() BoundingSphere {
	return s.sphere
}
