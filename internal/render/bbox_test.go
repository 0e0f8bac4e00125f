package render

import (
	"testing"

	"github.com/skorren/meshforge/pkg/geom"
)

func TestBBoxWireframeVertices_Count(t *testing.T) {
	b := geom.BoundingBox{MinX: -1, MaxX: 1, MinY: -2, MaxY: 2, MinZ: -3, MaxZ: 3}
	verts := BBoxWireframeVertices(b)

	if len(verts) != BBoxVertexCount*3 {
		t.Fatalf("scalar count = %d, want %d", len(verts), BBoxVertexCount*3)
	}
}

func TestBBoxWireframeVertices_OnCorners(t *testing.T) {
	b := geom.BoundingBox{MinX: -1, MaxX: 1, MinY: -2, MaxY: 2, MinZ: -3, MaxZ: 3}
	verts := BBoxWireframeVertices(b)

	// Every vertex must sit on a box corner: each component equals the
	// box min or max for its axis.
	mins := [3]float32{b.MinX, b.MinY, b.MinZ}
	maxs := [3]float32{b.MaxX, b.MaxY, b.MaxZ}
	for i := 0; i < len(verts); i += 3 {
		for axis := 0; axis < 3; axis++ {
			v := verts[i+axis]
			if v != mins[axis] && v != maxs[axis] {
				t.Fatalf("vertex %d axis %d = %f, not on box extents", i/3, axis, v)
			}
		}
	}
}

func TestBBoxWireframeVertices_EdgesAxisAligned(t *testing.T) {
	b := geom.BoundingBox{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1, MinZ: 0, MaxZ: 1}
	verts := BBoxWireframeVertices(b)

	// Line-list pairs: each edge's endpoints differ in exactly one axis.
	for i := 0; i < len(verts); i += 6 {
		differ := 0
		for axis := 0; axis < 3; axis++ {
			if verts[i+axis] != verts[i+3+axis] {
				differ++
			}
		}
		if differ != 1 {
			t.Errorf("edge %d endpoints differ in %d axes, want 1", i/6, differ)
		}
	}
}

func TestBBoxWireframeVertices_EdgeCoverage(t *testing.T) {
	b := geom.BoundingBox{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1, MinZ: 0, MaxZ: 1}
	verts := BBoxWireframeVertices(b)

	// A unit cube has 12 distinct edges; the line list must contain each
	// exactly once regardless of endpoint order.
	type edge [6]float32
	seen := make(map[edge]bool)
	for i := 0; i < len(verts); i += 6 {
		a := [3]float32{verts[i], verts[i+1], verts[i+2]}
		z := [3]float32{verts[i+3], verts[i+4], verts[i+5]}
		// Canonical endpoint order.
		if a[0] > z[0] || (a[0] == z[0] && a[1] > z[1]) ||
			(a[0] == z[0] && a[1] == z[1] && a[2] > z[2]) {
			a, z = z, a
		}
		e := edge{a[0], a[1], a[2], z[0], z[1], z[2]}
		if seen[e] {
			t.Errorf("duplicate edge %v", e)
		}
		seen[e] = true
	}
	if len(seen) != 12 {
		t.Errorf("distinct edges = %d, want 12", len(seen))
	}
}
