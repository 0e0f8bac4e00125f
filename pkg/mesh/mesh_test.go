package mesh

import (
	"errors"
	"testing"

	"github.com/skorren/meshforge/pkg/geom"
	"github.com/skorren/meshforge/pkg/math"
)

func quadStore() *geom.Store {
	return &geom.Store{
		Positions: []math.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 1, Y: 1, Z: 0},
			{X: 0, Y: 1, Z: 0},
		},
		Faces: []geom.Face{
			{VertIndices: []uint32{0, 1, 2, 3}},
		},
	}
}

func TestMesh_Build_SingleQuad(t *testing.T) {
	m := New(quadStore())

	rd, err := m.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if rd.PackType != PackPos {
		t.Errorf("pack type = %v, want PackPos", rd.PackType)
	}
	if rd.RecordCount() != 4 {
		t.Errorf("record count = %d, want 4", rd.RecordCount())
	}
	if len(rd.Indices) != 4 {
		t.Errorf("index count = %d, want 4", len(rd.Indices))
	}
}

func TestMesh_Build_Caches(t *testing.T) {
	m := New(quadStore())

	first, err := m.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	second, err := m.Build()
	if err != nil {
		t.Fatalf("second Build failed: %v", err)
	}
	if first != second {
		t.Error("Build did not return the cached render data")
	}
}

func TestMesh_Scale_InvalidatesRenderData(t *testing.T) {
	m := New(quadStore())

	first, err := m.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	m.Scale(2, 2, 2)

	second, err := m.Build()
	if err != nil {
		t.Fatalf("Build after Scale failed: %v", err)
	}
	if first == second {
		t.Error("Scale did not drop the cached render data")
	}
	if second.Records[3] != 2 {
		t.Errorf("rebuilt record position = %f, want 2", second.Records[3])
	}
}

func TestMesh_Build_ErrorLeavesPriorState(t *testing.T) {
	store := quadStore()
	m := New(store)
	if _, err := m.Build(); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// Rebuild with a malformed face list: the error must not replace the
	// cached data with a partial result.
	m.Scale(1, 1, 1)
	store.Faces = append(store.Faces, geom.Face{VertIndices: make([]uint32, 5)})

	_, err := m.Build()
	if !errors.Is(err, ErrUnsupportedFaceArity) {
		t.Fatalf("err = %v, want ErrUnsupportedFaceArity", err)
	}
	if m.data != nil {
		t.Error("failed Build left partial render data behind")
	}
}

func TestRenderData_Bounds(t *testing.T) {
	m := New(quadStore())
	rd, err := m.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	b := rd.Bounds()
	if b.MinX != 0 || b.MaxX != 1 || b.MinY != 0 || b.MaxY != 1 {
		t.Errorf("bounds = %+v, want unit quad", b)
	}
	if b.Center.X != 0.5 || b.Center.Y != 0.5 {
		t.Errorf("center = %v, want (0.5, 0.5, 0)", b.Center)
	}
}

func TestRenderData_Bounds_FromDecodedData(t *testing.T) {
	// Bounds work on pos+norm+tex records too: positions are always the
	// record's first three scalars.
	rd := &RenderData{
		PackType: PackPosNormTex,
		Records: []float32{
			-2, 0, 0 /* norm */, 0, 0, 1 /* tex */, 0, 0,
			2, 4, 6 /* norm */, 0, 0, 1 /* tex */, 1, 1,
		},
	}
	b := rd.Bounds()
	if b.MinX != -2 || b.MaxX != 2 || b.MaxY != 4 || b.MaxZ != 6 {
		t.Errorf("bounds = %+v", b)
	}
}
