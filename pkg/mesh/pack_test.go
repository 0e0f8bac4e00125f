package mesh

import (
	"errors"
	"reflect"
	"testing"

	"github.com/skorren/meshforge/pkg/geom"
	"github.com/skorren/meshforge/pkg/math"
)

func testStore() *geom.Store {
	return &geom.Store{
		Positions: []math.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 1, Y: 1, Z: 0},
			{X: 0, Y: 1, Z: 0},
		},
		Normals: []math.Vec3{
			{X: 0, Y: 0, Z: 1},
			{X: 0, Y: 1, Z: 0},
		},
		TexCoords: []math.Vec3{
			{X: 0, Y: 0},
			{X: 1, Y: 1},
		},
	}
}

func TestPack_PositionsOnly(t *testing.T) {
	store := testStore()
	triples := []IndexTriple{{Pos: 0}, {Pos: 1}, {Pos: 2}, {Pos: 3}}

	records, err := Pack(store, triples, PackPos)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	if len(records) != 4*3 {
		t.Fatalf("record scalars = %d, want 12", len(records))
	}
	want := []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("records = %v, want %v", records, want)
	}
}

func TestPack_AllAttributes(t *testing.T) {
	store := testStore()
	triples := []IndexTriple{
		{Pos: 1, Norm: 0, Tex: 1},
	}

	records, err := Pack(store, triples, PackPosNormTex)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	// Fixed field order: position, normal, texcoord.
	want := []float32{1, 0, 0, 0, 0, 1, 1, 1}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("records = %v, want %v", records, want)
	}
}

func TestPack_RecordSizes(t *testing.T) {
	store := testStore()
	triples := []IndexTriple{{Pos: 0}, {Pos: 1}}

	tests := []struct {
		packType PackType
		scalars  int
	}{
		{PackPos, 6},
		{PackPosTex, 10},
		{PackPosNorm, 12},
		{PackPosNormTex, 16},
	}

	for _, tt := range tests {
		t.Run(tt.packType.String(), func(t *testing.T) {
			records, err := Pack(store, triples, tt.packType)
			if err != nil {
				t.Fatalf("Pack failed: %v", err)
			}
			if len(records) != tt.scalars {
				t.Errorf("scalars = %d, want %d", len(records), tt.scalars)
			}
		})
	}
}

func TestPack_RecordCountMatchesTripleCount(t *testing.T) {
	store := testStore()
	faces := []geom.Face{
		{VertIndices: []uint32{0, 1, 2}},
		{VertIndices: []uint32{0, 2, 3}},
	}
	ib, err := BuildIndexBuffer(faces)
	if err != nil {
		t.Fatalf("BuildIndexBuffer failed: %v", err)
	}

	records, err := Pack(store, ib.Triples, PackPos)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if got := len(records) / PackPos.RecordSize(); got != len(ib.Triples) {
		t.Errorf("record count = %d, want %d", got, len(ib.Triples))
	}
}

func TestPack_IndexOutOfRange(t *testing.T) {
	store := testStore()

	tests := []struct {
		name     string
		triple   IndexTriple
		packType PackType
	}{
		{"position", IndexTriple{Pos: 4}, PackPos},
		{"normal", IndexTriple{Pos: 0, Norm: 2}, PackPosNorm},
		{"texcoord", IndexTriple{Pos: 0, Tex: 2}, PackPosTex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Pack(store, []IndexTriple{tt.triple}, tt.packType)
			if !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("err = %v, want ErrIndexOutOfRange", err)
			}
			if records != nil {
				t.Error("got partial records on error")
			}
		})
	}
}

func TestPack_InvalidPackType(t *testing.T) {
	store := testStore()
	if _, err := Pack(store, nil, PackType(9)); !errors.Is(err, ErrUnknownPackType) {
		t.Errorf("err = %v, want ErrUnknownPackType", err)
	}
}
