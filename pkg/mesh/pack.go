package mesh

import (
	"fmt"

	"github.com/skorren/meshforge/pkg/geom"
)

// Pack emits one interleaved attribute record per distinct triple, in
// compact-index order, so record i corresponds to compact index i.
// Field order within a record is fixed: position (3 floats), then
// normal (3) if packed, then texcoord (2) if packed.
//
// Any triple referencing an index outside the store's arrays fails with
// ErrIndexOutOfRange; the input is malformed and nothing is returned.
func Pack(store *geom.Store, triples []IndexTriple, packType PackType) ([]float32, error) {
	recordSize := packType.RecordSize()
	if recordSize == 0 {
		return nil, fmt.Errorf("pack type %d: %w", uint32(packType), ErrUnknownPackType)
	}

	records := make([]float32, 0, len(triples)*recordSize)
	for i, tr := range triples {
		if int(tr.Pos) >= len(store.Positions) {
			return nil, fmt.Errorf("triple %d: position index %d of %d: %w",
				i, tr.Pos, len(store.Positions), ErrIndexOutOfRange)
		}
		p := store.Positions[tr.Pos]
		records = append(records, p.X, p.Y, p.Z)

		if packType.HasNormals() {
			if int(tr.Norm) >= len(store.Normals) {
				return nil, fmt.Errorf("triple %d: normal index %d of %d: %w",
					i, tr.Norm, len(store.Normals), ErrIndexOutOfRange)
			}
			n := store.Normals[tr.Norm]
			records = append(records, n.X, n.Y, n.Z)
		}

		if packType.HasTexCoords() {
			if int(tr.Tex) >= len(store.TexCoords) {
				return nil, fmt.Errorf("triple %d: texcoord index %d of %d: %w",
					i, tr.Tex, len(store.TexCoords), ErrIndexOutOfRange)
			}
			t := store.TexCoords[tr.Tex]
			records = append(records, t.X, t.Y)
		}
	}

	return records, nil
}
