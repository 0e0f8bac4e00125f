package mesh

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Codec errors.
var (
	ErrTruncated       = errors.New("mesh data ends before declared counts are satisfied")
	ErrUnknownPackType = errors.New("unrecognized pack type tag")
	ErrRecordMismatch  = errors.New("record data length does not match pack type")
)

// Binary layout, all little-endian:
//
//	packType    uint32
//	recordCount uint32
//	indexCount  uint32
//	records     recordCount * recordSize * float32
//	indices     indexCount * uint32
//
// recordSize is derived from packType (3/5/6/8). float32/uint32 widths
// and little-endian byte order are the interchange contract regardless
// of host architecture.

type header struct {
	PackType    uint32
	RecordCount uint32
	IndexCount  uint32
}

// Encode writes the render data to w in the binary snapshot layout.
func Encode(w io.Writer, rd *RenderData) error {
	recordSize := rd.PackType.RecordSize()
	if recordSize == 0 {
		return fmt.Errorf("pack type %d: %w", uint32(rd.PackType), ErrUnknownPackType)
	}
	if len(rd.Records)%recordSize != 0 {
		return fmt.Errorf("%d scalars with record size %d: %w",
			len(rd.Records), recordSize, ErrRecordMismatch)
	}

	h := header{
		PackType:    uint32(rd.PackType),
		RecordCount: uint32(len(rd.Records) / recordSize),
		IndexCount:  uint32(len(rd.Indices)),
	}
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("writing mesh header: %w", err)
	}
	if len(rd.Records) > 0 {
		if err := binary.Write(w, binary.LittleEndian, rd.Records); err != nil {
			return fmt.Errorf("writing packed records: %w", err)
		}
	}
	if len(rd.Indices) > 0 {
		if err := binary.Write(w, binary.LittleEndian, rd.Indices); err != nil {
			return fmt.Errorf("writing index buffer: %w", err)
		}
	}
	return nil
}

// Decode reads a binary snapshot from r and reconstructs the render
// data. It fails with ErrUnknownPackType for an unrecognized tag and
// ErrTruncated if the stream ends before the declared counts.
func Decode(r io.Reader) (*RenderData, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("reading mesh header: %w", truncated(err))
	}

	packType := PackType(h.PackType)
	recordSize := packType.RecordSize()
	if recordSize == 0 {
		return nil, fmt.Errorf("pack type %d: %w", h.PackType, ErrUnknownPackType)
	}

	rd := &RenderData{PackType: packType}
	if h.RecordCount > 0 {
		records, err := readFloats(r, int(h.RecordCount)*recordSize)
		if err != nil {
			return nil, fmt.Errorf("reading %d packed records: %w", h.RecordCount, truncated(err))
		}
		rd.Records = records
	}
	if h.IndexCount > 0 {
		indices, err := readUint32s(r, int(h.IndexCount))
		if err != nil {
			return nil, fmt.Errorf("reading %d indices: %w", h.IndexCount, truncated(err))
		}
		rd.Indices = indices
	}
	return rd, nil
}

// decodeChunk bounds per-read allocation so a forged header claiming
// huge counts fails on the first short read instead of allocating the
// declared size up front.
const decodeChunk = 1 << 16

func readFloats(r io.Reader, count int) ([]float32, error) {
	out := make([]float32, 0, min(count, decodeChunk))
	chunk := make([]float32, min(count, decodeChunk))
	for count > 0 {
		n := min(count, len(chunk))
		if err := binary.Read(r, binary.LittleEndian, chunk[:n]); err != nil {
			return nil, err
		}
		out = append(out, chunk[:n]...)
		count -= n
	}
	return out, nil
}

func readUint32s(r io.Reader, count int) ([]uint32, error) {
	out := make([]uint32, 0, min(count, decodeChunk))
	chunk := make([]uint32, min(count, decodeChunk))
	for count > 0 {
		n := min(count, len(chunk))
		if err := binary.Read(r, binary.LittleEndian, chunk[:n]); err != nil {
			return nil, err
		}
		out = append(out, chunk[:n]...)
		count -= n
	}
	return out, nil
}

// WriteFile writes the render data to a file, creating or truncating it.
func WriteFile(path string, rd *RenderData) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating mesh file: %w", err)
	}
	if err := Encode(f, rd); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads a binary mesh snapshot from a file.
func ReadFile(path string) (*RenderData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mesh file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// truncated maps EOF conditions onto ErrTruncated and leaves other I/O
// errors alone.
func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}
