// Package render uploads converted mesh data to OpenGL and draws it.
package render

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/skorren/meshforge/pkg/mesh"
)

// Model holds the GPU-side buffers for one uploaded mesh.
type Model struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	packType   mesh.PackType
}

// Upload creates a VAO/VBO/EBO for the render data. The attribute
// layout is dispatched on the pack type: location 0 is always position,
// location 1 the normal when packed, location 2 the texcoord when
// packed.
func Upload(rd *mesh.RenderData) (*Model, error) {
	recordSize := rd.PackType.RecordSize()
	if recordSize == 0 {
		return nil, fmt.Errorf("cannot upload pack type %d", uint32(rd.PackType))
	}
	if len(rd.Records) == 0 || len(rd.Indices) == 0 {
		return nil, fmt.Errorf("cannot upload empty mesh")
	}

	m := &Model{
		indexCount: int32(len(rd.Indices)),
		packType:   rd.PackType,
	}
	stride := int32(recordSize * 4)

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(rd.Records)*4, unsafe.Pointer(&rd.Records[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	offset := uintptr(3 * 4)
	if rd.PackType.HasNormals() {
		gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, offset)
		gl.EnableVertexAttribArray(1)
		offset += 3 * 4
	}
	if rd.PackType.HasTexCoords() {
		gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, offset)
		gl.EnableVertexAttribArray(2)
	}

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(rd.Indices)*4, unsafe.Pointer(&rd.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return m, nil
}

// PackType returns the pack type the model was uploaded with.
func (m *Model) PackType() mesh.PackType {
	return m.packType
}

// Draw issues the indexed draw call. Mesh data must have been
// triangulated before conversion; quads are not drawable.
func (m *Model) Draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Delete releases the GPU buffers.
func (m *Model) Delete() {
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	m.vao, m.vbo, m.ebo = 0, 0, 0
}
