package render

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/skorren/meshforge/pkg/geom"
)

// BBoxVertexCount is the number of line vertices in a box wireframe
// (12 edges, 2 endpoints each).
const BBoxVertexCount = 24

// BBoxWireframeVertices generates line-list vertices for a wireframe
// bounding box, [x, y, z] per vertex, ready for a LINES draw.
func BBoxWireframeVertices(b geom.BoundingBox) []float32 {
	minX, minY, minZ := b.MinX, b.MinY, b.MinZ
	maxX, maxY, maxZ := b.MaxX, b.MaxY, b.MaxZ
	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// BBoxModel holds the GPU-side buffers for one bounding-box wireframe.
type BBoxModel struct {
	vao uint32
	vbo uint32
}

// UploadBBox creates a VAO/VBO holding the wireframe line list for the
// given bounding box.
func UploadBBox(b geom.BoundingBox) (*BBoxModel, error) {
	verts := BBoxWireframeVertices(b)

	m := &BBoxModel{}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, unsafe.Pointer(&verts[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	return m, nil
}

// Draw issues the wireframe line draw.
func (m *BBoxModel) Draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.LINES, 0, BBoxVertexCount)
	gl.BindVertexArray(0)
}

// Delete releases the GPU buffers.
func (m *BBoxModel) Delete() {
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	m.vao, m.vbo = 0, 0
}

const lineVertexSrc = `#version 410 core
layout(location = 0) in vec3 aPos;

uniform mat4 uMVP;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
}
`

const lineFragmentSrc = `#version 410 core
uniform vec3 uColor;

out vec4 fragColor;

void main() {
	fragColor = vec4(uColor, 1.0);
}
`

// NewLineProgram compiles the flat-color shader pair used for wireframe
// overlays.
func NewLineProgram() (uint32, error) {
	program, err := CompileProgram(lineVertexSrc, lineFragmentSrc)
	if err != nil {
		return 0, fmt.Errorf("line program: %w", err)
	}
	return program, nil
}
