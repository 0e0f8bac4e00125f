package render

import (
	"fmt"

	"github.com/skorren/meshforge/pkg/mesh"
)

// Shader sources for the viewer. The vertex layout matches Upload:
// location 0 position, 1 normal, 2 texcoord. Variants are selected by
// pack type through #define injection.
const meshVertexSrc = `#version 410 core
%s
layout(location = 0) in vec3 aPos;
#ifdef HAS_NORMALS
layout(location = 1) in vec3 aNormal;
out vec3 vNormal;
#endif
#ifdef HAS_TEXCOORDS
layout(location = 2) in vec2 aTexCoord;
out vec2 vTexCoord;
#endif

uniform mat4 uMVP;
uniform mat4 uModel;

void main() {
#ifdef HAS_NORMALS
	vNormal = mat3(uModel) * aNormal;
#endif
#ifdef HAS_TEXCOORDS
	vTexCoord = aTexCoord;
#endif
	gl_Position = uMVP * vec4(aPos, 1.0);
}
`

const meshFragmentSrc = `#version 410 core
%s
#ifdef HAS_NORMALS
in vec3 vNormal;
#endif
#ifdef HAS_TEXCOORDS
in vec2 vTexCoord;
#endif

uniform vec3 uLightDir;
uniform vec3 uBaseColor;

out vec4 fragColor;

void main() {
	vec3 color = uBaseColor;
#ifdef HAS_TEXCOORDS
	// No texture bound in the viewer: visualize UVs instead.
	color = vec3(vTexCoord, 1.0 - vTexCoord.x);
#endif
#ifdef HAS_NORMALS
	float diffuse = max(dot(normalize(vNormal), -uLightDir), 0.0);
	color *= 0.25 + 0.75 * diffuse;
#endif
	fragColor = vec4(color, 1.0);
}
`

// NewProgram compiles the viewer shader pair for the given pack type.
func NewProgram(packType mesh.PackType) (uint32, error) {
	var defines string
	if packType.HasNormals() {
		defines += "#define HAS_NORMALS\n"
	}
	if packType.HasTexCoords() {
		defines += "#define HAS_TEXCOORDS\n"
	}

	return CompileProgram(
		fmt.Sprintf(meshVertexSrc, defines),
		fmt.Sprintf(meshFragmentSrc, defines),
	)
}
