// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MeshVertexShader transforms positions by the model matrix.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader fills the mesh with a constant color.
//
//go:embed mesh.frag
var MeshFragmentShader string
