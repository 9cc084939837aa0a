// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/renderer/shaders"
	"github.com/Faultbox/meshview/internal/engine/shader"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/formats"
	"github.com/Faultbox/meshview/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [4]float32
	MeshColor  [4]float32
}

// Renderer draws a single flat-buffer mesh with one model matrix.
type Renderer struct {
	config Config

	// Program is 0 when shader compilation failed; draws are skipped then.
	program      uint32
	transformLoc int32
	colorLoc     int32

	meshVAO     uint32
	meshVBO     uint32
	vertexCount int32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
//
// Failing to load OpenGL is an error. A shader compile or link failure is
// only logged: the renderer stays usable but draws nothing.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	// Log OpenGL info
	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	program, err := shader.CompileProgram(shaders.MeshVertexShader, shaders.MeshFragmentShader)
	if err != nil {
		logger.Error("mesh shader unusable, rendering will be blank", zap.Error(err))
	} else {
		r.program = program
		r.transformLoc = shader.GetUniform(program, "transform")
		r.colorLoc = shader.GetUniform(program, "meshColor")
		logger.Debug("shader program created", zap.Uint32("program", program))
	}

	return r, nil
}

// Usable reports whether the shader program compiled and linked.
func (r *Renderer) Usable() bool {
	return r.program != 0
}

// Upload copies the flat vertex buffer to the GPU. The buffer is treated
// as static; calling Upload again replaces it.
func (r *Renderer) Upload(vertices []float32) {
	r.deleteMesh()

	gl.GenVertexArrays(1, &r.meshVAO)
	gl.BindVertexArray(r.meshVAO)

	gl.GenBuffers(1, &r.meshVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.meshVBO)

	var data unsafe.Pointer
	if len(vertices) > 0 {
		data = unsafe.Pointer(&vertices[0])
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, data, gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	// Unbind
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.vertexCount = formats.VertexCount(vertices)

	logger.Debug("mesh uploaded",
		zap.Uint32("vao", r.meshVAO),
		zap.Uint32("vbo", r.meshVBO),
		zap.Int32("vertices", r.vertexCount),
	)
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// DrawMesh draws the uploaded buffer as a triangle list with the given
// model matrix as the transform uniform.
func (r *Renderer) DrawMesh(model math.Mat4) {
	if r.program == 0 || r.vertexCount == 0 {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.transformLoc, 1, false, model.Ptr())
	c := r.config.MeshColor
	gl.Uniform4f(r.colorLoc, c[0], c[1], c[2], c[3])

	gl.BindVertexArray(r.meshVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, r.vertexCount)
	gl.BindVertexArray(0)
}

// ReadPixels returns the current framebuffer as RGBA rows, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}

	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.deleteMesh()
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

func (r *Renderer) deleteMesh() {
	if r.meshVAO != 0 {
		gl.DeleteVertexArrays(1, &r.meshVAO)
		r.meshVAO = 0
	}
	if r.meshVBO != 0 {
		gl.DeleteBuffers(1, &r.meshVBO)
		r.meshVBO = 0
	}
	r.vertexCount = 0
}
