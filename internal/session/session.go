// Package session holds the viewer's per-frame logic independent of any
// window or GPU.
package session

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/controls"
	"github.com/Faultbox/meshview/internal/engine/transform"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/formats"
	"github.com/Faultbox/meshview/pkg/math"
)

// Options configures a Session.
type Options struct {
	Mode  transform.Mode
	Steps controls.Steps
}

// Session owns the mesh, its flat buffer, the transform state and the
// compositor for the lifetime of the process.
type Session struct {
	mesh       *formats.Mesh
	buffer     []float32
	state      transform.State
	compositor *transform.Compositor
	steps      controls.Steps
}

// New flattens the mesh and prepares the compositor.
// A face referencing a missing vertex is an error.
func New(mesh *formats.Mesh, opts Options) (*Session, error) {
	buf, err := formats.Flatten(mesh)
	if err != nil {
		return nil, fmt.Errorf("flattening mesh: %w", err)
	}

	state := transform.DefaultState()
	return &Session{
		mesh:       mesh,
		buffer:     buf,
		state:      state,
		compositor: transform.NewCompositor(mesh.Vertices, opts.Mode, state),
		steps:      opts.Steps,
	}, nil
}

// Load parses the OBJ file at path and creates a session for it.
// A file that cannot be opened is logged and yields an empty mesh.
func Load(path string, opts Options) (*Session, error) {
	obj, err := formats.ParseOBJFile(path)
	switch {
	case errors.Is(err, formats.ErrOpenOBJ):
		logger.Error("mesh not loaded, continuing with empty mesh", zap.Error(err))
		obj = &formats.OBJ{}
	case err != nil:
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	for _, le := range obj.Skipped {
		logger.Warn("skipped malformed line",
			zap.String("file", path),
			zap.Int("line", le.Line),
			zap.Error(le.Err),
		)
	}

	stats := obj.Stats()
	logger.Info("mesh loaded",
		zap.String("file", path),
		zap.Int("vertices", stats.Vertices),
		zap.Int("faces", stats.Faces),
		zap.Int("indices", stats.Indices),
		zap.Int("skipped_lines", len(obj.Skipped)),
	)
	if stats.NonTriangles > 0 {
		logger.Warn("mesh has non-triangle faces, they are drawn as-is",
			zap.Int("faces", stats.NonTriangles),
		)
	}

	return New(&obj.Mesh, opts)
}

// Advance runs one frame: applies the active actions to the transform
// state, then composes and returns the model matrix.
func (s *Session) Advance(a controls.Actions) math.Mat4 {
	controls.Apply(a, &s.state, s.steps)
	return s.compositor.Compose(s.state)
}

// Buffer returns the flat vertex buffer. Callers must not modify it.
func (s *Session) Buffer() []float32 {
	return s.buffer
}

// VertexCount returns the draw call's vertex count.
func (s *Session) VertexCount() int32 {
	return formats.VertexCount(s.buffer)
}

// Mesh returns the parsed mesh.
func (s *Session) Mesh() *formats.Mesh {
	return s.mesh
}

// State returns the current transform state.
func (s *Session) State() transform.State {
	return s.state
}

// Matrix returns the current model matrix.
func (s *Session) Matrix() math.Mat4 {
	return s.compositor.Matrix()
}

// Frames returns how many frames have been advanced.
func (s *Session) Frames() uint64 {
	return s.compositor.Frames()
}
