package formats

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a face references a missing vertex.
var ErrIndexOutOfRange = errors.New("vertex index out of range")

// IndexError locates an out-of-range face index.
type IndexError struct {
	Face        int // face number, 0-based
	Position    int // position within the face
	Index       int // 0-based vertex index as stored in the face
	VertexCount int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("face %d position %d: index %d (file index %d) not in [0, %d)",
		e.Face, e.Position, e.Index, e.Index+1, e.VertexCount)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// Flatten expands the indexed mesh into a flat XYZ position stream in
// face order. Faces are copied verbatim: no triangulation, winding fix or
// deduplication, so a face with other than 3 indices yields a partial
// primitive when drawn as a triangle list.
//
// Any out-of-range index fails the whole call.
func Flatten(m *Mesh) ([]float32, error) {
	buf := make([]float32, 0, 3*m.Stats().Indices)

	for fi, face := range m.Faces {
		for pi, idx := range face.Indices {
			if idx < 0 || idx >= len(m.Vertices) {
				return nil, &IndexError{
					Face:        fi,
					Position:    pi,
					Index:       idx,
					VertexCount: len(m.Vertices),
				}
			}
			v := m.Vertices[idx]
			buf = append(buf, v.X, v.Y, v.Z)
		}
	}

	return buf, nil
}

// VertexCount returns the number of vertices a flat buffer describes,
// which is the count passed to the triangle-list draw call.
func VertexCount(buf []float32) int32 {
	return int32(len(buf) / 3)
}
