package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/meshview/pkg/math"
)

// OBJ format errors.
var (
	ErrOpenOBJ       = errors.New("cannot open OBJ source")
	ErrMalformedLine = errors.New("malformed OBJ line")
)

// maxOBJLine bounds a single line of OBJ text.
const maxOBJLine = 1 << 20

// Face is an ordered list of 0-based vertex indices.
type Face struct {
	Indices []int
}

// Mesh is a vertex list plus the faces that reference it.
// Face indices are not validated; see Flatten.
type Mesh struct {
	Vertices []math.Vec3
	Faces    []Face
}

// MeshStats summarizes a mesh for diagnostics.
type MeshStats struct {
	Vertices     int
	Faces        int
	Indices      int // total face indices, i.e. flattened vertex count
	NonTriangles int // faces with other than 3 indices
}

// Stats returns counts describing the mesh.
func (m *Mesh) Stats() MeshStats {
	s := MeshStats{
		Vertices: len(m.Vertices),
		Faces:    len(m.Faces),
	}
	for _, f := range m.Faces {
		s.Indices += len(f.Indices)
		if len(f.Indices) != 3 {
			s.NonTriangles++
		}
	}
	return s
}

// LineError describes a v or f line that was skipped during parsing.
type LineError struct {
	Line int    // 1-based line number
	Text string // raw line content
	Err  error  // underlying cause
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

// Unwrap exposes both ErrMalformedLine and the underlying cause.
func (e *LineError) Unwrap() []error {
	return []error{ErrMalformedLine, e.Err}
}

// OBJ is the result of parsing an OBJ source.
type OBJ struct {
	Mesh

	// Skipped holds lines that were recognized but could not be parsed.
	// They do not contribute to the mesh.
	Skipped []LineError
}

// ParseOBJ reads an OBJ description from r.
//
// Only "v x y z" and "f i1 i2 ..." lines are used. Face tokens may carry
// "/tex/normal" suffixes, which are dropped; indices are converted from
// 1-based to 0-based. Everything else is ignored. Malformed v/f lines are
// skipped and recorded in Skipped. An error is returned only if r fails.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxOBJLine)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			var v math.Vec3
			v, err = parseVertex(fields[1:])
			if err == nil {
				obj.Vertices = append(obj.Vertices, v)
			}
		case "f":
			var f Face
			f, err = parseFace(fields[1:])
			if err == nil {
				obj.Faces = append(obj.Faces, f)
			}
		}

		if err != nil {
			obj.Skipped = append(obj.Skipped, LineError{
				Line: lineNum,
				Text: line,
				Err:  err,
			})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ at line %d: %w", lineNum+1, err)
	}

	return obj, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpenOBJ, path, err)
	}
	defer f.Close()

	return ParseOBJ(f)
}

// parseVertex parses the X, Y and Z tokens of a v line.
// Tokens past the third (such as a w component) are ignored.
func parseVertex(tokens []string) (math.Vec3, error) {
	if len(tokens) < 3 {
		return math.Vec3{}, fmt.Errorf("vertex needs 3 coordinates, got %d", len(tokens))
	}

	var xyz [3]float32
	for i := range xyz {
		f, err := strconv.ParseFloat(tokens[i], 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("coordinate %d: %w", i, err)
		}
		xyz[i] = float32(f)
	}

	return math.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

// parseFace parses the index tokens of an f line.
func parseFace(tokens []string) (Face, error) {
	face := Face{Indices: make([]int, 0, len(tokens))}

	for _, tok := range tokens {
		ref := tok
		if i := strings.IndexByte(tok, '/'); i >= 0 {
			ref = tok[:i]
		}

		n, err := strconv.Atoi(ref)
		if err != nil {
			return Face{}, fmt.Errorf("face index %q: %w", tok, err)
		}
		face.Indices = append(face.Indices, n-1)
	}

	return face, nil
}
