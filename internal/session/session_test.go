package session

import (
	"errors"
	gomath "math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/meshview/internal/engine/controls"
	"github.com/Faultbox/meshview/internal/engine/transform"
	"github.com/Faultbox/meshview/pkg/formats"
	"github.com/Faultbox/meshview/pkg/math"
)

const quadOBJ = `# unit quad, one 4-index face
v -0.5 -0.5 0
v 0.5 -0.5 0
v 0.5 0.5 0
v -0.5 0.5 0
f 1 2 3 4
`

func writeOBJ(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mesh.obj")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test OBJ: %v", err)
	}
	return path
}

func defaultOptions() Options {
	return Options{Mode: transform.ModeAccumulate, Steps: controls.DefaultSteps()}
}

func TestLoad_QuadFace(t *testing.T) {
	s, err := Load(writeOBJ(t, quadOBJ), defaultOptions())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := len(s.Buffer()); got != 12 {
		t.Fatalf("expected 12 floats, got %d", got)
	}

	// The draw count is len/3; a 4-index face leaves an incomplete
	// trailing triangle, matching the verbatim flattening.
	if got := s.VertexCount(); got != 4 {
		t.Errorf("expected vertex count 4, got %d", got)
	}
	if s.VertexCount()%3 == 0 {
		t.Error("quad vertex count should not be a multiple of 3")
	}

	want := []float32{
		-0.5, -0.5, 0,
		0.5, -0.5, 0,
		0.5, 0.5, 0,
		-0.5, 0.5, 0,
	}
	for i, f := range want {
		if s.Buffer()[i] != f {
			t.Errorf("buffer[%d] = %v, want %v", i, s.Buffer()[i], f)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing.obj"), defaultOptions())
	if err != nil {
		t.Fatalf("missing file should not be fatal: %v", err)
	}
	if len(s.Buffer()) != 0 || s.VertexCount() != 0 {
		t.Errorf("expected empty buffer, got %d floats", len(s.Buffer()))
	}

	// Frames still advance without NaNs
	m := s.Advance(controls.Actions{})
	for i, f := range m {
		if gomath.IsNaN(float64(f)) {
			t.Fatalf("matrix element %d is NaN", i)
		}
	}
}

func TestLoad_IndexOutOfRange(t *testing.T) {
	path := writeOBJ(t, "v 0 0 0\nv 1 0 0\nf 1 2 3\n")

	_, err := Load(path, defaultOptions())
	if err == nil {
		t.Fatal("expected error for out-of-range face index")
	}
	if !errors.Is(err, formats.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestLoad_SkipsMalformedLines(t *testing.T) {
	path := writeOBJ(t, "v 0 0 0\nv 1 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\nf 1 two 3\n")

	s, err := Load(path, defaultOptions())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(s.Mesh().Vertices) != 3 || len(s.Mesh().Faces) != 1 {
		t.Errorf("unexpected mesh: %d vertices, %d faces", len(s.Mesh().Vertices), len(s.Mesh().Faces))
	}
	if s.VertexCount() != 3 {
		t.Errorf("expected 3 vertices to draw, got %d", s.VertexCount())
	}
}

func TestAdvance_AppliesActionsBeforeCompose(t *testing.T) {
	mesh := &formats.Mesh{
		Vertices: []math.Vec3{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 0, Y: 2}},
		Faces:    []formats.Face{{Indices: []int{0, 1, 2}}},
	}
	s, err := New(mesh, Options{Mode: transform.ModeReset, Steps: controls.DefaultSteps()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var a controls.Actions
	a.Set(controls.TranslateRight, true)
	a.Set(controls.RotateCCW, true)

	got := s.Advance(a)

	state := s.State()
	if state.Translation.X != 0.1 || state.Angle != 0.5 {
		t.Fatalf("actions not applied: %+v", state)
	}
	if want := transform.FrameDelta(mesh.Vertices, state); !got.ApproxEqual(want, 1e-5) {
		t.Errorf("reset-mode frame should use the updated state:\n got %v\nwant %v", got, want)
	}
}

func TestAdvance_Accumulates(t *testing.T) {
	mesh := &formats.Mesh{
		Vertices: []math.Vec3{{X: 1}, {X: 3}, {X: 2, Y: 3}},
		Faces:    []formats.Face{{Indices: []int{0, 1, 2}}},
	}
	s, err := New(mesh, defaultOptions())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var a controls.Actions
	a.Set(controls.RotateCCW, true)
	first := s.Advance(a)

	// No input on the second frame, but the angle stays at 0.5 degrees
	// and is applied again on top of the first frame.
	second := s.Advance(controls.Actions{})
	if first.ApproxEqual(second, 1e-6) {
		t.Error("accumulating session should keep changing with a held angle")
	}
	if s.Frames() != 2 {
		t.Errorf("expected 2 frames, got %d", s.Frames())
	}
	if s.Matrix() != second {
		t.Error("Matrix() should return the last frame")
	}
}
