package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
	if TranslateVec(Vec3{5, 10, 15}) != m {
		t.Error("TranslateVec should match Translate")
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3, 4)

	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("Scale diagonal: got (%f, %f, %f), want (2, 3, 4)", m[0], m[5], m[10])
	}
	if ScaleVec(Vec3{2, 3, 4}) != m {
		t.Error("ScaleVec should match Scale")
	}
}

func TestTransformPoint(t *testing.T) {
	// Translate by (10, 20, 30)
	m := Translate(10, 20, 30)
	p := [3]float32{1, 2, 3}
	result := m.TransformPoint(p)

	expected := [3]float32{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestTransformPointScale(t *testing.T) {
	m := Scale(2, 2, 2)
	p := [3]float32{1, 2, 3}
	result := m.TransformPoint(p)

	expected := [3]float32{2, 4, 6}
	if result != expected {
		t.Errorf("TransformPoint with scale: got %v, want %v", result, expected)
	}
}

func TestRotateZ90(t *testing.T) {
	m := RotateZ(float32(math.Pi / 2)) // 90 degrees
	result := m.TransformVec3(Vec3{1, 0, 0})

	// Counter-clockwise: (1,0,0) becomes (0,1,0)
	if !result.ApproxEqual(Vec3{0, 1, 0}, 1e-5) {
		t.Errorf("RotateZ 90: got %v, want (0, 1, 0)", result)
	}
}

func TestRadians(t *testing.T) {
	if got := Radians(180); abs(got-float32(math.Pi)) > 1e-6 {
		t.Errorf("Radians(180) = %v, want pi", got)
	}
	if got := Radians(0); got != 0 {
		t.Errorf("Radians(0) = %v, want 0", got)
	}
}

// Mul applies the right-hand matrix first, the same order mgl32 uses.
func TestMulMatchesMathGL(t *testing.T) {
	ours := Translate(1, 2, 3).Mul(RotateZ(0.7)).Mul(Scale(2, 0.5, 1))
	ref := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.HomogRotate3DZ(0.7)).Mul4(mgl32.Scale3D(2, 0.5, 1))

	if !ours.ApproxEqual(Mat4(ref), 1e-5) {
		t.Errorf("Mul order differs from mgl32:\n got %v\nwant %v", ours, ref)
	}
}

func TestApproxEqual(t *testing.T) {
	a := Translate(1, 1, 1)
	b := a
	b[12] += 0.0001

	if !a.ApproxEqual(b, 0.001) {
		t.Error("expected matrices within tolerance to be equal")
	}
	if a.ApproxEqual(b, 0.00001) {
		t.Error("expected matrices outside tolerance to differ")
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
