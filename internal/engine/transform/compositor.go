package transform

import (
	"github.com/Faultbox/meshview/pkg/math"
)

// TrialMatrix returns Translate(t) * RotateZ(angle) * Scale(s) for the state.
// It is only used to locate the centroid.
func TrialMatrix(s State) math.Mat4 {
	return math.TranslateVec(s.Translation).
		Mul(math.RotateZ(math.Radians(s.Angle))).
		Mul(math.ScaleVec(s.Scale))
}

// TransformedCentroid returns the mean of all vertices after applying the
// state's trial matrix. An empty vertex set yields the origin.
func TransformedCentroid(vertices []math.Vec3, s State) math.Vec3 {
	if len(vertices) == 0 {
		return math.Vec3{}
	}

	m := TrialMatrix(s)
	var sx, sy, sz float64
	for _, v := range vertices {
		p := m.TransformVec3(v)
		sx += float64(p.X)
		sy += float64(p.Y)
		sz += float64(p.Z)
	}

	n := float64(len(vertices))
	return math.Vec3{
		X: float32(sx / n),
		Y: float32(sy / n),
		Z: float32(sz / n),
	}
}

// PivotRotation returns Translate(-c) * RotateZ(angle) * Translate(c).
// angle is in degrees.
func PivotRotation(c math.Vec3, angle float32) math.Mat4 {
	return math.TranslateVec(c.Neg()).
		Mul(math.RotateZ(math.Radians(angle))).
		Mul(math.TranslateVec(c))
}

// FrameDelta returns the matrix one frame right-multiplies onto the
// running model matrix:
//
//	Translate(-c) * RotateZ(angle) * Translate(c) * Translate(t) * Scale(s)
//
// where c is the transformed centroid under s.
func FrameDelta(vertices []math.Vec3, s State) math.Mat4 {
	c := TransformedCentroid(vertices, s)
	return PivotRotation(c, s.Angle).
		Mul(math.TranslateVec(s.Translation)).
		Mul(math.ScaleVec(s.Scale))
}

// Compositor owns the model matrix handed to the renderer each frame.
type Compositor struct {
	vertices []math.Vec3
	mode     Mode
	matrix   math.Mat4
	frames   uint64
}

// NewCompositor creates a compositor for the given mesh vertices.
// In ModeAccumulate the matrix starts as Translate(-centroid) of the
// initial state; in ModeReset it starts as identity.
func NewCompositor(vertices []math.Vec3, mode Mode, initial State) *Compositor {
	c := &Compositor{
		vertices: vertices,
		mode:     mode,
		matrix:   math.Identity(),
	}
	if mode == ModeAccumulate {
		c.matrix = math.TranslateVec(TransformedCentroid(vertices, initial).Neg())
	}
	return c
}

// Compose advances one frame with the given state and returns the new
// model matrix.
func (c *Compositor) Compose(s State) math.Mat4 {
	base := c.matrix
	if c.mode == ModeReset {
		base = math.Identity()
	}

	c.matrix = base.Mul(FrameDelta(c.vertices, s))
	c.frames++
	return c.matrix
}

// Matrix returns the current model matrix.
func (c *Compositor) Matrix() math.Mat4 {
	return c.matrix
}

// Mode returns the compositor's mode.
func (c *Compositor) Mode() Mode {
	return c.mode
}

// Frames returns how many frames have been composed.
func (c *Compositor) Frames() uint64 {
	return c.frames
}
