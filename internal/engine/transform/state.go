// Package transform derives the per-frame model matrix for the mesh.
//
// The mesh is rotated about its own transformed centroid rather than the
// world origin. By default each frame's composition is applied on top of
// the previous frame's matrix, so the placement is session-cumulative.
package transform

import (
	"fmt"

	"github.com/Faultbox/meshview/pkg/math"
)

// State is the user-controlled placement of the mesh.
type State struct {
	Translation math.Vec3
	Angle       float32 // rotation about Z, degrees
	Scale       math.Vec3
}

// DefaultState returns zero translation, zero angle and unit scale.
func DefaultState() State {
	return State{
		Scale: math.Splat(1),
	}
}

// Mode selects how the compositor treats the previous frame's matrix.
type Mode int

const (
	// ModeAccumulate composes every frame onto the persistent matrix.
	ModeAccumulate Mode = iota
	// ModeReset recomposes every frame from identity.
	ModeReset
)

// String returns the config name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeAccumulate:
		return "accumulate"
	case ModeReset:
		return "reset"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a config name into a Mode.
// An empty name selects ModeAccumulate.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "", "accumulate":
		return ModeAccumulate, nil
	case "reset":
		return ModeReset, nil
	default:
		return 0, fmt.Errorf("unknown transform mode %q (want accumulate or reset)", name)
	}
}
