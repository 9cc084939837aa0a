// Package controls maps logical viewer actions onto transform state.
package controls

import (
	"fmt"

	"github.com/Faultbox/meshview/internal/engine/transform"
	"github.com/Faultbox/meshview/pkg/math"
)

// Action is a logical control the user can trigger.
type Action int

// Actions in config order.
const (
	TranslateUp Action = iota
	TranslateDown
	TranslateLeft
	TranslateRight
	RotateCCW
	RotateCW
	ScaleUp
	ScaleDown
	Quit
	Screenshot

	actionCount
)

var actionNames = [actionCount]string{
	TranslateUp:    "translate_up",
	TranslateDown:  "translate_down",
	TranslateLeft:  "translate_left",
	TranslateRight: "translate_right",
	RotateCCW:      "rotate_ccw",
	RotateCW:       "rotate_cw",
	ScaleUp:        "scale_up",
	ScaleDown:      "scale_down",
	Quit:           "quit",
	Screenshot:     "screenshot",
}

// String returns the config name of the action.
func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// EdgeTriggered reports whether the action fires once per key press
// instead of every frame the key is held.
func (a Action) EdgeTriggered() bool {
	return a == Screenshot
}

// ParseAction converts a config name into an Action.
func ParseAction(name string) (Action, error) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// All returns every action in config order.
func All() []Action {
	all := make([]Action, actionCount)
	for i := range all {
		all[i] = Action(i)
	}
	return all
}

// Actions is the set of actions active during one frame.
type Actions [actionCount]bool

// Set marks an action active or inactive.
func (a *Actions) Set(act Action, on bool) {
	a[act] = on
}

// Active reports whether the action is active.
func (a Actions) Active(act Action) bool {
	return a[act]
}

// Steps holds the per-frame increments applied by held actions.
type Steps struct {
	Translate float32 // world units
	Rotate    float32 // degrees
	Scale     float32 // added to every scale component
}

// DefaultSteps returns the stock increments.
func DefaultSteps() Steps {
	return Steps{
		Translate: 0.1,
		Rotate:    0.5,
		Scale:     0.01,
	}
}

// Apply adds one frame's worth of deltas for the active actions to s.
func Apply(a Actions, s *transform.State, steps Steps) {
	if a.Active(TranslateUp) {
		s.Translation.Y += steps.Translate
	}
	if a.Active(TranslateDown) {
		s.Translation.Y -= steps.Translate
	}
	if a.Active(TranslateLeft) {
		s.Translation.X -= steps.Translate
	}
	if a.Active(TranslateRight) {
		s.Translation.X += steps.Translate
	}

	if a.Active(RotateCCW) {
		s.Angle += steps.Rotate
	}
	if a.Active(RotateCW) {
		s.Angle -= steps.Rotate
	}

	if a.Active(ScaleUp) {
		s.Scale = s.Scale.Add(math.Splat(steps.Scale))
	}
	if a.Active(ScaleDown) {
		s.Scale = s.Scale.Sub(math.Splat(steps.Scale))
	}
}
