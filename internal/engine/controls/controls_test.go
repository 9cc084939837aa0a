package controls

import (
	"testing"

	"github.com/Faultbox/meshview/internal/engine/transform"
	"github.com/Faultbox/meshview/pkg/math"
)

func TestApply(t *testing.T) {
	steps := DefaultSteps()

	tests := []struct {
		name   string
		active []Action
		want   transform.State
	}{
		{
			name: "none",
			want: transform.DefaultState(),
		},
		{
			name:   "up",
			active: []Action{TranslateUp},
			want:   transform.State{Translation: math.Vec3{Y: 0.1}, Scale: math.Splat(1)},
		},
		{
			name:   "down left",
			active: []Action{TranslateDown, TranslateLeft},
			want:   transform.State{Translation: math.Vec3{X: -0.1, Y: -0.1}, Scale: math.Splat(1)},
		},
		{
			name:   "right",
			active: []Action{TranslateRight},
			want:   transform.State{Translation: math.Vec3{X: 0.1}, Scale: math.Splat(1)},
		},
		{
			name:   "rotate ccw",
			active: []Action{RotateCCW},
			want:   transform.State{Angle: 0.5, Scale: math.Splat(1)},
		},
		{
			name:   "rotate cw",
			active: []Action{RotateCW},
			want:   transform.State{Angle: -0.5, Scale: math.Splat(1)},
		},
		{
			name:   "scale up",
			active: []Action{ScaleUp},
			want:   transform.State{Scale: math.Splat(1.01)},
		},
		{
			name:   "scale down",
			active: []Action{ScaleDown},
			want:   transform.State{Scale: math.Splat(0.99)},
		},
		{
			name:   "opposites cancel",
			active: []Action{TranslateUp, TranslateDown, RotateCCW, RotateCW},
			want:   transform.DefaultState(),
		},
		{
			name:   "quit and screenshot leave state alone",
			active: []Action{Quit, Screenshot},
			want:   transform.DefaultState(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Actions
			for _, act := range tt.active {
				a.Set(act, true)
			}

			s := transform.DefaultState()
			Apply(a, &s, steps)

			if !s.Translation.ApproxEqual(tt.want.Translation, 1e-6) ||
				!s.Scale.ApproxEqual(tt.want.Scale, 1e-6) ||
				s.Angle != tt.want.Angle {
				t.Errorf("got %+v, want %+v", s, tt.want)
			}
		})
	}
}

func TestApplyRepeats(t *testing.T) {
	var a Actions
	a.Set(RotateCCW, true)

	s := transform.DefaultState()
	for i := 0; i < 10; i++ {
		Apply(a, &s, DefaultSteps())
	}
	if s.Angle != 5 {
		t.Errorf("expected angle 5 after 10 frames, got %v", s.Angle)
	}
}

func TestActionNames(t *testing.T) {
	for _, act := range All() {
		got, err := ParseAction(act.String())
		if err != nil {
			t.Errorf("ParseAction(%q) failed: %v", act.String(), err)
			continue
		}
		if got != act {
			t.Errorf("ParseAction(%q) = %v, want %v", act.String(), got, act)
		}
	}

	if _, err := ParseAction("jump"); err == nil {
		t.Error("expected error for unknown action")
	}
	if len(All()) != 10 {
		t.Errorf("expected 10 actions, got %d", len(All()))
	}
}

func TestEdgeTriggered(t *testing.T) {
	for _, act := range All() {
		want := act == Screenshot
		if act.EdgeTriggered() != want {
			t.Errorf("%v.EdgeTriggered() = %v, want %v", act, act.EdgeTriggered(), want)
		}
	}
}

func TestResolveKeyNames(t *testing.T) {
	keys, err := ResolveKeyNames(map[string]string{
		"translate_up": "Up",
		"quit":         "Q",
	})
	if err != nil {
		t.Fatalf("ResolveKeyNames failed: %v", err)
	}
	if keys[TranslateUp] != "Up" {
		t.Errorf("expected override Up, got %s", keys[TranslateUp])
	}
	if keys[Quit] != "Q" {
		t.Errorf("expected override Q, got %s", keys[Quit])
	}
	if keys[ScaleUp] != "R" {
		t.Errorf("expected default R, got %s", keys[ScaleUp])
	}
	if len(keys) != len(All()) {
		t.Errorf("expected a key for every action, got %d", len(keys))
	}

	if _, err := ResolveKeyNames(map[string]string{"fly": "Space"}); err == nil {
		t.Error("expected error for unknown action")
	}
	if _, err := ResolveKeyNames(map[string]string{"quit": ""}); err == nil {
		t.Error("expected error for empty key name")
	}
}
