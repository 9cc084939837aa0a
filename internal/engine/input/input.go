// Package input handles SDL2 input events.
package input

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/meshview/internal/engine/controls"
)

// Event types for viewer use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
}

// Bindings maps each action to the key that triggers it.
type Bindings map[controls.Action]sdl.Scancode

// NewBindings resolves SDL key names (e.g. "W", "Escape", "F12") to scancodes.
func NewBindings(keys map[controls.Action]string) (Bindings, error) {
	b := make(Bindings, len(keys))
	for act, name := range keys {
		code := sdl.GetScancodeFromName(name)
		if code == sdl.SCANCODE_UNKNOWN {
			return nil, fmt.Errorf("action %s: unknown key %q", act, name)
		}
		b[act] = code
	}
	return b, nil
}

// Input handles all input processing.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the window was asked to close.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{
					Type: EventKeyDown,
					Key:  e.Keysym.Scancode,
				})
			} else if e.Type == sdl.KEYUP {
				i.events = append(i.events, Event{
					Type: EventKeyUp,
					Key:  e.Keysym.Scancode,
				})
			}
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// Snapshot returns the actions active this frame. Held keys count for
// level-triggered actions; edge-triggered actions need a key press
// event from the last Update.
func (i *Input) Snapshot(b Bindings) controls.Actions {
	var a controls.Actions
	keys := sdl.GetKeyboardState()

	for act, code := range b {
		if act.EdgeTriggered() {
			a.Set(act, i.IsKeyPressed(code))
			continue
		}
		if int(code) < len(keys) && keys[code] != 0 {
			a.Set(act, true)
		}
	}
	return a
}
