// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/gridcast/internal/control"
)

// EventType identifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventCommand
	EventScreenshot
)

// Event represents a processed input event.
type Event struct {
	Type    EventType
	Command control.Command
	Width   int
	Height  int
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
// Returns true if the window was closed.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			// Held keys repeat as further KEYDOWN events
			if e.Type != sdl.KEYDOWN {
				continue
			}
			if e.Keysym.Scancode == sdl.SCANCODE_F12 && e.Repeat == 0 {
				i.events = append(i.events, Event{Type: EventScreenshot})
				continue
			}
			if cmd := commandFor(e.Keysym); cmd != control.None {
				i.events = append(i.events, Event{Type: EventCommand, Command: cmd})
			}
		}
	}

	return false
}

// commandFor maps arrows and Escape by scancode and letters by keycode, so
// WASD follows the active keyboard layout.
func commandFor(k sdl.Keysym) control.Command {
	switch k.Scancode {
	case sdl.SCANCODE_UP:
		return control.Forward
	case sdl.SCANCODE_DOWN:
		return control.Backward
	case sdl.SCANCODE_LEFT:
		return control.TurnLeft
	case sdl.SCANCODE_RIGHT:
		return control.TurnRight
	case sdl.SCANCODE_ESCAPE:
		return control.Quit
	}
	if k.Sym < 0x80 {
		return control.FromRune(rune(k.Sym))
	}
	return control.None
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
