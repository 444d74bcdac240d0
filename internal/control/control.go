// Package control turns front-end key presses into viewer commands.
package control

import (
	"fmt"
	"strings"

	"github.com/Faultbox/gridcast/pkg/raycast"
)

// Command is a single viewer action.
type Command uint8

const (
	None Command = iota
	TurnLeft
	TurnRight
	Forward
	Backward
	StrafeLeft
	StrafeRight
	Quit
)

var commandNames = [...]string{
	None:        "none",
	TurnLeft:    "turn-left",
	TurnRight:   "turn-right",
	Forward:     "forward",
	Backward:    "backward",
	StrafeLeft:  "strafe-left",
	StrafeRight: "strafe-right",
	Quit:        "quit",
}

// String returns the command name.
func (c Command) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return fmt.Sprintf("Command(%d)", c)
}

// Parse returns the command with the given name.
func Parse(name string) (Command, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range commandNames {
		if n == name {
			return Command(c), nil
		}
	}
	return None, fmt.Errorf("unknown command %q", name)
}

// FromRune maps a typed character to a command. Both WASD with Q/E turning
// and vi-style hjkl are accepted; Escape and 'x' quit.
func FromRune(r rune) Command {
	switch r {
	case 'w', 'W', 'k':
		return Forward
	case 's', 'S', 'j':
		return Backward
	case 'a', 'A':
		return StrafeLeft
	case 'd', 'D':
		return StrafeRight
	case 'q', 'Q', 'h':
		return TurnLeft
	case 'e', 'E', 'l':
		return TurnRight
	case 'x', 'X', 0x1b:
		return Quit
	}
	return None
}

// Apply performs c on v, using g to reject blocked moves. It reports whether
// the viewer changed and needs a new Update.
func Apply(c Command, v *raycast.Viewer, g *raycast.Grid) bool {
	switch c {
	case TurnLeft:
		v.TurnLeft()
		return v.AngleStep != 0
	case TurnRight:
		v.TurnRight()
		return v.AngleStep != 0
	case Forward:
		return v.Move(raycast.Forward, g)
	case Backward:
		return v.Move(raycast.Backward, g)
	case StrafeLeft:
		return v.Move(raycast.StrafeLeft, g)
	case StrafeRight:
		return v.Move(raycast.StrafeRight, g)
	}
	return false
}
