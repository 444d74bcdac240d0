package raycast

import (
	"fmt"
	gomath "math"
)

// DefaultFOV is a quarter turn.
const DefaultFOV = gomath.Pi / 2

// Direction is a movement command relative to the facing angle.
type Direction uint8

const (
	Forward Direction = iota
	Backward
	StrafeLeft
	StrafeRight
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case StrafeLeft:
		return "strafe-left"
	case StrafeRight:
		return "strafe-right"
	default:
		return fmt.Sprintf("Direction(%d)", d)
	}
}

// offset returns the heading of d relative to facing.
func (d Direction) offset() float64 {
	switch d {
	case Backward:
		return gomath.Pi
	case StrafeLeft:
		return -gomath.Pi / 2
	case StrafeRight:
		return gomath.Pi / 2
	default:
		return 0
	}
}

// ViewerConfig holds the tunables of a Viewer.
type ViewerConfig struct {
	Position   GridPoint
	Facing     float64 // radians
	FOV        float64 // radians, total spread of the fan
	Rays       int     // horizontal resolution
	MoveStep   float64 // tile units per move
	AngleStep  float64 // radians per turn tick
	Projection float64 // K in height = K / distance
}

// Viewer owns a fan of rays cast from a position on the grid.
type Viewer struct {
	Position   GridPoint
	Facing     float64
	FOV        float64
	MoveStep   float64
	AngleStep  float64
	Projection float64
	Rays       []Ray
}

// NewViewer creates a viewer. Rays below one is raised to one, and zero
// FOV and Projection fall back to their defaults.
func NewViewer(cfg ViewerConfig) *Viewer {
	if cfg.Rays < 1 {
		cfg.Rays = 1
	}
	if cfg.FOV == 0 {
		cfg.FOV = DefaultFOV
	}
	if cfg.Projection == 0 {
		cfg.Projection = DefaultProjection
	}
	return &Viewer{
		Position:   cfg.Position,
		Facing:     normalizeAngle(cfg.Facing),
		FOV:        cfg.FOV,
		MoveStep:   cfg.MoveStep,
		AngleStep:  cfg.AngleStep,
		Projection: cfg.Projection,
		Rays:       make([]Ray, cfg.Rays),
	}
}

// RayAngle returns the angle of ray i in the fan. A single-ray fan points
// along the facing angle.
func (v *Viewer) RayAngle(i int) float64 {
	n := len(v.Rays)
	if n <= 1 {
		return v.Facing
	}
	return v.Facing - v.FOV/2 + float64(i)*(v.FOV/float64(n-1))
}

// Update recomputes every ray from the current position and facing angle.
func (v *Viewer) Update(g *Grid) {
	for i := range v.Rays {
		v.Rays[i].Update(g, v.Position, v.RayAngle(i), v.Projection)
	}
}

// Move steps MoveStep tiles in direction d. The move is committed only if
// the destination lies inside g and is not a wall; otherwise the position is
// left unchanged. It reports whether the viewer moved.
func (v *Viewer) Move(d Direction, g *Grid) bool {
	sin, cos := gomath.Sincos(v.Facing + d.offset())
	candidate := v.Position.Add(cos*v.MoveStep, sin*v.MoveStep)

	wall, err := g.IsWall(candidate)
	if err != nil || wall {
		return false
	}
	v.Position = candidate
	return true
}

// Turn adds delta radians to the facing angle.
func (v *Viewer) Turn(delta float64) {
	v.Facing = normalizeAngle(v.Facing + delta)
}

// TurnLeft turns by -AngleStep.
func (v *Viewer) TurnLeft() { v.Turn(-v.AngleStep) }

// TurnRight turns by +AngleStep.
func (v *Viewer) TurnRight() { v.Turn(v.AngleStep) }

// Summary counts the rays resolved by each crossing family.
type Summary struct {
	Horizontal int
	Vertical   int
	Open       int
}

// Summary tallies the last Update.
func (v *Viewer) Summary() Summary {
	var s Summary
	for i := range v.Rays {
		hit := v.Rays[i].Hit
		switch {
		case hit == nil:
			s.Open++
		case hit.Kind == HorizontalCrossing:
			s.Horizontal++
		default:
			s.Vertical++
		}
	}
	return s
}

// normalizeAngle wraps a into [0, 2π).
func normalizeAngle(a float64) float64 {
	const tau = 2 * gomath.Pi
	a = gomath.Mod(a, tau)
	if a < 0 {
		a += tau
	}
	// a tiny negative a rounds up to tau
	if a >= tau {
		a = 0
	}
	return a
}
