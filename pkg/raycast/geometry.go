// Package raycast resolves rays cast across a tile grid and projects the
// nearest wall hit into a height usable for a pseudo-3D column renderer.
package raycast

import (
	"fmt"
	gomath "math"
)

// GridPoint is a position in tile units. Coordinates are fractional.
type GridPoint struct {
	X, Y float64
}

// Scale converts the point to render units.
func (p GridPoint) Scale(cellSize float64) Point {
	return Point{p.X * cellSize, p.Y * cellSize}
}

// Add returns p offset by (dx, dy).
func (p GridPoint) Add(dx, dy float64) GridPoint {
	return GridPoint{p.X + dx, p.Y + dy}
}

// String returns the point as "(x, y)".
func (p GridPoint) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", p.X, p.Y)
}

// Point is a position in render units (tile units multiplied by cell size).
type Point struct {
	X, Y float64
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	return gomath.Hypot(p.X-other.X, p.Y-other.Y)
}

// CrossingKind identifies which family of grid lines produced an intercept.
type CrossingKind uint8

const (
	// HorizontalCrossing crosses a horizontal (constant-y) grid line.
	HorizontalCrossing CrossingKind = iota
	// VerticalCrossing crosses a vertical (constant-x) grid line.
	VerticalCrossing
)

// String returns a human-readable crossing kind.
func (k CrossingKind) String() string {
	switch k {
	case HorizontalCrossing:
		return "horizontal"
	case VerticalCrossing:
		return "vertical"
	default:
		return fmt.Sprintf("CrossingKind(%d)", k)
	}
}

// Intercept is a point where a ray crosses a grid line.
type Intercept struct {
	Kind  CrossingKind
	Point Point // render units
	Wall  bool  // the tile entered at this crossing is occupied

	tile    int
	hasTile bool
}

// Tile returns the index of the tile entered at this crossing.
// ok is false when the crossing did not resolve to a tile inside the grid.
func (i Intercept) Tile() (index int, ok bool) {
	return i.tile, i.hasTile
}

func (i Intercept) withTile(index int, wall bool) Intercept {
	i.tile = index
	i.hasTile = true
	i.Wall = wall
	return i
}
