package raycast

import (
	"fmt"
	gomath "math"
)

// DefaultProjection is the projection constant K in height = K / distance.
const DefaultProjection = 10000.0

// MaxProjectedHeight is reported for a wall hit at the ray origin.
const MaxProjectedHeight = gomath.MaxFloat64

// ProjectHeight converts a hit distance into a render height.
// Non-positive distances yield MaxProjectedHeight.
func ProjectHeight(k, distance float64) float64 {
	if !(distance > 0) {
		return MaxProjectedHeight
	}
	return k / distance
}

// Nearest picks the resolved hit from the first walls of the two crossing
// families. Either may be nil. When both exist the one closer to origin wins,
// and an exact tie goes to the horizontal crossing.
func Nearest(origin Point, horizontal, vertical *Intercept) *Intercept {
	switch {
	case horizontal == nil:
		return vertical
	case vertical == nil:
		return horizontal
	}

	if origin.Distance(horizontal.Point) <= origin.Distance(vertical.Point) {
		return horizontal
	}
	return vertical
}

// Ray is one ray of a viewer's fan. All fields are recomputed by Update.
type Ray struct {
	Angle               float64
	Origin              GridPoint
	HorizontalCrossings []Intercept
	VerticalCrossings   []Intercept

	// Hit is nil when neither family met a wall within its bound.
	Hit             *Intercept
	Distance        float64 // render units, 0 when Hit is nil
	ProjectedHeight float64 // 0 when Hit is nil
}

// Update resolves the ray from origin at angle against g using projection
// constant k. Crossing slices are reused between updates.
func (r *Ray) Update(g *Grid, origin GridPoint, angle, k float64) {
	r.Angle = angle
	r.Origin = origin
	r.HorizontalCrossings = WalkHorizontal(g, origin, angle, r.HorizontalCrossings)
	r.VerticalCrossings = WalkVertical(g, origin, angle, r.VerticalCrossings)

	start := origin.Scale(g.CellSize())
	r.Hit = Nearest(start, FirstWall(r.HorizontalCrossings), FirstWall(r.VerticalCrossings))
	if r.Hit == nil {
		r.Distance = 0
		r.ProjectedHeight = 0
		return
	}

	r.Distance = start.Distance(r.Hit.Point)
	r.ProjectedHeight = ProjectHeight(k, r.Distance)
}

// Tile returns the tile index of the resolved hit.
func (r *Ray) Tile() (int, bool) {
	if r.Hit == nil {
		return 0, false
	}
	return r.Hit.Tile()
}

// String summarizes the ray for logging.
func (r *Ray) String() string {
	return fmt.Sprintf("Ray{angle: %.4f, dist: %.2f, height: %.2f, hit: %v, intercepts: %d}",
		r.Angle, r.Distance, r.ProjectedHeight, r.Hit != nil,
		len(r.HorizontalCrossings)+len(r.VerticalCrossings))
}

// Cast resolves a single ray and returns it.
func Cast(g *Grid, origin GridPoint, angle, k float64) Ray {
	var r Ray
	r.Update(g, origin, angle, k)
	return r
}
