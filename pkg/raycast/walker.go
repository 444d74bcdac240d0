package raycast

import gomath "math"

const (
	// lineEpsilon is the distance in tile units within which a coordinate
	// is treated as lying exactly on a grid line.
	lineEpsilon = 1e-9

	// axisEpsilon bounds |sin| or |cos| below which a ray is considered
	// parallel to a line family. math.Sin(math.Pi) is not exactly zero.
	axisEpsilon = 1e-12
)

// WalkHorizontal marches a ray from origin across successive horizontal
// (constant-y) grid lines, appending one Intercept per crossing to dst.
//
// The walk stops at the first crossing that enters a wall tile, when a
// crossing falls outside the grid, or after Height crossings. If the last
// returned Intercept has Wall set, it is the first wall met by this family.
// A ray with sin(angle) == 0 never crosses a horizontal line and yields no
// intercepts.
//
// The first line crossed moving +y is the one below the origin's row. Moving
// -y it is the origin's own top edge, which coincides with the origin when the
// origin lies on a line.
func WalkHorizontal(g *Grid, origin GridPoint, angle float64, dst []Intercept) []Intercept {
	dst = dst[:0]

	sin, cos := gomath.Sincos(angle)
	if gomath.Abs(sin) < axisEpsilon {
		return dst
	}

	stepY := 1.0
	lineY := gomath.Floor(origin.Y) + 1
	if sin < 0 {
		stepY = -1
		lineY = gomath.Floor(origin.Y)
	}

	// x advance per unit of y, tan(π/2 - angle)
	slope := cos / sin
	x := origin.X + slope*(lineY-origin.Y)
	dx := slope * stepY

	for i := 0; i < g.height; i++ {
		row, ok := enteredLane(lineY, stepY, g.height)
		if !ok {
			return dst
		}
		col, ok := enteredCell(x, cos, g.width)
		if !ok {
			return dst
		}
		index, wall, _ := g.wallAt(col, row)

		crossing := Intercept{
			Kind:  HorizontalCrossing,
			Point: Point{x * g.cellSize, lineY * g.cellSize},
		}
		dst = append(dst, crossing.withTile(index, wall))
		if wall {
			return dst
		}

		x += dx
		lineY += stepY
	}
	return dst
}

// WalkVertical is WalkHorizontal with the roles of x and y swapped: it
// marches across vertical (constant-x) grid lines, stepping in the direction
// of cos(angle) and drifting tan(angle) tiles in y per crossing. It is bounded
// by Width crossings.
func WalkVertical(g *Grid, origin GridPoint, angle float64, dst []Intercept) []Intercept {
	dst = dst[:0]

	sin, cos := gomath.Sincos(angle)
	if gomath.Abs(cos) < axisEpsilon {
		return dst
	}

	stepX := 1.0
	lineX := gomath.Floor(origin.X) + 1
	if cos < 0 {
		stepX = -1
		lineX = gomath.Floor(origin.X)
	}

	slope := sin / cos
	y := origin.Y + slope*(lineX-origin.X)
	dy := slope * stepX

	for i := 0; i < g.width; i++ {
		col, ok := enteredLane(lineX, stepX, g.width)
		if !ok {
			return dst
		}
		row, ok := enteredCell(y, sin, g.height)
		if !ok {
			return dst
		}
		index, wall, _ := g.wallAt(col, row)

		crossing := Intercept{
			Kind:  VerticalCrossing,
			Point: Point{lineX * g.cellSize, y * g.cellSize},
		}
		dst = append(dst, crossing.withTile(index, wall))
		if wall {
			return dst
		}

		y += dy
		lineX += stepX
	}
	return dst
}

// enteredLane returns the row (or column) a ray enters when crossing the grid
// line at coordinate line while moving in direction step. Moving forward the
// lane starts at the line; moving backward it is the lane before it.
func enteredLane(line, step float64, n int) (int, bool) {
	lane := line
	if step < 0 {
		lane--
	}
	if !(lane >= 0 && lane < float64(n)) {
		return 0, false
	}
	return int(lane), true
}

// enteredCell returns the cell along a grid line that contains coordinate v.
// A coordinate on a cell boundary resolves to the cell on the side the ray is
// travelling toward, given by the sign of dir. A ray running along the
// boundary resolves to the cell after it.
func enteredCell(v, dir float64, n int) (int, bool) {
	if !(v >= 0 && v <= float64(n)) {
		return 0, false
	}

	var cell int
	if snapped := gomath.Round(v); gomath.Abs(v-snapped) < lineEpsilon {
		cell = int(snapped)
		if dir < -axisEpsilon {
			cell--
		}
	} else {
		cell = int(gomath.Floor(v))
	}

	if cell < 0 || cell >= n {
		return 0, false
	}
	return cell, true
}

// FirstWall returns the wall intercept ending a walk, or nil if the walk
// left the grid or exhausted its bound without meeting a wall.
func FirstWall(crossings []Intercept) *Intercept {
	if len(crossings) == 0 {
		return nil
	}
	last := crossings[len(crossings)-1]
	if !last.Wall {
		return nil
	}
	return &last
}
