// Package view lays out a viewer's rays as screen columns. It is shared by
// the GL renderer and the terminal client and has no drawing dependencies.
package view

import (
	"fmt"
	"image/color"
	"math"

	"github.com/Faultbox/gridcast/internal/palette"
	"github.com/Faultbox/gridcast/pkg/raycast"
)

// Column is the screen slice of one ray. Rows [Top, Bottom) hold the wall,
// rows above are ceiling and rows below are floor.
type Column struct {
	X, Width    int
	Top, Bottom int

	Hit   bool
	Kind  raycast.CrossingKind
	Tile  int
	Color color.RGBA
}

// WallHeight returns the number of wall rows.
func (c Column) WallHeight() int {
	return c.Bottom - c.Top
}

// Frame is the column layout of one view.
type Frame struct {
	Width, Height int
	Columns       []Column
}

// Horizon returns the first floor row.
func (f *Frame) Horizon() int {
	return f.Height / 2
}

// Layout sizes the frame to width x height and places one column per ray.
// Column boundaries are spread so that every pixel belongs to exactly one
// column; when there are more rays than pixels some columns are empty.
func (f *Frame) Layout(rays []raycast.Ray, width, height int) {
	f.Width, f.Height = width, height
	n := len(rays)
	if cap(f.Columns) < n {
		f.Columns = make([]Column, n)
	}
	f.Columns = f.Columns[:n]

	for i := range rays {
		r := &rays[i]
		x0 := i * width / n
		x1 := (i + 1) * width / n

		c := Column{X: x0, Width: x1 - x0}
		if index, ok := r.Tile(); ok {
			wall := wallRows(r.ProjectedHeight, height)
			c.Hit = true
			c.Kind = r.Hit.Kind
			c.Tile = index
			c.Top = (height - wall) / 2
			c.Bottom = c.Top + wall
		} else {
			c.Top = height / 2
			c.Bottom = height / 2
		}
		f.Columns[i] = c
	}
}

// wallRows clamps a projected height to the screen.
func wallRows(projected float64, height int) int {
	if math.IsNaN(projected) || projected <= 0 {
		return 0
	}
	if projected >= float64(height) {
		return height
	}
	return int(math.Round(projected))
}

// Compose lays out v's rays and colors every hit column from p.
func (f *Frame) Compose(v *raycast.Viewer, g *raycast.Grid, p palette.Palette, width, height int) error {
	f.Layout(v.Rays, width, height)
	for i := range f.Columns {
		c := &f.Columns[i]
		if !c.Hit {
			continue
		}
		col, err := p.Wall(g, &v.Rays[i])
		if err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
		c.Color = col
	}
	return nil
}
