package view

import (
	"image/color"

	"github.com/Faultbox/gridcast/internal/palette"
)

// FloatsPerVertex is the vertex stride: x, y in clip space then r, g, b, a.
const FloatsPerVertex = 6

// AppendVertices appends the frame as triangles: ceiling and floor quads
// followed by one quad per wall column.
func (f *Frame) AppendVertices(dst []float32) []float32 {
	horizon := f.Horizon()
	dst = f.appendQuad(dst, 0, 0, f.Width, horizon, palette.Ceiling)
	dst = f.appendQuad(dst, 0, horizon, f.Width, f.Height, palette.Floor)
	for _, c := range f.Columns {
		if !c.Hit || c.Width == 0 || c.Bottom == c.Top {
			continue
		}
		dst = f.appendQuad(dst, c.X, c.Top, c.X+c.Width, c.Bottom, c.Color)
	}
	return dst
}

// appendQuad appends the pixel rectangle [x0, x1) x [y0, y1) as two
// triangles. Pixel rows grow downwards, clip space y grows upwards.
func (f *Frame) appendQuad(dst []float32, x0, y0, x1, y1 int, c color.RGBA) []float32 {
	left, right := f.clipX(x0), f.clipX(x1)
	top, bottom := f.clipY(y0), f.clipY(y1)
	rgba := palette.Float(c)

	corners := [6][2]float32{
		{left, top}, {left, bottom}, {right, bottom},
		{left, top}, {right, bottom}, {right, top},
	}
	for _, p := range corners {
		dst = append(dst, p[0], p[1], rgba[0], rgba[1], rgba[2], rgba[3])
	}
	return dst
}

func (f *Frame) clipX(x int) float32 {
	return 2*float32(x)/float32(f.Width) - 1
}

func (f *Frame) clipY(y int) float32 {
	return 1 - 2*float32(y)/float32(f.Height)
}
