// Package palette maps board tile codes to wall colors.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/Faultbox/gridcast/pkg/raycast"
)

// ErrInvalidTileCode is returned for a wall code with no color.
var ErrInvalidTileCode = errors.New("invalid tile code")

// verticalShade darkens faces hit by the vertical family.
const verticalShade = 0.7

// Ceiling and Floor fill the upper and lower half of the view.
var (
	Ceiling = color.RGBA{R: 56, G: 56, B: 56, A: 255}
	Floor   = color.RGBA{R: 113, G: 113, B: 113, A: 255}
)

// Palette maps non-zero tile codes to colors. Code 0 is open floor.
type Palette map[uint32]color.RGBA

// Default returns the four-color wall palette.
func Default() Palette {
	return Palette{
		1: {R: 255, G: 0, B: 0, A: 230},   // red
		2: {R: 0, G: 0, B: 255, A: 230},   // blue
		3: {R: 0, G: 255, B: 0, A: 230},   // green
		4: {R: 255, G: 165, B: 0, A: 230}, // orange
	}
}

// Color returns the color of a wall code.
func (p Palette) Color(code uint32) (color.RGBA, error) {
	c, ok := p[code]
	if !ok {
		return color.RGBA{}, fmt.Errorf("%w: %d", ErrInvalidTileCode, code)
	}
	return c, nil
}

// Validate checks that every wall code in tiles has a color.
func (p Palette) Validate(tiles []uint32) error {
	var missing []uint32
	seen := make(map[uint32]bool)
	for _, code := range tiles {
		if code == 0 || seen[code] {
			continue
		}
		seen[code] = true
		if _, ok := p[code]; !ok {
			missing = append(missing, code)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return fmt.Errorf("%w: no color for %v", ErrInvalidTileCode, missing)
}

// Codes returns the mapped codes in ascending order.
func (p Palette) Codes() []uint32 {
	codes := make([]uint32, 0, len(p))
	for code := range p {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Shade returns c as seen on a face of the given crossing kind.
func Shade(c color.RGBA, kind raycast.CrossingKind) color.RGBA {
	if kind != raycast.VerticalCrossing {
		return c
	}
	return color.RGBA{
		R: uint8(math.Round(float64(c.R) * verticalShade)),
		G: uint8(math.Round(float64(c.G) * verticalShade)),
		B: uint8(math.Round(float64(c.B) * verticalShade)),
		A: c.A,
	}
}

// Wall returns the shaded color for a ray's hit on g.
func (p Palette) Wall(g *raycast.Grid, r *raycast.Ray) (color.RGBA, error) {
	index, ok := r.Tile()
	if !ok {
		return color.RGBA{}, fmt.Errorf("%w: ray has no wall", ErrInvalidTileCode)
	}
	code, err := g.TileCode(index)
	if err != nil {
		return color.RGBA{}, err
	}
	c, err := p.Color(code)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("tile %d: %w", index, err)
	}
	return Shade(c, r.Hit.Kind), nil
}

// Float returns c as normalized RGBA components for GL.
func Float(c color.RGBA) [4]float32 {
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}
