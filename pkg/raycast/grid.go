package raycast

import (
	"errors"
	"fmt"
	gomath "math"
)

// Grid errors.
var (
	ErrOutOfBounds = errors.New("out of grid bounds")
	ErrInvalidGrid = errors.New("invalid grid")
)

// Grid is a row-major lattice of tile codes. Code 0 is open floor, any other
// code is a wall material. A Grid is read-only once constructed and may be
// shared by any number of viewers.
type Grid struct {
	tiles    []uint32
	width    int
	height   int
	cellSize float64
}

// NewGrid creates a grid. The tile slice is copied.
func NewGrid(tiles []uint32, width, height int, cellSize float64) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidGrid, width, height)
	}
	if len(tiles) != width*height {
		return nil, fmt.Errorf("%w: %d tiles for %dx%d", ErrInvalidGrid, len(tiles), width, height)
	}
	if !(cellSize > 0) || gomath.IsInf(cellSize, 0) {
		return nil, fmt.Errorf("%w: cell size %v", ErrInvalidGrid, cellSize)
	}

	g := &Grid{
		tiles:    make([]uint32, len(tiles)),
		width:    width,
		height:   height,
		cellSize: cellSize,
	}
	copy(g.tiles, tiles)
	return g, nil
}

// Width returns the number of tile columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of tile rows.
func (g *Grid) Height() int { return g.height }

// CellSize returns the render units per tile.
func (g *Grid) CellSize() float64 { return g.cellSize }

// Len returns the number of tiles.
func (g *Grid) Len() int { return len(g.tiles) }

// Tiles returns a copy of the tile codes.
func (g *Grid) Tiles() []uint32 {
	out := make([]uint32, len(g.tiles))
	copy(out, g.tiles)
	return out
}

// ToGridPoint converts a render-space point into tile units.
func (g *Grid) ToGridPoint(p Point) GridPoint {
	return GridPoint{p.X / g.cellSize, p.Y / g.cellSize}
}

// Contains reports whether p lies within [0,width) x [0,height).
func (g *Grid) Contains(p GridPoint) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < float64(g.width) && p.Y < float64(g.height)
}

// TileIndex returns the row-major index of the tile containing p.
func (g *Grid) TileIndex(p GridPoint) (int, error) {
	if !g.Contains(p) {
		return 0, fmt.Errorf("%w: point %s", ErrOutOfBounds, p)
	}
	return g.TileIndexAt(int(p.X), int(p.Y))
}

// TileIndexAt flattens a tile column and row into an index.
func (g *Grid) TileIndexAt(x, y int) (int, error) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return 0, fmt.Errorf("%w: tile (%d, %d)", ErrOutOfBounds, x, y)
	}
	return y*g.width + x, nil
}

// TileCode returns the code stored at index.
func (g *Grid) TileCode(index int) (uint32, error) {
	if index < 0 || index >= len(g.tiles) {
		return 0, fmt.Errorf("%w: index %d", ErrOutOfBounds, index)
	}
	return g.tiles[index], nil
}

// IsWall reports whether the tile containing p is occupied.
func (g *Grid) IsWall(p GridPoint) (bool, error) {
	index, err := g.TileIndex(p)
	if err != nil {
		return false, err
	}
	return g.tiles[index] != 0, nil
}

// PointOfTile returns the top-left corner of the tile at index.
func (g *Grid) PointOfTile(index int) (GridPoint, error) {
	if index < 0 || index >= len(g.tiles) {
		return GridPoint{}, fmt.Errorf("%w: index %d", ErrOutOfBounds, index)
	}
	row, col := index/g.width, index%g.width
	return GridPoint{X: float64(col), Y: float64(row)}, nil
}

// wallAt looks up a tile by column and row without allocating an error.
func (g *Grid) wallAt(col, row int) (index int, wall bool, ok bool) {
	if col < 0 || row < 0 || col >= g.width || row >= g.height {
		return 0, false, false
	}
	index = row*g.width + col
	return index, g.tiles[index] != 0, true
}
