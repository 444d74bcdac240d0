package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/gridcast/pkg/raycast"
)

// Board format errors.
var (
	ErrInvalidBoardMagic       = errors.New("invalid board magic: expected 'RCBD'")
	ErrUnsupportedBoardVersion = errors.New("unsupported board version")
	ErrTruncatedBoardData      = errors.New("truncated board data")
	ErrInvalidBoardDimensions  = errors.New("invalid board dimensions")
)

const (
	boardMagic      = "RCBD"
	boardHeaderSize = 30
	maxBoardSide    = 4096
)

// BoardVersion represents the board file version.
type BoardVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v BoardVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// CurrentBoardVersion is written by Encode.
var CurrentBoardVersion = BoardVersion{Major: 1, Minor: 0}

// Spawn is the starting pose of a viewer, in tile units and radians.
type Spawn struct {
	X     float32 `yaml:"x"`
	Y     float32 `yaml:"y"`
	Angle float32 `yaml:"angle"`
}

// Board is a parsed board: tile codes plus the metadata needed to build a
// grid and place a viewer.
type Board struct {
	Name     string
	Version  BoardVersion
	Width    uint32
	Height   uint32
	CellSize float32
	Spawn    Spawn
	Tiles    []uint32 // row-major, 0 = open
}

// GetTile returns the code at (x, y).
// Returns false if coordinates are out of bounds.
func (b *Board) GetTile(x, y int) (uint32, bool) {
	if x < 0 || y < 0 || x >= int(b.Width) || y >= int(b.Height) {
		return 0, false
	}
	return b.Tiles[y*int(b.Width)+x], true
}

// CountByCode returns the number of tiles holding each code.
func (b *Board) CountByCode() map[uint32]int {
	counts := make(map[uint32]int)
	for _, code := range b.Tiles {
		counts[code]++
	}
	return counts
}

// Grid builds the raycast grid for this board.
func (b *Board) Grid() (*raycast.Grid, error) {
	return raycast.NewGrid(b.Tiles, int(b.Width), int(b.Height), float64(b.CellSize))
}

// SpawnPoint returns the spawn position in grid units.
func (b *Board) SpawnPoint() raycast.GridPoint {
	return raycast.GridPoint{X: float64(b.Spawn.X), Y: float64(b.Spawn.Y)}
}

// validate checks dimensions and tile count.
func (b *Board) validate() error {
	if b.Width == 0 || b.Height == 0 || b.Width > maxBoardSide || b.Height > maxBoardSide {
		return fmt.Errorf("%w: %dx%d", ErrInvalidBoardDimensions, b.Width, b.Height)
	}
	if len(b.Tiles) != int(b.Width*b.Height) {
		return fmt.Errorf("%w: %d tiles for %dx%d", ErrInvalidBoardDimensions, len(b.Tiles), b.Width, b.Height)
	}
	if !(b.CellSize > 0) {
		return fmt.Errorf("%w: cell size %v", ErrInvalidBoardDimensions, b.CellSize)
	}
	return nil
}

// ParseBoard parses a binary board from raw bytes.
//
// Layout (little endian):
//
//	magic "RCBD", minor u8, major u8,
//	width u32, height u32, cell size f32,
//	spawn x f32, spawn y f32, spawn angle f32,
//	width*height u32 tile codes.
func ParseBoard(data []byte) (*Board, error) {
	if len(data) < boardHeaderSize {
		return nil, ErrTruncatedBoardData
	}

	if string(data[0:4]) != boardMagic {
		return nil, ErrInvalidBoardMagic
	}

	// Version is stored as [minor, major]
	version := BoardVersion{
		Major: data[5],
		Minor: data[4],
	}
	if version.Major != CurrentBoardVersion.Major {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBoardVersion, version)
	}

	r := bytes.NewReader(data[6:])

	var header struct {
		Width, Height uint32
		CellSize      float32
		Spawn         Spawn
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: reading header", ErrTruncatedBoardData)
	}

	if header.Width == 0 || header.Height == 0 || header.Width > maxBoardSide || header.Height > maxBoardSide {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidBoardDimensions, header.Width, header.Height)
	}

	b := &Board{
		Version:  version,
		Width:    header.Width,
		Height:   header.Height,
		CellSize: header.CellSize,
		Spawn:    header.Spawn,
		Tiles:    make([]uint32, header.Width*header.Height),
	}

	if err := binary.Read(r, binary.LittleEndian, b.Tiles); err != nil {
		return nil, fmt.Errorf("%w: reading %d tiles", ErrTruncatedBoardData, len(b.Tiles))
	}

	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// ParseBoardFile parses a binary board file from disk.
func ParseBoardFile(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading board file: %w", err)
	}
	return ParseBoard(data)
}

// Encode writes the board in binary form.
func (b *Board) Encode(w io.Writer) error {
	if err := b.validate(); err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	buf.WriteString(boardMagic)
	buf.WriteByte(CurrentBoardVersion.Minor)
	buf.WriteByte(CurrentBoardVersion.Major)

	fields := []any{b.Width, b.Height, b.CellSize, b.Spawn, b.Tiles}
	for _, f := range fields {
		if err := binary.Write(buf, binary.LittleEndian, f); err != nil {
			return fmt.Errorf("encoding board: %w", err)
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// Bytes returns the binary encoding of the board.
func (b *Board) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
