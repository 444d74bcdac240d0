package formats

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidLayout is returned for malformed text layouts.
var ErrInvalidLayout = errors.New("invalid board layout")

// DefaultCellSize is used when a layout omits cell_size.
const DefaultCellSize = 50

// Layout is the YAML text form of a board. Each row is a string of tile
// codes, one character per tile: '0'-'9', with '.' and ' ' as open floor.
type Layout struct {
	Name     string   `yaml:"name"`
	CellSize float32  `yaml:"cell_size"`
	Spawn    Spawn    `yaml:"spawn"`
	Rows     []string `yaml:"rows"`
}

// ParseLayout parses a YAML layout into a board.
func ParseLayout(data []byte) (*Board, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	return l.Board()
}

// Board converts the layout into a board.
func (l *Layout) Board() (*Board, error) {
	if len(l.Rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidLayout)
	}

	width := len(l.Rows[0])
	tiles := make([]uint32, 0, width*len(l.Rows))
	for y, row := range l.Rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d tiles, expected %d", ErrInvalidLayout, y, len(row), width)
		}
		for x := 0; x < len(row); x++ {
			code, err := tileCode(row[x])
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %d: %v", ErrInvalidLayout, y, x, err)
			}
			tiles = append(tiles, code)
		}
	}

	cellSize := l.CellSize
	if cellSize == 0 {
		cellSize = DefaultCellSize
	}

	b := &Board{
		Name:     l.Name,
		Version:  CurrentBoardVersion,
		Width:    uint32(width),
		Height:   uint32(len(l.Rows)),
		CellSize: cellSize,
		Spawn:    l.Spawn,
		Tiles:    tiles,
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func tileCode(c byte) (uint32, error) {
	switch {
	case c == '.' || c == ' ':
		return 0, nil
	case c >= '0' && c <= '9':
		return uint32(c - '0'), nil
	default:
		return 0, fmt.Errorf("unknown tile %q", c)
	}
}

// Layout converts the board into its text form. Boards using codes above 9
// have no text form.
func (b *Board) Layout() (*Layout, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	rows := make([]string, b.Height)
	var sb strings.Builder
	for y := 0; y < int(b.Height); y++ {
		sb.Reset()
		for x := 0; x < int(b.Width); x++ {
			code := b.Tiles[y*int(b.Width)+x]
			if code > 9 {
				return nil, fmt.Errorf("%w: code %d at (%d, %d) has no text form", ErrInvalidLayout, code, x, y)
			}
			sb.WriteByte(byte('0' + code))
		}
		rows[y] = sb.String()
	}

	return &Layout{
		Name:     b.Name,
		CellSize: b.CellSize,
		Spawn:    b.Spawn,
		Rows:     rows,
	}, nil
}

// MarshalLayout returns the YAML text form of the board.
func (b *Board) MarshalLayout() ([]byte, error) {
	l, err := b.Layout()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(l)
}

// IsLayoutPath reports whether path names a YAML layout.
func IsLayoutPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Parse parses board data, choosing the format from the file name.
func Parse(name string, data []byte) (*Board, error) {
	var (
		b   *Board
		err error
	)
	if IsLayoutPath(name) {
		b, err = ParseLayout(data)
	} else {
		b, err = ParseBoard(data)
	}
	if err != nil {
		return nil, err
	}
	if b.Name == "" {
		b.Name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	return b, nil
}

// LoadFile reads and parses a board file of either format.
func LoadFile(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading board file: %w", err)
	}
	return Parse(path, data)
}
