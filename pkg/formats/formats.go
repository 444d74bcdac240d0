// Package formats provides parsers for board files.
package formats

// Note: the binary RCBD board is implemented in board.go
// Note: YAML text layouts are implemented in layout.go
