// Package scene ties a board, its grid and a viewer together and drives
// them from control commands. Front ends only translate input and draw
// the resulting frame.
package scene

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/gridcast/internal/config"
	"github.com/Faultbox/gridcast/internal/control"
	"github.com/Faultbox/gridcast/internal/logger"
	"github.com/Faultbox/gridcast/internal/palette"
	"github.com/Faultbox/gridcast/internal/view"
	"github.com/Faultbox/gridcast/pkg/formats"
	"github.com/Faultbox/gridcast/pkg/raycast"
)

// ErrBlockedSpawn is returned when a board's spawn is a wall or off the grid.
var ErrBlockedSpawn = errors.New("spawn point is blocked")

// Scene is a viewer standing on a board.
type Scene struct {
	Board   *formats.Board
	Grid    *raycast.Grid
	Viewer  *raycast.Viewer
	Palette palette.Palette

	log   *zap.Logger
	dirty bool
}

// New builds a scene from a board. Every wall code on the board must have a
// color in pal.
func New(b *formats.Board, cfg config.ViewerConfig, pal palette.Palette) (*Scene, error) {
	g, err := b.Grid()
	if err != nil {
		return nil, fmt.Errorf("building grid for %s: %w", b.Name, err)
	}
	if err := pal.Validate(b.Tiles); err != nil {
		return nil, fmt.Errorf("board %s: %w", b.Name, err)
	}

	spawn := b.SpawnPoint()
	if wall, err := g.IsWall(spawn); err != nil || wall {
		return nil, fmt.Errorf("%w: %s on board %s", ErrBlockedSpawn, spawn, b.Name)
	}

	v := raycast.NewViewer(raycast.ViewerConfig{
		Position:   spawn,
		Facing:     float64(b.Spawn.Angle),
		FOV:        cfg.FOV(),
		Rays:       cfg.Rays,
		MoveStep:   cfg.MoveStep,
		AngleStep:  cfg.TurnStep(),
		Projection: cfg.Projection,
	})

	s := &Scene{
		Board:   b,
		Grid:    g,
		Viewer:  v,
		Palette: pal,
		log:     logger.Named("scene"),
		dirty:   true,
	}

	s.log.Info("scene ready",
		zap.String("board", b.Name),
		zap.Int("width", g.Width()),
		zap.Int("height", g.Height()),
		zap.Stringer("spawn", spawn),
		zap.Int("rays", cfg.Rays),
	)
	return s, nil
}

// Handle applies one command. It reports whether the command asks to quit.
func (s *Scene) Handle(cmd control.Command) bool {
	if cmd == control.Quit {
		return true
	}
	if control.Apply(cmd, s.Viewer, s.Grid) {
		s.dirty = true
		s.log.Debug("viewer changed",
			zap.Stringer("command", cmd),
			zap.Stringer("position", s.Viewer.Position),
			zap.Float64("facing", s.Viewer.Facing),
		)
	} else if cmd != control.None {
		s.log.Debug("command rejected", zap.Stringer("command", cmd))
	}
	return false
}

// Update recasts the fan if the viewer changed since the last call. It
// reports whether a recast happened.
func (s *Scene) Update() bool {
	if !s.dirty {
		return false
	}
	s.Viewer.Update(s.Grid)
	s.dirty = false

	sum := s.Viewer.Summary()
	s.log.Debug("fan cast",
		zap.Int("horizontal", sum.Horizontal),
		zap.Int("vertical", sum.Vertical),
		zap.Int("open", sum.Open),
	)
	return true
}

// Compose recasts if needed and lays the fan out on a width x height frame.
func (s *Scene) Compose(f *view.Frame, width, height int) error {
	s.Update()
	return f.Compose(s.Viewer, s.Grid, s.Palette, width, height)
}
