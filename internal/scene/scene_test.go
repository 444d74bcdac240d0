package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/Faultbox/gridcast/internal/config"
	"github.com/Faultbox/gridcast/internal/control"
	"github.com/Faultbox/gridcast/internal/palette"
	"github.com/Faultbox/gridcast/internal/view"
	"github.com/Faultbox/gridcast/pkg/formats"
)

const room = `
name: room
spawn: {x: 2.5, y: 2.5, angle: 0}
rows:
  - "11111"
  - "2...4"
  - "2...4"
  - "2...4"
  - "33333"
`

func loadBoard(t *testing.T, layout string) *formats.Board {
	t.Helper()
	b, err := formats.ParseLayout([]byte(layout))
	if err != nil {
		t.Fatalf("ParseLayout failed: %v", err)
	}
	return b
}

func viewerConfig(rays int) config.ViewerConfig {
	cfg := config.Default().Viewer
	cfg.Rays = rays
	cfg.MoveStep = 1
	cfg.TurnStepDegrees = 90
	return cfg
}

func TestNew(t *testing.T) {
	s, err := New(loadBoard(t, room), viewerConfig(16), palette.Default())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if len(s.Viewer.Rays) != 16 {
		t.Errorf("expected 16 rays, got %d", len(s.Viewer.Rays))
	}
	if math.Abs(s.Viewer.FOV-math.Pi/2) > 1e-12 {
		t.Errorf("expected FOV π/2, got %v", s.Viewer.FOV)
	}
	if s.Viewer.Position.X != 2.5 || s.Viewer.Position.Y != 2.5 {
		t.Errorf("expected spawn (2.5, 2.5), got %s", s.Viewer.Position)
	}
}

func TestNew_RejectsUnknownCode(t *testing.T) {
	b := loadBoard(t, "spawn: {x: 1.5, y: 1.5}\nrows: [\"777\", \"7.7\", \"777\"]")

	if _, err := New(b, viewerConfig(4), palette.Default()); !errors.Is(err, palette.ErrInvalidTileCode) {
		t.Errorf("expected ErrInvalidTileCode, got %v", err)
	}
}

func TestNew_RejectsBlockedSpawn(t *testing.T) {
	tests := []struct {
		name   string
		layout string
	}{
		{"wall", "spawn: {x: 0.5, y: 0.5}\nrows: [\"111\", \"1.1\", \"111\"]"},
		{"off grid", "spawn: {x: 7, y: 1.5}\nrows: [\"111\", \"1.1\", \"111\"]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(loadBoard(t, tt.layout), viewerConfig(4), palette.Default()); !errors.Is(err, ErrBlockedSpawn) {
				t.Errorf("expected ErrBlockedSpawn, got %v", err)
			}
		})
	}
}

func TestHandle(t *testing.T) {
	s, err := New(loadBoard(t, room), viewerConfig(8), palette.Default())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if !s.Update() {
		t.Error("expected first Update to cast")
	}
	if s.Update() {
		t.Error("expected Update without changes to be skipped")
	}

	if s.Handle(control.Forward) {
		t.Error("forward must not quit")
	}
	if s.Viewer.Position.X != 3.5 {
		t.Errorf("expected x 3.5, got %v", s.Viewer.Position.X)
	}
	if !s.Update() {
		t.Error("expected Update after a move to cast")
	}

	// The east wall is one step away now.
	s.Handle(control.Forward)
	if s.Viewer.Position.X != 3.5 {
		t.Errorf("expected blocked move, got x %v", s.Viewer.Position.X)
	}
	if s.Update() {
		t.Error("blocked move must not recast")
	}

	if !s.Handle(control.Quit) {
		t.Error("expected quit")
	}
}

func TestCompose(t *testing.T) {
	s, err := New(loadBoard(t, room), viewerConfig(5), palette.Default())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var f view.Frame
	if err := s.Compose(&f, 50, 40); err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if len(f.Columns) != 5 {
		t.Fatalf("expected 5 columns, got %d", len(f.Columns))
	}
	for i, c := range f.Columns {
		if !c.Hit {
			t.Errorf("column %d: expected a wall in a closed room", i)
		}
	}

	// Facing east from the middle the center ray meets the orange wall.
	mid := f.Columns[2]
	if want := palette.Shade(s.Palette[4], mid.Kind); mid.Color != want {
		t.Errorf("expected orange center column, got %v", mid.Color)
	}
}
