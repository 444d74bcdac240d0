package tui

import (
	"context"
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/gridcast/internal/config"
	"github.com/Faultbox/gridcast/internal/palette"
	"github.com/Faultbox/gridcast/internal/scene"
	"github.com/Faultbox/gridcast/pkg/formats"
)

const hall = `
name: hall
spawn: {x: 1.5, y: 2.5, angle: 0}
rows:
  - "111111111111"
  - "2..........4"
  - "2..........4"
  - "2..........4"
  - "333333333333"
`

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("failed to init screen: %v", err)
	}
	screen.SetSize(40, 21)
	t.Cleanup(screen.Fini)

	b, err := formats.ParseLayout([]byte(hall))
	if err != nil {
		t.Fatalf("ParseLayout failed: %v", err)
	}

	cfg := config.Default().Viewer
	cfg.Rays = 40
	cfg.MoveStep = 1
	cfg.Projection = 2000

	s, err := scene.New(b, cfg, palette.Default())
	if err != nil {
		t.Fatalf("scene.New failed: %v", err)
	}
	return New(screen, s, 10*time.Millisecond), screen
}

func backgroundAt(t *testing.T, screen tcell.SimulationScreen, x, y int) tcell.Color {
	t.Helper()
	_, _, style, _ := screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func TestDraw(t *testing.T) {
	app, screen := newTestApp(t)

	if err := app.Draw(); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	// The center column meets the far east wall: 4 rows around the horizon.
	wall := rgb(palette.Shade(palette.Default()[4], app.frame.Columns[20].Kind))
	for _, y := range []int{8, 11} {
		if bg := backgroundAt(t, screen, 20, y); bg != wall {
			t.Errorf("cell (20, %d): expected wall color %v, got %v", y, wall, bg)
		}
	}
	if bg := backgroundAt(t, screen, 20, 0); bg != rgb(palette.Ceiling) {
		t.Errorf("top cell: expected ceiling, got %v", bg)
	}
	if bg := backgroundAt(t, screen, 20, 7); bg != rgb(palette.Ceiling) {
		t.Errorf("cell above the wall: expected ceiling, got %v", bg)
	}
	if bg := backgroundAt(t, screen, 20, 12); bg != rgb(palette.Floor) {
		t.Errorf("cell below the wall: expected floor, got %v", bg)
	}
	if bg := backgroundAt(t, screen, 20, 19); bg != rgb(palette.Floor) {
		t.Errorf("bottom view cell: expected floor, got %v", bg)
	}

	if r, _, _, _ := screen.GetContent(1, 20); r != 'h' {
		t.Errorf("expected status line to start with the board name, got %q", r)
	}
}

func TestHandleEvent(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name  string
		event *tcell.EventKey
		quit  bool
		wantX float64
	}{
		{"rune forward", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), false, 2.5},
		{"arrow forward", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), false, 3.5},
		{"arrow back", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), false, 2.5},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), false, 2.5},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true, 2.5},
	}

	for _, tt := range tests {
		if got := app.HandleEvent(tt.event); got != tt.quit {
			t.Errorf("%s: quit = %v, want %v", tt.name, got, tt.quit)
		}
		if x := app.scene.Viewer.Position.X; x != tt.wantX {
			t.Errorf("%s: x = %v, want %v", tt.name, x, tt.wantX)
		}
	}
}

func TestCommandForKey(t *testing.T) {
	if got := commandForKey(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)); got.String() != "quit" {
		t.Errorf("Ctrl-C should quit, got %v", got)
	}
	if got := commandForKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone)); got.String() != "turn-left" {
		t.Errorf("left arrow should turn left, got %v", got)
	}
}

func TestRun_QuitKey(t *testing.T) {
	app, screen := newTestApp(t)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on quit key")
	}
}

func TestRun_ContextCancel(t *testing.T) {
	app, _ := newTestApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}
