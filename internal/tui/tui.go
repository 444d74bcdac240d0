// Package tui renders a scene in a terminal with tcell. Each terminal cell
// is one pixel of the view; the bottom row is a status line.
package tui

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/gridcast/internal/control"
	"github.com/Faultbox/gridcast/internal/logger"
	"github.com/Faultbox/gridcast/internal/palette"
	"github.com/Faultbox/gridcast/internal/scene"
	"github.com/Faultbox/gridcast/internal/view"
)

var statusStyle = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)

// App drives a scene from terminal key events.
type App struct {
	screen tcell.Screen
	scene  *scene.Scene
	frame  view.Frame
	tick   time.Duration
	log    *zap.Logger
}

// New creates an app drawing s on an initialized screen.
func New(screen tcell.Screen, s *scene.Scene, tick time.Duration) *App {
	return &App{
		screen: screen,
		scene:  s,
		tick:   tick,
		log:    logger.Named("tui"),
	}
}

// Draw composes the scene at the current screen size and shows it.
func (a *App) Draw() error {
	cols, rows := a.screen.Size()
	viewRows := rows
	if rows > 1 {
		viewRows = rows - 1
	}

	if err := a.scene.Compose(&a.frame, cols, viewRows); err != nil {
		return err
	}

	ceiling := styleOf(palette.Ceiling)
	floor := styleOf(palette.Floor)
	horizon := a.frame.Horizon()
	for _, c := range a.frame.Columns {
		wall := styleOf(c.Color)
		for x := c.X; x < c.X+c.Width; x++ {
			for y := 0; y < viewRows; y++ {
				st := floor
				switch {
				case c.Hit && y >= c.Top && y < c.Bottom:
					st = wall
				case y < horizon:
					st = ceiling
				}
				a.screen.SetContent(x, y, ' ', nil, st)
			}
		}
	}

	if viewRows < rows {
		a.drawStatus(rows-1, cols)
	}

	a.screen.Show()
	return nil
}

func (a *App) drawStatus(row, cols int) {
	v := a.scene.Viewer
	sum := v.Summary()
	text := fmt.Sprintf(" %s  pos %s  facing %.1f°  h/v/open %d/%d/%d  [wasd move, q/e turn, x quit]",
		a.scene.Board.Name, v.Position, v.Facing*180/math.Pi,
		sum.Horizontal, sum.Vertical, sum.Open)

	runes := []rune(text)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		a.screen.SetContent(x, row, r, nil, statusStyle)
	}
}

// HandleEvent applies one terminal event. It reports whether the app should
// quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		cmd := commandForKey(e)
		if cmd == control.None {
			return false
		}
		return a.scene.Handle(cmd)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return false
}

// commandForKey maps arrows, Escape and Ctrl-C, then typed characters.
func commandForKey(e *tcell.EventKey) control.Command {
	switch e.Key() {
	case tcell.KeyUp:
		return control.Forward
	case tcell.KeyDown:
		return control.Backward
	case tcell.KeyLeft:
		return control.TurnLeft
	case tcell.KeyRight:
		return control.TurnRight
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return control.Quit
	case tcell.KeyRune:
		return control.FromRune(e.Rune())
	}
	return control.None
}

// Run polls events until quit or ctx is done, redrawing on every tick.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(events)
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(a.tick)
	defer ticker.Stop()

	if err := a.Draw(); err != nil {
		return err
	}

	a.log.Info("terminal loop started", zap.Duration("tick", a.tick))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if a.HandleEvent(ev) {
				a.log.Info("quit requested")
				return nil
			}
		case <-ticker.C:
			if err := a.Draw(); err != nil {
				return err
			}
		}
	}
}

// styleOf returns a cell style with c as background.
func styleOf(c color.RGBA) tcell.Style {
	return tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}
