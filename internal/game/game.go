// Package game implements the windowed main loop.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/gridcast/internal/config"
	"github.com/Faultbox/gridcast/internal/engine/input"
	"github.com/Faultbox/gridcast/internal/engine/renderer"
	"github.com/Faultbox/gridcast/internal/engine/window"
	"github.com/Faultbox/gridcast/internal/logger"
	"github.com/Faultbox/gridcast/internal/scene"
	"github.com/Faultbox/gridcast/internal/view"
)

// Game is the windowed front end of a scene.
type Game struct {
	config   *config.Config
	scene    *scene.Scene
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	frame    view.Frame
	log      *zap.Logger
}

// New opens the window and renderer for s.
func New(cfg *config.Config, s *scene.Scene) (*Game, error) {
	g := &Game{
		config: cfg,
		scene:  s,
		log:    logger.Named("game"),
	}

	g.log.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("board", s.Board.Name),
	)

	// Create window (this also creates OpenGL context)
	var err error
	g.window, err = window.New(window.Config{
		Title:      "gridcast - " + s.Board.Name,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:  width,
		Height: height,
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.input = input.New()

	g.log.Info("game initialized successfully")
	return g, nil
}

// Run starts the main loop.
func (g *Game) Run() error {
	g.running = true

	var minFrame time.Duration
	if g.config.Graphics.FPSLimit > 0 {
		minFrame = time.Second / time.Duration(g.config.Graphics.FPSLimit)
	}

	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting game loop")

	for g.running {
		start := time.Now()

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}

		shoot := false
		for _, event := range g.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				g.renderer.Resize(g.window.DrawableSize())
			case input.EventScreenshot:
				shoot = true
			case input.EventCommand:
				if g.scene.Handle(event.Command) {
					g.running = false
				}
			}
		}
		if !g.running {
			break
		}

		// 2. Cast and lay out
		width, height := g.renderer.Size()
		if err := g.scene.Compose(&g.frame, width, height); err != nil {
			return fmt.Errorf("compose error: %w", err)
		}

		// 3. Render and present
		g.renderer.Draw(&g.frame)
		// The back buffer is undefined after a swap.
		if shoot {
			g.screenshot()
		}
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if elapsed := time.Since(start); elapsed < minFrame {
			time.Sleep(minFrame - elapsed)
		}
	}

	return nil
}

// screenshot saves the frame just drawn into the configured directory.
func (g *Game) screenshot() {
	pixels, width, height := g.renderer.ReadPixels()
	img, err := view.FromGLPixels(pixels, width, height)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	view.Caption(img, g.scene.Board.Name+" "+g.scene.Viewer.Position.String())

	path := view.SnapshotName(g.config.Graphics.ScreenshotDir, "gridcast", time.Now())
	if err := view.SavePNG(img, path); err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
