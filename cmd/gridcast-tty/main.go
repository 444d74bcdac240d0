// Package main is the entry point for the terminal gridcast client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/gridcast/internal/assets"
	"github.com/Faultbox/gridcast/internal/config"
	"github.com/Faultbox/gridcast/internal/logger"
	"github.com/Faultbox/gridcast/internal/palette"
	"github.com/Faultbox/gridcast/internal/scene"
	"github.com/Faultbox/gridcast/internal/tui"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to tcell, so logs only go to the log file.
	if err := logger.InitFromConfig(cfg.Logging, false); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("terminal client error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	manager := assets.NewManager(cfg.Board.SearchDirs...)
	defer manager.Close()

	board, err := manager.LoadBoard(cfg.Board.Path)
	if err != nil {
		return fmt.Errorf("loading board: %w", err)
	}

	s, err := scene.New(board, cfg.Viewer, palette.Default())
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tui.New(screen, s, cfg.Terminal.Tick).Run(ctx)
}
