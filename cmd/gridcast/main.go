// Package main is the entry point for the windowed gridcast client.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/gridcast/internal/assets"
	"github.com/Faultbox/gridcast/internal/config"
	"github.com/Faultbox/gridcast/internal/game"
	"github.com/Faultbox/gridcast/internal/logger"
	"github.com/Faultbox/gridcast/internal/palette"
	"github.com/Faultbox/gridcast/internal/scene"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.InitFromConfig(cfg.Logging, true); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== gridcast ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	manager := assets.NewManager(cfg.Board.SearchDirs...)
	defer manager.Close()

	board, err := manager.LoadBoard(cfg.Board.Path)
	if err != nil {
		logger.Fatal("failed to load board", zap.String("path", cfg.Board.Path), zap.Error(err))
	}

	s, err := scene.New(board, cfg.Viewer, palette.Default())
	if err != nil {
		logger.Fatal("failed to build scene", zap.Error(err))
	}

	g, err := game.New(cfg, s)
	if err != nil {
		logger.Error("failed to create game", zap.Error(err))
		os.Exit(1)
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		logger.Error("game error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("game closed normally")
}
