package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tomz197/ballrush/internal/config"
	"github.com/tomz197/ballrush/internal/desktop"
	"github.com/tomz197/ballrush/internal/draw"
	"github.com/tomz197/ballrush/internal/loop"
	loopconfig "github.com/tomz197/ballrush/internal/loop/config"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "ballrush", ReportTimestamp: true})
	if level, err := log.ParseLevel(config.GetEnv("LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(level)
	}

	tuning, err := loopconfig.Load(config.GetEnv("BALLRUSH_TUNING", ""))
	if err != nil {
		logger.Fatal("failed to load tuning", "err", err)
	}
	session, err := loop.NewSession(loop.Options{Tuning: tuning})
	if err != nil {
		logger.Fatal("failed to start session", "err", err)
	}

	sprites := make(map[draw.SpriteKind]*ebiten.Image)
	for kind, path := range map[draw.SpriteKind]string{
		draw.SpritePlayer: config.GetEnv("BALLRUSH_PLAYER_SPRITE", ""),
		draw.SpriteEnemy:  config.GetEnv("BALLRUSH_ENEMY_SPRITE", ""),
	} {
		if path == "" {
			continue
		}
		img, err := desktop.LoadSprite(path)
		if err != nil {
			logger.Warn("sprite unavailable, using placeholder", "sprite", kind, "err", err)
			continue
		}
		sprites[kind] = img
	}

	ebiten.SetWindowSize(int(tuning.CanvasWidth), int(tuning.CanvasHeight))
	ebiten.SetWindowTitle("Ball Rush")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(loopconfig.ClientTargetFPS)

	logger.Info("starting desktop game", "canvas", [2]float64{tuning.CanvasWidth, tuning.CanvasHeight})
	if err := ebiten.RunGame(desktop.New(session, sprites, logger)); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game error", "err", err)
	}
}
