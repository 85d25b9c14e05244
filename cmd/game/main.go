package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/tomz197/ballrush/internal/config"
	"github.com/tomz197/ballrush/internal/draw"
	"github.com/tomz197/ballrush/internal/loop/client"
	loopconfig "github.com/tomz197/ballrush/internal/loop/config"
	"github.com/tomz197/ballrush/internal/loop/server"
	"golang.org/x/term"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "ballrush"})

	tuning, err := loopconfig.Load(config.GetEnv("BALLRUSH_TUNING", ""))
	if err != nil {
		logger.Fatal("failed to load tuning", "err", err)
	}
	sprites := client.LoadSprites(map[draw.SpriteKind]string{
		draw.SpritePlayer: config.GetEnv("BALLRUSH_PLAYER_SPRITE", ""),
		draw.SpriteEnemy:  config.GetEnv("BALLRUSH_ENEMY_SPRITE", ""),
	}, logger)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	// A lobby of one keeps the local game on the same client path as SSH.
	c, err := client.NewClient(server.NewServer(nil), bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username: "local",
		Seed:     int64(config.GetEnvInt("BALLRUSH_SEED", 0)),
		Tuning:   tuning,
		Sprites:  sprites,
	})
	if err == nil {
		err = c.Run()
	}
	if err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
