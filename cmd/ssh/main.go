package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/ballrush/internal/config"
	"github.com/tomz197/ballrush/internal/draw"
	"github.com/tomz197/ballrush/internal/loop/client"
	loopconfig "github.com/tomz197/ballrush/internal/loop/config"
	"github.com/tomz197/ballrush/internal/loop/server"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

// game holds what every SSH session shares: the lobby, the tuning and the
// decoded sprites. Each session still plays its own independent game.
type game struct {
	lobby   *server.Server
	tuning  loopconfig.Tuning
	sprites map[draw.SpriteKind]image.Image
	logger  *log.Logger
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "ballrush-ssh",
		ReportTimestamp: true,
	})
	if level, err := log.ParseLevel(config.GetEnv("LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(level)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	shutdownGrace := config.GetEnvDuration("SHUTDOWN_GRACE", 15*time.Second)
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	tuning, err := loopconfig.Load(config.GetEnv("BALLRUSH_TUNING", ""))
	if err != nil {
		logger.Fatal("failed to load tuning", "err", err)
	}

	g := &game{
		lobby:  server.NewServer(logger.WithPrefix("lobby")),
		tuning: tuning,
		sprites: client.LoadSprites(map[draw.SpriteKind]string{
			draw.SpritePlayer: config.GetEnv("BALLRUSH_PLAYER_SPRITE", ""),
			draw.SpriteEnemy:  config.GetEnv("BALLRUSH_ENEMY_SPRITE", ""),
		}, logger),
		logger: logger,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			g.middleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server", "players", g.lobby.Lobby().Players)

	// Notify players and wait for them to disconnect
	g.lobby.Shutdown(shutdownGrace)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// middleware runs one game session per SSH session.
func (g *game) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		g.logger.Info("new game session", "user", sess.User(), "term", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		c, err := client.NewClient(g.lobby, bufio.NewReader(sess), sess, client.ClientOptions{
			TermSizeFunc: sizeTracker.getSize,
			Username:     sess.User(),
			Tuning:       g.tuning,
			Sprites:      g.sprites,
			Logger:       g.logger,
			ShowLobby:    true,
			Inactivity:   true,
		})
		if err == nil {
			err = c.Run()
		}
		if err != nil {
			g.logger.Error("game error", "user", sess.User(), "err", err)
		}

		g.logger.Info("session ended", "user", sess.User())
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
